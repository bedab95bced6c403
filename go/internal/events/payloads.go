package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType names the engine events mirrored to the audit trail and the
// event bus.
type EventType string

const (
	EventTypeCheckIn      EventType = "CHECK_IN"
	EventTypeCheckOut     EventType = "CHECK_OUT"
	EventTypeSessionStart EventType = "SESSION_START"
	EventTypeGameComplete EventType = "GAME_COMPLETE"
	EventTypeSessionReset EventType = "SESSION_RESET"
	EventTypeDailyReset   EventType = "DAILY_RESET"
)

// Event is the envelope published for every accepted mutation.
type Event struct {
	ID        uuid.UUID `json:"event_id"`
	SessionID uuid.UUID `json:"session_id"`
	Type      EventType `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// CheckInPayload records a player arrival and the penalty assessed at the
// door.
type CheckInPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Penalty    int    `json:"penalty"`
}

// CheckOutPayload records a player leaving.
type CheckOutPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// SessionStartPayload records the anchor instant set by the fourth arrival.
type SessionStartPayload struct {
	AnchorAt time.Time `json:"anchor_at"`
}

// GameCompletePayload records a finished game.
type GameCompletePayload struct {
	Ordinal     int      `json:"ordinal"`
	PlayerIDs   []string `json:"player_ids"`
	WinnerIDs   []string `json:"winner_ids"`
	WinnerNames []string `json:"winner_names"`
}

// ResetPayload records why a session was cleared.
type ResetPayload struct {
	Reason string `json:"reason"`
}
