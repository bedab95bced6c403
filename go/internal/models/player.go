package models

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a roster member's live state within the active session.
// The transient fields (Present, ArrivalTime, the counters) belong to the
// session and are cleared on reset; durable totals live in the users table.
type Player struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Avatar            string     `json:"avatar"`
	Present           bool       `json:"present"`
	ArrivalTime       *time.Time `json:"arrival_time,omitempty"`
	GamesPlayed       int        `json:"games_played"`
	ConsecutiveStreak int        `json:"consecutive_streak"`
	RestStreak        int        `json:"rest_streak"`
	LatePenalty       int        `json:"late_penalty"`
}

// Clone returns a structural copy that shares no memory with the receiver.
func (p *Player) Clone() *Player {
	cp := *p
	if p.ArrivalTime != nil {
		t := *p.ArrivalTime
		cp.ArrivalTime = &t
	}
	return &cp
}

// ClonePlayers deep-copies a roster slice.
func ClonePlayers(players []*Player) []*Player {
	if players == nil {
		return nil
	}
	out := make([]*Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}
