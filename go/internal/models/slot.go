package models

import "github.com/google/uuid"

// SlotType distinguishes game slots from the breaks between them.
type SlotType string

const (
	SlotTypeGame  SlotType = "game"
	SlotTypeBreak SlotType = "break"
)

// SlotStatus is the lifecycle state of a slot on the timeline.
type SlotStatus string

const (
	// SlotStatusWaiting marks a game slot that could not be filled with four
	// present players.
	SlotStatusWaiting SlotStatus = "waiting"
	// SlotStatusScheduled marks a projected game slot with a full four.
	SlotStatusScheduled SlotStatus = "scheduled"
	// SlotStatusCompleted marks a played game (or the break that followed it).
	// Completed slots keep their offsets forever.
	SlotStatusCompleted SlotStatus = "completed"
	// SlotStatusProjected marks a speculative break slot.
	SlotStatusProjected SlotStatus = "projected"
)

// Slot is one unit of the session timeline: a game with four players or a
// break with none. Offsets are minutes from the session anchor.
type Slot struct {
	Type     SlotType    `json:"type"`
	Ordinal  int         `json:"ordinal,omitempty"`
	StartMin int         `json:"start_min"`
	EndMin   int         `json:"end_min,omitempty"`
	Players  []uuid.UUID `json:"players,omitempty"`
	Winners  []uuid.UUID `json:"winners,omitempty"`
	Status   SlotStatus  `json:"status"`
}

// Clone returns a copy with its own player and winner slices.
func (s Slot) Clone() Slot {
	cp := s
	if s.Players != nil {
		cp.Players = append([]uuid.UUID(nil), s.Players...)
	}
	if s.Winners != nil {
		cp.Winners = append([]uuid.UUID(nil), s.Winners...)
	}
	return cp
}

// HasPlayer reports whether id is among the slot's players.
func (s Slot) HasPlayer(id uuid.UUID) bool {
	for _, pid := range s.Players {
		if pid == id {
			return true
		}
	}
	return false
}
