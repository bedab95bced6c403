package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the live state for one day of play: the roster, the append-only
// completed-game log, and the most recently compiled timeline. A single
// writer owns it; observers only ever see clones.
type Session struct {
	ID             uuid.UUID  `json:"id"`
	Date           string     `json:"session_date"`
	Anchor         *time.Time `json:"actual_start_time,omitempty"`
	Players        []*Player  `json:"players"`
	CompletedGames []Slot     `json:"completed_games"`
	Schedule       []Slot     `json:"schedule"`
}

// Clone returns a deep copy safe to hand to other goroutines.
func (s *Session) Clone() *Session {
	cp := &Session{
		ID:   s.ID,
		Date: s.Date,
	}
	if s.Anchor != nil {
		t := *s.Anchor
		cp.Anchor = &t
	}
	cp.Players = ClonePlayers(s.Players)
	if s.CompletedGames != nil {
		cp.CompletedGames = make([]Slot, len(s.CompletedGames))
		for i, g := range s.CompletedGames {
			cp.CompletedGames[i] = g.Clone()
		}
	}
	if s.Schedule != nil {
		cp.Schedule = make([]Slot, len(s.Schedule))
		for i, sl := range s.Schedule {
			cp.Schedule[i] = sl.Clone()
		}
	}
	return cp
}

// FindPlayer returns the roster entry for id, or nil.
func (s *Session) FindPlayer(id uuid.UUID) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PresentCount returns the number of checked-in players.
func (s *Session) PresentCount() int {
	n := 0
	for _, p := range s.Players {
		if p.Present {
			n++
		}
	}
	return n
}
