package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPlayerCloneIsIndependent(t *testing.T) {
	arrival := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	p := &Player{
		ID:          uuid.New(),
		Name:        "Ana",
		Present:     true,
		ArrivalTime: &arrival,
		GamesPlayed: 2,
	}

	cp := p.Clone()
	cp.GamesPlayed = 9
	*cp.ArrivalTime = arrival.Add(time.Hour)

	if p.GamesPlayed != 2 {
		t.Errorf("clone mutation changed GamesPlayed to %d", p.GamesPlayed)
	}
	if !p.ArrivalTime.Equal(arrival) {
		t.Errorf("clone mutation changed ArrivalTime to %v", p.ArrivalTime)
	}
}

func TestSessionCloneIsIndependent(t *testing.T) {
	anchor := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	p1 := &Player{ID: uuid.New(), Name: "Ana", Present: true}
	p2 := &Player{ID: uuid.New(), Name: "Bob"}

	sess := &Session{
		ID:      uuid.New(),
		Date:    "Sunday, 1 June 2025",
		Anchor:  &anchor,
		Players: []*Player{p1, p2},
		CompletedGames: []Slot{{
			Type:    SlotTypeGame,
			Ordinal: 1,
			Players: []uuid.UUID{p1.ID, p2.ID},
			Winners: []uuid.UUID{p1.ID},
			Status:  SlotStatusCompleted,
		}},
	}

	cp := sess.Clone()
	cp.Players[0].Name = "Changed"
	cp.CompletedGames[0].Players[0] = uuid.New()
	*cp.Anchor = anchor.Add(time.Hour)

	if sess.Players[0].Name != "Ana" {
		t.Error("clone shares player memory")
	}
	if sess.CompletedGames[0].Players[0] != p1.ID {
		t.Error("clone shares completed-game slices")
	}
	if !sess.Anchor.Equal(anchor) {
		t.Error("clone shares the anchor")
	}
}

func TestSlotHasPlayer(t *testing.T) {
	in := uuid.New()
	s := Slot{Players: []uuid.UUID{in, uuid.New()}}

	if !s.HasPlayer(in) {
		t.Error("HasPlayer missed a member")
	}
	if s.HasPlayer(uuid.New()) {
		t.Error("HasPlayer matched a stranger")
	}
}
