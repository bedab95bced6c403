package session

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/courtday/go/internal/models"
)

func sessionWithHistory(completed int) *models.Session {
	roster := fullRoster(6)
	sess := &models.Session{
		ID:      uuid.New(),
		Players: roster,
	}

	cursor := 0
	cfg := DefaultConfig()
	for ordinal := 1; ordinal <= completed; ordinal++ {
		players := []uuid.UUID{roster[0].ID, roster[1].ID, roster[2].ID, roster[3].ID}
		sess.CompletedGames = append(sess.CompletedGames, models.Slot{
			Type:     models.SlotTypeGame,
			Ordinal:  ordinal,
			StartMin: cursor,
			EndMin:   cursor + cfg.GameDurationMin,
			Players:  players,
			Winners:  players[:2],
			Status:   models.SlotStatusCompleted,
		})
		ApplyGameOutcome(roster, players)
		cursor += cfg.GameDurationMin
		if ordinal > 1 && ordinal%cfg.GamesBeforeBreak == 0 {
			cursor += cfg.BreakDurationMin
		}
	}
	return sess
}

func TestCompileEmptySession(t *testing.T) {
	cfg := DefaultConfig()
	sess := &models.Session{ID: uuid.New(), Players: fullRoster(0)}

	timeline := Compile(sess, cfg)

	games := 0
	for _, s := range timeline {
		if s.Type == models.SlotTypeGame {
			games++
			if s.Status != models.SlotStatusWaiting {
				t.Errorf("game %d status = %s, want waiting", s.Ordinal, s.Status)
			}
		}
	}
	if games != cfg.TotalGames {
		t.Errorf("compiled %d games, want %d", games, cfg.TotalGames)
	}
}

func TestCompileReplaysHistory(t *testing.T) {
	cfg := DefaultConfig()
	sess := sessionWithHistory(4)

	timeline := Compile(sess, cfg)

	// Games 1-3, the completed break, game 4, then the projection onward.
	if timeline[0].Ordinal != 1 || timeline[0].StartMin != 0 || timeline[0].Status != models.SlotStatusCompleted {
		t.Errorf("slot 0 = %+v, want completed game 1 at 0", timeline[0])
	}
	if timeline[3].Type != models.SlotTypeBreak || timeline[3].Status != models.SlotStatusCompleted {
		t.Errorf("slot 3 = %+v, want completed break after game 3", timeline[3])
	}
	if timeline[3].StartMin != 36 || timeline[3].EndMin != 40 {
		t.Errorf("break window = [%d,%d], want [36,40]", timeline[3].StartMin, timeline[3].EndMin)
	}
	if timeline[4].Ordinal != 4 || timeline[4].StartMin != 40 {
		t.Errorf("slot 4 = %+v, want completed game 4 at 40", timeline[4])
	}
	if timeline[5].Ordinal != 5 || timeline[5].StartMin != 52 {
		t.Errorf("slot 5 = %+v, want projected game 5 at 52", timeline[5])
	}

	// Winners on completed games survive compilation.
	if len(timeline[0].Winners) != 2 {
		t.Errorf("completed game lost winners: %+v", timeline[0])
	}
}

func TestCompileIsPure(t *testing.T) {
	cfg := DefaultConfig()
	sess := sessionWithHistory(2)
	before := sess.Clone()

	first := Compile(sess, cfg)
	second := Compile(sess, cfg)

	if !reflect.DeepEqual(first, second) {
		t.Error("two compilations of an unchanged session differ")
	}
	if !reflect.DeepEqual(sess.Players, before.Players) {
		t.Error("compilation mutated the roster")
	}
	if !reflect.DeepEqual(sess.CompletedGames, before.CompletedGames) {
		t.Error("compilation mutated the completed-game log")
	}
}

func TestCompileRecomputesOffsets(t *testing.T) {
	cfg := DefaultConfig()
	sess := sessionWithHistory(2)

	// Stored offsets are untrusted: compilation derives them from position.
	sess.CompletedGames[1].StartMin = 999
	sess.CompletedGames[1].EndMin = 1999

	timeline := Compile(sess, cfg)
	if timeline[1].StartMin != 12 || timeline[1].EndMin != 24 {
		t.Errorf("game 2 window = [%d,%d], want [12,24]", timeline[1].StartMin, timeline[1].EndMin)
	}
}
