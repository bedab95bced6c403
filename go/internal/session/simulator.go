package session

import (
	"github.com/google/uuid"
	"github.com/mcdev12/courtday/go/internal/models"
)

// Simulator projects the remaining game slots forward from the current
// roster. It works on a disposable structural clone, so the live roster is
// never touched, and it assumes no further presence changes: the projection
// is speculative and is rebuilt from scratch on every event.
type Simulator struct {
	cfg Config
}

// NewSimulator creates a simulator for the given session constants.
func NewSimulator(cfg Config) *Simulator {
	return &Simulator{cfg: cfg}
}

// Project builds the forward timeline starting at nextOrdinal, with the time
// cursor continuing from cursorMin minutes after the anchor.
func (s *Simulator) Project(players []*models.Player, nextOrdinal, cursorMin int) []models.Slot {
	sim := models.ClonePlayers(players)
	cursor := cursorMin

	var out []models.Slot
	for ordinal := nextOrdinal; ordinal <= s.cfg.TotalGames; ordinal++ {
		if ordinal > 1 && (ordinal-1)%s.cfg.GamesBeforeBreak == 0 {
			out = append(out, models.Slot{
				Type:     models.SlotTypeBreak,
				StartMin: cursor,
				EndMin:   cursor + s.cfg.BreakDurationMin,
				Status:   models.SlotStatusProjected,
			})
			cursor += s.cfg.BreakDurationMin
		}

		selected := SelectForSlot(presentOf(sim), ordinal)
		if len(selected) == startingPlayers {
			out = append(out, models.Slot{
				Type:     models.SlotTypeGame,
				Ordinal:  ordinal,
				StartMin: cursor,
				EndMin:   cursor + s.cfg.GameDurationMin,
				Players:  selected,
				Status:   models.SlotStatusScheduled,
			})
			ApplyGameOutcome(sim, selected)
		} else {
			out = append(out, models.Slot{
				Type:     models.SlotTypeGame,
				Ordinal:  ordinal,
				StartMin: cursor,
				Status:   models.SlotStatusWaiting,
			})
		}

		// The cursor advances for waiting slots too: a short-handed slot
		// still occupies its window on the timeline.
		cursor += s.cfg.GameDurationMin
	}
	return out
}

// ApplyGameOutcome advances roster counters for one played (or simulated)
// game slot: selected players accrue a game and a consecutive-streak unit,
// shed any rest streak, and absorb one unit of late penalty; every other
// present player rests instead.
func ApplyGameOutcome(players []*models.Player, selected []uuid.UUID) {
	in := make(map[uuid.UUID]bool, len(selected))
	for _, id := range selected {
		in[id] = true
	}

	for _, p := range players {
		if in[p.ID] {
			p.GamesPlayed++
			p.ConsecutiveStreak++
			p.RestStreak = 0
			if p.LatePenalty > 0 {
				p.LatePenalty--
			}
		} else if p.Present {
			p.ConsecutiveStreak = 0
			p.RestStreak++
		}
	}
}

func presentOf(players []*models.Player) []*models.Player {
	var out []*models.Player
	for _, p := range players {
		if p.Present {
			out = append(out, p)
		}
	}
	return out
}
