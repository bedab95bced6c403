package session

import "github.com/mcdev12/courtday/go/internal/models"

// Compile merges the immutable completed-game log with a fresh forward
// projection into one ordered timeline. Completed games are replayed in
// stored order with their original offsets reproduced (including the breaks
// that followed them), then the simulator fills in the remainder from where
// the cursor left off.
//
// Compile is pure: it never mutates the session, and two calls against an
// unchanged session produce identical timelines.
func Compile(sess *models.Session, cfg Config) []models.Slot {
	cursor := 0
	var timeline []models.Slot

	for _, g := range sess.CompletedGames {
		slot := g.Clone()
		slot.StartMin = cursor
		slot.EndMin = cursor + cfg.GameDurationMin
		slot.Status = models.SlotStatusCompleted
		timeline = append(timeline, slot)
		cursor += cfg.GameDurationMin

		if g.Ordinal > 1 && g.Ordinal%cfg.GamesBeforeBreak == 0 {
			timeline = append(timeline, models.Slot{
				Type:     models.SlotTypeBreak,
				StartMin: cursor,
				EndMin:   cursor + cfg.BreakDurationMin,
				Status:   models.SlotStatusCompleted,
			})
			cursor += cfg.BreakDurationMin
		}
	}

	sim := NewSimulator(cfg)
	timeline = append(timeline, sim.Project(sess.Players, len(sess.CompletedGames)+1, cursor)...)
	return timeline
}
