package session

import (
	"math"
	"time"
)

// ComputeLatePenalty maps an arrival instant to the number of games docked.
// No penalty accrues before the session has started, for arrivals at or
// before the anchor, or inside the grace window. Beyond that, one game is
// docked per full game duration of lateness. The result is consumed one unit
// at a time as the player actually plays, never by the passage of time.
func ComputeLatePenalty(arrival time.Time, anchor *time.Time, grace, gameDuration time.Duration) int {
	if anchor == nil || !arrival.After(*anchor) {
		return 0
	}

	lateMin := arrival.Sub(*anchor).Minutes()
	penalty := int(math.Floor((lateMin - grace.Minutes()) / gameDuration.Minutes()))
	if penalty < 0 {
		return 0
	}
	return penalty
}
