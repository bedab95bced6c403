package session

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/courtday/go/internal/models"
)

// Scoring weights. These are behavioral constants carried over from seasons
// of real play; changing one reshapes the whole rotation.
const (
	restStreakWeight  = 100
	latePenaltyWeight = 1000
	keepPairBonus     = 40
	longStreakPenalty = 500
	gamesPlayedWeight = 5
)

// SelectForSlot picks the four players for a game slot from the present
// candidates. Slot one seeds the rotation with the four earliest arrivals;
// every later slot ranks candidates by score. Fewer than four candidates
// means no selection (the slot goes waiting).
//
// Ties break on ascending name, then id string, so the same roster always
// produces the same projection.
func SelectForSlot(present []*models.Player, ordinal int) []uuid.UUID {
	if len(present) < startingPlayers {
		return nil
	}

	ranked := make([]*models.Player, len(present))
	copy(ranked, present)

	if ordinal == 1 {
		sort.Slice(ranked, func(i, j int) bool {
			a, b := ranked[i], ranked[j]
			at, bt := arrivalOf(a), arrivalOf(b)
			if !at.Equal(bt) {
				return at.Before(bt)
			}
			return lessByIdentity(a, b)
		})
	} else {
		scores := make(map[uuid.UUID]int, len(ranked))
		for _, p := range ranked {
			scores[p.ID] = candidateScore(p)
		}
		sort.Slice(ranked, func(i, j int) bool {
			a, b := ranked[i], ranked[j]
			if scores[a.ID] != scores[b.ID] {
				return scores[a.ID] > scores[b.ID]
			}
			return lessByIdentity(a, b)
		})
	}

	ids := make([]uuid.UUID, startingPlayers)
	for i := 0; i < startingPlayers; i++ {
		ids[i] = ranked[i].ID
	}
	return ids
}

// candidateScore implements the rotation heuristic: rest streaks dominate,
// unabsorbed late penalties push a not-yet-played arrival to the back, a
// single consecutive game keeps a pairing together once, two or more breaks
// it, and total games played equalizes participation.
func candidateScore(p *models.Player) int {
	score := p.RestStreak * restStreakWeight
	if p.LatePenalty > 0 && p.GamesPlayed == 0 {
		score -= latePenaltyWeight * p.LatePenalty
	}
	if p.ConsecutiveStreak == 1 {
		score += keepPairBonus
	}
	if p.ConsecutiveStreak >= 2 {
		score -= longStreakPenalty
	}
	score -= p.GamesPlayed * gamesPlayedWeight
	return score
}

func lessByIdentity(a, b *models.Player) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID.String() < b.ID.String()
}

func arrivalOf(p *models.Player) time.Time {
	if p.ArrivalTime != nil {
		return *p.ArrivalTime
	}
	return time.Time{}
}
