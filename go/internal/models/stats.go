package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayerStats is one leaderboard row, built from the durable users table.
type PlayerStats struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Avatar        string    `json:"avatar"`
	TotalGames    int       `json:"total_games"`
	Wins          int       `json:"wins"`
	LatePenalties int       `json:"late_penalties"`
	WinRate       int       `json:"win_rate"`
}

// Highlights are the leaderboard callouts. Pointers are nil when no player
// qualifies.
type Highlights struct {
	Champion     *PlayerStats `json:"champion,omitempty"`
	IronMan      *PlayerStats `json:"iron_man,omitempty"`
	LateComer    *PlayerStats `json:"late_comer,omitempty"`
	Sharpshooter *PlayerStats `json:"sharpshooter,omitempty"`
}

// StatsResponse is the /api/stats payload.
type StatsResponse struct {
	Leaderboard []PlayerStats `json:"leaderboard"`
	Highlights  Highlights    `json:"highlights"`
}

// AuditEntry is one row of the append-only audit trail.
type AuditEntry struct {
	ID        int64      `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Action    string     `json:"action"`
	Details   string     `json:"details"`
	ActorID   *uuid.UUID `json:"actor_id,omitempty"`
}
