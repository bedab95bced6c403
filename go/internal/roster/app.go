package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/courtday/go/internal/models"
	"github.com/rs/zerolog/log"
)

// FixedRoster is the club's standing ten. Seeding creates any missing user
// and derives an avatar path from the first name.
var FixedRoster = []string{
	"Mohit Mahajan", "Ravi Sandhu", "Manoj Jain", "Nikhil Kacker",
	"Gurmeet Singh", "Badal", "Rudra", "DK", "Goyal Sir", "Kulbir Singh",
}

// minGamesForSharpshooter gates the best-win-rate highlight.
const minGamesForSharpshooter = 3

// RosterRepository defines what the roster app needs from storage.
type RosterRepository interface {
	GetUserIDByName(ctx context.Context, name string) (uuid.UUID, error)
	InsertUser(ctx context.Context, id uuid.UUID, name, avatar string) error
	ListUsers(ctx context.Context) ([]models.PlayerStats, error)
	InsertSession(ctx context.Context, sessionID uuid.UUID, date string) error
	RecordCompletedGame(ctx context.Context, sessionID uuid.UUID, game models.Slot, winners []uuid.UUID) error
	AddLatePenalty(ctx context.Context, userID uuid.UUID, penalty int) error
	InsertAudit(ctx context.Context, action, details string, actorID *uuid.UUID) error
	ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error)
	ListStats(ctx context.Context) ([]models.PlayerStats, error)
}

// App handles roster persistence business logic. It implements the engine's
// Store interface.
type App struct {
	repo RosterRepository
}

// NewApp creates a new roster App.
func NewApp(repo RosterRepository) *App {
	return &App{repo: repo}
}

// SeedRoster makes sure every fixed-roster member has a user row.
func (a *App) SeedRoster(ctx context.Context) error {
	log.Info().Msg("seeding fixed roster")

	for _, name := range FixedRoster {
		_, err := a.repo.GetUserIDByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("look up user %s: %w", name, err)
		}

		id := uuid.New()
		if err := a.repo.InsertUser(ctx, id, name, avatarFor(name)); err != nil {
			return fmt.Errorf("seed user %s: %w", name, err)
		}
		log.Info().Str("name", name).Str("id", id.String()).Msg("created user")
	}
	return nil
}

// ListPlayers returns the seeded roster as fresh session players with all
// transient fields zeroed.
func (a *App) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	users, err := a.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	players := make([]*models.Player, len(users))
	for i, u := range users {
		players[i] = &models.Player{
			ID:     u.ID,
			Name:   u.Name,
			Avatar: u.Avatar,
		}
	}
	return players, nil
}

// RecordSession logs the start of a live session.
func (a *App) RecordSession(ctx context.Context, sessionID uuid.UUID, date string) error {
	return a.repo.InsertSession(ctx, sessionID, date)
}

// RecordCompletedGame persists one played game and the winners' totals.
func (a *App) RecordCompletedGame(ctx context.Context, sessionID uuid.UUID, game models.Slot, winners []uuid.UUID) error {
	return a.repo.RecordCompletedGame(ctx, sessionID, game, winners)
}

// RecordLatePenalty accumulates an assessed penalty on durable totals.
func (a *App) RecordLatePenalty(ctx context.Context, playerID uuid.UUID, penalty int) error {
	return a.repo.AddLatePenalty(ctx, playerID, penalty)
}

// AppendAudit appends one named event to the audit trail.
func (a *App) AppendAudit(ctx context.Context, action, details string, actorID *uuid.UUID) error {
	return a.repo.InsertAudit(ctx, action, details, actorID)
}

// History returns the most recent audit entries, newest first.
func (a *App) History(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	return a.repo.ListAudit(ctx, limit)
}

// Stats builds the leaderboard with win rates and highlight callouts.
func (a *App) Stats(ctx context.Context) (*models.StatsResponse, error) {
	rows, err := a.repo.ListStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	for i := range rows {
		rows[i].WinRate = winRate(rows[i])
	}

	return &models.StatsResponse{
		Leaderboard: rows,
		Highlights:  ComputeHighlights(rows),
	}, nil
}

// ComputeHighlights derives the leaderboard callouts from rows already
// ordered by wins, then total games.
func ComputeHighlights(rows []models.PlayerStats) models.Highlights {
	var h models.Highlights
	if len(rows) == 0 {
		return h
	}

	champion := rows[0]
	h.Champion = &champion

	ironMan := rows[0]
	for _, r := range rows[1:] {
		if r.TotalGames > ironMan.TotalGames {
			ironMan = r
		}
	}
	h.IronMan = &ironMan

	lateComer := rows[0]
	for _, r := range rows[1:] {
		if r.LatePenalties > lateComer.LatePenalties {
			lateComer = r
		}
	}
	if lateComer.LatePenalties > 0 {
		h.LateComer = &lateComer
	}

	var sharpshooter *models.PlayerStats
	for i := range rows {
		r := rows[i]
		if r.TotalGames < minGamesForSharpshooter {
			continue
		}
		if sharpshooter == nil || r.WinRate > sharpshooter.WinRate {
			sharpshooter = &rows[i]
		}
	}
	if sharpshooter != nil {
		s := *sharpshooter
		h.Sharpshooter = &s
	}
	return h
}

func winRate(r models.PlayerStats) int {
	if r.TotalGames == 0 {
		return 0
	}
	return int(math.Round(float64(r.Wins) / float64(r.TotalGames) * 100))
}

func avatarFor(name string) string {
	first := strings.SplitN(name, " ", 2)[0]
	return "/avatars/" + first + ".png"
}
