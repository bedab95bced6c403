package roster

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/courtday/go/internal/models"
	"github.com/mcdev12/courtday/go/internal/sqlutil"
)

// Repository is the hand-written SQL layer over the court database: user
// profiles with running totals, the per-session game log, and the audit
// trail.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repository bound to an open database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the tables if they do not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			avatar TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			total_games INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			late_penalties INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id BIGSERIAL PRIMARY KEY,
			session_id UUID NOT NULL,
			date TEXT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			id BIGSERIAL PRIMARY KEY,
			session_id UUID NOT NULL,
			game_number INTEGER NOT NULL,
			start_min INTEGER NOT NULL,
			end_min INTEGER NOT NULL,
			is_completed BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS game_players (
			game_id BIGINT NOT NULL REFERENCES games(id),
			user_id UUID NOT NULL REFERENCES users(id),
			is_winner BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id BIGSERIAL PRIMARY KEY,
			ts TIMESTAMPTZ NOT NULL DEFAULT now(),
			action TEXT NOT NULL,
			details TEXT,
			actor_id UUID
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// GetUserIDByName looks a user up by name. Returns sql.ErrNoRows if absent.
func (r *Repository) GetUserIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, `SELECT id FROM users WHERE name = $1`, name).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// InsertUser creates a user row with zeroed totals.
func (r *Repository) InsertUser(ctx context.Context, id uuid.UUID, name, avatar string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, avatar) VALUES ($1, $2, $3)`, id, name, avatar)
	if err != nil {
		return fmt.Errorf("insert user %s: %w", name, err)
	}
	return nil
}

// ListUsers returns all users in seeding order.
func (r *Repository) ListUsers(ctx context.Context) ([]models.PlayerStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(avatar, ''), total_games, wins, late_penalties
		 FROM users ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []models.PlayerStats
	for rows.Next() {
		var u models.PlayerStats
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar, &u.TotalGames, &u.Wins, &u.LatePenalties); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// InsertSession records the start of a live session.
func (r *Repository) InsertSession(ctx context.Context, sessionID uuid.UUID, date string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, date) VALUES ($1, $2)`, sessionID, date)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// RecordCompletedGame writes the game row, its participants with winner
// flags, and the totals bumps in a single transaction.
func (r *Repository) RecordCompletedGame(ctx context.Context, sessionID uuid.UUID, game models.Slot, winners []uuid.UUID) error {
	isWinner := make(map[uuid.UUID]bool, len(winners))
	for _, id := range winners {
		isWinner[id] = true
	}

	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		var gameID int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO games (session_id, game_number, start_min, end_min, is_completed)
			 VALUES ($1, $2, $3, $4, TRUE) RETURNING id`,
			sessionID, game.Ordinal, game.StartMin, game.EndMin).Scan(&gameID)
		if err != nil {
			return fmt.Errorf("insert game: %w", err)
		}

		for _, pid := range game.Players {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO game_players (game_id, user_id, is_winner) VALUES ($1, $2, $3)`,
				gameID, pid, isWinner[pid]); err != nil {
				return fmt.Errorf("insert game player: %w", err)
			}

			if _, err := tx.ExecContext(ctx,
				`UPDATE users SET total_games = total_games + 1 WHERE id = $1`, pid); err != nil {
				return fmt.Errorf("bump total games: %w", err)
			}
			if isWinner[pid] {
				if _, err := tx.ExecContext(ctx,
					`UPDATE users SET wins = wins + 1 WHERE id = $1`, pid); err != nil {
					return fmt.Errorf("bump wins: %w", err)
				}
			}
		}
		return nil
	})
}

// AddLatePenalty accumulates an assessed penalty on the user's totals.
func (r *Repository) AddLatePenalty(ctx context.Context, userID uuid.UUID, penalty int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET late_penalties = late_penalties + $2 WHERE id = $1`, userID, penalty)
	if err != nil {
		return fmt.Errorf("add late penalty: %w", err)
	}
	return nil
}

// InsertAudit appends one audit row.
func (r *Repository) InsertAudit(ctx context.Context, action, details string, actorID *uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (action, details, actor_id) VALUES ($1, $2, $3)`,
		action, details, sqlutil.ToNullUUID(actorID))
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListAudit returns the newest limit audit rows, newest first.
func (r *Repository) ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, ts, action, COALESCE(details, ''), actor_id
		 FROM audit_logs ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		var actor uuid.NullUUID
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Action, &e.Details, &actor); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		e.ActorID = sqlutil.FromNullUUID(actor)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListStats returns leaderboard rows ordered by wins, then total games.
func (r *Repository) ListStats(ctx context.Context) ([]models.PlayerStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(avatar, ''), total_games, wins, late_penalties
		 FROM users ORDER BY wins DESC, total_games DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	defer rows.Close()

	var out []models.PlayerStats
	for rows.Next() {
		var u models.PlayerStats
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar, &u.TotalGames, &u.Wins, &u.LatePenalties); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
