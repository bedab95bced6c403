package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/courtday/go/internal/events"
	"github.com/mcdev12/courtday/go/internal/models"
)

// Store defines what the engine needs from durable storage. Every write
// happens after the in-memory transition has been applied; a failed write is
// reported to the caller but never rolls the session back.
type Store interface {
	// ListPlayers returns the seeded roster in stable order.
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	// RecordCompletedGame persists a played game, its participants with
	// winner flags, and the winners' totals in one transaction.
	RecordCompletedGame(ctx context.Context, sessionID uuid.UUID, game models.Slot, winners []uuid.UUID) error
	// RecordLatePenalty accumulates an assessed penalty on the player's
	// durable totals.
	RecordLatePenalty(ctx context.Context, playerID uuid.UUID, penalty int) error
	// AppendAudit appends one named event to the audit trail.
	AppendAudit(ctx context.Context, action, details string, actorID *uuid.UUID) error
}

// Publisher fans engine events out to observers (NATS in production, a
// logging stub otherwise). Publish failures are logged, never surfaced.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}
