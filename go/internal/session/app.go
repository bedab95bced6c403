package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/courtday/go/internal/events"
	"github.com/mcdev12/courtday/go/internal/models"
	"github.com/rs/zerolog/log"
)

// rolloverCheckInterval is how often the day-boundary check runs.
const rolloverCheckInterval = 30 * time.Second

// App is the scheduling engine. It owns the live session under a single
// mutex: every mutating event (presence toggle, result submission, reset,
// rollover check) runs to completion before the next one starts, and each
// one ends with a full recompute of the timeline. Storage and event-bus
// writes happen after the in-memory transition and never roll it back.
type App struct {
	mu        sync.Mutex
	cfg       Config
	clock     clockwork.Clock
	store     Store
	publisher Publisher
	loc       *time.Location

	sessionClock SessionClock
	sess         *models.Session
	dayKey       string
	notify       func(*models.Session)
}

// NewApp creates the engine with an empty roster. Call Seed before serving.
func NewApp(cfg Config, store Store, publisher Publisher, clock clockwork.Clock) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	a := &App{
		cfg:       cfg,
		clock:     clock,
		store:     store,
		publisher: publisher,
		loc:       loc,
	}

	now := clock.Now()
	a.sess = &models.Session{
		ID:   uuid.New(),
		Date: formatSessionDate(now, loc),
	}
	a.dayKey = localDayKey(now, loc)
	a.recomputeLocked()
	return a, nil
}

// SetNotifier registers the callback invoked with a fresh snapshot after
// every accepted mutation. The gateway uses it to broadcast state updates.
func (a *App) SetNotifier(fn func(*models.Session)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notify = fn
}

// Seed loads the durable roster into the live session.
func (a *App) Seed(ctx context.Context) error {
	players, err := a.store.ListPlayers(ctx)
	if err != nil {
		return fmt.Errorf("seed roster: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.sess.Players = players
	a.recomputeLocked()

	log.Info().Int("players", len(players)).Msg("roster initialized")
	return nil
}

// Snapshot returns a deep copy of the current session.
func (a *App) Snapshot() *models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sess.Clone()
}

// HandlePresenceToggle flips a player's presence. Check-in stamps the
// arrival instant, may trip the session anchor (the 3-to-4 transition), and
// assesses the late penalty against the anchor. Check-out clears arrival and
// streaks but retains any unabsorbed penalty.
//
// A non-nil session return means the mutation was applied; the error then
// only reports persistence trouble.
func (a *App) HandlePresenceToggle(ctx context.Context, playerID uuid.UUID) (*models.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.sess.FindPlayer(playerID)
	if p == nil {
		return nil, fmt.Errorf("toggle presence for %s: %w", playerID, ErrUnknownPlayer)
	}

	now := a.clock.Now()
	var persistErr error

	if !p.Present {
		p.Present = true
		arrival := now
		p.ArrivalTime = &arrival

		if a.sessionClock.OnPresenceChange(a.sess.PresentCount(), now) {
			a.sess.Anchor = a.sessionClock.Anchor()
			persistErr = errors.Join(persistErr,
				a.record(ctx, events.EventTypeSessionStart, "4th Player arrived. Clock started.", nil,
					events.SessionStartPayload{AnchorAt: now}))
			log.Info().Time("anchor", now).Msg("session clock started")
		}

		p.LatePenalty = ComputeLatePenalty(arrival, a.sessionClock.Anchor(), a.cfg.GracePeriod(), a.cfg.GameDuration())
		if p.LatePenalty > 0 {
			if err := a.store.RecordLatePenalty(ctx, p.ID, p.LatePenalty); err != nil {
				persistErr = errors.Join(persistErr, fmt.Errorf("record late penalty: %w", err))
			}
		}

		persistErr = errors.Join(persistErr,
			a.record(ctx, events.EventTypeCheckIn,
				fmt.Sprintf("%s checked in. Penalty: %d", p.Name, p.LatePenalty), &p.ID,
				events.CheckInPayload{PlayerID: p.ID.String(), PlayerName: p.Name, Penalty: p.LatePenalty}))
	} else {
		p.Present = false
		p.ArrivalTime = nil
		p.ConsecutiveStreak = 0
		p.RestStreak = 0
		// LatePenalty survives a check-out on purpose.

		persistErr = errors.Join(persistErr,
			a.record(ctx, events.EventTypeCheckOut,
				fmt.Sprintf("%s checked out.", p.Name), &p.ID,
				events.CheckOutPayload{PlayerID: p.ID.String(), PlayerName: p.Name}))
	}

	a.recomputeLocked()
	return a.publishSnapshotLocked(), persistErr
}

// HandleResultSubmission completes a scheduled game slot. Validation happens
// before any counter moves, and a duplicate submission for an already
// completed slot is rejected without touching state.
func (a *App) HandleResultSubmission(ctx context.Context, ordinal int, winners []uuid.UUID) (*models.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	slot := a.findGameSlotLocked(ordinal)
	if slot == nil {
		return nil, fmt.Errorf("submit result for game %d: %w", ordinal, ErrUnknownSlot)
	}
	if slot.Status == models.SlotStatusCompleted {
		return nil, fmt.Errorf("submit result for game %d: %w", ordinal, ErrAlreadyCompleted)
	}
	if slot.Status != models.SlotStatusScheduled {
		return nil, fmt.Errorf("submit result for game %d (status %s): %w", ordinal, slot.Status, ErrSlotNotReady)
	}
	if err := validateWinners(*slot, winners); err != nil {
		return nil, fmt.Errorf("submit result for game %d: %w", ordinal, err)
	}

	ApplyGameOutcome(a.sess.Players, slot.Players)

	completed := slot.Clone()
	completed.Status = models.SlotStatusCompleted
	completed.Winners = append([]uuid.UUID(nil), winners...)
	a.sess.CompletedGames = append(a.sess.CompletedGames, completed)

	var persistErr error
	if err := a.store.RecordCompletedGame(ctx, a.sess.ID, completed, winners); err != nil {
		persistErr = errors.Join(persistErr, fmt.Errorf("record completed game: %w", err))
	}

	winnerNames := a.playerNamesLocked(winners)
	persistErr = errors.Join(persistErr,
		a.record(ctx, events.EventTypeGameComplete,
			fmt.Sprintf("Game %d won by %s", ordinal, strings.Join(winnerNames, ", ")), nil,
			events.GameCompletePayload{
				Ordinal:     ordinal,
				PlayerIDs:   idStrings(completed.Players),
				WinnerIDs:   idStrings(winners),
				WinnerNames: winnerNames,
			}))

	a.recomputeLocked()
	return a.publishSnapshotLocked(), persistErr
}

// Reset clears the live session on request: transient roster fields, anchor,
// and the completed-game log all go; durable totals are untouched.
func (a *App) Reset(ctx context.Context, reason string) (*models.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resetLocked(ctx, events.EventTypeSessionReset, reason)
}

// CheckForNewDay compares the timezone-local day key against the session's
// and resets once per calendar-day transition. Re-checks within the same day
// are no-ops.
func (a *App) CheckForNewDay(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	today := localDayKey(a.clock.Now(), a.loc)
	if today == a.dayKey {
		return nil
	}
	_, err := a.resetLocked(ctx, events.EventTypeDailyReset, "Daily rollover to "+today)
	return err
}

// RunRolloverLoop drives CheckForNewDay until the context ends. The external
// ticker, not the engine, owns the cadence.
func (a *App) RunRolloverLoop(ctx context.Context) {
	ticker := a.clock.NewTicker(rolloverCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("rollover loop shutting down")
			return
		case <-ticker.Chan():
			if err := a.CheckForNewDay(ctx); err != nil {
				log.Error().Err(err).Msg("day rollover check failed")
			}
		}
	}
}

// Recompute compiles a timeline for the given session without touching the
// engine. Exposed for callers that want a pure recomputation.
func (a *App) Recompute(sess *models.Session) []models.Slot {
	return Compile(sess, a.cfg)
}

func (a *App) resetLocked(ctx context.Context, typ events.EventType, reason string) (*models.Session, error) {
	a.sessionClock.Reset()

	now := a.clock.Now()
	a.sess.ID = uuid.New()
	a.sess.Date = formatSessionDate(now, a.loc)
	a.sess.Anchor = nil
	a.sess.CompletedGames = nil
	for _, p := range a.sess.Players {
		p.Present = false
		p.ArrivalTime = nil
		p.GamesPlayed = 0
		p.ConsecutiveStreak = 0
		p.RestStreak = 0
		p.LatePenalty = 0
	}
	a.dayKey = localDayKey(now, a.loc)

	persistErr := a.record(ctx, typ, reason, nil, events.ResetPayload{Reason: reason})

	a.recomputeLocked()
	log.Info().Str("reason", reason).Str("session_id", a.sess.ID.String()).Msg("session reset")
	return a.publishSnapshotLocked(), persistErr
}

// record appends to the audit trail and mirrors the event onto the bus.
// Audit failure is returned; bus failure is only logged.
func (a *App) record(ctx context.Context, typ events.EventType, details string, actorID *uuid.UUID, payload any) error {
	event := events.Event{
		ID:        uuid.New(),
		SessionID: a.sess.ID,
		Type:      typ,
		Timestamp: a.clock.Now(),
		Payload:   payload,
	}
	if err := a.publisher.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("event_type", string(typ)).Msg("failed to publish event")
	}

	if err := a.store.AppendAudit(ctx, string(typ), details, actorID); err != nil {
		return fmt.Errorf("append audit %s: %w", typ, err)
	}
	return nil
}

func (a *App) recomputeLocked() {
	a.sess.Schedule = Compile(a.sess, a.cfg)
}

func (a *App) publishSnapshotLocked() *models.Session {
	snap := a.sess.Clone()
	if a.notify != nil {
		a.notify(snap)
	}
	return snap
}

func (a *App) findGameSlotLocked(ordinal int) *models.Slot {
	for i := range a.sess.Schedule {
		s := &a.sess.Schedule[i]
		if s.Type == models.SlotTypeGame && s.Ordinal == ordinal {
			return s
		}
	}
	return nil
}

func (a *App) playerNamesLocked(ids []uuid.UUID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if p := a.sess.FindPlayer(id); p != nil {
			names = append(names, p.Name)
		}
	}
	return names
}

func validateWinners(slot models.Slot, winners []uuid.UUID) error {
	if len(winners) != 2 || winners[0] == winners[1] {
		return ErrInvalidWinners
	}
	for _, id := range winners {
		if !slot.HasPlayer(id) {
			return ErrInvalidWinners
		}
	}
	return nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func formatSessionDate(now time.Time, loc *time.Location) string {
	return now.In(loc).Format("Monday, 2 January 2006")
}

func localDayKey(now time.Time, loc *time.Location) string {
	return now.In(loc).Format("2006-01-02")
}
