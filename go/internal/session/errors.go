package session

import "errors"

// Engine errors. Handlers reject before mutating, so any of these means the
// session state is unchanged. Callers discriminate with errors.Is; none of
// them should take the event loop down.
var (
	// ErrUnknownPlayer means the player id is not on the roster.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrUnknownSlot means the game ordinal is not on the current schedule.
	ErrUnknownSlot = errors.New("unknown slot")
	// ErrSlotNotReady means a result was submitted for a slot that is not in
	// scheduled status (e.g. a waiting slot).
	ErrSlotNotReady = errors.New("slot not ready for a result")
	// ErrAlreadyCompleted rejects a duplicate result submission.
	ErrAlreadyCompleted = errors.New("slot already completed")
	// ErrInvalidWinners means the winner pair is not two distinct players
	// drawn from the slot's own four.
	ErrInvalidWinners = errors.New("invalid winner pair")
)
