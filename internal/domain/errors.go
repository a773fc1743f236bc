package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// ErrInvalidBucketKey marks a malformed day/month bucket key in
	// persisted state. Callers recover (substitute the current date)
	// rather than propagate; corrupted state must never crash the
	// engine.
	ErrInvalidBucketKey = errors.New("invalid bucket key")

	// ErrUnknownMode marks a mode value outside relaxed/normal/strict.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrUnknownCommand marks a command variant the engine does not
	// handle. Reaching it means a variant was added without a dispatch
	// arm.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrGoalOutOfRange marks a daily goal outside the accepted range.
	ErrGoalOutOfRange = errors.New("daily goal out of range")

	// ErrRemoteClassifier marks a failed remote classification call.
	// Always recovered by the heuristic fallback, never user-visible.
	ErrRemoteClassifier = errors.New("remote classifier unavailable")
)
