package domain

// ─── Boundary Interfaces ────────────────────────────────────────────────────
// Infrastructure implements these; the application layer depends on
// them.

// Store is durable key-value persistence for the state blob. Load
// reports ok=false when no blob has been saved yet.
type Store interface {
	Load() (blob []byte, ok bool, err error)
	Save(blob []byte) error
}

// Notifier delivers fire-and-forget events toward the UI layer.
// Implementations must not block the caller.
type Notifier interface {
	LevelUp(level int)
	InterventionRequired(prompt string, analysis Analysis)
}

// NopNotifier discards all events. Used by CLI one-shot commands and
// tests.
type NopNotifier struct{}

func (NopNotifier) LevelUp(int)                            {}
func (NopNotifier) InterventionRequired(string, Analysis)  {}
