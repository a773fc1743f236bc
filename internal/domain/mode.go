package domain

import "fmt"

// Mode selects how aggressively ThinkFirst intervenes on submissions.
type Mode string

const (
	// ModeRelaxed never blocks: prompts are still counted, and the
	// local heuristic awards learning points, but no intervention.
	ModeRelaxed Mode = "relaxed"

	// ModeNormal classifies each prompt (remote with a heuristic
	// fallback) and intervenes on lazy ones.
	ModeNormal Mode = "normal"

	// ModeStrict intervenes on every prompt, independent of content.
	// No classification calls are made.
	ModeStrict Mode = "strict"
)

// ParseMode validates a mode string from config, storage, or the API.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRelaxed, ModeNormal, ModeStrict:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
