package classify

import (
	"context"
	"log"

	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

// RemoteAnalyzer is the remote classification service boundary.
// Satisfied by RemoteClient; tests substitute fakes.
type RemoteAnalyzer interface {
	Analyze(ctx context.Context, prompt string) (domain.Analysis, error)
	Rewrite(ctx context.Context, prompt string) (string, error)
}

// Classifier selects the classification path by mode.
type Classifier struct {
	remote RemoteAnalyzer // nil → heuristic only (no key configured)
}

// New builds a classifier. remote may be nil, in which case normal mode
// degrades to the heuristic path.
func New(remote RemoteAnalyzer) *Classifier {
	return &Classifier{remote: remote}
}

// Classify runs the mode state machine for one prompt.
//
//   - strict: no remote or heuristic call; every prompt requires
//     reflection, independent of content.
//   - relaxed: heuristic only — used to award learning points, never to
//     block. No remote call (cost avoidance).
//   - normal: remote with heuristic fallback on any failure; lazy
//     results get a best-effort learning-focused rewrite.
func (c *Classifier) Classify(ctx context.Context, mode domain.Mode, prompt string) domain.Analysis {
	switch mode {
	case domain.ModeStrict:
		return domain.Analysis{
			Reason: domain.StrictModeReason,
			Source: domain.SourceStrict,
		}

	case domain.ModeRelaxed:
		return Heuristic(prompt)
	}

	// Normal mode.
	if c.remote == nil {
		return Heuristic(prompt)
	}

	analysis, err := c.remote.Analyze(ctx, prompt)
	if err != nil {
		log.Printf("[classify] remote analysis failed, using heuristic: %v", err)
		return Heuristic(prompt)
	}

	if analysis.IsLazy {
		// Secondary call; never blocks the verdict.
		if suggestion, err := c.remote.Rewrite(ctx, prompt); err != nil {
			log.Printf("[classify] rewrite failed: %v", err)
		} else {
			analysis.SuggestedPrompt = suggestion
		}
	}

	return analysis
}

// InterventionFor decides whether the UI must intervene before the
// prompt is submitted.
func InterventionFor(mode domain.Mode, a domain.Analysis) bool {
	switch mode {
	case domain.ModeStrict:
		return true
	case domain.ModeNormal:
		return a.IsLazy
	}
	return false
}
