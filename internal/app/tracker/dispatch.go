package tracker

import (
	"context"
	"fmt"

	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

// Result is the response to a dispatched command. State is set for
// every command; Analysis only for ClassifyCmd.
type Result struct {
	State    domain.State
	Analysis *domain.Analysis
}

// Dispatch routes a command to its handler. The type switch is
// exhaustive over the sealed command set — a new variant without an
// arm lands in the ErrUnknownCommand default, which the command tests
// pin down.
func (e *Engine) Dispatch(ctx context.Context, cmd domain.Command) (Result, error) {
	switch c := cmd.(type) {
	case domain.GetStateCmd:
		return Result{State: e.GetState()}, nil

	case domain.SetModeCmd:
		st, err := e.SetMode(c.Mode)
		return Result{State: st}, err

	case domain.SetDailyGoalCmd:
		st, err := e.SetDailyGoal(c.Goal)
		return Result{State: st}, err

	case domain.AdjustPointsCmd:
		return Result{State: e.AdjustPoints(c.Delta)}, nil

	case domain.RecordPromptCmd:
		return Result{State: e.RecordPrompt(c.Prompt, c.Site)}, nil

	case domain.ResetTodayCmd:
		return Result{State: e.ResetToday()}, nil

	case domain.ResetAllCmd:
		return Result{State: e.ResetAll()}, nil

	case domain.ClassifyCmd:
		analysis := e.Classify(ctx, c.Prompt)
		return Result{State: e.GetState(), Analysis: &analysis}, nil

	default:
		return Result{}, fmt.Errorf("%w: %T", domain.ErrUnknownCommand, cmd)
	}
}
