package domain

// ─── Command Variants ───────────────────────────────────────────────────────
// The UI layer drives the engine through a closed set of commands, one
// variant per operation. The engine dispatches with an exhaustive type
// switch, so an unhandled command is a compile-visible gap instead of a
// silently ignored action string.

// Command is the sealed command type. Only the variants below satisfy
// it.
type Command interface {
	isCommand()
}

// GetStateCmd returns the current state after rollover reconciliation.
type GetStateCmd struct{}

// SetModeCmd switches the intervention mode.
type SetModeCmd struct {
	Mode Mode
}

// SetDailyGoalCmd changes the daily thinking-points goal.
type SetDailyGoalCmd struct {
	Goal int
}

// AdjustPointsCmd adds (or removes, floor-clamped at zero) thinking
// points.
type AdjustPointsCmd struct {
	Delta int
}

// RecordPromptCmd records one detected prompt submission.
type RecordPromptCmd struct {
	Prompt string
	Site   string
}

// ResetTodayCmd zeroes the current day's counter and history entry.
type ResetTodayCmd struct{}

// ResetAllCmd wipes usage history, counters, and thinking points.
type ResetAllCmd struct{}

// ClassifyCmd classifies a prompt without recording it.
type ClassifyCmd struct {
	Prompt string
}

func (GetStateCmd) isCommand()     {}
func (SetModeCmd) isCommand()      {}
func (SetDailyGoalCmd) isCommand() {}
func (AdjustPointsCmd) isCommand() {}
func (RecordPromptCmd) isCommand() {}
func (ResetTodayCmd) isCommand()   {}
func (ResetAllCmd) isCommand()     {}
func (ClassifyCmd) isCommand()     {}
