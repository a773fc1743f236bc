package domain

// AnalysisSource records which path produced an analysis.
type AnalysisSource string

const (
	SourceStrict    AnalysisSource = "strict"
	SourceRemote    AnalysisSource = "remote"
	SourceHeuristic AnalysisSource = "heuristic"
)

// Analysis is the outcome of classifying one prompt. IsLazy and
// IsLearning are independent booleans — a prompt can match neither,
// or both.
type Analysis struct {
	IsLazy          bool           `json:"is_lazy"`
	IsLearning      bool           `json:"is_learning"`
	Reason          string         `json:"reason"`
	SuggestedPrompt string         `json:"suggested_prompt,omitempty"`
	Source          AnalysisSource `json:"source"`
}

// StrictModeReason is the fixed reason returned for every prompt in
// strict mode.
const StrictModeReason = "You are in strict mode. All prompts require reflection before submission."
