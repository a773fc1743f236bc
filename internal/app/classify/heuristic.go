// Package classify decides whether a prompt is "lazy" or
// "learning-focused". Normal mode asks a remote model and falls back to
// a local pattern heuristic on any failure; relaxed mode uses only the
// heuristic; strict mode flags everything without looking at content.
package classify

import (
	"regexp"

	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

// ─── Heuristic Rules ────────────────────────────────────────────────────────
// The heuristic is a data table, not code: patterns can be tested and
// extended without touching the engine. Lazy and learning are
// independent labels — a prompt can match neither or both, and no
// precedence is applied.

type ruleLabel int

const (
	labelLazy ruleLabel = iota
	labelLearning
)

type rule struct {
	re    *regexp.Regexp
	label ruleLabel
}

var heuristicRules = []rule{
	// Requests for direct solutions, code, or finished artifacts.
	{regexp.MustCompile(`(?i)solve this`), labelLazy},
	{regexp.MustCompile(`(?i)write code for`), labelLazy},
	{regexp.MustCompile(`(?i)fix this code`), labelLazy},
	{regexp.MustCompile(`(?i)code solution`), labelLazy},
	{regexp.MustCompile(`(?i)do this for me`), labelLazy},
	{regexp.MustCompile(`(?i)what'?s the answer`), labelLazy},
	{regexp.MustCompile(`(?i)answer this question`), labelLazy},
	{regexp.MustCompile(`(?i)help me with this assignment`), labelLazy},
	{regexp.MustCompile(`(?i)complete this for me`), labelLazy},
	{regexp.MustCompile(`(?i)write a program`), labelLazy},
	{regexp.MustCompile(`(?i)write me a`), labelLazy},
	{regexp.MustCompile(`(?i)give me a`), labelLazy},
	{regexp.MustCompile(`(?i)create a`), labelLazy},

	// Explanatory and conceptual requests.
	{regexp.MustCompile(`(?i)explain the concept`), labelLearning},
	{regexp.MustCompile(`(?i)help me understand`), labelLearning},
	{regexp.MustCompile(`(?i)what are the principles`), labelLearning},
	{regexp.MustCompile(`(?i)how does this work`), labelLearning},
	{regexp.MustCompile(`(?i)why does this happen`), labelLearning},
}

const (
	heuristicLazyReason  = "Pattern matched with lazy usage"
	heuristicCleanReason = "No lazy patterns detected"
)

// Heuristic classifies a prompt with the local pattern table. Pure
// function, no side effects; the caller awards learning points.
func Heuristic(prompt string) domain.Analysis {
	a := domain.Analysis{Source: domain.SourceHeuristic}
	for _, r := range heuristicRules {
		if !r.re.MatchString(prompt) {
			continue
		}
		switch r.label {
		case labelLazy:
			a.IsLazy = true
		case labelLearning:
			a.IsLearning = true
		}
	}
	if a.IsLazy {
		a.Reason = heuristicLazyReason
	} else {
		a.Reason = heuristicCleanReason
	}
	return a
}
