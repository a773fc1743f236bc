// Package domain defines the ThinkFirst core types.
// The whole engine operates over a single persisted state blob; every
// type here is JSON-serializable and carries no infrastructure
// dependency.
package domain

import "time"

// SchemaVersion is the current version of the persisted state blob.
// Loads of older (or version-less) blobs are merged non-destructively
// onto defaults rather than discarded.
const SchemaVersion = 1

// ─── Usage History ──────────────────────────────────────────────────────────

// HistoryEntry is one bucket of counted prompts. Key is a calendar
// bucket key: "YYYY-MM-DD" for daily series, "YYYY-MM" for monthly.
type HistoryEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// HistorySeries is an ordered sequence of HistoryEntry, ascending by
// bucket key, at most one entry per key, bounded to a retention limit.
// Both invariants are maintained by usage.Upsert and usage.FillGaps.
type HistorySeries []HistoryEntry

// UsageHistory holds the bounded per-bucket series.
// The daily series is the source of truth: the week and month scalars
// are always derived from it, never incremented independently.
type UsageHistory struct {
	Daily   HistorySeries `json:"daily"`
	Monthly HistorySeries `json:"monthly"`
}

// ResetMarks records when each counter window last rolled over.
type ResetMarks struct {
	Daily   time.Time `json:"daily"`
	Weekly  time.Time `json:"weekly"`
	Monthly time.Time `json:"monthly"`
}

// UsageState is the accounting core: scalar counters plus the history
// they are derived from. Today covers the current local day, Week a
// trailing 7-local-day window including today, Month the current
// calendar month.
type UsageState struct {
	Today     int          `json:"today"`
	Week      int          `json:"week"`
	Month     int          `json:"month"`
	History   UsageHistory `json:"history"`
	LastReset ResetMarks   `json:"last_reset"`
}

// ─── Gamification ───────────────────────────────────────────────────────────

// DailyProgress is one day's earned thinking points, keyed by local day.
type DailyProgress struct {
	Date   string `json:"date"` // DayKey, "YYYY-MM-DD"
	Points int    `json:"points"`
}

// GamificationState tracks the thinking-points economy: goal streaks,
// level, and a bounded per-day progress series.
type GamificationState struct {
	DailyGoal     int             `json:"daily_goal"`
	CurrentStreak int             `json:"current_streak"`
	LongestStreak int             `json:"longest_streak"`
	LastGoalHit   *time.Time      `json:"last_goal_hit"`
	Level         int             `json:"level"`
	TotalPoints   int             `json:"total_points"`
	DailyProgress []DailyProgress `json:"daily_progress"`
}

// LevelFor returns the level for a total-points balance:
// floor(points/100) + 1.
func LevelFor(totalPoints int) int {
	if totalPoints < 0 {
		totalPoints = 0
	}
	return totalPoints/100 + 1
}

// ─── Prompt Log ─────────────────────────────────────────────────────────────

// PromptLogEntry records one detected prompt submission.
type PromptLogEntry struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Site      string    `json:"site"`
	Timestamp time.Time `json:"timestamp"`
	Mode      Mode      `json:"mode"`
}

// ─── State Blob ─────────────────────────────────────────────────────────────

// State is the single authoritative state blob. It is loaded once at
// startup, mutated in place by engine operations, and written back to
// the store after every mutation.
type State struct {
	Version        int               `json:"version"`
	Mode           Mode              `json:"mode"`
	Usage          UsageState        `json:"usage"`
	Gamification   GamificationState `json:"gamification"`
	ThinkingPoints int               `json:"thinking_points"`
	PromptLog      []PromptLogEntry  `json:"prompt_log"`
	LastPrompt     string            `json:"last_prompt"`
}

// DefaultState returns a fresh state for first run, with reset marks
// anchored at now.
func DefaultState(now time.Time) *State {
	return &State{
		Version: SchemaVersion,
		Mode:    ModeNormal,
		Usage: UsageState{
			LastReset: ResetMarks{Daily: now, Weekly: now, Monthly: now},
		},
		Gamification: GamificationState{
			DailyGoal: 5,
			Level:     1,
		},
	}
}

// Normalize backfills fields an older or partially-written blob may
// lack. Real data is kept; only absent or out-of-range fields get
// defaults. Never destructive.
func (s *State) Normalize(now time.Time) {
	if s.Version <= 0 {
		s.Version = SchemaVersion
	}
	if _, err := ParseMode(string(s.Mode)); err != nil {
		s.Mode = ModeNormal
	}
	if s.Usage.LastReset.Daily.IsZero() {
		s.Usage.LastReset.Daily = now
	}
	if s.Usage.LastReset.Weekly.IsZero() {
		s.Usage.LastReset.Weekly = now
	}
	if s.Usage.LastReset.Monthly.IsZero() {
		s.Usage.LastReset.Monthly = now
	}
	if s.Gamification.DailyGoal <= 0 {
		s.Gamification.DailyGoal = 5
	}
	if s.Gamification.TotalPoints < 0 {
		s.Gamification.TotalPoints = 0
	}
	if s.ThinkingPoints < 0 {
		s.ThinkingPoints = 0
	}
	// History counts are derived into the scalar counters, so a
	// negative count in a damaged blob would surface there too.
	clampCounts(s.Usage.History.Daily)
	clampCounts(s.Usage.History.Monthly)
	for i := range s.Gamification.DailyProgress {
		if s.Gamification.DailyProgress[i].Points < 0 {
			s.Gamification.DailyProgress[i].Points = 0
		}
	}
	// Level is a pure function of total points; recompute rather than
	// trust the stored value.
	s.Gamification.Level = LevelFor(s.Gamification.TotalPoints)
}

func clampCounts(s HistorySeries) {
	for i := range s {
		if s[i].Count < 0 {
			s[i].Count = 0
		}
	}
}

// ─── Retention Limits ───────────────────────────────────────────────────────

// Limits bounds the retained history. These are configuration values,
// not structural constraints; the defaults match the shipped product.
type Limits struct {
	DailyHistory   int // daily usage buckets kept
	MonthlyHistory int // monthly usage buckets kept
	PromptLog      int // prompt log entries kept
	DailyProgress  int // gamification progress days kept
}

// DefaultLimits returns the shipped retention limits.
func DefaultLimits() Limits {
	return Limits{
		DailyHistory:   30,
		MonthlyHistory: 12,
		PromptLog:      100,
		DailyProgress:  30,
	}
}
