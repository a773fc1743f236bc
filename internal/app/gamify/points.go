// Package gamify implements the thinking-points economy: the point
// balance, per-day progress, goal streaks, and levels. All functions
// are pure state transformations; notification side effects belong to
// the caller.
package gamify

import (
	"sort"
	"time"

	"github.com/thinkfirst-app/thinkfirst/internal/app/usage"
	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

// Result reports what an adjustment actually did.
type Result struct {
	// Applied is the delta actually applied after floor-clamping. A
	// requested -1 on a zero balance applies 0, and total points move
	// by the applied delta, not the requested one.
	Applied   int
	LeveledUp bool
	NewLevel  int
	GoalHit   bool
}

// AdjustPoints applies delta to the thinking-points balance and mirrors
// the applied delta into total points and today's daily progress. The
// balance, total, and progress entries are all floored at zero. Runs
// the streak evaluation whenever today's progress reaches the daily
// goal and recomputes the level.
func AdjustPoints(g *domain.GamificationState, balance *int, delta int, now time.Time, limits domain.Limits) Result {
	newBalance := *balance + delta
	if newBalance < 0 {
		newBalance = 0
	}
	applied := newBalance - *balance
	*balance = newBalance

	g.TotalPoints += applied
	if g.TotalPoints < 0 {
		g.TotalPoints = 0
	}

	today := usage.DayKeyFor(now)
	g.DailyProgress = bumpProgress(g.DailyProgress, today, applied, limits.DailyProgress)

	var res Result
	res.Applied = applied

	if pointsFor(g.DailyProgress, today) >= g.DailyGoal && g.DailyGoal > 0 {
		res.GoalHit = true
		evaluateStreak(g, now)
	}

	oldLevel := g.Level
	g.Level = domain.LevelFor(g.TotalPoints)
	res.NewLevel = g.Level
	res.LeveledUp = g.Level > oldLevel

	return res
}

// evaluateStreak updates the goal streak for a goal hit at now.
// Idempotent within a day: once today's goal has counted, further
// point-earning events change nothing but the hit timestamp.
func evaluateStreak(g *domain.GamificationState, now time.Time) {
	today := usage.DayKeyFor(now)
	yesterday := usage.YesterdayKey(now)

	lastGoalDate := ""
	if g.LastGoalHit != nil {
		lastGoalDate = usage.DayKeyFor(*g.LastGoalHit)
	}

	switch {
	case lastGoalDate == yesterday:
		g.CurrentStreak++
		if g.CurrentStreak > g.LongestStreak {
			g.LongestStreak = g.CurrentStreak
		}
	case lastGoalDate != today:
		// Fresh or broken-then-restarted streak.
		g.CurrentStreak = 1
		if g.LongestStreak < 1 {
			g.LongestStreak = 1
		}
	}

	hit := now
	g.LastGoalHit = &hit
}

// Reset wipes points, streaks, level, and progress. Used by the
// full-state reset.
func Reset(g *domain.GamificationState, balance *int) {
	goal := g.DailyGoal
	*g = domain.GamificationState{DailyGoal: goal, Level: 1}
	*balance = 0
}

// bumpProgress adds applied points to the entry for day, creating it if
// absent, flooring at zero, keeping the series sorted and bounded.
func bumpProgress(s []domain.DailyProgress, day string, applied, limit int) []domain.DailyProgress {
	out := make([]domain.DailyProgress, len(s), len(s)+1)
	copy(out, s)

	found := false
	for i := range out {
		if out[i].Date == day {
			out[i].Points += applied
			if out[i].Points < 0 {
				out[i].Points = 0
			}
			found = true
			break
		}
	}
	if !found {
		pts := applied
		if pts < 0 {
			pts = 0
		}
		out = append(out, domain.DailyProgress{Date: day, Points: pts})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func pointsFor(s []domain.DailyProgress, day string) int {
	for _, p := range s {
		if p.Date == day {
			return p.Points
		}
	}
	return 0
}
