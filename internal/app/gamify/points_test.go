package gamify_test

import (
	"testing"
	"time"

	"github.com/thinkfirst-app/thinkfirst/internal/app/gamify"
	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

func freshGamification() *domain.GamificationState {
	return &domain.GamificationState{DailyGoal: 5, Level: 1}
}

func TestAdjustPoints_Award(t *testing.T) {
	g := freshGamification()
	balance := 0
	now := time.Date(2026, 8, 10, 10, 0, 0, 0, time.Local)

	res := gamify.AdjustPoints(g, &balance, 2, now, domain.DefaultLimits())

	if res.Applied != 2 {
		t.Errorf("applied: expected 2, got %d", res.Applied)
	}
	if balance != 2 {
		t.Errorf("balance: expected 2, got %d", balance)
	}
	if g.TotalPoints != 2 {
		t.Errorf("total: expected 2, got %d", g.TotalPoints)
	}
	if len(g.DailyProgress) != 1 || g.DailyProgress[0].Points != 2 {
		t.Errorf("daily progress: %+v", g.DailyProgress)
	}
}

func TestAdjustPoints_FloorClamped(t *testing.T) {
	g := freshGamification()
	balance := 0
	now := time.Date(2026, 8, 10, 10, 0, 0, 0, time.Local)

	res := gamify.AdjustPoints(g, &balance, -1, now, domain.DefaultLimits())

	if balance != 0 {
		t.Errorf("balance must stay 0, got %d", balance)
	}
	if res.Applied != 0 {
		t.Errorf("applied delta must be 0, got %d", res.Applied)
	}
	if g.TotalPoints != 0 {
		t.Errorf("total points must not decrement, got %d", g.TotalPoints)
	}
}

func TestAdjustPoints_PenaltyAppliesWhenBalancePositive(t *testing.T) {
	g := freshGamification()
	balance := 3
	g.TotalPoints = 3
	now := time.Date(2026, 8, 10, 10, 0, 0, 0, time.Local)

	res := gamify.AdjustPoints(g, &balance, -1, now, domain.DefaultLimits())

	if res.Applied != -1 || balance != 2 || g.TotalPoints != 2 {
		t.Errorf("applied=%d balance=%d total=%d", res.Applied, balance, g.TotalPoints)
	}
}

func TestAdjustPoints_LevelUp(t *testing.T) {
	g := freshGamification()
	g.TotalPoints = 99
	g.Level = 1
	balance := 99
	now := time.Date(2026, 8, 10, 10, 0, 0, 0, time.Local)

	res := gamify.AdjustPoints(g, &balance, 2, now, domain.DefaultLimits())

	if !res.LeveledUp {
		t.Error("expected level-up at 101 points")
	}
	if res.NewLevel != 2 || g.Level != 2 {
		t.Errorf("expected level 2, got %d", g.Level)
	}

	// Next award within the same level does not fire again.
	res = gamify.AdjustPoints(g, &balance, 2, now, domain.DefaultLimits())
	if res.LeveledUp {
		t.Error("unexpected repeat level-up")
	}
}

func TestStreak_IncrementsFromYesterday(t *testing.T) {
	g := freshGamification()
	g.CurrentStreak = 3
	g.LongestStreak = 3
	now := time.Date(2026, 8, 10, 10, 0, 0, 0, time.Local)
	yesterdayHit := now.AddDate(0, 0, -1)
	g.LastGoalHit = &yesterdayHit

	balance := 0
	res := gamify.AdjustPoints(g, &balance, 5, now, domain.DefaultLimits())

	if !res.GoalHit {
		t.Fatal("expected goal hit at 5 points with goal 5")
	}
	if g.CurrentStreak != 4 {
		t.Errorf("streak: expected 4, got %d", g.CurrentStreak)
	}
	if g.LongestStreak != 4 {
		t.Errorf("longest: expected 4, got %d", g.LongestStreak)
	}

	// More points the same day: no further increment.
	gamify.AdjustPoints(g, &balance, 5, now.Add(2*time.Hour), domain.DefaultLimits())
	if g.CurrentStreak != 4 {
		t.Errorf("same-day idempotence violated: streak %d", g.CurrentStreak)
	}
}

func TestStreak_BrokenRestartsAtOne(t *testing.T) {
	g := freshGamification()
	g.CurrentStreak = 6
	g.LongestStreak = 6
	now := time.Date(2026, 8, 10, 10, 0, 0, 0, time.Local)
	staleHit := now.AddDate(0, 0, -4)
	g.LastGoalHit = &staleHit

	balance := 0
	gamify.AdjustPoints(g, &balance, 5, now, domain.DefaultLimits())

	if g.CurrentStreak != 1 {
		t.Errorf("broken streak must restart at 1, got %d", g.CurrentStreak)
	}
	if g.LongestStreak != 6 {
		t.Errorf("longest must be preserved, got %d", g.LongestStreak)
	}
	if g.LastGoalHit == nil || !g.LastGoalHit.Equal(now) {
		t.Errorf("lastGoalHit not updated")
	}
}

func TestStreak_FirstEverGoal(t *testing.T) {
	g := freshGamification()
	balance := 0
	now := time.Date(2026, 8, 10, 10, 0, 0, 0, time.Local)

	gamify.AdjustPoints(g, &balance, 5, now, domain.DefaultLimits())

	if g.CurrentStreak != 1 || g.LongestStreak != 1 {
		t.Errorf("first goal: streak=%d longest=%d", g.CurrentStreak, g.LongestStreak)
	}
}

func TestDailyProgress_Bounded(t *testing.T) {
	g := freshGamification()
	balance := 0
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.Local)

	for day := 0; day < 45; day++ {
		gamify.AdjustPoints(g, &balance, 1, start.AddDate(0, 0, day), domain.DefaultLimits())
	}

	if len(g.DailyProgress) > 30 {
		t.Errorf("daily progress exceeded bound: %d", len(g.DailyProgress))
	}
	// Most recent entries kept.
	last := g.DailyProgress[len(g.DailyProgress)-1]
	if last.Date != "2026-02-14" {
		t.Errorf("expected newest entry retained, got %s", last.Date)
	}
}

func TestReset(t *testing.T) {
	g := freshGamification()
	g.DailyGoal = 8
	g.TotalPoints = 250
	g.Level = 3
	g.CurrentStreak = 4
	balance := 12

	gamify.Reset(g, &balance)

	if balance != 0 || g.TotalPoints != 0 || g.Level != 1 || g.CurrentStreak != 0 {
		t.Errorf("reset left state: balance=%d total=%d level=%d streak=%d",
			balance, g.TotalPoints, g.Level, g.CurrentStreak)
	}
	if g.DailyGoal != 8 {
		t.Errorf("reset must keep the configured goal, got %d", g.DailyGoal)
	}
}
