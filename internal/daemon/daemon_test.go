package daemon

import (
	"testing"
)

func TestNewWithConfig_SeedsConfiguredDailyGoal(t *testing.T) {
	t.Setenv("THINKFIRST_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Gamification.DefaultDailyGoal = 10
	cfg.Notifications.Desktop = false

	d, err := NewWithConfig(cfg, "test")
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	defer d.Close()

	if got := d.Engine.GetState().Gamification.DailyGoal; got != 10 {
		t.Errorf("fresh state goal = %d, want configured 10", got)
	}
}

func TestNewWithConfig_GoalSurvivesRestart(t *testing.T) {
	t.Setenv("THINKFIRST_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Notifications.Desktop = false

	d, err := NewWithConfig(cfg, "test")
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	if _, err := d.Engine.SetDailyGoal(8); err != nil {
		t.Fatalf("SetDailyGoal: %v", err)
	}
	d.Close()

	// A later config change must not override the goal the user set.
	cfg.Gamification.DefaultDailyGoal = 3
	d2, err := NewWithConfig(cfg, "test")
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	defer d2.Close()

	if got := d2.Engine.GetState().Gamification.DailyGoal; got != 8 {
		t.Errorf("goal after restart = %d, want persisted 8", got)
	}
}
