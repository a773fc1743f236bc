package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetrics_Registered(t *testing.T) {
	// promauto registers with the default registry automatically.
	// Exercise each metric once and verify it gathers without panicking.
	PromptsRecorded.WithLabelValues("claude.ai").Inc()
	Classifications.WithLabelValues("heuristic", "lazy").Inc()
	Interventions.WithLabelValues("normal").Inc()
	PointsAwarded.Add(2)
	LevelUps.Inc()
	CurrentStreak.Set(4)
	Resets.WithLabelValues("today").Inc()
	StateSaves.Inc()
	StateSaveErrors.Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}

	expected := []string{
		"thinkfirst_prompts_recorded_total",
		"thinkfirst_classifications_total",
		"thinkfirst_interventions_total",
		"thinkfirst_points_awarded_total",
		"thinkfirst_level_ups_total",
		"thinkfirst_current_streak_days",
		"thinkfirst_resets_total",
		"thinkfirst_state_saves_total",
		"thinkfirst_state_save_errors_total",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}
