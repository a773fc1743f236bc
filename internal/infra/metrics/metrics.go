// Package metrics provides Prometheus metrics for ThinkFirst —
// counters for recorded prompts, classification outcomes, and the
// gamification layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Prompts ────────────────────────────────────────────────────────────────

// PromptsRecorded tracks detected prompt submissions by site.
var PromptsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "thinkfirst",
	Name:      "prompts_recorded_total",
	Help:      "Total detected prompt submissions.",
}, []string{"site"})

// ─── Classification ─────────────────────────────────────────────────────────

// Classifications tracks classification results by source and verdict.
var Classifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "thinkfirst",
	Name:      "classifications_total",
	Help:      "Total prompt classifications.",
}, []string{"source", "verdict"})

// Interventions tracks interventions requested toward the UI.
var Interventions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "thinkfirst",
	Name:      "interventions_total",
	Help:      "Interventions requested before prompt submission.",
}, []string{"mode"})

// ─── Gamification ───────────────────────────────────────────────────────────

// PointsAwarded tracks thinking points actually applied (positive
// deltas only).
var PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "thinkfirst",
	Name:      "points_awarded_total",
	Help:      "Thinking points awarded after floor-clamping.",
})

// LevelUps tracks level-up events.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "thinkfirst",
	Name:      "level_ups_total",
	Help:      "Total level-up events.",
})

// CurrentStreak exposes the current goal streak.
var CurrentStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "thinkfirst",
	Name:      "current_streak_days",
	Help:      "Current consecutive-day goal streak.",
})

// ─── State ──────────────────────────────────────────────────────────────────

// Resets tracks user-initiated resets by scope (today, all).
var Resets = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "thinkfirst",
	Name:      "resets_total",
	Help:      "User-initiated counter resets.",
}, []string{"scope"})

// StateSaves tracks persistence writes.
var StateSaves = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "thinkfirst",
	Name:      "state_saves_total",
	Help:      "State blob writes to the store.",
})

// StateSaveErrors tracks failed persistence writes.
var StateSaveErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "thinkfirst",
	Name:      "state_save_errors_total",
	Help:      "Failed state blob writes.",
})
