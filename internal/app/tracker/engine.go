// Package tracker implements the ThinkFirst engine: the single
// authoritative state blob and every operation the UI layer can drive
// against it. One mutex serializes command handlers, giving the same
// ordering guarantee as the extension's one-event-at-a-time message
// loop; the remote classification call always runs outside the lock
// and re-enters through a fresh lock, so handlers never cache state
// across that boundary.
package tracker

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thinkfirst-app/thinkfirst/internal/app/classify"
	"github.com/thinkfirst-app/thinkfirst/internal/app/gamify"
	"github.com/thinkfirst-app/thinkfirst/internal/app/usage"
	"github.com/thinkfirst-app/thinkfirst/internal/domain"
	"github.com/thinkfirst-app/thinkfirst/internal/infra/metrics"
)

// learningAward is the thinking-points bonus for a learning-focused
// prompt.
const learningAward = 2

// Options configures an Engine.
type Options struct {
	Store      domain.Store
	Notifier   domain.Notifier
	Classifier *classify.Classifier
	Limits     domain.Limits

	// DefaultDailyGoal seeds the daily goal for fresh state and for
	// blobs that predate the gamification block. A goal already in the
	// blob always wins. Zero means the shipped default.
	DefaultDailyGoal int

	// Now overrides the clock; nil means time.Now. Tests drive
	// calendar boundaries through it.
	Now func() time.Time
}

// Engine owns the state blob and persists it after every mutation.
type Engine struct {
	mu          sync.Mutex
	state       *domain.State
	store       domain.Store
	notify      domain.Notifier
	classifier  *classify.Classifier
	limits      domain.Limits
	defaultGoal int
	now         func() time.Time

	wg sync.WaitGroup // in-flight async classifications
}

// New loads the persisted state (merging defaults non-destructively)
// and returns a ready engine. Corrupt or absent state degrades to
// defaults; nothing here is fatal.
func New(opts Options) *Engine {
	e := &Engine{
		store:       opts.Store,
		notify:      opts.Notifier,
		classifier:  opts.Classifier,
		limits:      opts.Limits,
		defaultGoal: opts.DefaultDailyGoal,
		now:         opts.Now,
	}
	if e.notify == nil {
		e.notify = domain.NopNotifier{}
	}
	if e.classifier == nil {
		e.classifier = classify.New(nil)
	}
	if e.limits == (domain.Limits{}) {
		e.limits = domain.DefaultLimits()
	}
	if e.now == nil {
		e.now = time.Now
	}

	now := e.now()
	e.state = e.loadState(now)
	usage.ReconcileRollovers(&e.state.Usage, now, e.limits)
	e.persist()
	return e
}

// loadState reads and merges the persisted blob, falling back to
// defaults on any corruption.
func (e *Engine) loadState(now time.Time) *domain.State {
	blob, ok, err := e.store.Load()
	if err != nil {
		log.Printf("[tracker] load state failed, starting fresh: %v", err)
		return e.defaultState(now)
	}
	if !ok {
		return e.defaultState(now)
	}

	// Unmarshal over defaults: fields absent from an older blob keep
	// their default values, real data wins where present.
	st := e.defaultState(now)
	if err := json.Unmarshal(blob, st); err != nil {
		log.Printf("[tracker] corrupt state blob, starting fresh: %v", err)
		return e.defaultState(now)
	}
	st.Normalize(now)
	return st
}

// defaultState is DefaultState with the configured daily goal applied.
// Seeding happens before the blob is unmarshaled on top, so a goal
// present in the blob still wins.
func (e *Engine) defaultState(now time.Time) *domain.State {
	st := domain.DefaultState(now)
	if e.defaultGoal > 0 {
		st.Gamification.DailyGoal = e.defaultGoal
	}
	return st
}

// Wait blocks until in-flight async classifications finish. Called on
// shutdown and by tests.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// persist writes the blob. Callers hold the lock. Persistence failure
// is logged, never propagated — the in-memory state stays
// authoritative.
func (e *Engine) persist() {
	blob, err := json.Marshal(e.state)
	if err != nil {
		metrics.StateSaveErrors.Inc()
		log.Printf("[tracker] marshal state: %v", err)
		return
	}
	if err := e.store.Save(blob); err != nil {
		metrics.StateSaveErrors.Inc()
		log.Printf("[tracker] save state: %v", err)
		return
	}
	metrics.StateSaves.Inc()
}

// snapshot returns a deep copy the caller may hold across yields.
func (e *Engine) snapshot() domain.State {
	return cloneState(e.state)
}

// ─── Commands ───────────────────────────────────────────────────────────────

// GetState reconciles rollovers and returns the current state. Reads
// go through reconciliation too, so a dashboard opened after midnight
// never shows yesterday's counters.
func (e *Engine) GetState() domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	usage.ReconcileRollovers(&e.state.Usage, e.now(), e.limits)
	e.persist()
	return e.snapshot()
}

// SetMode switches the intervention mode.
func (e *Engine) SetMode(mode domain.Mode) (domain.State, error) {
	if _, err := domain.ParseMode(string(mode)); err != nil {
		return domain.State{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Mode = mode
	e.persist()
	return e.snapshot(), nil
}

// SetDailyGoal changes the daily thinking-points goal.
func (e *Engine) SetDailyGoal(goal int) (domain.State, error) {
	if goal < 1 || goal > 1000 {
		return domain.State{}, domain.ErrGoalOutOfRange
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Gamification.DailyGoal = goal
	e.persist()
	return e.snapshot(), nil
}

// AdjustPoints applies a thinking-points delta (floor-clamped at zero)
// and fires a level-up notification when the level increases.
func (e *Engine) AdjustPoints(delta int) domain.State {
	e.mu.Lock()
	now := e.now()
	res := gamify.AdjustPoints(&e.state.Gamification, &e.state.ThinkingPoints, delta, now, e.limits)
	metrics.CurrentStreak.Set(float64(e.state.Gamification.CurrentStreak))
	if res.Applied > 0 {
		metrics.PointsAwarded.Add(float64(res.Applied))
	}
	e.persist()
	snap := e.snapshot()
	e.mu.Unlock()

	if res.LeveledUp {
		metrics.LevelUps.Inc()
		e.notify.LevelUp(res.NewLevel)
	}
	return snap
}

// RecordPrompt is the hot path: one call per detected submission.
// Updates history and counters synchronously, then classifies the
// prompt asynchronously — the intervention decision reaches the UI via
// the notifier, never by blocking the detector.
func (e *Engine) RecordPrompt(prompt, site string) domain.State {
	e.mu.Lock()
	now := e.now()

	usage.Record(&e.state.Usage, now, e.limits)

	e.state.PromptLog = append(e.state.PromptLog, domain.PromptLogEntry{
		ID:        uuid.New().String(),
		Prompt:    prompt,
		Site:      site,
		Timestamp: now,
		Mode:      e.state.Mode,
	})
	if n := len(e.state.PromptLog); n > e.limits.PromptLog {
		e.state.PromptLog = e.state.PromptLog[n-e.limits.PromptLog:]
	}
	e.state.LastPrompt = prompt

	mode := e.state.Mode
	e.persist()
	snap := e.snapshot()
	e.mu.Unlock()

	metrics.PromptsRecorded.WithLabelValues(site).Inc()

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.react(mode, prompt)
	}()

	return snap
}

// react classifies a recorded prompt and applies the consequences:
// learning prompts earn points, intervention-worthy ones are pushed to
// the UI. Runs outside the state lock; the points award re-enters
// through AdjustPoints with fresh state.
func (e *Engine) react(mode domain.Mode, prompt string) {
	analysis := e.classifier.Classify(context.Background(), mode, prompt)
	metrics.Classifications.WithLabelValues(string(analysis.Source), verdict(analysis)).Inc()

	if analysis.IsLearning {
		e.AdjustPoints(learningAward)
	}

	if classify.InterventionFor(mode, analysis) {
		metrics.Interventions.WithLabelValues(string(mode)).Inc()
		e.notify.InterventionRequired(prompt, analysis)
	}
}

// Classify classifies a prompt on demand (without recording a
// submission) and awards learning points exactly like the async path.
func (e *Engine) Classify(ctx context.Context, prompt string) domain.Analysis {
	e.mu.Lock()
	mode := e.state.Mode
	e.mu.Unlock()

	analysis := e.classifier.Classify(ctx, mode, prompt)
	metrics.Classifications.WithLabelValues(string(analysis.Source), verdict(analysis)).Inc()

	if analysis.IsLearning {
		e.AdjustPoints(learningAward)
	}
	return analysis
}

// ResetToday zeroes the current day's counter and history entry.
func (e *Engine) ResetToday() domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	usage.ResetToday(&e.state.Usage, e.now(), e.limits)
	metrics.Resets.WithLabelValues("today").Inc()
	e.persist()
	return e.snapshot()
}

// ResetAll wipes usage history, counters, prompt log, and thinking
// points. Full wipe, not incremental; the configured mode and daily
// goal survive.
func (e *Engine) ResetAll() domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	usage.Reset(&e.state.Usage, now)
	gamify.Reset(&e.state.Gamification, &e.state.ThinkingPoints)
	e.state.PromptLog = nil
	e.state.LastPrompt = ""
	metrics.Resets.WithLabelValues("all").Inc()
	metrics.CurrentStreak.Set(0)
	e.persist()
	return e.snapshot()
}

// verdict folds an analysis into a metric label.
func verdict(a domain.Analysis) string {
	switch {
	case a.IsLazy && a.IsLearning:
		return "both"
	case a.IsLazy:
		return "lazy"
	case a.IsLearning:
		return "learning"
	}
	return "none"
}

// cloneState deep-copies the state so callers can hold it across
// yields without racing the engine.
func cloneState(s *domain.State) domain.State {
	out := *s
	out.Usage.History.Daily = append(domain.HistorySeries(nil), s.Usage.History.Daily...)
	out.Usage.History.Monthly = append(domain.HistorySeries(nil), s.Usage.History.Monthly...)
	out.Gamification.DailyProgress = append([]domain.DailyProgress(nil), s.Gamification.DailyProgress...)
	out.PromptLog = append([]domain.PromptLogEntry(nil), s.PromptLog...)
	if s.Gamification.LastGoalHit != nil {
		hit := *s.Gamification.LastGoalHit
		out.Gamification.LastGoalHit = &hit
	}
	return out
}
