package usage

import (
	"time"

	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

// ─── Counter Derivation ─────────────────────────────────────────────────────
// The daily history series is the source of truth; the today/week/month
// scalars are a cache recomputed from it on every touch. Independently
// incremented scalars drift from the history they claim to summarize,
// and the divergence is unrecoverable once the stale value is persisted.

// Derive recomputes the scalar counters from the daily series.
//   - Today: count of the current local day's entry.
//   - Week: sum over a trailing 7-local-day window including today.
//     A rolling window, not an ISO week number — ISO boundaries reset
//     the count mid-week, a rolling window is monotonically stable.
//   - Month: sum of daily entries within the current calendar month.
func Derive(u *domain.UsageState, now time.Time) {
	daily := u.History.Daily
	u.Today = CountFor(daily, DayKeyFor(now))
	u.Week = SumSince(daily, DayKeyFor(now.AddDate(0, 0, -6)))
	u.Month = SumMonth(daily, MonthKeyFor(now))
}

// ReconcileRollovers brings the usage state up to date with the clock.
// Idempotent: safe to call before every read or write, and calling it
// twice with the same now changes nothing after the first call.
//
// On a day-boundary crossing it backfills zero-count entries for days
// the process slept through, guarantees an entry for the current day
// (zeroing a stale one left by a clock anomaly), and advances the reset
// marks. The scalars are re-derived unconditionally.
func ReconcileRollovers(u *domain.UsageState, now time.Time, limits domain.Limits) {
	todayKey := DayKeyFor(now)
	lastKey := DayKeyFor(u.LastReset.Daily)

	if todayKey != lastKey {
		if DaysBetween(u.LastReset.Daily, now) > 1 {
			filled, err := FillGaps(u.History.Daily, lastKey, todayKey)
			if err != nil {
				// Corrupted reset mark — recover by treating yesterday
				// as the last seen day and carry on.
				filled, _ = FillGaps(u.History.Daily, YesterdayKey(now), todayKey)
			}
			u.History.Daily = Trim(filled, limits.DailyHistory)
		}

		// A fresh day starts from zero even if an entry for this key
		// already exists (stale data from a prior run at the same key).
		u.History.Daily = setCount(u.History.Daily, todayKey, 0, limits.DailyHistory)
		u.LastReset.Daily = now
	}

	if DaysBetween(u.LastReset.Weekly, now) >= 7 {
		u.LastReset.Weekly = now
	}
	if MonthKeyFor(now) != MonthKeyFor(u.LastReset.Monthly) {
		u.LastReset.Monthly = now
	}

	Derive(u, now)
}

// Record counts one prompt at now: reconciles first, then bumps the
// daily and monthly buckets and re-derives the scalars.
func Record(u *domain.UsageState, now time.Time, limits domain.Limits) {
	ReconcileRollovers(u, now, limits)
	u.History.Daily = Upsert(u.History.Daily, DayKeyFor(now), 1, limits.DailyHistory)
	u.History.Monthly = Upsert(u.History.Monthly, MonthKeyFor(now), 1, limits.MonthlyHistory)
	Derive(u, now)
}

// ResetToday zeroes the current day's counter and history entry, and
// removes the zeroed amount from the monthly bucket (clamped at zero).
// The week and month scalars are recomputed from the daily series,
// never subtracted directly, so nothing can go negative or
// double-count.
func ResetToday(u *domain.UsageState, now time.Time, limits domain.Limits) {
	zeroed := CountFor(u.History.Daily, DayKeyFor(now))
	u.History.Daily = setCount(u.History.Daily, DayKeyFor(now), 0, limits.DailyHistory)
	if zeroed > 0 {
		u.History.Monthly = Upsert(u.History.Monthly, MonthKeyFor(now), -zeroed, limits.MonthlyHistory)
	}
	u.LastReset.Daily = now
	Derive(u, now)
}

// Reset wipes history and counters entirely and re-anchors the reset
// marks at now.
func Reset(u *domain.UsageState, now time.Time) {
	*u = domain.UsageState{
		LastReset: domain.ResetMarks{Daily: now, Weekly: now, Monthly: now},
	}
}

// setCount forces the entry for key to an exact count, inserting it if
// absent.
func setCount(s domain.HistorySeries, key string, count, limit int) domain.HistorySeries {
	existing := CountFor(s, key)
	return Upsert(s, key, count-existing, limit)
}
