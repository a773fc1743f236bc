// Package usage implements the ThinkFirst accounting core: calendar
// bucketing, the bounded rolling history series, and the derivation of
// the today/week/month counters from that history.
package usage

import (
	"fmt"
	"time"

	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

const dayKeyLayout = "2006-01-02"

// DayKeyFor returns the "YYYY-MM-DD" bucket key for the calendar date
// of t in t's own location. Never converts to UTC — a UTC conversion
// shifts the day boundary and attributes events to the wrong local day.
func DayKeyFor(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// MonthKeyFor returns the "YYYY-MM" bucket key for t's local month.
func MonthKeyFor(t time.Time) string {
	return t.Format("2006-01")
}

// ParseDayKey parses a "YYYY-MM-DD" key back to a local date (midnight,
// local zone). Malformed keys yield domain.ErrInvalidBucketKey; callers
// recover with the current date instead of propagating, so corrupted
// persisted state cannot crash the engine.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dayKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidBucketKey, key)
	}
	return t, nil
}

// DaysBetween returns the whole-day difference between the calendar
// dates of a and b (positive when b is later). It compares civil dates,
// not raw durations — millisecond subtraction is off by an hour across
// DST transitions.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}

// YesterdayKey returns the day key for the calendar day before now.
func YesterdayKey(now time.Time) string {
	return DayKeyFor(now.AddDate(0, 0, -1))
}
