package usage

import (
	"sort"
	"strings"

	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

// ─── Rolling History Series ─────────────────────────────────────────────────
// All operations return a new series and preserve the invariants: at
// most one entry per bucket key, ascending key order, bounded length
// (oldest entries dropped first).

// Upsert adds delta to the entry for key, inserting it if absent.
// Counts are clamped at zero. The result is sorted and trimmed to
// limit.
func Upsert(s domain.HistorySeries, key string, delta, limit int) domain.HistorySeries {
	out := make(domain.HistorySeries, len(s), len(s)+1)
	copy(out, s)

	found := false
	for i := range out {
		if out[i].Key == key {
			out[i].Count += delta
			if out[i].Count < 0 {
				out[i].Count = 0
			}
			found = true
			break
		}
	}
	if !found {
		count := delta
		if count < 0 {
			count = 0
		}
		out = append(out, domain.HistoryEntry{Key: key, Count: count})
	}

	sortSeries(out)
	return Trim(out, limit)
}

// FillGaps inserts a zero-count entry for every day strictly between
// fromExclusive and toExclusive (day keys) that has no entry yet.
// Existing entries are never overwritten, so re-running on a consistent
// series is a no-op. Used after dormant periods so the daily chart does
// not silently skip days.
func FillGaps(s domain.HistorySeries, fromExclusive, toExclusive string) (domain.HistorySeries, error) {
	from, err := ParseDayKey(fromExclusive)
	if err != nil {
		return s, err
	}
	to, err := ParseDayKey(toExclusive)
	if err != nil {
		return s, err
	}

	have := make(map[string]bool, len(s))
	for _, e := range s {
		have[e.Key] = true
	}

	out := make(domain.HistorySeries, len(s))
	copy(out, s)

	for d := from.AddDate(0, 0, 1); d.Before(to); d = d.AddDate(0, 0, 1) {
		key := DayKeyFor(d)
		if !have[key] {
			out = append(out, domain.HistoryEntry{Key: key, Count: 0})
			have[key] = true
		}
	}

	sortSeries(out)
	return out, nil
}

// Trim keeps the most recent limit entries, dropping the oldest first.
// A non-positive limit leaves the series unbounded.
func Trim(s domain.HistorySeries, limit int) domain.HistorySeries {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[len(s)-limit:]
}

// CountFor returns the count for key, or 0 if no entry exists.
func CountFor(s domain.HistorySeries, key string) int {
	for _, e := range s {
		if e.Key == key {
			return e.Count
		}
	}
	return 0
}

// SumSince sums counts over entries whose key is >= fromKey. Day keys
// are zero-padded ISO dates, so lexicographic order is date order.
func SumSince(s domain.HistorySeries, fromKey string) int {
	total := 0
	for _, e := range s {
		if e.Key >= fromKey {
			total += e.Count
		}
	}
	return total
}

// SumMonth sums counts over daily entries within the given month
// (entries whose key starts with the "YYYY-MM" prefix).
func SumMonth(s domain.HistorySeries, monthKey string) int {
	total := 0
	for _, e := range s {
		if strings.HasPrefix(e.Key, monthKey) {
			total += e.Count
		}
	}
	return total
}

func sortSeries(s domain.HistorySeries) {
	sort.Slice(s, func(i, j int) bool { return s[i].Key < s[j].Key })
}
