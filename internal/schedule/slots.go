package schedule

import (
	"sort"
	"time"
)

// Granularity is the fixed spacing between bookable slot starts.
const Granularity = 30 * time.Minute

// SlotsForDate expands the service windows applicable on the given date
// into the ascending, deduplicated sequence of bookable start times.
// Within each window the starts are start, start+g, start+2g, ... while
// the start plus one full granularity still fits inside the window, so
// the final 30 minutes before closing is never independently bookable.
// Overlapping windows may emit the same candidate twice; duplicates are
// removed.  The result is fully materialized and identical across calls
// for the same inputs.
//
// The date's year, month and day are used in UTC; any time-of-day
// component is ignored.
func SlotsForDate(windows []Window, date time.Time) []time.Time {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	step := int(Granularity / time.Minute)
	seen := make(map[int]struct{})
	var minutes []int
	for _, w := range windows {
		if !w.Days.Has(midnight.Weekday()) {
			continue
		}
		for m := w.Start; m+step <= w.End; m += step {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			minutes = append(minutes, m)
		}
	}
	sort.Ints(minutes)
	slots := make([]time.Time, 0, len(minutes))
	for _, m := range minutes {
		slots = append(slots, midnight.Add(time.Duration(m)*time.Minute))
	}
	return slots
}

// IsBookable reports whether at lands exactly on one of the bookable
// slots the windows generate for its date.
func IsBookable(windows []Window, at time.Time) bool {
	at = at.UTC()
	for _, s := range SlotsForDate(windows, at) {
		if s.Equal(at) {
			return true
		}
	}
	return false
}
