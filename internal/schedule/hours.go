// Package schedule turns a venue's free-form operating-hours string into
// discrete bookable slot times.  Everything in this package is a pure
// function of its inputs: the same hours string and date always produce
// the same windows and slots, so callers may recompute freely instead of
// persisting the results.
package schedule

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// DaySet is a bitmask of weekdays a service window recurs on.  Bit n
// corresponds to time.Weekday(n), so Sunday is bit 0.
type DaySet uint8

// AllDays covers every weekday.
const AllDays DaySet = 0x7f

// Has reports whether the set contains the given weekday.
func (d DaySet) Has(w time.Weekday) bool { return d&(1<<uint(w)) != 0 }

func (d DaySet) with(w time.Weekday) DaySet { return d | 1<<uint(w) }

// Window is a recurring open interval during which bookings are
// offered, expressed as minutes of day.  Start is always strictly less
// than End for any window produced by ParseOperatingHours.
type Window struct {
	Start int    // inclusive start, minutes from midnight
	End   int    // exclusive end, minutes from midnight
	Days  DaySet // weekdays the window recurs on
}

// Default window used when an hours string yields no valid windows.
// Chosen so venues with broken data still offer a full service day.
const (
	defaultOpenMinute  = 11 * 60      // 11:00
	defaultCloseMinute = 21*60 + 30   // 21:30
)

var dayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// ParseOperatingHours parses a human-authored hours description such as
// "Mon-Fri: 12:00-15:00, 19:00-21:00" into an ordered set of service
// windows.  Windows are comma-separated; each is HH:MM-HH:MM with an
// optional leading day or day-range prefix that applies to it and to
// every following window until another prefix appears.  A window that
// fails to parse (missing separator, non-numeric component, start >= end)
// is dropped rather than treated as fatal.
//
// When zero valid windows remain, the fixed default window 11:00-21:30
// on all days is returned and fellBack is true so the caller can log the
// data-quality condition; a genuine schedule never reports fellBack.
func ParseOperatingHours(raw string) (windows []Window, fellBack bool) {
	days := AllDays
	for _, chunk := range strings.Split(raw, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		fields := strings.Fields(chunk)
		span := fields[len(fields)-1]
		if len(fields) > 1 {
			if d, ok := parseDaySpec(strings.Join(fields[:len(fields)-1], " ")); ok {
				days = d
			}
		}
		start, end, ok := parseSpan(span)
		if !ok || start >= end {
			continue
		}
		windows = append(windows, Window{Start: start, End: end, Days: days})
	}
	if len(windows) == 0 {
		return []Window{{Start: defaultOpenMinute, End: defaultCloseMinute, Days: AllDays}}, true
	}
	sort.Slice(windows, func(i, j int) bool {
		if windows[i].Start != windows[j].Start {
			return windows[i].Start < windows[j].Start
		}
		return windows[i].End < windows[j].End
	})
	return windows, false
}

// parseDaySpec interprets a prefix like "Mon-Fri" or "Sat", with an
// optional trailing colon.  Ranges may wrap around the week end
// ("Sat-Mon").  Unknown prefixes report ok=false and are ignored by the
// caller, leaving the previous day mask in effect.
func parseDaySpec(s string) (DaySet, bool) {
	s = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), ":"))
	if s == "" {
		return 0, false
	}
	if from, to, found := strings.Cut(s, "-"); found {
		a, okA := dayNames[strings.TrimSpace(from)]
		b, okB := dayNames[strings.TrimSpace(to)]
		if !okA || !okB {
			return 0, false
		}
		var d DaySet
		for w := a; ; w = (w + 1) % 7 {
			d = d.with(w)
			if w == b {
				break
			}
		}
		return d, true
	}
	if w, ok := dayNames[s]; ok {
		return DaySet(0).with(w), true
	}
	return 0, false
}

// parseSpan parses "HH:MM-HH:MM" into start and end minutes of day.
func parseSpan(s string) (start, end int, ok bool) {
	from, to, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	start, ok = parseMinuteOfDay(from)
	if !ok {
		return 0, 0, false
	}
	end, ok = parseMinuteOfDay(to)
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

// parseMinuteOfDay parses "HH:MM" into minutes from midnight.
func parseMinuteOfDay(s string) (int, bool) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
