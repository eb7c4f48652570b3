package schedule

import (
	"testing"
	"time"
)

func TestParseOperatingHoursSingleWindow(t *testing.T) {
	windows, fellBack := ParseOperatingHours("12:00-15:00")
	if fellBack {
		t.Fatalf("unexpected fallback")
	}
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	w := windows[0]
	if w.Start != 12*60 || w.End != 15*60 {
		t.Fatalf("unexpected window %+v", w)
	}
	if w.Days != AllDays {
		t.Fatalf("window without day prefix should cover all days, got %07b", w.Days)
	}
}

func TestParseOperatingHoursMultipleWindows(t *testing.T) {
	windows, fellBack := ParseOperatingHours("12:00-15:00, 19:00-21:00")
	if fellBack {
		t.Fatalf("unexpected fallback")
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if windows[0].Start != 12*60 || windows[1].Start != 19*60 {
		t.Fatalf("windows not ordered by start: %+v", windows)
	}
}

func TestParseOperatingHoursDayPrefix(t *testing.T) {
	windows, fellBack := ParseOperatingHours("Mon-Fri: 12:00-15:00, 19:00-21:00, Sat: 12:00-22:00")
	if fellBack {
		t.Fatalf("unexpected fallback")
	}
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}
	var weekday, saturday DaySet
	for _, w := range windows {
		if w.Start == 12*60 && w.End == 22*60 {
			saturday = w.Days
		} else {
			weekday = w.Days
		}
	}
	if !weekday.Has(time.Monday) || !weekday.Has(time.Friday) || weekday.Has(time.Saturday) {
		t.Fatalf("weekday mask wrong: %07b", weekday)
	}
	if !saturday.Has(time.Saturday) || saturday.Has(time.Sunday) {
		t.Fatalf("saturday mask wrong: %07b", saturday)
	}
}

func TestParseOperatingHoursDayPrefixPersists(t *testing.T) {
	// The second window carries no prefix, so it inherits Mon-Wed.
	windows, _ := ParseOperatingHours("Mon-Wed: 09:00-11:00, 13:00-15:00")
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	for _, w := range windows {
		if !w.Days.Has(time.Tuesday) || w.Days.Has(time.Thursday) {
			t.Fatalf("mask did not persist to window %+v", w)
		}
	}
}

func TestParseOperatingHoursWrappingDayRange(t *testing.T) {
	windows, _ := ParseOperatingHours("Sat-Mon: 10:00-14:00")
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	d := windows[0].Days
	for _, want := range []time.Weekday{time.Saturday, time.Sunday, time.Monday} {
		if !d.Has(want) {
			t.Fatalf("wrapping range missing %v", want)
		}
	}
	if d.Has(time.Wednesday) {
		t.Fatalf("wrapping range should not include Wednesday")
	}
}

func TestParseOperatingHoursDropsInvalidWindows(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"missing separator", "12:00, 19:00-21:00", 1},
		{"non-numeric", "ab:cd-15:00, 19:00-21:00", 1},
		{"start equals end", "12:00-12:00, 19:00-21:00", 1},
		{"start after end", "15:00-12:00, 19:00-21:00", 1},
		{"hour out of range", "25:00-26:00, 19:00-21:00", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			windows, fellBack := ParseOperatingHours(tc.raw)
			if fellBack {
				t.Fatalf("fallback despite one valid window")
			}
			if len(windows) != tc.want {
				t.Fatalf("expected %d windows, got %d: %+v", tc.want, len(windows), windows)
			}
		})
	}
}

func TestParseOperatingHoursFallback(t *testing.T) {
	for _, raw := range []string{"", "   ", "garbage", "25:00-26:00", "15:00-12:00"} {
		windows, fellBack := ParseOperatingHours(raw)
		if !fellBack {
			t.Fatalf("expected fallback for %q", raw)
		}
		if len(windows) != 1 {
			t.Fatalf("fallback should yield one window, got %d", len(windows))
		}
		w := windows[0]
		if w.Start != 11*60 || w.End != 21*60+30 || w.Days != AllDays {
			t.Fatalf("unexpected fallback window %+v", w)
		}
	}
}

func TestParseOperatingHoursDeterministic(t *testing.T) {
	raw := "19:00-21:00, 12:00-15:00"
	first, _ := ParseOperatingHours(raw)
	for i := 0; i < 5; i++ {
		again, _ := ParseOperatingHours(raw)
		if len(again) != len(first) {
			t.Fatalf("length changed between runs")
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("window %d changed between runs: %+v vs %+v", j, again[j], first[j])
			}
		}
	}
	if first[0].Start != 12*60 {
		t.Fatalf("windows not sorted by start: %+v", first)
	}
}
