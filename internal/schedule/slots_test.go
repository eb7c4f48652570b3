package schedule

import (
	"testing"
	"time"
)

// 2025-03-05 is a Wednesday.
var testDate = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

func slotAt(hh, mm int) time.Time {
	return time.Date(2025, time.March, 5, hh, mm, 0, 0, time.UTC)
}

func TestSlotsForDateSingleWindow(t *testing.T) {
	windows, _ := ParseOperatingHours("12:00-15:00")
	slots := SlotsForDate(windows, testDate)

	want := []time.Time{
		slotAt(12, 0), slotAt(12, 30), slotAt(13, 0),
		slotAt(13, 30), slotAt(14, 0), slotAt(14, 30),
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d: %v", len(want), len(slots), slots)
	}
	for i := range want {
		if !slots[i].Equal(want[i]) {
			t.Fatalf("slot %d: expected %v, got %v", i, want[i], slots[i])
		}
	}
}

func TestSlotsForDateFinalSlotNeedsFullGranularity(t *testing.T) {
	// 21:15 close: the last start that still fits a full 30 minutes
	// is 20:30, never 20:45 or 21:00.
	windows, _ := ParseOperatingHours("19:00-21:15")
	slots := SlotsForDate(windows, testDate)
	last := slots[len(slots)-1]
	if !last.Equal(slotAt(20, 30)) {
		t.Fatalf("expected last slot 20:30, got %v", last)
	}
}

func TestSlotsForDateOverlappingWindowsDeduplicate(t *testing.T) {
	windows, _ := ParseOperatingHours("12:00-14:00, 13:00-15:00")
	slots := SlotsForDate(windows, testDate)
	seen := map[time.Time]bool{}
	for _, s := range slots {
		if seen[s] {
			t.Fatalf("duplicate slot %v", s)
		}
		seen[s] = true
	}
	// 12:00 through 14:30 inclusive.
	if len(slots) != 6 {
		t.Fatalf("expected 6 distinct slots, got %d: %v", len(slots), slots)
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i].After(slots[i-1]) {
			t.Fatalf("slots not ascending at %d: %v", i, slots)
		}
	}
}

func TestSlotsForDateRespectsDayMask(t *testing.T) {
	windows, _ := ParseOperatingHours("Sat: 12:00-15:00")
	if slots := SlotsForDate(windows, testDate); len(slots) != 0 {
		t.Fatalf("Wednesday should have no Saturday slots, got %v", slots)
	}
	saturday := time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)
	if slots := SlotsForDate(windows, saturday); len(slots) == 0 {
		t.Fatalf("expected Saturday slots")
	}
}

func TestSlotsForDateIgnoresTimeOfDay(t *testing.T) {
	windows, _ := ParseOperatingHours("12:00-15:00")
	a := SlotsForDate(windows, testDate)
	b := SlotsForDate(windows, testDate.Add(17*time.Hour+45*time.Minute))
	if len(a) != len(b) {
		t.Fatalf("time-of-day changed the grid: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("slot %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestIsBookable(t *testing.T) {
	windows, _ := ParseOperatingHours("12:00-15:00")
	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"first slot", slotAt(12, 0), true},
		{"last slot", slotAt(14, 30), true},
		{"window end", slotAt(15, 0), false},
		{"off-grid quarter hour", slotAt(12, 15), false},
		{"before opening", slotAt(11, 30), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBookable(windows, tc.at); got != tc.want {
				t.Fatalf("IsBookable(%v) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}
