package reminder

import (
	"testing"
	"time"
)

func TestMatchesLeadTime(t *testing.T) {
	today := time.Date(2025, time.December, 25, 12, 0, 0, 0, time.UTC)
	due := time.Date(2025, time.December, 26, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		due  time.Time
		lead int
		want bool
	}{
		{"one day before, lead 1", due, 1, true},
		{"one day before, lead 2", due, 2, false},
		{"due today, lead 0", today, 0, true},
		{"due today, lead 1", today, 1, false},
		{"already past, lead 1", today.AddDate(0, 0, -3), 1, false},
		{"a week out, lead 7", today.AddDate(0, 0, 7), 7, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchesLeadTime(today, tc.due, tc.lead); got != tc.want {
				t.Fatalf("MatchesLeadTime(%v, %d) = %v, want %v", tc.due, tc.lead, got, tc.want)
			}
		})
	}
}

func TestMatchesLeadTime_ToleratesSubDayDrift(t *testing.T) {
	// Rounding must absorb residual drift well under half a day.
	today := time.Date(2025, time.December, 25, 12, 0, 0, 0, time.UTC)
	due := time.Date(2025, time.December, 26, 12, 0, 0, 0, time.UTC)

	for _, drift := range []time.Duration{-5 * time.Hour, -30 * time.Minute, 30 * time.Minute, 5 * time.Hour} {
		if !MatchesLeadTime(today, due.Add(drift), 1) {
			t.Fatalf("drift %v broke the lead-1 match", drift)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	today := time.Date(2025, time.December, 25, 12, 0, 0, 0, time.UTC)
	if got := DaysUntil(today, today.AddDate(0, 0, 4)); got != 4 {
		t.Fatalf("DaysUntil = %d, want 4", got)
	}
	if got := DaysUntil(today, today.AddDate(0, 0, -2)); got != -2 {
		t.Fatalf("DaysUntil = %d, want -2", got)
	}
}
