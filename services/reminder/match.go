package reminder

import (
	"math"
	"time"
)

// DaysUntil returns the whole-day distance between two normalized instants.
// Rounding tolerates residual sub-day drift left over from normalization.
func DaysUntil(todayNoon, dueNoon time.Time) int {
	return int(math.Round(dueNoon.Sub(todayNoon).Hours() / 24))
}

// MatchesLeadTime reports whether today is exactly leadDays before the due
// date. Both inputs must already be normalized via NormalizeToNoon (the due
// date additionally via AdjustDueDate). The rounded day-difference form is
// deliberate: exact-instant equality is brittle against timestamp skew.
func MatchesLeadTime(todayNoon, dueNoon time.Time, leadDays int) bool {
	return DaysUntil(todayNoon, dueNoon) == leadDays
}
