package reminder

import "time"

// NormalizeToNoon canonicalizes a timestamp to noon UTC of the calendar day it
// falls on once shifted into the given offset. Comparing raw timestamps across
// offsets is unsafe because stored values carry arbitrary time-of-day
// components; pinning everything to a fixed hour makes same-day comparisons
// exact. Idempotent for values that are already offset-local noon.
func NormalizeToNoon(t time.Time, offsetHours int) time.Time {
	shifted := t.Add(time.Duration(offsetHours) * time.Hour).UTC()
	y, m, d := shifted.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// AdjustDueDate adds half a day to a raw due-date value before normalization.
// Upstream clients record due dates at local midnight, which a plain
// offset-shift would attribute to the prior UTC day for negative offsets.
// Applied to every due-date input, never to "now".
func AdjustDueDate(t time.Time) time.Time {
	return t.Add(12 * time.Hour)
}
