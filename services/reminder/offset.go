package reminder

// Valid UTC offsets span -12..+14 at whole-hour granularity. Sub-hour zones
// (e.g. +5:30) are not modeled.
const (
	MinUTCOffset = -12
	MaxUTCOffset = 14
)

// ResolveOffset returns the single UTC offset bucket whose local wall clock
// currently reads targetLocalHour:00, given the current UTC hour. The raw
// difference is wrapped back into the valid offset range.
func ResolveOffset(targetLocalHour, currentUTCHour int) int {
	offset := targetLocalHour - currentUTCHour
	if offset <= MinUTCOffset {
		offset += 24
	}
	if offset > MaxUTCOffset {
		offset -= 24
	}
	return offset
}
