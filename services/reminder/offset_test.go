package reminder

import "testing"

func TestResolveOffset_TotalAndRangeBound(t *testing.T) {
	for utcHour := 0; utcHour < 24; utcHour++ {
		for target := 0; target < 24; target++ {
			got := ResolveOffset(target, utcHour)
			if got < MinUTCOffset || got > MaxUTCOffset {
				t.Fatalf("ResolveOffset(%d, %d) = %d, outside [%d, %d]",
					target, utcHour, got, MinUTCOffset, MaxUTCOffset)
			}
		}
	}
}

func TestResolveOffset_Cases(t *testing.T) {
	cases := []struct {
		name    string
		target  int
		utcHour int
		want    int
	}{
		{"same hour", 10, 10, 0},
		{"simple positive", 12, 9, 3},
		{"simple negative", 9, 12, -3},
		{"wraps low end up", 10, 23, 11},
		{"wraps high end down", 23, 0, -1},
		{"boundary stays at +14", 14, 0, 14},
		{"boundary stays at -11", 0, 11, -11},
		{"exactly -12 wraps to +12", 0, 12, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveOffset(tc.target, tc.utcHour); got != tc.want {
				t.Fatalf("ResolveOffset(%d, %d) = %d, want %d", tc.target, tc.utcHour, got, tc.want)
			}
		})
	}
}

func TestResolveOffset_UniqueBucketPerHour(t *testing.T) {
	// For a fixed UTC hour, each target hour must map to a distinct bucket.
	const utcHour = 7
	seen := make(map[int]int)
	for target := 0; target < 24; target++ {
		off := ResolveOffset(target, utcHour)
		if prev, dup := seen[off]; dup {
			t.Fatalf("offset %d resolved for both target %d and %d", off, prev, target)
		}
		seen[off] = target
	}
}
