package markers

import "math"

// Segment is a half-open sample range [Start, End) between two calibration
// beeps, after guard padding. End is always greater than Start.
type Segment struct {
	Start int
	End   int
}

// SegmentConfig parameterizes segment construction.
type SegmentConfig struct {
	// GuardSec is trimmed from both ends of the inter-marker range so the
	// beep transients themselves are excluded.
	GuardSec float64

	// MinLengthSec discards segments shorter than this after guarding.
	MinLengthSec float64
}

// DefaultSegmentConfig returns the canonical segment parameters.
func DefaultSegmentConfig() SegmentConfig {
	return SegmentConfig{
		GuardSec:     0.060,
		MinLengthSec: 0.25,
	}
}

// BuildSegments converts N sorted markers into up to N-1 guarded segments:
// segment i spans markers[i]+guard to markers[i+1]-guard. Segments that
// collapse (end <= start) or fall below MinLengthSec are discarded at
// construction. Fewer than two markers yield an empty list.
func BuildSegments(sortedMarkers []int, fs int, cfg SegmentConfig) []Segment {
	if len(sortedMarkers) < 2 {
		return nil
	}
	guard := int(math.Round(cfg.GuardSec * float64(fs)))
	minLen := cfg.MinLengthSec * float64(fs)

	var segs []Segment
	for i := 0; i < len(sortedMarkers)-1; i++ {
		a := sortedMarkers[i] + guard
		if a < 0 {
			a = 0
		}
		b := sortedMarkers[i+1] - guard
		if b < 0 {
			b = 0
		}
		if b <= a || float64(b-a) < minLen {
			continue
		}
		segs = append(segs, Segment{Start: a, End: b})
	}
	return segs
}
