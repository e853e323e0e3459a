// Package markers locates calibration beeps in a signal and converts
// consecutive beep pairs into guarded sample ranges. Beeps segment a long
// capture into per-part sections; a recording without beeps simply yields
// no markers and no segments.
package markers

import (
	"sort"

	"github.com/audiocinema/go-audio-compare/internal/dsp"
)

// DetectorConfig parameterizes beep detection. The zero value is not
// useful; use DefaultDetectorConfig.
type DetectorConfig struct {
	// HighpassHz is the pre-filter cutoff. The one-pole high-pass
	// suppresses low-frequency program content so that short calibration
	// tones dominate the energy envelope. Zero disables the pre-filter.
	HighpassHz float64

	// WindowSec and HopSec shape the short-time RMS envelope.
	WindowSec float64
	HopSec    float64

	// ThresholdDB is the detection offset above the envelope median. The
	// median is robust against the sparse high-energy frames the detector
	// is meant to find.
	ThresholdDB float64

	// MinSeparationSec is the minimum time between two retained markers.
	MinSeparationSec float64
}

// DefaultDetectorConfig returns the canonical detector parameters.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		HighpassHz:       1000.0,
		WindowSec:        0.02,
		HopSec:           0.01,
		ThresholdDB:      10.0,
		MinSeparationSec: 0.6,
	}
}

// Detect returns the sample indices of detected calibration beeps in x,
// strictly ascending with at least MinSeparationSec between consecutive
// markers. A signal with no frames above threshold returns an empty list.
//
// The detector scans the dB envelope of the (optionally high-passed)
// signal, groups contiguous above-threshold frames into runs, picks the
// maximum-energy frame of each run (earliest on ties) and converts frame
// indices to sample indices via the hop offset.
func Detect(x []float64, fs int, cfg DetectorConfig) []int {
	y := x
	if cfg.HighpassHz > 0 {
		y = dsp.OnePoleHighpass(x, fs, cfg.HighpassHz)
	}
	env := dsp.ShortTimeRMS(y, fs, cfg.WindowSec, cfg.HopSec)
	if len(env.PowerDB) == 0 {
		return nil
	}

	threshold := median(env.PowerDB) + cfg.ThresholdDB

	// Run extraction: one marker per contiguous above-threshold run.
	var frames []int
	i := 0
	for i < len(env.PowerDB) {
		if env.PowerDB[i] <= threshold {
			i++
			continue
		}
		j := i
		best := i
		for j < len(env.PowerDB) && env.PowerDB[j] > threshold {
			if env.PowerDB[j] > env.PowerDB[best] {
				best = j
			}
			j++
		}
		frames = append(frames, best)
		i = j
	}
	if len(frames) == 0 {
		return nil
	}

	candidates := make([]int, len(frames))
	for k, f := range frames {
		candidates[k] = f * env.Hop
	}
	sort.Ints(candidates)

	// Greedy left-to-right separation: keep a marker only if it is at
	// least MinSeparationSec after the last retained one.
	minSep := cfg.MinSeparationSec * float64(fs)
	kept := candidates[:1]
	last := candidates[0]
	for _, m := range candidates[1:] {
		if float64(m-last) >= minSep {
			kept = append(kept, m)
			last = m
		}
	}
	return kept
}

// median returns the middle value of xs (mean of the two middle values for
// even lengths) without reordering xs.
func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}
