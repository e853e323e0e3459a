// Package testutil provides reusable signal synthesis and assertion
// helpers for the comparison engine's tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-9
	DBTolerance      = 0.01

	// MetricTolerance matches the identical-signal property: metrics of a
	// signal compared against itself must agree to 1e-6.
	MetricTolerance = 1e-6
)

// Sine synthesizes n samples of a freq-Hz sine at the given amplitude and
// sample rate.
func Sine(n int, freq, amplitude float64, fs int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(fs))
	}
	return x
}

// AddSine mixes a freq-Hz sine of the given amplitude into x in place and
// returns x for chaining.
func AddSine(x []float64, freq, amplitude float64, fs int) []float64 {
	for i := range x {
		x[i] += amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(fs))
	}
	return x
}

// BeepTrain synthesizes a durSec recording containing short toneHz bursts
// of burstSec at amplitude, starting every spacingSec from startSec. The
// floor between bursts is silence.
func BeepTrain(durSec float64, fs int, toneHz, amplitude, burstSec, spacingSec, startSec float64) []float64 {
	x := make([]float64, int(durSec*float64(fs)))
	burst := int(burstSec * float64(fs))
	for t := startSec; t < durSec; t += spacingSec {
		start := int(t * float64(fs))
		for i := 0; i < burst && start+i < len(x); i++ {
			x[start+i] = amplitude * math.Sin(2*math.Pi*toneHz*float64(i)/float64(fs))
		}
	}
	return x
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertStrictlyAscending verifies that a float slice strictly increases.
func AssertStrictlyAscending(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] <= s[i-1] {
			return assert.Fail(t, "not strictly ascending",
				"s[%d]=%f <= s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertStrictlyAscendingInts verifies that an int slice strictly increases.
func AssertStrictlyAscendingInts(t *testing.T, s []int, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] <= s[i-1] {
			return assert.Fail(t, "not strictly ascending",
				"s[%d]=%d <= s[%d]=%d", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertMaxAbsLE verifies that the peak magnitude of s does not exceed
// limit.
func AssertMaxAbsLE(t *testing.T, s []float64, limit float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.Abs(v) > limit {
			return assert.Fail(t, "magnitude above limit",
				"|s[%d]|=%f exceeds %f", i, math.Abs(v), limit)
		}
	}
	return true
}
