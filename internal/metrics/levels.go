// Package metrics derives the level and spectral-balance metrics that feed
// the verdict: RMS and crest levels, band energies, the relative spectrum
// between two estimates, and its 95th-percentile deviation.
package metrics

import (
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/audiocinema/go-audio-compare/internal/dsp"
)

// RMSDB returns the RMS level of x in dB:
//
//	20*log10(sqrt(mean(x^2) + eps) + eps)
//
// The epsilon appears both inside and outside the square root so that the
// logarithm stays finite for all-zero signals, flooring near -200 dB.
func RMSDB(x []float64) float64 {
	return 20.0 * math.Log10(rms(x)+dsp.EpsLog)
}

// CrestDB returns the crest factor of x in dB, the ratio of peak magnitude
// to RMS level. Non-constant finite signals always yield a non-negative
// crest factor.
func CrestDB(x []float64) float64 {
	peak := dsp.EpsLog
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return 20.0 * math.Log10(peak/(rms(x)+dsp.EpsLog))
}

func rms(x []float64) float64 {
	if len(x) == 0 {
		return math.Sqrt(dsp.EpsLog)
	}
	return math.Sqrt(f64.DotProductUnsafe(x, x)/float64(len(x)) + dsp.EpsLog)
}

// DeadChannel reports whether the current signal is so much quieter than
// the reference that no reproduction is assumed to have occurred. The test
// is asymmetric: a louder current signal never trips it.
func DeadChannel(refRMSDB, curRMSDB, dropDB float64) bool {
	return curRMSDB < refRMSDB-dropDB
}
