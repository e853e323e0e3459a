// Package dsp implements the signal-processing primitives of the comparison
// engine: signal conditioning, the Welch power-spectral-density estimator,
// a one-pole high-pass filter and the short-time RMS envelope.
//
// All functions operate on complete mono float64 buffers and never mutate
// their inputs.
package dsp

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// MixToMono averages multi-channel planar audio into a single mono channel.
// A single-channel input is copied unchanged. Channels must have equal
// length; extra samples beyond the shortest channel are dropped.
func MixToMono(channels [][]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	n := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}
	out := make([]float64, n)
	copy(out, channels[0][:n])
	if len(channels) == 1 {
		return out
	}
	for _, ch := range channels[1:] {
		for i := range out {
			out[i] += ch[i]
		}
	}
	f64.Scale(out, out, 1.0/float64(len(channels)))
	return out
}

// NormalizePeak returns x scaled so that its peak magnitude does not exceed
// 1.0. Signals whose peak is already within range are returned as an
// unmodified copy; quiet signals are never boosted. An empty input returns
// an empty slice.
func NormalizePeak(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak <= 1.0 {
		copy(out, x)
		return out
	}
	f64.Scale(out, x, 1.0/(peak+EpsPeak))
	return out
}

// Resample converts x from fsSrc to fsDst by linear interpolation over a
// normalized [0,1] time axis. This is a deliberately cheap approximation,
// not a band-limited resampler; the comparison metrics tolerate the
// resulting high-frequency error. Equal rates return x unchanged.
func Resample(x []float64, fsSrc, fsDst int) []float64 {
	if fsSrc == fsDst || len(x) == 0 {
		return x
	}
	nDst := int(math.Round(float64(len(x)) * float64(fsDst) / float64(fsSrc)))
	if nDst <= 0 {
		return nil
	}
	if len(x) == 1 {
		out := make([]float64, nDst)
		for i := range out {
			out[i] = x[0]
		}
		return out
	}
	out := make([]float64, nDst)
	// Both axes span [0,1]; source position of output sample i is
	// i/(nDst-1) mapped onto the source index scale.
	scale := float64(len(x)-1) / float64(nDst-1)
	if nDst == 1 {
		scale = 0
	}
	for i := range out {
		pos := float64(i) * scale
		j := int(pos)
		if j >= len(x)-1 {
			out[i] = x[len(x)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = x[j] + (x[j+1]-x[j])*frac
	}
	return out
}

// CropPair truncates both signals to the length of the shorter one.
func CropPair(a, b []float64) ([]float64, []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return a[:n], b[:n]
}
