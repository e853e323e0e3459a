package dsp

import (
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// SpectralEstimate is a one-sided power spectral density in decibels.
// Freq ascends from 0 to Nyquist; Power holds the matching dB values.
// Both slices always have equal length.
type SpectralEstimate struct {
	Freq  []float64
	Power []float64
}

// Welch estimates the one-sided power spectral density of x in dB via
// Welch's method: the signal is split into Hann-windowed segments of
// segLen samples advancing by segLen-overlap, the magnitude-squared
// one-sided transform of each segment is scaled by 1/(fs*sum(w^2)), and
// the per-bin linear powers are averaged across segments before dB
// conversion.
//
// One-sided scaling doubles every bin except DC and Nyquist, so that the
// sum over the one-sided spectrum preserves total power.
//
// segLen is clamped to [MinSegmentLength, len(x)]; overlap defaults to
// segLen/2 when negative or not smaller than segLen. Inputs of
// minEstimateLength samples or fewer return a flat FloorDB spectrum over
// the default frequency axis instead of failing.
func Welch(x []float64, fs int, segLen, overlap int) SpectralEstimate {
	if len(x) <= minEstimateLength {
		return flatSpectrum(fs)
	}
	if segLen <= 0 {
		segLen = DefaultSegmentLength
	}
	if segLen < MinSegmentLength {
		segLen = MinSegmentLength
	}
	if segLen > len(x) {
		segLen = len(x)
	}
	if overlap < 0 || overlap >= segLen {
		overlap = segLen / 2
	}
	step := segLen - overlap

	win := HannWindow(segLen)
	// Window power normalization: U = sum(w^2).
	winPower := f64.DotProductUnsafe(win, win)

	fft := fourier.NewFFT(segLen)
	bins := segLen/2 + 1
	// The last coefficient is the Nyquist bin only for even lengths; for
	// odd lengths it still has a conjugate partner and must be doubled.
	hasNyquist := segLen%2 == 0
	acc := make([]float64, bins)
	segment := make([]float64, segLen)
	var coeffs []complex128

	nWindows := 0
	for start := 0; start+segLen <= len(x); start += step {
		src := x[start : start+segLen]
		for i := range segment {
			segment[i] = src[i] * win[i]
		}
		coeffs = fft.Coefficients(coeffs, segment)
		for i, c := range coeffs {
			p := (real(c)*real(c) + imag(c)*imag(c)) / (float64(fs) * winPower)
			if i != 0 && !(hasNyquist && i == bins-1) {
				p *= 2 // one-sided correction, DC and Nyquist excluded
			}
			acc[i] += p
		}
		nWindows++
	}
	if nWindows == 0 {
		return flatSpectrum(fs)
	}

	est := SpectralEstimate{
		Freq:  make([]float64, bins),
		Power: make([]float64, bins),
	}
	binWidth := float64(fs) / float64(segLen)
	for i := range est.Freq {
		est.Freq[i] = float64(i) * binWidth
		p := acc[i] / float64(nWindows)
		if p < EpsPower {
			p = EpsPower
		}
		est.Power[i] = 10.0 * math.Log10(p)
	}
	return est
}

// flatSpectrum is the degenerate-input sentinel: FloorDB across the default
// frequency axis for the given rate.
func flatSpectrum(fs int) SpectralEstimate {
	bins := DefaultSegmentLength/2 + 1
	est := SpectralEstimate{
		Freq:  make([]float64, bins),
		Power: make([]float64, bins),
	}
	binWidth := float64(fs) / float64(DefaultSegmentLength)
	for i := range est.Freq {
		est.Freq[i] = float64(i) * binWidth
		est.Power[i] = FloorDB
	}
	return est
}
