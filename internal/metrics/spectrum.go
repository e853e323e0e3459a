package metrics

import (
	"math"
	"sort"

	"github.com/audiocinema/go-audio-compare/internal/dsp"
)

// RelativeSpectrum interpolates cur onto the frequency grid of ref and
// returns the pointwise dB difference cur - ref over ref's grid. Positive
// values mean the current signal carries more energy at that frequency.
func RelativeSpectrum(ref, cur dsp.SpectralEstimate) []float64 {
	rel := make([]float64, len(ref.Freq))
	for i, f := range ref.Freq {
		rel[i] = interp(f, cur.Freq, cur.Power) - ref.Power[i]
	}
	return rel
}

// SpecDev95DB returns the 95th percentile of the absolute relative spectrum
// restricted to [lowHz, highHz] on the reference grid. If the restriction
// is empty the unrestricted spectrum is used; an empty spectrum yields 0.
func SpecDev95DB(freq, rel []float64, lowHz, highHz float64) float64 {
	abs := make([]float64, 0, len(rel))
	for i, f := range freq {
		if f >= lowHz && f <= highHz {
			abs = append(abs, math.Abs(rel[i]))
		}
	}
	if len(abs) == 0 {
		for _, v := range rel {
			abs = append(abs, math.Abs(v))
		}
	}
	if len(abs) == 0 {
		return 0.0
	}
	return percentile(abs, 95.0)
}

// percentile computes the p-th percentile of values using linear
// interpolation between closest ranks, matching the convention the verdict
// thresholds were calibrated against. values is reordered in place.
func percentile(values []float64, p float64) float64 {
	sort.Float64s(values)
	if len(values) == 1 {
		return values[0]
	}
	pos := p / 100.0 * float64(len(values)-1)
	lo := int(pos)
	if lo >= len(values)-1 {
		return values[len(values)-1]
	}
	frac := pos - float64(lo)
	return values[lo] + (values[lo+1]-values[lo])*frac
}

// interp evaluates the piecewise-linear function defined by (xs, ys) at x,
// clamping to the first/last value outside the domain. xs must ascend.
func interp(x float64, xs, ys []float64) float64 {
	if len(xs) == 0 {
		return 0.0
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[len(xs)-1] {
		return ys[len(ys)-1]
	}
	// First index with xs[i] > x; the containing interval is [i-1, i].
	i := sort.SearchFloat64s(xs, x)
	if i < len(xs) && xs[i] == x {
		return ys[i]
	}
	x0, x1 := xs[i-1], xs[i]
	y0, y1 := ys[i-1], ys[i]
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}
