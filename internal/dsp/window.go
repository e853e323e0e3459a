package dsp

import "math"

// HannWindow returns the length-n Hann window
//
//	w[i] = 0.5 - 0.5*cos(2*pi*i/n)
//
// using the periodic form (denominator n, not n-1), which is the correct
// convention for averaged-periodogram spectral estimation.
func HannWindow(n int) []float64 {
	w := make([]float64, n)
	if n <= 0 {
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}
