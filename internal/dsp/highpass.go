package dsp

import "math"

// OnePoleHighpass applies a first-order recursive high-pass filter
//
//	y[n] = a*(y[n-1] + x[n] - x[n-1]),  a = RC/(RC+dt),  RC = 1/(2*pi*fc)
//
// and returns the filtered signal. Cutoff frequencies below 1 Hz are
// clamped to 1 Hz to keep the recursion stable.
func OnePoleHighpass(x []float64, fs int, cutoffHz float64) []float64 {
	if cutoffHz < 1.0 {
		cutoffHz = 1.0
	}
	dt := 1.0 / float64(fs)
	rc := 1.0 / (2.0 * math.Pi * cutoffHz)
	a := rc / (rc + dt)

	y := make([]float64, len(x))
	var yPrev, xPrev float64
	for n, v := range x {
		yPrev = a * (yPrev + v - xPrev)
		y[n] = yPrev
		xPrev = v
	}
	return y
}
