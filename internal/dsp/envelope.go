package dsp

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// Envelope is a short-time RMS energy envelope in decibels.
type Envelope struct {
	// PowerDB holds one RMS level in dB per analysis frame.
	PowerDB []float64

	// Hop is the frame advance in samples. Frame i starts at sample i*Hop.
	Hop int
}

// ShortTimeRMS computes the short-time RMS envelope of x in dB using
// winSec-long frames advancing by hopSec. Window and hop are rounded to
// whole samples with a minimum of one sample each. Signals shorter than
// one window yield an empty envelope.
func ShortTimeRMS(x []float64, fs int, winSec, hopSec float64) Envelope {
	win := int(math.Round(winSec * float64(fs)))
	if win < 1 {
		win = 1
	}
	hop := int(math.Round(hopSec * float64(fs)))
	if hop < 1 {
		hop = 1
	}

	frames := 0
	if len(x) >= win {
		frames = 1 + (len(x)-win)/hop
	}
	env := Envelope{
		PowerDB: make([]float64, frames),
		Hop:     hop,
	}
	for i := 0; i < frames; i++ {
		seg := x[i*hop : i*hop+win]
		rms := math.Sqrt(f64.DotProductUnsafe(seg, seg)/float64(win) + EpsLog)
		env.PowerDB[i] = 20.0 * math.Log10(rms+EpsLog)
	}
	return env
}
