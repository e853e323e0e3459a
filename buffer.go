package compare

import (
	"time"

	"github.com/audiocinema/go-audio-compare/internal/dsp"
)

// AudioBuffer is a complete mono recording: an ordered sequence of float64
// samples and the rate they were captured at. Buffers are treated as
// immutable once produced; the pipeline copies rather than mutates.
type AudioBuffer struct {
	Samples []float64
	Rate    int
}

// NewBuffer wraps samples captured at rate Hz.
func NewBuffer(samples []float64, rate int) *AudioBuffer {
	return &AudioBuffer{Samples: samples, Rate: rate}
}

// NewBufferFromChannels mixes multi-channel planar audio down to mono and
// wraps it. Pass a single channel for mono input.
func NewBufferFromChannels(channels [][]float64, rate int) *AudioBuffer {
	return &AudioBuffer{Samples: dsp.MixToMono(channels), Rate: rate}
}

// Len returns the number of samples.
func (b *AudioBuffer) Len() int { return len(b.Samples) }

// Duration returns the buffer length as wall time.
func (b *AudioBuffer) Duration() time.Duration {
	if b.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Len()) / float64(b.Rate) * float64(time.Second))
}

// conditioned returns a peak-normalized copy of b, resampled to targetRate
// when the rates differ. The amplitude invariant |x| <= 1.0 holds on the
// result; quiet signals are never boosted.
func (b *AudioBuffer) conditioned(targetRate int) *AudioBuffer {
	x := dsp.NormalizePeak(b.Samples)
	if b.Rate != targetRate {
		x = dsp.Resample(x, b.Rate, targetRate)
	}
	return &AudioBuffer{Samples: x, Rate: targetRate}
}
