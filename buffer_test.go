package compare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audiocinema/go-audio-compare/internal/testutil"
)

func TestAudioBuffer(t *testing.T) {
	t.Run("len_and_duration", func(t *testing.T) {
		b := NewBuffer(make([]float64, 24000), 48000)
		assert.Equal(t, 24000, b.Len())
		assert.Equal(t, 500*time.Millisecond, b.Duration())
	})

	t.Run("zero_rate_duration", func(t *testing.T) {
		b := NewBuffer(make([]float64, 100), 0)
		assert.Equal(t, time.Duration(0), b.Duration())
	})

	t.Run("from_channels_mixes_down", func(t *testing.T) {
		b := NewBufferFromChannels([][]float64{{1, 0}, {0, 1}}, 48000)
		require.Equal(t, 2, b.Len())
		assert.InDelta(t, 0.5, b.Samples[0], 1e-12)
		assert.InDelta(t, 0.5, b.Samples[1], 1e-12)
	})
}

func TestConditioned(t *testing.T) {
	t.Run("normalizes_hot_signal", func(t *testing.T) {
		b := NewBuffer([]float64{2.0, -1.0, 0.5}, 48000)
		c := b.conditioned(48000)
		testutil.AssertMaxAbsLE(t, c.Samples, 1.0)
		// Original buffer untouched.
		assert.Equal(t, 2.0, b.Samples[0])
	})

	t.Run("resamples_to_target_rate", func(t *testing.T) {
		b := NewBuffer(testutil.Sine(24000, 440, 0.5, 24000), 24000)
		c := b.conditioned(48000)
		assert.Equal(t, 48000, c.Rate)
		assert.Equal(t, 48000, c.Len())
	})

	t.Run("matching_rate_is_copy_only", func(t *testing.T) {
		b := NewBuffer(testutil.Sine(1000, 440, 0.5, 48000), 48000)
		c := b.conditioned(48000)
		assert.Equal(t, b.Samples, c.Samples)
	})
}
