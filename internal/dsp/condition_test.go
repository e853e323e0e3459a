package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMixToMono(t *testing.T) {
	t.Run("averages_two_channels", func(t *testing.T) {
		left := []float64{1.0, 0.0, -1.0}
		right := []float64{0.0, 1.0, -1.0}
		got := MixToMono([][]float64{left, right})
		require.Len(t, got, 3)
		assert.InDelta(t, 0.5, got[0], 1e-12)
		assert.InDelta(t, 0.5, got[1], 1e-12)
		assert.InDelta(t, -1.0, got[2], 1e-12)
	})

	t.Run("single_channel_copied", func(t *testing.T) {
		src := []float64{0.25, -0.5}
		got := MixToMono([][]float64{src})
		assert.Equal(t, src, got)
		// Must be a copy, not an alias.
		got[0] = 99
		assert.Equal(t, 0.25, src[0])
	})

	t.Run("uneven_channels_truncate", func(t *testing.T) {
		got := MixToMono([][]float64{{1, 1, 1}, {1, 1}})
		assert.Len(t, got, 2)
	})

	t.Run("no_channels", func(t *testing.T) {
		assert.Nil(t, MixToMono(nil))
	})
}

func TestNormalizePeak(t *testing.T) {
	t.Run("loud_signal_scaled_into_range", func(t *testing.T) {
		x := []float64{2.0, -1.5, 0.5}
		got := NormalizePeak(x)
		for _, v := range got {
			assert.LessOrEqual(t, v, 1.0)
			assert.GreaterOrEqual(t, v, -1.0)
		}
		// Relative shape preserved.
		assert.InDelta(t, x[1]/x[0], got[1]/got[0], 1e-9)
	})

	t.Run("quiet_signal_never_boosted", func(t *testing.T) {
		x := []float64{0.1, -0.05}
		got := NormalizePeak(x)
		assert.Equal(t, x, got)
	})

	t.Run("peak_exactly_one_untouched", func(t *testing.T) {
		x := []float64{1.0, -0.2}
		assert.Equal(t, x, NormalizePeak(x))
	})

	t.Run("empty_buffer_returns_empty", func(t *testing.T) {
		assert.Empty(t, NormalizePeak(nil))
	})

	t.Run("does_not_mutate_input", func(t *testing.T) {
		x := []float64{4.0}
		_ = NormalizePeak(x)
		assert.Equal(t, 4.0, x[0])
	})
}

func TestResample(t *testing.T) {
	t.Run("equal_rates_unchanged", func(t *testing.T) {
		x := []float64{1, 2, 3}
		got := Resample(x, 48000, 48000)
		assert.Equal(t, x, got)
	})

	t.Run("output_length_follows_ratio", func(t *testing.T) {
		x := make([]float64, 48000)
		got := Resample(x, 48000, 44100)
		assert.Len(t, got, 44100)

		got = Resample(x, 48000, 96000)
		assert.Len(t, got, 96000)
	})

	t.Run("constant_signal_stays_constant", func(t *testing.T) {
		x := make([]float64, 1000)
		for i := range x {
			x[i] = 0.7
		}
		got := Resample(x, 44100, 48000)
		for _, v := range got {
			assert.InDelta(t, 0.7, v, 1e-12)
		}
	})

	t.Run("linear_ramp_preserved", func(t *testing.T) {
		x := make([]float64, 100)
		for i := range x {
			x[i] = float64(i) / 99.0
		}
		got := Resample(x, 100, 250)
		require.Len(t, got, 250)
		assert.InDelta(t, 0.0, got[0], 1e-12)
		assert.InDelta(t, 1.0, got[len(got)-1], 1e-12)
		for i, v := range got {
			expected := float64(i) / float64(len(got)-1)
			assert.InDelta(t, expected, v, 1e-9, "sample %d", i)
		}
	})

	t.Run("empty_input", func(t *testing.T) {
		assert.Empty(t, Resample(nil, 44100, 48000))
	})
}

func TestCropPair(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{5, 6}
	ca, cb := CropPair(a, b)
	assert.Len(t, ca, 2)
	assert.Len(t, cb, 2)
	assert.Equal(t, []float64{1, 2}, ca)
}
