package wavio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	const (
		rate = 48000
		n    = 4800
	)
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(rate))
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	require.NoError(t, WriteMono(path, samples, rate))

	got, gotRate, err := ReadMono(path)
	require.NoError(t, err)

	assert.Equal(t, rate, gotRate)
	require.Len(t, got, n)
	for i := range samples {
		// 16-bit quantization bounds the per-sample error.
		assert.InDelta(t, samples[i], got[i], 1e-3, "sample %d", i)
	}
}

func TestWriteMonoClampsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hot.wav")
	require.NoError(t, WriteMono(path, []float64{2.0, -2.0, 0.0}, 48000))

	got, _, err := ReadMono(path)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.InDelta(t, 1.0, got[0], 1e-3)
	assert.InDelta(t, -1.0, got[1], 1e-3)
	assert.InDelta(t, 0.0, got[2], 1e-6)
}

func TestReadMonoErrors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, _, err := ReadMono(filepath.Join(t.TempDir(), "nope.wav"))
		assert.Error(t, err)
	})

	t.Run("not_a_wav_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.wav")
		require.NoError(t, os.WriteFile(path, []byte("definitely not audio"), 0o644))

		_, _, err := ReadMono(path)
		assert.ErrorIs(t, err, ErrNotWAV)
	})
}

func TestMaxValueForDepth(t *testing.T) {
	assert.Equal(t, maxInt16, maxValueForDepth(16))
	assert.Equal(t, maxInt24, maxValueForDepth(24))
	assert.Equal(t, maxInt32, maxValueForDepth(32))
	// Unknown depths fall back to 16-bit scaling.
	assert.Equal(t, maxInt16, maxValueForDepth(8))
}
