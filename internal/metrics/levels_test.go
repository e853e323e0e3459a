package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/audiocinema/go-audio-compare/internal/testutil"
)

func TestRMSDB(t *testing.T) {
	const fs = 48000

	t.Run("full_scale_sine", func(t *testing.T) {
		x := testutil.Sine(fs, 1000, 1.0, fs)
		// RMS of a unit sine is 1/sqrt(2), i.e. -3.0103 dB.
		assert.InDelta(t, -3.0103, RMSDB(x), 1e-3)
	})

	t.Run("sign_invariant", func(t *testing.T) {
		x := testutil.Sine(fs, 440, 0.3, fs)
		neg := make([]float64, len(x))
		for i, v := range x {
			neg[i] = -v
		}
		assert.InDelta(t, RMSDB(x), RMSDB(neg), 1e-12)
	})

	t.Run("half_amplitude_is_six_db_down", func(t *testing.T) {
		loud := testutil.Sine(fs, 1000, 0.8, fs)
		quiet := testutil.Sine(fs, 1000, 0.4, fs)
		assert.InDelta(t, -6.0206, RMSDB(quiet)-RMSDB(loud), 1e-3)
	})

	t.Run("silence_floors_near_minus_200", func(t *testing.T) {
		assert.InDelta(t, -200.0, RMSDB(make([]float64, 1000)), 1e-3)
	})

	t.Run("empty_input_is_finite", func(t *testing.T) {
		assert.InDelta(t, -200.0, RMSDB(nil), 1e-3)
	})
}

func TestCrestDB(t *testing.T) {
	const fs = 48000

	t.Run("sine_crest_is_three_db", func(t *testing.T) {
		x := testutil.Sine(fs, 1000, 0.5, fs)
		assert.InDelta(t, 3.0103, CrestDB(x), 1e-3)
	})

	t.Run("amplitude_invariant", func(t *testing.T) {
		a := testutil.Sine(fs, 1000, 0.9, fs)
		b := testutil.Sine(fs, 1000, 0.05, fs)
		assert.InDelta(t, CrestDB(a), CrestDB(b), 1e-9)
	})

	t.Run("impulse_has_high_crest", func(t *testing.T) {
		x := make([]float64, 1000)
		x[500] = 1.0
		// Peak 1.0 over RMS 1/sqrt(1000): 10*log10(1000) = 30 dB.
		assert.InDelta(t, 30.0, CrestDB(x), 1e-3)
	})

	t.Run("silence_is_finite", func(t *testing.T) {
		got := CrestDB(make([]float64, 1000))
		testutil.AssertNoNaNOrInf(t, []float64{got})
	})
}

func TestDeadChannel(t *testing.T) {
	tests := []struct {
		name     string
		refRMSDB float64
		curRMSDB float64
		dropDB   float64
		want     bool
	}{
		{"well_below_reference", -20, -35, 10, true},
		{"slightly_quieter", -20, -25, 10, false},
		{"exactly_at_threshold", -20, -30, 10, false},
		{"just_past_threshold", -20, -30.001, 10, true},
		{"louder_never_dead", -20, -5, 10, false},
		{"equal_levels", -20, -20, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeadChannel(tt.refRMSDB, tt.curRMSDB, tt.dropDB))
		})
	}
}
