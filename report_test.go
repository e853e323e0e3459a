package compare

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedResult() *Result {
	return &Result{
		Metrics: MetricResult{
			RefRMSDB:    -12.345678,
			CurRMSDB:    -24.691356,
			DiffRMSDB:   -12.345678,
			RefCrestDB:  3.0102999,
			CurCrestDB:  3.0102999,
			DiffCrestDB: 0.0,
			RefBandsDB:  map[string]float64{"LF": -20.11111, "MF": -18.5},
			CurBandsDB:  map[string]float64{"LF": -32.45678, "MF": -18.5},
			DiffBandsDB: map[string]float64{"LF": -12.34567, "MF": 0.0},
			SpecDev95DB: 13.131313,
			DeadChannel: true,
		},
		Ref: SignalMarks{
			Markers:  []int{24000, 72000},
			Segments: []SampleRange{{Start: 26880, End: 69120}},
		},
		Cur: SignalMarks{
			Markers:  []int{24001, 72001},
			Segments: []SampleRange{{Start: 26881, End: 69121}},
		},
		Verdict:     Failed,
		Flags:       []Flag{FlagDeadChannel, FlagBandLevel, FlagSpectralDeviation, FlagRMSDrop},
		FailedBands: []string{"LF"},
		SampleRate:  48000,
	}
}

func TestBuildReport(t *testing.T) {
	res := failedResult()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := buildReportAt(res, DefaultConfig(), "ref.wav", "cap.wav", now)

	t.Run("identity_and_timestamp", func(t *testing.T) {
		assert.Equal(t, "go-audio-compare", r.App)
		assert.Equal(t, "2.0", r.Version)
		assert.Equal(t, "2026-01-02T03:04:05Z", r.TimestampUTC)
		assert.Equal(t, 48000, r.SampleRateHz)
		assert.Equal(t, "ref.wav", r.ReferenceID)
		assert.Equal(t, "cap.wav", r.CurrentID)
	})

	t.Run("verdict_and_failures", func(t *testing.T) {
		assert.Equal(t, Failed, r.Overall)
		assert.Equal(t, res.Flags, r.Failures)
		assert.Equal(t, []string{"LF"}, r.Summary.FailedBands)
		assert.True(t, r.Summary.DeadChannel)
	})

	t.Run("metrics_rounded_to_three_decimals", func(t *testing.T) {
		assert.Equal(t, -12.346, r.Summary.RMS.RefDB)
		assert.Equal(t, -12.346, r.Summary.RMS.DiffDB)
		assert.Equal(t, 3.010, r.Summary.Crest.RefDB)
		assert.Equal(t, 13.131, r.Summary.SpecDev95DB)
		assert.Equal(t, -12.346, r.Summary.BandsDiffDB["LF"])
		assert.Equal(t, 0.0, r.Summary.BandsDiffDB["MF"])
	})

	t.Run("beep_times_in_seconds", func(t *testing.T) {
		require.Equal(t, 2, r.Beeps.Reference.Count)
		assert.Equal(t, []float64{0.5, 1.5}, r.Beeps.Reference.MarkersS)

		require.Len(t, r.Beeps.Reference.Segments, 1)
		seg := r.Beeps.Reference.Segments[0]
		assert.Equal(t, 0.56, seg.StartS)
		assert.Equal(t, 1.44, seg.EndS)
		assert.Equal(t, 0.88, seg.DurS)
	})

	t.Run("does_not_alias_result_slices", func(t *testing.T) {
		r.Failures[0] = FlagCrest
		assert.Equal(t, FlagDeadChannel, res.Flags[0])
	})
}

func TestReportRoundTrip(t *testing.T) {
	res := failedResult()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	original := buildReportAt(res, DefaultConfig(), "ref.wav", "cap.wav", now)

	data, err := original.MarshalIndent()
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *original, decoded)
}

func TestBuildReportPassedRun(t *testing.T) {
	res := &Result{
		Metrics: MetricResult{
			RefBandsDB:  map[string]float64{},
			CurBandsDB:  map[string]float64{},
			DiffBandsDB: map[string]float64{},
		},
		Verdict:    Passed,
		SampleRate: 48000,
	}
	r := BuildReport(res, DefaultConfig(), "a", "b")

	assert.Equal(t, Passed, r.Overall)
	assert.Empty(t, r.Failures)
	assert.Empty(t, r.Summary.FailedBands)
	assert.Zero(t, r.Beeps.Reference.Count)

	// Timestamp format is fixed-width UTC.
	_, err := time.Parse("2006-01-02T15:04:05Z", r.TimestampUTC)
	assert.NoError(t, err)
}
