package compare

import (
	"encoding/json"
	"math"
	"time"
)

// Report is the persisted record of one comparison run. It is built once,
// fully in memory, and then handed to a sink; no partially constructed
// report is ever exposed. All numeric fields are pre-rounded at build time
// (metrics to 3 decimals, times to 6) so that serialized reports diff
// stably across runs and platforms.
type Report struct {
	App          string `json:"app"`
	Version      string `json:"version"`
	TimestampUTC string `json:"timestamp_utc"`
	SampleRateHz int    `json:"fs_hz"`

	ReferenceID string `json:"reference_id"`
	CurrentID   string `json:"current_id"`

	Overall  Verdict `json:"overall"`
	Failures []Flag  `json:"failures"`

	Summary ReportSummary `json:"summary"`
	Beeps   ReportBeeps   `json:"beeps"`
}

// ReportSummary carries the persisted metric scalars.
type ReportSummary struct {
	DeadChannel bool         `json:"dead_channel"`
	SpecDev95DB float64      `json:"spec_dev95_db"`
	RMS         LevelTriplet `json:"rms"`
	Crest       LevelTriplet `json:"crest"`

	BandsRefDB  map[string]float64 `json:"bands_ref_db"`
	BandsCurDB  map[string]float64 `json:"bands_cur_db"`
	BandsDiffDB map[string]float64 `json:"bands_diff_db"`

	// FailedBands names the bands behind a band_level failure, sorted.
	FailedBands []string `json:"failed_bands,omitempty"`
}

// LevelTriplet is a reference/current/difference trio in dB.
type LevelTriplet struct {
	RefDB  float64 `json:"ref_db"`
	CurDB  float64 `json:"cur_db"`
	DiffDB float64 `json:"diff_db"`
}

// ReportBeeps groups per-signal marker and segment records.
type ReportBeeps struct {
	Reference SignalBeeps `json:"reference"`
	Current   SignalBeeps `json:"current"`
}

// SignalBeeps describes the beeps found in one signal, in seconds.
type SignalBeeps struct {
	Count    int             `json:"count"`
	MarkersS []float64       `json:"markers_s"`
	Segments []SegmentRecord `json:"segments"`
}

// SegmentRecord is one guarded segment in seconds.
type SegmentRecord struct {
	StartS float64 `json:"start_s"`
	EndS   float64 `json:"end_s"`
	DurS   float64 `json:"dur_s"`
}

// BuildReport assembles the immutable report for a finished comparison.
// refID and curID identify the two sources (file paths, capture labels).
// The generation timestamp is taken at call time in UTC.
func BuildReport(res *Result, cfg *Config, refID, curID string) *Report {
	return buildReportAt(res, cfg, refID, curID, time.Now().UTC())
}

// buildReportAt is BuildReport with an injectable clock for tests.
func buildReportAt(res *Result, cfg *Config, refID, curID string, now time.Time) *Report {
	m := res.Metrics
	return &Report{
		App:          appName,
		Version:      appVersion,
		TimestampUTC: now.UTC().Format("2006-01-02T15:04:05Z"),
		SampleRateHz: res.SampleRate,
		ReferenceID:  refID,
		CurrentID:    curID,
		Overall:      res.Verdict,
		Failures:     append([]Flag(nil), res.Flags...),
		Summary: ReportSummary{
			DeadChannel: m.DeadChannel,
			SpecDev95DB: roundTo(m.SpecDev95DB, metricDecimals),
			RMS: LevelTriplet{
				RefDB:  roundTo(m.RefRMSDB, metricDecimals),
				CurDB:  roundTo(m.CurRMSDB, metricDecimals),
				DiffDB: roundTo(m.DiffRMSDB, metricDecimals),
			},
			Crest: LevelTriplet{
				RefDB:  roundTo(m.RefCrestDB, metricDecimals),
				CurDB:  roundTo(m.CurCrestDB, metricDecimals),
				DiffDB: roundTo(m.DiffCrestDB, metricDecimals),
			},
			BandsRefDB:  roundMap(m.RefBandsDB, metricDecimals),
			BandsCurDB:  roundMap(m.CurBandsDB, metricDecimals),
			BandsDiffDB: roundMap(m.DiffBandsDB, metricDecimals),
			FailedBands: append([]string(nil), res.FailedBands...),
		},
		Beeps: ReportBeeps{
			Reference: signalBeeps(res.Ref, res.SampleRate),
			Current:   signalBeeps(res.Cur, res.SampleRate),
		},
	}
}

// MarshalIndent serializes the report as indented JSON.
func (r *Report) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func signalBeeps(marks SignalMarks, fs int) SignalBeeps {
	sb := SignalBeeps{
		Count:    len(marks.Markers),
		MarkersS: make([]float64, 0, len(marks.Markers)),
		Segments: make([]SegmentRecord, 0, len(marks.Segments)),
	}
	for _, m := range marks.Markers {
		sb.MarkersS = append(sb.MarkersS, roundTo(float64(m)/float64(fs), timeDecimals))
	}
	for _, s := range marks.Segments {
		start := float64(s.Start) / float64(fs)
		end := float64(s.End) / float64(fs)
		sb.Segments = append(sb.Segments, SegmentRecord{
			StartS: roundTo(start, timeDecimals),
			EndS:   roundTo(end, timeDecimals),
			DurS:   roundTo(end-start, timeDecimals),
		})
	}
	return sb
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

func roundMap(in map[string]float64, decimals int) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = roundTo(v, decimals)
	}
	return out
}
