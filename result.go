package compare

import (
	"github.com/audiocinema/go-audio-compare/internal/markers"
	"github.com/audiocinema/go-audio-compare/internal/verdict"
)

// Verdict is the binary comparison outcome.
type Verdict string

// Possible verdicts.
const (
	Passed Verdict = "PASSED"
	Failed Verdict = "FAILED"
)

// Flag re-exports the failure predicate identifier type.
type Flag = verdict.Flag

// Failure predicates, re-exported for callers inspecting results.
const (
	FlagDeadChannel       = verdict.FlagDeadChannel
	FlagBandLevel         = verdict.FlagBandLevel
	FlagCrest             = verdict.FlagCrest
	FlagSpectralDeviation = verdict.FlagSpectralDeviation
	FlagRMSDrop           = verdict.FlagRMSDrop
)

// MetricResult holds the light summary scalars of one comparison. These
// are the values that get persisted; the heavy per-bin arrays live in
// Diagnostics and are never stored long-term.
type MetricResult struct {
	RefRMSDB  float64
	CurRMSDB  float64
	DiffRMSDB float64

	RefCrestDB  float64
	CurCrestDB  float64
	DiffCrestDB float64

	// Per-band energies and differences, keyed by band name.
	RefBandsDB  map[string]float64
	CurBandsDB  map[string]float64
	DiffBandsDB map[string]float64

	// SpecDev95DB is the 95th percentile of the absolute relative
	// spectrum inside the measurement range.
	SpecDev95DB float64

	// DeadChannel marks a current signal far below the reference level.
	DeadChannel bool
}

// Diagnostics carries the ephemeral per-bin arrays behind a comparison:
// both spectral estimates and the relative spectrum on the reference grid.
// They support plotting and debugging within one run and are deliberately
// excluded from reports.
type Diagnostics struct {
	RefFreq  []float64
	RefPSDDB []float64
	CurFreq  []float64
	CurPSDDB []float64
	RelFreq  []float64
	RelDB    []float64
}

// SampleRange is a half-open sample interval [Start, End).
type SampleRange struct {
	Start int
	End   int
}

// SignalMarks are the calibration-beep locations and the guarded segments
// between them, for one signal.
type SignalMarks struct {
	// Markers are beep sample indices, strictly ascending with the
	// configured minimum separation enforced.
	Markers []int

	// Segments are the guarded ranges between consecutive markers.
	Segments []SampleRange
}

// Result is the complete outcome of one comparison: metrics, per-signal
// marks, verdict and diagnostics. It is immutable once returned.
type Result struct {
	Metrics MetricResult

	Ref SignalMarks
	Cur SignalMarks

	Verdict Verdict

	// Flags is the set of triggered failure predicates. It must be
	// retained alongside the verdict: the verdict alone does not identify
	// which predicates fired.
	Flags []Flag

	// FailedBands names the bands exceeding the band tolerance, sorted.
	FailedBands []string

	// SampleRate is the working rate the comparison ran at.
	SampleRate int

	// Diagnostics holds the heavy per-bin arrays; nil when the caller
	// requested a summary-only comparison.
	Diagnostics *Diagnostics
}

// evaluateVerdict folds the metric scalars through the decision policy.
func evaluateVerdict(m MetricResult, thr Thresholds) (Verdict, []Flag, []string) {
	d := verdict.Evaluate(verdict.Input{
		DiffRMSDB:   m.DiffRMSDB,
		DiffCrestDB: m.DiffCrestDB,
		BandDiffDB:  m.DiffBandsDB,
		SpecDev95DB: m.SpecDev95DB,
		DeadChannel: m.DeadChannel,
	}, thr)
	if d.Passed {
		return Passed, d.Flags, d.FailedBands
	}
	return Failed, d.Flags, d.FailedBands
}

// toSampleRanges converts internal segments to the public representation.
func toSampleRanges(segs []markers.Segment) []SampleRange {
	out := make([]SampleRange, len(segs))
	for i, s := range segs {
		out[i] = SampleRange{Start: s.Start, End: s.End}
	}
	return out
}
