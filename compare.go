package compare

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/audiocinema/go-audio-compare/internal/dsp"
	"github.com/audiocinema/go-audio-compare/internal/markers"
	"github.com/audiocinema/go-audio-compare/internal/metrics"
)

// Compare runs the full comparison pipeline on a reference and a current
// buffer and returns the Result with diagnostics attached.
//
// Both buffers are conditioned first: peak-normalized, resampled to the
// configured working rate when needed and cropped to the shorter length.
// Degenerate inputs (silence, very short buffers) flow through on sentinel
// values and still produce a deterministic verdict; only nil/empty buffers
// and invalid configuration are errors.
func Compare(ref, cur *AudioBuffer, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ref == nil || ref.Len() == 0 {
		return nil, fmt.Errorf("%w: reference", ErrEmptyBuffer)
	}
	if cur == nil || cur.Len() == 0 {
		return nil, fmt.Errorf("%w: current", ErrEmptyBuffer)
	}

	fs := cfg.Audio.SampleRate
	refC := ref.conditioned(fs)
	curC := cur.conditioned(fs)
	x, y := dsp.CropPair(refC.Samples, curC.Samples)

	segLen := cfg.Spectral.SegmentLength
	overlap := int(float64(segLen) * cfg.Spectral.OverlapRatio)

	// The two signals are independent until metric extraction; estimate
	// and scan them in parallel. Each closure writes only its own slot.
	var (
		refPSD, curPSD   dsp.SpectralEstimate
		refMks, curMks   []int
		refSegs, curSegs []markers.Segment
	)
	var g errgroup.Group
	g.Go(func() error {
		refPSD = dsp.Welch(x, fs, segLen, overlap)
		refMks = markers.Detect(x, fs, cfg.detectorConfig())
		refSegs = markers.BuildSegments(refMks, fs, cfg.segmentConfig())
		return nil
	})
	g.Go(func() error {
		curPSD = dsp.Welch(y, fs, segLen, overlap)
		curMks = markers.Detect(y, fs, cfg.detectorConfig())
		curSegs = markers.BuildSegments(curMks, fs, cfg.segmentConfig())
		return nil
	})
	// The closures cannot fail; Wait only joins them.
	_ = g.Wait()

	rel := metrics.RelativeSpectrum(refPSD, curPSD)
	m := extractMetrics(x, y, refPSD, curPSD, rel, cfg)

	v, flags, failedBands := evaluateVerdict(m, cfg.Thresholds)

	return &Result{
		Metrics: m,
		Ref: SignalMarks{
			Markers:  refMks,
			Segments: toSampleRanges(refSegs),
		},
		Cur: SignalMarks{
			Markers:  curMks,
			Segments: toSampleRanges(curSegs),
		},
		Verdict:     v,
		Flags:       flags,
		FailedBands: failedBands,
		SampleRate:  fs,
		Diagnostics: &Diagnostics{
			RefFreq:  refPSD.Freq,
			RefPSDDB: refPSD.Power,
			CurFreq:  curPSD.Freq,
			CurPSDDB: curPSD.Power,
			RelFreq:  refPSD.Freq,
			RelDB:    rel,
		},
	}, nil
}

// extractMetrics derives the summary scalars from the conditioned signals
// and their spectral estimates.
func extractMetrics(x, y []float64, refPSD, curPSD dsp.SpectralEstimate, rel []float64, cfg *Config) MetricResult {
	m := MetricResult{
		RefRMSDB:    metrics.RMSDB(x),
		CurRMSDB:    metrics.RMSDB(y),
		RefCrestDB:  metrics.CrestDB(x),
		CurCrestDB:  metrics.CrestDB(y),
		RefBandsDB:  make(map[string]float64, len(cfg.Bands)),
		CurBandsDB:  make(map[string]float64, len(cfg.Bands)),
		DiffBandsDB: make(map[string]float64, len(cfg.Bands)),
	}
	m.DiffRMSDB = m.CurRMSDB - m.RefRMSDB
	m.DiffCrestDB = m.CurCrestDB - m.RefCrestDB

	for _, b := range cfg.Bands {
		refE := metrics.BandEnergyDB(refPSD, b.Low, b.High)
		curE := metrics.BandEnergyDB(curPSD, b.Low, b.High)
		m.RefBandsDB[b.Name] = refE
		m.CurBandsDB[b.Name] = curE
		m.DiffBandsDB[b.Name] = curE - refE
	}

	m.SpecDev95DB = metrics.SpecDev95DB(refPSD.Freq, rel, specDevLowHz, specDevHighHz)
	m.DeadChannel = metrics.DeadChannel(m.RefRMSDB, m.CurRMSDB, cfg.Thresholds.DeadChannelDB)
	return m
}
