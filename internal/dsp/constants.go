package dsp

// Epsilon values, one per numerical purpose. Historical near-duplicate
// implementations drifted between 1e-7, 1e-9, 1e-12 and 1e-20 for the same
// guards; these are the unified canonical values.
const (
	// EpsLog guards logarithm arguments near silence. Applied twice in
	// RMS computations: once inside the square root and once outside.
	EpsLog = 1e-20

	// EpsPeak guards the peak-normalization divisor.
	EpsPeak = 1e-12

	// EpsPower is the linear power floor applied before dB conversion,
	// bounding spectra at -300 dB.
	EpsPower = 1e-30
)

// Sentinel levels for degenerate inputs.
const (
	// FloorDB is the flat spectrum level returned for buffers too short
	// to estimate, and the band energy for empty band overlaps.
	FloorDB = -120.0
)

// Welch estimator defaults.
const (
	// DefaultSegmentLength is the default Welch segment length in samples.
	DefaultSegmentLength = 4096

	// MinSegmentLength is the lower clamp for the segment length.
	MinSegmentLength = 256

	// minEstimateLength is the input length at or below which the
	// estimator returns the flat sentinel spectrum instead of estimating.
	minEstimateLength = 16
)
