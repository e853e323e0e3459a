package compare

// Application identity stamped into every report.
const (
	appName    = "go-audio-compare"
	appVersion = "2.0"
)

// Audio defaults.
const (
	// DefaultSampleRate is the working sample rate of a comparison.
	DefaultSampleRate = 48000

	// DefaultCaptureSeconds is the default capture duration.
	DefaultCaptureSeconds = 10.0

	// DefaultRunIntervalSeconds is the default pause between daemon
	// cycles.
	DefaultRunIntervalSeconds = 900.0
)

// Spectral estimation defaults (see internal/dsp for the estimator).
const (
	defaultSegmentLength = 4096

	// defaultOverlapRatio is the fraction of a segment shared with its
	// successor.
	defaultOverlapRatio = 0.5
)

// Spectral-deviation measurement range in Hz. Deviation outside this range
// (sub-bass rumble, ultrasonics) does not count toward spec_dev95.
const (
	specDevLowHz  = 50.0
	specDevHighHz = 8000.0
)

// Report rounding, a stability contract for downstream regression tooling:
// metric scalars carry 3 decimals, marker/segment times 6 decimals.
const (
	metricDecimals = 3
	timeDecimals   = 6
)
