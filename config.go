package compare

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/audiocinema/go-audio-compare/internal/markers"
	"github.com/audiocinema/go-audio-compare/internal/verdict"
)

// Common errors returned by the comparison engine.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid comparison configuration")

	// ErrMissingReference indicates the reference source is absent or
	// unreadable.
	ErrMissingReference = errors.New("reference source missing")

	// ErrEmptyBuffer indicates a nil or zero-length input buffer where a
	// signal is required.
	ErrEmptyBuffer = errors.New("empty audio buffer")
)

// Band is a named frequency interval used for band-energy checks.
type Band struct {
	Name string  `yaml:"name"`
	Low  float64 `yaml:"low_hz"`
	High float64 `yaml:"high_hz"`
}

// DefaultBands returns the canonical band table.
//
// LFE is intentionally a subset of LF: the two bands back different checks
// (subwoofer presence versus overall low-frequency balance) and the overlap
// is preserved deliberately, not an error in the table.
func DefaultBands() []Band {
	return []Band{
		{Name: "LFE", Low: 30.0, High: 100.0},
		{Name: "LF", Low: 30.0, High: 120.0},
		{Name: "MF", Low: 120.0, High: 2000.0},
		{Name: "HF", Low: 2000.0, High: 8000.0},
	}
}

// GeneralConfig holds the scheduling side of daemon runs.
type GeneralConfig struct {
	// IntervalSec is the pause between daemon cycles. RunLoop floors it
	// at one minute.
	IntervalSec float64 `yaml:"interval_s"`

	// HeartbeatFile, when set, is rewritten with a UTC timestamp at the
	// start of every cycle so an external watchdog can confirm liveness.
	HeartbeatFile string `yaml:"heartbeat_file"`
}

// AudioConfig describes the capture side of a run.
type AudioConfig struct {
	// SampleRate is the working rate in Hz; the reference is resampled to
	// it when needed.
	SampleRate int `yaml:"sample_rate"`

	// DurationSec is the capture duration handed to the audio source.
	DurationSec float64 `yaml:"duration_s"`

	// DeviceHint selects the capture device by substring match; empty
	// means the collaborator's default device.
	DeviceHint string `yaml:"device_hint"`
}

// SpectralConfig parameterizes the Welch estimator.
type SpectralConfig struct {
	// SegmentLength is the Welch segment length in samples, clamped by
	// the estimator to [256, buffer length].
	SegmentLength int `yaml:"segment_length"`

	// OverlapRatio is the fraction of a segment shared with its
	// successor, in [0, 1).
	OverlapRatio float64 `yaml:"overlap_ratio"`
}

// DetectorConfig parameterizes beep detection. See internal/markers for
// the detector itself.
type DetectorConfig struct {
	HighpassHz       float64 `yaml:"highpass_hz"`
	WindowSec        float64 `yaml:"window_s"`
	HopSec           float64 `yaml:"hop_s"`
	ThresholdDB      float64 `yaml:"threshold_db"`
	MinSeparationSec float64 `yaml:"min_separation_s"`
}

// SegmentConfig parameterizes segment construction between beeps.
type SegmentConfig struct {
	GuardSec     float64 `yaml:"guard_s"`
	MinLengthSec float64 `yaml:"min_length_s"`
}

// TelemetryConfig describes the remote report sink.
type TelemetryConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Token  string `yaml:"token"`
	UseTLS bool   `yaml:"use_tls"`
}

// ReferenceConfig locates the reference recording.
type ReferenceConfig struct {
	File string `yaml:"file"`
}

// Thresholds re-exports the verdict decision constants.
type Thresholds = verdict.Thresholds

// Config is the complete, immutable configuration of one comparison run.
// Pass it by value into the pipeline; nothing in the engine mutates it.
type Config struct {
	General    GeneralConfig   `yaml:"general"`
	Audio      AudioConfig     `yaml:"audio"`
	Reference  ReferenceConfig `yaml:"reference"`
	Spectral   SpectralConfig  `yaml:"spectral"`
	Detector   DetectorConfig  `yaml:"detector"`
	Segments   SegmentConfig   `yaml:"segments"`
	Thresholds Thresholds      `yaml:"thresholds"`
	Bands      []Band          `yaml:"bands"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`
}

// DefaultConfig returns the canonical configuration. The threshold and
// detector defaults must be preserved exactly for result compatibility
// with previously persisted reports.
func DefaultConfig() *Config {
	det := markers.DefaultDetectorConfig()
	seg := markers.DefaultSegmentConfig()
	return &Config{
		General: GeneralConfig{
			IntervalSec: DefaultRunIntervalSeconds,
		},
		Audio: AudioConfig{
			SampleRate:  DefaultSampleRate,
			DurationSec: DefaultCaptureSeconds,
		},
		Spectral: SpectralConfig{
			SegmentLength: defaultSegmentLength,
			OverlapRatio:  defaultOverlapRatio,
		},
		Detector: DetectorConfig{
			HighpassHz:       det.HighpassHz,
			WindowSec:        det.WindowSec,
			HopSec:           det.HopSec,
			ThresholdDB:      det.ThresholdDB,
			MinSeparationSec: det.MinSeparationSec,
		},
		Segments: SegmentConfig{
			GuardSec:     seg.GuardSec,
			MinLengthSec: seg.MinLengthSec,
		},
		Thresholds: verdict.DefaultThresholds(),
		Bands:      DefaultBands(),
		Telemetry: TelemetryConfig{
			Host: "telemetry.example.com",
			Port: 1883,
		},
	}
}

// Validate checks the configuration for values the pipeline cannot work
// with. It does not second-guess thresholds; any finite threshold is legal.
func (c *Config) Validate() error {
	if c.General.IntervalSec < 0 {
		return fmt.Errorf("%w: run interval must not be negative", ErrInvalidConfig)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}
	if c.Audio.DurationSec <= 0 {
		return fmt.Errorf("%w: capture duration must be positive", ErrInvalidConfig)
	}
	if c.Spectral.OverlapRatio < 0 || c.Spectral.OverlapRatio >= 1 {
		return fmt.Errorf("%w: overlap ratio must be in [0, 1)", ErrInvalidConfig)
	}
	if c.Detector.WindowSec <= 0 || c.Detector.HopSec <= 0 {
		return fmt.Errorf("%w: detector window and hop must be positive", ErrInvalidConfig)
	}
	if c.Detector.MinSeparationSec < 0 {
		return fmt.Errorf("%w: marker separation must not be negative", ErrInvalidConfig)
	}
	if c.Segments.MinLengthSec < 0 {
		return fmt.Errorf("%w: segment minimum length must not be negative", ErrInvalidConfig)
	}
	for _, b := range c.Bands {
		if b.Name == "" || b.High <= b.Low {
			return fmt.Errorf("%w: band %q must have high > low and a name", ErrInvalidConfig, b.Name)
		}
	}
	return nil
}

// LoadConfig reads a YAML configuration file, layering it over
// DefaultConfig so that absent keys keep their defaults. A missing file is
// an error; use DefaultConfig directly when no file is expected.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadConfigFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigFromReader decodes YAML from r over the defaults and validates
// the result. Useful in tests where configs are string literals.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// detectorConfig converts to the internal detector parameter set.
func (c *Config) detectorConfig() markers.DetectorConfig {
	return markers.DetectorConfig{
		HighpassHz:       c.Detector.HighpassHz,
		WindowSec:        c.Detector.WindowSec,
		HopSec:           c.Detector.HopSec,
		ThresholdDB:      c.Detector.ThresholdDB,
		MinSeparationSec: c.Detector.MinSeparationSec,
	}
}

// segmentConfig converts to the internal segment parameter set.
func (c *Config) segmentConfig() markers.SegmentConfig {
	return markers.SegmentConfig{
		GuardSec:     c.Segments.GuardSec,
		MinLengthSec: c.Segments.MinLengthSec,
	}
}
