package compare

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// minRunInterval is the shortest pause RunLoop allows between cycles.
const minRunInterval = time.Minute

// RunOnce executes one capture-and-compare cycle: capture the current
// signal from src at the configured rate and duration, compare it against
// ref, build the report and hand it to every sink in order.
//
// The report is returned even when one or more sinks fail; sink errors are
// joined into the returned error. A capture or comparison failure returns a
// nil report.
func RunOnce(ctx context.Context, src Source, ref *AudioBuffer, cfg *Config, sinks ...Sink) (*Report, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	duration := time.Duration(cfg.Audio.DurationSec * float64(time.Second))
	cur, err := src.Capture(ctx, duration, cfg.Audio.SampleRate, 1, cfg.Audio.DeviceHint)
	if err != nil {
		return nil, err
	}

	res, err := Compare(ref, cur, cfg)
	if err != nil {
		return nil, err
	}

	refID := cfg.Reference.File
	if refID == "" {
		refID = "reference"
	}
	report := BuildReport(res, cfg, refID, "capture")

	var sinkErrs error
	for _, s := range sinks {
		sinkErrs = errors.Join(sinkErrs, s.Publish(ctx, report))
	}
	return report, sinkErrs
}

// RunLoop executes RunOnce cycles until ctx is cancelled, pausing
// General.IntervalSec between cycles with a one-minute floor. A failed
// cycle never stops the loop; every cycle's report and error are handed to
// the optional cycle callback (pass nil to discard them). The first cycle
// runs immediately.
//
// When General.HeartbeatFile is set it is rewritten with a UTC timestamp at
// the start of each cycle, best effort.
//
// RunLoop returns ctx.Err() on cancellation; the only other return is an
// invalid configuration, rejected before the first cycle.
func RunLoop(ctx context.Context, src Source, ref *AudioBuffer, cfg *Config, cycle func(*Report, error), sinks ...Sink) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	interval := time.Duration(cfg.General.IntervalSec * float64(time.Second))
	if interval < minRunInterval {
		interval = minRunInterval
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	for {
		touchHeartbeat(cfg.General.HeartbeatFile)
		report, err := RunOnce(ctx, src, ref, cfg, sinks...)
		if cycle != nil {
			cycle(report, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			timer.Reset(interval)
		}
	}
}

// touchHeartbeat rewrites path with the current UTC time so an external
// watchdog can confirm the loop is alive. A failed touch never blocks a
// cycle.
func touchHeartbeat(path string) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	stamp := time.Now().UTC().Format(time.RFC3339) + "\n"
	_ = os.WriteFile(path, []byte(stamp), 0o644)
}
