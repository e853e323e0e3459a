// Command compare-wav compares a captured WAV recording against a
// reference WAV and writes a pass/fail analysis report.
//
// Usage:
//
//	compare-wav reference.wav capture.wav
//	compare-wav -config config.yaml -reports ./reports capture.wav
//	compare-wav -publish reference.wav capture.wav
//	compare-wav -daemon -config config.yaml reference.wav capture.wav
//
// With -config, the reference path may come from the configuration file
// and only the capture file is required on the command line. A report is
// always written to the reports directory; -publish additionally sends it
// to the configured telemetry collector (one attempt, failure is logged
// but never fatal).
//
// With -daemon the comparison repeats every general.interval_s seconds
// (one-minute floor), re-reading the capture file each cycle, until
// interrupted. Cycle failures are logged and the loop keeps going.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	compare "github.com/audiocinema/go-audio-compare"
	"github.com/audiocinema/go-audio-compare/sink"
	"github.com/audiocinema/go-audio-compare/wavio"
)

const (
	defaultReportsDir = "reports"
)

func main() {
	if err := run(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to YAML configuration (defaults apply when empty)")
	reportsDir := flag.String("reports", defaultReportsDir, "Directory for report JSON files")
	publish := flag.Bool("publish", false, "Publish the report to the configured telemetry collector")
	daemon := flag.Bool("daemon", false, "Repeat the comparison every config interval until interrupted")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg := compare.DefaultConfig()
	if *configPath != "" {
		loaded, err := compare.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	refPath, curPath, err := resolveInputs(flag.Args(), cfg)
	if err != nil {
		flag.Usage()
		return err
	}

	refBuf, err := readBuffer(refPath)
	if err != nil {
		return fmt.Errorf("%w: %w", compare.ErrMissingReference, err)
	}
	curBuf, err := readBuffer(curPath)
	if err != nil {
		return err
	}
	slog.Debug("inputs loaded",
		"reference", refPath, "current", curPath,
		"ref_rate", refBuf.Rate, "cur_rate", curBuf.Rate)

	if *daemon {
		return runDaemon(cfg, refBuf, curPath, *reportsDir, *publish)
	}

	result, err := compare.Compare(refBuf, curBuf, cfg)
	if err != nil {
		return err
	}
	report := compare.BuildReport(result, cfg, refPath, curPath)

	ctx := context.Background()
	fileSink := sink.NewFileSink(*reportsDir)
	if err := fileSink.Publish(ctx, report); err != nil {
		return err
	}
	slog.Info("report written", "path", fileSink.LastPath(), "overall", report.Overall)

	if *publish {
		// One attempt; the run already succeeded once the report exists.
		tel := sink.NewTelemetrySink(cfg.Telemetry)
		if err := tel.Publish(ctx, report); err != nil {
			slog.Warn("telemetry publish failed", "error", err)
		} else {
			slog.Info("telemetry published", "host", cfg.Telemetry.Host)
		}
	}

	printSummary(report)
	return nil
}

// runDaemon repeats the comparison until interrupted, re-reading the
// capture file each cycle so a recording replaced between cycles is picked
// up. Cycle failures are logged and the loop continues.
func runDaemon(cfg *compare.Config, refBuf *compare.AudioBuffer, curPath, reportsDir string, publish bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fileSink := sink.NewFileSink(reportsDir)
	sinks := []compare.Sink{fileSink}
	if publish {
		sinks = append(sinks, sink.NewTelemetrySink(cfg.Telemetry))
	}

	slog.Info("daemon started", "interval_s", cfg.General.IntervalSec, "capture", curPath)
	err := compare.RunLoop(ctx, wavSource{path: curPath}, refBuf, cfg,
		func(r *compare.Report, err error) {
			if err != nil {
				slog.Error("cycle failed", "error", err)
				return
			}
			slog.Info("cycle complete", "overall", r.Overall, "path", fileSink.LastPath())
		}, sinks...)
	if errors.Is(err, context.Canceled) {
		slog.Info("daemon stopped")
		return nil
	}
	return err
}

// wavSource adapts a WAV file on disk to the capture interface; the file is
// re-read on every capture.
type wavSource struct {
	path string
}

func (s wavSource) Capture(_ context.Context, _ time.Duration, _, _ int, _ string) (*compare.AudioBuffer, error) {
	return readBuffer(s.path)
}

// resolveInputs maps positional arguments onto (reference, current) paths,
// letting the configuration supply the reference when only one file is
// given.
func resolveInputs(args []string, cfg *compare.Config) (string, string, error) {
	switch len(args) {
	case 2:
		return args[0], args[1], nil
	case 1:
		if cfg.Reference.File == "" {
			return "", "", errors.New("capture file given but no reference configured")
		}
		return cfg.Reference.File, args[0], nil
	default:
		return "", "", errors.New("expected reference and capture WAV paths")
	}
}

func readBuffer(path string) (*compare.AudioBuffer, error) {
	samples, rate, err := wavio.ReadMono(path)
	if err != nil {
		return nil, err
	}
	return compare.NewBuffer(samples, rate), nil
}

func printSummary(r *compare.Report) {
	fmt.Printf("Overall: %s\n", r.Overall)
	if len(r.Failures) > 0 {
		fmt.Printf("  Failures: %v\n", r.Failures)
		if len(r.Summary.FailedBands) > 0 {
			fmt.Printf("  Bands out of tolerance: %v\n", r.Summary.FailedBands)
		}
	}
	fmt.Printf("  RMS diff: %+.3f dB, crest diff: %+.3f dB, spec dev95: %.3f dB\n",
		r.Summary.RMS.DiffDB, r.Summary.Crest.DiffDB, r.Summary.SpecDev95DB)
	fmt.Printf("  Beeps: %d reference, %d current\n",
		r.Beeps.Reference.Count, r.Beeps.Current.Count)
}
