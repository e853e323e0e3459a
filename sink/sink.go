// Package sink provides report sink collaborators: a JSON file sink for
// local persistence and a single-attempt MQTT telemetry publisher.
//
// Sinks are deliberately fire-and-forget. A publish is attempted exactly
// once and its outcome surfaces to the caller for logging; a comparison
// whose report was built successfully is a successful run regardless of
// what happens in transport.
package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	compare "github.com/audiocinema/go-audio-compare"
)

// timestampLayout names report files by UTC generation time.
const timestampLayout = "20060102_150405"

// FileSink persists reports as indented JSON documents in a directory,
// one file per run, named analysis_<UTC timestamp>.json.
type FileSink struct {
	// Dir is the target directory; created on first publish if absent.
	Dir string

	// now is an injectable clock for tests.
	now func() time.Time

	lastPath string
}

// NewFileSink returns a FileSink writing into dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir, now: time.Now}
}

// Publish writes the report to a timestamped file. LastPath reports where
// the most recent publish landed.
func (s *FileSink) Publish(_ context.Context, report *compare.Report) error {
	data, err := report.MarshalIndent()
	if err != nil {
		return fmt.Errorf("sink: marshal report: %w", err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("sink: create %q: %w", s.Dir, err)
	}
	clock := s.now
	if clock == nil {
		clock = time.Now
	}
	path := filepath.Join(s.Dir,
		fmt.Sprintf("analysis_%s.json", clock().UTC().Format(timestampLayout)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("sink: write %q: %w", path, err)
	}
	s.lastPath = path
	return nil
}

// LastPath returns the path written by the most recent successful Publish.
func (s *FileSink) LastPath() string { return s.lastPath }

var _ compare.Sink = (*FileSink)(nil)
