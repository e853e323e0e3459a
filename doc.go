// Package compare analyzes a captured audio playback against a reference
// recording and issues a pass/fail verdict on whether the playback matches
// the reference within configured tolerances of level, spectral balance and
// transient behavior.
//
// The engine is a pure, synchronous computation over complete in-memory
// buffers. It performs no I/O: audio capture, file access and report
// persistence are collaborators behind the [Source] and [Sink] interfaces
// and the wavio package.
//
// # Pipeline
//
// A comparison runs the following stages, leaves first:
//
//	Signal conditioning  -> mono mix, peak normalization, rate conversion
//	Spectral estimation  -> Welch-averaged power spectral density in dB
//	Metric extraction    -> RMS/crest levels, band energies, spectral deviation
//	Marker detection     -> calibration-beep location via envelope thresholding
//	Segment building     -> guarded sample ranges between marker pairs
//	Verdict              -> fixed-threshold predicates, PASSED/FAILED + flags
//	Report               -> immutable record handed to persistence/telemetry
//
// # Quick Start
//
//	samples, rate, err := wavio.ReadMono("reference.wav")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg := compare.DefaultConfig()
//	result, err := compare.Compare(
//	    compare.NewBuffer(samples, rate),
//	    compare.NewBuffer(captured, rate),
//	    cfg,
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := compare.BuildReport(result, cfg, "reference.wav", "capture-01")
//
// # Degenerate inputs
//
// Silence, very short buffers and empty band overlaps are not errors. They
// produce fixed sentinel outputs (a flat -120 dB spectrum, empty marker and
// segment lists) so that a comparison always runs to completion on any
// structurally valid input. Only missing or malformed inputs surface as
// errors.
//
// # Thread safety
//
// A comparison owns its buffers exclusively and shares no mutable state with
// other comparisons; any number of comparisons may run concurrently. The two
// signals of one comparison are analyzed in parallel internally.
package compare
