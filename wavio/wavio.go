// Package wavio reads and writes WAV files as mono float64 sample slices.
// It is the file-I/O collaborator of the comparison engine: format concerns
// stay here, the engine only ever sees (samples, rate) pairs.
package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Errors returned by the WAV collaborator.
var (
	// ErrNotWAV indicates the file is not a decodable WAV stream.
	ErrNotWAV = errors.New("not a valid WAV file")
)

// Sample format constants.
const (
	defaultBitDepth = 16

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0
)

// ReadMono decodes a WAV file into mono float64 samples in [-1, 1] and
// returns them with the file's sample rate. Multi-channel files are mixed
// down by averaging.
func ReadMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: open %q: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("wavio: %q: %w", path, ErrNotWAV)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: decode %q: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, 0, fmt.Errorf("wavio: %q: %w", path, ErrNotWAV)
	}
	scale := 1.0 / maxValueForDepth(int(dec.BitDepth))
	frames := len(buf.Data) / channels

	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch]) * scale
		}
		samples[i] = sum / float64(channels)
	}
	return samples, buf.Format.SampleRate, nil
}

// WriteMono encodes mono float64 samples in [-1, 1] as a 16-bit PCM WAV
// file. Samples outside the range are clamped.
func WriteMono(path string, samples []float64, rate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create %q: %w", path, err)
	}

	enc := wav.NewEncoder(f, rate, defaultBitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		SourceBitDepth: defaultBitDepth,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		buf.Data[i] = int(math.Round(s * maxInt16))
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("wavio: write %q: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("wavio: finalize %q: %w", path, err)
	}
	return f.Close()
}

func maxValueForDepth(bitDepth int) float64 {
	switch bitDepth {
	case 24:
		return maxInt24
	case 32:
		return maxInt32
	default:
		return maxInt16
	}
}
