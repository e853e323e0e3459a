package compare

import (
	"context"
	"time"
)

// Source captures audio from a device. Implementations live outside this
// module (hardware backends, test doubles); the engine only consumes the
// returned buffer. Capture blocks for the requested duration and device
// failures propagate unchanged, with no retry at this layer.
type Source interface {
	// Capture records duration of mono-reducible audio at rate Hz.
	// channels > 1 is mixed down by the implementation or by
	// NewBufferFromChannels. deviceHint selects a device by substring
	// match; empty means the default device.
	Capture(ctx context.Context, duration time.Duration, rate, channels int, deviceHint string) (*AudioBuffer, error)
}

// Sink receives a fully built report for persistence or telemetry.
// Implementations make at most one attempt per call; the engine never
// retries, and a failed publish never invalidates the comparison itself.
type Sink interface {
	Publish(ctx context.Context, report *Report) error
}
