package ports

import (
	"context"
	"io"

	"go.trai.ch/kiln/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of the phases of a build.
type Telemetry interface {
	// Record starts a new vertex with the given name.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and releases the recorder.
	Close() error
}

// Vertex represents one phase of a build.
type Vertex interface {
	// Stdout returns a writer for the phase's regular output.
	Stdout() io.Writer
	// Stderr returns a writer for the phase's error output.
	Stderr() io.Writer
	// Log records a message associated with this phase.
	Log(level domain.LogLevel, msg string)
	// Cached marks the phase as skipped because its result was up to date.
	Cached()
	// Complete marks the phase as finished. A non-nil err marks it as failed.
	Complete(err error)
}
