package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples telemetry collection from presentation logic, so the same
// event stream can drive plain CI logs or richer terminal output.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and prepare for
	// shutdown. It should flush any buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	// For synchronous renderers, this may return immediately.
	Wait() error

	// OnPlanEmit is called once the pipeline instances are resolved.
	// targets: the resolved target@variant keys about to build
	OnPlanEmit(targets []string)

	// OnStageStart is called when a pipeline stage begins.
	// spanID: unique identifier for this stage execution
	// parentID: spanID of the enclosing span (empty if root)
	// name: human-readable stage name
	OnStageStart(spanID, parentID, name string, startTime time.Time)

	// OnStageLog is called when a stage emits output.
	// data: raw log bytes (may contain partial lines or ANSI sequences)
	OnStageLog(spanID string, data []byte)

	// OnStageComplete is called when a stage finishes.
	// err: nil if successful, error otherwise
	OnStageComplete(spanID string, endTime time.Time, err error)
}
