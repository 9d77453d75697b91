// Package engine wraps the external transcoding tool behind a small
// capability interface and manages the lifecycle of the single shared
// instance.
package engine

import (
	"context"
	"errors"
)

// ErrEngineInit is returned when the engine runtime could not be loaded. The
// half-built instance is discarded; a later call retries from scratch.
var ErrEngineInit = errors.New("engine initialization failed")

// LogHandler receives diagnostic lines emitted by the engine while it runs.
type LogHandler func(message string)

// Engine is the opaque transcoding capability. Files are staged into the
// engine's private working area by name; Exec runs a command whose tokens
// reference those staged names.
type Engine interface {
	// Load fetches and verifies the engine runtime. It must be called
	// before any other operation.
	Load(ctx context.Context) error

	// WriteFile stages data under name in the working area.
	WriteFile(name string, data []byte) error

	// Exec runs one command. A non-zero exit reports an error carrying the
	// engine's diagnostic output.
	Exec(ctx context.Context, args []string) error

	// ReadFile returns the bytes staged under name.
	ReadFile(name string) ([]byte, error)

	// DeleteFile removes a staged file.
	DeleteFile(name string) error

	// OnLog registers a handler for engine log events. Must be set before
	// Load to capture load-time output.
	OnLog(h LogHandler)

	// Terminate tears the engine down and removes its working area.
	Terminate()
}
