// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Executor defines the interface for running external commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command and waits for it to complete.
	//
	// The env parameter contains environment variables in "KEY=VALUE" format,
	// typically provided by the vendorer so the toolchain resolves its inputs
	// from the local cache. dir is the working directory; empty means the
	// current directory.
	//
	// It returns an error carrying the exit code when the command fails.
	Execute(ctx context.Context, command []string, dir string, env []string, stdout, stderr io.Writer) error
}
