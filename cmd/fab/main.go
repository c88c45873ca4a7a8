// Package main is the entry point for the fab build tool.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/fab/cmd/fab/commands"
	"go.trai.ch/fab/internal/app"
	"go.trai.ch/fab/internal/core/domain"
	_ "go.trai.ch/fab/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Interruptions must cancel everything downstream, the rig lock release
	// included.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrBuildExecutionFailed) {
			// Per-target failures were already rendered.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
