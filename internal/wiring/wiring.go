// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fab/internal/adapters/collect"
	_ "go.trai.ch/fab/internal/adapters/config"
	_ "go.trai.ch/fab/internal/adapters/hitl"
	_ "go.trai.ch/fab/internal/adapters/logger"
	_ "go.trai.ch/fab/internal/adapters/scan"
	_ "go.trai.ch/fab/internal/adapters/shell"
	_ "go.trai.ch/fab/internal/adapters/synth"
	_ "go.trai.ch/fab/internal/adapters/vendor"
	// Register the app node.
	_ "go.trai.ch/fab/internal/app"
)
