package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fab/internal/adapters/collect"
	"go.trai.ch/fab/internal/adapters/config"
	"go.trai.ch/fab/internal/adapters/hitl"
	"go.trai.ch/fab/internal/adapters/logger"
	"go.trai.ch/fab/internal/adapters/scan"
	"go.trai.ch/fab/internal/adapters/shell"
	"go.trai.ch/fab/internal/adapters/synth"
	"go.trai.ch/fab/internal/adapters/vendor"
	"go.trai.ch/fab/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI layer
// needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			vendor.NodeID,
			synth.NodeID,
			scan.NodeID,
			collect.NodeID,
			shell.NodeID,
			hitl.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	vendorer, err := graft.Dep[ports.Vendorer](ctx)
	if err != nil {
		return nil, err
	}

	synthesizer, err := graft.Dep[ports.Synthesizer](ctx)
	if err != nil {
		return nil, err
	}

	classifier, err := graft.Dep[ports.LogClassifier](ctx)
	if err != nil {
		return nil, err
	}

	collector, err := graft.Dep[ports.Collector](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	rig, err := graft.Dep[ports.Rig](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, vendorer, synthesizer, classifier, collector, executor, rig, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
