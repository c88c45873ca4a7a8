// Package app implements the application layer for fab.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/fab/internal/adapters/collect"
	"go.trai.ch/fab/internal/adapters/detector"
	"go.trai.ch/fab/internal/adapters/hitl"
	"go.trai.ch/fab/internal/adapters/linear"
	"go.trai.ch/fab/internal/adapters/telemetry"
	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/fab/internal/engine/pipeline"
	"go.trai.ch/fab/internal/ui/output"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	vendorer     ports.Vendorer
	synthesizer  ports.Synthesizer
	classifier   ports.LogClassifier
	collector    ports.Collector
	executor     ports.Executor
	rig          ports.Rig
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	vendorer ports.Vendorer,
	synthesizer ports.Synthesizer,
	classifier ports.LogClassifier,
	collector ports.Collector,
	executor ports.Executor,
	rig ports.Rig,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		vendorer:     vendorer,
		synthesizer:  synthesizer,
		classifier:   classifier,
		collector:    collector,
		executor:     executor,
		rig:          rig,
		logger:       log,
	}
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// Features are feature names to patch into the build, in order. Only
	// valid when building a single target.
	Features []string

	// SynthCommand overrides the synthesis command template. Whitespace
	// split. Only valid when building a single target.
	SynthCommand string

	// OutDir overrides the configured dist directory for collected sets.
	OutDir string

	// SkipVendor skips dependency vendoring; the cache must already be
	// populated.
	SkipVendor bool

	// Jobs bounds how many targets build concurrently. Values below one
	// mean sequential.
	Jobs int

	// OutputMode is the user's renderer override: auto, color, plain, ci.
	OutputMode string
}

// Build runs the full pipeline for each requested target. Every target is a
// fully independent instance with its own build tree and artifact directory;
// a failing instance never cancels or corrupts the others. Per-target errors
// are joined into the returned error.
func (a *App) Build(ctx context.Context, specs []string, opts BuildOptions) error {
	root, err := a.configLoader.DiscoverRoot(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	catalog, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	targets, err := catalog.Resolve(specs, domain.ResolveOverrides{
		Features:     opts.Features,
		SynthCommand: strings.Fields(opts.SynthCommand),
	})
	if err != nil {
		return err
	}

	var lock *domain.DependencyLock
	if !opts.SkipVendor {
		lock, err = a.configLoader.LoadLock(".")
		if err != nil {
			return err
		}
	}

	renderer := a.newRenderer(opts.OutputMode)

	// Wire the OTel SDK to the renderer so every stage span lands in the
	// output.
	bridge := telemetry.NewBridge(renderer)
	setupOTel(bridge)

	tracer := telemetry.NewOTelTracer("fab").WithRenderer(renderer)
	defer func() {
		_ = tracer.Shutdown(ctx)
	}()

	pipe := pipeline.NewPipeline(a.vendorer, a.synthesizer, a.classifier, a.collector, tracer)

	keys := make([]string, len(targets))
	for i, target := range targets {
		keys[i] = target.Key()
	}
	tracer.EmitPlan(ctx, keys)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()

		if err := a.runInstances(ctx, pipe, root, catalog, lock, targets, opts); err != nil {
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return nil
	})

	return g.Wait()
}

// runInstances drives the per-target pipeline instances. Instances are
// isolated on purpose: each runs with the parent context, not a shared
// cancellable one, so one failure cannot abort the rest mid-synthesis.
func (a *App) runInstances(
	ctx context.Context,
	pipe *pipeline.Pipeline,
	root string,
	catalog *domain.Catalog,
	lock *domain.DependencyLock,
	targets []domain.BoardTarget,
	opts BuildOptions,
) error {
	pipeOpts := pipeline.Options{
		SkipVendor: opts.SkipVendor,
		OutRoot:    opts.OutDir,
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	var instances errgroup.Group
	instances.SetLimit(jobs)

	var mu sync.Mutex
	var errs error

	for _, target := range targets {
		instances.Go(func() error {
			if _, err := pipe.Run(ctx, root, catalog, lock, target, pipeOpts); err != nil {
				mu.Lock()
				errs = errors.Join(errs, zerr.With(err, "target", target.Key()))
				mu.Unlock()
			}
			return nil
		})
	}

	_ = instances.Wait()
	return errs
}

// Vendor runs the firmware dependency vendorer standalone.
func (a *App) Vendor(ctx context.Context) error {
	catalog, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	lock, err := a.configLoader.LoadLock(".")
	if err != nil {
		return err
	}

	return a.vendorer.Vendor(ctx, catalog.VendorDir, lock)
}

// HITLOptions configuration for the HITL method.
type HITLOptions struct {
	// ArtifactDir holds a previously collected artifact set, manifest
	// included.
	ArtifactDir string
}

// HITL runs a hardware-in-the-loop session for one target: acquire the
// remote rig lock, flash the artifact set, wait for the board to settle, run
// the hardware tests, and release the lock on every exit path. A lock that
// cannot be acquired fails the session without ever touching the board; the
// artifact set on disk stays valid either way.
func (a *App) HITL(ctx context.Context, spec string, opts HITLOptions) error {
	catalog, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	targets, err := catalog.Resolve([]string{spec}, domain.ResolveOverrides{})
	if err != nil {
		return err
	}
	target := targets[0]

	if target.RigResource == "" {
		return zerr.With(domain.ErrNoRigResource, "target", target.Key())
	}

	set, err := collect.LoadSet(opts.ArtifactDir)
	if err != nil {
		return err
	}

	lock := a.rig.Session(catalog.Rig.Host, target.RigResource)
	payload := hitl.NewPayload(a.logger, a.executor)
	coordinator := hitl.NewCoordinator()

	a.logger.Info(fmt.Sprintf("requesting rig lock %q via %s", target.RigResource, catalog.Rig.Host))
	return coordinator.WithLock(ctx, lock, func(ctx context.Context) error {
		return payload.Run(ctx, catalog.Rig, target, set, os.Stdout)
	})
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Build  bool
	Vendor bool
	Dist   bool
}

// Clean removes build trees, the vendor cache, and collected artifact sets
// based on the provided options.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	catalog, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			wrapped := zerr.Wrap(err, domain.ErrCleanFailed.Error())
			errs = errors.Join(errs, zerr.With(wrapped, "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.Build {
		remove(catalog.BuildDir, "build trees")
	}

	if options.Vendor {
		remove(catalog.VendorDir, "vendor cache")
	}

	if options.Dist {
		remove(catalog.DistDir, "collected artifacts")
	}

	return errs
}

// newRenderer picks the renderer for the detected (or overridden) output
// mode. Both modes are linear; color is the only difference.
func (a *App) newRenderer(userFlag string) ports.Renderer {
	mode := detector.ResolveMode(detector.DetectEnvironment(), userFlag)

	if mode == detector.ModeColor {
		return linear.NewRendererWithProfile(os.Stdout, os.Stderr, output.ColorProfile)
	}
	return linear.NewRenderer(os.Stdout, os.Stderr)
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
