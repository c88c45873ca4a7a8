// Package pipeline runs the build sequence for one board target.
//
// A build is a fixed chain of typed stages: vendor the locked firmware
// dependencies, run the synthesis toolchain, scan its log for constraint
// violations, and collect the artifact set. Each stage either produces the
// input of the next or fails the instance; nothing is retried. Failure
// classification lives in the adapters, the pipeline only sequences them.
package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pipeline executes the vendor, synthesize, scan, and collect stages for
// independent board targets. Instances share no mutable state beyond the
// vendor cache, which is safe to share.
type Pipeline struct {
	vendorer   ports.Vendorer
	synth      ports.Synthesizer
	classifier ports.LogClassifier
	collector  ports.Collector
	tracer     ports.Tracer
}

// NewPipeline creates a Pipeline from its stage adapters.
func NewPipeline(
	vendorer ports.Vendorer,
	synth ports.Synthesizer,
	classifier ports.LogClassifier,
	collector ports.Collector,
	tracer ports.Tracer,
) *Pipeline {
	return &Pipeline{
		vendorer:   vendorer,
		synth:      synth,
		classifier: classifier,
		collector:  collector,
		tracer:     tracer,
	}
}

// Options adjusts a single pipeline run.
type Options struct {
	// SkipVendor skips the dependency vendoring stage. The cache must
	// already hold everything the toolchain needs.
	SkipVendor bool

	// OutRoot overrides the catalog's dist directory as the root for the
	// collected artifact set.
	OutRoot string
}

// Run builds one target, strictly sequentially: vendor, synthesize, scan,
// collect. The scan stage gates collection on the synthesis log regardless
// of the tool's exit status. Returns the collected artifact set on success.
func (p *Pipeline) Run(
	ctx context.Context,
	root string,
	catalog *domain.Catalog,
	lock *domain.DependencyLock,
	target domain.BoardTarget,
	opts Options,
) (set domain.ArtifactSet, err error) {
	key := target.Key()

	ctx, span := p.tracer.Start(ctx, key)
	span.SetAttribute("target", target.Target)
	span.SetAttribute("variant", target.Variant)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	if !opts.SkipVendor {
		err = p.stage(ctx, key, "vendor", func(ctx context.Context, _ ports.Span) error {
			return p.vendorer.Vendor(ctx, catalog.VendorDir, lock)
		})
		if err != nil {
			return domain.ArtifactSet{}, err
		}
	}

	// The toolchain resolves its dependencies from the cache even when
	// vendoring itself was skipped.
	env := p.vendorer.Env(catalog.VendorDir)
	tree := domain.NewBuildTree(catalog.BuildDir, target.Target, target.Variant)

	err = p.stage(ctx, key, "synth", func(ctx context.Context, span ports.Span) error {
		return p.synth.Synthesize(ctx, root, target, tree, env, span)
	})
	if err != nil {
		return domain.ArtifactSet{}, err
	}

	err = p.stage(ctx, key, "scan", func(_ context.Context, _ ports.Span) error {
		return p.scanLog(tree)
	})
	if err != nil {
		return domain.ArtifactSet{}, err
	}

	err = p.stage(ctx, key, "collect", func(_ context.Context, _ ports.Span) error {
		outDir := p.outputDir(catalog, target, opts)
		set, err = p.collector.Collect(target, tree, outDir)
		return err
	})
	if err != nil {
		return domain.ArtifactSet{}, err
	}

	return set, nil
}

// stage runs one pipeline stage inside its own span.
func (p *Pipeline) stage(ctx context.Context, key, name string, fn func(context.Context, ports.Span) error) error {
	ctx, span := p.tracer.Start(ctx, key+":"+name)
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// scanLog feeds the captured synthesis log to the classifier. A tool run
// that exited zero still fails here when the log records unmet timing
// constraints.
func (p *Pipeline) scanLog(tree domain.BuildTree) error {
	logPath := tree.SynthesisLogPath()
	file, err := os.Open(logPath)
	if err != nil {
		wrapped := zerr.Wrap(err, domain.ErrSynthesisLogMissing.Error())
		return zerr.With(wrapped, "path", logPath)
	}
	defer func() {
		_ = file.Close()
	}()

	return p.classifier.Scan(file)
}

// outputDir returns where the target's artifact set lands.
func (p *Pipeline) outputDir(catalog *domain.Catalog, target domain.BoardTarget, opts Options) string {
	outRoot := catalog.DistDir
	if opts.OutRoot != "" {
		outRoot = opts.OutRoot
	}
	return filepath.Join(outRoot, target.Target, target.Variant)
}
