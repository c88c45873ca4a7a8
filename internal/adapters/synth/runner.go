// Package synth drives the external synthesis toolchain.
//
// The toolchain is an opaque collaborator: a run takes minutes to hours, is
// not idempotent, and is never retried. The runner's job is to prepare the
// build tree, apply any feature patches to the source checkout, launch the
// build command, and capture everything the tool prints. The captured log is
// load-bearing: it is the scanner's input, and some toolchain failures only
// show up there while the process still exits zero.
package synth

import (
	"context"
	"io"
	"os"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/fab/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Synthesizer = (*Runner)(nil)

// Runner implements ports.Synthesizer on top of a ports.Executor.
type Runner struct {
	logger   ports.Logger
	executor ports.Executor
}

// NewRunner creates a new synthesis Runner.
func NewRunner(logger ports.Logger, executor ports.Executor) *Runner {
	return &Runner{
		logger:   logger,
		executor: executor,
	}
}

// Synthesize applies the target's feature patches and runs its synthesis
// command from the project root, streaming the combined tool output to sink
// and to the tree's synthesis log.
func (r *Runner) Synthesize(
	ctx context.Context,
	root string,
	target domain.BoardTarget,
	tree domain.BuildTree,
	env []string,
	sink io.Writer,
) error {
	if sink == nil {
		sink = io.Discard
	}

	if err := os.MkdirAll(tree.GatewareDir(), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrBuildTreeCreateFailed.Error()), "path", tree.GatewareDir())
	}

	//nolint:gosec // Path is derived from the managed build tree
	logFile, err := os.OpenFile(tree.SynthesisLogPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.FilePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrBuildTreeCreateFailed.Error()), "path", tree.SynthesisLogPath())
	}
	defer logFile.Close() //nolint:errcheck // Best effort close in defer

	// Patch output lands in the same log so a failed hunk is visible next to
	// the build it would have changed.
	out := io.MultiWriter(sink, logFile)

	for _, patch := range target.Patches {
		if err := r.applyPatch(ctx, root, patch, env, out); err != nil {
			return err
		}
	}

	r.logger.Info("synthesizing " + target.Key())
	if err := r.executor.Execute(ctx, target.SynthCommand, root, env, out, out); err != nil {
		err = zerr.Wrap(err, domain.ErrSynthesisFailed.Error())
		return zerr.With(err, "target", target.Key())
	}

	return nil
}

// applyPatch applies one feature patch to the source checkout. The -N flag
// keeps an already-applied patch from failing the run when a previous build
// was interrupted after patching.
func (r *Runner) applyPatch(ctx context.Context, root string, patch domain.FeaturePatch, env []string, out io.Writer) error {
	r.logger.Info("applying feature patch " + patch.Feature)

	command := []string{"patch", "-N", "-p1", "-i", patch.Path}
	if err := r.executor.Execute(ctx, command, root, env, out, out); err != nil {
		err = zerr.Wrap(err, domain.ErrPatchFailed.Error())
		return zerr.With(err, "feature", patch.Feature)
	}

	return nil
}
