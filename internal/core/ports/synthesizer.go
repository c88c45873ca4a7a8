package ports

import (
	"context"
	"io"

	"go.trai.ch/fab/internal/core/domain"
)

// Synthesizer runs the external synthesis toolchain for one board target.
//
//go:generate mockgen -source=synthesizer.go -destination=mocks/mock_synthesizer.go -package=mocks
type Synthesizer interface {
	// Synthesize prepares the build tree, applies the target's feature
	// patches, and runs the synthesis command with the project root as
	// working directory. Combined tool output is streamed to sink and
	// captured as the tree's synthesis log. The run is never retried; a
	// non-zero exit returns ErrSynthesisFailed.
	Synthesize(ctx context.Context, root string, target domain.BoardTarget, tree domain.BuildTree, env []string, sink io.Writer) error
}
