package synth

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fab/internal/adapters/logger"
	"go.trai.ch/fab/internal/adapters/shell"
	"go.trai.ch/fab/internal/core/ports"
)

// NodeID is the unique identifier for the synthesizer Graft node.
const NodeID graft.ID = "adapter.synthesizer"

func init() {
	graft.Register(graft.Node[ports.Synthesizer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, shell.NodeID},
		Run: func(ctx context.Context) (ports.Synthesizer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log, executor), nil
		},
	})
}
