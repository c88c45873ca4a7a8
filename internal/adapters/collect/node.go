package collect

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fab/internal/adapters/logger"
	"go.trai.ch/fab/internal/core/ports"
)

// NodeID is the unique identifier for the collector Graft node.
const NodeID graft.ID = "adapter.collector"

func init() {
	graft.Register(graft.Node[ports.Collector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Collector, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCollector(log), nil
		},
	})
}
