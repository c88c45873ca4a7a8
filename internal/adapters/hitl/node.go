package hitl

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fab/internal/adapters/logger"
	"go.trai.ch/fab/internal/core/ports"
)

// NodeID is the unique identifier for the rig Graft node.
const NodeID graft.ID = "adapter.rig"

func init() {
	graft.Register(graft.Node[ports.Rig]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Rig, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRig(log), nil
		},
	})
}
