package scan

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fab/internal/core/ports"
)

// NodeID is the unique identifier for the log classifier Graft node.
const NodeID graft.ID = "adapter.log_classifier"

func init() {
	graft.Register(graft.Node[ports.LogClassifier]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LogClassifier, error) {
			return NewScanner(), nil
		},
	})
}
