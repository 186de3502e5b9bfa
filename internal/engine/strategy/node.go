package strategy

import (
	"context"

	"github.com/grindlemire/graft"
	"go.drover.dev/drover/internal/core/ports"
)

// NodeID is the unique identifier for the strategy selector Graft node.
const NodeID graft.ID = "engine.selector"

func init() {
	graft.Register(graft.Node[ports.StrategySelector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StrategySelector, error) {
			return NewSelector(), nil
		},
	})
}
