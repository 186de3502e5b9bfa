package dispatcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.drover.dev/drover/internal/core/ports"
	"go.drover.dev/drover/internal/engine/executor"
	"go.drover.dev/drover/internal/engine/strategy"
)

// NodeID is the unique identifier for the dispatcher Graft node.
const NodeID graft.ID = "engine.dispatcher"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			executor.NodeID,
			strategy.NodeID,
		},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			exec, err := graft.Dep[*executor.Executor](ctx)
			if err != nil {
				return nil, err
			}

			selector, err := graft.Dep[ports.StrategySelector](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(exec, selector, log), nil
		},
	})
}
