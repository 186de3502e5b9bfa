package executor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.drover.dev/drover/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.drover.dev/drover/internal/adapters/state"     //nolint:depguard // Wired in engine wiring
	"go.drover.dev/drover/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.drover.dev/drover/internal/adapters/tools"     //nolint:depguard // Wired in engine wiring
	"go.drover.dev/drover/internal/core/ports"
	"go.drover.dev/drover/internal/engine/strategy"
	"go.drover.dev/drover/internal/engine/validation"
)

// NodeID is the unique identifier for the executor Graft node.
const NodeID graft.ID = "engine.executor"

func init() {
	graft.Register(graft.Node[*Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			tools.NodeID,
			state.NodeID,
			validation.NodeID,
			strategy.NodeID,
			telemetry.ObserverNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Executor, error) {
			registry, err := graft.Dep[ports.ToolRegistry](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[*state.Store](ctx)
			if err != nil {
				return nil, err
			}

			validator, err := graft.Dep[ports.Validator](ctx)
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

			observer, err := graft.Dep[ports.Observer](ctx)
			if err != nil {
				return nil, err
			}

			return New(registry, store, validator, selector, log, observer), nil
		},
	})
}
