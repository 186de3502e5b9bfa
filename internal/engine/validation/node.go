package validation

import (
	"context"

	"github.com/grindlemire/graft"
	"go.drover.dev/drover/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.drover.dev/drover/internal/adapters/tools"     //nolint:depguard // Wired in engine wiring
	"go.drover.dev/drover/internal/adapters/workspace" //nolint:depguard // Wired in engine wiring
	"go.drover.dev/drover/internal/core/ports"
	"go.drover.dev/drover/internal/engine/strategy"
)

// NodeID is the unique identifier for the validation gate Graft node.
const NodeID graft.ID = "engine.validator"

func init() {
	graft.Register(graft.Node[ports.Validator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			tools.NodeID,
			workspace.NodeID,
			strategy.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Validator, error) {
			registry, err := graft.Dep[ports.ToolRegistry](ctx)
			if err != nil {
				return nil, err
			}

			ws, err := graft.Dep[*workspace.Workspace](ctx)
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

			return NewGate(registry, ws, selector, log), nil
		},
	})
}
