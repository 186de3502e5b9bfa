package tools

import (
	"context"

	"github.com/grindlemire/graft"
	"go.drover.dev/drover/internal/adapters/logger"    //nolint:depguard // Wired in adapter wiring
	"go.drover.dev/drover/internal/adapters/workspace" //nolint:depguard // Wired in adapter wiring
	"go.drover.dev/drover/internal/core/ports"
)

// NodeID is the unique identifier for the tool registry adapter Graft node.
const NodeID graft.ID = "adapter.tools"

func init() {
	graft.Register(graft.Node[ports.ToolRegistry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			workspace.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.ToolRegistry, error) {
			ws, err := graft.Dep[*workspace.Workspace](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewDefaultRegistry(ws, log), nil
		},
	})
}
