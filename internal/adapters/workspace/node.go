package workspace

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the workspace adapter Graft node.
const NodeID graft.ID = "adapter.workspace"

func init() {
	// Registered as the concrete type: the app layer re-roots the
	// workspace when a configuration is loaded.
	graft.Register(graft.Node[*Workspace]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Workspace, error) {
			return New("."), nil
		},
	})
}
