package state

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the state store adapter Graft node.
const NodeID graft.ID = "adapter.state_store"

func init() {
	// Registered as the concrete type: the app layer points the store at
	// the configured directory when a configuration is loaded.
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Store, error) {
			return NewStore(DefaultDir)
		},
	})
}
