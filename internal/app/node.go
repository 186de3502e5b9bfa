package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.drover.dev/drover/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.drover.dev/drover/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.drover.dev/drover/internal/adapters/state"     //nolint:depguard // Wired in app layer
	"go.drover.dev/drover/internal/adapters/workspace" //nolint:depguard // Wired in app layer
	"go.drover.dev/drover/internal/core/ports"
	"go.drover.dev/drover/internal/engine/dispatcher"
	"go.drover.dev/drover/internal/engine/executor"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the App with the collaborators the CLI edge needs
// directly.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			dispatcher.NodeID,
			state.NodeID,
			workspace.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			disp, err := graft.Dep[*dispatcher.Dispatcher](ctx)
			if err != nil {
				return nil, err
			}

			exec, err := graft.Dep[*executor.Executor](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[*state.Store](ctx)
			if err != nil {
				return nil, err
			}

			ws, err := graft.Dep[*workspace.Workspace](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, disp, exec, store, ws, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Logger: log}, nil
		},
	})
}
