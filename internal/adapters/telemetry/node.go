package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/mattn/go-isatty"
	"go.drover.dev/drover/internal/core/ports"
)

// ObserverNodeID is the unique identifier for the observer adapter Graft node.
const ObserverNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Observer]{
		ID:        ObserverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Observer, error) {
			interactive := isatty.IsTerminal(os.Stderr.Fd()) ||
				isatty.IsCygwinTerminal(os.Stderr.Fd())
			return NewObserver(interactive), nil
		},
	})
}
