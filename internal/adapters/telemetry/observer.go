package telemetry

import (
	"go.drover.dev/drover/internal/adapters/telemetry/progrock"
	"go.drover.dev/drover/internal/core/ports"
)

// NewObserver selects the lifecycle observer for a run: the progrock
// recorder when the session is interactive, the noop observer otherwise.
func NewObserver(interactive bool) ports.Observer {
	if interactive {
		return progrock.New()
	}
	return NewNoopObserver()
}
