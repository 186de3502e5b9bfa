// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.drover.dev/drover/internal/adapters/config"
	_ "go.drover.dev/drover/internal/adapters/logger"
	_ "go.drover.dev/drover/internal/adapters/state"
	_ "go.drover.dev/drover/internal/adapters/telemetry"
	_ "go.drover.dev/drover/internal/adapters/tools"
	_ "go.drover.dev/drover/internal/adapters/workspace"
	// Register app and engine nodes.
	_ "go.drover.dev/drover/internal/app"
	_ "go.drover.dev/drover/internal/engine/dispatcher"
	_ "go.drover.dev/drover/internal/engine/executor"
	_ "go.drover.dev/drover/internal/engine/strategy"
	_ "go.drover.dev/drover/internal/engine/validation"
)
