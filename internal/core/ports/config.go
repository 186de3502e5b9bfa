package ports

import "go.drover.dev/drover/internal/core/domain"

// RunSettings carries the non-task knobs of a loaded configuration.
type RunSettings struct {
	// WorkspaceRoots are the directories tasks may touch.
	WorkspaceRoots []string

	// StateDir is where checkpoints are persisted.
	StateDir string

	// MaxConcurrency caps simultaneously running root tasks. Zero means
	// the engine default.
	MaxConcurrency int
}

// ConfigLoader loads a task plan and run settings from a configuration
// source.
//
//go:generate go run go.uber.org/mock/mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path and returns the validated plan.
	Load(path string) (*domain.Plan, *RunSettings, error)
}
