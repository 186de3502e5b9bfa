package ports

import "go.drover.dev/drover/internal/core/domain"

// StateStore is the durable checkpoint backend, keyed by task id.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// Save persists the state, replacing any existing record for the task.
	Save(state *domain.ExecutionState) error

	// Load retrieves the state for a task id.
	// Returns nil, nil if not found.
	Load(taskID string) (*domain.ExecutionState, error)

	// Delete removes the record for a task id. Missing records are not an error.
	Delete(taskID string) error

	// List returns all persisted states.
	List() ([]domain.ExecutionState, error)
}
