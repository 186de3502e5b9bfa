package ports

import "go.drover.dev/drover/internal/core/domain"

// TaskResolver resolves child task ids to task objects during composite
// execution. domain.Plan satisfies it.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type TaskResolver interface {
	// Get returns the task with the given id, or false if absent.
	Get(id string) (*domain.Task, bool)
}
