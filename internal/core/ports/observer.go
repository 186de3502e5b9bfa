package ports

import "go.drover.dev/drover/internal/core/domain"

// Observer receives task lifecycle notifications. It replaces event-bus
// style emit/listen hooks with explicit callback injection; implementations
// must not block.
//
//go:generate go run go.uber.org/mock/mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks
type Observer interface {
	// TaskStarted fires when a task passes its pre-condition gate.
	TaskStarted(task *domain.Task)

	// TaskCompleted fires once per task that reaches a completed result.
	TaskCompleted(result *domain.TaskExecutionResult)

	// TaskFailed fires once per task that reaches a failed or cancelled result.
	TaskFailed(result *domain.TaskExecutionResult)
}
