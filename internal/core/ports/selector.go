package ports

import (
	"time"

	"go.drover.dev/drover/internal/core/domain"
)

// StrategySelector maps a task's characteristics to an execution strategy
// when the task doesn't carry one explicitly. Implementations remain
// pluggable via interface substitution.
//
//go:generate go run go.uber.org/mock/mockgen -source=selector.go -destination=mocks/mock_selector.go -package=mocks
type StrategySelector interface {
	// SelectStrategy resolves the strategy to run the task under.
	SelectStrategy(task *domain.Task) domain.ExecutionStrategy

	// CanRunConcurrently reports whether two sibling tasks are eligible to
	// execute at the same time.
	CanRunConcurrently(a, b *domain.Task) bool

	// EstimateDuration predicts how long the task should take, used by the
	// post-condition duration checks.
	EstimateDuration(task *domain.Task) time.Duration
}
