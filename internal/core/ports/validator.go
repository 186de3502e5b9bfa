package ports

import (
	"context"

	"go.drover.dev/drover/internal/core/domain"
)

// Validator is the pluggable validation gate evaluated around execution.
//
//go:generate go run go.uber.org/mock/mockgen -source=validator.go -destination=mocks/mock_validator.go -package=mocks
type Validator interface {
	// CheckPreconditions gates execution. A failed result blocks the task
	// entirely; no attempts are made.
	CheckPreconditions(ctx context.Context, task *domain.Task) domain.ValidationResult

	// CheckPostconditions grades a finished execution. The outcome is
	// advisory: it scores and warns but never overturns a completed result.
	CheckPostconditions(ctx context.Context, task *domain.Task, result *domain.TaskExecutionResult) domain.ValidationResult
}
