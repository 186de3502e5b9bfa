package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrorType is the closed taxonomy of execution errors.
type ErrorType string

const (
	ErrorValidationFailed    ErrorType = "VALIDATION_FAILED"
	ErrorToolNotFound        ErrorType = "TOOL_NOT_FOUND"
	ErrorToolExecutionFailed ErrorType = "TOOL_EXECUTION_FAILED"
	ErrorTimeout             ErrorType = "TIMEOUT"
	ErrorDependencyFailed    ErrorType = "DEPENDENCY_FAILED"
	ErrorPermissionDenied    ErrorType = "PERMISSION_DENIED"
	ErrorResourceUnavailable ErrorType = "RESOURCE_UNAVAILABLE"
	ErrorUserCancelled       ErrorType = "USER_CANCELLED"
	ErrorSystem              ErrorType = "SYSTEM_ERROR"
)

// Recoverable reports whether an error of this type leaves the task in a
// state worth retrying or rolling back. Exactly PERMISSION_DENIED,
// USER_CANCELLED and SYSTEM_ERROR are unrecoverable.
func (t ErrorType) Recoverable() bool {
	switch t {
	case ErrorPermissionDenied, ErrorUserCancelled, ErrorSystem:
		return false
	default:
		return true
	}
}

// ExecutionError describes a terminal or per-attempt failure. It is derived
// from an underlying error and never mutated.
type ExecutionError struct {
	Message     string            `json:"message"`
	Code        string            `json:"code"`
	Type        ErrorType         `json:"type"`
	Recoverable bool              `json:"recoverable"`
	Context     map[string]string `json:"context,omitempty"`
}

// NewExecutionError builds an ExecutionError of an explicitly known type.
func NewExecutionError(t ErrorType, msg string) *ExecutionError {
	return &ExecutionError{
		Message:     msg,
		Code:        string(t),
		Type:        t,
		Recoverable: t.Recoverable(),
	}
}

// ClassifyError converts an arbitrary error into an ExecutionError using
// substring matching against the error text, in priority order:
// timeout, permission, not-found, validation, cancelled, else SYSTEM_ERROR.
func ClassifyError(err error) *ExecutionError {
	if err == nil {
		return nil
	}

	t := classify(err)
	return &ExecutionError{
		Message:     err.Error(),
		Code:        string(t),
		Type:        t,
		Recoverable: t.Recoverable(),
	}
}

func classify(err error) ErrorType {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ErrorUserCancelled
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return ErrorTimeout
	case strings.Contains(msg, "permission") || strings.Contains(msg, "access denied"):
		return ErrorPermissionDenied
	case strings.Contains(msg, "not found") || strings.Contains(msg, "no such file"):
		return ErrorResourceUnavailable
	case strings.Contains(msg, "validation"):
		return ErrorValidationFailed
	case strings.Contains(msg, "cancel"):
		return ErrorUserCancelled
	default:
		return ErrorSystem
	}
}

// ExecutionMetrics counts observable work performed for one result.
type ExecutionMetrics struct {
	ToolInvocations  int `json:"tool_invocations"`
	RetryAttempts    int `json:"retry_attempts"`
	ValidationChecks int `json:"validation_checks"`
	CacheHits        int `json:"cache_hits"`
}

// TaskExecutionResult is the output record of one execution attempt chain.
// It is immutable after being returned.
type TaskExecutionResult struct {
	TaskID     string                `json:"task_id"`
	Status     TaskStatus            `json:"status"`
	StartTime  time.Time             `json:"start_time"`
	EndTime    time.Time             `json:"end_time"`
	Duration   time.Duration         `json:"duration"`
	Output     string                `json:"output,omitempty"`
	Error      *ExecutionError       `json:"error,omitempty"`
	SubResults []TaskExecutionResult `json:"sub_results,omitempty"`
	Metrics    ExecutionMetrics      `json:"metrics"`

	// RollbackRequired marks results whose declared RollbackSteps should be
	// surfaced to an external executor. The engine never runs them.
	RollbackRequired bool     `json:"rollback_required"`
	RollbackSteps    []string `json:"rollback_steps,omitempty"`
}

// NeedsRollback decides the rollback flag for a failed task: the error must
// be recoverable and the category must have side effects to undo.
func NeedsRollback(task *Task, execErr *ExecutionError) bool {
	if execErr == nil || !execErr.Recoverable {
		return false
	}
	return !task.Category.RollbackExempt()
}
