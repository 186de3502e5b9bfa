// Package telemetry provides task lifecycle observers.
package telemetry

import (
	"go.drover.dev/drover/internal/core/domain"
	"go.drover.dev/drover/internal/core/ports"
)

var _ ports.Observer = (*NoopObserver)(nil)

// NoopObserver discards all lifecycle notifications. It is the default
// observer for non-interactive runs.
type NoopObserver struct{}

// NewNoopObserver creates a new NoopObserver.
func NewNoopObserver() *NoopObserver { return &NoopObserver{} }

// TaskStarted does nothing.
func (NoopObserver) TaskStarted(_ *domain.Task) {}

// TaskCompleted does nothing.
func (NoopObserver) TaskCompleted(_ *domain.TaskExecutionResult) {}

// TaskFailed does nothing.
func (NoopObserver) TaskFailed(_ *domain.TaskExecutionResult) {}
