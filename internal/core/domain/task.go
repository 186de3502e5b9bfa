// Package domain contains the core domain model for the task execution engine.
package domain

import "go.trai.ch/zerr"

// TaskCategory classifies the kind of work a task performs.
type TaskCategory string

const (
	CategoryRead     TaskCategory = "read"
	CategoryEdit     TaskCategory = "edit"
	CategoryCreate   TaskCategory = "create"
	CategoryDelete   TaskCategory = "delete"
	CategorySearch   TaskCategory = "search"
	CategoryAnalyze  TaskCategory = "analyze"
	CategoryExecute  TaskCategory = "execute"
	CategoryRefactor TaskCategory = "refactor"
	CategoryTest     TaskCategory = "test"
	CategoryDeploy   TaskCategory = "deploy"
	CategoryValidate TaskCategory = "validate"
	CategoryOptimize TaskCategory = "optimize"
	CategoryDebug    TaskCategory = "debug"
	CategoryDocument TaskCategory = "document"
)

// Categories lists every valid task category.
var Categories = []TaskCategory{
	CategoryRead, CategoryEdit, CategoryCreate, CategoryDelete,
	CategorySearch, CategoryAnalyze, CategoryExecute, CategoryRefactor,
	CategoryTest, CategoryDeploy, CategoryValidate, CategoryOptimize,
	CategoryDebug, CategoryDocument,
}

// ParseCategory validates and returns a TaskCategory from its string form.
func ParseCategory(s string) (TaskCategory, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", zerr.With(ErrInvalidCategory, "category", s)
}

// IsMutating reports whether tasks of this category modify files or external
// state. Mutating tasks are subject to the concurrency conflict rule and to
// writability pre-checks.
func (c TaskCategory) IsMutating() bool {
	switch c {
	case CategoryEdit, CategoryCreate, CategoryDelete, CategoryRefactor,
		CategoryDeploy, CategoryOptimize:
		return true
	default:
		return false
	}
}

// RollbackExempt reports whether the category has no side effects to undo.
// Results for exempt categories never require rollback.
func (c TaskCategory) RollbackExempt() bool {
	switch c {
	case CategoryRead, CategorySearch, CategoryAnalyze, CategoryValidate:
		return true
	default:
		return false
	}
}

// TaskPriority orders tasks for dispatch. Higher ranks dispatch first.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityNormal   TaskPriority = "normal"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
	PriorityBlocking TaskPriority = "blocking"
)

// Rank returns the numeric ordering of the priority: low < normal < high <
// critical < blocking. Unknown values rank below low.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityNormal:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	case PriorityBlocking:
		return 5
	default:
		return 0
	}
}

// ParsePriority validates and returns a TaskPriority from its string form.
// The empty string defaults to normal.
func ParsePriority(s string) (TaskPriority, error) {
	switch TaskPriority(s) {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical, PriorityBlocking:
		return TaskPriority(s), nil
	}
	if s == "" {
		return PriorityNormal, nil
	}
	return "", zerr.With(ErrInvalidPriority, "priority", s)
}

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "running"
	// StatusCompleted indicates the task finished successfully.
	StatusCompleted TaskStatus = "completed"
	// StatusFailed indicates the task execution failed terminally.
	StatusFailed TaskStatus = "failed"
	// StatusCancelled indicates the task was aborted by the caller.
	StatusCancelled TaskStatus = "cancelled"
)

// Resumable reports whether a persisted task in this status should be
// rescheduled during recovery.
func (s TaskStatus) Resumable() bool {
	return s == StatusPending || s == StatusRunning
}

// TaskComplexity grades how involved a task is expected to be.
type TaskComplexity string

const (
	ComplexitySimple        TaskComplexity = "simple"
	ComplexityModerate      TaskComplexity = "moderate"
	ComplexityComplex       TaskComplexity = "complex"
	ComplexityHighlyComplex TaskComplexity = "highly_complex"
)

// Rank returns the numeric ordering of the complexity grade.
func (c TaskComplexity) Rank() int {
	switch c {
	case ComplexitySimple:
		return 1
	case ComplexityModerate:
		return 2
	case ComplexityComplex:
		return 3
	case ComplexityHighlyComplex:
		return 4
	default:
		return 0
	}
}

// ParseComplexity validates and returns a TaskComplexity from its string
// form. The empty string defaults to moderate.
func ParseComplexity(s string) (TaskComplexity, error) {
	switch TaskComplexity(s) {
	case ComplexitySimple, ComplexityModerate, ComplexityComplex, ComplexityHighlyComplex:
		return TaskComplexity(s), nil
	}
	if s == "" {
		return ComplexityModerate, nil
	}
	return "", zerr.With(ErrInvalidComplexity, "complexity", s)
}

// ValidationStepType identifies a declared post-execution validation step.
type ValidationStepType string

const (
	StepFileExists ValidationStepType = "file_exists"
	StepSyntax     ValidationStepType = "syntax"
	StepTestPass   ValidationStepType = "test_pass"
)

// ValidationStep is a declared check evaluated after a task executes.
type ValidationStep struct {
	Type   ValidationStepType
	Target string
}

// Task is the unit of work driven by the engine. Tasks are created by the
// breakdown collaborator before the engine sees them; the engine mutates only
// Status and CurrentRetries.
type Task struct {
	ID          string
	Title       string
	Description string
	Category    TaskCategory
	Priority    TaskPriority
	Status      TaskStatus
	Complexity  TaskComplexity

	// ParentID is a weak back-reference; the parent owns ChildIDs but not
	// the child task objects, which are separately addressable.
	ParentID string
	ChildIDs []string

	TargetFiles []string

	Strategy        *ExecutionStrategy
	MaxRetries      int
	CurrentRetries  int
	RollbackSteps   []string
	SuccessCriteria []string
	ValidationSteps []ValidationStep
}

// IsComposite reports whether the task has children. A composite task's
// result is an aggregation of its child results; an atomic task executes via
// a single tool invocation.
func (t *Task) IsComposite() bool {
	return len(t.ChildIDs) > 0
}
