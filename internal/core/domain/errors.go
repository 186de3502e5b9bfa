package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when adding a task with an id that is already in the plan.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrTaskNotFound is returned when a requested task id is not present in the plan.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrMissingChild is returned when a task references a child id that doesn't exist in the plan.
	ErrMissingChild = zerr.New("missing child task")

	// ErrCycleDetected is returned when a task is its own ancestor.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrInvalidCategory is returned for a category outside the closed set.
	ErrInvalidCategory = zerr.New("invalid task category")

	// ErrInvalidPriority is returned for a priority outside the closed set.
	ErrInvalidPriority = zerr.New("invalid task priority")

	// ErrInvalidComplexity is returned for a complexity outside the closed set.
	ErrInvalidComplexity = zerr.New("invalid task complexity")

	// ErrInvalidStrategyType is returned for a strategy type outside the closed set.
	ErrInvalidStrategyType = zerr.New("invalid strategy type")

	// ErrNoTasksSpecified is returned when a run is requested without any tasks.
	ErrNoTasksSpecified = zerr.New("no tasks specified")

	// ErrStateCorrupted is returned when a persisted checkpoint fails its checksum.
	ErrStateCorrupted = zerr.New("checkpoint state corrupted")

	// ErrConfirmationDeclined is returned when a task requiring confirmation is declined.
	ErrConfirmationDeclined = zerr.New("confirmation declined by user")

	// ErrExecutionFailed is returned by a run in which at least one task
	// reached a failed result. The per-task details live in the results.
	ErrExecutionFailed = zerr.New("task execution failed")
)
