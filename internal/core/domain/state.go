package domain

import "time"

// ExecutionState is the durable checkpoint of a task's progress. It is owned
// by the checkpoint manager; the execution core writes through it on every
// status transition and only reads it back during recovery.
type ExecutionState struct {
	TaskID         string     `json:"task_id"`
	Status         TaskStatus `json:"status"`
	Progress       int        `json:"progress"`
	CurrentStep    string     `json:"current_step,omitempty"`
	CompletedSteps []string   `json:"completed_steps,omitempty"`
	FailedSteps    []string   `json:"failed_steps,omitempty"`
	LastUpdate     time.Time  `json:"last_update"`
}

// Clone returns a deep copy so cached states can be handed out without
// aliasing the append-only step slices.
func (s *ExecutionState) Clone() *ExecutionState {
	if s == nil {
		return nil
	}
	c := *s
	c.CompletedSteps = append([]string(nil), s.CompletedSteps...)
	c.FailedSteps = append([]string(nil), s.FailedSteps...)
	return &c
}
