// Package progrock provides the Progrock implementation of the lifecycle
// observer.
package progrock

import (
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.drover.dev/drover/internal/core/domain"
	"go.drover.dev/drover/internal/core/ports"
)

var _ ports.Observer = (*Recorder)(nil)

// Recorder renders task progress as Progrock vertices, one per task.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu       sync.Mutex
	vertices map[string]*progrock.VertexRecorder
}

// New creates a Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:        w,
		rec:      progrock.NewRecorder(w),
		vertices: make(map[string]*progrock.VertexRecorder),
	}
}

// TaskStarted opens a vertex for the task.
func (r *Recorder) TaskStarted(task *domain.Task) {
	name := task.Title
	if name == "" {
		name = task.ID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertices[task.ID] = r.rec.Vertex(digest.FromString(task.ID), name)
}

// TaskCompleted closes the task's vertex successfully.
func (r *Recorder) TaskCompleted(result *domain.TaskExecutionResult) {
	v := r.take(result.TaskID)
	if v == nil {
		return
	}
	if result.Output != "" {
		_, _ = fmt.Fprintln(v.Stdout(), result.Output)
	}
	v.Done(nil)
}

// TaskFailed closes the task's vertex with its error.
func (r *Recorder) TaskFailed(result *domain.TaskExecutionResult) {
	v := r.take(result.TaskID)
	if v == nil {
		return
	}

	var err error
	if result.Error != nil {
		_, _ = fmt.Fprintf(v.Stderr(), "[%s] %s\n", result.Error.Type, result.Error.Message)
		err = fmt.Errorf("%s", result.Error.Message)
	}
	v.Done(err)
}

func (r *Recorder) take(taskID string) *progrock.VertexRecorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.vertices[taskID]
	delete(r.vertices, taskID)
	return v
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
