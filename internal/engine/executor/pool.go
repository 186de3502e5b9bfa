package executor

import (
	"context"
	"errors"

	"go.drover.dev/drover/internal/core/domain"
)

// RunFunc executes one task to a terminal result. The error return is
// reserved for infrastructure failures; ordinary task failures are carried
// inside the result.
type RunFunc func(ctx context.Context, task *domain.Task) (*domain.TaskExecutionResult, error)

type poolResult struct {
	res *domain.TaskExecutionResult
	err error
}

type poolState struct {
	queue     []domain.Task
	active    int
	resultsCh chan poolResult
	results   []domain.TaskExecutionResult
	errs      error
	ctx       context.Context
	limit     int
	run       RunFunc
}

// RunBounded executes the tasks with at most limit in flight at any
// instant. Admission follows slice order; the returned results are in
// completion order. Every task produces exactly one result — a cancelled
// context surfaces as cancelled results, never as dropped tasks.
func RunBounded(
	ctx context.Context,
	tasks []domain.Task,
	limit int,
	run RunFunc,
) ([]domain.TaskExecutionResult, error) {
	if limit < 1 {
		limit = 1
	}

	state := &poolState{
		queue:     tasks,
		resultsCh: make(chan poolResult, limit),
		results:   make([]domain.TaskExecutionResult, 0, len(tasks)),
		ctx:       ctx,
		limit:     limit,
		run:       run,
	}

	for !state.isDone() {
		state.admit()

		if state.isDone() {
			break
		}

		state.collect(<-state.resultsCh)
	}

	return state.results, state.errs
}

func (state *poolState) isDone() bool {
	return state.active == 0 && len(state.queue) == 0
}

func (state *poolState) admit() {
	for len(state.queue) > 0 && state.active < state.limit {
		task := state.queue[0]
		state.queue = state.queue[1:]

		state.active++
		go func(t domain.Task) {
			res, err := state.run(state.ctx, &t)
			state.resultsCh <- poolResult{res: res, err: err}
		}(task)
	}
}

func (state *poolState) collect(pr poolResult) {
	state.active--
	if pr.err != nil {
		state.errs = errors.Join(state.errs, pr.err)
		return
	}
	if pr.res != nil {
		state.results = append(state.results, *pr.res)
	}
}
