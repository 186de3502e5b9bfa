// Package dispatcher implements the top-level batch entry point: priority
// ordering, parallel/sequential partitioning and result aggregation.
package dispatcher

import (
	"context"
	"slices"

	"go.drover.dev/drover/internal/core/domain"
	"go.drover.dev/drover/internal/core/ports"
	"go.drover.dev/drover/internal/engine/executor"
)

// DefaultMaxConcurrency bounds the parallel group when no task strategy
// asks for more.
const DefaultMaxConcurrency = 4

// Dispatcher orders a batch of tasks, partitions it into parallel and
// sequential groups and aggregates the results.
type Dispatcher struct {
	exec     *executor.Executor
	selector ports.StrategySelector
	logger   ports.Logger

	maxConcurrency int
}

// New creates a new Dispatcher.
func New(exec *executor.Executor, selector ports.StrategySelector, logger ports.Logger) *Dispatcher {
	return &Dispatcher{
		exec:           exec,
		selector:       selector,
		logger:         logger,
		maxConcurrency: DefaultMaxConcurrency,
	}
}

// SetMaxConcurrency overrides the slot count for the parallel group.
func (d *Dispatcher) SetMaxConcurrency(n int) {
	if n > 0 {
		d.maxConcurrency = n
	}
}

// ExecuteTasks runs a batch of tasks and returns one result per executed
// task. Ordinary task failures are captured as failed results; the error
// return is reserved for infrastructure failures.
func (d *Dispatcher) ExecuteTasks(
	ctx context.Context,
	tasks []domain.Task,
	resolver ports.TaskResolver,
) ([]domain.TaskExecutionResult, error) {
	if len(tasks) == 0 {
		return nil, domain.ErrNoTasksSpecified
	}

	ordered := make([]domain.Task, len(tasks))
	copy(ordered, tasks)
	// Stable: equal priorities keep submission order.
	slices.SortStableFunc(ordered, func(a, b domain.Task) int {
		return b.Priority.Rank() - a.Priority.Rank()
	})

	parallel, sequential := d.partition(ordered)

	results := make([]domain.TaskExecutionResult, 0, len(ordered))

	if len(parallel) > 0 {
		parRes, err := executor.RunBounded(ctx, parallel, d.maxConcurrency,
			func(pctx context.Context, t *domain.Task) (*domain.TaskExecutionResult, error) {
				return d.exec.Execute(pctx, t, resolver)
			})
		if err != nil {
			return nil, err
		}
		results = append(results, parRes...)
	}

	seqRes, err := d.runSequential(ctx, sequential, resolver)
	if err != nil {
		return nil, err
	}
	results = append(results, seqRes...)

	return results, nil
}

// partition splits the ordered batch into a parallel group (strategy type
// parallel and conflict-free against the rest of the group) and a
// sequential group (everything else).
func (d *Dispatcher) partition(ordered []domain.Task) (parallel, sequential []domain.Task) {
	for i := range ordered {
		task := ordered[i]

		strategy := task.Strategy
		if strategy == nil {
			selected := d.selector.SelectStrategy(&task)
			strategy = &selected
		}

		if strategy.Type != domain.StrategyParallel {
			sequential = append(sequential, task)
			continue
		}

		eligible := true
		for j := range parallel {
			if !d.selector.CanRunConcurrently(&task, &parallel[j]) {
				eligible = false
				break
			}
		}
		if eligible {
			parallel = append(parallel, task)
		} else {
			sequential = append(sequential, task)
		}
	}
	return parallel, sequential
}

// runSequential executes the sequential group one at a time, in order. A
// failing task with priority high or above stops the group early; the
// remaining tasks are not attempted and produce no results.
func (d *Dispatcher) runSequential(
	ctx context.Context,
	sequential []domain.Task,
	resolver ports.TaskResolver,
) ([]domain.TaskExecutionResult, error) {
	results := make([]domain.TaskExecutionResult, 0, len(sequential))

	for i := range sequential {
		task := sequential[i]
		res, err := d.exec.Execute(ctx, &task, resolver)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)

		// Only a failure stops the group; a cancelled task (declined
		// confirmation) lets the remainder proceed.
		if res.Status == domain.StatusFailed &&
			task.Priority.Rank() >= domain.PriorityHigh.Rank() {
			d.logger.Warn("stopping sequential group: high-priority task failed",
				"task", task.ID, "priority", string(task.Priority),
				"remaining", len(sequential)-i-1)
			break
		}
	}

	return results, nil
}
