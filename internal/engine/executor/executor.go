// Package executor implements the task execution core: the state machine
// that drives a single task to a terminal result under retry, timeout and
// validation policy.
package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.drover.dev/drover/internal/core/domain"
	"go.drover.dev/drover/internal/core/ports"
	"go.trai.ch/zerr"
)

// ConfirmFunc asks the caller to approve a task whose strategy requires
// confirmation. Returning false cancels the task.
type ConfirmFunc func(task *domain.Task) bool

// Executor runs exactly one task to a terminal result. It owns the only
// mutable shared structures of the engine: the per-task state map written
// through the checkpoint store and the in-flight guard map.
type Executor struct {
	tools     ports.ToolRegistry
	store     ports.StateStore
	validator ports.Validator
	selector  ports.StrategySelector
	logger    ports.Logger
	observer  ports.Observer

	mu       sync.Mutex
	inflight map[string]struct{}
	confirm  ConfirmFunc
}

// New creates a new Executor with the given collaborators.
func New(
	tools ports.ToolRegistry,
	store ports.StateStore,
	validator ports.Validator,
	selector ports.StrategySelector,
	logger ports.Logger,
	observer ports.Observer,
) *Executor {
	return &Executor{
		tools:     tools,
		store:     store,
		validator: validator,
		selector:  selector,
		logger:    logger,
		observer:  observer,
		inflight:  make(map[string]struct{}),
	}
}

// SetConfirm installs the confirmation callback. A nil callback approves
// every task.
func (e *Executor) SetConfirm(fn ConfirmFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.confirm = fn
}

func (e *Executor) confirmFunc() ConfirmFunc {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.confirm
}

// acquire registers the task as in flight. Each task id maps to exactly one
// active execution.
func (e *Executor) acquire(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inflight[id]; busy {
		return false
	}
	e.inflight[id] = struct{}{}
	return true
}

func (e *Executor) release(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inflight, id)
}

// Execute runs the task to a terminal result. Ordinary task failures are
// returned inside the result; the error return is reserved for
// infrastructure failures such as an unavailable checkpoint store.
func (e *Executor) Execute(
	ctx context.Context,
	task *domain.Task,
	resolver ports.TaskResolver,
) (*domain.TaskExecutionResult, error) {
	if !e.acquire(task.ID) {
		res := failedResult(task, domain.NewExecutionError(
			domain.ErrorResourceUnavailable, "task is already executing"))
		return res, nil
	}
	defer e.release(task.ID)

	run := &taskRun{
		e:        e,
		task:     task,
		resolver: resolver,
		start:    time.Now(),
		state: &domain.ExecutionState{
			TaskID: task.ID,
			Status: domain.StatusPending,
		},
	}

	return run.execute(ctx)
}

// taskRun carries the mutable bookkeeping of one execution attempt chain.
type taskRun struct {
	e        *Executor
	task     *domain.Task
	resolver ports.TaskResolver
	start    time.Time
	state    *domain.ExecutionState
	metrics  domain.ExecutionMetrics
}

func (r *taskRun) execute(ctx context.Context) (*domain.TaskExecutionResult, error) {
	// Pre-conditions gate execution entirely: no attempts, no rollback.
	r.metrics.ValidationChecks++
	pre := r.e.validator.CheckPreconditions(ctx, r.task)
	if !pre.Passed {
		msg := "pre-condition validation failed"
		if len(pre.Errors) > 0 {
			msg = pre.Errors[0]
		}
		res := r.finish(domain.StatusFailed, "",
			domain.NewExecutionError(domain.ErrorValidationFailed, msg))
		res.RollbackRequired = false
		res.RollbackSteps = nil
		if err := r.checkpoint(domain.StatusFailed, 0, "pre-validation"); err != nil {
			return nil, err
		}
		r.e.observer.TaskFailed(res)
		return res, nil
	}

	strategy := r.task.Strategy
	if strategy == nil {
		selected := r.e.selector.SelectStrategy(r.task)
		strategy = &selected
	}

	if strategy.RequiresConfirmation {
		if confirm := r.e.confirmFunc(); confirm != nil && !confirm(r.task) {
			res := r.finish(domain.StatusCancelled, "",
				domain.NewExecutionError(domain.ErrorUserCancelled, domain.ErrConfirmationDeclined.Error()))
			if err := r.checkpoint(domain.StatusCancelled, 0, "confirmation"); err != nil {
				return nil, err
			}
			r.e.observer.TaskFailed(res)
			return res, nil
		}
	}

	r.task.Status = domain.StatusRunning
	if err := r.checkpoint(domain.StatusRunning, 0, "starting"); err != nil {
		return nil, err
	}
	r.e.observer.TaskStarted(r.task)

	var res *domain.TaskExecutionResult
	var err error
	if r.task.IsComposite() {
		res, err = r.executeComposite(ctx, strategy)
	} else {
		res, err = r.executeAtomic(ctx, strategy)
	}
	if err != nil {
		return nil, err
	}

	// Post-conditions are advisory: warnings are logged but a completed
	// result is never overturned.
	r.metrics.ValidationChecks++
	res.Metrics.ValidationChecks = r.metrics.ValidationChecks
	post := r.e.validator.CheckPostconditions(ctx, r.task, res)
	if !post.Passed && res.Status == domain.StatusCompleted {
		r.e.logger.Warn("post-condition validation failed",
			"task", r.task.ID, "score", post.Score, "errors", fmt.Sprint(post.Errors))
	}
	for _, w := range post.Warnings {
		r.e.logger.Warn("post-condition warning", "task", r.task.ID, "warning", w)
	}
	r.e.logger.Metric("validation_score", float64(post.Score), "task", r.task.ID)

	switch res.Status {
	case domain.StatusCompleted:
		r.e.observer.TaskCompleted(res)
	default:
		r.e.observer.TaskFailed(res)
	}

	return res, nil
}

// executeAtomic runs the retry attempt loop for a leaf task.
func (r *taskRun) executeAtomic(
	ctx context.Context,
	strategy *domain.ExecutionStrategy,
) (*domain.TaskExecutionResult, error) {
	tool, found := r.resolveTool()
	if !found {
		// Terminal: absent tools are not retried.
		execErr := domain.NewExecutionError(domain.ErrorToolNotFound,
			"no tool available for category "+string(r.task.Category))
		res := r.finish(domain.StatusFailed, "", execErr)
		if err := r.checkpointFailure("tool-resolution"); err != nil {
			return nil, err
		}
		return res, nil
	}

	attempts := strategy.Retry.Attempts()
	timeout := strategy.EffectiveTimeout()

	var lastErr *domain.ExecutionError
	for attempt := 1; attempt <= attempts; attempt++ {
		step := fmt.Sprintf("attempt %d/%d", attempt, attempts)
		if err := r.checkpoint(domain.StatusRunning, attemptProgress(attempt, attempts), step); err != nil {
			return nil, err
		}

		output, execErr := r.invoke(ctx, tool, timeout)
		r.metrics.ToolInvocations++

		if execErr == nil {
			r.state.CompletedSteps = append(r.state.CompletedSteps, step)
			r.task.Status = domain.StatusCompleted
			res := r.finish(domain.StatusCompleted, output, nil)
			if err := r.checkpoint(domain.StatusCompleted, 100, "done"); err != nil {
				return nil, err
			}
			return res, nil
		}

		lastErr = execErr
		r.state.FailedSteps = append(r.state.FailedSteps, step+": "+execErr.Message)
		r.task.CurrentRetries = attempt

		if execErr.Type == domain.ErrorUserCancelled {
			r.task.Status = domain.StatusCancelled
			res := r.finish(domain.StatusCancelled, "", execErr)
			if err := r.checkpoint(domain.StatusCancelled, r.state.Progress, step); err != nil {
				return nil, err
			}
			return res, nil
		}

		if attempt < attempts {
			r.metrics.RetryAttempts++
			delay := domain.BackoffDelay(attempt, strategy.Retry)
			r.e.logger.Debug("retrying task",
				"task", r.task.ID, "attempt", attempt, "delay", delay.String(), "error", execErr.Message)
			if cancelled := sleep(ctx, delay); cancelled {
				cancelErr := domain.NewExecutionError(domain.ErrorUserCancelled, ctx.Err().Error())
				r.task.Status = domain.StatusCancelled
				res := r.finish(domain.StatusCancelled, "", cancelErr)
				if err := r.checkpoint(domain.StatusCancelled, r.state.Progress, step); err != nil {
					return nil, err
				}
				return res, nil
			}
		}
	}

	r.task.Status = domain.StatusFailed
	res := r.finish(domain.StatusFailed, "", lastErr)
	if err := r.checkpointFailure("exhausted retries"); err != nil {
		return nil, err
	}
	return res, nil
}

// invoke runs one tool invocation raced against the attempt timeout.
func (r *taskRun) invoke(
	ctx context.Context,
	tool ports.Tool,
	timeout time.Duration,
) (string, *domain.ExecutionError) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type invocation struct {
		res *ports.ToolResult
		err error
	}
	done := make(chan invocation, 1)

	go func() {
		res, err := tool.Invoke(attemptCtx, ports.ToolRequest{
			TaskID:      r.task.ID,
			Description: r.task.Description,
			TargetFiles: r.task.TargetFiles,
		})
		done <- invocation{res: res, err: err}
	}()

	select {
	case inv := <-done:
		if inv.err != nil {
			return "", domain.ClassifyError(inv.err)
		}
		if inv.res != nil && inv.res.Err != nil {
			ee := domain.NewExecutionError(domain.ErrorToolExecutionFailed, inv.res.Err.Error())
			return "", ee
		}
		if inv.res == nil {
			return "", nil
		}
		return inv.res.Output, nil
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			// The caller's abort signal, not the attempt timer.
			return "", domain.NewExecutionError(domain.ErrorUserCancelled, ctx.Err().Error())
		}
		return "", domain.NewExecutionError(domain.ErrorTimeout,
			"attempt timed out after "+timeout.String())
	}
}

// executeComposite delegates to the children and aggregates their results.
func (r *taskRun) executeComposite(
	ctx context.Context,
	strategy *domain.ExecutionStrategy,
) (*domain.TaskExecutionResult, error) {
	children := make([]domain.Task, 0, len(r.task.ChildIDs))
	for _, id := range r.task.ChildIDs {
		child, ok := r.resolver.Get(id)
		if !ok {
			execErr := domain.NewExecutionError(domain.ErrorDependencyFailed,
				"child task not found: "+id)
			res := r.finish(domain.StatusFailed, "", execErr)
			if err := r.checkpointFailure("resolve children"); err != nil {
				return nil, err
			}
			return res, nil
		}
		children = append(children, *child)
	}

	runChild := func(cctx context.Context, child *domain.Task) (*domain.TaskExecutionResult, error) {
		return r.e.Execute(cctx, child, r.resolver)
	}

	var subResults []domain.TaskExecutionResult
	var err error
	switch strategy.Type {
	case domain.StrategyParallel, domain.StrategyBatch:
		limit := strategy.MaxConcurrency
		if limit < 1 {
			limit = 1
		}
		subResults, err = RunBounded(ctx, children, limit, runChild)
	default:
		subResults, err = r.runSequential(ctx, children, strategy.Type, runChild)
	}
	if err != nil {
		return nil, err
	}

	return r.aggregate(subResults)
}

// runSequential executes children strictly in order. Conditional strategies
// stop dispatching after the first failure and mark the remainder as
// dependency failures so no child is left without a result.
func (r *taskRun) runSequential(
	ctx context.Context,
	children []domain.Task,
	strategyType domain.StrategyType,
	run RunFunc,
) ([]domain.TaskExecutionResult, error) {
	results := make([]domain.TaskExecutionResult, 0, len(children))
	skipRemaining := false

	for i := range children {
		child := children[i]

		if skipRemaining {
			results = append(results, domain.TaskExecutionResult{
				TaskID:    child.ID,
				Status:    domain.StatusFailed,
				StartTime: time.Now(),
				EndTime:   time.Now(),
				Error: domain.NewExecutionError(domain.ErrorDependencyFailed,
					"skipped: a prior sibling failed"),
			})
			continue
		}

		res, err := run(ctx, &child)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)

		if err := r.checkpoint(domain.StatusRunning,
			(len(results)*100)/len(children),
			fmt.Sprintf("children %d/%d", len(results), len(children))); err != nil {
			return nil, err
		}

		if strategyType == domain.StrategyConditional && res.Status != domain.StatusCompleted {
			skipRemaining = true
		}
	}

	return results, nil
}

// aggregate folds child results into the composite result: failed if any
// child failed, rollback required if any child required it.
func (r *taskRun) aggregate(subResults []domain.TaskExecutionResult) (*domain.TaskExecutionResult, error) {
	status := domain.StatusCompleted
	rollback := false
	var firstErr *domain.ExecutionError
	for i := range subResults {
		sub := &subResults[i]
		if sub.Status != domain.StatusCompleted {
			status = domain.StatusFailed
			if firstErr == nil && sub.Error != nil {
				firstErr = domain.NewExecutionError(domain.ErrorDependencyFailed,
					"child "+sub.TaskID+" failed: "+sub.Error.Message)
			}
		}
		if sub.RollbackRequired {
			rollback = true
		}
		r.metrics.ToolInvocations += sub.Metrics.ToolInvocations
		r.metrics.RetryAttempts += sub.Metrics.RetryAttempts
		r.metrics.ValidationChecks += sub.Metrics.ValidationChecks
		r.metrics.CacheHits += sub.Metrics.CacheHits
	}

	r.task.Status = status
	res := r.finish(status, "", firstErr)
	res.SubResults = subResults
	res.RollbackRequired = rollback
	if rollback && len(res.RollbackSteps) == 0 {
		res.RollbackSteps = r.task.RollbackSteps
	}

	progress := 100
	step := "done"
	if status == domain.StatusFailed {
		step = "children failed"
	}
	if err := r.checkpoint(status, progress, step); err != nil {
		return nil, err
	}
	return res, nil
}

// resolveTool picks the first registered tool from the category preference
// order.
func (r *taskRun) resolveTool() (ports.Tool, bool) {
	for _, name := range domain.ToolPreference(r.task.Category) {
		if tool, ok := r.e.tools.Lookup(name); ok {
			return tool, true
		}
	}
	return nil, false
}

// finish assembles the immutable result record.
func (r *taskRun) finish(
	status domain.TaskStatus,
	output string,
	execErr *domain.ExecutionError,
) *domain.TaskExecutionResult {
	end := time.Now()
	res := &domain.TaskExecutionResult{
		TaskID:    r.task.ID,
		Status:    status,
		StartTime: r.start,
		EndTime:   end,
		Duration:  end.Sub(r.start),
		Output:    output,
		Error:     execErr,
		Metrics:   r.metrics,
	}
	if status == domain.StatusFailed && domain.NeedsRollback(r.task, execErr) {
		res.RollbackRequired = true
		res.RollbackSteps = r.task.RollbackSteps
	}
	return res
}

// checkpoint writes the current execution state through the store. Every
// status transition is persisted before control returns. A store failure is
// fatal infrastructure failure.
func (r *taskRun) checkpoint(status domain.TaskStatus, progress int, step string) error {
	r.state.Status = status
	r.state.Progress = progress
	r.state.CurrentStep = step
	r.state.LastUpdate = time.Now()
	if err := r.e.store.Save(r.state); err != nil {
		return zerr.With(zerr.Wrap(err, "checkpoint store unavailable"), "task", r.task.ID)
	}
	return nil
}

func (r *taskRun) checkpointFailure(step string) error {
	return r.checkpoint(domain.StatusFailed, r.state.Progress, step)
}

func failedResult(task *domain.Task, execErr *domain.ExecutionError) *domain.TaskExecutionResult {
	now := time.Now()
	return &domain.TaskExecutionResult{
		TaskID:    task.ID,
		Status:    domain.StatusFailed,
		StartTime: now,
		EndTime:   now,
		Error:     execErr,
	}
}

func attemptProgress(attempt, attempts int) int {
	// Keep progress monotonic across attempts without reaching 100.
	return 10 + (80*(attempt-1))/attempts
}

// sleep waits for the backoff delay, returning true if the context was
// cancelled first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() != nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return false
	case <-ctx.Done():
		return true
	}
}
