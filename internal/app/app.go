// Package app implements the application layer for drover.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.drover.dev/drover/internal/core/domain"
	"go.drover.dev/drover/internal/core/ports"
	"go.drover.dev/drover/internal/engine/dispatcher"
	"go.drover.dev/drover/internal/engine/executor"
	"go.trai.ch/zerr"
)

// WorkspaceConfig is the workspace port plus the setter applied when a
// configuration is loaded.
type WorkspaceConfig interface {
	ports.Workspace
	SetRoots(roots []string)
}

// StoreConfig is the state store port plus the setter applied when a
// configuration is loaded.
type StoreConfig interface {
	ports.StateStore
	SetDir(dir string) error
}

// App represents the main application logic.
type App struct {
	loader     ports.ConfigLoader
	dispatcher *dispatcher.Dispatcher
	exec       *executor.Executor
	store      StoreConfig
	workspace  WorkspaceConfig
	logger     ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	disp *dispatcher.Dispatcher,
	exec *executor.Executor,
	store StoreConfig,
	ws WorkspaceConfig,
	logger ports.Logger,
) *App {
	return &App{
		loader:     loader,
		dispatcher: disp,
		exec:       exec,
		store:      store,
		workspace:  ws,
		logger:     logger,
	}
}

// SetConfirm installs the confirmation callback used for tasks whose
// strategy requires it.
func (a *App) SetConfirm(fn executor.ConfirmFunc) {
	a.exec.SetConfirm(fn)
}

// Run loads the configuration and executes the named tasks, or every root
// task when none are named. It returns ErrExecutionFailed when any task
// fails.
func (a *App) Run(ctx context.Context, configPath string, taskIDs []string) error {
	plan, err := a.load(configPath)
	if err != nil {
		return err
	}

	tasks, err := selectTasks(plan, taskIDs)
	if err != nil {
		return err
	}

	results, err := a.dispatcher.ExecuteTasks(ctx, tasks, plan)
	if err != nil {
		return zerr.Wrap(err, "dispatch failed")
	}

	return a.report(results)
}

// Resume reloads the configuration and re-dispatches every task whose
// persisted checkpoint was left pending or running.
func (a *App) Resume(ctx context.Context, configPath string) error {
	plan, err := a.load(configPath)
	if err != nil {
		return err
	}

	states, err := a.store.List()
	if err != nil {
		return zerr.Wrap(err, "failed to list checkpoints")
	}

	var tasks []domain.Task
	for _, state := range states {
		if !state.Status.Resumable() {
			continue
		}
		task, ok := plan.Get(state.TaskID)
		if !ok {
			a.logger.Warn("checkpoint references unknown task, skipping",
				"task", state.TaskID, "status", string(state.Status))
			continue
		}
		a.logger.Info("resuming task",
			"task", state.TaskID, "step", state.CurrentStep, "progress", state.Progress)
		tasks = append(tasks, *task)
	}

	if len(tasks) == 0 {
		a.logger.Info("nothing to resume")
		return nil
	}

	results, err := a.dispatcher.ExecuteTasks(ctx, tasks, plan)
	if err != nil {
		return zerr.Wrap(err, "dispatch failed")
	}

	return a.report(results)
}

// Describe writes a human-readable listing of the plan's task trees.
func (a *App) Describe(configPath string, w io.Writer) error {
	plan, err := a.load(configPath)
	if err != nil {
		return err
	}

	for _, root := range plan.Roots() {
		describeTask(w, plan, &root, 0)
	}
	return nil
}

func describeTask(w io.Writer, plan *domain.Plan, task *domain.Task, depth int) {
	indent := strings.Repeat("  ", depth)
	title := task.Title
	if title == "" {
		title = task.Description
	}
	_, _ = fmt.Fprintf(w, "%s%s  [%s/%s] %s\n",
		indent, task.ID, task.Category, task.Priority, title)

	for _, childID := range task.ChildIDs {
		if child, ok := plan.Get(childID); ok {
			describeTask(w, plan, child, depth+1)
		}
	}
}

// load reads the configuration and applies its settings to the mutable
// adapters before anything executes.
func (a *App) load(configPath string) (*domain.Plan, error) {
	plan, settings, err := a.loader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	a.workspace.SetRoots(settings.WorkspaceRoots)
	if err := a.store.SetDir(settings.StateDir); err != nil {
		return nil, zerr.Wrap(err, "failed to prepare state directory")
	}
	if settings.MaxConcurrency > 0 {
		a.dispatcher.SetMaxConcurrency(settings.MaxConcurrency)
	}

	return plan, nil
}

func selectTasks(plan *domain.Plan, taskIDs []string) ([]domain.Task, error) {
	if len(taskIDs) == 0 {
		roots := plan.Roots()
		if len(roots) == 0 {
			return nil, domain.ErrNoTasksSpecified
		}
		return roots, nil
	}

	tasks := make([]domain.Task, 0, len(taskIDs))
	for _, id := range taskIDs {
		task, ok := plan.Get(id)
		if !ok {
			return nil, zerr.With(domain.ErrTaskNotFound, "task_id", id)
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

// report logs the outcome summary and maps any task failure to
// ErrExecutionFailed.
func (a *App) report(results []domain.TaskExecutionResult) error {
	var completed, failed, cancelled int
	for i := range results {
		res := &results[i]
		switch res.Status {
		case domain.StatusCompleted:
			completed++
		case domain.StatusCancelled:
			cancelled++
		default:
			failed++
			if res.Error != nil {
				taskErr := zerr.With(zerr.New(res.Error.Message), "task", res.TaskID)
				a.logger.Error(zerr.With(taskErr, "type", string(res.Error.Type)))
			}
		}
		if res.RollbackRequired {
			a.logger.Warn("rollback required",
				"task", res.TaskID, "steps", strings.Join(res.RollbackSteps, "; "))
		}
	}

	a.logger.Info("run finished",
		"completed", completed, "failed", failed, "cancelled", cancelled)

	if failed > 0 || cancelled > 0 {
		err := zerr.With(domain.ErrExecutionFailed, "failed", failed)
		return zerr.With(err, "cancelled", cancelled)
	}
	return nil
}
