// Package config provides the configuration loader for drover.
package config

import (
	"os"
	"path/filepath"
	"time"

	"go.drover.dev/drover/internal/core/domain"
	"go.drover.dev/drover/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// DefaultFilename is the configuration file looked up when none is given.
const DefaultFilename = "drover.yaml"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads a configuration file and returns the validated plan and run
// settings. Relative workspace roots and the state directory are resolved
// against the configuration file's directory.
func (l *Loader) Load(path string) (*domain.Plan, *ports.RunSettings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to read config file")
	}

	var file Droverfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, zerr.Wrap(err, "failed to parse config file")
	}

	baseDir := filepath.Dir(path)
	settings := buildSettings(&file, baseDir)

	plan, err := buildPlan(&file)
	if err != nil {
		return nil, nil, err
	}

	l.logger.Debug("loaded configuration",
		"path", path,
		"tasks", plan.TaskCount(),
		"roots", len(settings.WorkspaceRoots))
	return plan, settings, nil
}

func buildSettings(file *Droverfile, baseDir string) *ports.RunSettings {
	settings := &ports.RunSettings{
		MaxConcurrency: file.MaxConcurrency,
	}

	roots := file.Workspace.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for _, root := range roots {
		settings.WorkspaceRoots = append(settings.WorkspaceRoots, resolve(baseDir, root))
	}

	stateDir := file.StateDir
	if stateDir == "" {
		stateDir = ".drover/state"
	}
	settings.StateDir = resolve(baseDir, stateDir)

	return settings
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}

// buildPlan converts the task DTOs into a validated plan. The first pass
// collects ids so child references and parent links can be checked; the
// second builds the tasks.
func buildPlan(file *Droverfile) (*domain.Plan, error) {
	ids := make(map[string]bool, len(file.Tasks))
	parentOf := make(map[string]string)
	for id := range file.Tasks {
		ids[id] = true
	}

	for id, dto := range file.Tasks {
		for _, child := range dto.Children {
			if !ids[child] {
				err := zerr.With(domain.ErrMissingChild, "task_id", id)
				return nil, zerr.With(err, "child_id", child)
			}
			if prev, claimed := parentOf[child]; claimed {
				err := zerr.With(zerr.New("task has multiple parents"), "task_id", child)
				return nil, zerr.With(err, "parents", prev+","+id)
			}
			parentOf[child] = id
		}
	}

	plan := domain.NewPlan()
	for id, dto := range file.Tasks {
		task, err := buildTask(id, dto, parentOf[id])
		if err != nil {
			return nil, err
		}
		if err := plan.AddTask(task); err != nil {
			return nil, err
		}
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

func buildTask(id string, dto TaskDTO, parentID string) (*domain.Task, error) {
	category, err := domain.ParseCategory(dto.Category)
	if err != nil {
		return nil, zerr.With(err, "task_id", id)
	}
	priority, err := domain.ParsePriority(dto.Priority)
	if err != nil {
		return nil, zerr.With(err, "task_id", id)
	}
	complexity, err := domain.ParseComplexity(dto.Complexity)
	if err != nil {
		return nil, zerr.With(err, "task_id", id)
	}

	steps := make([]domain.ValidationStep, 0, len(dto.ValidationSteps))
	for _, step := range dto.ValidationSteps {
		switch domain.ValidationStepType(step.Type) {
		case domain.StepFileExists, domain.StepSyntax, domain.StepTestPass:
			steps = append(steps, domain.ValidationStep{
				Type:   domain.ValidationStepType(step.Type),
				Target: step.Target,
			})
		default:
			err := zerr.With(zerr.New("unknown validation step type"), "task_id", id)
			return nil, zerr.With(err, "type", step.Type)
		}
	}

	strategy, err := buildStrategy(id, dto.Strategy)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:              id,
		Title:           dto.Title,
		Description:     dto.Description,
		Category:        category,
		Priority:        priority,
		Status:          domain.StatusPending,
		Complexity:      complexity,
		ParentID:        parentID,
		ChildIDs:        dto.Children,
		TargetFiles:     dto.TargetFiles,
		Strategy:        strategy,
		RollbackSteps:   dto.RollbackSteps,
		SuccessCriteria: dto.SuccessCriteria,
		ValidationSteps: steps,
	}
	if strategy != nil {
		task.MaxRetries = strategy.Retry.MaxRetries
	}
	return task, nil
}

func buildStrategy(id string, dto *StrategyDTO) (*domain.ExecutionStrategy, error) {
	if dto == nil {
		return nil, nil
	}

	strategyType, err := domain.ParseStrategyType(dto.Type)
	if err != nil {
		return nil, zerr.With(err, "task_id", id)
	}

	strategy := &domain.ExecutionStrategy{
		Type:                 strategyType,
		MaxConcurrency:       dto.MaxConcurrency,
		Timeout:              time.Duration(dto.TimeoutMinutes) * time.Minute,
		RequiresConfirmation: dto.RequiresConfirmation,
	}

	if dto.Retry != nil {
		backoff := domain.BackoffStrategy(dto.Retry.Backoff)
		switch backoff {
		case domain.BackoffLinear, domain.BackoffExponential, domain.BackoffConstant:
		case "":
			backoff = domain.BackoffExponential
		default:
			err := zerr.With(zerr.New("unknown backoff strategy"), "task_id", id)
			return nil, zerr.With(err, "backoff", dto.Retry.Backoff)
		}
		strategy.Retry = domain.RetryPolicy{
			MaxRetries: dto.Retry.MaxRetries,
			Backoff:    backoff,
			BaseDelay:  time.Duration(dto.Retry.BaseDelayMS) * time.Millisecond,
			MaxDelay:   time.Duration(dto.Retry.MaxDelayMS) * time.Millisecond,
		}
	}
	return strategy, nil
}
