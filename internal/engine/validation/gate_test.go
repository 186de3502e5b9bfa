package validation_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.drover.dev/drover/internal/adapters/workspace"
	"go.drover.dev/drover/internal/core/domain"
	"go.drover.dev/drover/internal/core/ports/mocks"
	"go.drover.dev/drover/internal/engine/validation"
	"go.uber.org/mock/gomock"
)

type testLogger struct{}

func (testLogger) Debug(string, ...any)           {}
func (testLogger) Info(string, ...any)            {}
func (testLogger) Warn(string, ...any)            {}
func (testLogger) Error(error, ...any)            {}
func (testLogger) Metric(string, float64, ...any) {}

type fixture struct {
	registry *mocks.MockToolRegistry
	selector *mocks.MockStrategySelector
	gate     *validation.Gate
}

func newFixture(t *testing.T, ctrl *gomock.Controller, roots ...string) *fixture {
	t.Helper()

	f := &fixture{
		registry: mocks.NewMockToolRegistry(ctrl),
		selector: mocks.NewMockStrategySelector(ctrl),
	}
	f.gate = validation.NewGate(f.registry, workspace.New(roots...), f.selector, testLogger{})
	return f
}

// allTools makes every lookup succeed with a throwaway tool.
func (f *fixture) allTools(ctrl *gomock.Controller) {
	f.registry.EXPECT().Lookup(gomock.Any()).Return(mocks.NewMockTool(ctrl), true).AnyTimes()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGate_CheckPreconditions_Pass(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	target := writeFile(t, dir, "notes.md", "content")

	f := newFixture(t, ctrl, dir)
	f.allTools(ctrl)

	task := &domain.Task{
		ID:          "read-notes",
		Category:    domain.CategoryRead,
		TargetFiles: []string{target},
	}

	res := f.gate.CheckPreconditions(context.Background(), task)
	assert.True(t, res.Passed)
	assert.Equal(t, 100, res.Score)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "passed", res.Details["target_files_readable"])
}

func TestGate_CheckPreconditions_NoWorkspaceRoots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	f.allTools(ctrl)

	res := f.gate.CheckPreconditions(context.Background(), &domain.Task{
		ID:       "orphan",
		Category: domain.CategoryExecute,
	})
	assert.False(t, res.Passed)
	assert.Equal(t, 0, res.Score)
	assert.Contains(t, res.Errors, "workspace has no configured roots")
}

func TestGate_CheckPreconditions_MissingTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	f := newFixture(t, ctrl, dir)
	f.allTools(ctrl)

	missing := filepath.Join(dir, "ghost.go")
	res := f.gate.CheckPreconditions(context.Background(), &domain.Task{
		ID:          "edit-ghost",
		Category:    domain.CategoryEdit,
		TargetFiles: []string{missing},
	})
	assert.False(t, res.Passed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "does not exist")
}

func TestGate_CheckPreconditions_CreateSkipsExistence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	f := newFixture(t, ctrl, dir)
	f.allTools(ctrl)

	// A create task produces its targets; they must not be required up front.
	res := f.gate.CheckPreconditions(context.Background(), &domain.Task{
		ID:          "create-new",
		Category:    domain.CategoryCreate,
		TargetFiles: []string{filepath.Join(dir, "new.go")},
	})
	assert.True(t, res.Passed)
	assert.Equal(t, 100, res.Score)
}

func TestGate_CheckPreconditions_NoToolForCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, t.TempDir())
	f.registry.EXPECT().Lookup(gomock.Any()).Return(nil, false).AnyTimes()

	res := f.gate.CheckPreconditions(context.Background(), &domain.Task{
		ID:       "exec",
		Category: domain.CategoryExecute,
	})
	assert.False(t, res.Passed)
	assert.Contains(t, res.Errors, "no tool available for category execute")
}

func TestGate_CheckPreconditions_DescriptionImpliesTool(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, t.TempDir())
	f.registry.EXPECT().Lookup("read_file").Return(mocks.NewMockTool(ctrl), true).AnyTimes()
	f.registry.EXPECT().Lookup("shell").Return(nil, false).AnyTimes()

	res := f.gate.CheckPreconditions(context.Background(), &domain.Task{
		ID:          "read-script",
		Category:    domain.CategoryRead,
		Description: "Run the migration script against staging",
	})
	assert.False(t, res.Passed)
	assert.Contains(t, res.Errors, "tool implied by description is not available: shell")
}

func TestGate_CheckPreconditions_OutsideWorkspaceWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inside := t.TempDir()
	outside := t.TempDir()
	target := writeFile(t, outside, "stray.txt", "data")

	f := newFixture(t, ctrl, inside)
	f.allTools(ctrl)

	res := f.gate.CheckPreconditions(context.Background(), &domain.Task{
		ID:          "read-stray",
		Category:    domain.CategoryRead,
		TargetFiles: []string{target},
	})
	assert.True(t, res.Passed, "warnings alone do not block execution")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "outside the workspace")
}

func TestGate_AddPreRule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, t.TempDir())
	f.allTools(ctrl)
	f.gate.AddPreRule(validation.PreRule{
		Name: "always_blocks",
		Check: func(context.Context, *domain.Task) validation.RuleOutcome {
			return validation.RuleOutcome{Errors: []string{"blocked by custom rule"}}
		},
	})

	res := f.gate.CheckPreconditions(context.Background(), &domain.Task{
		ID:       "t",
		Category: domain.CategoryExecute,
	})
	assert.False(t, res.Passed)
	assert.Contains(t, res.Errors, "blocked by custom rule")
	assert.Equal(t, "failed", res.Details["always_blocks"])
}

func TestGate_CheckPostconditions_CleanRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, t.TempDir())
	f.selector.EXPECT().EstimateDuration(gomock.Any()).Return(10 * time.Minute).AnyTimes()

	task := &domain.Task{ID: "exec", Category: domain.CategoryExecute}
	result := &domain.TaskExecutionResult{
		TaskID:   "exec",
		Status:   domain.StatusCompleted,
		Duration: time.Minute,
	}

	res := f.gate.CheckPostconditions(context.Background(), task, result)
	assert.True(t, res.Passed)
	assert.Equal(t, 100, res.Score, "the fast-completion bonus cannot push past the cap")
	assert.Empty(t, res.Errors)
}

func TestGate_CheckPostconditions_FailedRunPenalty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, t.TempDir())
	f.selector.EXPECT().EstimateDuration(gomock.Any()).Return(10 * time.Minute).AnyTimes()

	task := &domain.Task{ID: "exec", Category: domain.CategoryExecute}
	result := &domain.TaskExecutionResult{
		TaskID: "exec",
		Status: domain.StatusFailed,
		Error:  domain.NewExecutionError(domain.ErrorToolExecutionFailed, "tool broke"),
	}

	res := f.gate.CheckPostconditions(context.Background(), task, result)
	assert.False(t, res.Passed)
	assert.Equal(t, 50, res.Score, "a failed run costs exactly the flat penalty")
	assert.Empty(t, res.Errors, "status is reported through details, not the error list")
	assert.Contains(t, res.Details["execution_status.status"], "tool broke")
}

func TestGate_CheckPostconditions_MissingArtifact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	f := newFixture(t, ctrl, dir)
	f.selector.EXPECT().EstimateDuration(gomock.Any()).Return(10 * time.Minute).AnyTimes()

	task := &domain.Task{
		ID:          "create-out",
		Category:    domain.CategoryCreate,
		TargetFiles: []string{filepath.Join(dir, "out.go")},
	}
	result := &domain.TaskExecutionResult{
		TaskID:   "create-out",
		Status:   domain.StatusCompleted,
		Duration: 6 * time.Minute,
	}

	res := f.gate.CheckPostconditions(context.Background(), task, result)
	assert.False(t, res.Passed)
	assert.Equal(t, 70, res.Score)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "expected artifact is missing")
}

func TestGate_CheckPostconditions_EmptyArtifactWarnsWithBonus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	target := writeFile(t, dir, "empty.go", "")

	f := newFixture(t, ctrl, dir)
	f.selector.EXPECT().EstimateDuration(gomock.Any()).Return(10 * time.Minute).AnyTimes()

	task := &domain.Task{
		ID:          "edit-empty",
		Category:    domain.CategoryEdit,
		TargetFiles: []string{target},
	}
	result := &domain.TaskExecutionResult{
		TaskID:   "edit-empty",
		Status:   domain.StatusCompleted,
		Duration: time.Minute,
	}

	res := f.gate.CheckPostconditions(context.Background(), task, result)
	assert.True(t, res.Passed)
	assert.Equal(t, 95, res.Score, "one warning less the fast-completion bonus")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "artifact is empty")
}

func TestGate_CheckPostconditions_DurationOverruns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name      string
		duration  time.Duration
		warnings  int
		errors    int
		wantScore int
	}{
		{name: "within estimate", duration: 8 * time.Minute, wantScore: 100},
		{name: "over 2x", duration: 25 * time.Minute, warnings: 1, wantScore: 90},
		{name: "over 3x", duration: 35 * time.Minute, warnings: 1, wantScore: 90},
		{name: "over 5x", duration: time.Hour, errors: 1, wantScore: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, ctrl, t.TempDir())
			f.selector.EXPECT().EstimateDuration(gomock.Any()).Return(10 * time.Minute).AnyTimes()

			task := &domain.Task{ID: "slow", Category: domain.CategoryExecute}
			result := &domain.TaskExecutionResult{
				TaskID:   "slow",
				Status:   domain.StatusCompleted,
				Duration: tt.duration,
			}

			res := f.gate.CheckPostconditions(context.Background(), task, result)
			assert.Len(t, res.Warnings, tt.warnings)
			assert.Len(t, res.Errors, tt.errors)
			assert.Equal(t, tt.wantScore, res.Score)
		})
	}
}

func TestGate_CheckPostconditions_ValidationSteps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	present := writeFile(t, dir, "present.go", "package main")

	f := newFixture(t, ctrl, dir)
	f.selector.EXPECT().EstimateDuration(gomock.Any()).Return(10 * time.Minute).AnyTimes()

	task := &domain.Task{
		ID:       "verify",
		Category: domain.CategoryTest,
		ValidationSteps: []domain.ValidationStep{
			{Type: domain.StepFileExists, Target: present},
			{Type: domain.StepSyntax, Target: present},
			{Type: domain.StepTestPass},
		},
	}
	result := &domain.TaskExecutionResult{
		TaskID: "verify",
		Status: domain.StatusCompleted,
		Output: "--- FAIL: TestSomething",
	}

	res := f.gate.CheckPostconditions(context.Background(), task, result)
	assert.False(t, res.Passed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "test pass step did not succeed")
	assert.Equal(t, "exists", res.Details["validation_steps."+present])
}

func TestGate_CheckPostconditions_ScoreClampsAtZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	f := newFixture(t, ctrl, dir)
	f.selector.EXPECT().EstimateDuration(gomock.Any()).Return(10 * time.Minute).AnyTimes()

	// Five missing declared files on top of a failed run pushes the raw
	// score well below zero.
	steps := make([]domain.ValidationStep, 0, 5)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		steps = append(steps, domain.ValidationStep{
			Type:   domain.StepFileExists,
			Target: filepath.Join(dir, name+".go"),
		})
	}

	task := &domain.Task{
		ID:              "verify",
		Category:        domain.CategoryTest,
		ValidationSteps: steps,
	}
	result := &domain.TaskExecutionResult{
		TaskID: "verify",
		Status: domain.StatusFailed,
		Error:  domain.NewExecutionError(domain.ErrorToolExecutionFailed, "tool broke"),
	}

	res := f.gate.CheckPostconditions(context.Background(), task, result)
	assert.False(t, res.Passed)
	require.Len(t, res.Errors, 5)
	assert.Equal(t, 0, res.Score, "the score floors at zero, never negative")
}

func TestGate_RulePanicBecomesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, t.TempDir())
	f.allTools(ctrl)
	f.gate.AddPreRule(validation.PreRule{
		Name: "panicky",
		Check: func(context.Context, *domain.Task) validation.RuleOutcome {
			panic("rule bug")
		},
	})

	res := f.gate.CheckPreconditions(context.Background(), &domain.Task{
		ID:       "t",
		Category: domain.CategoryExecute,
	})
	assert.False(t, res.Passed)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "rule panicked")
}
