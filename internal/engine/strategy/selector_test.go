package strategy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.drover.dev/drover/internal/core/domain"
	"go.drover.dev/drover/internal/engine/strategy"
)

func TestSelector_SelectStrategy_ExplicitWins(t *testing.T) {
	s := strategy.NewSelector()

	explicit := &domain.ExecutionStrategy{
		Type:           domain.StrategyBatch,
		MaxConcurrency: 7,
		Retry:          domain.RetryPolicy{MaxRetries: 9},
	}
	got := s.SelectStrategy(&domain.Task{ID: "t", Strategy: explicit})
	assert.Equal(t, *explicit, got, "a task-supplied strategy passes through untouched")
}

func TestSelector_SelectStrategy_Defaults(t *testing.T) {
	s := strategy.NewSelector()

	got := s.SelectStrategy(&domain.Task{
		ID:       "t",
		Category: domain.CategoryExecute,
	})

	assert.Equal(t, domain.StrategySequential, got.Type)
	assert.Equal(t, 1, got.MaxConcurrency)
	assert.False(t, got.RequiresConfirmation)
	assert.Equal(t, 3, got.Retry.MaxRetries)
	assert.Equal(t, domain.BackoffExponential, got.Retry.Backoff)
	assert.Equal(t, time.Second, got.Retry.BaseDelay)
	assert.Equal(t, 30*time.Second, got.Retry.MaxDelay)
}

func TestSelector_SelectStrategy_CompositeFansOut(t *testing.T) {
	s := strategy.NewSelector()

	tests := []struct {
		name            string
		children        int
		complexity      domain.TaskComplexity
		wantType        domain.StrategyType
		wantConcurrency int
	}{
		{
			name:            "simple composite parallelizes",
			children:        3,
			complexity:      domain.ComplexitySimple,
			wantType:        domain.StrategyParallel,
			wantConcurrency: 3,
		},
		{
			name:            "concurrency caps at four",
			children:        8,
			complexity:      domain.ComplexityModerate,
			wantType:        domain.StrategyParallel,
			wantConcurrency: 4,
		},
		{
			name:            "single child stays serial width",
			children:        1,
			complexity:      domain.ComplexitySimple,
			wantType:        domain.StrategyParallel,
			wantConcurrency: 1,
		},
		{
			name:            "complex composite stays sequential",
			children:        3,
			complexity:      domain.ComplexityComplex,
			wantType:        domain.StrategySequential,
			wantConcurrency: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			children := make([]string, tt.children)
			for i := range children {
				children[i] = string(rune('a' + i))
			}
			got := s.SelectStrategy(&domain.Task{
				ID:         "parent",
				Category:   domain.CategoryExecute,
				Complexity: tt.complexity,
				ChildIDs:   children,
			})
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantConcurrency, got.MaxConcurrency)
		})
	}
}

func TestSelector_SelectStrategy_Confirmation(t *testing.T) {
	s := strategy.NewSelector()

	tests := []struct {
		name     string
		category domain.TaskCategory
		priority domain.TaskPriority
		want     bool
	}{
		{name: "delete", category: domain.CategoryDelete, priority: domain.PriorityNormal, want: true},
		{name: "deploy", category: domain.CategoryDeploy, priority: domain.PriorityNormal, want: true},
		{name: "blocking priority", category: domain.CategoryExecute, priority: domain.PriorityBlocking, want: true},
		{name: "plain edit", category: domain.CategoryEdit, priority: domain.PriorityHigh, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SelectStrategy(&domain.Task{
				ID:       "t",
				Category: tt.category,
				Priority: tt.priority,
			})
			assert.Equal(t, tt.want, got.RequiresConfirmation)
		})
	}
}

func TestSelector_SelectStrategy_CategoryRetryOverrides(t *testing.T) {
	s := strategy.NewSelector()

	readLike := s.SelectStrategy(&domain.Task{ID: "t", Category: domain.CategorySearch})
	assert.Equal(t, domain.BackoffConstant, readLike.Retry.Backoff)
	assert.Equal(t, 500*time.Millisecond, readLike.Retry.BaseDelay)

	deploy := s.SelectStrategy(&domain.Task{ID: "t", Category: domain.CategoryDeploy})
	assert.Equal(t, domain.BackoffLinear, deploy.Retry.Backoff)
	assert.Equal(t, 5*time.Second, deploy.Retry.BaseDelay)
	assert.Equal(t, time.Minute, deploy.Retry.MaxDelay)
}

func TestSelector_SelectStrategy_TaskRetryBudget(t *testing.T) {
	s := strategy.NewSelector()

	got := s.SelectStrategy(&domain.Task{
		ID:         "t",
		Category:   domain.CategoryExecute,
		MaxRetries: 7,
	})
	assert.Equal(t, 7, got.Retry.MaxRetries)
}

func TestSelector_SelectStrategy_Timeout(t *testing.T) {
	s := strategy.NewSelector()

	// Simple: 2m estimate, tripled to 6m.
	simple := s.SelectStrategy(&domain.Task{
		ID:         "t",
		Category:   domain.CategoryExecute,
		Complexity: domain.ComplexitySimple,
	})
	assert.Equal(t, 6*time.Minute, simple.Timeout)

	// Highly complex: 3x30m would exceed the cap.
	heavy := s.SelectStrategy(&domain.Task{
		ID:         "t",
		Category:   domain.CategoryExecute,
		Complexity: domain.ComplexityHighlyComplex,
	})
	assert.Equal(t, domain.DefaultTimeout, heavy.Timeout)
}

func TestSelector_CanRunConcurrently(t *testing.T) {
	s := strategy.NewSelector()

	edit := func(id string, files ...string) *domain.Task {
		return &domain.Task{ID: id, Category: domain.CategoryEdit, TargetFiles: files}
	}
	read := func(id string, files ...string) *domain.Task {
		return &domain.Task{ID: id, Category: domain.CategoryRead, TargetFiles: files}
	}

	assert.False(t, s.CanRunConcurrently(edit("a", "x.go"), edit("b", "x.go")),
		"two mutators on the same file must serialize")
	assert.True(t, s.CanRunConcurrently(edit("a", "x.go"), edit("b", "y.go")),
		"disjoint targets are safe")
	assert.True(t, s.CanRunConcurrently(edit("a", "x.go"), read("b", "x.go")),
		"a reader never conflicts")
	assert.True(t, s.CanRunConcurrently(edit("a"), edit("b")),
		"no declared targets, nothing to conflict on")
}

func TestSelector_EstimateDuration(t *testing.T) {
	s := strategy.NewSelector()

	tests := []struct {
		name string
		task domain.Task
		want time.Duration
	}{
		{
			name: "simple",
			task: domain.Task{Complexity: domain.ComplexitySimple},
			want: 2 * time.Minute,
		},
		{
			name: "moderate",
			task: domain.Task{Complexity: domain.ComplexityModerate},
			want: 5 * time.Minute,
		},
		{
			name: "complex",
			task: domain.Task{Complexity: domain.ComplexityComplex},
			want: 15 * time.Minute,
		},
		{
			name: "highly complex",
			task: domain.Task{Complexity: domain.ComplexityHighlyComplex},
			want: 30 * time.Minute,
		},
		{
			name: "unknown falls back to moderate",
			task: domain.Task{},
			want: 5 * time.Minute,
		},
		{
			name: "children add a minute each",
			task: domain.Task{Complexity: domain.ComplexitySimple, ChildIDs: []string{"a", "b", "c"}},
			want: 5 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.EstimateDuration(&tt.task))
		})
	}
}
