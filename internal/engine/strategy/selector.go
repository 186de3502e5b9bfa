// Package strategy implements the default execution strategy selector.
package strategy

import (
	"time"

	"go.drover.dev/drover/internal/core/domain"
	"go.drover.dev/drover/internal/core/ports"
)

var _ ports.StrategySelector = (*Selector)(nil)

// Selector is the default ports.StrategySelector implementation: a decision
// table over task category, priority and complexity.
type Selector struct{}

// NewSelector creates a new default Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// SelectStrategy resolves the policy for a task that doesn't carry one.
func (s *Selector) SelectStrategy(task *domain.Task) domain.ExecutionStrategy {
	if task.Strategy != nil {
		return *task.Strategy
	}

	strategy := domain.ExecutionStrategy{
		Type:           domain.StrategySequential,
		MaxConcurrency: 1,
		Retry:          s.retryPolicy(task),
		Timeout:        s.timeout(task),
		PreChecks:      []string{"workspace_configured", "target_files_readable", "target_files_writable", "tools_available"},
		PostChecks:     []string{"execution_status", "duration_window", "artifacts", "validation_steps"},
	}

	// Composite tasks with independent children fan out; deep complexity
	// stays sequential to keep failures attributable.
	if task.IsComposite() && task.Complexity.Rank() <= domain.ComplexityModerate.Rank() {
		strategy.Type = domain.StrategyParallel
		strategy.MaxConcurrency = maxConcurrencyFor(len(task.ChildIDs))
	}

	// Destructive or outward-facing work needs a human in the loop.
	if task.Category == domain.CategoryDelete || task.Category == domain.CategoryDeploy ||
		task.Priority == domain.PriorityBlocking {
		strategy.RequiresConfirmation = true
	}

	return strategy
}

func maxConcurrencyFor(children int) int {
	if children < 2 {
		return 1
	}
	if children > 4 {
		return 4
	}
	return children
}

func (s *Selector) retryPolicy(task *domain.Task) domain.RetryPolicy {
	policy := domain.RetryPolicy{
		MaxRetries: 3,
		Backoff:    domain.BackoffExponential,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
	}
	if task.MaxRetries > 0 {
		policy.MaxRetries = task.MaxRetries
	}
	switch task.Category {
	case domain.CategoryRead, domain.CategorySearch, domain.CategoryAnalyze:
		// Cheap idempotent work retries aggressively with short waits.
		policy.Backoff = domain.BackoffConstant
		policy.BaseDelay = 500 * time.Millisecond
	case domain.CategoryDeploy:
		policy.Backoff = domain.BackoffLinear
		policy.BaseDelay = 5 * time.Second
		policy.MaxDelay = time.Minute
	}
	return policy
}

func (s *Selector) timeout(task *domain.Task) time.Duration {
	est := s.EstimateDuration(task)
	// Allow triple the estimate, within the default cap.
	t := est * 3
	if t > domain.DefaultTimeout {
		return domain.DefaultTimeout
	}
	return t
}

// CanRunConcurrently applies the conflict rule: two tasks touching an
// overlapping file-target set are ineligible when both carry mutating
// categories.
func (s *Selector) CanRunConcurrently(a, b *domain.Task) bool {
	if !a.Category.IsMutating() || !b.Category.IsMutating() {
		return true
	}
	for _, fa := range a.TargetFiles {
		for _, fb := range b.TargetFiles {
			if fa == fb {
				return false
			}
		}
	}
	return true
}

// EstimateDuration predicts execution time from the complexity grade.
func (s *Selector) EstimateDuration(task *domain.Task) time.Duration {
	base := map[domain.TaskComplexity]time.Duration{
		domain.ComplexitySimple:        2 * time.Minute,
		domain.ComplexityModerate:      5 * time.Minute,
		domain.ComplexityComplex:       15 * time.Minute,
		domain.ComplexityHighlyComplex: 30 * time.Minute,
	}[task.Complexity]
	if base == 0 {
		base = 5 * time.Minute
	}
	if task.IsComposite() {
		base += time.Duration(len(task.ChildIDs)) * time.Minute
	}
	return base
}
