// Package validation implements the rule-based validation gate evaluated
// before and after task execution.
package validation

import (
	"context"
	"fmt"

	"go.drover.dev/drover/internal/core/domain"
	"go.drover.dev/drover/internal/core/ports"
)

// Scoring schedule for post-condition results.
const (
	penaltyPerError     = 30
	penaltyFailedRun    = 50
	penaltyPerWarning   = 10
	bonusFastCompletion = 5
)

// RuleOutcome collects what one rule contributed.
type RuleOutcome struct {
	Errors   []string
	Warnings []string
	Details  map[string]string
}

// PreRule checks a condition that must hold before a task may execute.
type PreRule struct {
	Name string
	// Categories scopes the rule; nil applies to every category.
	Categories []domain.TaskCategory
	Check      func(ctx context.Context, task *domain.Task) RuleOutcome
}

// PostRule grades an aspect of a finished execution.
type PostRule struct {
	Name       string
	Categories []domain.TaskCategory
	Check      func(ctx context.Context, task *domain.Task, result *domain.TaskExecutionResult) RuleOutcome
}

var _ ports.Validator = (*Gate)(nil)

// Gate is the pluggable validation rule set. Rules run independently per
// task category; a rule's own panic is converted into a validation error
// rather than propagated.
type Gate struct {
	tools     ports.ToolRegistry
	workspace ports.Workspace
	selector  ports.StrategySelector
	logger    ports.Logger

	preRules  []PreRule
	postRules []PostRule
}

// NewGate creates a Gate with the default rule set.
func NewGate(
	tools ports.ToolRegistry,
	workspace ports.Workspace,
	selector ports.StrategySelector,
	logger ports.Logger,
) *Gate {
	g := &Gate{
		tools:     tools,
		workspace: workspace,
		selector:  selector,
		logger:    logger,
	}
	g.preRules = defaultPreRules(g)
	g.postRules = defaultPostRules(g)
	return g
}

// AddPreRule registers an additional pre-condition rule.
func (g *Gate) AddPreRule(r PreRule) {
	g.preRules = append(g.preRules, r)
}

// AddPostRule registers an additional post-condition rule.
func (g *Gate) AddPostRule(r PostRule) {
	g.postRules = append(g.postRules, r)
}

func applies(categories []domain.TaskCategory, c domain.TaskCategory) bool {
	if len(categories) == 0 {
		return true
	}
	for _, cat := range categories {
		if cat == c {
			return true
		}
	}
	return false
}

// guard converts a rule panic into an error outcome.
func guard(name string, fn func() RuleOutcome) (out RuleOutcome) {
	defer func() {
		if rec := recover(); rec != nil {
			out = RuleOutcome{Errors: []string{fmt.Sprintf("rule %s panicked: %v", name, rec)}}
		}
	}()
	return fn()
}

// CheckPreconditions evaluates every applicable pre-rule. Any failure
// blocks execution entirely with score 0.
func (g *Gate) CheckPreconditions(ctx context.Context, task *domain.Task) domain.ValidationResult {
	result := domain.ValidationResult{Details: make(map[string]string)}

	for _, rule := range g.preRules {
		if !applies(rule.Categories, task.Category) {
			continue
		}
		out := guard(rule.Name, func() RuleOutcome { return rule.Check(ctx, task) })
		g.merge(&result, rule.Name, out)
	}

	result.Passed = len(result.Errors) == 0
	if result.Passed {
		result.Score = 100
	} else {
		result.Score = 0
	}
	return result
}

// CheckPostconditions evaluates every applicable post-rule and computes the
// 0-100 score from the fixed penalty schedule. The outcome is advisory.
func (g *Gate) CheckPostconditions(
	ctx context.Context,
	task *domain.Task,
	execResult *domain.TaskExecutionResult,
) domain.ValidationResult {
	result := domain.ValidationResult{Details: make(map[string]string)}

	for _, rule := range g.postRules {
		if !applies(rule.Categories, task.Category) {
			continue
		}
		out := guard(rule.Name, func() RuleOutcome { return rule.Check(ctx, task, execResult) })
		g.merge(&result, rule.Name, out)
	}

	score := 100
	score -= penaltyPerError * len(result.Errors)
	score -= penaltyPerWarning * len(result.Warnings)
	if execResult.Status == domain.StatusFailed {
		score -= penaltyFailedRun
	}
	if est := g.selector.EstimateDuration(task); est > 0 && execResult.Duration < est/2 &&
		execResult.Status == domain.StatusCompleted {
		score += bonusFastCompletion
	}
	result.Score = domain.ClampScore(score)
	result.Passed = len(result.Errors) == 0 && execResult.Status != domain.StatusFailed
	return result
}

func (g *Gate) merge(result *domain.ValidationResult, name string, out RuleOutcome) {
	result.Errors = append(result.Errors, out.Errors...)
	result.Warnings = append(result.Warnings, out.Warnings...)
	for k, v := range out.Details {
		result.Details[name+"."+k] = v
	}
	switch {
	case len(out.Errors) > 0:
		result.Details[name] = "failed"
	case len(out.Warnings) > 0:
		result.Details[name] = "warned"
	default:
		result.Details[name] = "passed"
	}
}
