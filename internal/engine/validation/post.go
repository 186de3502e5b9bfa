package validation

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.drover.dev/drover/internal/core/domain"
)

func defaultPostRules(g *Gate) []PostRule {
	return []PostRule{
		{
			Name:  "execution_status",
			Check: g.checkExecutionStatus,
		},
		{
			Name:  "duration_window",
			Check: g.checkDurationWindow,
		},
		{
			Name: "artifacts",
			Categories: []domain.TaskCategory{
				domain.CategoryCreate, domain.CategoryEdit, domain.CategoryRefactor,
			},
			Check: g.checkArtifacts,
		},
		{
			Name:  "validation_steps",
			Check: g.checkValidationSteps,
		},
	}
}

// checkExecutionStatus flags non-completed executions. The failed-run
// penalty itself is applied by the scoring schedule, not per error here.
func (g *Gate) checkExecutionStatus(
	_ context.Context, _ *domain.Task, result *domain.TaskExecutionResult,
) RuleOutcome {
	switch result.Status {
	case domain.StatusCompleted:
		return RuleOutcome{}
	case domain.StatusCancelled:
		return RuleOutcome{Warnings: []string{"execution was cancelled"}}
	default:
		// The failed-run penalty is applied once by the scoring schedule;
		// recording it as an error or warning here would double-count.
		msg := "execution failed"
		if result.Error != nil {
			msg += ": " + result.Error.Message
		}
		return RuleOutcome{Details: map[string]string{"status": msg}}
	}
}

// checkDurationWindow compares actual duration against the selector's
// estimate: up to 2x is fine, 2x-3x warns mildly, 3x-5x warns strongly and
// beyond 5x is an error.
func (g *Gate) checkDurationWindow(
	_ context.Context, task *domain.Task, result *domain.TaskExecutionResult,
) RuleOutcome {
	est := g.selector.EstimateDuration(task)
	if est <= 0 || result.Duration <= 0 {
		return RuleOutcome{}
	}

	ratio := float64(result.Duration) / float64(est)
	detail := map[string]string{"ratio": fmt.Sprintf("%.2f", ratio)}
	switch {
	case ratio > 5:
		return RuleOutcome{
			Errors:  []string{fmt.Sprintf("duration exceeded 5x the estimate (%.1fx)", ratio)},
			Details: detail,
		}
	case ratio > 3:
		return RuleOutcome{
			Warnings: []string{fmt.Sprintf("duration significantly over estimate (%.1fx)", ratio)},
			Details:  detail,
		}
	case ratio > 2:
		return RuleOutcome{
			Warnings: []string{fmt.Sprintf("duration over estimate (%.1fx)", ratio)},
			Details:  detail,
		}
	default:
		return RuleOutcome{Details: detail}
	}
}

// checkArtifacts verifies that the targets of producing categories now
// exist, recording a content hash for each so callers can compare runs.
func (g *Gate) checkArtifacts(
	_ context.Context, task *domain.Task, result *domain.TaskExecutionResult,
) RuleOutcome {
	if result.Status != domain.StatusCompleted {
		return RuleOutcome{}
	}

	var out RuleOutcome
	out.Details = make(map[string]string)
	for _, path := range task.TargetFiles {
		sum, size, err := hashFile(path)
		if err != nil {
			if task.Category == domain.CategoryCreate {
				out.Errors = append(out.Errors, "expected artifact is missing: "+path)
			} else {
				out.Warnings = append(out.Warnings, "target file is missing after execution: "+path)
			}
			continue
		}
		if size == 0 {
			out.Warnings = append(out.Warnings, "artifact is empty: "+path)
		}
		out.Details[path] = fmt.Sprintf("%x", sum)
	}
	return out
}

// checkValidationSteps evaluates each declared step.
func (g *Gate) checkValidationSteps(
	_ context.Context, task *domain.Task, result *domain.TaskExecutionResult,
) RuleOutcome {
	var out RuleOutcome
	out.Details = make(map[string]string)

	for _, step := range task.ValidationSteps {
		switch step.Type {
		case domain.StepFileExists:
			if _, err := os.Stat(step.Target); err != nil {
				out.Errors = append(out.Errors, "declared file does not exist: "+step.Target)
				continue
			}
			out.Details[step.Target] = "exists"

		case domain.StepSyntax:
			sum, size, err := hashFile(step.Target)
			if err != nil {
				out.Errors = append(out.Errors, "syntax target is not readable: "+step.Target)
				continue
			}
			if size == 0 {
				out.Errors = append(out.Errors, "syntax target is empty: "+step.Target)
				continue
			}
			out.Details[step.Target] = fmt.Sprintf("syntax ok (%x)", sum)

		case domain.StepTestPass:
			if result.Status != domain.StatusCompleted ||
				strings.Contains(strings.ToUpper(result.Output), "FAIL") {
				out.Errors = append(out.Errors, "test pass step did not succeed")
				continue
			}
			out.Details["tests"] = "passed"

		default:
			out.Warnings = append(out.Warnings,
				"unknown validation step type: "+string(step.Type))
		}
	}
	return out
}

// hashFile returns the xxhash of a file's content and its size.
func hashFile(path string) (uint64, int64, error) {
	f, err := os.Open(path) //nolint:gosec // Target paths come from the validated plan
	if err != nil {
		return 0, 0, err
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	h := xxhash.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, 0, err
	}
	return h.Sum64(), n, nil
}
