package validation

import (
	"context"
	"os"
	"strings"

	"go.drover.dev/drover/internal/core/domain"
)

// mutatingCategories scopes the writability rule.
var mutatingCategories = []domain.TaskCategory{
	domain.CategoryEdit, domain.CategoryDelete, domain.CategoryRefactor,
	domain.CategoryDeploy, domain.CategoryOptimize,
}

// descriptionToolHints maps free-text keywords to tool names the task
// implies beyond its category.
var descriptionToolHints = map[string]string{
	"shell":   "shell",
	"command": "shell",
	"script":  "shell",
	"search":  "search_files",
	"grep":    "search_files",
}

func defaultPreRules(g *Gate) []PreRule {
	return []PreRule{
		{
			Name:  "workspace_configured",
			Check: g.checkWorkspaceConfigured,
		},
		{
			Name:  "target_files_readable",
			Check: g.checkTargetFilesReadable,
		},
		{
			Name:       "target_files_writable",
			Categories: mutatingCategories,
			Check:      g.checkTargetFilesWritable,
		},
		{
			Name:  "tools_available",
			Check: g.checkToolsAvailable,
		},
	}
}

// checkWorkspaceConfigured requires at least one workspace root.
func (g *Gate) checkWorkspaceConfigured(_ context.Context, _ *domain.Task) RuleOutcome {
	if len(g.workspace.Roots()) == 0 {
		return RuleOutcome{Errors: []string{"workspace has no configured roots"}}
	}
	return RuleOutcome{}
}

// checkTargetFilesReadable requires every target of a non-create task to
// exist and be readable. Create tasks produce their targets, so existence
// is not required of them.
func (g *Gate) checkTargetFilesReadable(_ context.Context, task *domain.Task) RuleOutcome {
	if task.Category == domain.CategoryCreate {
		return RuleOutcome{}
	}

	var out RuleOutcome
	for _, path := range task.TargetFiles {
		f, err := os.Open(path) //nolint:gosec // Target paths come from the validated plan
		if err != nil {
			if os.IsNotExist(err) {
				out.Errors = append(out.Errors, "target file does not exist: "+path)
			} else {
				out.Errors = append(out.Errors, "target file is not readable: "+path)
			}
			continue
		}
		_ = f.Close()
		if !g.workspace.Contains(path) {
			out.Warnings = append(out.Warnings, "target file is outside the workspace: "+path)
		}
	}
	return out
}

// checkTargetFilesWritable requires targets of mutating tasks to accept
// writes.
func (g *Gate) checkTargetFilesWritable(_ context.Context, task *domain.Task) RuleOutcome {
	var out RuleOutcome
	for _, path := range task.TargetFiles {
		f, err := os.OpenFile(path, os.O_WRONLY, 0) //nolint:gosec // Target paths come from the validated plan
		if err != nil {
			if os.IsNotExist(err) {
				// Existence is the readability rule's concern.
				continue
			}
			out.Errors = append(out.Errors, "target file is not writable: "+path)
			continue
		}
		_ = f.Close()
	}
	return out
}

// checkToolsAvailable requires a tool for the task's category and every
// tool implied by its free-text description.
func (g *Gate) checkToolsAvailable(_ context.Context, task *domain.Task) RuleOutcome {
	var out RuleOutcome

	found := false
	for _, name := range domain.ToolPreference(task.Category) {
		if _, ok := g.tools.Lookup(name); ok {
			found = true
			break
		}
	}
	if !found {
		out.Errors = append(out.Errors,
			"no tool available for category "+string(task.Category))
	}

	desc := strings.ToLower(task.Description)
	for keyword, toolName := range descriptionToolHints {
		if !strings.Contains(desc, keyword) {
			continue
		}
		if _, ok := g.tools.Lookup(toolName); !ok {
			out.Errors = append(out.Errors,
				"tool implied by description is not available: "+toolName)
		}
	}
	return out
}
