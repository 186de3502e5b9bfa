package tools

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.drover.dev/drover/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Tool = (*ShellTool)(nil)

// ShellTool runs a command line through the system shell. The command comes
// from the request's "command" parameter; cancelling the context kills the
// process.
type ShellTool struct {
	logger ports.Logger
}

// NewShellTool creates a new ShellTool.
func NewShellTool(logger ports.Logger) *ShellTool {
	return &ShellTool{logger: logger}
}

// Name returns the registry name of the tool.
func (t *ShellTool) Name() string { return "shell" }

// Invoke executes the command. A non-zero exit is reported as a tool-level
// failure in the result, not as a transport error.
func (t *ShellTool) Invoke(ctx context.Context, req ports.ToolRequest) (*ports.ToolResult, error) {
	command := req.Params["command"]
	if command == "" {
		// Without an explicit command the description is the command line.
		command = req.Description
	}
	if strings.TrimSpace(command) == "" {
		return nil, zerr.With(zerr.New("shell tool requires a command"), "task", req.TaskID)
	}

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command) //nolint:gosec // Command comes from the validated plan
	if dir := req.Params["dir"]; dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = mergeEnvironment(os.Environ(), req.Params)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	t.logger.Debug("running shell command", "task", req.TaskID, "command", command)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		toolErr := zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
		if tail := lastLine(stderr.String()); tail != "" {
			toolErr = zerr.With(toolErr, "stderr", tail)
		}
		return &ports.ToolResult{Output: stdout.String(), Err: toolErr}, nil
	}

	return &ports.ToolResult{Output: stdout.String()}, nil
}

// mergeEnvironment layers "env_" prefixed request parameters over the
// system environment.
func mergeEnvironment(sysEnv []string, params map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range params {
		if name, ok := strings.CutPrefix(k, "env_"); ok {
			envMap[name] = v
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
