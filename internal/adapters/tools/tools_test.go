package tools_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.drover.dev/drover/internal/adapters/tools"
	"go.drover.dev/drover/internal/adapters/workspace"
	"go.drover.dev/drover/internal/core/ports"
)

type testLogger struct{}

func (testLogger) Debug(string, ...any)           {}
func (testLogger) Info(string, ...any)            {}
func (testLogger) Warn(string, ...any)            {}
func (testLogger) Error(error, ...any)            {}
func (testLogger) Metric(string, float64, ...any) {}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultRegistry(t *testing.T) {
	r := tools.NewDefaultRegistry(workspace.New(t.TempDir()), testLogger{})

	assert.Equal(t,
		[]string{"delete_file", "read_file", "search_files", "shell", "write_file"},
		r.Names())

	shell, ok := r.Lookup("shell")
	require.True(t, ok)
	assert.Equal(t, "shell", shell.Name())

	_, ok = r.Lookup("teleport")
	assert.False(t, ok)
}

func TestShellTool_Invoke(t *testing.T) {
	shell := tools.NewShellTool(testLogger{})

	res, err := shell.Invoke(context.Background(), ports.ToolRequest{
		TaskID: "t",
		Params: map[string]string{"command": "echo hello"},
	})
	require.NoError(t, err)
	require.NoError(t, res.Err)
	assert.Equal(t, "hello\n", res.Output)
}

func TestShellTool_Invoke_DescriptionFallback(t *testing.T) {
	shell := tools.NewShellTool(testLogger{})

	res, err := shell.Invoke(context.Background(), ports.ToolRequest{
		TaskID:      "t",
		Description: "echo from-description",
	})
	require.NoError(t, err)
	require.NoError(t, res.Err)
	assert.Equal(t, "from-description\n", res.Output)
}

func TestShellTool_Invoke_NonZeroExit(t *testing.T) {
	shell := tools.NewShellTool(testLogger{})

	res, err := shell.Invoke(context.Background(), ports.ToolRequest{
		TaskID: "t",
		Params: map[string]string{"command": "echo partial; echo oops >&2; exit 3"},
	})
	require.NoError(t, err, "a non-zero exit is a tool-level failure, not a transport error")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "command failed")
	assert.Equal(t, "partial\n", res.Output, "stdout up to the failure is preserved")
}

func TestShellTool_Invoke_EmptyCommand(t *testing.T) {
	shell := tools.NewShellTool(testLogger{})

	_, err := shell.Invoke(context.Background(), ports.ToolRequest{TaskID: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a command")
}

func TestShellTool_Invoke_Environment(t *testing.T) {
	shell := tools.NewShellTool(testLogger{})

	res, err := shell.Invoke(context.Background(), ports.ToolRequest{
		TaskID: "t",
		Params: map[string]string{
			"command":      "echo $GREETING",
			"env_GREETING": "howdy",
		},
	})
	require.NoError(t, err)
	require.NoError(t, res.Err)
	assert.Equal(t, "howdy\n", res.Output)
}

func TestShellTool_Invoke_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	shell := tools.NewShellTool(testLogger{})

	res, err := shell.Invoke(context.Background(), ports.ToolRequest{
		TaskID: "t",
		Params: map[string]string{"command": "pwd", "dir": dir},
	})
	require.NoError(t, err)
	require.NoError(t, res.Err)

	// macOS tempdirs live behind a /private symlink; resolve both sides.
	got, err := filepath.EvalSymlinks(strings.TrimSpace(res.Output))
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadFileTool_Invoke(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "first ")
	b := writeFile(t, dir, "b.txt", "second")

	read := tools.NewReadFileTool()
	res, err := read.Invoke(context.Background(), ports.ToolRequest{
		TaskID:      "t",
		TargetFiles: []string{a, b},
	})
	require.NoError(t, err)
	require.NoError(t, res.Err)
	assert.Equal(t, "first second", res.Output)
}

func TestReadFileTool_Invoke_Missing(t *testing.T) {
	read := tools.NewReadFileTool()

	res, err := read.Invoke(context.Background(), ports.ToolRequest{
		TaskID:      "t",
		TargetFiles: []string{filepath.Join(t.TempDir(), "ghost.txt")},
	})
	require.NoError(t, err)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "failed to read file")
}

func TestWriteFileTool_Invoke(t *testing.T) {
	dir := t.TempDir()
	write := tools.NewWriteFileTool(workspace.New(dir))

	target := filepath.Join(dir, "nested", "out.txt")
	res, err := write.Invoke(context.Background(), ports.ToolRequest{
		TaskID:      "t",
		TargetFiles: []string{target},
		Params:      map[string]string{"content": "payload"},
	})
	require.NoError(t, err)
	require.NoError(t, res.Err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestWriteFileTool_Invoke_OutsideWorkspace(t *testing.T) {
	write := tools.NewWriteFileTool(workspace.New(t.TempDir()))

	outside := filepath.Join(t.TempDir(), "escape.txt")
	res, err := write.Invoke(context.Background(), ports.ToolRequest{
		TaskID:      "t",
		TargetFiles: []string{outside},
		Params:      map[string]string{"content": "nope"},
	})
	require.NoError(t, err)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "outside the workspace")
	assert.NoFileExists(t, outside)
}

func TestDeleteFileTool_Invoke(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "doomed.txt", "bye")

	del := tools.NewDeleteFileTool(workspace.New(dir))
	res, err := del.Invoke(context.Background(), ports.ToolRequest{
		TaskID:      "t",
		TargetFiles: []string{target},
	})
	require.NoError(t, err)
	require.NoError(t, res.Err)
	assert.NoFileExists(t, target)

	// Deleting again is idempotent.
	res, err = del.Invoke(context.Background(), ports.ToolRequest{
		TaskID:      "t",
		TargetFiles: []string{target},
	})
	require.NoError(t, err)
	require.NoError(t, res.Err)
}

func TestDeleteFileTool_Invoke_OutsideWorkspace(t *testing.T) {
	outsideDir := t.TempDir()
	stray := writeFile(t, outsideDir, "stray.txt", "keep me")

	del := tools.NewDeleteFileTool(workspace.New(t.TempDir()))
	res, err := del.Invoke(context.Background(), ports.ToolRequest{
		TaskID:      "t",
		TargetFiles: []string{stray},
	})
	require.NoError(t, err)
	require.Error(t, res.Err)
	assert.FileExists(t, stray)
}

func TestSearchFilesTool_Invoke(t *testing.T) {
	dir := t.TempDir()
	match := writeFile(t, dir, "match.go", "package main // needle here")
	writeFile(t, dir, "other.go", "package main")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o750))
	writeFile(t, filepath.Join(dir, ".git"), "config", "needle in hidden dir")

	search := tools.NewSearchFilesTool(workspace.New(dir))
	res, err := search.Invoke(context.Background(), ports.ToolRequest{
		TaskID: "t",
		Params: map[string]string{"pattern": "needle"},
	})
	require.NoError(t, err)
	require.NoError(t, res.Err)

	matches := strings.Split(strings.TrimSpace(res.Output), "\n")
	assert.Equal(t, []string{match}, matches, "hidden directories are skipped")
}

func TestSearchFilesTool_Invoke_EmptyPattern(t *testing.T) {
	search := tools.NewSearchFilesTool(workspace.New(t.TempDir()))

	_, err := search.Invoke(context.Background(), ports.ToolRequest{TaskID: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a pattern")
}
