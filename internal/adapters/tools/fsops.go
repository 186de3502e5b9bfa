package tools

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.drover.dev/drover/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Tool = (*ReadFileTool)(nil)
	_ ports.Tool = (*WriteFileTool)(nil)
	_ ports.Tool = (*DeleteFileTool)(nil)
	_ ports.Tool = (*SearchFilesTool)(nil)
)

// ReadFileTool returns the contents of the request's target files.
type ReadFileTool struct{}

// NewReadFileTool creates a new ReadFileTool.
func NewReadFileTool() *ReadFileTool { return &ReadFileTool{} }

// Name returns the registry name of the tool.
func (t *ReadFileTool) Name() string { return "read_file" }

// Invoke reads each target file and concatenates the contents.
func (t *ReadFileTool) Invoke(ctx context.Context, req ports.ToolRequest) (*ports.ToolResult, error) {
	if len(req.TargetFiles) == 0 {
		return nil, zerr.With(zerr.New("read_file requires target files"), "task", req.TaskID)
	}

	var sb strings.Builder
	for _, path := range req.TargetFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path) //nolint:gosec // Target paths come from the validated plan
		if err != nil {
			return &ports.ToolResult{
				Err: zerr.With(zerr.Wrap(err, "failed to read file"), "path", path),
			}, nil
		}
		sb.Write(data)
	}
	return &ports.ToolResult{Output: sb.String()}, nil
}

// WriteFileTool writes the "content" parameter to the first target file.
type WriteFileTool struct {
	workspace ports.Workspace
}

// NewWriteFileTool creates a new WriteFileTool.
func NewWriteFileTool(workspace ports.Workspace) *WriteFileTool {
	return &WriteFileTool{workspace: workspace}
}

// Name returns the registry name of the tool.
func (t *WriteFileTool) Name() string { return "write_file" }

// Invoke writes content to the target, refusing paths outside the
// workspace.
func (t *WriteFileTool) Invoke(_ context.Context, req ports.ToolRequest) (*ports.ToolResult, error) {
	if len(req.TargetFiles) == 0 {
		return nil, zerr.With(zerr.New("write_file requires a target file"), "task", req.TaskID)
	}

	path := req.TargetFiles[0]
	if !t.workspace.Contains(path) {
		return &ports.ToolResult{
			Err: zerr.With(zerr.New("target is outside the workspace"), "path", path),
		}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return &ports.ToolResult{
			Err: zerr.With(zerr.Wrap(err, "failed to create target directory"), "path", path),
		}, nil
	}

	content := req.Params["content"]
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // Target paths come from the validated plan
		return &ports.ToolResult{
			Err: zerr.With(zerr.Wrap(err, "failed to write file"), "path", path),
		}, nil
	}
	return &ports.ToolResult{Output: "wrote " + path}, nil
}

// DeleteFileTool removes the request's target files.
type DeleteFileTool struct {
	workspace ports.Workspace
}

// NewDeleteFileTool creates a new DeleteFileTool.
func NewDeleteFileTool(workspace ports.Workspace) *DeleteFileTool {
	return &DeleteFileTool{workspace: workspace}
}

// Name returns the registry name of the tool.
func (t *DeleteFileTool) Name() string { return "delete_file" }

// Invoke deletes each target file, refusing paths outside the workspace.
func (t *DeleteFileTool) Invoke(_ context.Context, req ports.ToolRequest) (*ports.ToolResult, error) {
	if len(req.TargetFiles) == 0 {
		return nil, zerr.With(zerr.New("delete_file requires target files"), "task", req.TaskID)
	}

	for _, path := range req.TargetFiles {
		if !t.workspace.Contains(path) {
			return &ports.ToolResult{
				Err: zerr.With(zerr.New("target is outside the workspace"), "path", path),
			}, nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return &ports.ToolResult{
				Err: zerr.With(zerr.Wrap(err, "failed to delete file"), "path", path),
			}, nil
		}
	}
	return &ports.ToolResult{Output: "deleted"}, nil
}

// SearchFilesTool scans the workspace roots for a substring pattern.
type SearchFilesTool struct {
	workspace ports.Workspace
}

// NewSearchFilesTool creates a new SearchFilesTool.
func NewSearchFilesTool(workspace ports.Workspace) *SearchFilesTool {
	return &SearchFilesTool{workspace: workspace}
}

// Name returns the registry name of the tool.
func (t *SearchFilesTool) Name() string { return "search_files" }

// Invoke walks the workspace roots and returns the paths of files whose
// content contains the "pattern" parameter.
func (t *SearchFilesTool) Invoke(ctx context.Context, req ports.ToolRequest) (*ports.ToolResult, error) {
	pattern := req.Params["pattern"]
	if pattern == "" {
		pattern = req.Description
	}
	if strings.TrimSpace(pattern) == "" {
		return nil, zerr.With(zerr.New("search_files requires a pattern"), "task", req.TaskID)
	}

	var matches []string
	for _, root := range t.workspace.Roots() {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped, not fatal.
				return nil //nolint:nilerr // Best effort scan
			}
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != root {
					return fs.SkipDir
				}
				return nil
			}
			data, rerr := os.ReadFile(path) //nolint:gosec // Walking configured workspace roots
			if rerr != nil {
				return nil //nolint:nilerr // Best effort scan
			}
			if strings.Contains(string(data), pattern) {
				matches = append(matches, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return &ports.ToolResult{Output: strings.Join(matches, "\n")}, nil
}
