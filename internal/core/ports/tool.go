// Package ports defines the core interfaces for the application.
package ports

import "context"

// ToolRequest carries the inputs of a single tool invocation.
type ToolRequest struct {
	TaskID      string
	Description string
	TargetFiles []string
	Params      map[string]string
}

// ToolResult is the outcome a tool reports. Err is a tool-level failure
// (the invocation ran but did not succeed), distinct from transport errors
// returned by Invoke itself.
type ToolResult struct {
	Output string
	Err    error
}

// Tool is an opaque capability the engine invokes for atomic tasks.
//
//go:generate go run go.uber.org/mock/mockgen -source=tool.go -destination=mocks/mock_tool.go -package=mocks
type Tool interface {
	// Name returns the registry name of the tool.
	Name() string

	// Invoke runs the tool. Cancellation of ctx aborts the invocation.
	Invoke(ctx context.Context, req ToolRequest) (*ToolResult, error)
}

// ToolRegistry looks up tools by name. The registry is read-only from the
// engine's perspective.
type ToolRegistry interface {
	// Lookup returns the tool registered under name, or false if absent.
	Lookup(name string) (Tool, bool)

	// Names returns the names of all registered tools.
	Names() []string
}
