// Package tools provides the built-in tool registry. The engine treats
// tools as opaque capabilities; these adapters make the binary usable end
// to end.
package tools

import (
	"sort"
	"sync"

	"go.drover.dev/drover/internal/core/ports"
)

var _ ports.ToolRegistry = (*Registry)(nil)

// Registry is a name-keyed set of tools. It is read-only from the engine's
// perspective; registration happens during wiring.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]ports.Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]ports.Tool)}
}

// NewDefaultRegistry creates a Registry with the built-in tool set.
func NewDefaultRegistry(workspace ports.Workspace, logger ports.Logger) *Registry {
	r := NewRegistry()
	r.Register(NewShellTool(logger))
	r.Register(NewReadFileTool())
	r.Register(NewWriteFileTool(workspace))
	r.Register(NewDeleteFileTool(workspace))
	r.Register(NewSearchFilesTool(workspace))
	return r
}

// Register adds a tool under its name, replacing any previous registration.
func (r *Registry) Register(t ports.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (ports.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the sorted names of all registered tools.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
