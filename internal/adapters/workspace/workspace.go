// Package workspace implements the workspace context adapter.
package workspace

import (
	"path/filepath"
	"strings"
	"sync"

	"go.drover.dev/drover/internal/core/ports"
)

var _ ports.Workspace = (*Workspace)(nil)

// Workspace holds the configured root directories. Roots are set during
// wiring or when a plan is loaded; the engine only reads them.
type Workspace struct {
	mu    sync.RWMutex
	roots []string
}

// New creates a Workspace with the given roots.
func New(roots ...string) *Workspace {
	w := &Workspace{}
	w.SetRoots(roots)
	return w
}

// SetRoots replaces the configured roots, normalizing each to an absolute
// path. Roots that cannot be resolved are kept as cleaned relative paths.
func (w *Workspace) SetRoots(roots []string) {
	normalized := make([]string, 0, len(roots))
	for _, root := range roots {
		if abs, err := filepath.Abs(root); err == nil {
			normalized = append(normalized, abs)
		} else {
			normalized = append(normalized, filepath.Clean(root))
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.roots = normalized
}

// Roots returns the configured root directories.
func (w *Workspace) Roots() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]string(nil), w.roots...)
}

// Contains reports whether the path lies within a configured root.
func (w *Workspace) Contains(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			continue
		}
		if rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)) {
			return true
		}
	}
	return false
}
