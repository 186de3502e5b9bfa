package workspace_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.drover.dev/drover/internal/adapters/workspace"
)

func TestWorkspace_Contains(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	w := workspace.New(root)

	assert.True(t, w.Contains(root), "a root contains itself")
	assert.True(t, w.Contains(filepath.Join(root, "pkg", "main.go")))
	assert.False(t, w.Contains(other))
	assert.False(t, w.Contains(filepath.Join(root, "..")))
}

func TestWorkspace_Contains_MultipleRoots(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	w := workspace.New(a, b)

	assert.True(t, w.Contains(filepath.Join(a, "x.go")))
	assert.True(t, w.Contains(filepath.Join(b, "y.go")))
}

func TestWorkspace_Contains_SiblingPrefix(t *testing.T) {
	root := t.TempDir()
	w := workspace.New(filepath.Join(root, "app"))

	// A sibling that shares the root's name as a prefix is still outside.
	assert.False(t, w.Contains(filepath.Join(root, "app-data", "x.go")))
}

func TestWorkspace_SetRoots_Replaces(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	w := workspace.New(a)

	w.SetRoots([]string{b})
	assert.False(t, w.Contains(filepath.Join(a, "x.go")))
	assert.True(t, w.Contains(filepath.Join(b, "x.go")))

	roots := w.Roots()
	require.Len(t, roots, 1)
	assert.True(t, filepath.IsAbs(roots[0]), "roots are normalized to absolute paths")
}

func TestWorkspace_Roots_ReturnsCopy(t *testing.T) {
	w := workspace.New(t.TempDir())

	roots := w.Roots()
	roots[0] = "/clobbered"
	assert.NotEqual(t, "/clobbered", w.Roots()[0])
}
