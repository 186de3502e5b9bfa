package ports

// Workspace exposes the directories the engine may touch. It is read-only
// from the engine's perspective.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type Workspace interface {
	// Roots returns the configured workspace root directories.
	Roots() []string

	// Contains reports whether the path lies within a workspace root.
	Contains(path string) bool
}
