package pipeline

import (
	"os"
	"path/filepath"
)

// Workspace maps configured, possibly-relative directory names onto absolute
// paths rooted at the workspace, and owns build-directory lifecycle.
type Workspace interface {
	// Resolve returns the absolute path for rel, or the workspace root when
	// rel is empty.
	Resolve(rel string) string

	// RemoveAll recursively deletes the directory at path.
	RemoveAll(path string) error

	// MkdirAll creates the directory at path, including parents.
	MkdirAll(path string) error
}

type localWorkspace struct {
	root string
}

// NewWorkspace returns a Workspace rooted at the given directory.
func NewWorkspace(root string) Workspace {
	return localWorkspace{root: root}
}

func (w localWorkspace) Resolve(rel string) string {
	if rel == "" {
		return w.root
	}
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(w.root, rel)
}

func (w localWorkspace) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return Wrap(DomainRun, CodeWorkspace, "failed to clean build directory", err)
	}
	return nil
}

func (w localWorkspace) MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return Wrap(DomainRun, CodeWorkspace, "failed to create build directory", err)
	}
	return nil
}
