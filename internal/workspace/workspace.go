// Package workspace lays out solution files on disk, one directory per
// problem under the configured base directory.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"cpdeck/internal/domain"
)

// Workspace owns the on-disk solution tree:
// <base>/<source>/<contest>/<index>/solution<ext>.
type Workspace struct {
	baseDir string
}

// New creates a workspace rooted at baseDir.
func New(baseDir string) *Workspace {
	return &Workspace{baseDir: baseDir}
}

// BaseDir returns the workspace root.
func (w *Workspace) BaseDir() string {
	return w.baseDir
}

// ProblemDir returns the directory for a problem without creating it.
func (w *Workspace) ProblemDir(source string, p domain.Problem) string {
	return filepath.Join(w.baseDir, source, p.ContestID, p.Index)
}

// SolutionPath ensures the problem's directory and solution file exist and
// returns the file's path. An existing solution is left untouched.
func (w *Workspace) SolutionPath(source string, p domain.Problem, ext string) (string, error) {
	dir := w.ProblemDir(source, p)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("workspace: create %s: %w", dir, err)
	}

	path := filepath.Join(dir, "solution"+ext)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("workspace: create %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("workspace: close %s: %w", path, err)
	}
	return path, nil
}
