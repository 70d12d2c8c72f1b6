// Package workspace manages the transient output directories of a build.
//
// The build directory holds the packager's intermediate state and the dist
// directory holds final artifacts. Both are destroyed before each run so stale
// artifacts from a previous build never leak into the new one; the packager
// recreates them as needed.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Zachdehooge/distbuilder/internal/logfields"
)

// Manager handles the build/dist directory lifecycle for one project root.
type Manager struct {
	root     string
	buildDir string
	distDir  string
}

// NewManager creates a manager rooted at the invocation directory.
// Relative buildDir/distDir are resolved against root.
func NewManager(root, buildDir, distDir string) *Manager {
	if root == "" {
		root = "."
	}
	return &Manager{
		root:     root,
		buildDir: buildDir,
		distDir:  distDir,
	}
}

// BuildPath returns the absolute-ish path of the build directory.
func (m *Manager) BuildPath() string { return m.resolve(m.buildDir) }

// DistPath returns the path of the distribution directory.
func (m *Manager) DistPath() string { return m.resolve(m.distDir) }

func (m *Manager) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.root, dir)
}

// Clean removes the build and dist directories recursively. Missing
// directories are a no-op, matching `rmdir /s /q` semantics.
func (m *Manager) Clean() error {
	for _, dir := range []string{m.BuildPath(), m.DistPath()} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			slog.Debug("Output directory absent, nothing to clean", logfields.Path(dir))
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to clean output directory %s: %w", dir, err)
		}
		slog.Info("Removed stale output directory", logfields.Path(dir))
	}
	return nil
}

// EnsureDist creates the distribution directory if it does not exist yet.
// The packager normally creates it, but the archiver needs it present when
// packaging was skipped or failed in best-effort mode.
func (m *Manager) EnsureDist() error {
	if err := os.MkdirAll(m.DistPath(), 0o750); err != nil {
		return fmt.Errorf("failed to create dist directory: %w", err)
	}
	return nil
}
