package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanRemovesPreExistingFiles(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"build", "dist"} {
		sub := filepath.Join(root, dir, "nested")
		if err := os.MkdirAll(sub, 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(filepath.Join(sub, "stale.bin"), []byte("old"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	mgr := NewManager(root, "build", "dist")
	if err := mgr.Clean(); err != nil {
		t.Fatalf("Clean() failed: %v", err)
	}

	for _, dir := range []string{"build", "dist"} {
		if _, err := os.Stat(filepath.Join(root, dir)); !os.IsNotExist(err) {
			t.Errorf("%s should be gone after Clean, stat err = %v", dir, err)
		}
	}
}

func TestCleanMissingDirsIsNoOp(t *testing.T) {
	mgr := NewManager(t.TempDir(), "build", "dist")
	if err := mgr.Clean(); err != nil {
		t.Fatalf("Clean() on missing dirs should be a no-op: %v", err)
	}
}

func TestEnsureDist(t *testing.T) {
	root := t.TempDir()
	mgr := NewManager(root, "build", "dist")
	if err := mgr.EnsureDist(); err != nil {
		t.Fatalf("EnsureDist() failed: %v", err)
	}
	info, err := os.Stat(filepath.Join(root, "dist"))
	if err != nil || !info.IsDir() {
		t.Fatalf("dist directory not created: %v", err)
	}
}

func TestPathsResolveAgainstRoot(t *testing.T) {
	mgr := NewManager("/proj", "build", "dist")
	if got := mgr.BuildPath(); got != filepath.Join("/proj", "build") {
		t.Errorf("BuildPath() = %s", got)
	}
	if got := mgr.DistPath(); got != filepath.Join("/proj", "dist") {
		t.Errorf("DistPath() = %s", got)
	}
}
