package venv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "github.com/Zachdehooge/distbuilder/internal/errors"
	"github.com/Zachdehooge/distbuilder/internal/toolexec"
)

func TestEnsureCreatesWhenAbsent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "venv")
	runner := &toolexec.FakeRunner{}

	env := New(dir, "/usr/bin/python3", runner)
	require.NoError(t, env.Ensure(context.Background()))

	cmds := runner.Invocations()
	require.Len(t, cmds, 1)
	require.Equal(t, "/usr/bin/python3", cmds[0].Path)
	require.Equal(t, []string{"-m", "venv", dir}, cmds[0].Args)
}

func TestEnsureIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "venv")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyvenv.cfg"), []byte("home = /usr\n"), 0o644))

	runner := &toolexec.FakeRunner{}
	env := New(dir, "/usr/bin/python3", runner)
	require.NoError(t, env.Ensure(context.Background()))
	require.Empty(t, runner.Invocations(), "existing environment must not be recreated")
}

func TestEnsureDetectsInterpreter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "venv")
	runner := &toolexec.FakeRunner{Tools: map[string]string{"python": "/opt/python/bin/python"}}

	env := New(dir, "", runner)
	require.NoError(t, env.Ensure(context.Background()))

	cmds := runner.Invocations()
	require.Len(t, cmds, 1)
	require.Equal(t, "/opt/python/bin/python", cmds[0].Path)
}

func TestEnsureFailsWithoutInterpreter(t *testing.T) {
	runner := &toolexec.FakeRunner{}
	env := New(filepath.Join(t.TempDir(), "venv"), "", runner)
	err := env.Ensure(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no python interpreter")

	var be *derrors.BuildError
	require.ErrorAs(t, err, &be)
	require.Equal(t, derrors.CategoryVenv, be.Category)
	require.Equal(t, derrors.SeverityFatal, be.Severity)
}

func TestPathsUnix(t *testing.T) {
	old := goos
	goos = "linux"
	defer func() { goos = old }()

	env := New("venv", "", nil)
	require.Equal(t, filepath.Join("venv", "bin"), env.ScriptsDir())
	require.Equal(t, filepath.Join("venv", "bin", "python"), env.Python())
	require.Equal(t, filepath.Join("venv", "bin", "pyinstaller"), env.Tool("pyinstaller"))
}

func TestPathsWindows(t *testing.T) {
	old := goos
	goos = "windows"
	defer func() { goos = old }()

	env := New("venv", "", nil)
	require.Equal(t, filepath.Join("venv", "Scripts"), env.ScriptsDir())
	require.Equal(t, filepath.Join("venv", "Scripts", "python.exe"), env.Python())
	require.Equal(t, filepath.Join("venv", "Scripts", "pyinstaller.exe"), env.Tool("pyinstaller"))
}

func TestEnvironScopesWithoutMutatingProcess(t *testing.T) {
	t.Setenv("PYTHONHOME", "/usr")
	t.Setenv("PATH", "/usr/bin")

	env := New(filepath.Join(t.TempDir(), "venv"), "", nil)
	got := env.Environ()

	var sawPath, sawVirtualEnv bool
	for _, kv := range got {
		key, value, _ := strings.Cut(kv, "=")
		switch {
		case strings.EqualFold(key, "PYTHONHOME"):
			t.Error("PYTHONHOME must be dropped from the scoped environment")
		case strings.EqualFold(key, "PATH"):
			sawPath = true
			require.True(t, strings.HasPrefix(value, env.ScriptsDir()) || strings.Contains(value, env.ScriptsDir()),
				"scripts dir must lead PATH: %s", value)
		case key == "VIRTUAL_ENV":
			sawVirtualEnv = true
		}
	}
	require.True(t, sawPath)
	require.True(t, sawVirtualEnv)

	// The process environment itself is untouched.
	require.Equal(t, "/usr", os.Getenv("PYTHONHOME"))
}
