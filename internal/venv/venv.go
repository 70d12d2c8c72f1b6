// Package venv provisions and addresses the isolated Python environment used
// for dependency installation and packaging.
//
// The environment is never "activated": instead of mutating the process
// environment the way activate scripts do, Environ computes a per-command
// environment (venv executables first on PATH, VIRTUAL_ENV set) that callers
// pass to each spawned tool. There is nothing to restore on any exit path.
package venv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	derrors "github.com/Zachdehooge/distbuilder/internal/errors"
	"github.com/Zachdehooge/distbuilder/internal/logfields"
	"github.com/Zachdehooge/distbuilder/internal/toolexec"
)

// goos is swapped in tests to cover both path layouts.
var goos = runtime.GOOS

// hostInterpreterCandidates are tried in order when venv.python is not configured.
var hostInterpreterCandidates = []string{"python3", "python", "py"}

// DetectHostInterpreter resolves the host Python interpreter via PATH.
func DetectHostInterpreter(r toolexec.Runner) (string, error) {
	for _, name := range hostInterpreterCandidates {
		if path, err := r.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", derrors.New(derrors.CategoryVenv, derrors.SeverityFatal,
		fmt.Sprintf("no python interpreter found in PATH (tried %s)", strings.Join(hostInterpreterCandidates, ", ")))
}

// Environment represents the isolated Python environment at a fixed directory.
type Environment struct {
	dir        string
	hostPython string
	runner     toolexec.Runner
}

// New creates an Environment handle. hostPython may be empty; Ensure will
// detect one before creating the environment.
func New(dir, hostPython string, runner toolexec.Runner) *Environment {
	return &Environment{dir: dir, hostPython: hostPython, runner: runner}
}

// Dir returns the environment directory.
func (e *Environment) Dir() string { return e.dir }

// Exists reports whether a provisioned environment is present, using the
// pyvenv.cfg marker the venv module writes.
func (e *Environment) Exists() bool {
	_, err := os.Stat(filepath.Join(e.dir, "pyvenv.cfg"))
	return err == nil
}

// Ensure creates the environment if it does not exist yet. Idempotent:
// an existing environment is left untouched.
func (e *Environment) Ensure(ctx context.Context) error {
	if e.Exists() {
		slog.Debug("Virtual environment already provisioned", logfields.Path(e.dir))
		return nil
	}

	python := e.hostPython
	if python == "" {
		detected, err := DetectHostInterpreter(e.runner)
		if err != nil {
			return err
		}
		python = detected
	}

	slog.Info("Creating virtual environment", logfields.Path(e.dir), logfields.Tool(python))
	if err := e.runner.Run(ctx, toolexec.Command{
		Path: python,
		Args: []string{"-m", "venv", e.dir},
	}); err != nil {
		return derrors.Wrap(err, derrors.CategoryVenv, derrors.SeverityFatal,
			fmt.Sprintf("failed to create virtual environment at %s", e.dir))
	}
	return nil
}

// ScriptsDir returns the directory holding the environment's executables.
func (e *Environment) ScriptsDir() string {
	if goos == "windows" {
		return filepath.Join(e.dir, "Scripts")
	}
	return filepath.Join(e.dir, "bin")
}

// Python returns the path of the environment's interpreter.
func (e *Environment) Python() string {
	if goos == "windows" {
		return filepath.Join(e.ScriptsDir(), "python.exe")
	}
	return filepath.Join(e.ScriptsDir(), "python")
}

// Tool returns the path of a named executable inside the environment.
func (e *Environment) Tool(name string) string {
	if goos == "windows" {
		return filepath.Join(e.ScriptsDir(), name+".exe")
	}
	return filepath.Join(e.ScriptsDir(), name)
}

// Environ returns a copy of the process environment adjusted for running
// tools inside this environment: the scripts directory is prepended to PATH,
// VIRTUAL_ENV points at the environment, and PYTHONHOME is dropped so the
// host installation cannot shadow the venv.
func (e *Environment) Environ() []string {
	abs, err := filepath.Abs(e.dir)
	if err != nil {
		abs = e.dir
	}
	scripts := e.ScriptsDir()
	if absScripts, err := filepath.Abs(scripts); err == nil {
		scripts = absScripts
	}

	base := os.Environ()
	out := make([]string, 0, len(base)+2)
	pathSet := false
	for _, kv := range base {
		key, _, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		switch {
		case strings.EqualFold(key, "PYTHONHOME"):
			continue
		case strings.EqualFold(key, "VIRTUAL_ENV"):
			continue
		case strings.EqualFold(key, "PATH"):
			out = append(out, key+"="+scripts+string(os.PathListSeparator)+kv[len(key)+1:])
			pathSet = true
		default:
			out = append(out, kv)
		}
	}
	if !pathSet {
		out = append(out, "PATH="+scripts)
	}
	out = append(out, "VIRTUAL_ENV="+abs)
	return out
}
