// Package toolexec abstracts external tool invocation so pipeline stages can be
// exercised in tests without a Python toolchain installed.
package toolexec

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Command describes a single external tool invocation.
type Command struct {
	Path string   // executable name or path; names are resolved via PATH
	Args []string // arguments, excluding the executable itself
	Dir  string   // working directory; empty means inherit
	Env  []string // full environment; nil means inherit the process environment
}

// Runner executes external commands and resolves tool locations.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
	LookPath(file string) (string, error)
}

// ExecRunner runs commands via os/exec, streaming tool output to the
// configured writers (process stdout/stderr by default).
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner wired to the process's stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

func (r *ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
