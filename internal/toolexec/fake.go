package toolexec

import (
	"context"
	"fmt"
	"sync"
)

// FakeRunner records invocations and returns scripted results. Test helper.
type FakeRunner struct {
	mu       sync.Mutex
	Commands []Command
	// RunErr, when set, is consulted per invocation; return nil for success.
	RunErr func(cmd Command) error
	// Tools maps tool names to resolved paths for LookPath. Missing names error.
	Tools map[string]string
}

func (f *FakeRunner) Run(_ context.Context, cmd Command) error {
	f.mu.Lock()
	f.Commands = append(f.Commands, cmd)
	f.mu.Unlock()
	if f.RunErr != nil {
		return f.RunErr(cmd)
	}
	return nil
}

func (f *FakeRunner) LookPath(file string) (string, error) {
	if path, ok := f.Tools[file]; ok {
		return path, nil
	}
	return "", fmt.Errorf("executable file %q not found in fake PATH", file)
}

// Invocations returns a copy of the recorded commands.
func (f *FakeRunner) Invocations() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Command, len(f.Commands))
	copy(out, f.Commands)
	return out
}
