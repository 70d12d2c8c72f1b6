// Package deps installs the dependency manifest into the virtual environment.
package deps

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	derrors "github.com/Zachdehooge/distbuilder/internal/errors"
	"github.com/Zachdehooge/distbuilder/internal/logfields"
	"github.com/Zachdehooge/distbuilder/internal/metrics"
	"github.com/Zachdehooge/distbuilder/internal/retry"
	"github.com/Zachdehooge/distbuilder/internal/toolexec"
	"github.com/Zachdehooge/distbuilder/internal/venv"
)

// Installer upgrades pip and installs the requirements manifest inside the
// environment. Installation reaches out to the package index, so failed runs
// are retried per policy.
type Installer struct {
	env          *venv.Environment
	runner       toolexec.Runner
	requirements string
	policy       retry.Policy
	recorder     metrics.Recorder
}

// NewInstaller builds an Installer. recorder may be nil (treated as noop).
func NewInstaller(env *venv.Environment, runner toolexec.Runner, requirements string, policy retry.Policy, recorder metrics.Recorder) *Installer {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Installer{env: env, runner: runner, requirements: requirements, policy: policy, recorder: recorder}
}

// Install upgrades pip and installs the manifest. A missing manifest fails
// immediately; transient tool failures are retried with backoff.
func (i *Installer) Install(ctx context.Context) error {
	if _, err := os.Stat(i.requirements); os.IsNotExist(err) {
		return derrors.New(derrors.CategoryDeps, derrors.SeverityFatal,
			fmt.Sprintf("dependency manifest not found: %s", i.requirements))
	}

	if err := i.runPip(ctx, "upgrade pip", "install", "--upgrade", "pip"); err != nil {
		return err
	}
	return i.runPip(ctx, "install requirements", "install", "-r", i.requirements)
}

func (i *Installer) runPip(ctx context.Context, what string, pipArgs ...string) error {
	args := append([]string{"-m", "pip"}, pipArgs...)
	cmd := toolexec.Command{
		Path: i.env.Python(),
		Args: args,
		Env:  i.env.Environ(),
	}

	var lastErr error
	for attempt := 0; attempt <= i.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := i.policy.Delay(attempt)
			slog.Warn("Retrying pip after failure",
				slog.String("operation", what),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
				logfields.Error(lastErr))
			i.recorder.IncInstallRetry()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = i.runner.Run(ctx, cmd)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return derrors.WrapRetryable(lastErr, derrors.CategoryDeps, derrors.SeverityError,
		fmt.Sprintf("pip %s failed after %d attempts", what, i.policy.MaxRetries+1))
}
