// Package pipeline runs the build: provision the virtual environment, install
// dependencies, clean stale output, package the executable, and archive it.
//
// Stage failures are classified per the configured failure mode. Best-effort
// mode reproduces the legacy build script: a failed stage is recorded as a
// warning and the remaining stages still run. Strict mode aborts on the first
// failure. Cancellation always aborts.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Zachdehooge/distbuilder/internal/config"
	"github.com/Zachdehooge/distbuilder/internal/deps"
	"github.com/Zachdehooge/distbuilder/internal/gitinfo"
	"github.com/Zachdehooge/distbuilder/internal/history"
	"github.com/Zachdehooge/distbuilder/internal/logfields"
	"github.com/Zachdehooge/distbuilder/internal/metrics"
	"github.com/Zachdehooge/distbuilder/internal/packager"
	"github.com/Zachdehooge/distbuilder/internal/retry"
	"github.com/Zachdehooge/distbuilder/internal/toolexec"
	"github.com/Zachdehooge/distbuilder/internal/venv"
	"github.com/Zachdehooge/distbuilder/internal/workspace"
)

// Builder orchestrates the packaging pipeline for one project.
type Builder struct {
	cfg      *config.Config
	root     string
	runner   toolexec.Runner
	recorder metrics.Recorder
	store    history.Store

	env         *venv.Environment
	workspace   *workspace.Manager
	installer   *deps.Installer
	invoker     *packager.Invoker
	skipArchive bool
}

// Option customizes a Builder.
type Option func(*Builder)

// WithRunner replaces the external tool runner (tests use a fake).
func WithRunner(r toolexec.Runner) Option {
	return func(b *Builder) { b.runner = r }
}

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) { b.recorder = r }
}

// WithHistory injects a build-history store; reports are persisted after each run.
func WithHistory(s history.Store) Option {
	return func(b *Builder) { b.store = s }
}

// WithRoot sets the directory the build/dist output and source metadata
// resolve against (default "."). Config paths such as the entry point, venv
// directory and requirements are used as given, relative to the process
// working directory.
func WithRoot(root string) Option {
	return func(b *Builder) { b.root = root }
}

// WithSkipArchive disables the archive stage for this run.
func WithSkipArchive(skip bool) Option {
	return func(b *Builder) { b.skipArchive = skip }
}

// NewBuilder constructs a Builder from configuration.
func NewBuilder(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:      cfg,
		root:     ".",
		runner:   toolexec.NewExecRunner(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}

	b.env = venv.New(cfg.Venv.Dir, cfg.Venv.Python, b.runner)
	b.workspace = workspace.NewManager(b.root, cfg.Output.BuildDir, cfg.Output.DistDir)
	b.installer = deps.NewInstaller(b.env, b.runner, cfg.Venv.Requirements, retry.FromConfig(cfg.Build), b.recorder)
	b.invoker = packager.NewInvoker(b.env, b.runner, cfg.Project, cfg.Packager,
		b.workspace.BuildPath(), b.workspace.DistPath())
	return b
}

// ExecutablePath returns the fixed path the packager writes the binary to.
func (b *Builder) ExecutablePath() string { return b.invoker.ExecutablePath() }

// stages returns the ordered stage list for one run.
func (b *Builder) stages() []StageDef {
	return []StageDef{
		{Name: StageProvisionVenv, Fn: stageProvisionVenv},
		{Name: StageInstallDeps, Fn: stageInstallDeps},
		{Name: StageCleanOutput, Fn: stageCleanOutput},
		{Name: StagePackage, Fn: stagePackage},
		{Name: StageArchive, Fn: stageArchive},
	}
}

// Build runs the pipeline once and returns the report. The error is non-nil
// only when the pipeline aborted (strict-mode failure or cancellation);
// best-effort failures are carried inside the report instead.
func (b *Builder) Build(ctx context.Context) (*BuildReport, error) {
	report := newBuildReport(uuid.NewString(), b.cfg.Project.Name)

	if src, err := gitinfo.Describe(b.root); err != nil {
		slog.Debug("Could not resolve source commit", logfields.Error(err))
	} else if src != nil {
		report.Commit = src.Commit
		report.Branch = src.Branch
		slog.Debug("Resolved source revision", slog.String("revision", src.Short()))
	}

	slog.Info("Starting build",
		logfields.BuildID(report.BuildID),
		logfields.Project(report.Project))

	bs := newBuildState(b, report)
	runErr := runStages(ctx, bs, b.stages())

	report.deriveOutcome()
	report.finish()

	b.recorder.ObserveBuildDuration(report.TotalDuration())
	b.recorder.IncBuildOutcome(string(report.Outcome))

	b.persistHistory(ctx, report)

	slog.Info("Build finished",
		logfields.BuildID(report.BuildID),
		logfields.Outcome(string(report.Outcome)),
		logfields.DurationMS(float64(report.TotalDuration().Milliseconds())))

	return report, runErr
}

func (b *Builder) persistHistory(ctx context.Context, report *BuildReport) {
	if b.store == nil {
		return
	}
	payload, err := report.JSON()
	if err != nil {
		slog.Warn("Failed to serialize build report", logfields.Error(err))
		return
	}
	rec := history.Record{
		BuildID:    report.BuildID,
		Project:    report.Project,
		Outcome:    string(report.Outcome),
		StartedAt:  report.Start,
		FinishedAt: report.End,
		Commit:     report.Commit,
		Executable: report.Executable,
		Archive:    report.Archive,
		Report:     payload,
	}
	if err := b.store.Append(ctx, rec); err != nil {
		slog.Warn("Failed to persist build history", logfields.Error(err))
	}
}
