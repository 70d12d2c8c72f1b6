package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Zachdehooge/distbuilder/internal/config"
	"github.com/Zachdehooge/distbuilder/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Dist        string `short:"d" help:"Override the dist directory from the configuration"`
	Strict      bool   `help:"Abort on the first failed stage instead of continuing"`
	SkipArchive bool   `name:"skip-archive" help:"Skip zipping the executable after packaging"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.Dist != "" {
		cfg.Output.DistDir = b.Dist
	}
	if b.Strict {
		cfg.Build.FailureMode = config.FailureStrict
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return RunBuild(ctx, cfg, pipeline.WithSkipArchive(b.SkipArchive))
}

// RunBuild executes one pipeline run and prints a user-facing summary.
// In best-effort mode stage failures surface as warnings and the command
// still exits zero; strict-mode failures and cancellation return an error.
func RunBuild(ctx context.Context, cfg *config.Config, opts ...pipeline.Option) error {
	// Friendly user-facing messages on stdout; diagnostics go to the logger.
	fmt.Printf("Building %s\n", cfg.Project.Name)

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
		opts = append(opts, pipeline.WithHistory(store))
	}

	builder := pipeline.NewBuilder(cfg, opts...)
	report, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	for _, w := range report.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
	fmt.Printf("Done! Executable created in %s folder\n", cfg.Output.DistDir)
	if report.Archive != "" {
		fmt.Printf("Distributable archive: %s\n", report.Archive)
	}
	return nil
}
