package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Zachdehooge/distbuilder/internal/config"
	"github.com/Zachdehooge/distbuilder/internal/history"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"distbuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the standalone executable and distributable archive"`
	Clean   CleanCmd   `cmd:"" help:"Remove the build and dist directories"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	Doctor  DoctorCmd  `cmd:"" help:"Check that the build prerequisites are in place"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild automatically when project sources change"`
	History HistoryCmd `cmd:"" help:"Show recent builds from the history store"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(c.Verbose),
	}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel maps the verbose flag and DISTBUILDER_LOG_LEVEL onto a slog
// level. The flag wins over the environment.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(os.Getenv("DISTBUILDER_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openHistory opens the configured history store, or returns nil when
// history is not configured.
func openHistory(cfg *config.Config) (history.Store, error) {
	if cfg.History == nil || cfg.History.Path == "" {
		return nil, nil
	}
	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return store, nil
}
