package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/Zachdehooge/distbuilder/internal/config"
	"github.com/Zachdehooge/distbuilder/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Number of builds to show" default:"10"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.History == nil || cfg.History.Path == "" {
		return fmt.Errorf("history store not configured; set history.path in %s", root.Config)
	}

	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	recs, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return fmt.Errorf("read build history: %w", err)
	}
	if len(recs) == 0 {
		fmt.Println("No builds recorded yet")
		return nil
	}

	for _, rec := range recs {
		fmt.Println(formatRecord(rec))
	}
	return nil
}

func formatRecord(rec history.Record) string {
	line := fmt.Sprintf("%s  %-8s  %8s  %s",
		rec.StartedAt.Local().Format(time.RFC3339),
		rec.Outcome,
		rec.Duration().Round(time.Millisecond),
		rec.BuildID)
	if rec.Commit != "" {
		commit := rec.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		line += "  @" + commit
	}
	return line
}
