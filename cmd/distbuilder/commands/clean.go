package commands

import (
	"fmt"

	"github.com/Zachdehooge/distbuilder/internal/config"
	"github.com/Zachdehooge/distbuilder/internal/workspace"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ws := workspace.NewManager(".", cfg.Output.BuildDir, cfg.Output.DistDir)
	if err := ws.Clean(); err != nil {
		return fmt.Errorf("clean output directories: %w", err)
	}

	fmt.Printf("Removed %s and %s\n", cfg.Output.BuildDir, cfg.Output.DistDir)
	return nil
}
