package commands

import (
	"fmt"
	"path/filepath"

	"github.com/Zachdehooge/distbuilder/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for generated config file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	// If the user specified an output directory, place the config there.
	if i.Output != "" {
		cfgPath := filepath.Join(i.Output, "distbuilder.yaml")
		return RunInit(cfgPath, i.Force)
	}
	return RunInit(root.Config, i.Force)
}

func RunInit(configPath string, force bool) error {
	fmt.Println("Initializing distbuilder project")
	fmt.Printf("Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		fmt.Println("Initialization failed")
		return err
	}
	fmt.Println("initialized successfully")
	fmt.Println("Edit the project section to match your application, then run 'distbuilder build'.")
	return nil
}
