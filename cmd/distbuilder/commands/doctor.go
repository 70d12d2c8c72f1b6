package commands

import (
	"fmt"
	"os"

	"github.com/Zachdehooge/distbuilder/internal/config"
	"github.com/Zachdehooge/distbuilder/internal/toolexec"
	"github.com/Zachdehooge/distbuilder/internal/venv"
)

// DoctorCmd implements the 'doctor' command: it checks the build
// prerequisites without running a build.
type DoctorCmd struct{}

func (d *DoctorCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runner := toolexec.NewExecRunner()
	failed := 0

	if python, err := venv.DetectHostInterpreter(runner); err != nil {
		fmt.Printf("host python:     MISSING (%v)\n", err)
		failed++
	} else {
		fmt.Printf("host python:     ok (%s)\n", python)
	}

	env := venv.New(cfg.Venv.Dir, cfg.Venv.Python, runner)
	if env.Exists() {
		fmt.Printf("virtualenv:      ok (%s)\n", cfg.Venv.Dir)
		if _, err := os.Stat(env.Tool("pyinstaller")); err == nil {
			fmt.Println("pyinstaller:     ok")
		} else {
			fmt.Println("pyinstaller:     not installed yet (installed from the manifest during build)")
		}
	} else {
		fmt.Printf("virtualenv:      not provisioned yet (%s, created during build)\n", cfg.Venv.Dir)
	}

	failed += checkFile("entry point", cfg.Project.EntryPoint, true)
	failed += checkFile("requirements", cfg.Venv.Requirements, true)
	if cfg.Project.Icon != "" {
		failed += checkFile("icon", cfg.Project.Icon, false)
	}
	for _, df := range cfg.Project.DataFiles {
		failed += checkFile("data file", df.Source, true)
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Println("All checks passed")
	return nil
}

// checkFile prints the status of one file and returns 1 when a required
// file is missing.
func checkFile(label, path string, required bool) int {
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%-16s ok (%s)\n", label+":", path)
		return 0
	}
	if required {
		fmt.Printf("%-16s MISSING (%s)\n", label+":", path)
		return 1
	}
	fmt.Printf("%-16s missing, optional (%s)\n", label+":", path)
	return 0
}
