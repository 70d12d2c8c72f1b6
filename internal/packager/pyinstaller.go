// Package packager invokes PyInstaller to bundle the entry-point script and
// its dependencies into a single standalone executable.
package packager

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/Zachdehooge/distbuilder/internal/config"
	derrors "github.com/Zachdehooge/distbuilder/internal/errors"
	"github.com/Zachdehooge/distbuilder/internal/logfields"
	"github.com/Zachdehooge/distbuilder/internal/toolexec"
	"github.com/Zachdehooge/distbuilder/internal/venv"
)

// goos is swapped in tests to cover both --add-data separators and the .exe suffix.
var goos = runtime.GOOS

// Invoker runs PyInstaller from the virtual environment with options derived
// from the project configuration.
type Invoker struct {
	env      *venv.Environment
	runner   toolexec.Runner
	project  config.ProjectConfig
	opts     config.PackagerConfig
	buildDir string
	distDir  string
}

// NewInvoker builds an Invoker for the given project and output directories.
func NewInvoker(env *venv.Environment, runner toolexec.Runner, project config.ProjectConfig, opts config.PackagerConfig, buildDir, distDir string) *Invoker {
	return &Invoker{env: env, runner: runner, project: project, opts: opts, buildDir: buildDir, distDir: distDir}
}

// addDataSeparator returns the source/dest separator PyInstaller expects for
// --add-data: ";" on Windows, ":" elsewhere.
func addDataSeparator() string {
	if goos == "windows" {
		return ";"
	}
	return ":"
}

// Args assembles the PyInstaller argument list. The entry point comes last.
func (v *Invoker) Args() []string {
	args := []string{"-m", "PyInstaller", "--noconfirm"}

	if v.opts.OneFile == nil || *v.opts.OneFile {
		args = append(args, "--onefile")
	}
	if v.opts.Windowed == nil || *v.opts.Windowed {
		args = append(args, "--windowed")
	}

	args = append(args, "--name", v.project.Name)

	if v.project.Icon != "" {
		args = append(args, "--icon", v.project.Icon)
	}
	for _, df := range v.project.DataFiles {
		dest := df.Dest
		if dest == "" {
			dest = "."
		}
		args = append(args, "--add-data", df.Source+addDataSeparator()+dest)
	}

	args = append(args, "--distpath", v.distDir, "--workpath", v.buildDir, "--specpath", v.buildDir)
	args = append(args, v.opts.ExtraArgs...)
	args = append(args, v.project.EntryPoint)
	return args
}

// Package runs PyInstaller. It verifies the entry point exists first so the
// error names the actual problem instead of surfacing a tool traceback.
func (v *Invoker) Package(ctx context.Context) error {
	if _, err := os.Stat(v.project.EntryPoint); os.IsNotExist(err) {
		return derrors.New(derrors.CategoryPackager, derrors.SeverityFatal,
			fmt.Sprintf("entry-point script not found: %s", v.project.EntryPoint))
	}

	slog.Info("Packaging standalone executable",
		logfields.Project(v.project.Name),
		logfields.Tool("pyinstaller"))

	if err := v.runner.Run(ctx, toolexec.Command{
		Path: v.env.Python(),
		Args: v.Args(),
		Env:  v.env.Environ(),
	}); err != nil {
		return derrors.Wrap(err, derrors.CategoryPackager, derrors.SeverityError, "pyinstaller failed")
	}
	return nil
}

// ExecutablePath returns the fixed path of the produced executable.
func (v *Invoker) ExecutablePath() string {
	return filepath.Join(v.distDir, v.project.ExecutableName(goos))
}
