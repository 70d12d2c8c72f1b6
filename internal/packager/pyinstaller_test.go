package packager

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zachdehooge/distbuilder/internal/config"
	derrors "github.com/Zachdehooge/distbuilder/internal/errors"
	"github.com/Zachdehooge/distbuilder/internal/toolexec"
	"github.com/Zachdehooge/distbuilder/internal/venv"
)

func radarProject() config.ProjectConfig {
	return config.ProjectConfig{
		Name:       "NOAARadarDownloader",
		EntryPoint: "noaa_radar_downloader.py",
		Icon:       "radar_icon.ico",
		DataFiles:  []config.DataFile{{Source: "LICENSE", Dest: "."}},
	}
}

func TestArgsWindows(t *testing.T) {
	old := goos
	goos = "windows"
	defer func() { goos = old }()

	inv := NewInvoker(nil, nil, radarProject(), config.PackagerConfig{}, "build", "dist")
	require.Equal(t, []string{
		"-m", "PyInstaller", "--noconfirm",
		"--onefile",
		"--windowed",
		"--name", "NOAARadarDownloader",
		"--icon", "radar_icon.ico",
		"--add-data", "LICENSE;.",
		"--distpath", "dist", "--workpath", "build", "--specpath", "build",
		"noaa_radar_downloader.py",
	}, inv.Args())
}

func TestArgsUnixSeparatorAndOverrides(t *testing.T) {
	old := goos
	goos = "linux"
	defer func() { goos = old }()

	off := false
	opts := config.PackagerConfig{Windowed: &off, ExtraArgs: []string{"--clean"}}
	inv := NewInvoker(nil, nil, radarProject(), opts, "build", "dist")

	args := inv.Args()
	require.Contains(t, args, "--add-data")
	require.Contains(t, args, "LICENSE:.")
	require.NotContains(t, args, "--windowed")
	require.Contains(t, args, "--clean")
	require.Equal(t, "noaa_radar_downloader.py", args[len(args)-1], "entry point must come last")
}

func TestExecutablePathPerPlatform(t *testing.T) {
	inv := NewInvoker(nil, nil, radarProject(), config.PackagerConfig{}, "build", "dist")

	old := goos
	defer func() { goos = old }()

	goos = "windows"
	require.Equal(t, filepath.Join("dist", "NOAARadarDownloader.exe"), inv.ExecutablePath())

	goos = "linux"
	require.Equal(t, filepath.Join("dist", "NOAARadarDownloader"), inv.ExecutablePath())
}

func TestPackageMissingEntryPoint(t *testing.T) {
	runner := &toolexec.FakeRunner{}
	env := venv.New(filepath.Join(t.TempDir(), "venv"), "", runner)

	project := radarProject()
	project.EntryPoint = filepath.Join(t.TempDir(), "absent.py")
	inv := NewInvoker(env, runner, project, config.PackagerConfig{}, "build", "dist")

	err := inv.Package(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "entry-point script not found")
	require.Empty(t, runner.Invocations())

	var be *derrors.BuildError
	require.ErrorAs(t, err, &be)
	require.Equal(t, derrors.CategoryPackager, be.Category)
}

func TestPackageInvokesPyInstaller(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "noaa_radar_downloader.py")
	require.NoError(t, os.WriteFile(entry, []byte("print('hi')\n"), 0o644))

	runner := &toolexec.FakeRunner{}
	env := venv.New(filepath.Join(dir, "venv"), "", runner)

	project := radarProject()
	project.EntryPoint = entry
	inv := NewInvoker(env, runner, project, config.PackagerConfig{}, "build", "dist")

	require.NoError(t, inv.Package(context.Background()))
	cmds := runner.Invocations()
	require.Len(t, cmds, 1)
	require.Equal(t, env.Python(), cmds[0].Path)
	require.Equal(t, "-m", cmds[0].Args[0])
	require.Equal(t, "PyInstaller", cmds[0].Args[1])
	require.NotNil(t, cmds[0].Env)
}
