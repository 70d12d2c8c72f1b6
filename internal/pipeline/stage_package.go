package pipeline

import (
	"context"
	"os"
)

// stagePackage invokes PyInstaller and records the produced artifact.
func stagePackage(ctx context.Context, bs *BuildState) error {
	if err := bs.Builder.invoker.Package(ctx); err != nil {
		return err
	}

	exe := bs.Builder.invoker.ExecutablePath()
	bs.Report.Executable = exe
	if info, err := os.Stat(exe); err == nil {
		bs.Report.ExecutableSize = info.Size()
		bs.Builder.recorder.SetArtifactSize(info.Size())
	}
	return nil
}
