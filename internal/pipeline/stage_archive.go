package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Zachdehooge/distbuilder/internal/archive"
	derrors "github.com/Zachdehooge/distbuilder/internal/errors"
	"github.com/Zachdehooge/distbuilder/internal/logfields"
)

// stageArchive compresses the produced executable into the distributable zip.
func stageArchive(_ context.Context, bs *BuildState) error {
	b := bs.Builder
	if bs.skipArchive() {
		slog.Debug("Archive stage disabled")
		bs.Report.recordStageSkipped(StageArchive)
		return nil
	}

	exe := b.invoker.ExecutablePath()
	if _, err := os.Stat(exe); os.IsNotExist(err) {
		return derrors.New(derrors.CategoryArchive, derrors.SeverityError,
			fmt.Sprintf("executable not found at %s; packaging may have failed", exe))
	}
	if err := b.workspace.EnsureDist(); err != nil {
		return err
	}

	dest := filepath.Join(b.workspace.DistPath(), b.cfg.Project.ArchiveName())
	comment := ""
	if bs.Report.Commit != "" {
		comment = "source commit " + bs.Report.Commit
	}
	if err := archive.Zip(exe, dest, comment); err != nil {
		return err
	}

	bs.Report.Archive = dest
	slog.Info("Created distributable archive", logfields.Artifact(dest))
	return nil
}

func (bs *BuildState) skipArchive() bool {
	b := bs.Builder
	if b.skipArchive {
		return true
	}
	return b.cfg.Output.Archive != nil && !*b.cfg.Output.Archive
}
