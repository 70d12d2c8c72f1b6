package pipeline

import (
	"context"
	"log/slog"
)

// stageCleanOutput removes stale build and dist directories so the packager
// starts from a clean slate.
func stageCleanOutput(_ context.Context, bs *BuildState) error {
	if bs.Builder.cfg.Output.Clean != nil && !*bs.Builder.cfg.Output.Clean {
		slog.Debug("Output cleaning disabled, keeping prior directories")
		bs.Report.recordStageSkipped(StageCleanOutput)
		return nil
	}
	return bs.Builder.workspace.Clean()
}
