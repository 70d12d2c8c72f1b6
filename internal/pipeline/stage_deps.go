package pipeline

import "context"

// stageInstallDeps upgrades pip and installs the dependency manifest into the
// environment.
func stageInstallDeps(ctx context.Context, bs *BuildState) error {
	return bs.Builder.installer.Install(ctx)
}
