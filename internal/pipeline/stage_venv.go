package pipeline

import "context"

// stageProvisionVenv ensures the virtual environment exists, creating it with
// the host interpreter when absent.
func stageProvisionVenv(ctx context.Context, bs *BuildState) error {
	return bs.Builder.env.Ensure(ctx)
}
