package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Zachdehooge/distbuilder/internal/config"
	derrors "github.com/Zachdehooge/distbuilder/internal/errors"
	"github.com/Zachdehooge/distbuilder/internal/logfields"
	"github.com/Zachdehooge/distbuilder/internal/metrics"
)

// runStages executes stages in order, recording timing and classification.
// A fatal or canceled stage aborts the run; warnings continue.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.recordStageResult(st.Name, StageErrorCanceled, se)
			bs.Builder.recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Timings[st.Name] = dur
		bs.Report.StageDurations[st.Name] = dur
		bs.Builder.recorder.ObserveStageDuration(string(st.Name), dur)

		if err == nil {
			bs.Report.recordStageResult(st.Name, "", nil)
			bs.Builder.recorder.IncStageResult(string(st.Name), metrics.ResultSuccess)
			slog.Debug("Stage completed",
				logfields.Stage(string(st.Name)),
				logfields.DurationMS(float64(dur.Milliseconds())))
			continue
		}

		se := classifyStageError(st.Name, err, bs.Builder.cfg.Build.FailureMode, ctx)
		bs.Report.recordStageResult(st.Name, se.Kind, se)

		switch se.Kind {
		case StageErrorWarning:
			bs.Builder.recorder.IncStageResult(string(st.Name), metrics.ResultWarning)
			slog.Warn("Stage failed, continuing",
				logfields.Stage(string(st.Name)),
				logfields.Error(se.Err))
		case StageErrorCanceled:
			bs.Builder.recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
			bs.Builder.recorder.IncStageResult(string(st.Name), metrics.ResultFatal)
			slog.Error("Stage failed, aborting",
				logfields.Stage(string(st.Name)),
				logfields.Error(se.Err))
			return se
		}
	}
	return nil
}

// classifyStageError maps a raw stage error to its structured kind.
// Cancellation always aborts; other failures follow the failure mode, except
// that an error declaring itself warning-severity never aborts a strict run.
func classifyStageError(stage StageName, err error, mode config.FailureMode, ctx context.Context) *StageError {
	var se *StageError
	if errors.As(err, &se) {
		return se
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newCanceledStageError(stage, err)
	}
	var be *derrors.BuildError
	if errors.As(err, &be) && be.Severity == derrors.SeverityWarning {
		return newWarnStageError(stage, err)
	}
	if mode == config.FailureStrict {
		return newFatalStageError(stage, err)
	}
	return newWarnStageError(stage, err)
}
