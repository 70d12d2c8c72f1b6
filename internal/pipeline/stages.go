package pipeline

import (
	"context"
	"fmt"
	"time"
)

// StageName identifies a pipeline stage.
type StageName string

const (
	StageProvisionVenv StageName = "provision-venv"
	StageInstallDeps   StageName = "install-deps"
	StageCleanOutput   StageName = "clean-output"
	StagePackage       StageName = "package"
	StageArchive       StageName = "archive"
)

// Stage is a discrete unit of work in the build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageDef pairs a stage with its name for ordered execution.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries mutable state across stages.
type BuildState struct {
	Builder *Builder
	Report  *BuildReport
	Timings map[StageName]time.Duration
	start   time.Time
}

func newBuildState(b *Builder, report *BuildReport) *BuildState {
	return &BuildState{
		Builder: b,
		Report:  report,
		Timings: make(map[StageName]time.Duration),
		start:   time.Now(),
	}
}
