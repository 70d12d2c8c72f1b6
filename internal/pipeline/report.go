package pipeline

import (
	"encoding/json"
	"time"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// StageCount tracks per-stage classification tallies.
type StageCount struct {
	Success  int `json:"success,omitempty"`
	Warning  int `json:"warning,omitempty"`
	Fatal    int `json:"fatal,omitempty"`
	Canceled int `json:"canceled,omitempty"`
	Skipped  int `json:"skipped,omitempty"`
}

// BuildReport captures high-level metrics about one pipeline run.
type BuildReport struct {
	BuildID         string                        `json:"build_id"`
	Project         string                        `json:"project"`
	Start           time.Time                     `json:"start"`
	End             time.Time                     `json:"end"`
	Outcome         BuildOutcome                  `json:"outcome"`
	StageDurations  map[StageName]time.Duration   `json:"stage_durations"`
	StageErrorKinds map[StageName]StageErrorKind  `json:"stage_error_kinds,omitempty"`
	StageCounts     map[StageName]StageCount      `json:"stage_counts"`
	Errors          []string                      `json:"errors,omitempty"`   // fatal errors causing build abortion
	Warnings        []string                      `json:"warnings,omitempty"` // non-fatal issues (best-effort stage failures)
	Commit          string                        `json:"commit,omitempty"`   // source commit the build was produced from
	Branch          string                        `json:"branch,omitempty"`
	Executable      string                        `json:"executable,omitempty"` // produced binary path
	ExecutableSize  int64                         `json:"executable_size,omitempty"`
	Archive         string                        `json:"archive,omitempty"` // produced archive path
}

func newBuildReport(buildID, project string) *BuildReport {
	return &BuildReport{
		BuildID:         buildID,
		Project:         project,
		Start:           time.Now(),
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

func (r *BuildReport) recordStageResult(stage StageName, kind StageErrorKind, err error) {
	sc := r.StageCounts[stage]
	switch kind {
	case StageErrorWarning:
		sc.Warning++
		r.StageErrorKinds[stage] = kind
		r.Warnings = append(r.Warnings, err.Error())
	case StageErrorFatal:
		sc.Fatal++
		r.StageErrorKinds[stage] = kind
		r.Errors = append(r.Errors, err.Error())
	case StageErrorCanceled:
		sc.Canceled++
		r.StageErrorKinds[stage] = kind
		r.Errors = append(r.Errors, err.Error())
	default:
		sc.Success++
	}
	r.StageCounts[stage] = sc
}

func (r *BuildReport) recordStageSkipped(stage StageName) {
	sc := r.StageCounts[stage]
	sc.Skipped++
	r.StageCounts[stage] = sc
}

// deriveOutcome computes the final outcome from recorded classifications.
func (r *BuildReport) deriveOutcome() {
	switch {
	case r.hasKind(StageErrorCanceled):
		r.Outcome = OutcomeCanceled
	case r.hasKind(StageErrorFatal):
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

func (r *BuildReport) hasKind(kind StageErrorKind) bool {
	for _, k := range r.StageErrorKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (r *BuildReport) finish() {
	r.End = time.Now()
}

// TotalDuration returns the wall time of the whole run.
func (r *BuildReport) TotalDuration() time.Duration {
	return r.End.Sub(r.Start)
}

// JSON serializes the report for persistence.
func (r *BuildReport) JSON() ([]byte, error) {
	return json.Marshal(r)
}
