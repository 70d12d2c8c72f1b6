package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveOutcomePrecedence(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		record func(r *BuildReport)
		want   BuildOutcome
	}{
		{
			name: "all success",
			record: func(r *BuildReport) {
				r.recordStageResult(StageProvisionVenv, "", nil)
				r.recordStageResult(StagePackage, "", nil)
			},
			want: OutcomeSuccess,
		},
		{
			name: "warning only",
			record: func(r *BuildReport) {
				r.recordStageResult(StageInstallDeps, StageErrorWarning, boom)
				r.recordStageResult(StagePackage, "", nil)
			},
			want: OutcomeWarning,
		},
		{
			name: "fatal beats warning",
			record: func(r *BuildReport) {
				r.recordStageResult(StageInstallDeps, StageErrorWarning, boom)
				r.recordStageResult(StagePackage, StageErrorFatal, boom)
			},
			want: OutcomeFailed,
		},
		{
			name: "canceled beats fatal",
			record: func(r *BuildReport) {
				r.recordStageResult(StageInstallDeps, StageErrorFatal, boom)
				r.recordStageResult(StagePackage, StageErrorCanceled, boom)
			},
			want: OutcomeCanceled,
		},
		{
			name: "skipped stages stay success",
			record: func(r *BuildReport) {
				r.recordStageResult(StagePackage, "", nil)
				r.recordStageSkipped(StageArchive)
			},
			want: OutcomeSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBuildReport("id", "proj")
			tt.record(r)
			r.deriveOutcome()
			require.Equal(t, tt.want, r.Outcome)
		})
	}
}

func TestRecordStageResultTallies(t *testing.T) {
	r := newBuildReport("id", "proj")
	boom := errors.New("no manifest")

	r.recordStageResult(StageInstallDeps, StageErrorWarning, boom)
	r.recordStageResult(StagePackage, "", nil)

	require.Equal(t, 1, r.StageCounts[StageInstallDeps].Warning)
	require.Equal(t, 1, r.StageCounts[StagePackage].Success)
	require.Equal(t, []string{"no manifest"}, r.Warnings)
	require.Empty(t, r.Errors)
}

func TestReportJSONRoundTripsOutcome(t *testing.T) {
	r := newBuildReport("id", "proj")
	r.recordStageResult(StagePackage, "", nil)
	r.deriveOutcome()
	r.finish()

	payload, err := r.JSON()
	require.NoError(t, err)
	require.Contains(t, string(payload), `"outcome":"success"`)
	require.Contains(t, string(payload), `"build_id":"id"`)
}
