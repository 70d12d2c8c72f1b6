package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorderRegistersAndCounts(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveStageDuration("package", 100*time.Millisecond)
	r.ObserveBuildDuration(time.Second)
	r.IncStageResult("package", ResultSuccess)
	r.IncBuildOutcome("success")
	r.IncInstallRetry()
	r.SetArtifactSize(1024)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"distbuilder_stage_duration_seconds",
		"distbuilder_build_duration_seconds",
		"distbuilder_stage_results_total",
		"distbuilder_build_outcomes_total",
		"distbuilder_install_retries_total",
		"distbuilder_artifact_size_bytes",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("clean", time.Millisecond)
	r.ObserveBuildDuration(time.Millisecond)
	r.IncStageResult("clean", ResultWarning)
	r.IncBuildOutcome("warning")
	r.IncInstallRetry()
	r.SetArtifactSize(0)
}
