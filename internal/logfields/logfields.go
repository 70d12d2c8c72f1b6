package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyTool       = "tool"
	KeyPath       = "path"
	KeyArtifact   = "artifact"
	KeyProject    = "project"
	KeyOutcome    = "outcome"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Tool(name string) slog.Attr       { return slog.String(KeyTool, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Artifact(p string) slog.Attr      { return slog.String(KeyArtifact, p) }
func Project(name string) slog.Attr    { return slog.String(KeyProject, name) }
func Outcome(outcome string) slog.Attr { return slog.String(KeyOutcome, outcome) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
