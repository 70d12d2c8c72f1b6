// Package history persists build outcomes so past runs can be inspected
// from the CLI.
package history

import (
	"context"
	"time"
)

// Record is one completed pipeline run.
type Record struct {
	BuildID    string
	Project    string
	Outcome    string // success|warning|failed|canceled
	StartedAt  time.Time
	FinishedAt time.Time
	Commit     string // source commit, empty when not in a repository
	Executable string // path of the produced executable, empty on failure
	Archive    string // path of the produced archive, empty when skipped
	Report     []byte // JSON-serialized build report
}

// Duration returns the wall time of the run.
func (r Record) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store defines the interface for persisting and retrieving build records.
type Store interface {
	// Append adds a completed build to the store.
	Append(ctx context.Context, rec Record) error

	// Recent retrieves the most recent builds, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)

	// Close closes the store and releases resources.
	Close() error
}
