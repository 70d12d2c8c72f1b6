// Package metrics defines the Recorder abstraction for build observability and
// a Prometheus-backed implementation. A NoopRecorder is used when metrics are
// not configured so call sites never need nil checks.
package metrics
