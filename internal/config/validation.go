package config

import (
	"fmt"
	"strings"
	"time"
)

// NormalizeFailureMode maps user input to a canonical FailureMode ("" if invalid).
func NormalizeFailureMode(v string) FailureMode {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case string(FailureBestEffort), "best-effort", "best_effort":
		return FailureBestEffort
	case string(FailureStrict):
		return FailureStrict
	}
	return ""
}

// Validate checks invariants after defaulting. It rejects configurations the
// pipeline cannot act on rather than failing later mid-build.
func (c *Config) Validate() error {
	if c.Project.Name == "" {
		return fmt.Errorf("project.name must not be empty")
	}
	if strings.ContainsAny(c.Project.Name, `/\`) {
		return fmt.Errorf("project.name must not contain path separators: %s", c.Project.Name)
	}
	if c.Project.EntryPoint == "" {
		return fmt.Errorf("project.entry_point must not be empty")
	}
	for _, df := range c.Project.DataFiles {
		if df.Source == "" {
			return fmt.Errorf("project.data_files entries require a source")
		}
	}

	if NormalizeFailureMode(string(c.Build.FailureMode)) == "" {
		return fmt.Errorf("build.failure_mode must be %q or %q, got %q",
			FailureBestEffort, FailureStrict, c.Build.FailureMode)
	}
	switch c.Build.RetryBackoff {
	case RetryBackoffFixed, RetryBackoffLinear, RetryBackoffExponential:
	default:
		return fmt.Errorf("build.retry_backoff must be fixed, linear or exponential, got %q", c.Build.RetryBackoff)
	}
	if c.Build.MaxRetries < 0 {
		return fmt.Errorf("build.max_retries must not be negative")
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"build.retry_initial_delay", c.Build.RetryInitialDelay},
		{"build.retry_max_delay", c.Build.RetryMaxDelay},
		{"watch.debounce", c.Watch.Debounce},
		{"watch.interval", c.Watch.Interval},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.ParseDuration(field.value); err != nil {
			return fmt.Errorf("%s is not a valid duration: %w", field.name, err)
		}
	}

	if c.Output.BuildDir == c.Output.DistDir {
		return fmt.Errorf("output.build_dir and output.dist_dir must differ")
	}

	if c.History != nil && c.History.Path == "" {
		return fmt.Errorf("history.path must not be empty when history is configured")
	}

	return nil
}

// Duration parses a duration config field that already passed Validate.
// The fallback is returned for empty values.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
