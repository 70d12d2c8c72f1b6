package retry

import (
	"time"

	"github.com/Zachdehooge/distbuilder/internal/config"
)

// Policy encapsulates retry/backoff settings for transient failures.
// It is immutable after construction.
type Policy struct {
	Mode       config.RetryBackoffMode // fixed|linear|exponential
	Initial    time.Duration           // base delay
	Max        time.Duration           // cap for growth
	MaxRetries int                     // maximum retry attempts after the first failure
}

// DefaultPolicy returns a sensible default policy (linear, 1s initial, 30s cap, 2 retries).
func DefaultPolicy() Policy {
	return Policy{Mode: config.RetryBackoffLinear, Initial: time.Second, Max: 30 * time.Second, MaxRetries: 2}
}

// FromConfig builds a policy from the build config; zero/invalid values fall back to defaults.
func FromConfig(bc config.BuildConfig) Policy {
	p := DefaultPolicy()
	if bc.MaxRetries >= 0 {
		p.MaxRetries = bc.MaxRetries
	}
	if d := config.Duration(bc.RetryInitialDelay, 0); d > 0 {
		p.Initial = d
	}
	if d := config.Duration(bc.RetryMaxDelay, 0); d > 0 {
		p.Max = d
	}
	switch bc.RetryBackoff {
	case config.RetryBackoffFixed, config.RetryBackoffLinear, config.RetryBackoffExponential:
		p.Mode = bc.RetryBackoff
	default:
		// unknown -> keep default
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the backoff delay for the given retry attempt number (1-based: first retry => 1).
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	switch p.Mode {
	case config.RetryBackoffFixed:
		return p.Initial
	case config.RetryBackoffExponential:
		d := p.Initial * (1 << (retryCount - 1))
		if d > p.Max {
			return p.Max
		}
		return d
	default: // linear
		d := p.Initial * time.Duration(retryCount)
		if d > p.Max {
			return p.Max
		}
		return d
	}
}
