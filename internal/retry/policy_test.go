package retry

import (
	"testing"
	"time"

	"github.com/Zachdehooge/distbuilder/internal/config"
)

func TestDelayLinear(t *testing.T) {
	p := Policy{Mode: config.RetryBackoffLinear, Initial: time.Second, Max: 3 * time.Second, MaxRetries: 5}
	if p.Delay(0) != 0 {
		t.Fatal("attempt 0 should have zero delay")
	}
	if p.Delay(2) != 2*time.Second {
		t.Fatalf("linear delay(2) = %v", p.Delay(2))
	}
	if p.Delay(10) != 3*time.Second {
		t.Fatalf("linear delay should cap at max, got %v", p.Delay(10))
	}
}

func TestDelayExponentialCaps(t *testing.T) {
	p := Policy{Mode: config.RetryBackoffExponential, Initial: time.Second, Max: 5 * time.Second, MaxRetries: 5}
	if p.Delay(1) != time.Second {
		t.Fatalf("exp delay(1) = %v", p.Delay(1))
	}
	if p.Delay(2) != 2*time.Second {
		t.Fatalf("exp delay(2) = %v", p.Delay(2))
	}
	if p.Delay(6) != 5*time.Second {
		t.Fatalf("exp delay should cap at max, got %v", p.Delay(6))
	}
}

func TestDelayFixed(t *testing.T) {
	p := Policy{Mode: config.RetryBackoffFixed, Initial: 2 * time.Second, Max: 30 * time.Second, MaxRetries: 2}
	for i := 1; i < 4; i++ {
		if p.Delay(i) != 2*time.Second {
			t.Fatalf("fixed delay(%d) = %v", i, p.Delay(i))
		}
	}
}

func TestFromConfigFallbacks(t *testing.T) {
	p := FromConfig(config.BuildConfig{RetryBackoff: "bogus", MaxRetries: -1, RetryInitialDelay: "nope"})
	def := DefaultPolicy()
	if p.Mode != def.Mode || p.Initial != def.Initial || p.MaxRetries != def.MaxRetries {
		t.Fatalf("invalid config should fall back to defaults, got %+v", p)
	}
}

func TestFromConfigClampsInitialToMax(t *testing.T) {
	p := FromConfig(config.BuildConfig{RetryBackoff: config.RetryBackoffFixed, MaxRetries: 1, RetryInitialDelay: "10s", RetryMaxDelay: "2s"})
	if p.Initial != 2*time.Second {
		t.Fatalf("initial should clamp to max, got %v", p.Initial)
	}
}
