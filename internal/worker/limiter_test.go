package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 3)
	if limiter.defaultBurst != 3 {
		t.Errorf("burst = %d, want 3", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("burst = %d, want default 5 for negative input", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/contract.html"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	// Different host has its own bucket.
	if err := limiter.Wait(ctx, "http://other.example.org/msa.html"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)

	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "http://example.com", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("elapsed = %v, want >= 50ms", elapsed)
	}
}

func TestLimiter_CancelledContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	ctx := context.Background()

	// Exhaust the single burst token.
	if err := limiter.Wait(ctx, "http://slow.example.com"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := limiter.Wait(cancelled, "http://slow.example.com"); err == nil {
		t.Error("wait succeeded with cancelled context and no tokens")
	}
}

func TestHostOf(t *testing.T) {
	host, err := hostOf("http://example.com/docs/nda.txt")
	if err != nil {
		t.Fatalf("hostOf failed: %v", err)
	}
	if host != "example.com" {
		t.Errorf("host = %q, want example.com", host)
	}

	if _, err := hostOf("::invalid"); err == nil {
		t.Error("expected error for invalid URL")
	}
}
