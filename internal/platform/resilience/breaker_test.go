package resilience

import (
	"errors"
	"testing"
	"time"
)

var errSource = errors.New("source down")

func fail() error    { return errSource }
func succeed() error { return nil }

func TestBreaker_Transitions(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenProbes: 1})

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Do(fail); !errors.Is(err, errSource) {
		t.Fatalf("expected source error, got %v", err)
	}
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Do(fail)
	if state := b.State(); state != StateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	err := b.Do(func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if called {
		t.Fatalf("expected open breaker to skip the call")
	}

	now = now.Add(6 * time.Second)
	if state := b.State(); state != StateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", state)
	}
	if err := b.Do(succeed); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second})

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	_ = b.Do(fail)
	now = now.Add(2 * time.Second)
	_ = b.Do(fail)

	if state := b.State(); state != StateOpen {
		t.Fatalf("expected open after failed probe, got %s", state)
	}
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 2})

	_ = b.Do(fail)
	_ = b.Do(succeed)
	_ = b.Do(fail)

	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed, got %s", state)
	}
}

func TestBreaker_IgnoresNonFailures(t *testing.T) {
	errBadInput := errors.New("bad input")
	b := NewBreaker(BreakerConfig{
		FailureThreshold: 1,
		IsFailure:        func(err error) bool { return err != nil && !errors.Is(err, errBadInput) },
	})

	for range 3 {
		if err := b.Do(func() error { return errBadInput }); !errors.Is(err, errBadInput) {
			t.Fatalf("expected bad input error, got %v", err)
		}
	}
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected caller errors to leave breaker closed, got %s", state)
	}
}
