package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

func alwaysFail() (interface{}, error) {
	return nil, errors.New("backend unavailable")
}

func alwaysSucceed() (interface{}, error) {
	return "ok", nil
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(ctx, alwaysFail)
	}

	if cb.State() != StateOpen {
		t.Fatalf("expected state open, got %v", cb.State())
	}

	_, err := cb.Execute(ctx, alwaysSucceed)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_StaysClosedOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{MaxRequests: 1, Timeout: time.Minute})

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		result, err := cb.Execute(ctx, alwaysSucceed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "ok" {
			t.Fatalf("unexpected result: %v", result)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("expected state closed, got %v", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 1,
		Timeout:     10 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	ctx := context.Background()
	_, _ = cb.Execute(ctx, alwaysFail)

	if cb.State() != StateOpen {
		t.Fatalf("expected state open, got %v", cb.State())
	}

	// timeout 경과 후 half-open으로 전이
	time.Sleep(20 * time.Millisecond)

	if cb.State() != StateHalfOpen {
		t.Fatalf("expected state half-open, got %v", cb.State())
	}

	_, err := cb.Execute(ctx, alwaysSucceed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cb.State() != StateClosed {
		t.Errorf("expected state closed after recovery, got %v", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{
		MaxRequests: 1,
		Timeout:     10 * time.Millisecond,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	ctx := context.Background()
	_, _ = cb.Execute(ctx, alwaysFail)
	time.Sleep(20 * time.Millisecond)

	_, _ = cb.Execute(ctx, alwaysFail)

	if cb.State() != StateOpen {
		t.Errorf("expected state open after half-open failure, got %v", cb.State())
	}
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	var transitions []string
	cb := NewCircuitBreaker("orders", Config{
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_, _ = cb.Execute(context.Background(), alwaysFail)

	if len(transitions) != 1 || transitions[0] != "closed->open" {
		t.Errorf("unexpected transitions: %v", transitions)
	}
	if cb.Name() != "orders" {
		t.Errorf("unexpected name: %s", cb.Name())
	}
}
