package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func isTransient(err error) bool { return errors.Is(err, errTransient) }

func TestBackoff_Bounds(t *testing.T) {
	for attempt := 0; attempt < 10; attempt++ {
		d := Backoff(attempt)
		if d <= 0 || d > 3*time.Second {
			t.Errorf("attempt %d: backoff %v out of range", attempt, d)
		}
	}
}

func TestWithRetry_RecoversFromTransient(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), isTransient, func() error {
		calls++
		if calls < 2 {
			return errTransient
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestWithRetry_StopsOnPermanent(t *testing.T) {
	calls := 0
	permanent := errors.New("permanent")
	err := withRetry(context.Background(), isTransient, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("expected one call returning permanent, got %d calls err=%v", calls, err)
	}
}

func TestWithRetry_GivesUp(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), isTransient, func() error {
		calls++
		return errTransient
	})
	if !errors.Is(err, errTransient) || calls != MaxRetries {
		t.Errorf("expected %d calls ending in transient, got %d err=%v", MaxRetries, calls, err)
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := withRetry(ctx, isTransient, func() error { return errTransient })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
