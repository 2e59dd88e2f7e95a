package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("upstream unavailable")

func TestDo_RetriesOnTransientThenSucceeds(t *testing.T) {
	calls := 0
	cfg := Config{
		MaxAttempts: 4,
		BaseDelay:   time.Millisecond,
		MaxDelay:    10 * time.Millisecond,
		Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
	}

	result, err := Do(context.Background(), cfg, func(_ context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errTransient
		}
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected %q, got %q", "ok", result)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDo_StopsOnNonRetryableError(t *testing.T) {
	calls := 0
	permanent := errors.New("bad request")
	cfg := Config{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
		MaxDelay:    10 * time.Millisecond,
		Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
	}

	_, err := Do(context.Background(), cfg, func(_ context.Context) (string, error) {
		calls++
		return "", permanent
	})

	if !errors.Is(err, permanent) {
		t.Fatalf("got %v, want the permanent error", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDo_NilClassifierRetriesEverything(t *testing.T) {
	calls := 0
	cfg := Config{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	}

	_, err := Do(context.Background(), cfg, func(_ context.Context) (int, error) {
		calls++
		return 0, errors.New("always fails")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDo_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	cfg := Config{
		MaxAttempts: 10,
		BaseDelay:   time.Hour, // would block forever without cancellation
		MaxDelay:    time.Hour,
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func(_ context.Context) (string, error) {
		calls++
		return "", errTransient
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", calls)
	}
}

func TestDo_ZeroConfigSingleAttempt(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Config{}, func(_ context.Context) (string, error) {
		calls++
		return "", errTransient
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestBackoff_CapsAtMaxDelay(t *testing.T) {
	cfg := Config{BaseDelay: time.Second, MaxDelay: 3 * time.Second}

	if d := backoff(cfg, 0); d != time.Second {
		t.Fatalf("attempt 0: got %v, want 1s", d)
	}
	if d := backoff(cfg, 1); d != 2*time.Second {
		t.Fatalf("attempt 1: got %v, want 2s", d)
	}
	if d := backoff(cfg, 5); d != 3*time.Second {
		t.Fatalf("attempt 5: got %v, want cap of 3s", d)
	}
}
