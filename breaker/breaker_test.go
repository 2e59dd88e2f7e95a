package breaker

import (
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func newTestBreaker(cfg Config) (*Breaker, *time.Time) {
	b := New(cfg)
	now := time.Now()
	b.nowFunc = func() time.Time { return now }
	return b, &now
}

func fail(b *Breaker) error    { return b.Do(func() error { return errBoom }) }
func succeed(b *Breaker) error { return b.Do(func() error { return nil }) }

func TestClosedToOpen(t *testing.T) {
	b, _ := newTestBreaker(Config{
		FailureThreshold:   3,
		OpenTimeout:        5 * time.Second,
		HalfOpenMaxSuccess: 1,
	})

	if s := b.State(); s != Closed {
		t.Fatalf("expected Closed, got %d", s)
	}

	_ = fail(b)
	_ = fail(b)
	if s := b.State(); s != Closed {
		t.Fatalf("expected Closed after 2 failures, got %d", s)
	}

	_ = fail(b) // 3rd failure => trip
	if s := b.State(); s != Open {
		t.Fatalf("expected Open after 3 failures, got %d", s)
	}
}

func TestOpenRejects(t *testing.T) {
	b, _ := newTestBreaker(Config{
		FailureThreshold:   1,
		OpenTimeout:        5 * time.Second,
		HalfOpenMaxSuccess: 1,
	})

	_ = fail(b) // trip
	if err := succeed(b); !errors.Is(err, ErrOpen) {
		t.Fatalf("got %v, want ErrOpen", err)
	}
}

func TestOpenToHalfOpenAfterTimeout(t *testing.T) {
	b, now := newTestBreaker(Config{
		FailureThreshold:   1,
		OpenTimeout:        5 * time.Second,
		HalfOpenMaxSuccess: 2,
	})

	_ = fail(b) // trip to Open
	if err := succeed(b); !errors.Is(err, ErrOpen) {
		t.Fatal("expected rejection in Open")
	}

	*now = now.Add(6 * time.Second)
	if s := b.State(); s != HalfOpen {
		t.Fatalf("expected HalfOpen after timeout, got %d", s)
	}

	// Two successful probes close the breaker.
	if err := succeed(b); err != nil {
		t.Fatalf("probe 1: %v", err)
	}
	if err := succeed(b); err != nil {
		t.Fatalf("probe 2: %v", err)
	}
	if s := b.State(); s != Closed {
		t.Fatalf("expected Closed after probes, got %d", s)
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	b, now := newTestBreaker(Config{
		FailureThreshold:   1,
		OpenTimeout:        5 * time.Second,
		HalfOpenMaxSuccess: 2,
	})

	_ = fail(b)
	*now = now.Add(6 * time.Second)
	if s := b.State(); s != HalfOpen {
		t.Fatalf("expected HalfOpen, got %d", s)
	}

	_ = fail(b) // probe fails => reopen
	if s := b.State(); s != Open {
		t.Fatalf("expected Open after failed probe, got %d", s)
	}
}

func TestDoPassesThroughError(t *testing.T) {
	b, _ := newTestBreaker(Config{
		FailureThreshold:   5,
		OpenTimeout:        time.Second,
		HalfOpenMaxSuccess: 1,
	})

	if err := fail(b); !errors.Is(err, errBoom) {
		t.Fatalf("got %v, want the underlying error", err)
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(Config{
		FailureThreshold:   2,
		OpenTimeout:        time.Second,
		HalfOpenMaxSuccess: 1,
	})

	_ = fail(b)
	_ = succeed(b) // resets the consecutive-failure count
	_ = fail(b)
	if s := b.State(); s != Closed {
		t.Fatalf("expected Closed, got %d", s)
	}
}
