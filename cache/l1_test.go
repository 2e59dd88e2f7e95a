package cache

import (
	"testing"
	"time"
)

func mustNewL1(t *testing.T) *L1 {
	t.Helper()
	c, err := NewL1(1000)
	if err != nil {
		t.Fatalf("NewL1: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestL1_GetSet(t *testing.T) {
	c := mustNewL1(t)

	if _, ok := c.Get("k1"); ok {
		t.Fatal("expected miss")
	}

	c.Set("k1", []byte("v1"), 0)
	val, ok := c.Get("k1")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(val) != "v1" {
		t.Fatalf("got %q, want %q", val, "v1")
	}
}

func TestL1_TTLExpires(t *testing.T) {
	c := mustNewL1(t)

	c.Set("k", []byte("v"), 20*time.Millisecond)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected hit before TTL")
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after TTL")
	}
}

func TestL1_Del(t *testing.T) {
	c := mustNewL1(t)

	c.Set("k", []byte("v"), 0)
	c.Del("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after Del")
	}
}
