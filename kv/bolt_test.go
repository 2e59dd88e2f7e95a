package kv

import (
	"path/filepath"
	"testing"
)

func testBolt(t *testing.T) *Bolt {
	t.Helper()
	b, err := OpenBolt(filepath.Join(t.TempDir(), "kv.db"), BoltOptions{})
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBolt_GetSet(t *testing.T) {
	b := testBolt(t)

	_, ok, err := b.Get("k1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}

	if err := b.Set("k1", []byte("v1")); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	val, ok, err := b.Get("k1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !ok {
		t.Fatal("expected hit")
	}
	if string(val) != "v1" {
		t.Fatalf("got %q, want %q", val, "v1")
	}
}

func TestBolt_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	b, err := OpenBolt(path, BoltOptions{})
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	if err := b.Set("k", []byte("persisted")); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	b2, err := OpenBolt(path, BoltOptions{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b2.Close()

	val, ok, err := b2.Get("k")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !ok {
		t.Fatal("expected hit after reopen")
	}
	if string(val) != "persisted" {
		t.Fatalf("got %q, want %q", val, "persisted")
	}
}

func TestBolt_DeletePrefix(t *testing.T) {
	b := testBolt(t)
	_ = b.Set("catalog:list:1", []byte("1"))
	_ = b.Set("catalog:list:2", []byte("2"))
	_ = b.Set("catalog:page:1", []byte("3"))
	_ = b.Set("cart:items", []byte("4"))

	n, err := b.DeletePrefix("catalog:")
	if err != nil {
		t.Fatalf("DeletePrefix error: %v", err)
	}
	if n != 3 {
		t.Fatalf("removed %d keys, want 3", n)
	}
	if _, ok, _ := b.Get("cart:items"); !ok {
		t.Fatal("unrelated key was removed")
	}
}
