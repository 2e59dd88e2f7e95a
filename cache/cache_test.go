package cache

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/roastworks/storefront/kv"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStore_RoundTrip(t *testing.T) {
	s := New[payload](kv.NewMemory(), "test:")

	s.Set("k1", payload{Name: "espresso", Count: 3}, nil)

	e, ok := s.Get("k1")
	if !ok {
		t.Fatal("expected hit")
	}
	if e.Data.Name != "espresso" || e.Data.Count != 3 {
		t.Fatalf("got %+v, want espresso/3", e.Data)
	}
	if e.Expiry != e.Timestamp+DefaultTTL.Milliseconds() {
		t.Fatalf("expiry %d, want timestamp+TTL %d", e.Expiry, e.Timestamp+DefaultTTL.Milliseconds())
	}
	if s.Expired(e) {
		t.Fatal("fresh entry reported expired")
	}

	data, ok := s.Fresh("k1")
	if !ok {
		t.Fatal("expected fresh hit")
	}
	if data.Name != "espresso" {
		t.Fatalf("got %q, want %q", data.Name, "espresso")
	}
}

func TestStore_MissOnAbsent(t *testing.T) {
	s := New[payload](kv.NewMemory(), "test:")
	if _, ok := s.Get("nope"); ok {
		t.Fatal("expected miss")
	}
}

func TestStore_ExpiredEntryIsNotFresh(t *testing.T) {
	s := New[payload](kv.NewMemory(), "test:")
	s.Set("k", payload{Name: "drip"}, nil)

	// Advance the store's clock past the TTL.
	s.now = func() time.Time { return time.Now().Add(DefaultTTL + time.Minute) }

	e, ok := s.Get("k")
	if !ok {
		t.Fatal("expected raw entry to still be readable")
	}
	if !s.Expired(e) {
		t.Fatal("expected entry to be expired")
	}
	if _, ok := s.Fresh("k"); ok {
		t.Fatal("expired entry served as fresh")
	}
}

func TestStore_CorruptEntryIsMiss(t *testing.T) {
	mem := kv.NewMemory()
	s := New[payload](mem, "test:")

	if err := mem.Set("test:bad", []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok := s.Get("bad"); ok {
		t.Fatal("corrupt entry must read as a miss")
	}
}

func TestStore_FiltersPersisted(t *testing.T) {
	mem := kv.NewMemory()
	s := New[payload](mem, "test:")

	filters := json.RawMessage(`{"search":"gesha"}`)
	s.Set("k", payload{}, filters)

	raw, ok, err := mem.Get("test:k")
	if err != nil || !ok {
		t.Fatalf("raw read: ok=%v err=%v", ok, err)
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if string(envelope["filters"]) != `{"search":"gesha"}` {
		t.Fatalf("filters = %s", envelope["filters"])
	}
}

// failingStore rejects all writes, simulating a full backend.
type failingStore struct{ *kv.Memory }

func (f failingStore) Set(string, []byte) error { return errors.New("quota exceeded") }

func TestStore_WriteFailureIsSwallowed(t *testing.T) {
	s := New[payload](failingStore{kv.NewMemory()}, "test:")

	// Must not panic or surface the error; the entry is simply absent.
	s.Set("k", payload{Name: "cold brew"}, nil)
	if _, ok := s.Get("k"); ok {
		t.Fatal("write should have been dropped")
	}
}

func TestStore_ClearAll(t *testing.T) {
	mem := kv.NewMemory()
	s := New[payload](mem, "catalog:")
	other := New[payload](mem, "other:")

	s.Set("a", payload{}, nil)
	s.Set("b", payload{}, nil)
	other.Set("c", payload{}, nil)

	n, err := s.ClearAll()
	if err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if n != 2 {
		t.Fatalf("removed %d entries, want 2", n)
	}
	if _, ok := s.Get("a"); ok {
		t.Fatal("entry survived ClearAll")
	}
	if _, ok := other.Get("c"); !ok {
		t.Fatal("ClearAll crossed namespaces")
	}
}

func TestStore_WithTTL(t *testing.T) {
	s := New[payload](kv.NewMemory(), "test:", WithTTL(time.Hour))
	s.Set("k", payload{}, nil)

	e, ok := s.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if e.Expiry != e.Timestamp+time.Hour.Milliseconds() {
		t.Fatalf("expiry %d, want timestamp+1h", e.Expiry)
	}
}
