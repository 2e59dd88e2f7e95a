// Package cache provides a TTL-stamped, JSON-serialized cache layer over a
// [kv.Store], plus an in-process ristretto front for hot payloads. Entries
// carry their own expiry so the backing store needs no TTL support of its
// own. All failure modes degrade to a cache miss: corruption is never
// surfaced, and writes are best effort.
package cache

import (
	"encoding/json"
	"time"

	"github.com/roastworks/storefront/kv"
	"github.com/roastworks/storefront/logx"
)

// DefaultTTL is the time-to-live applied to every entry unless overridden.
const DefaultTTL = 30 * time.Minute

// Entry is the persisted envelope around a cached payload. Timestamps are
// epoch milliseconds; Expiry is always Timestamp plus the store's TTL at
// write time. Filters records the query descriptor the payload was built
// from and is metadata only, never read back for logic.
type Entry[T any] struct {
	Data      T               `json:"data"`
	Timestamp int64           `json:"timestamp"`
	Expiry    int64           `json:"expiry"`
	Filters   json.RawMessage `json:"filters,omitempty"`
}

// ExpiredAt reports whether the entry's expiry has passed at the given time.
func (e *Entry[T]) ExpiredAt(now time.Time) bool {
	return now.UnixMilli() > e.Expiry
}

// Store reads and writes [Entry] values under a namespace prefix in a
// [kv.Store]. The zero value is not usable; construct with [New].
type Store[T any] struct {
	kv  kv.Store
	ns  string
	ttl time.Duration
	log logx.Logger
	now func() time.Time
}

// Option configures a Store.
type Option func(*settings)

type settings struct {
	ttl time.Duration
	log logx.Logger
}

// WithTTL overrides the default 30-minute entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger used for corruption and write-failure reports.
func WithLogger(l logx.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Store whose keys all live under the given namespace prefix.
func New[T any](store kv.Store, namespace string, opts ...Option) *Store[T] {
	cfg := settings{ttl: DefaultTTL, log: logx.Nop()}
	for _, o := range opts {
		o(&cfg)
	}
	return &Store[T]{
		kv:  store,
		ns:  namespace,
		ttl: cfg.ttl,
		log: cfg.log,
		now: time.Now,
	}
}

// Namespace returns the store's key prefix.
func (s *Store[T]) Namespace() string { return s.ns }

// Get returns the entry stored under key, expired or not; the caller decides
// freshness via [Store.Expired]. A missing key, a backend read error, or
// malformed JSON all report a miss — corruption is treated as absence, never
// as a fault.
func (s *Store[T]) Get(key string) (*Entry[T], bool) {
	raw, ok, err := s.kv.Get(s.ns + key)
	if err != nil {
		s.log.Debugf("cache: read %s%s: %v", s.ns, key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var e Entry[T]
	if err := json.Unmarshal(raw, &e); err != nil {
		s.log.Debugf("cache: corrupt entry at %s%s treated as miss: %v", s.ns, key, err)
		return nil, false
	}
	return &e, true
}

// Fresh returns the cached payload under key when the entry exists and has
// not expired.
func (s *Store[T]) Fresh(key string) (T, bool) {
	var zero T
	e, ok := s.Get(key)
	if !ok || s.Expired(e) {
		return zero, false
	}
	return e.Data, true
}

// Expired reports whether the entry has outlived its TTL.
func (s *Store[T]) Expired(e *Entry[T]) bool {
	return e.ExpiredAt(s.now())
}

// Set writes data under key with a fresh timestamp and expiry. Caching is
// best effort: serialization or backend failures (such as a full store) are
// logged at warning level and never returned to the caller.
func (s *Store[T]) Set(key string, data T, filters json.RawMessage) {
	now := s.now()
	e := Entry[T]{
		Data:      data,
		Timestamp: now.UnixMilli(),
		Expiry:    now.Add(s.ttl).UnixMilli(),
		Filters:   filters,
	}
	raw, err := json.Marshal(e)
	if err != nil {
		writeFailures.Inc()
		s.log.Warnf("cache: encode %s%s: %v", s.ns, key, err)
		return
	}
	if err := s.kv.Set(s.ns+key, raw); err != nil {
		writeFailures.Inc()
		s.log.Warnf("cache: write %s%s: %v", s.ns, key, err)
	}
}

// ClearAll removes every entry under the store's namespace and returns the
// number of keys removed. Intended for manual or operational use.
func (s *Store[T]) ClearAll() (int, error) {
	return s.kv.DeletePrefix(s.ns)
}
