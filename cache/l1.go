package cache

import (
	"bytes"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// L1 is an in-process front cache backed by ristretto. It holds already
// marshaled payloads keyed by the same derived keys as the durable layer, so
// repeated reads of a hot page skip the backing store entirely.
type L1 struct {
	rc *ristretto.Cache[string, []byte]
}

// NewL1 creates an L1 cache. maxCost controls the maximum number of entries
// the cache can hold (each entry has a cost of 1).
func NewL1(maxCost int64) (*L1, error) {
	rc, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCost * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &L1{rc: rc}, nil
}

// Get retrieves a payload by key.
func (l *L1) Get(key string) ([]byte, bool) {
	v, ok := l.rc.Get(key)
	if !ok {
		return nil, false
	}
	return bytes.Clone(v), true
}

// Set stores a payload under key with the given TTL.
func (l *L1) Set(key string, val []byte, ttl time.Duration) {
	l.rc.SetWithTTL(key, bytes.Clone(val), 1, ttl)
	l.rc.Wait()
}

// Del removes a payload.
func (l *L1) Del(key string) {
	l.rc.Del(key)
}

// Clear removes every payload.
func (l *L1) Clear() {
	l.rc.Clear()
}

// Close releases the cache's resources.
func (l *L1) Close() {
	l.rc.Close()
}
