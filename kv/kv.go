// Package kv provides the durable string-keyed store the cache and cart
// layers persist into. Implementations must be safe for concurrent use.
package kv

import "errors"

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("kv: store closed")

// Store is the persistence contract. Values are opaque byte slices; callers
// own (de)serialization. A missing key is reported via the boolean, never as
// an error.
type Store interface {
	// Get retrieves the value stored under key. The boolean reports whether
	// the key was present.
	Get(key string) ([]byte, bool, error)

	// Set stores val under key, replacing any previous value.
	Set(key string, val []byte) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error

	// DeletePrefix removes every key that starts with prefix and returns the
	// number of keys removed.
	DeletePrefix(prefix string) (int, error)

	// Close releases any underlying resources.
	Close() error
}
