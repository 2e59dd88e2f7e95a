package kv

import (
	"bytes"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bolt is a file-backed Store built on bbolt. It is the durable backend used
// when cart and cache state must survive process restarts.
type Bolt struct {
	db     *bolt.DB
	bucket []byte
}

// BoltOptions configures OpenBolt.
type BoltOptions struct {
	// Bucket names the bbolt bucket holding all keys. Defaults to "storefront".
	Bucket string
}

// OpenBolt opens (or creates) a bbolt database at path.
func OpenBolt(path string, opts BoltOptions) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	bucket := []byte("storefront")
	if opts.Bucket != "" {
		bucket = []byte(opts.Bucket)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Bolt{db: db, bucket: bucket}, nil
}

// Get retrieves the value stored under key.
func (b *Bolt) Get(key string) ([]byte, bool, error) {
	var out []byte
	var found bool
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(b.bucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		found = true
		out = bytes.Clone(v)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, found, nil
}

// Set stores val under key.
func (b *Bolt) Set(key string, val []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).Put([]byte(key), val)
	})
}

// Delete removes key.
func (b *Bolt) Delete(key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).Delete([]byte(key))
	})
}

// DeletePrefix removes every key under prefix using a cursor range scan.
func (b *Bolt) DeletePrefix(prefix string) (int, error) {
	n := 0
	p := []byte(prefix)
	err := b.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(b.bucket).Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the underlying database.
func (b *Bolt) Close() error {
	return b.db.Close()
}
