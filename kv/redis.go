package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis server. Reads fail soft: if Redis is
// unreachable a Get reports a miss instead of surfacing the error, so a
// flapping cache backend never breaks the feature it accelerates. Writes
// return their error and the caller decides whether it matters.
type Redis struct {
	rdb *redis.Client
}

// NewRedis creates a Redis-backed store.
func NewRedis(addr, password string, db int) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Redis{rdb: rdb}
}

// Get retrieves the value stored under key. Returns (nil, false, nil) on a
// miss or when Redis is unreachable.
func (r *Redis) Get(key string) ([]byte, bool, error) {
	val, err := r.rdb.Get(context.Background(), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		// Fail soft: treat connection errors as a miss.
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores val under key without expiration; TTL semantics live in the
// cache layer's entry envelope, not here.
func (r *Redis) Set(key string, val []byte) error {
	return r.rdb.Set(context.Background(), key, val, 0).Err()
}

// Delete removes key.
func (r *Redis) Delete(key string) error {
	return r.rdb.Del(context.Background(), key).Err()
}

// DeletePrefix removes every key under prefix via SCAN + DEL.
func (r *Redis) DeletePrefix(prefix string) (int, error) {
	ctx := context.Background()
	n := 0
	iter := r.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return n, err
		}
		n++
	}
	if err := iter.Err(); err != nil {
		return n, err
	}
	return n, nil
}

// Ping checks the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close closes the underlying Redis client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
