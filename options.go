package storefront

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/roastworks/storefront/breaker"
	"github.com/roastworks/storefront/catalog"
	"github.com/roastworks/storefront/kv"
	"github.com/roastworks/storefront/logx"
	"github.com/roastworks/storefront/retry"
)

// Option configures an Engine.
type Option func(*config)

// WithStore uses a caller-provided key-value store. The engine does not
// close it.
func WithStore(s kv.Store) Option {
	return func(c *config) {
		c.store = s
		c.openStore = nil
	}
}

// WithMemoryStore backs the engine with a fresh in-memory store. This is the
// default when no store option is given.
func WithMemoryStore() Option {
	return func(c *config) {
		c.store = nil
		c.openStore = func() (kv.Store, error) { return kv.NewMemory(), nil }
	}
}

// WithBoltStore backs the engine with a bbolt database at path, so cache and
// cart state survive process restarts.
func WithBoltStore(path string) Option {
	return func(c *config) {
		c.store = nil
		c.openStore = func() (kv.Store, error) { return kv.OpenBolt(path, kv.BoltOptions{}) }
	}
}

// WithRedisStore backs the engine with a Redis server.
func WithRedisStore(addr, password string, db int) Option {
	return func(c *config) {
		c.store = nil
		c.openStore = func() (kv.Store, error) { return kv.NewRedis(addr, password, db), nil }
	}
}

// WithFetcher wires the upstream catalog collaborator, enabling the catalog
// service.
func WithFetcher(f catalog.Fetcher) Option {
	return func(c *config) {
		c.fetcher = f
	}
}

// WithCacheTTL overrides the default 30-minute lifetime of cached catalog
// pages.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// WithL1 enables the in-process front cache holding up to maxEntries hot
// pages.
func WithL1(maxEntries int64) Option {
	return func(c *config) {
		c.l1Size = maxEntries
	}
}

// WithFetchLimit gates upstream catalog fetches through a token bucket of
// rps requests per second with the given burst.
func WithFetchLimit(rps float64, burst int) Option {
	return func(c *config) {
		c.fetchRPS = rps
		c.fetchBurst = burst
	}
}

// WithBreaker guards the catalog fetcher with a circuit breaker.
func WithBreaker(cfg breaker.Config) Option {
	return func(c *config) {
		c.breaker = cfg
	}
}

// WithFetchRetry retries transient catalog fetch failures with exponential
// backoff.
func WithFetchRetry(cfg retry.Config) Option {
	return func(c *config) {
		c.retry = cfg
	}
}

// WithLogger sets the logger passed to all components.
func WithLogger(l logx.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithTracerProvider supplies the OpenTelemetry tracer provider for catalog
// read-path spans. When unset the global provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}
