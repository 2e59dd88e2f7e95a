// Package storefront assembles the client-side catalog cache and shopping
// cart engine: a TTL page cache over a pluggable key-value store, pure
// filter/pagination passes, and a persisted cart state machine. Components
// are wired through functional [Option] values so hosts and tests construct
// isolated instances instead of sharing globals.
package storefront

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roastworks/storefront/cart"
	"github.com/roastworks/storefront/catalog"
	"github.com/roastworks/storefront/kv"
)

// Engine bundles the catalog service and the cart store over one backing
// key-value store.
//
//	eng, err := storefront.NewEngine(
//		storefront.WithBoltStore("storefront.db"),
//		storefront.WithFetcher(myFetcher),
//	)
type Engine struct {
	store     kv.Store
	ownsStore bool
	catalog   *catalog.Service
	cart      *cart.Store
}

// NewEngine creates an Engine by applying the supplied functional [Option]
// values. Without a store option an in-memory store is used; without
// [WithFetcher] the engine has no catalog service and [Engine.Catalog]
// returns nil.
func NewEngine(opts ...Option) (*Engine, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	store := cfg.store
	ownsStore := false
	if store == nil && cfg.openStore != nil {
		var err error
		store, err = cfg.openStore()
		if err != nil {
			return nil, err
		}
		ownsStore = true
	}
	if store == nil {
		store = kv.NewMemory()
		ownsStore = true
	}

	e := &Engine{
		store:     store,
		ownsStore: ownsStore,
		cart:      cart.NewStore(store, cart.WithLogger(cfg.logger)),
	}

	if cfg.fetcher != nil {
		svc, err := catalog.NewService(catalog.Config{
			Fetcher:        cfg.fetcher,
			Store:          store,
			TTL:            cfg.ttl,
			L1Size:         cfg.l1Size,
			FetchRPS:       cfg.fetchRPS,
			FetchBurst:     cfg.fetchBurst,
			Breaker:        cfg.breaker,
			Retry:          cfg.retry,
			Logger:         cfg.logger,
			TracerProvider: cfg.tracerProvider,
		})
		if err != nil {
			if ownsStore {
				_ = store.Close()
			}
			return nil, err
		}
		e.catalog = svc
	}

	return e, nil
}

// Catalog returns the cached catalog service, or nil when no fetcher was
// configured.
func (e *Engine) Catalog() *catalog.Service {
	return e.catalog
}

// Cart returns the persisted cart store.
func (e *Engine) Cart() *cart.Store {
	return e.cart
}

// Store returns the underlying key-value store.
func (e *Engine) Store() kv.Store {
	return e.store
}

// MetricsHandler returns an http.Handler that serves Prometheus metrics.
func (e *Engine) MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// Close releases the catalog's caches and, when the engine opened the
// backing store itself, the store too.
func (e *Engine) Close() error {
	var errs []error
	if e.catalog != nil {
		errs = append(errs, e.catalog.Close())
	}
	if e.ownsStore {
		errs = append(errs, e.store.Close())
	}
	return errors.Join(errs...)
}
