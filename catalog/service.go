package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/roastworks/storefront/breaker"
	"github.com/roastworks/storefront/cache"
	"github.com/roastworks/storefront/kv"
	"github.com/roastworks/storefront/logx"
	"github.com/roastworks/storefront/retry"
)

// Namespace is the key prefix under which cached catalog pages live in the
// backing store.
const Namespace = "catalog:pages:"

// Config assembles a [Service].
type Config struct {
	// Fetcher is the upstream catalog collaborator. Required.
	Fetcher Fetcher

	// Store is the durable backend for cached pages. Required.
	Store kv.Store

	// TTL overrides the default 30-minute page lifetime.
	TTL time.Duration

	// L1Size enables an in-process front cache holding up to L1Size pages.
	// Zero disables it.
	L1Size int64

	// FetchRPS/FetchBurst gate upstream fetches through a token bucket.
	// Zero RPS disables the gate.
	FetchRPS   float64
	FetchBurst int

	// Breaker guards the fetcher. A zero FailureThreshold disables it.
	Breaker breaker.Config

	// Retry wraps individual fetch attempts. A zero config means a single
	// attempt.
	Retry retry.Config

	// Logger receives cache corruption and write-failure reports.
	Logger logx.Logger

	// TracerProvider supplies the tracer for read-path spans. When nil the
	// global otel.GetTracerProvider() is used.
	TracerProvider trace.TracerProvider
}

// Service serves catalog pages cache-first: an optional in-process front,
// then the durable TTL cache, then the upstream fetcher. Concurrent refills
// of the same key are deduplicated; a refill only ever writes to the key it
// was started for, so a slow fetch cannot clobber a different query's entry.
type Service struct {
	fetcher  Fetcher
	store    *cache.Store[Page]
	l1       *cache.L1
	ttl      time.Duration
	limiter  *rate.Limiter
	brk      *breaker.Breaker
	retryCfg retry.Config
	log      logx.Logger
	tp       trace.TracerProvider

	mu    sync.Mutex
	loads map[string]*call
}

// call deduplicates concurrent refills for the same key.
type call struct {
	wg   sync.WaitGroup
	page Page
	err  error
}

// NewService creates a Service from cfg.
func NewService(cfg Config) (*Service, error) {
	if cfg.Fetcher == nil {
		return nil, errors.New("catalog: Config.Fetcher is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("catalog: Config.Store is required")
	}
	log := cfg.Logger
	if log == nil {
		log = logx.Nop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	s := &Service{
		fetcher:  cfg.Fetcher,
		store:    cache.New[Page](cfg.Store, Namespace, cache.WithTTL(ttl), cache.WithLogger(log)),
		ttl:      ttl,
		retryCfg: cfg.Retry,
		log:      log,
		tp:       cfg.TracerProvider,
		loads:    make(map[string]*call),
	}
	if cfg.L1Size > 0 {
		l1, err := cache.NewL1(cfg.L1Size)
		if err != nil {
			return nil, err
		}
		s.l1 = l1
	}
	if cfg.FetchRPS > 0 {
		burst := max(cfg.FetchBurst, 1)
		s.limiter = rate.NewLimiter(rate.Limit(cfg.FetchRPS), burst)
	}
	if cfg.Breaker.FailureThreshold > 0 {
		s.brk = breaker.New(cfg.Breaker)
	}
	return s, nil
}

// List returns the catalog page for q, from cache when fresh. On upstream
// failure it returns an empty page together with a [*FetchError]; it never
// panics across the boundary.
func (s *Service) List(ctx context.Context, q Query) (Page, error) {
	ctx, span := s.tracer().Start(ctx, "catalog.List")
	defer span.End()
	span.SetAttributes(
		attribute.Int("catalog.page", q.Page),
		attribute.Int("catalog.limit", q.Limit),
	)

	key := q.Key()

	// In-process front.
	if s.l1 != nil {
		if raw, ok := s.l1.Get(key); ok {
			var page Page
			if err := json.Unmarshal(raw, &page); err == nil {
				cacheHits.WithLabelValues("memory").Inc()
				span.SetAttributes(attribute.String("cache.tier", "memory"))
				return page, nil
			}
			s.l1.Del(key)
		}
	}

	// Durable TTL cache.
	if e, ok := s.store.Get(key); ok && !s.store.Expired(e) {
		cacheHits.WithLabelValues("durable").Inc()
		span.SetAttributes(attribute.String("cache.tier", "durable"))
		s.promote(key, e)
		return e.Data, nil
	}

	cacheMisses.Inc()
	page, err := s.refill(ctx, q, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "refill failed")
		return page, err
	}
	span.SetAttributes(attribute.String("cache.tier", "none"))
	return page, nil
}

// ClearCache removes every cached page from both tiers and returns the
// number of durable entries removed. Operational surface, not part of the
// steady-state contract.
func (s *Service) ClearCache() (int, error) {
	if s.l1 != nil {
		s.l1.Clear()
	}
	return s.store.ClearAll()
}

// Close releases the in-process cache, if any.
func (s *Service) Close() error {
	if s.l1 != nil {
		s.l1.Close()
	}
	return nil
}

// refill fetches the full catalog, filters and paginates it, and writes the
// page through both cache tiers. Concurrent callers for the same key share
// one fetch.
func (s *Service) refill(ctx context.Context, q Query, key string) (Page, error) {
	s.mu.Lock()
	if c, ok := s.loads[key]; ok {
		s.mu.Unlock()
		c.wg.Wait()
		return c.page, c.err
	}
	c := &call{}
	c.wg.Add(1)
	s.loads[key] = c
	s.mu.Unlock()

	c.page, c.err = s.load(ctx, q, key)
	c.wg.Done()

	s.mu.Lock()
	delete(s.loads, key)
	s.mu.Unlock()

	return c.page, c.err
}

func (s *Service) load(ctx context.Context, q Query, key string) (Page, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			fetchFailures.Inc()
			return emptyPage(q), &FetchError{Err: err}
		}
	}

	fetches.Inc()
	products, err := s.fetch(ctx)
	if err != nil {
		fetchFailures.Inc()
		if errors.Is(err, breaker.ErrOpen) {
			err = ErrUpstreamUnavailable
		}
		s.log.Warnf("catalog: fetch failed: %v", err)
		return emptyPage(q), &FetchError{Err: err}
	}

	filtered := Apply(products, q.Filter)
	page := Paginate(filtered, q.Page, q.Limit)

	filters, _ := json.Marshal(q.Filter)
	s.store.Set(key, page, filters)
	if s.l1 != nil {
		if raw, err := json.Marshal(page); err == nil {
			s.l1.Set(key, raw, s.ttl)
		}
	}
	return page, nil
}

// fetch runs the upstream call through the breaker and retry wrappers.
func (s *Service) fetch(ctx context.Context) ([]Product, error) {
	do := func() ([]Product, error) {
		return retry.Do(ctx, s.retryCfg, s.fetcher.FetchCatalog)
	}
	if s.brk == nil {
		return do()
	}
	var products []Product
	err := s.brk.Do(func() error {
		var err error
		products, err = do()
		return err
	})
	return products, err
}

// promote copies a durable hit into the in-process front with whatever
// lifetime the entry has left.
func (s *Service) promote(key string, e *cache.Entry[Page]) {
	if s.l1 == nil {
		return
	}
	remaining := time.Until(time.UnixMilli(e.Expiry))
	if remaining <= 0 {
		return
	}
	if raw, err := json.Marshal(e.Data); err == nil {
		s.l1.Set(key, raw, remaining)
	}
}

func (s *Service) tracer() trace.Tracer {
	tp := s.tp
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer("github.com/roastworks/storefront/catalog")
}

func emptyPage(q Query) Page {
	return Page{
		Items: []Product{},
		Pagination: Pagination{
			Page:  q.Page,
			Limit: q.Limit,
		},
	}
}
