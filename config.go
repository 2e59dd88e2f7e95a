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

// config holds the internal configuration assembled via functional options.
type config struct {
	store     kv.Store
	openStore func() (kv.Store, error)

	fetcher        catalog.Fetcher
	ttl            time.Duration
	l1Size         int64
	fetchRPS       float64
	fetchBurst     int
	breaker        breaker.Config
	retry          retry.Config
	logger         logx.Logger
	tracerProvider trace.TracerProvider
}
