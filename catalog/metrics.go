package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_catalog_cache_hits_total",
		Help: "Catalog list requests served from cache, by tier.",
	}, []string{"tier"})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_catalog_cache_misses_total",
		Help: "Catalog list requests that required an upstream fetch.",
	})

	fetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_catalog_fetch_total",
		Help: "Upstream catalog fetch attempts.",
	})

	fetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_catalog_fetch_failures_total",
		Help: "Upstream catalog fetches that failed or were rejected.",
	})
)
