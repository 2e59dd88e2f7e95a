package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// writeFailures counts best-effort cache writes that were dropped, either at
// serialization or in the backing store.
var writeFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "storefront_cache_write_failures_total",
	Help: "Cache writes dropped due to serialization or storage errors.",
})
