package catalog

import (
	"context"
	"errors"
)

// ErrUpstreamUnavailable reports that the fetch was rejected before reaching
// the upstream, for example because the circuit breaker is open.
var ErrUpstreamUnavailable = errors.New("catalog: upstream unavailable")

// Fetcher is the external catalog collaborator. It returns the full product
// collection; filtering and pagination happen on this side of the boundary.
type Fetcher interface {
	FetchCatalog(ctx context.Context) ([]Product, error)
}

// FetcherFunc adapts a plain function to the [Fetcher] interface.
type FetcherFunc func(ctx context.Context) ([]Product, error)

// FetchCatalog calls f.
func (f FetcherFunc) FetchCatalog(ctx context.Context) ([]Product, error) {
	return f(ctx)
}

// FetchError wraps an upstream catalog failure. [Service.List] returns it
// together with an empty page so display layers can fall back and offer a
// retry instead of crashing.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "catalog: fetch failed: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
