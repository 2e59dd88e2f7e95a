package catalog

import (
	"net/url"
	"strconv"
)

// Query identifies one logical catalog request: a page window plus a filter
// descriptor.
type Query struct {
	Page   int
	Limit  int
	Filter Filter
}

// Key returns the deterministic cache key suffix for the query. Encoding
// goes through url.Values so field order is stable (sorted) and values are
// escaped — identical logical queries always produce the same key and
// distinct queries never collide.
func (q Query) Key() string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Filter.Search != "" {
		v.Set("search", q.Filter.Search)
	}
	if q.Filter.CategoryID != "" {
		v.Set("category", q.Filter.CategoryID)
	}
	if q.Filter.RoastID != "" {
		v.Set("roast", q.Filter.RoastID)
	}
	if q.Filter.WeightRange != "" {
		v.Set("weight", q.Filter.WeightRange)
	}
	return v.Encode()
}
