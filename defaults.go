package storefront

import "github.com/roastworks/storefront/logx"

// DefaultOptions returns the recommended set of options for production use:
// a hot-page front cache and standard-library logging. Additional defaults
// may be added in future versions.
func DefaultOptions() []Option {
	return []Option{
		WithL1(1024),
		WithLogger(logx.Std()),
	}
}
