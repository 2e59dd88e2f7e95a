package storefront

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/roastworks/storefront/breaker"
)

// EnvConfig is the engine configuration read from environment variables.
// Setting STOREFRONT_BOLT_PATH selects the bbolt backend; otherwise
// STOREFRONT_REDIS_ADDR selects Redis; with neither, state is in-memory.
type EnvConfig struct {
	BoltPath      string        `env:"STOREFRONT_BOLT_PATH"`
	RedisAddr     string        `env:"STOREFRONT_REDIS_ADDR"`
	RedisPassword string        `env:"STOREFRONT_REDIS_PASSWORD"`
	RedisDB       int           `env:"STOREFRONT_REDIS_DB"`
	CacheTTL      time.Duration `env:"STOREFRONT_CACHE_TTL"`
	L1Size        int64         `env:"STOREFRONT_L1_SIZE"`
	FetchRPS      float64       `env:"STOREFRONT_FETCH_RPS"`
	FetchBurst    int           `env:"STOREFRONT_FETCH_BURST"`

	// BreakerFailures enables the fetch circuit breaker when positive.
	BreakerFailures int           `env:"STOREFRONT_BREAKER_FAILURES"`
	BreakerTimeout  time.Duration `env:"STOREFRONT_BREAKER_TIMEOUT" envDefault:"30s"`
}

// FromEnv parses [EnvConfig] from the process environment and converts it to
// engine options. Unset variables contribute no option.
func FromEnv() ([]Option, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("storefront: parse env: %w", err)
	}
	return cfg.Options(), nil
}

// Options converts the parsed configuration to engine options.
func (c EnvConfig) Options() []Option {
	var opts []Option
	switch {
	case c.BoltPath != "":
		opts = append(opts, WithBoltStore(c.BoltPath))
	case c.RedisAddr != "":
		opts = append(opts, WithRedisStore(c.RedisAddr, c.RedisPassword, c.RedisDB))
	}
	if c.CacheTTL > 0 {
		opts = append(opts, WithCacheTTL(c.CacheTTL))
	}
	if c.L1Size > 0 {
		opts = append(opts, WithL1(c.L1Size))
	}
	if c.FetchRPS > 0 {
		opts = append(opts, WithFetchLimit(c.FetchRPS, c.FetchBurst))
	}
	if c.BreakerFailures > 0 {
		opts = append(opts, WithBreaker(breaker.Config{
			FailureThreshold:   c.BreakerFailures,
			OpenTimeout:        c.BreakerTimeout,
			HalfOpenMaxSuccess: 1,
		}))
	}
	return opts
}
