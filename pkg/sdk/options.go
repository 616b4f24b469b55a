package nearby

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "valkey" or "redis"
	addrs    []string
	password string

	keyPrefix      string
	fetchBatchSize int
	fetchTimeout   time.Duration

	defaultRadiusMiles float64
	defaultLimit       int
	maxLimit           int

	sources map[EntityType]Source

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey configures the client to read candidates from a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to read candidates from a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the storage key prefix. Default: "nearby:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithFetchBatchSize sets how many documents are read per pipelined round trip.
// Default: 500.
func WithFetchBatchSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.fetchBatchSize = n
	})
}

// WithFetchTimeout bounds the candidate fetch phase of every search.
func WithFetchTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.fetchTimeout = d
	})
}

// WithLimits overrides the default radius, default page size and maximum
// page size. Non-positive values keep the built-in defaults (25, 50, 100).
func WithLimits(defaultRadiusMiles float64, defaultLimit, maxLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultRadiusMiles = defaultRadiusMiles
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	})
}

// WithSource supplies candidates of type t from a custom backend.
// It takes precedence over the store for that type.
func WithSource(t EntityType, src Source) Option {
	return optionFunc(func(c *clientConfig) {
		if c.sources == nil {
			c.sources = make(map[EntityType]Source)
		}
		c.sources[t] = src
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
