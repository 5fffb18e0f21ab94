package hoard

import (
	"cmp"

	"go.uber.org/zap"

	"github.com/discochess/hoard/internal/stats"
)

// PolicyKind selects the eviction policy at construction time.
type PolicyKind string

// Supported eviction policies.
const (
	// LRU evicts the least recently used entry first.
	LRU PolicyKind = "lru"

	// LFU evicts the least frequently used entry first, breaking ties in
	// favor of the older access.
	LFU PolicyKind = "lfu"

	// FIFO evicts the oldest inserted entry first, ignoring accesses.
	FIFO PolicyKind = "fifo"
)

// Option configures a Cache.
type Option[K cmp.Ordered, V any] interface {
	apply(*config[K, V])
}

// config holds the cache configuration.
type config[K cmp.Ordered, V any] struct {
	policy         PolicyKind
	compactPercent float64
	loader         LoaderFunc[K, V]
	onEviction     EvictionCallback[K, V]
	weigher        WeigherFunc[K, V]
	collector      stats.Collector
	logger         *zap.Logger
}

// defaultConfig returns the default configuration.
func defaultConfig[K cmp.Ordered, V any]() config[K, V] {
	return config[K, V]{
		policy:         LRU,
		compactPercent: 0.05,
		weigher:        func(K, V) int64 { return 1 },
		collector:      stats.NewNoop(),
		logger:         zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc[K cmp.Ordered, V any] func(*config[K, V])

// Compile-time check that optionFunc implements Option.
var _ Option[string, any] = optionFunc[string, any](nil)

func (f optionFunc[K, V]) apply(c *config[K, V]) { f(c) }

// WithPolicy sets the eviction policy. Default is LRU.
func WithPolicy[K cmp.Ordered, V any](kind PolicyKind) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.policy = kind
	})
}

// WithCompactionPercent sets the fraction of capacity freed beyond the limit
// when compaction runs, so the very next insert does not immediately trigger
// another compaction. Must be in (0, 1]. Default is 0.05.
func WithCompactionPercent[K cmp.Ordered, V any](pct float64) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.compactPercent = pct
	})
}

// WithLoader binds a loader used by Get on cache misses.
// Callers can still supply a per-call loader via GetWith.
func WithLoader[K cmp.Ordered, V any](loader LoaderFunc[K, V]) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.loader = loader
	})
}

// WithOnEviction sets a callback invoked exactly once per removed entry.
func WithOnEviction[K cmp.Ordered, V any](fn EvictionCallback[K, V]) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.onEviction = fn
	})
}

// WithWeigher sets the function computing entry weights for Set and for
// loaded values. If not set, every entry weighs 1.
func WithWeigher[K cmp.Ordered, V any](w WeigherFunc[K, V]) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.weigher = w
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats[K cmp.Ordered, V any](col stats.Collector) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.collector = col
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger[K cmp.Ordered, V any](l *zap.Logger) Option[K, V] {
	return optionFunc[K, V](func(c *config[K, V]) {
		c.logger = l
	})
}
