// Package hoard provides an in-process, weight-bounded cache with
// single-flight load coalescing and pluggable eviction.
//
// Concurrent misses for the same key share one invocation of the loader, so
// an expensive value is computed at most once no matter how many callers ask
// for it at the same time. Entries carry an integer weight counted against a
// fixed capacity; when the total weight overflows, entries are evicted
// synchronously according to the configured policy (LRU, LFU or FIFO).
//
// Example usage:
//
//	cache, err := hoard.New[string, []byte](1<<20,
//	    hoard.WithPolicy[string, []byte](hoard.LRU),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
//
//	data, err := cache.GetWith(ctx, "report:2024", fetchReport)
package hoard

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/hoard/internal/entrystore"
	"github.com/discochess/hoard/internal/flight"
	"github.com/discochess/hoard/internal/policy"
	"github.com/discochess/hoard/internal/policy/fifo"
	"github.com/discochess/hoard/internal/policy/lfu"
	"github.com/discochess/hoard/internal/policy/lru"
	"github.com/discochess/hoard/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrNotFound indicates a miss on a lookup that has no loader to fall
	// back to. Loaders are never invoked for loaderless lookups.
	ErrNotFound = errors.New("hoard: key not found")

	// ErrCapacityExceeded indicates a single entry's weight exceeds the
	// total configured capacity. The cache is left unmodified.
	ErrCapacityExceeded = errors.New("hoard: entry weight exceeds capacity")

	// ErrClosed indicates the cache has been closed.
	ErrClosed = errors.New("hoard: cache closed")

	// ErrInvalidCapacity indicates a non-positive capacity.
	ErrInvalidCapacity = errors.New("hoard: capacity must be positive")

	// ErrInvalidCompactionPercent indicates a compaction percentage outside (0, 1].
	ErrInvalidCompactionPercent = errors.New("hoard: compaction percent must be in (0, 1]")
)

// LoaderFunc computes the value for a missing key. Errors are propagated to
// every caller waiting on the same key and are never cached.
type LoaderFunc[K cmp.Ordered, V any] func(ctx context.Context, key K) (V, error)

// EvictionCallback is invoked exactly once per removed entry, whether the
// removal came from compaction, Remove, Clear or Close. It runs outside the
// cache lock, so it may call back into the cache.
type EvictionCallback[K cmp.Ordered, V any] func(key K, value V)

// WeigherFunc computes the weight of an entry inserted by Set or by a
// successful load. Weights must be positive.
type WeigherFunc[K cmp.Ordered, V any] func(key K, value V) int64

// Cache is a weight-bounded in-process cache.
// A Cache is safe for concurrent use by multiple goroutines.
type Cache[K cmp.Ordered, V any] struct {
	capacity       int64
	compactPercent float64
	loader         LoaderFunc[K, V]
	onEviction     EvictionCallback[K, V]
	weigher        WeigherFunc[K, V]
	collector      stats.Collector
	logger         *zap.Logger

	// mu guards store and pol for the duration of lookup and
	// insert/compaction sequences. It is never held across a loader call.
	mu    sync.Mutex
	store *entrystore.Store[K, V]
	pol   policy.Policy[K]

	flights flight.Group[V]

	closed atomic.Bool

	hits       atomic.Int64
	misses     atomic.Int64
	loads      atomic.Int64
	loadErrors atomic.Int64
	evictions  atomic.Int64
}

// New creates a Cache with the given capacity and options.
// Capacity is the maximum total weight of resident entries and must be positive.
func New[K cmp.Ordered, V any](capacity int64, opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.compactPercent <= 0 || cfg.compactPercent > 1 {
		return nil, ErrInvalidCompactionPercent
	}

	pol, err := newPolicy[K](cfg.policy)
	if err != nil {
		return nil, err
	}

	c := &Cache[K, V]{
		capacity:       capacity,
		compactPercent: cfg.compactPercent,
		loader:         cfg.loader,
		onEviction:     cfg.onEviction,
		weigher:        cfg.weigher,
		collector:      cfg.collector,
		logger:         cfg.logger,
		store:          entrystore.New[K, V](),
		pol:            pol,
	}

	c.logger.Debug("cache initialized",
		zap.Int64("capacity", capacity),
		zap.String("policy", pol.Name()),
		zap.Float64("compactPercent", cfg.compactPercent),
	)

	return c, nil
}

// newPolicy maps a PolicyKind to its implementation.
func newPolicy[K cmp.Ordered](kind PolicyKind) (policy.Policy[K], error) {
	switch kind {
	case LRU:
		return lru.New[K](), nil
	case LFU:
		return lfu.New[K](), nil
	case FIFO:
		return fifo.New[K](), nil
	default:
		return nil, fmt.Errorf("hoard: unknown eviction policy %q", kind)
	}
}

// Get returns the value for key, loading it with the construction-bound
// loader on a miss. Without a bound loader, a miss returns ErrNotFound.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, error) {
	return c.GetWith(ctx, key, c.loader)
}

// GetWith returns the value for key, loading it with loader on a miss.
// Concurrent misses for the same key share a single loader invocation and
// all receive its result. A nil loader turns a miss into ErrNotFound.
//
// If ctx is cancelled while waiting on a load started by another caller,
// only this caller detaches; the load completes for the remaining waiters.
func (c *Cache[K, V]) GetWith(ctx context.Context, key K, loader LoaderFunc[K, V]) (V, error) {
	var zero V
	if c.closed.Load() {
		return zero, ErrClosed
	}

	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	c.misses.Add(1)
	c.collector.IncCounter(stats.MetricMisses, 1)

	if loader == nil {
		return zero, ErrNotFound
	}

	v, _, err := c.flights.Do(ctx, fmt.Sprint(key), func() (V, error) {
		// Another caller may have inserted the value between the miss above
		// and this flight winning the pending-load slot.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		return c.load(ctx, key, loader)
	})
	return v, err
}

// load invokes loader and inserts the result on success.
func (c *Cache[K, V]) load(ctx context.Context, key K, loader LoaderFunc[K, V]) (V, error) {
	c.loads.Add(1)
	c.collector.IncCounter(stats.MetricLoads, 1)

	// The load outlives the creating caller's cancellation so that waiters
	// coalesced onto it are not starved by one caller's timeout.
	start := time.Now()
	v, err := loader(context.WithoutCancel(ctx), key)
	c.collector.ObserveHistogram(stats.MetricLoadSeconds, time.Since(start).Seconds())

	if err != nil {
		c.loadErrors.Add(1)
		c.collector.IncCounter(stats.MetricLoadErrors, 1)
		c.logger.Debug("load failed", zap.Any("key", key), zap.Error(err))
		var zero V
		return zero, err
	}

	if err := c.insert(key, v, c.weigher(key, v)); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}

// lookup returns the value for key if present, recording the access.
func (c *Cache[K, V]) lookup(key K) (V, bool) {
	c.mu.Lock()
	e, ok := c.store.Get(key)
	if !ok {
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	c.store.Touch(key)
	c.pol.RecordAccess(key)
	v := e.Value
	c.mu.Unlock()

	c.hits.Add(1)
	c.collector.IncCounter(stats.MetricHits, 1)
	return v, true
}

// Set stores value under key, replacing any existing entry. The entry weight
// comes from the configured weigher (default 1).
func (c *Cache[K, V]) Set(key K, value V) error {
	return c.SetWeighted(key, value, c.weigher(key, value))
}

// SetWeighted stores value under key with an explicit weight, replacing any
// existing entry and compacting if the capacity is exceeded. Weights below 1
// count as 1. A weight larger than the total capacity fails with
// ErrCapacityExceeded and leaves the cache unmodified.
func (c *Cache[K, V]) SetWeighted(key K, value V, weight int64) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.insert(key, value, weight)
}

// removal pairs a key with the value it held, for callback dispatch outside
// the cache lock.
type removal[K cmp.Ordered, V any] struct {
	key   K
	value V
}

// insert performs the insert-then-compact sequence under the cache lock and
// fires eviction callbacks after releasing it.
func (c *Cache[K, V]) insert(key K, value V, weight int64) error {
	// Weights below 1 would break capacity accounting; an empty value still
	// occupies an entry.
	if weight < 1 {
		weight = 1
	}
	if weight > c.capacity {
		return ErrCapacityExceeded
	}

	c.mu.Lock()
	if _, replaced := c.store.Put(key, value, weight); replaced {
		// An overwrite restarts the entry's eviction bookkeeping.
		c.pol.RecordEviction(key)
	}
	c.pol.RecordInsert(key)

	var evicted []removal[K, V]
	if c.store.TotalWeight() > c.capacity {
		evicted = c.compact()
	}

	entries := c.store.Len()
	total := c.store.TotalWeight()
	c.mu.Unlock()

	c.collector.SetGauge(stats.MetricEntries, int64(entries))
	c.collector.SetGauge(stats.MetricWeight, total)
	c.notifyEvicted(evicted)
	return nil
}

// compact removes policy victims until the total weight drops to the
// compaction target. Called with c.mu held.
func (c *Cache[K, V]) compact() []removal[K, V] {
	target := c.capacity - int64(math.Floor(float64(c.capacity)*c.compactPercent))

	var evicted []removal[K, V]
	victims := c.pol.Victims(c.store.Len())
	for _, k := range victims {
		if c.store.TotalWeight() <= target {
			break
		}
		e, ok := c.store.Delete(k)
		if !ok {
			continue
		}
		c.pol.RecordEviction(k)
		evicted = append(evicted, removal[K, V]{key: k, value: e.Value})
	}

	c.logger.Debug("compacted",
		zap.Int("evicted", len(evicted)),
		zap.Int64("target", target),
		zap.Int64("totalWeight", c.store.TotalWeight()),
	)
	return evicted
}

// notifyEvicted updates eviction accounting and runs the eviction callback
// once per removed entry. Must be called without holding c.mu.
func (c *Cache[K, V]) notifyEvicted(evicted []removal[K, V]) {
	for _, r := range evicted {
		c.evictions.Add(1)
		c.collector.IncCounter(stats.MetricEvictions, 1)
		if c.onEviction != nil {
			c.onEviction(r.key, r.value)
		}
	}
}

// Remove deletes the entry for key, reporting whether an entry was removed.
// The eviction callback fires exactly once for a removed entry.
func (c *Cache[K, V]) Remove(key K) bool {
	if c.closed.Load() {
		return false
	}

	c.mu.Lock()
	e, ok := c.store.Delete(key)
	if ok {
		c.pol.RecordEviction(key)
	}
	entries := c.store.Len()
	total := c.store.TotalWeight()
	c.mu.Unlock()

	if !ok {
		return false
	}

	c.collector.SetGauge(stats.MetricEntries, int64(entries))
	c.collector.SetGauge(stats.MetricWeight, total)
	c.notifyEvicted([]removal[K, V]{{key: key, value: e.Value}})
	return true
}

// Clear removes all entries, firing the eviction callback once per entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	var evicted []removal[K, V]
	c.store.Each(func(k K, e *entrystore.Entry[V]) {
		evicted = append(evicted, removal[K, V]{key: k, value: e.Value})
	})
	c.store.Clear()
	c.pol.Reset()
	c.mu.Unlock()

	c.collector.SetGauge(stats.MetricEntries, 0)
	c.collector.SetGauge(stats.MetricWeight, 0)
	c.notifyEvicted(evicted)
}

// Close clears the cache and marks it closed. Subsequent operations and a
// second Close return ErrClosed.
func (c *Cache[K, V]) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	c.Clear()
	c.logger.Debug("cache closed")
	return nil
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// Weight returns the total weight of resident entries.
func (c *Cache[K, V]) Weight() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.TotalWeight()
}

// Capacity returns the configured capacity.
func (c *Cache[K, V]) Capacity() int64 {
	return c.capacity
}

// Policy returns the name of the configured eviction policy.
func (c *Cache[K, V]) Policy() string {
	return c.pol.Name()
}

// Stats returns a snapshot of cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	entries := c.store.Len()
	total := c.store.TotalWeight()
	c.mu.Unlock()

	return Stats{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Loads:      c.loads.Load(),
		LoadErrors: c.loadErrors.Load(),
		Evictions:  c.evictions.Load(),
		Entries:    entries,
		Weight:     total,
	}
}

// Stats contains cache statistics.
type Stats struct {
	Hits       int64
	Misses     int64
	Loads      int64
	LoadErrors int64
	Evictions  int64
	Entries    int
	Weight     int64
}

// HitRate returns the cache hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}
