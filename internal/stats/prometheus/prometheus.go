// Package prometheus provides a Prometheus-based stats collector.
package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/discochess/hoard/internal/stats"
)

// Collector implements stats.Collector using Prometheus metrics. Metrics are
// registered lazily on first use.
type Collector struct {
	registry prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Collector{
		registry:   registry,
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
}

// IncCounter increments a counter metric.
func (c *Collector) IncCounter(name string, delta int64) {
	c.mu.Lock()
	counter, ok := c.counters[name]
	if !ok {
		counter = prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: name})
		if existing, found := register(c.registry, counter); found {
			counter = existing.(prometheus.Counter)
		}
		c.counters[name] = counter
	}
	c.mu.Unlock()

	counter.Add(float64(delta))
}

// SetGauge sets a gauge metric.
func (c *Collector) SetGauge(name string, value int64) {
	c.mu.Lock()
	gauge, ok := c.gauges[name]
	if !ok {
		gauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: name})
		if existing, found := register(c.registry, gauge); found {
			gauge = existing.(prometheus.Gauge)
		}
		c.gauges[name] = gauge
	}
	c.mu.Unlock()

	gauge.Set(float64(value))
}

// ObserveHistogram records a value in a histogram.
func (c *Collector) ObserveHistogram(name string, value float64) {
	c.mu.Lock()
	histogram, ok := c.histograms[name]
	if !ok {
		histogram = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    name,
			Help:    name,
			Buckets: prometheus.DefBuckets,
		})
		if existing, found := register(c.registry, histogram); found {
			histogram = existing.(prometheus.Histogram)
		}
		c.histograms[name] = histogram
	}
	c.mu.Unlock()

	histogram.Observe(value)
}

// register registers col with the registry. If a collector with the same
// name is already registered, the existing one is returned instead.
func register(r prometheus.Registerer, col prometheus.Collector) (prometheus.Collector, bool) {
	if err := r.Register(col); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector, true
		}
	}
	return nil, false
}
