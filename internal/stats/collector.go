// Package stats provides a unified interface for collecting cache metrics.
package stats

// Metric names used throughout the library.
const (
	MetricHits       = "hoard_hits_total"
	MetricMisses     = "hoard_misses_total"
	MetricLoads      = "hoard_loads_total"
	MetricLoadErrors = "hoard_load_errors_total"
	MetricEvictions  = "hoard_evictions_total"

	MetricEntries = "hoard_entries"
	MetricWeight  = "hoard_weight"

	MetricLoadSeconds = "hoard_load_seconds"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
