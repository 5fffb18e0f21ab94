// Package simulation replays synthetic key-access traces against caches
// configured with different eviction policies and records their hit rates.
package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/discochess/hoard"
)

// Trace is a sequence of key accesses.
type Trace []int

// UniformTrace generates length accesses drawn uniformly from keys.
func UniformTrace(r *rand.Rand, keys, length int) Trace {
	trace := make(Trace, length)
	for i := range trace {
		trace[i] = r.IntN(keys)
	}
	return trace
}

// ZipfTrace generates length accesses drawn from a Zipf distribution over
// keys with skew parameter s (> 1). Low-numbered keys are the hot set.
func ZipfTrace(r *rand.Rand, keys, length int, s float64) Trace {
	zipf := rand.NewZipf(r, s, 1, uint64(keys-1))
	trace := make(Trace, length)
	for i := range trace {
		trace[i] = int(zipf.Uint64())
	}
	return trace
}

// Simulator replays traces against one cache per eviction policy.
type Simulator struct {
	capacity int64
	window   int
	policies []hoard.PolicyKind
}

// NewSimulator creates a Simulator. window is the number of accesses per
// hit-rate sample; capacity bounds each simulated cache (entry weight 1).
func NewSimulator(capacity int64, window int, policies ...hoard.PolicyKind) *Simulator {
	return &Simulator{
		capacity: capacity,
		window:   window,
		policies: policies,
	}
}

// Result contains the outcome of replaying a trace against one policy.
type Result struct {
	PolicyName string
	Lookups    int
	Hits       int64
	Misses     int64
	Evictions  int64

	// WindowHitRates holds the hit rate (percent) per window of accesses,
	// for statistical analysis across the run.
	WindowHitRates []float64
}

// HitRate returns the overall hit rate as a percentage.
func (r *Result) HitRate() float64 {
	total := r.Hits + r.Misses
	if total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(total) * 100
}

// Run replays trace once per policy and returns results keyed by policy name.
func (s *Simulator) Run(trace Trace) (map[string]*Result, error) {
	results := make(map[string]*Result, len(s.policies))

	loader := func(ctx context.Context, key int) (int, error) {
		return key, nil
	}
	ctx := context.Background()

	for _, kind := range s.policies {
		cache, err := hoard.New[int, int](s.capacity, hoard.WithPolicy[int, int](kind))
		if err != nil {
			return nil, fmt.Errorf("creating %s cache: %w", kind, err)
		}

		res := &Result{PolicyName: string(kind), Lookups: len(trace)}
		var prev hoard.Stats
		for i, key := range trace {
			if _, err := cache.GetWith(ctx, key, loader); err != nil {
				cache.Close()
				return nil, fmt.Errorf("replaying %s trace: %w", kind, err)
			}

			if s.window > 0 && (i+1)%s.window == 0 {
				st := cache.Stats()
				res.WindowHitRates = append(res.WindowHitRates, windowRate(prev, st))
				prev = st
			}
		}

		final := cache.Stats()
		res.Hits = final.Hits
		res.Misses = final.Misses
		res.Evictions = final.Evictions
		cache.Close()

		results[res.PolicyName] = res
	}

	return results, nil
}

// windowRate computes the hit rate between two stats snapshots.
func windowRate(prev, cur hoard.Stats) float64 {
	hits := cur.Hits - prev.Hits
	misses := cur.Misses - prev.Misses
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses) * 100
}
