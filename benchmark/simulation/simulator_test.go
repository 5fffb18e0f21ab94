package simulation

import (
	"math/rand/v2"
	"testing"

	"github.com/discochess/hoard"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestUniformTrace(t *testing.T) {
	trace := UniformTrace(testRand(), 50, 1000)

	if len(trace) != 1000 {
		t.Fatalf("len(trace) = %d, want 1000", len(trace))
	}
	for i, k := range trace {
		if k < 0 || k >= 50 {
			t.Fatalf("trace[%d] = %d, outside [0, 50)", i, k)
		}
	}
}

func TestZipfTrace_SkewsTowardLowKeys(t *testing.T) {
	trace := ZipfTrace(testRand(), 1000, 10000, 1.2)

	var low int
	for _, k := range trace {
		if k < 100 {
			low++
		}
	}
	// With s=1.2 the hot 10% of the key space dominates accesses.
	if low <= len(trace)/2 {
		t.Errorf("low-key accesses = %d of %d, want majority", low, len(trace))
	}
}

func TestRun_AllPoliciesComplete(t *testing.T) {
	sim := NewSimulator(100, 500, hoard.LRU, hoard.LFU, hoard.FIFO)
	trace := ZipfTrace(testRand(), 1000, 5000, 1.1)

	results, err := sim.Run(trace)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, kind := range []hoard.PolicyKind{hoard.LRU, hoard.LFU, hoard.FIFO} {
		res, ok := results[string(kind)]
		if !ok {
			t.Fatalf("missing result for %s", kind)
		}
		if res.Lookups != len(trace) {
			t.Errorf("%s Lookups = %d, want %d", kind, res.Lookups, len(trace))
		}
		if res.Hits+res.Misses != int64(len(trace)) {
			t.Errorf("%s hits+misses = %d, want %d", kind, res.Hits+res.Misses, len(trace))
		}
		if len(res.WindowHitRates) != len(trace)/500 {
			t.Errorf("%s window samples = %d, want %d", kind, len(res.WindowHitRates), len(trace)/500)
		}
	}
}

func TestRun_SkewedTraceFavorsRecencyAwarePolicies(t *testing.T) {
	// On a zipf trace the hot set fits the cache, so LRU and LFU should
	// comfortably beat FIFO, which keeps evicting hot keys.
	sim := NewSimulator(50, 0, hoard.LRU, hoard.FIFO)
	trace := ZipfTrace(testRand(), 5000, 20000, 1.3)

	results, err := sim.Run(trace)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	lru := results[string(hoard.LRU)].HitRate()
	fifo := results[string(hoard.FIFO)].HitRate()
	if lru < fifo {
		t.Errorf("LRU hit rate %.1f%% below FIFO %.1f%% on a recency-skewed trace", lru, fifo)
	}
}
