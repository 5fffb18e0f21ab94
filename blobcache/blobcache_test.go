package blobcache

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/discochess/hoard"
)

func TestSetGet_RoundTrip(t *testing.T) {
	for _, compression := range []Compression{Zstd, Gzip, None} {
		t.Run(string(compression), func(t *testing.T) {
			cache, err := New[string](1<<20, compression)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer cache.Close()

			original := bytes.Repeat([]byte("payload data "), 100)
			if err := cache.Set("doc", original); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, err := cache.Get(context.Background(), "doc", nil)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if !bytes.Equal(got, original) {
				t.Error("Get() returned different bytes than stored")
			}
		})
	}
}

func TestNew_UnknownCompression(t *testing.T) {
	if _, err := New[string](10, Compression("lz4")); err == nil {
		t.Fatal("New() with unknown compression succeeded, want error")
	}
}

func TestWeight_UsesCompressedSize(t *testing.T) {
	cache, err := New[string](1<<20, Zstd)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cache.Close()

	// Highly repetitive data compresses far below its raw size.
	original := bytes.Repeat([]byte("A"), 100000)
	if err := cache.Set("blob", original); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if w := cache.Weight(); w <= 0 || w >= int64(len(original)) {
		t.Errorf("Weight() = %d, want in (0, %d)", w, len(original))
	}
}

func TestGet_LoaderCoalesced(t *testing.T) {
	cache, err := New[string](1<<20, Gzip)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cache.Close()

	var calls atomic.Int64
	loader := func(ctx context.Context, key string) ([]byte, error) {
		calls.Add(1)
		return []byte("loaded value"), nil
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		got, err := cache.Get(ctx, "k", loader)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != "loaded value" {
			t.Errorf("Get() = %q, want %q", got, "loaded value")
		}
	}
	if calls.Load() != 1 {
		t.Errorf("loader invoked %d times, want 1", calls.Load())
	}
}

func TestGet_NoLoader_NotFound(t *testing.T) {
	cache, err := New[string](10, None)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cache.Close()

	if _, err := cache.Get(context.Background(), "missing", nil); !errors.Is(err, hoard.ErrNotFound) {
		t.Errorf("Get() error = %v, want hoard.ErrNotFound", err)
	}
}

func TestSet_OverCapacityRejected(t *testing.T) {
	cache, err := New[string](8, None)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cache.Close()

	if err := cache.Set("big", []byte("more than eight bytes")); !errors.Is(err, hoard.ErrCapacityExceeded) {
		t.Errorf("Set() error = %v, want hoard.ErrCapacityExceeded", err)
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d after rejected insert, want 0", cache.Len())
	}
}
