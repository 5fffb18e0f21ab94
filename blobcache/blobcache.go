// Package blobcache provides a byte-value cache that transparently
// compresses stored values and charges their compressed size against the
// cache capacity.
//
// It is a thin layer over the hoard core: values are compressed on insert,
// weighed by their compressed size, and decompressed on every hit. This
// keeps memory accounting honest for caches of serialized blobs.
package blobcache

import (
	"cmp"
	"context"
	"fmt"

	"github.com/discochess/hoard"
	"github.com/discochess/hoard/internal/codec"
	"github.com/discochess/hoard/internal/codec/gzipcodec"
	"github.com/discochess/hoard/internal/codec/noopcodec"
	"github.com/discochess/hoard/internal/codec/zstdcodec"
)

// Compression selects how stored values are compressed.
type Compression string

// Supported compression schemes.
const (
	Zstd Compression = "zstd"
	Gzip Compression = "gzip"
	None Compression = "none"
)

// LoaderFunc computes the uncompressed value for a missing key.
type LoaderFunc[K cmp.Ordered] func(ctx context.Context, key K) ([]byte, error)

// Cache is a weight-bounded cache of compressed byte values.
// A Cache is safe for concurrent use by multiple goroutines.
type Cache[K cmp.Ordered] struct {
	inner *hoard.Cache[K, []byte]
	codec codec.Codec
}

// New creates a blob cache. capacity bounds the total compressed size of
// resident values. Additional hoard options (policy, logger, stats) may be
// passed through opts.
func New[K cmp.Ordered](capacity int64, compression Compression, opts ...hoard.Option[K, []byte]) (*Cache[K], error) {
	cdc, err := newCodec(compression)
	if err != nil {
		return nil, err
	}

	opts = append(opts, hoard.WithWeigher[K, []byte](func(_ K, v []byte) int64 {
		return int64(len(v))
	}))

	inner, err := hoard.New[K, []byte](capacity, opts...)
	if err != nil {
		return nil, err
	}

	return &Cache[K]{inner: inner, codec: cdc}, nil
}

func newCodec(compression Compression) (codec.Codec, error) {
	switch compression {
	case Zstd:
		return zstdcodec.New()
	case Gzip:
		return gzipcodec.New(), nil
	case None:
		return noopcodec.New(), nil
	default:
		return nil, fmt.Errorf("blobcache: unknown compression %q", compression)
	}
}

// Get returns the decompressed value for key, loading it with loader on a
// miss. Concurrent misses for the same key share one loader invocation.
func (c *Cache[K]) Get(ctx context.Context, key K, loader LoaderFunc[K]) ([]byte, error) {
	var wrapped hoard.LoaderFunc[K, []byte]
	if loader != nil {
		wrapped = func(ctx context.Context, key K) ([]byte, error) {
			raw, err := loader(ctx, key)
			if err != nil {
				return nil, err
			}
			return c.codec.Compress(raw)
		}
	}

	compressed, err := c.inner.GetWith(ctx, key, wrapped)
	if err != nil {
		return nil, err
	}
	return c.codec.Decompress(compressed)
}

// Set stores value under key. The compressed size becomes the entry weight;
// a value whose compressed size exceeds the capacity fails with
// hoard.ErrCapacityExceeded.
func (c *Cache[K]) Set(key K, value []byte) error {
	compressed, err := c.codec.Compress(value)
	if err != nil {
		return err
	}
	return c.inner.Set(key, compressed)
}

// Remove deletes the entry for key, reporting whether an entry was removed.
func (c *Cache[K]) Remove(key K) bool {
	return c.inner.Remove(key)
}

// Clear removes all entries.
func (c *Cache[K]) Clear() {
	c.inner.Clear()
}

// Close closes the underlying cache.
func (c *Cache[K]) Close() error {
	return c.inner.Close()
}

// Len returns the number of resident entries.
func (c *Cache[K]) Len() int {
	return c.inner.Len()
}

// Weight returns the total compressed size of resident values.
func (c *Cache[K]) Weight() int64 {
	return c.inner.Weight()
}

// Stats returns a snapshot of cache statistics.
func (c *Cache[K]) Stats() hoard.Stats {
	return c.inner.Stats()
}
