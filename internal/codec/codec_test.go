package codec_test

import (
	"bytes"
	"testing"

	"github.com/discochess/hoard/internal/codec"
	"github.com/discochess/hoard/internal/codec/gzipcodec"
	"github.com/discochess/hoard/internal/codec/noopcodec"
	"github.com/discochess/hoard/internal/codec/zstdcodec"
)

func codecs(t *testing.T) map[string]codec.Codec {
	t.Helper()
	zc, err := zstdcodec.New()
	if err != nil {
		t.Fatalf("zstdcodec.New() error = %v", err)
	}
	return map[string]codec.Codec{
		"zstd": zc,
		"gzip": gzipcodec.New(),
		"noop": noopcodec.New(),
	}
}

func TestRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"text":       []byte("Hello, World! Some compressible test data."),
		"empty":      {},
		"repetitive": bytes.Repeat([]byte("ABCDEFGHIJ"), 10000),
	}

	for name, c := range codecs(t) {
		t.Run(name, func(t *testing.T) {
			for pname, original := range payloads {
				compressed, err := c.Compress(original)
				if err != nil {
					t.Fatalf("Compress(%s) error = %v", pname, err)
				}
				decompressed, err := c.Decompress(compressed)
				if err != nil {
					t.Fatalf("Decompress(%s) error = %v", pname, err)
				}
				if !bytes.Equal(decompressed, original) {
					t.Errorf("round trip of %s payload failed", pname)
				}
			}
		})
	}
}

func TestCompression_ShrinksRepetitiveData(t *testing.T) {
	original := bytes.Repeat([]byte("ABCDEFGHIJ"), 10000)

	for name, c := range codecs(t) {
		if c.Name() == "" {
			continue // noop does not compress
		}
		t.Run(name, func(t *testing.T) {
			compressed, err := c.Compress(original)
			if err != nil {
				t.Fatalf("Compress() error = %v", err)
			}
			if len(compressed) >= len(original) {
				t.Errorf("compressed %d bytes into %d, want a reduction", len(original), len(compressed))
			}
		})
	}
}

func TestDecompress_InvalidData(t *testing.T) {
	for name, c := range codecs(t) {
		if c.Name() == "" {
			continue // noop accepts anything
		}
		t.Run(name, func(t *testing.T) {
			if _, err := c.Decompress([]byte("not compressed data")); err == nil {
				t.Error("Decompress() of garbage succeeded, want error")
			}
		})
	}
}
