// Package zstdcodec provides a zstd compression codec.
package zstdcodec

import (
	"github.com/klauspost/compress/zstd"

	"github.com/discochess/hoard/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements zstd compression using shared encoder and decoder
// instances, which are safe for concurrent use.
type Codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// New returns a new zstd codec.
func New() (*Codec, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Compress returns the zstd-compressed form of data.
func (c *Codec) Compress(data []byte) ([]byte, error) {
	return c.enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decompress reverses Compress.
func (c *Codec) Decompress(data []byte) ([]byte, error) {
	return c.dec.DecodeAll(data, nil)
}

// Name returns "zstd".
func (c *Codec) Name() string {
	return "zstd"
}
