// Package noopcodec provides a pass-through codec.
package noopcodec

import (
	"github.com/discochess/hoard/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec stores values uncompressed.
type Codec struct{}

// New returns a new no-op codec.
func New() *Codec {
	return &Codec{}
}

// Compress returns data unchanged.
func (c *Codec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
func (c *Codec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// Name returns the empty string.
func (c *Codec) Name() string {
	return ""
}
