// Package codec provides compression for cached byte values.
package codec

// Codec compresses and decompresses in-memory byte values.
type Codec interface {
	// Compress returns the compressed form of data.
	Compress(data []byte) ([]byte, error)
	// Decompress reverses Compress.
	Decompress(data []byte) ([]byte, error)
	// Name returns the codec name (e.g. "zstd"). Empty for no compression.
	Name() string
}
