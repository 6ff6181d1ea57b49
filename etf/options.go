package etf

import "github.com/klauspost/compress/zlib"

// DefaultMaxDepth bounds container nesting for both directions.
const DefaultMaxDepth = 512

// DefaultMaxDecompressedSize bounds the declared size of a compressed
// term (64 MiB).
const DefaultMaxDecompressedSize = 64 * 1024 * 1024

// LevelStored selects zlib stored blocks (zlib.NoCompression) for the
// compressed envelope. A zero CompressLevel means the default level, so
// the stored level needs its own value.
const LevelStored = -10

// DecodeOptions configures decoding and scanning.
type DecodeOptions struct {
	// MaxDepth is the maximum container nesting. Zero means
	// DefaultMaxDepth; a negative value disables the limit.
	MaxDepth int

	// MaxDecompressedSize caps the declared uncompressed size of a
	// compressed term. Zero means DefaultMaxDecompressedSize.
	MaxDecompressedSize int

	// RejectTrailing makes bytes after the top-level term an error.
	// When false they are ignored.
	RejectTrailing bool
}

// DefaultDecodeOptions returns the default decode options.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		MaxDepth:            DefaultMaxDepth,
		MaxDecompressedSize: DefaultMaxDecompressedSize,
	}
}

func (o DecodeOptions) maxDepth() int {
	if o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o DecodeOptions) maxDecompressed() int {
	if o.MaxDecompressedSize <= 0 {
		return DefaultMaxDecompressedSize
	}
	return o.MaxDecompressedSize
}

// EncodeOptions configures encoding.
type EncodeOptions struct {
	// SortKeys emits object members in byte order of their keys. When
	// false, members follow Go map iteration order and two encodings of
	// the same object may differ byte-wise.
	SortKeys bool

	// Compress wraps the term in a zlib-compressed envelope (tag 80).
	Compress bool

	// CompressLevel is the zlib level used when Compress is set. Zero
	// means zlib.DefaultCompression; use LevelStored for no compression.
	CompressLevel int

	// MaxDepth is the maximum container nesting. Zero means
	// DefaultMaxDepth; a negative value disables the limit.
	MaxDepth int
}

// DefaultEncodeOptions returns the default encode options.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		CompressLevel: zlib.DefaultCompression,
		MaxDepth:      DefaultMaxDepth,
	}
}

func (o EncodeOptions) maxDepth() int {
	if o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o EncodeOptions) compressLevel() int {
	switch o.CompressLevel {
	case 0:
		return zlib.DefaultCompression
	case LevelStored:
		return zlib.NoCompression
	}
	return o.CompressLevel
}

// depthExceeded reports whether depth is beyond limit; a negative
// limit never trips.
func depthExceeded(depth, limit int) bool {
	return limit >= 0 && depth > limit
}
