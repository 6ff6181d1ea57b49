package stream

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstdEncoder and zstdDecoder are shared by every Writer and Reader.
// Both are safe for concurrent use through EncodeAll and DecodeAll. The
// shared decoder is capped at MaxPayloadSize; a Reader allowing more
// builds its own.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("stream: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = newZstdDecoder(MaxPayloadSize)
	if err != nil {
		panic("stream: zstd decoder initialization failed: " + err.Error())
	}
}

func newZstdDecoder(limit int) (*zstd.Decoder, error) {
	return zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(uint64(limit)),
	)
}

// compressPayload returns the zstd form of data and true, or false when
// compression does not make it smaller.
func compressPayload(data []byte) ([]byte, bool) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, false
	}
	return compressed, true
}

func decompressPayload(dec *zstd.Decoder, compressed []byte, limit int) ([]byte, error) {
	out, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if len(out) > limit {
		return nil, fmt.Errorf("decompressed payload too large: %d > %d", len(out), limit)
	}
	return out, nil
}
