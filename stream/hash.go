package stream

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/Neumenon/etfer/etf"
)

// Digest is a BLAKE3-256 state digest.
type Digest [32]byte

// digestEncoder produces the canonical form that digests are taken
// over: sorted keys, no compression.
var digestEncoder = etf.NewEncoder(etf.EncodeOptions{SortKeys: true})

// StateDigest returns the digest of v's canonical encoding. Equal
// values always have equal digests regardless of map iteration order.
func StateDigest(v *etf.Value) (Digest, error) {
	data, err := digestEncoder.Encode(v)
	if err != nil {
		return Digest{}, fmt.Errorf("stream: digest: %w", err)
	}
	return DigestBytes(data), nil
}

// DigestBytes returns the digest of raw bytes.
func DigestBytes(data []byte) Digest {
	return blake3.Sum256(data)
}

// String returns the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex digits, for logs.
func (d Digest) Short() string {
	return d.String()[:12]
}

// ParseDigest parses a 64-character hex digest, with or without a
// "blake3:" prefix.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) > 7 && s[:7] == "blake3:" {
		s = s[7:]
	}
	if len(s) != 2*len(d) {
		return d, fmt.Errorf("stream: digest %q: want %d hex digits", s, 2*len(d))
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, fmt.Errorf("stream: digest %q: %w", s, err)
	}
	return d, nil
}
