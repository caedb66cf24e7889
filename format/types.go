// Package format defines the small, shared enumerations used at package
// boundaries across tsz.
package format

// CompressionType selects the codec a sealed block's bit buffer is run
// through for at-rest storage. It never affects the Gorilla/delta-of-delta
// encoding itself (§4.2/§4.3 of the spec) — compression is a second,
// optional pass over already-encoded bytes.
type CompressionType uint8

const (
	CompressionNone   CompressionType = 0x1 // CompressionNone applies no further compression.
	CompressionZstd   CompressionType = 0x2 // CompressionZstd applies Zstandard compression.
	CompressionS2     CompressionType = 0x3 // CompressionS2 applies S2 (Snappy-compatible) compression.
	CompressionLZ4    CompressionType = 0x4 // CompressionLZ4 applies LZ4 compression.
	CompressionSnappy CompressionType = 0x5 // CompressionSnappy applies Snappy compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionSnappy:
		return "Snappy"
	default:
		return "Unknown"
	}
}
