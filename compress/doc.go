// Package compress provides compression and decompression codecs for sealed
// block payloads.
//
// This package offers multiple compression algorithms optimized for different
// characteristics of time-series data. Compression is applied at the block
// level after encoding, providing an additional layer of space savings beyond
// the bit-packed delta-of-delta and Gorilla XOR encodings.
//
// # Overview
//
// tsz applies a two-stage compression strategy:
//
//  1. **Encoding**: Exploits patterns in the data (delta-of-delta, Gorilla XOR)
//  2. **Compression**: Further reduces the encoded bit stream using a
//     general-purpose algorithm, applied once when a block is sealed
//
// The compress package implements the second stage, supporting multiple
// algorithms:
//   - None: No compression (fastest, largest)
//   - Zstd: Excellent compression ratio, moderate speed
//   - S2: Balanced compression and speed
//   - LZ4: Fast decompression, moderate compression
//   - Snappy: Very fast, modest compression ratio
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **NoOp Compression** (format.CompressionNone)
//
//	codec := compress.NewNoOpCompressor()
//	compressed, _ := codec.Compress(data)  // Returns data unchanged
//	original, _ := codec.Decompress(compressed)  // Returns data unchanged
//
// Use when:
//   - Data is already well-compressed by encoding
//   - CPU is more critical than storage
//   - Data is incompressible (random, encrypted)
//
// **Zstandard (Zstd)** (format.CompressionZstd)
//
//	codec := compress.NewZstdCompressor()
//	compressed, _ := codec.Compress(data)  // Best compression ratio
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Excellent (typically 2-4x on top of encoding)
//   - Speed: Moderate
//   - Latency: Medium (adds ~0.5-2ms for typical payloads)
//
// Use when storage cost or network bandwidth is the primary concern and
// moderate compression overhead is acceptable. Best for cold/archival blocks.
//
// **S2 (Snappy-compatible)** (format.CompressionS2)
//
//	codec := compress.NewS2Compressor()
//	compressed, _ := codec.Compress(data)  // Fast with good compression
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Good (typically 1.5-2.5x on top of encoding)
//   - Speed: Fast
//   - Latency: Low
//
// Use when a balance between ratio and speed is needed, e.g. sealing blocks
// on the hot ingestion path.
//
// **LZ4** (format.CompressionLZ4)
//
//	codec := compress.NewLZ4Compressor()
//	compressed, _ := codec.Compress(data)  // Very fast decompression
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Moderate (typically 1.3-2x on top of encoding)
//   - Speed: Very fast decompression, moderate compression
//
// Best for query-heavy workloads where decompression dominates.
//
// **Snappy** (format.CompressionSnappy)
//
//	codec := compress.NewSnappyCompressor()
//	compressed, _ := codec.Compress(data)
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Modest, but among the fastest available
//   - Speed: Very fast compression and decompression
//
// Best for write-heavy series where compression must never become the
// bottleneck.
//
// # Algorithm Selection Guide
//
// | Workload Type          | Recommended   | Reason                         |
// |------------------------|---------------|--------------------------------|
// | Storage-constrained    | Zstd          | Best compression ratio         |
// | Real-time ingestion    | S2 or Snappy  | Balanced or fastest            |
// | Query-heavy            | LZ4           | Fastest decompression          |
// | CPU-constrained        | None          | No compression overhead        |
// | Cold storage           | Zstd          | Maximize space savings         |
//
// # Thread Safety
//
// All codec implementations are thread-safe and can be safely shared across
// goroutines.
//
// # Error Handling
//
// Compression errors are rare but can occur on memory allocation failure.
// Decompression errors are more common: corrupted data, or a compressed
// format incompatible with the requested codec. Zstd decompression errors are
// wrapped with context; the other codecs return their library's error as is.
//
// # Integration
//
// A block records which CompressionType sealed it, so Block.Samples
// transparently selects the matching Decompressor:
//
//	b := block.New(7200)
//	_ = b.Append(ts, v)
//	_ = b.Seal(format.CompressionZstd) // compresses the bit stream in place
package compress
