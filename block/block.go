// Package block implements the fixed-duration, epoch-aligned time window
// that owns one interleaved timestamp/value bit stream and its Gorilla
// codec state.
package block

import (
	"iter"
	"math"

	"github.com/nyxcore/tsz/compress"
	"github.com/nyxcore/tsz/encoding"
	"github.com/nyxcore/tsz/errs"
	"github.com/nyxcore/tsz/format"
	"github.com/nyxcore/tsz/internal/bitstream"
)

// Block owns a compressed bit stream for one epoch-aligned time window of
// duration Seconds. The first sample is stored as a raw 64-bit timestamp
// and a raw 64-bit value; the second timestamp is a 14-bit delta; every
// later sample is delta-of-delta/XOR encoded by the codecs in the encoding
// package. Once Sealed is true no further Append calls succeed.
type Block struct {
	start   uint64
	seconds uint64
	count   int

	firstTS    uint64
	firstValue float64

	w  *bitstream.Writer
	tc *encoding.TimestampCodec // live only once count >= 2
	vc *encoding.ValueCodec     // live only once count >= 1

	sealed bool
	codec  format.CompressionType
	data   []byte // populated once sealed: raw or compressed bytes
	stats  compress.CompressionStats
}

// New creates an empty, open block for a series whose window duration is
// seconds. The block has no start until the first Append.
func New(seconds uint64) *Block {
	return &Block{seconds: seconds, w: bitstream.NewWriter()}
}

// Start returns the block's epoch-aligned window start. Zero until the
// first Append.
func (b *Block) Start() uint64 {
	return b.start
}

// Count returns the number of samples appended so far.
func (b *Block) Count() int {
	return b.count
}

// Sealed reports whether the block accepts further appends.
func (b *Block) Sealed() bool {
	return b.sealed
}

// Append adds (ts, v) to the block.
//
// Returns errs.ErrSealed if the block is sealed, or errs.ErrWindowExceeded
// if ts falls outside [start, start+seconds) — the caller (Series) is
// responsible for sealing the block and opening a new one when that
// happens.
func (b *Block) Append(ts uint64, v float64) error {
	if b.sealed {
		return errs.ErrSealed
	}

	if b.count == 0 {
		b.start = (ts / b.seconds) * b.seconds
		b.w.PutBits(ts, 64)
		b.w.PutBits(math.Float64bits(v), 64)
		b.firstTS = ts
		b.firstValue = v
		b.vc = encoding.NewValueCodec(v)
		b.count = 1

		return nil
	}

	if ts < b.start || ts >= b.start+b.seconds {
		return errs.ErrWindowExceeded
	}

	if b.count == 1 {
		delta := ts - b.firstTS
		b.w.PutBits(delta&0x3fff, 14)
		b.vc.Write(b.w, v)
		b.tc = encoding.NewTimestampCodec(int64(b.firstTS), int64(ts)) //nolint:gosec
		b.count = 2

		return nil
	}

	b.tc.Write(b.w, int64(ts)) //nolint:gosec
	b.vc.Write(b.w, v)
	b.count++

	return nil
}

// Seal marks the block immutable. If codec is not format.CompressionNone,
// the bit stream is compressed in place; Samples transparently decompresses
// it again before decoding.
func (b *Block) Seal(codec format.CompressionType) error {
	if b.sealed {
		return nil
	}

	raw := b.w.Bytes()
	originalSize := len(raw)

	if codec != format.CompressionNone && codec != 0 {
		c, err := compress.GetCodec(codec)
		if err != nil {
			return err
		}

		compressed, err := c.Compress(raw)
		if err != nil {
			return err
		}

		raw = compressed
	} else {
		codec = format.CompressionNone
	}

	b.data = raw
	b.codec = codec
	b.sealed = true
	b.stats = compress.CompressionStats{
		Algorithm:      codec,
		OriginalSize:   int64(originalSize),
		CompressedSize: int64(len(raw)),
	}
	b.stats.Ratio = b.stats.CompressionRatio()
	b.w = nil
	b.tc = nil
	b.vc = nil

	return nil
}

// Stats reports the block's compression effectiveness. Zero-valued until
// the block is sealed.
func (b *Block) Stats() compress.CompressionStats {
	return b.stats
}

// CompressedSize returns the number of bytes the block currently occupies:
// the sealed (possibly compressed) byte count, or the live bit stream's
// byte-rounded length while still open.
func (b *Block) CompressedSize() int {
	if b.sealed {
		return len(b.data)
	}

	return (b.w.BitLen() + 7) / 8
}

// Sample is one decoded (timestamp, value) pair.
type Sample struct {
	TS  uint64
	Val float64
}

// Samples returns a lazy, restartable iterator over every sample in the
// block, decoded from byte 0 of the underlying stream each time it is
// called.
//
// A read running past the end of the stream panics: blocks produced by
// Append/Seal always carry exactly count samples' worth of bits, so
// errs.ErrEndOfStream here indicates a corrupted buffer, not a condition
// callers are expected to recover from (§7).
func (b *Block) Samples() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		if b.count == 0 {
			return
		}

		raw, err := b.rawBytes()
		if err != nil {
			return
		}

		r := bitstream.NewReader(raw)

		ts1 := mustReadBits(r, 64)
		v1Bits := mustReadBits(r, 64)

		if !yield(Sample{TS: ts1, Val: math.Float64frombits(v1Bits)}) {
			return
		}
		if b.count == 1 {
			return
		}

		deltaBits := mustReadBits(r, 14)
		ts2 := ts1 + deltaBits

		vc := encoding.NewValueCodec(math.Float64frombits(v1Bits))
		v2, err := vc.Read(r)
		if err != nil {
			panic(err)
		}

		if !yield(Sample{TS: ts2, Val: v2}) {
			return
		}
		if b.count == 2 {
			return
		}

		tc := encoding.NewTimestampCodec(int64(ts1), int64(ts2)) //nolint:gosec

		for i := 2; i < b.count; i++ {
			ts, err := tc.Read(r)
			if err != nil {
				panic(err)
			}
			v, err := vc.Read(r)
			if err != nil {
				panic(err)
			}

			if !yield(Sample{TS: uint64(ts), Val: v}) { //nolint:gosec
				return
			}
		}
	}
}

// mustReadBits reads n bits, panicking on errs.ErrEndOfStream.
func mustReadBits(r *bitstream.Reader, n int) uint64 {
	v, err := r.ReadBits(n)
	if err != nil {
		panic(err)
	}

	return v
}

// rawBytes returns the block's uncompressed bit-stream bytes, decompressing
// a sealed compressed block if necessary.
func (b *Block) rawBytes() ([]byte, error) {
	if !b.sealed {
		return b.w.Bytes(), nil
	}

	if b.codec == format.CompressionNone {
		return b.data, nil
	}

	c, err := compress.GetCodec(b.codec)
	if err != nil {
		return nil, err
	}

	return c.Decompress(b.data)
}
