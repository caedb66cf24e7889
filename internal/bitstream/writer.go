// Package bitstream provides the bit-granular read/write primitives that the
// timestamp and value codecs are built on. A Writer/Reader pair shares no
// state beyond the byte slice passed between them: all codec state (previous
// timestamp, previous XOR window, ...) lives one layer up, in the encoding
// package.
package bitstream

import "github.com/nyxcore/tsz/internal/pool"

// Writer appends a variable number of least-significant bits from a 64-bit
// source word to a growable byte buffer, most-significant-bit first within
// each byte. Byte alignment is never required between writes.
//
// The zero value is not usable; construct with NewWriter.
type Writer struct {
	buf   *pool.ByteBuffer
	cur   byte  // partially filled trailing byte, left-justified
	nBits uint8 // number of valid bits already written into cur, 0..7
}

// NewWriter returns an empty Writer with a small initial buffer, appropriate
// for a single block's worth of samples.
func NewWriter() *Writer {
	return &Writer{buf: pool.NewByteBuffer(64)}
}

// PutBit appends the single low-order bit of b.
func (w *Writer) PutBit(b uint64) {
	if b&1 != 0 {
		w.cur |= 1 << (7 - w.nBits)
	}
	w.nBits++
	if w.nBits == 8 {
		w.buf.MustWrite([]byte{w.cur})
		w.cur = 0
		w.nBits = 0
	}
}

// PutBits appends the low n bits of value, n in [1,64], most-significant bit
// of the selected field first. A naive (1<<n)-1 mask would overflow for
// n==64, so PutBits never builds a mask at all: it walks the bit positions
// directly.
func (w *Writer) PutBits(value uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		w.PutBit(value >> uint(i))
	}
}

// BitLen returns the total number of bits written so far.
func (w *Writer) BitLen() int {
	return w.buf.Len()*8 + int(w.nBits)
}

// Bytes returns a snapshot of everything written so far, with any partially
// filled trailing byte zero-padded. The Writer remains usable for further
// PutBit/PutBits calls afterward — unlike the pooled encoders this package's
// design was lifted from, a block's bit buffer is read (for queries and
// compressed-size reporting) throughout its open lifetime, not just once at
// the end.
func (w *Writer) Bytes() []byte {
	if w.nBits == 0 {
		return w.buf.Bytes()
	}

	src := w.buf.Bytes()
	out := make([]byte, len(src)+1)
	copy(out, src)
	out[len(src)] = w.cur

	return out
}
