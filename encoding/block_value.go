package encoding

import (
	"math"
	"math/bits"

	"github.com/nyxcore/tsz/internal/bitstream"
)

// ValueCodec encodes and decodes the per-block Gorilla XOR value stream,
// sharing prevLeading/prevMeaningful window state across consecutive
// non-zero XORs, and writing into a bit stream shared with TimestampCodec
// for the same block rather than owning a private byte buffer.
//
// Per value after the first:
//
//	xor := bits ^ prevBits
//	xor == 0:                      write 0                     (1 bit)
//	xor != 0, window reusable:      write 10, then meaningful bits
//	xor != 0, window not reusable:  write 11, 5-bit lz, 6-bit meaningful
//	                                 (meaningful==64 encoded as 0), then bits
//
// "Window reusable" means a previous non-zero XOR exists, its leading zero
// count is <= the current one, and its meaningful window still covers the
// current value's meaningful bits.
type ValueCodec struct {
	prevBits       uint64
	prevLeading    int
	prevMeaningful int
	haveWindow     bool
}

// NewValueCodec creates a codec primed with the block's first raw value.
func NewValueCodec(first float64) *ValueCodec {
	return &ValueCodec{prevBits: math.Float64bits(first)}
}

// Write encodes val (the second or later sample in the block) onto w.
func (c *ValueCodec) Write(w *bitstream.Writer, val float64) {
	bitsVal := math.Float64bits(val)
	xor := bitsVal ^ c.prevBits

	if xor == 0 {
		w.PutBit(0)
		c.prevBits = bitsVal

		return
	}

	w.PutBit(1)

	lz := bits.LeadingZeros64(xor)
	if lz > 31 {
		lz = 31
	}
	tz := bits.TrailingZeros64(xor)
	meaningful := 64 - lz - tz

	if c.haveWindow && lz >= c.prevLeading && (64-tz) <= (c.prevLeading+c.prevMeaningful) {
		w.PutBit(0)
		w.PutBits(xor>>uint(64-c.prevLeading-c.prevMeaningful), c.prevMeaningful)
	} else {
		w.PutBit(1)
		w.PutBits(uint64(lz), 5)

		encodedLen := meaningful
		if encodedLen == 64 {
			encodedLen = 0
		}
		w.PutBits(uint64(encodedLen), 6)
		w.PutBits(xor>>uint(tz), meaningful)

		c.prevLeading = lz
		c.prevMeaningful = meaningful
		c.haveWindow = true
	}

	c.prevBits = bitsVal
}

// Read decodes the next value from r.
func (c *ValueCodec) Read(r *bitstream.Reader) (float64, error) {
	control, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	if control == 0 {
		return math.Float64frombits(c.prevBits), nil
	}

	reuse, err := r.ReadBit()
	if err != nil {
		return 0, err
	}

	if reuse == 0 {
		meaningfulBits, err := r.ReadBits(c.prevMeaningful)
		if err != nil {
			return 0, err
		}

		xor := meaningfulBits << uint(64-c.prevLeading-c.prevMeaningful)
		c.prevBits ^= xor

		return math.Float64frombits(c.prevBits), nil
	}

	lzBits, err := r.ReadBits(5)
	if err != nil {
		return 0, err
	}
	lz := int(lzBits)

	lenBits, err := r.ReadBits(6)
	if err != nil {
		return 0, err
	}
	meaningful := int(lenBits)
	if meaningful == 0 {
		meaningful = 64
	}

	tz := 64 - lz - meaningful

	meaningfulBits, err := r.ReadBits(meaningful)
	if err != nil {
		return 0, err
	}

	xor := meaningfulBits << uint(tz)
	c.prevBits ^= xor
	c.prevLeading = lz
	c.prevMeaningful = meaningful
	c.haveWindow = true

	return math.Float64frombits(c.prevBits), nil
}
