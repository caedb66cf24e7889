package encoding

import "github.com/nyxcore/tsz/internal/bitstream"

// TimestampCodec encodes and decodes the per-block delta-of-delta timestamp
// stream. It writes into a bit stream shared with ValueCodec for the same
// block — timestamp and value bits for one sample are interleaved, per
// block framing — and follows the exact prefix-code table below.
//
// Prefix table for dod = delta - prevDelta, starting from the third sample:
//
//	dod range        control  payload  total
//	0                0        0 bits   1 bit
//	[-63, 64]        10       7 bits   9 bits
//	[-255, 256]      110      9 bits   12 bits
//	[-2047, 2048]    1110     12 bits  16 bits
//	otherwise        1111     32 bits  36 bits
//
// The first timestamp of a block is written as a raw 64-bit value by the
// caller (the block header); the second timestamp is a 14-bit delta; both
// are out of scope for this type, which only handles the third sample
// onward. TimestampCodec is reused across encode and decode by keeping
// prevTS/prevDelta as plain fields, not pooled state.
type TimestampCodec struct {
	prevTS    int64
	prevDelta int64
}

// NewTimestampCodec creates a codec primed with the block's first two
// timestamps. prevDelta is ts2-ts1.
func NewTimestampCodec(ts1, ts2 int64) *TimestampCodec {
	return &TimestampCodec{prevTS: ts2, prevDelta: ts2 - ts1}
}

// Write encodes ts (the third or later sample in the block) onto w.
func (c *TimestampCodec) Write(w *bitstream.Writer, ts int64) {
	delta := ts - c.prevTS
	dod := delta - c.prevDelta

	switch {
	case dod == 0:
		w.PutBit(0)
	case dod >= -63 && dod <= 64:
		w.PutBits(0b10, 2)
		w.PutBits(uint64(dod)&0x7f, 7)
	case dod >= -255 && dod <= 256:
		w.PutBits(0b110, 3)
		w.PutBits(uint64(dod)&0xfff, 9)
	case dod >= -2047 && dod <= 2048:
		w.PutBits(0b1110, 4)
		w.PutBits(uint64(dod)&0xffff, 12)
	default:
		w.PutBits(0b1111, 4)
		w.PutBits(uint64(int32(dod)), 32)
	}

	c.prevDelta = delta
	c.prevTS = ts
}

// Read decodes the next timestamp from r.
func (c *TimestampCodec) Read(r *bitstream.Reader) (int64, error) {
	dod, err := readDod(r)
	if err != nil {
		return 0, err
	}

	delta := c.prevDelta + dod
	ts := c.prevTS + delta

	c.prevDelta = delta
	c.prevTS = ts

	return ts, nil
}

// readDod consumes one prefix-coded delta-of-delta value.
func readDod(r *bitstream.Reader) (int64, error) {
	b, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	if b == 0 {
		return 0, nil
	}

	b, err = r.ReadBit()
	if err != nil {
		return 0, err
	}
	if b == 0 {
		v, err := r.ReadBits(7)
		if err != nil {
			return 0, err
		}

		return halfExtend(v, 7), nil
	}

	b, err = r.ReadBit()
	if err != nil {
		return 0, err
	}
	if b == 0 {
		v, err := r.ReadBits(9)
		if err != nil {
			return 0, err
		}

		return halfExtend(v, 9), nil
	}

	b, err = r.ReadBit()
	if err != nil {
		return 0, err
	}
	if b == 0 {
		v, err := r.ReadBits(12)
		if err != nil {
			return 0, err
		}

		return halfExtend(v, 12), nil
	}

	v, err := r.ReadBits(32)
	if err != nil {
		return 0, err
	}

	return signExtend(v, 32), nil
}

// signExtend sign-extends the low width bits of v (a plain two's-complement
// field, symmetric range) to a full int64. Used only for the 32-bit
// catch-all tier.
func signExtend(v uint64, width int) int64 {
	shift := 64 - width
	return int64(v<<uint(shift)) >> uint(shift)
}

// halfExtend decodes the 7/9/12-bit dod fields, whose ranges are
// deliberately asymmetric ([-63,64], [-255,256], [-2047,2048]) rather than
// plain two's complement: a stored value greater than half the field's
// range wraps to negative, matching how the encoder simply stores dod's
// low width bits without adjusting for the asymmetry.
func halfExtend(v uint64, width int) int64 {
	half := int64(1) << uint(width-1)

	r := int64(v) //nolint:gosec
	if r > half {
		r -= int64(1) << uint(width)
	}

	return r
}
