// Package encoding implements the two Gorilla-family bit codecs a block
// interleaves into one shared stream: delta-of-delta timestamps and
// XOR-compressed float64 values.
//
// # Timestamp codec
//
// TimestampCodec encodes dod = delta - prevDelta using a fixed prefix
// table (§4.2):
//
//	dod range        control  payload  total
//	0                0        0 bits   1 bit
//	[-63, 64]        10       7 bits   9 bits
//	[-255, 256]      110      9 bits   12 bits
//	[-2047, 2048]    1110     12 bits  16 bits
//	otherwise        1111     32 bits  36 bits
//
// The codec only ever sees the third sample onward; a block writes the
// first timestamp as a raw 64-bit value and the second as a 14-bit delta
// directly, before constructing a TimestampCodec from the two.
//
// # Value codec
//
// ValueCodec XORs each value's bit pattern against the previous one and
// writes either a single zero bit (unchanged), a reused leading/trailing
// zero window, or a fresh window with its own leading-zero-count and
// width, following Facebook's Gorilla scheme.
//
// Both codecs write into and read from a shared bitstream.Writer/Reader
// supplied by the caller (one block = one stream, not one per codec), so
// encoding one sample is always "timestamp bits then value bits".
package encoding
