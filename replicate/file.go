package replicate

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
	"os"
	"sync"
)

// fileRecordMagic tags every record written by FileSink so a reader can
// distinguish this file's framing from an arbitrary byte stream.
const fileRecordMagic = uint32(0x75575A31) // "uWZ1"

// FileSink appends every replicated sample to a file as a length-prefixed,
// CRC-checked record:
//
//	[4B magic][4B payload_len][payload][4B CRC32(payload)]
//	payload: [2B key_len uint16][key bytes][8B ts uint64][8B value float64 bits]
//
// Writes are buffered by the OS page cache only — FileSink never calls
// Sync, so a crash can lose the tail of the file. That is intentional: the
// registry's in-memory blocks are the source of truth, and this sink
// exists to give an external consumer a best-effort tailable copy, not a
// durability guarantee.
type FileSink struct {
	mu sync.Mutex
	f  *os.File
}

var _ Sink = (*FileSink)(nil)

// OpenFileSink opens (creating if needed) path in append mode and returns a
// FileSink writing records to it.
func OpenFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("replicate: open %s: %w", path, err)
	}

	return &FileSink{f: f}, nil
}

// Replicate appends one framed record for (key, ts, v).
func (s *FileSink) Replicate(key []byte, ts uint64, v float64) error {
	if len(key) > math.MaxUint16 {
		return fmt.Errorf("replicate: key too long: %d bytes", len(key))
	}

	payload := make([]byte, 2+len(key)+8+8)
	binary.BigEndian.PutUint16(payload[0:2], uint16(len(key)))
	copy(payload[2:2+len(key)], key)
	binary.BigEndian.PutUint64(payload[2+len(key):10+len(key)], ts)
	binary.BigEndian.PutUint64(payload[10+len(key):18+len(key)], math.Float64bits(v))

	record := make([]byte, 4+4+len(payload)+4)
	binary.BigEndian.PutUint32(record[0:4], fileRecordMagic)
	binary.BigEndian.PutUint32(record[4:8], uint32(len(payload)))
	copy(record[8:8+len(payload)], payload)
	binary.BigEndian.PutUint32(record[8+len(payload):], crc32.ChecksumIEEE(payload))

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.f.Write(record)

	return err
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.f.Close()
}
