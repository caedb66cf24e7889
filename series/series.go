// Package series manages one named time series: an ordered list of blocks
// where at most the last one is open for writes, plus tombstone-on-delete
// semantics and externally-triggered retention.
package series

import (
	"iter"

	"github.com/nyxcore/tsz/block"
	"github.com/nyxcore/tsz/compress"
	"github.com/nyxcore/tsz/errs"
	"github.com/nyxcore/tsz/format"
)

// Series owns an ordered collection of blocks for one key. Sealed blocks
// are immutable; the last block, if present and not yet rotated out, is
// open and accepts appends. Deleting a series tombstones it rather than
// freeing its blocks, preserving slot identity for callers that cache an
// index into an owning registry.
type Series struct {
	seconds    uint64
	codec      format.CompressionType
	blocks     []*block.Block
	lastTS     uint64
	haveLastTS bool
	tombstoned bool
}

// New creates an empty series whose blocks span windows of seconds
// duration, sealed at rotation with the given compression codec.
func New(seconds uint64, codec format.CompressionType) *Series {
	return &Series{seconds: seconds, codec: codec}
}

// Tombstoned reports whether the series has been deleted.
func (s *Series) Tombstoned() bool {
	return s.tombstoned
}

// Insert appends (ts, v) to the series' open block, rotating to a new
// block first if needed.
//
// Returns errs.ErrTombstoned if the series was deleted, or
// errs.ErrOutOfOrder if ts is strictly less than the last inserted
// timestamp. Equal timestamps are permitted and preserved in insertion
// order.
func (s *Series) Insert(ts uint64, v float64) error {
	if s.tombstoned {
		return errs.ErrTombstoned
	}

	if s.haveLastTS && ts < s.lastTS {
		return errs.ErrOutOfOrder
	}

	if len(s.blocks) == 0 {
		s.blocks = append(s.blocks, block.New(s.seconds))
	}

	open := s.blocks[len(s.blocks)-1]

	if err := open.Append(ts, v); err != nil {
		if err != errs.ErrWindowExceeded {
			return err
		}

		if err := open.Seal(s.codec); err != nil {
			return err
		}

		next := block.New(s.seconds)
		if err := next.Append(ts, v); err != nil {
			return err
		}

		s.blocks = append(s.blocks, next)
	}

	s.lastTS = ts
	s.haveLastTS = true

	return nil
}

// Query returns a lazy iterator over every sample with lo <= ts <= hi,
// decoded from blocks whose window overlaps the range, in insertion order.
func (s *Series) Query(lo, hi uint64) iter.Seq[block.Sample] {
	return func(yield func(block.Sample) bool) {
		if s.tombstoned {
			return
		}

		for _, b := range s.blocks {
			if b.Start()+s.seconds <= lo || b.Start() > hi {
				continue
			}

			for sample := range b.Samples() {
				if sample.TS < lo || sample.TS > hi {
					continue
				}
				if !yield(sample) {
					return
				}
			}
		}
	}
}

// Tombstone marks the series deleted. Future inserts are rejected with
// errs.ErrTombstoned; queries return no samples. Existing blocks are kept.
func (s *Series) Tombstone() {
	s.tombstoned = true
}

// DropBlocksBefore discards sealed blocks whose window has fully elapsed
// before ts (start+seconds <= ts). The open block, if any, is never
// dropped regardless of its window.
func (s *Series) DropBlocksBefore(ts uint64) {
	kept := s.blocks[:0]
	for i, b := range s.blocks {
		isOpen := i == len(s.blocks)-1 && !b.Sealed()
		if !isOpen && b.Start()+s.seconds <= ts {
			continue
		}
		kept = append(kept, b)
	}

	s.blocks = kept
}

// CountPoints returns the total number of samples across all blocks,
// including sealed ones. Returns 0 for a tombstoned series.
func (s *Series) CountPoints() int {
	if s.tombstoned {
		return 0
	}

	total := 0
	for _, b := range s.blocks {
		total += b.Count()
	}

	return total
}

// CompressedBytes returns the sum of every block's current storage size
// (post-compression for sealed blocks).
func (s *Series) CompressedBytes() int {
	total := 0
	for _, b := range s.blocks {
		total += b.CompressedSize()
	}

	return total
}

// CompressionStats aggregates compression effectiveness across every sealed
// block. The open block, if any, has not been compressed yet and is
// excluded. Algorithm reports the series' codec; Ratio is recomputed over
// the aggregate sizes rather than averaged per block.
func (s *Series) CompressionStats() compress.CompressionStats {
	stats := compress.CompressionStats{Algorithm: s.codec}

	for _, b := range s.blocks {
		if !b.Sealed() {
			continue
		}

		bs := b.Stats()
		stats.OriginalSize += bs.OriginalSize
		stats.CompressedSize += bs.CompressedSize
		stats.CompressionTimeNs += bs.CompressionTimeNs
		stats.DecompressionTimeNs += bs.DecompressionTimeNs
	}

	stats.Ratio = stats.CompressionRatio()

	return stats
}
