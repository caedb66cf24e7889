// Package tsz provides an in-memory time-series storage engine built on
// the Gorilla compression scheme: delta-of-delta timestamp encoding
// (encoding.TimestampCodec) and XOR-based float encoding
// (encoding.ValueCodec), packaged into fixed-duration compressed blocks
// (block.Block) and indexed for O(1) key lookup and linear scanning
// (Registry, this file).
//
// # Basic usage
//
//	reg, _ := tsz.NewRegistry(7200)
//	reg.Insert([]byte("server1.cpu.usage"), 1_700_000_000, 45.2)
//	reg.Insert([]byte("server1.cpu.usage"), 1_700_000_060, 46.1)
//
//	for ts, v := range reg.Query([]byte("server1.cpu.usage"), 0, 1_800_000_000) {
//	    fmt.Println(ts, v)
//	}
//
// A Registry is single-threaded: all operations execute serially, and the
// package defines no internal goroutines or suspension points. Concurrent
// access from multiple writers/readers is the caller's responsibility,
// typically a sync.RWMutex around one Registry or a shard.Router fanning
// out across several.
package tsz

import (
	"iter"

	"github.com/nyxcore/tsz/compress"
	"github.com/nyxcore/tsz/errs"
	"github.com/nyxcore/tsz/format"
	"github.com/nyxcore/tsz/internal/collision"
	"github.com/nyxcore/tsz/internal/hash"
	"github.com/nyxcore/tsz/replicate"
	"github.com/nyxcore/tsz/series"
	"github.com/nyxcore/tsz/telemetry"
)

// slot is one dense-vector entry: the series it owns, plus the key that
// was used to create it. The key is retained so Scan can report it without
// a second reverse index.
type slot struct {
	key []byte
	s   *series.Series
}

// Registry is the top-level TSMap: a dense, append-only vector of series
// addressed by a hash-indexed key lookup. Deleting a series tombstones its
// slot rather than compacting the vector, so slot indices remain stable
// for the lifetime of the Registry.
type Registry struct {
	blockSeconds uint64
	codec        format.CompressionType
	replica      replicate.Sink
	telemetry    telemetry.Collector

	slots   []slot
	index   *collision.Tracker

	// pointsTotal/compressedBytesTotal are running sums over every live
	// series, updated incrementally by Insert/Delete so CountPoints and
	// the telemetry hot path never sweep the whole registry.
	pointsTotal          uint64
	compressedBytesTotal uint64
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithCompression sets the codec applied to every series' blocks at seal
// time. The default is format.CompressionNone.
func WithCompression(c format.CompressionType) Option {
	return func(r *Registry) { r.codec = c }
}

// WithReplica installs a replicate.Sink fanned out on every successful
// Insert. Replicate runs synchronously inside Insert, after the sample is
// stored; a failing sink never rolls back the insert, and its error, if
// any, is what Insert returns.
func WithReplica(sink replicate.Sink) Option {
	return func(r *Registry) { r.replica = sink }
}

// WithTelemetry installs a telemetry.Collector updated on the hot path:
// IncInserts on every accepted Insert, SetPoints/SetCompressedBytes after
// every accepted Insert and every Delete of a present key.
func WithTelemetry(c telemetry.Collector) Option {
	return func(r *Registry) { r.telemetry = c }
}

// NewRegistry creates an empty Registry whose series roll blocks every
// blockSeconds seconds. blockSeconds must be positive.
func NewRegistry(blockSeconds uint64, opts ...Option) (*Registry, error) {
	if blockSeconds == 0 {
		return nil, errs.ErrInvalidBlockSeconds
	}

	r := &Registry{
		blockSeconds: blockSeconds,
		codec:        format.CompressionNone,
		replica:      replicate.NoopSink{},
		telemetry:    telemetry.Noop{},
		index:        collision.NewTracker(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Insert appends (ts, v) to the series identified by key, creating the
// series on first write. Returns errs.ErrOutOfOrder if ts is strictly
// less than the last timestamp already inserted for this key, or
// errs.ErrTombstoned if the series was deleted.
//
// Cost does not grow with the number of series: the running point/byte
// counters are adjusted by the delta this one series' Insert produced
// (measured by summing that series' block sizes), never by a sweep of the
// whole registry.
func (r *Registry) Insert(key []byte, ts uint64, v float64) error {
	idx, ok := r.lookup(key)
	if !ok {
		idx = len(r.slots)
		r.slots = append(r.slots, slot{key: append([]byte(nil), key...), s: series.New(r.blockSeconds, r.codec)})
		r.index.Track(hash.ID(key), key, idx)
	}

	s := r.slots[idx].s
	bytesBefore := s.CompressedBytes()

	if err := s.Insert(ts, v); err != nil {
		return err
	}

	r.pointsTotal++
	r.compressedBytesTotal = addDelta(r.compressedBytesTotal, bytesBefore, s.CompressedBytes())

	r.telemetry.IncInserts()
	r.telemetry.SetPoints(r.pointsTotal)
	r.telemetry.SetCompressedBytes(r.compressedBytesTotal)

	return r.replica.Replicate(key, ts, v)
}

// Query returns a lazy iterator over every sample of key's series with
// lo <= ts <= hi, in insertion order. Empty if key is unknown or the
// series has been deleted.
func (r *Registry) Query(key []byte, lo, hi uint64) iter.Seq2[uint64, float64] {
	return func(yield func(uint64, float64) bool) {
		idx, ok := r.lookup(key)
		if !ok {
			return
		}

		for sample := range r.slots[idx].s.Query(lo, hi) {
			if !yield(sample.TS, sample.Val) {
				return
			}
		}
	}
}

// Delete tombstones key's series, rejecting future inserts and emptying
// future queries. Returns true if key was present.
func (r *Registry) Delete(key []byte) bool {
	idx, ok := r.lookup(key)
	if !ok {
		return false
	}

	s := r.slots[idx].s
	r.pointsTotal -= uint64(s.CountPoints()) //nolint:gosec
	r.compressedBytesTotal -= uint64(s.CompressedBytes()) //nolint:gosec

	s.Tombstone()
	r.index.Untrack(hash.ID(key), key)

	r.telemetry.SetPoints(r.pointsTotal)
	r.telemetry.SetCompressedBytes(r.compressedBytesTotal)

	return true
}

// CompressedBytes returns the sum of key's series' block buffer sizes, or
// 0 if key is unknown or tombstoned.
func (r *Registry) CompressedBytes(key []byte) uint64 {
	idx, ok := r.lookup(key)
	if !ok {
		return 0
	}

	return uint64(r.slots[idx].s.CompressedBytes()) //nolint:gosec
}

// CountPoints returns the total number of samples across every live
// series. Tombstoned series do not contribute. O(1): backed by a running
// counter maintained by Insert/Delete.
func (r *Registry) CountPoints() uint64 {
	return r.pointsTotal
}

// CompressionStats reports key's series' aggregate compression
// effectiveness across its sealed blocks, or the zero value and false if
// key is unknown.
func (r *Registry) CompressionStats(key []byte) (compress.CompressionStats, bool) {
	idx, ok := r.lookup(key)
	if !ok {
		return compress.CompressionStats{}, false
	}

	return r.slots[idx].s.CompressionStats(), true
}

// Scan visits every live (key, ts, v) triple exactly once, in
// series-creation order, and within each series in insertion order.
// Tombstoned series are skipped entirely. visit is invoked once per
// sample rather than once per series, so Scan never materializes an
// entire series in memory.
func (r *Registry) Scan(visit func(key []byte, ts uint64, v float64)) {
	for _, sl := range r.slots {
		if sl.s.Tombstoned() {
			continue
		}

		for sample := range sl.s.Query(0, ^uint64(0)) {
			visit(sl.key, sample.TS, sample.Val)
		}
	}
}

// lookup resolves key to its slot index via the hash index, falling back
// to byte-exact comparison on collision.
func (r *Registry) lookup(key []byte) (int, bool) {
	return r.index.Lookup(hash.ID(key), key)
}

// addDelta applies (after-before) to total. CompressedBytes can shrink
// across a single Insert when it triggers a block rotation that seals the
// previous block under a shrinking codec, so the delta is computed in
// signed arithmetic before folding back into the unsigned running total.
func addDelta(total uint64, before, after int) uint64 {
	return uint64(int64(total) + int64(after) - int64(before)) //nolint:gosec
}
