// Package shard is the out-of-scope "sharding/routing" collaborator: it
// fans a key space out across N independently single-threaded
// tsz.Registry instances, so each shard stays simple while the system as
// a whole accepts writes for many more series than one goroutine could
// serialize.
//
// Routing is a pure function of the key: hash(key) % N never changes for
// the lifetime of a Router, so repeated calls for the same key always
// reach the same shard.
package shard

import (
	"iter"

	"github.com/nyxcore/tsz"
	"github.com/nyxcore/tsz/internal/hash"
)

// Router owns N registries and routes every operation to shard
// hash(key) % N. Router itself adds no locking; callers needing
// concurrent access should guard each shard independently (e.g. one
// sync.RWMutex per registry), exactly as they would a bare Registry.
type Router struct {
	shards []*tsz.Registry
}

// NewRouter creates n registries, each with the given blockSeconds window
// and options, and returns a Router over them. An n below 1 is treated as 1.
func NewRouter(n int, blockSeconds uint64, opts ...tsz.Option) (*Router, error) {
	if n < 1 {
		n = 1
	}

	shards := make([]*tsz.Registry, n)
	for i := range shards {
		reg, err := tsz.NewRegistry(blockSeconds, opts...)
		if err != nil {
			return nil, err
		}

		shards[i] = reg
	}

	return &Router{shards: shards}, nil
}

// ShardFor returns the index of the shard key routes to.
func (r *Router) ShardFor(key []byte) int {
	return int(hash.ID(key) % uint64(len(r.shards))) //nolint:gosec
}

// Registry returns the underlying *tsz.Registry for shard index i, for
// callers that need direct access (e.g. to wrap it in their own lock).
func (r *Router) Registry(i int) *tsz.Registry {
	return r.shards[i]
}

// Insert routes to key's shard and inserts there.
func (r *Router) Insert(key []byte, ts uint64, v float64) error {
	return r.shards[r.ShardFor(key)].Insert(key, ts, v)
}

// Query routes to key's shard and queries there.
func (r *Router) Query(key []byte, lo, hi uint64) iter.Seq2[uint64, float64] {
	return r.shards[r.ShardFor(key)].Query(key, lo, hi)
}

// Delete routes to key's shard and deletes there.
func (r *Router) Delete(key []byte) bool {
	return r.shards[r.ShardFor(key)].Delete(key)
}

// CountPoints sums CountPoints across every shard.
func (r *Router) CountPoints() uint64 {
	var total uint64
	for _, reg := range r.shards {
		total += reg.CountPoints()
	}

	return total
}
