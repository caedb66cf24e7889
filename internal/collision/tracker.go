// Package collision provides the hash-indexed key lookup the registry uses
// to map series keys to slot indices in O(1) amortized time, while
// preserving the spec's "equality is byte-exact" requirement for keys that
// collide under xxHash64.
package collision

import "bytes"

// entry pairs a tracked key with the registry slot it was assigned.
type entry struct {
	key []byte
	idx int
}

// Tracker maps xxHash64(key) -> the (possibly several) keys sharing that
// hash, each with its slot index. A slice-per-hash bucket keeps lookup O(1)
// in the overwhelmingly common case of zero collisions, degrading
// gracefully (linear in bucket size) only when two distinct keys actually
// collide — mirroring the teacher's name/hash tracker, generalized from
// "detect a collision and flip a flag" to "resolve a collision by falling
// back to the real key".
type Tracker struct {
	buckets map[uint64][]entry
	count   int
}

// NewTracker creates an empty key tracker.
func NewTracker() *Tracker {
	return &Tracker{buckets: make(map[uint64][]entry)}
}

// Lookup returns the slot index previously recorded for key under hash, or
// (0, false) if key has never been tracked. Byte-exact comparison
// disambiguates keys that share a hash.
func (t *Tracker) Lookup(hash uint64, key []byte) (int, bool) {
	for _, e := range t.buckets[hash] {
		if bytes.Equal(e.key, key) {
			return e.idx, true
		}
	}

	return 0, false
}

// Track records that key (hashing to hash) was assigned slot idx. The
// caller must have already confirmed via Lookup that key is not already
// tracked.
func (t *Tracker) Track(hash uint64, key []byte, idx int) {
	// Copy key: callers may pass a slice backed by a buffer they reuse.
	owned := make([]byte, len(key))
	copy(owned, key)

	t.buckets[hash] = append(t.buckets[hash], entry{key: owned, idx: idx})
	t.count++
}

// Untrack removes key from the index without touching the registry's dense
// slot vector — deletion only severs the key->index mapping, per the
// registry's tombstone-not-compact policy.
func (t *Tracker) Untrack(hash uint64, key []byte) {
	bucket := t.buckets[hash]
	for i, e := range bucket {
		if bytes.Equal(e.key, key) {
			t.buckets[hash] = append(bucket[:i], bucket[i+1:]...)
			t.count--

			return
		}
	}
}

// Count returns the number of keys currently tracked.
func (t *Tracker) Count() int {
	return t.count
}
