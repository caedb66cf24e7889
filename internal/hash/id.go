// Package hash computes the 64-bit digest the registry uses to index series
// keys.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given byte string.
func ID(key []byte) uint64 {
	return xxhash.Sum64(key)
}
