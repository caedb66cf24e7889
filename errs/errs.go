// Package errs collects the sentinel errors surfaced across tsz's packages,
// following the same errs.ErrXxx convention the teacher library uses
// throughout its blob and section packages.
package errs

import "errors"

var (
	// ErrOutOfOrder is returned by Series.Insert/Registry.Insert when a
	// sample's timestamp is strictly less than the last timestamp already
	// inserted for the same series. The series is left unmodified.
	ErrOutOfOrder = errors.New("tsz: sample timestamp is out of order")

	// ErrTombstoned is returned by Series.Insert/Registry.Insert when the
	// target series has been deleted.
	ErrTombstoned = errors.New("tsz: series is tombstoned")

	// ErrSealed is returned by Block.Append when called on a block that has
	// already been sealed.
	ErrSealed = errors.New("tsz: block is sealed")

	// ErrWindowExceeded is returned by Block.Append when the timestamp falls
	// outside the block's [start, start+W) window. Series.Insert handles this
	// by sealing the current block and rotating to a new one; callers of
	// Block directly must handle it themselves.
	ErrWindowExceeded = errors.New("tsz: timestamp exceeds block window")

	// ErrEndOfStream indicates the bit reader ran past the end of its
	// buffer. Blocks produced by this package's own encoder never trigger
	// this: it signals a corrupted or hand-crafted buffer, a precondition
	// violation of the codec pair rather than a recoverable, user-facing
	// condition. Callers that can reach it from untrusted input should
	// recover the resulting panic at the decode boundary.
	ErrEndOfStream = errors.New("tsz: read past end of bit stream")

	// ErrInvalidBlockSeconds is returned by registry construction when the
	// configured window duration is not strictly positive.
	ErrInvalidBlockSeconds = errors.New("tsz: block_seconds must be positive")

	// ErrHashCollision names the case where two distinct keys share an
	// xxHash64 digest. Nothing in tsz currently returns it: the registry's
	// hash index resolves such collisions transparently by falling back to
	// byte comparison.
	ErrHashCollision = errors.New("tsz: xxhash64 collision detected")
)
