// Package replicate ships every accepted sample to an external sink as a
// secondary, best-effort copy. It is not the durability mechanism: the
// registry stays fully usable if a sink is slow, absent, or fails — a
// replicate error never rolls back an insert.
package replicate

// Sink receives one sample at a time, in the order the registry accepted
// it. Implementations must not block the insert path for long; Replicate
// runs synchronously on the caller's goroutine.
type Sink interface {
	// Replicate forwards one accepted (key, ts, v) triple. A returned error
	// is surfaced to the registry's caller but does not undo the insert.
	Replicate(key []byte, ts uint64, v float64) error
}

// NoopSink discards every sample. It is the registry's default sink so
// that replication is opt-in.
type NoopSink struct{}

var _ Sink = NoopSink{}

// Replicate does nothing and never fails.
func (NoopSink) Replicate(key []byte, ts uint64, v float64) error {
	return nil
}
