// Package eventstore defines the storage-agnostic contracts of the
// lending event store: the StorableEvent DTO that domain events are
// serialized into, and the sentinel errors shared by all engines.
//
// Events live in per-aggregate streams: every event belongs to exactly
// one stream (the owning patron's id) and carries a sequence number
// that is strictly increasing within that stream. Appends are guarded
// by an expected-max-sequence check, which makes concurrent writers to
// the same stream fail with ErrConcurrencyConflict instead of
// interleaving their events.
package eventstore
