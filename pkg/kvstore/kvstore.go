// Package kvstore defines the durable key/value port every storefront state
// container persists through, plus an ephemeral variant for one-shot
// hand-offs (the buy-now slot).
//
// Each entity owns one named key and stores its full snapshot as a JSON
// string. A missing or malformed value is treated as "no data": Get simply
// reports a miss and the caller falls back to its defaults. This keeps the
// contract small enough to back with an in-memory map in tests, a relational
// kv table in production, or Redis.
package kvstore

import "time"

// Store is the durable storage port. Values are JSON-encoded snapshots.
type Store interface {
	// Get unmarshals the value under key into dest.
	// Returns true on a hit, false on a miss or a malformed value.
	Get(key string, dest interface{}) bool

	// Put marshals value and stores it under key, replacing any prior value.
	Put(key string, value interface{}) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// Ephemeral is a short-lived slot store for cross-flow hand-offs.
// Values expire after their TTL, and Take consumes them: written once,
// read and deleted on first access.
type Ephemeral interface {
	// PutTTL stores value under key for at most ttl.
	PutTTL(key string, value interface{}, ttl time.Duration) error

	// Take retrieves the value under key into dest and deletes it.
	// Returns false when the key is absent, expired, or malformed.
	Take(key string, dest interface{}) bool
}
