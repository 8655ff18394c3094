package repository

import (
	"context"
	"time"
)

// PresenceSnapshot is the cached durable view of one user's presence,
// consulted by REST reads (e.g. "last seen" in a profile) when the user has
// no live connection on this process.
type PresenceSnapshot struct {
	Online   bool      `json:"online"`
	LastSeen time.Time `json:"lastSeen"`
}

// PresenceCacheRepository is the fast-path presence cache, typically Redis.
type PresenceCacheRepository interface {
	// Set stores the snapshot under the realtime user key with a TTL
	// (0 means no expiry).
	Set(ctx context.Context, userID string, snap PresenceSnapshot, ttl time.Duration) error

	// Get returns the cached snapshot or ErrNotFound on a miss.
	Get(ctx context.Context, userID string) (*PresenceSnapshot, error)
}
