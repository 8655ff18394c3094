package realtime

import (
	"context"
	"time"
)

// PresenceStore is the narrow bridge through which the realtime core writes
// durable presence facts (online flag, last-seen timestamp) to external
// storage. The in-memory registry stays authoritative for live delivery; the
// durable flag is a best-effort cache consulted by REST reads. A failed write
// is logged by the caller and never blocks or reverses the in-memory
// transition, so implementations should return quickly (e.g. enqueue a
// background task rather than write synchronously).
type PresenceStore interface {
	SetOnline(ctx context.Context, userID string, online bool, at time.Time) error
}
