package realtime

import (
	"sync"
)

// PresenceRegistry maps a user identity to the set of connection IDs that
// user currently has open. A user may hold several connections at once
// (multiple devices or tabs); the user counts as online while at least one
// remains. The registry is pure in-memory state shared by every connection
// handler, so all methods are safe for concurrent use.
type PresenceRegistry struct {
	mu    sync.RWMutex
	users map[string]map[string]struct{}
}

// NewPresenceRegistry creates an empty registry.
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		users: make(map[string]map[string]struct{}),
	}
}

// Register records connID as an open connection of userID. It is idempotent:
// registering the same pair twice has the same effect as once. The return
// value reports whether this was the user's first open connection, i.e. the
// transition from offline to online.
func (r *PresenceRegistry) Register(userID, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.users[userID]
	if !ok {
		r.users[userID] = map[string]struct{}{connID: {}}
		return true
	}
	conns[connID] = struct{}{}
	return false
}

// Unregister removes connID from userID's connection set and reports whether
// that was the user's last open connection, i.e. the transition to offline.
// Unregistering a pair that was never registered is a no-op, not an error;
// duplicate disconnects must be tolerated.
func (r *PresenceRegistry) Unregister(userID, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.users[userID]
	if !ok {
		return false
	}
	if _, ok := conns[connID]; !ok {
		return false
	}
	delete(conns, connID)
	if len(conns) == 0 {
		// Invariant: a user appears in the registry only while at least
		// one of their connections is open.
		delete(r.users, userID)
		return true
	}
	return false
}

// ChannelsFor returns a snapshot of the open connection IDs for userID.
// The result may be empty and is safe for the caller to retain.
func (r *PresenceRegistry) ChannelsFor(userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns, ok := r.users[userID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(conns))
	for id := range conns {
		ids = append(ids, id)
	}
	return ids
}

// IsOnline reports whether userID has at least one open connection.
func (r *PresenceRegistry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[userID]
	return ok
}

// OnlineUsers returns a snapshot of every user ID with at least one open
// connection.
func (r *PresenceRegistry) OnlineUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	return ids
}
