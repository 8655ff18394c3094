package realtime

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Sender is the write side of one live connection. Send must not block; it
// reports false when the message could not be queued (saturated or closed
// connection), in which case the router drops that one target and moves on.
type Sender interface {
	Send(message []byte) bool
}

// Router resolves an event to its target audience (a room's subscribers, a
// single user's connections, or every connection) and pushes the encoded
// payload to each matching sender. Delivery is best-effort real-time fan-out:
// a failed target is dropped silently, never aborting the batch; callers that
// need guaranteed delivery use the durable REST path.
//
// Events routed from one originating goroutine are delivered to each target
// in call order, because resolution and queueing happen synchronously on the
// caller's goroutine and every sender queues in FIFO order.
type Router struct {
	registry *PresenceRegistry
	rooms    *RoomIndex

	mu      sync.RWMutex
	senders map[string]Sender
}

// NewRouter creates a router over the given registry and room index.
func NewRouter(registry *PresenceRegistry, rooms *RoomIndex) *Router {
	if registry == nil || rooms == nil {
		panic("realtime: Router requires a PresenceRegistry and a RoomIndex")
	}
	return &Router{
		registry: registry,
		rooms:    rooms,
		senders:  make(map[string]Sender),
	}
}

// Attach binds a sender to a connection ID so routed events can reach it.
func (r *Router) Attach(connID string, s Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.senders[connID] = s
}

// Detach removes the sender for connID. Idempotent.
func (r *Router) Detach(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.senders, connID)
}

// RoomBroadcast delivers ev to every connection subscribed to roomID.
// excludeConnID, when non-empty, skips the originating connection; typing
// indicators use this so the typist never sees their own typing state.
func (r *Router) RoomBroadcast(roomID string, ev Event, excludeConnID string) {
	targets := r.rooms.MembersOf(roomID)
	if excludeConnID != "" {
		kept := targets[:0]
		for _, id := range targets {
			if id != excludeConnID {
				kept = append(kept, id)
			}
		}
		targets = kept
	}
	r.deliver(targets, ev, logrus.Fields{"room_id": roomID})
}

// UserMulticast delivers ev to every open connection of userID, covering all
// of the user's active devices.
func (r *Router) UserMulticast(userID string, ev Event) {
	r.deliver(r.registry.ChannelsFor(userID), ev, logrus.Fields{"user_id": userID})
}

// Broadcast delivers ev to every attached connection. Used for global
// presence transitions.
func (r *Router) Broadcast(ev Event) {
	r.mu.RLock()
	targets := make([]string, 0, len(r.senders))
	for id := range r.senders {
		targets = append(targets, id)
	}
	r.mu.RUnlock()
	r.deliver(targets, ev, nil)
}

func (r *Router) deliver(connIDs []string, ev Event, fields logrus.Fields) {
	if len(connIDs) == 0 {
		return
	}
	payload, err := ev.Encode()
	if err != nil {
		logrus.WithFields(fields).WithField("event", ev.Name).
			WithError(err).Error("Router: failed to encode event, dropping")
		return
	}

	// Snapshot the senders for the resolved targets, then release the lock
	// before queueing so delivery never holds the table lock.
	r.mu.RLock()
	senders := make([]Sender, 0, len(connIDs))
	for _, id := range connIDs {
		if s, ok := r.senders[id]; ok {
			senders = append(senders, s)
		}
	}
	r.mu.RUnlock()

	dropped := 0
	for _, s := range senders {
		if !s.Send(payload) {
			dropped++
		}
	}
	if dropped > 0 {
		logrus.WithFields(fields).WithFields(logrus.Fields{
			"event":   ev.Name,
			"targets": len(senders),
			"dropped": dropped,
		}).Debug("Router: some targets dropped during delivery")
	}
}
