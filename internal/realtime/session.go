package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionState tracks where one connection is in its lifecycle.
type SessionState int32

const (
	// StateConnecting: transport is open and authenticated, but the client
	// has not announced presence yet. Room actions are ignored here.
	StateConnecting SessionState = iota
	// StateOnline: presence announced; the connection is registered and may
	// join/leave rooms.
	StateOnline
	// StateClosed is terminal. Cleanup has run (exactly once).
	StateClosed
)

// Session owns the lifecycle of a single client connection:
// Connecting -> Online -> Closed. It is the only writer of its own state;
// the shared registry, room index and router are mutated exclusively through
// their concurrency-safe operations. Session methods run on the connection's
// read loop plus, possibly, a concurrent Close from the transport's error
// path, so state is guarded by a mutex and cleanup is protected by sync.Once
// against double-fire (an error event and a close event may both arrive for
// the same transport).
type Session struct {
	// ID is the opaque connection identifier, unique per transport connect.
	ID string
	// UserID is the authenticated identity that opened the connection,
	// immutable for the session's lifetime.
	UserID string

	registry *PresenceRegistry
	rooms    *RoomIndex
	router   *Router
	store    PresenceStore

	mu        sync.Mutex
	state     SessionState
	announced bool

	closeOnce sync.Once
	log       *logrus.Entry
}

// NewSession creates a session for an already-authenticated connection. An
// authentication failure must be handled before this point: no session, and
// therefore no registry mutation, ever exists for a connection that failed
// to authenticate.
func NewSession(userID string, registry *PresenceRegistry, rooms *RoomIndex, router *Router, store PresenceStore) *Session {
	if registry == nil || rooms == nil || router == nil || store == nil {
		panic("realtime: Session requires registry, rooms, router and store")
	}
	id := uuid.NewString()
	return &Session{
		ID:       id,
		UserID:   userID,
		registry: registry,
		rooms:    rooms,
		router:   router,
		store:    store,
		state:    StateConnecting,
		log: logrus.WithFields(logrus.Fields{
			"component": "session",
			"conn_id":   id,
			"user_id":   userID,
		}),
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Announce handles presence:announce. The announced identity must match the
// authenticated one; a mismatch is ignored (and logged), never trusted. On
// the user's first open connection this broadcasts presence:changed and
// writes the online flag through the bridge.
//
// The registry mutation happens under s.mu, together with the state flip:
// a concurrent Close must either observe the registration and undo it, or
// win the lock first and leave the session Closed so no registration ever
// happens. The registry lock nests inside s.mu and never waits on I/O.
func (s *Session) Announce(userID string) {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	if userID != s.UserID {
		s.mu.Unlock()
		s.log.WithField("announced_user_id", userID).
			Warn("Session: announce for a different user than authenticated, ignoring")
		return
	}
	s.state = StateOnline
	s.announced = true
	first := s.registry.Register(s.UserID, s.ID)
	s.mu.Unlock()

	if first {
		s.log.Info("Session: user online")
		s.publishPresence(true, time.Now())
	}
}

// Join handles room:join. Ignored unless the session is Online: a connection
// cannot subscribe before announcing presence.
func (s *Session) Join(roomID string) {
	if !s.online() {
		s.log.WithField("room_id", roomID).Debug("Session: join while not online, ignoring")
		return
	}
	s.rooms.Join(roomID, s.ID)
	s.log.WithField("room_id", roomID).Debug("Session: joined room")
}

// Leave handles room:leave. A leave for a room never joined is a no-op.
func (s *Session) Leave(roomID string) {
	if !s.online() {
		s.log.WithField("room_id", roomID).Debug("Session: leave while not online, ignoring")
		return
	}
	s.rooms.Leave(roomID, s.ID)
	s.log.WithField("room_id", roomID).Debug("Session: left room")
}

// Typing relays a typing indicator to the room, excluding this connection so
// the typist never receives their own typing state.
func (s *Session) Typing(roomID, username string, start bool) {
	if !s.online() {
		return
	}
	name := EventTypingStop
	payload := TypingPayload{RoomID: roomID, UserID: s.UserID}
	if start {
		name = EventTypingStart
		payload.Username = username
	}
	s.router.RoomBroadcast(roomID, Event{Name: name, Data: payload}, s.ID)
}

// Retire handles presence:retire, the graceful logout path. The connection
// stays open but no longer counts toward presence; the client must announce
// again to come back online. Distinct from disconnect: no room cleanup here.
func (s *Session) Retire(userID string) {
	s.mu.Lock()
	if s.state != StateOnline || userID != s.UserID {
		s.mu.Unlock()
		return
	}
	s.state = StateConnecting
	s.announced = false
	last := s.registry.Unregister(s.UserID, s.ID)
	s.mu.Unlock()

	if last {
		s.log.Info("Session: user retired, offline")
		s.publishPresence(false, time.Now())
	}
}

// Close drives the session to its terminal state and runs cleanup exactly
// once, no matter how many transport events (close, error, timeout) fire.
// The presence unregistration shares s.mu with Announce's registration, so
// an announce racing a close either never registers (it sees StateClosed)
// or is fully undone here. The offline broadcast runs only after the router
// detach, so it cannot reach the closing connection.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		wasAnnounced := s.announced
		s.state = StateClosed
		s.announced = false
		last := false
		if wasAnnounced {
			last = s.registry.Unregister(s.UserID, s.ID)
		}
		s.mu.Unlock()

		s.rooms.LeaveAll(s.ID)
		s.router.Detach(s.ID)

		if last {
			s.log.Info("Session: last connection closed, user offline")
			s.publishPresence(false, time.Now())
		}
		s.log.Debug("Session: closed")
	})
}

func (s *Session) online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateOnline
}

// publishPresence persists the presence transition through the bridge and
// broadcasts it. The bridge write is best-effort: a failure is logged and the
// in-memory transition stands.
func (s *Session) publishPresence(online bool, at time.Time) {
	if err := s.store.SetOnline(context.Background(), s.UserID, online, at); err != nil {
		s.log.WithError(err).Warn("Session: presence store write failed")
	}
	s.router.Broadcast(Event{
		Name: EventPresenceChanged,
		Data: PresenceChangedPayload{UserID: s.UserID, Online: online, LastSeen: at},
	})
}
