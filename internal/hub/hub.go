package hub

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/shubhashmahato/kurakani/internal/realtime"
)

// WebSocket timing constants shared by the client pumps.
const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size allowed from a peer.
	maxMessageSize = 4096

	// Per-connection outbound queue depth.
	sendQueueSize = 256
)

// Hub owns the wiring of the realtime core (presence registry, room index,
// event router and durable-state bridge) and hands sessions to incoming
// connections. Everything is dependency-injected; there is no package-global
// server handle, so the core is unit-testable without a live transport.
type Hub struct {
	registry *realtime.PresenceRegistry
	rooms    *realtime.RoomIndex
	router   *realtime.Router
	store    realtime.PresenceStore
}

// NewHub assembles the realtime core over the given presence store.
func NewHub(store realtime.PresenceStore) *Hub {
	if store == nil {
		panic("hub: PresenceStore cannot be nil")
	}
	registry := realtime.NewPresenceRegistry()
	rooms := realtime.NewRoomIndex()
	return &Hub{
		registry: registry,
		rooms:    rooms,
		router:   realtime.NewRouter(registry, rooms),
		store:    store,
	}
}

// Router exposes the event router to the REST layer, which routes events
// after committing durable writes.
func (h *Hub) Router() *realtime.Router { return h.router }

// Registry exposes read access to live presence for REST reads.
func (h *Hub) Registry() *realtime.PresenceRegistry { return h.registry }

// NewClient binds an upgraded websocket connection, already authenticated as
// userID, to a fresh session and attaches it to the router. The caller must
// invoke Run to start the pumps.
func (h *Hub) NewClient(conn *websocket.Conn, userID string) *Client {
	session := realtime.NewSession(userID, h.registry, h.rooms, h.router, h.store)
	client := newClient(conn, session)
	h.router.Attach(session.ID, client)
	return client
}
