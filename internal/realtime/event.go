package realtime

import (
	"encoding/json"
	"time"
)

// Inbound actions a connected client may send. The wire format is a JSON
// envelope {"action": "...", "data": {...}}.
const (
	ActionPresenceAnnounce = "presence:announce"
	ActionPresenceRetire   = "presence:retire"
	ActionRoomJoin         = "room:join"
	ActionRoomLeave        = "room:leave"
	ActionTypingStart      = "typing:start"
	ActionTypingStop       = "typing:stop"
)

// Outbound event names delivered to clients as {"event": "...", "data": {...}}.
const (
	EventPresenceChanged   = "presence:changed"
	EventTypingStart       = "typing:start"
	EventTypingStop        = "typing:stop"
	EventMessageNew        = "message:new"
	EventMessageEdited     = "message:edited"
	EventMessageDeleted    = "message:deleted"
	EventMessageReaction   = "message:reaction"
	EventMessageRead       = "message:read"
	EventMessageDelivered  = "message:delivered"
	EventCallIncoming      = "call:incoming"
	EventCallStatus        = "call:status"
	EventChatMemberAdded   = "chat:member:added"
	EventChatMemberRemoved = "chat:member:removed"
)

// Event is one outbound message before encoding. Data must be JSON-marshalable.
type Event struct {
	Name string
	Data interface{}
}

type eventEnvelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Encode serializes the event into its wire envelope.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(eventEnvelope{Event: e.Name, Data: e.Data})
}

// PresenceChangedPayload is broadcast globally whenever a user transitions
// between online and offline.
type PresenceChangedPayload struct {
	UserID   string    `json:"userId"`
	Online   bool      `json:"online"`
	LastSeen time.Time `json:"lastSeen"`
}

// TypingPayload relays typing indicators to a room, excluding the typist.
type TypingPayload struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	Username string `json:"username,omitempty"`
}
