package realtime

import (
	"sync"
)

// RoomIndex maps a room (one chat conversation) to the set of connection IDs
// currently subscribed to it. Membership here is subscription-based, driven
// by explicit join/leave actions from clients, not derived from the chat's
// persisted participant list: a participant who never opened the chat screen
// is not subscribed and relies on the durable REST path instead. This keeps
// event fan-out free of storage reads.
//
// A reverse index (connection -> rooms) is maintained so that LeaveAll on
// disconnect does not scan every room.
type RoomIndex struct {
	mu    sync.RWMutex
	rooms map[string]map[string]struct{}
	conns map[string]map[string]struct{}
}

// NewRoomIndex creates an empty index.
func NewRoomIndex() *RoomIndex {
	return &RoomIndex{
		rooms: make(map[string]map[string]struct{}),
		conns: make(map[string]map[string]struct{}),
	}
}

// Join subscribes connID to roomID. Idempotent.
func (x *RoomIndex) Join(roomID, connID string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	room, ok := x.rooms[roomID]
	if !ok {
		room = make(map[string]struct{})
		x.rooms[roomID] = room
	}
	room[connID] = struct{}{}

	joined, ok := x.conns[connID]
	if !ok {
		joined = make(map[string]struct{})
		x.conns[connID] = joined
	}
	joined[roomID] = struct{}{}
}

// Leave removes connID's subscription to roomID. A leave for a room the
// connection never joined is silently absorbed.
func (x *RoomIndex) Leave(roomID, connID string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.leaveLocked(roomID, connID)
}

func (x *RoomIndex) leaveLocked(roomID, connID string) {
	if room, ok := x.rooms[roomID]; ok {
		delete(room, connID)
		if len(room) == 0 {
			delete(x.rooms, roomID)
		}
	}
	if joined, ok := x.conns[connID]; ok {
		delete(joined, roomID)
		if len(joined) == 0 {
			delete(x.conns, connID)
		}
	}
}

// LeaveAll removes connID from every room it was subscribed to. Called once
// on disconnect; safe when the connection was never in any room.
func (x *RoomIndex) LeaveAll(connID string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	for roomID := range x.conns[connID] {
		if room, ok := x.rooms[roomID]; ok {
			delete(room, connID)
			if len(room) == 0 {
				delete(x.rooms, roomID)
			}
		}
	}
	delete(x.conns, connID)
}

// MembersOf returns a snapshot of the connection IDs subscribed to roomID.
func (x *RoomIndex) MembersOf(roomID string) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()

	room, ok := x.rooms[roomID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(room))
	for id := range room {
		ids = append(ids, id)
	}
	return ids
}

// RoomsOf returns a snapshot of the room IDs connID is subscribed to.
func (x *RoomIndex) RoomsOf(connID string) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()

	joined, ok := x.conns[connID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(joined))
	for id := range joined {
		ids = append(ids, id)
	}
	return ids
}
