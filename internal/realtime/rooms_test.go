package realtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shubhashmahato/kurakani/internal/realtime"
)

func TestRoomIndex_JoinAndMembers(t *testing.T) {
	idx := realtime.NewRoomIndex()

	idx.Join("room-1", "conn-a")
	idx.Join("room-1", "conn-b")
	idx.Join("room-2", "conn-a")

	assert.ElementsMatch(t, []string{"conn-a", "conn-b"}, idx.MembersOf("room-1"))
	assert.ElementsMatch(t, []string{"conn-a"}, idx.MembersOf("room-2"))
	assert.ElementsMatch(t, []string{"room-1", "room-2"}, idx.RoomsOf("conn-a"))
}

func TestRoomIndex_JoinIsIdempotent(t *testing.T) {
	idx := realtime.NewRoomIndex()

	idx.Join("room-1", "conn-a")
	idx.Join("room-1", "conn-a")

	assert.Len(t, idx.MembersOf("room-1"), 1)
}

func TestRoomIndex_Leave(t *testing.T) {
	idx := realtime.NewRoomIndex()
	idx.Join("room-1", "conn-a")
	idx.Join("room-1", "conn-b")

	idx.Leave("room-1", "conn-a")

	assert.ElementsMatch(t, []string{"conn-b"}, idx.MembersOf("room-1"))
	assert.Empty(t, idx.RoomsOf("conn-a"))
}

func TestRoomIndex_LeaveUnknownRoomIsNoOp(t *testing.T) {
	idx := realtime.NewRoomIndex()
	idx.Join("room-1", "conn-a")

	idx.Leave("room-2", "conn-a")
	idx.Leave("room-1", "never-joined")

	assert.ElementsMatch(t, []string{"conn-a"}, idx.MembersOf("room-1"))
}

func TestRoomIndex_EmptyRoomIsDropped(t *testing.T) {
	idx := realtime.NewRoomIndex()
	idx.Join("room-1", "conn-a")

	idx.Leave("room-1", "conn-a")

	assert.Nil(t, idx.MembersOf("room-1"))
}

func TestRoomIndex_LeaveAll(t *testing.T) {
	idx := realtime.NewRoomIndex()
	idx.Join("room-1", "conn-a")
	idx.Join("room-2", "conn-a")
	idx.Join("room-1", "conn-b")

	idx.LeaveAll("conn-a")

	assert.ElementsMatch(t, []string{"conn-b"}, idx.MembersOf("room-1"))
	assert.Nil(t, idx.MembersOf("room-2"))
	assert.Empty(t, idx.RoomsOf("conn-a"))
}

func TestRoomIndex_LeaveAllWithoutJoins(t *testing.T) {
	idx := realtime.NewRoomIndex()

	assert.NotPanics(t, func() { idx.LeaveAll("conn-a") })
}
