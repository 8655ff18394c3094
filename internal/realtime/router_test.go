package realtime_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhashmahato/kurakani/internal/realtime"
)

// fakeSender records every payload queued to it; accept controls the Send
// return value to simulate a saturated connection.
type fakeSender struct {
	mu       sync.Mutex
	accept   bool
	payloads [][]byte
}

func newFakeSender() *fakeSender { return &fakeSender{accept: true} }

func (f *fakeSender) Send(message []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.accept {
		return false
	}
	f.payloads = append(f.payloads, message)
	return true
}

func (f *fakeSender) events(t *testing.T) []string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.payloads))
	for _, p := range f.payloads {
		var envelope struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(p, &envelope))
		names = append(names, envelope.Event)
	}
	return names
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

func newTestRouter() (*realtime.Router, *realtime.PresenceRegistry, *realtime.RoomIndex) {
	registry := realtime.NewPresenceRegistry()
	rooms := realtime.NewRoomIndex()
	return realtime.NewRouter(registry, rooms), registry, rooms
}

func TestRouter_RoomBroadcastReachesExactlyTheSubscribers(t *testing.T) {
	router, _, rooms := newTestRouter()
	inRoom1, inRoom2, outsider := newFakeSender(), newFakeSender(), newFakeSender()
	router.Attach("c1", inRoom1)
	router.Attach("c2", inRoom2)
	router.Attach("c3", outsider)
	rooms.Join("room-1", "c1")
	rooms.Join("room-1", "c2")
	rooms.Join("room-2", "c3")

	router.RoomBroadcast("room-1", realtime.Event{Name: realtime.EventMessageNew, Data: "hi"}, "")

	assert.Equal(t, []string{realtime.EventMessageNew}, inRoom1.events(t))
	assert.Equal(t, []string{realtime.EventMessageNew}, inRoom2.events(t))
	assert.Zero(t, outsider.count(), "a connection outside the room must receive nothing")
}

func TestRouter_RoomBroadcastExcludesTheOrigin(t *testing.T) {
	router, _, rooms := newTestRouter()
	typist, other := newFakeSender(), newFakeSender()
	router.Attach("typist", typist)
	router.Attach("other", other)
	rooms.Join("room-1", "typist")
	rooms.Join("room-1", "other")

	ev := realtime.Event{
		Name: realtime.EventTypingStart,
		Data: realtime.TypingPayload{RoomID: "room-1", UserID: "7", Username: "asha"},
	}
	router.RoomBroadcast("room-1", ev, "typist")

	assert.Zero(t, typist.count(), "the typist must not see their own indicator")
	assert.Equal(t, 1, other.count())
}

func TestRouter_UserMulticastReachesEveryDevice(t *testing.T) {
	router, registry, _ := newTestRouter()
	phone, laptop, stranger := newFakeSender(), newFakeSender(), newFakeSender()
	router.Attach("phone", phone)
	router.Attach("laptop", laptop)
	router.Attach("stranger", stranger)
	registry.Register("7", "phone")
	registry.Register("7", "laptop")
	registry.Register("9", "stranger")

	router.UserMulticast("7", realtime.Event{Name: realtime.EventCallIncoming, Data: "ring"})

	assert.Equal(t, 1, phone.count())
	assert.Equal(t, 1, laptop.count())
	assert.Zero(t, stranger.count())
}

func TestRouter_BroadcastReachesEveryAttachedConnection(t *testing.T) {
	router, _, _ := newTestRouter()
	a, b := newFakeSender(), newFakeSender()
	router.Attach("a", a)
	router.Attach("b", b)

	router.Broadcast(realtime.Event{Name: realtime.EventPresenceChanged, Data: "x"})

	assert.Equal(t, 1, a.count())
	assert.Equal(t, 1, b.count())
}

func TestRouter_SaturatedTargetIsDroppedSilently(t *testing.T) {
	router, _, rooms := newTestRouter()
	healthy, saturated := newFakeSender(), newFakeSender()
	saturated.accept = false
	router.Attach("healthy", healthy)
	router.Attach("saturated", saturated)
	rooms.Join("room-1", "healthy")
	rooms.Join("room-1", "saturated")

	assert.NotPanics(t, func() {
		router.RoomBroadcast("room-1", realtime.Event{Name: realtime.EventMessageNew, Data: "hi"}, "")
	})
	assert.Equal(t, 1, healthy.count(), "one slow target must not abort the batch")
}

func TestRouter_DetachedConnectionIsSkipped(t *testing.T) {
	router, _, rooms := newTestRouter()
	gone := newFakeSender()
	router.Attach("gone", gone)
	rooms.Join("room-1", "gone")
	router.Detach("gone")

	router.RoomBroadcast("room-1", realtime.Event{Name: realtime.EventMessageNew, Data: "hi"}, "")

	assert.Zero(t, gone.count())
}

func TestRouter_PerSourceDeliveryOrderIsPreserved(t *testing.T) {
	router, _, rooms := newTestRouter()
	receiver := newFakeSender()
	router.Attach("r", receiver)
	rooms.Join("room-1", "r")

	router.RoomBroadcast("room-1", realtime.Event{Name: realtime.EventMessageNew, Data: 1}, "")
	router.RoomBroadcast("room-1", realtime.Event{Name: realtime.EventMessageEdited, Data: 2}, "")
	router.RoomBroadcast("room-1", realtime.Event{Name: realtime.EventMessageDeleted, Data: 3}, "")

	assert.Equal(t, []string{
		realtime.EventMessageNew,
		realtime.EventMessageEdited,
		realtime.EventMessageDeleted,
	}, receiver.events(t))
}
