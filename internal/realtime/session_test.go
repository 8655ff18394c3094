package realtime_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhashmahato/kurakani/internal/realtime"
)

// fakeStore records every presence write the session pushes through the
// durable-state bridge.
type fakeStore struct {
	mu     sync.Mutex
	writes []presenceWrite
}

type presenceWrite struct {
	userID string
	online bool
}

func (f *fakeStore) SetOnline(_ context.Context, userID string, online bool, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, presenceWrite{userID: userID, online: online})
	return nil
}

func (f *fakeStore) all() []presenceWrite {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]presenceWrite(nil), f.writes...)
}

type sessionFixture struct {
	registry *realtime.PresenceRegistry
	rooms    *realtime.RoomIndex
	router   *realtime.Router
	store    *fakeStore
}

func newSessionFixture() *sessionFixture {
	registry := realtime.NewPresenceRegistry()
	rooms := realtime.NewRoomIndex()
	return &sessionFixture{
		registry: registry,
		rooms:    rooms,
		router:   realtime.NewRouter(registry, rooms),
		store:    &fakeStore{},
	}
}

func (fx *sessionFixture) newSession(t *testing.T, userID string) (*realtime.Session, *fakeSender) {
	t.Helper()
	session := realtime.NewSession(userID, fx.registry, fx.rooms, fx.router, fx.store)
	sender := newFakeSender()
	fx.router.Attach(session.ID, sender)
	return session, sender
}

func TestSession_AnnounceBringsUserOnline(t *testing.T) {
	fx := newSessionFixture()
	session, _ := fx.newSession(t, "7")
	observer, observerSender := fx.newSession(t, "9")
	observer.Announce("9")
	observerSender.payloads = nil

	session.Announce("7")

	assert.Equal(t, realtime.StateOnline, session.State())
	assert.True(t, fx.registry.IsOnline("7"))
	require.Equal(t, []presenceWrite{{userID: "7", online: true}}, fx.store.all())
	assert.Equal(t, []string{realtime.EventPresenceChanged}, observerSender.events(t))
}

func TestSession_SecondDeviceDoesNotReannounce(t *testing.T) {
	fx := newSessionFixture()
	phone, _ := fx.newSession(t, "7")
	laptop, _ := fx.newSession(t, "7")
	phone.Announce("7")

	laptop.Announce("7")

	assert.Len(t, fx.store.all(), 1, "only the first connection is an online transition")
}

func TestSession_AnnounceIdentityMismatchIsIgnored(t *testing.T) {
	fx := newSessionFixture()
	session, _ := fx.newSession(t, "7")

	session.Announce("999")

	assert.Equal(t, realtime.StateConnecting, session.State())
	assert.False(t, fx.registry.IsOnline("999"))
	assert.False(t, fx.registry.IsOnline("7"))
	assert.Empty(t, fx.store.all())
}

func TestSession_RoomActionsRequireAnnounce(t *testing.T) {
	fx := newSessionFixture()
	session, _ := fx.newSession(t, "7")

	session.Join("room-1")
	assert.Empty(t, fx.rooms.MembersOf("room-1"), "join before announce must be ignored")

	session.Announce("7")
	session.Join("room-1")
	assert.ElementsMatch(t, []string{session.ID}, fx.rooms.MembersOf("room-1"))

	session.Leave("room-1")
	assert.Empty(t, fx.rooms.MembersOf("room-1"))
}

func TestSession_TypingExcludesTheTypist(t *testing.T) {
	fx := newSessionFixture()
	typist, typistSender := fx.newSession(t, "7")
	reader, readerSender := fx.newSession(t, "9")
	typist.Announce("7")
	reader.Announce("9")
	typist.Join("room-1")
	reader.Join("room-1")
	typistSender.payloads = nil
	readerSender.payloads = nil

	typist.Typing("room-1", "asha", true)

	assert.Zero(t, typistSender.count())
	assert.Equal(t, []string{realtime.EventTypingStart}, readerSender.events(t))
}

func TestSession_CloseLastConnectionGoesOffline(t *testing.T) {
	fx := newSessionFixture()
	session, _ := fx.newSession(t, "7")
	session.Announce("7")
	session.Join("room-1")

	session.Close()

	assert.Equal(t, realtime.StateClosed, session.State())
	assert.False(t, fx.registry.IsOnline("7"))
	assert.Empty(t, fx.rooms.MembersOf("room-1"))
	assert.Equal(t, []presenceWrite{
		{userID: "7", online: true},
		{userID: "7", online: false},
	}, fx.store.all())
}

func TestSession_CloseWithAnotherDeviceOpenStaysOnline(t *testing.T) {
	fx := newSessionFixture()
	phone, _ := fx.newSession(t, "7")
	laptop, _ := fx.newSession(t, "7")
	phone.Announce("7")
	laptop.Announce("7")

	phone.Close()

	assert.True(t, fx.registry.IsOnline("7"))
	assert.Equal(t, []presenceWrite{{userID: "7", online: true}}, fx.store.all(),
		"no offline write while a device remains connected")
}

func TestSession_DoubleCloseRunsCleanupOnce(t *testing.T) {
	fx := newSessionFixture()
	session, _ := fx.newSession(t, "7")
	session.Announce("7")

	session.Close()
	session.Close()

	offline := 0
	for _, w := range fx.store.all() {
		if !w.online {
			offline++
		}
	}
	assert.Equal(t, 1, offline, "cleanup must fire exactly once")
}

func TestSession_CloseBeforeAnnounceTouchesNoPresence(t *testing.T) {
	fx := newSessionFixture()
	session, _ := fx.newSession(t, "7")

	session.Close()

	assert.Empty(t, fx.store.all())
	assert.False(t, fx.registry.IsOnline("7"))
}

func TestSession_RetireGoesOfflineButKeepsConnection(t *testing.T) {
	fx := newSessionFixture()
	session, _ := fx.newSession(t, "7")
	session.Announce("7")

	session.Retire("7")

	assert.Equal(t, realtime.StateConnecting, session.State())
	assert.False(t, fx.registry.IsOnline("7"))
	assert.Equal(t, []presenceWrite{
		{userID: "7", online: true},
		{userID: "7", online: false},
	}, fx.store.all())

	// Announcing again brings the user back without a new transport.
	session.Announce("7")
	assert.True(t, fx.registry.IsOnline("7"))
}

func TestSession_AnnounceRacingCloseNeverLeaksPresence(t *testing.T) {
	// An announce arriving from the read pump can race a close fired by the
	// write pump's error path. Whichever side wins, a closed session must
	// not stay registered and every online write needs its offline partner.
	for i := 0; i < 1000; i++ {
		fx := newSessionFixture()
		session, _ := fx.newSession(t, "7")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			session.Announce("7")
		}()
		go func() {
			defer wg.Done()
			session.Close()
		}()
		wg.Wait()

		require.False(t, fx.registry.IsOnline("7"),
			"a closed session must never leave its user registered")

		online, offline := 0, 0
		for _, w := range fx.store.all() {
			if w.online {
				online++
			} else {
				offline++
			}
		}
		require.Equal(t, online, offline,
			"presence writes must balance, got %d online / %d offline", online, offline)
	}
}

func TestSession_OfflineBroadcastDoesNotReachTheClosingConnection(t *testing.T) {
	fx := newSessionFixture()
	session, sender := fx.newSession(t, "7")
	session.Announce("7")
	sender.payloads = nil

	session.Close()

	assert.Zero(t, sender.count(), "the closing connection detaches before the offline broadcast")
}
