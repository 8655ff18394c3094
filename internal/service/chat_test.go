package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shubhashmahato/kurakani/internal/domain"
	"github.com/shubhashmahato/kurakani/internal/realtime"
	"github.com/shubhashmahato/kurakani/internal/repository"
	"github.com/shubhashmahato/kurakani/internal/repository/mocks"
	"github.com/shubhashmahato/kurakani/internal/service"
)

// routedUsers builds a router with one recording connection registered per
// user key, so user multicasts can be observed.
func routedUsers(userKeys ...string) (*realtime.Router, map[string]*recordingSender) {
	registry := realtime.NewPresenceRegistry()
	rooms := realtime.NewRoomIndex()
	router := realtime.NewRouter(registry, rooms)

	senders := make(map[string]*recordingSender, len(userKeys))
	for _, key := range userKeys {
		sender := &recordingSender{}
		connID := "conn-" + key
		router.Attach(connID, sender)
		registry.Register(key, connID)
		senders[key] = sender
	}
	return router, senders
}

func TestChatService_Create_DirectChat(t *testing.T) {
	mockChatRepo := new(mocks.ChatRepository)
	mockUserRepo := new(mocks.UserRepository)
	router, senders := routedUsers("1", "2")
	svc := service.NewChatService(mockChatRepo, mockUserRepo, router)
	ctx := context.Background()

	mockUserRepo.On("FindByID", ctx, uint(1)).Return(&domain.User{ID: 1, Username: "asha"}, nil).Once()
	mockUserRepo.On("FindByID", ctx, uint(2)).Return(&domain.User{ID: 2, Username: "bipin"}, nil).Once()
	mockChatRepo.On("Save", ctx, mock.MatchedBy(func(chat *domain.Chat) bool {
		return !chat.IsGroup && chat.CreatorID == 1 && len(chat.Participants) == 2
	})).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Chat).ID = 42
		}).
		Return(nil).
		Once()

	chat, err := svc.Create(ctx, 1, "", false, []uint{2})

	require.NoError(t, err)
	assert.Equal(t, uint(42), chat.ID)
	assert.Equal(t, []string{realtime.EventChatMemberAdded}, senders["1"].eventNames(t))
	assert.Equal(t, []string{realtime.EventChatMemberAdded}, senders["2"].eventNames(t))

	mockChatRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestChatService_Create_DirectChatNeedsExactlyTwoParticipants(t *testing.T) {
	mockChatRepo := new(mocks.ChatRepository)
	mockUserRepo := new(mocks.UserRepository)
	router, _ := routedUsers()
	svc := service.NewChatService(mockChatRepo, mockUserRepo, router)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "", false, []uint{2, 3})
	assert.True(t, errors.Is(err, service.ErrInvalidInput))

	// The creator alone is one participant, not two.
	_, err = svc.Create(ctx, 1, "", false, []uint{1})
	assert.True(t, errors.Is(err, service.ErrInvalidInput))

	mockChatRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestChatService_Create_UnknownParticipant(t *testing.T) {
	mockChatRepo := new(mocks.ChatRepository)
	mockUserRepo := new(mocks.UserRepository)
	router, _ := routedUsers()
	svc := service.NewChatService(mockChatRepo, mockUserRepo, router)
	ctx := context.Background()

	mockUserRepo.On("FindByID", ctx, mock.AnythingOfType("uint")).
		Return(nil, repository.ErrUserNotFound)

	_, err := svc.Create(ctx, 1, "team", true, []uint{99})

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrUserNotFound))
	mockChatRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestChatService_Get_RequiresMembership(t *testing.T) {
	mockChatRepo := new(mocks.ChatRepository)
	mockUserRepo := new(mocks.UserRepository)
	router, _ := routedUsers()
	svc := service.NewChatService(mockChatRepo, mockUserRepo, router)
	ctx := context.Background()

	mockChatRepo.On("IsParticipant", ctx, uint(42), uint(9)).Return(false, nil).Once()

	_, err := svc.Get(ctx, 42, 9)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNotParticipant))
	mockChatRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestChatService_AddParticipant_BroadcastsAndMulticasts(t *testing.T) {
	mockChatRepo := new(mocks.ChatRepository)
	mockUserRepo := new(mocks.UserRepository)
	router, senders := routedUsers("5")
	svc := service.NewChatService(mockChatRepo, mockUserRepo, router)
	ctx := context.Background()

	mockChatRepo.On("IsParticipant", ctx, uint(42), uint(1)).Return(true, nil).Once()
	mockUserRepo.On("FindByID", ctx, uint(5)).Return(&domain.User{ID: 5}, nil).Once()
	mockChatRepo.On("AddParticipant", ctx, uint(42), uint(5)).Return(nil).Once()

	err := svc.AddParticipant(ctx, 42, 1, 5)

	require.NoError(t, err)
	assert.Equal(t, []string{realtime.EventChatMemberAdded}, senders["5"].eventNames(t),
		"the added user's devices learn about the chat even without a room subscription")

	mockChatRepo.AssertExpectations(t)
}

func TestChatService_AddParticipant_ActorMustBeMember(t *testing.T) {
	mockChatRepo := new(mocks.ChatRepository)
	mockUserRepo := new(mocks.UserRepository)
	router, _ := routedUsers()
	svc := service.NewChatService(mockChatRepo, mockUserRepo, router)
	ctx := context.Background()

	mockChatRepo.On("IsParticipant", ctx, uint(42), uint(9)).Return(false, nil).Once()

	err := svc.AddParticipant(ctx, 42, 9, 5)

	assert.True(t, errors.Is(err, service.ErrNotParticipant))
	mockChatRepo.AssertNotCalled(t, "AddParticipant", mock.Anything, mock.Anything, mock.Anything)
}

func TestChatService_RemoveParticipant(t *testing.T) {
	mockChatRepo := new(mocks.ChatRepository)
	mockUserRepo := new(mocks.UserRepository)
	router, senders := routedUsers("5")
	svc := service.NewChatService(mockChatRepo, mockUserRepo, router)
	ctx := context.Background()

	mockChatRepo.On("IsParticipant", ctx, uint(42), uint(5)).Return(true, nil).Once()
	mockChatRepo.On("RemoveParticipant", ctx, uint(42), uint(5)).Return(nil).Once()

	// Self-removal: the actor leaves the chat.
	err := svc.RemoveParticipant(ctx, 42, 5, 5)

	require.NoError(t, err)
	assert.Equal(t, []string{realtime.EventChatMemberRemoved}, senders["5"].eventNames(t))
	mockChatRepo.AssertExpectations(t)
}
