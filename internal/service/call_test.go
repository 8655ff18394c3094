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

func TestCallService_Initiate_RingsOtherParticipantsOnly(t *testing.T) {
	mockCallRepo := new(mocks.CallRepository)
	mockChatRepo := new(mocks.ChatRepository)
	router, senders := routedUsers("1", "2", "3")
	svc := service.NewCallService(mockCallRepo, mockChatRepo, router)
	ctx := context.Background()

	chat := &domain.Chat{
		ID:      42,
		IsGroup: true,
		Participants: []domain.User{
			{ID: 1}, {ID: 2}, {ID: 3},
		},
	}
	mockChatRepo.On("FindByID", ctx, uint(42)).Return(chat, nil).Once()
	mockCallRepo.On("Save", ctx, mock.MatchedBy(func(call *domain.Call) bool {
		return call.ChatID == 42 && call.CallerID == 1 &&
			call.Kind == domain.CallKindVideo && call.Status == domain.CallStatusRinging
	})).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Call).ID = 77
		}).
		Return(nil).
		Once()

	call, err := svc.Initiate(ctx, 42, 1, domain.CallKindVideo)

	require.NoError(t, err)
	assert.Equal(t, uint(77), call.ID)
	assert.Empty(t, senders["1"].eventNames(t), "the caller is never rung")
	assert.Equal(t, []string{realtime.EventCallIncoming}, senders["2"].eventNames(t))
	assert.Equal(t, []string{realtime.EventCallIncoming}, senders["3"].eventNames(t))

	mockCallRepo.AssertExpectations(t)
	mockChatRepo.AssertExpectations(t)
}

func TestCallService_Initiate_InvalidKind(t *testing.T) {
	mockCallRepo := new(mocks.CallRepository)
	mockChatRepo := new(mocks.ChatRepository)
	router, _ := routedUsers()
	svc := service.NewCallService(mockCallRepo, mockChatRepo, router)

	_, err := svc.Initiate(context.Background(), 42, 1, "hologram")

	assert.True(t, errors.Is(err, service.ErrInvalidInput))
	mockChatRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCallService_Initiate_CallerMustBeParticipant(t *testing.T) {
	mockCallRepo := new(mocks.CallRepository)
	mockChatRepo := new(mocks.ChatRepository)
	router, _ := routedUsers()
	svc := service.NewCallService(mockCallRepo, mockChatRepo, router)
	ctx := context.Background()

	chat := &domain.Chat{ID: 42, Participants: []domain.User{{ID: 2}, {ID: 3}}}
	mockChatRepo.On("FindByID", ctx, uint(42)).Return(chat, nil).Once()

	_, err := svc.Initiate(ctx, 42, 9, domain.CallKindAudio)

	assert.True(t, errors.Is(err, service.ErrNotParticipant))
	mockCallRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCallService_UpdateStatus_AcceptedStampsStart(t *testing.T) {
	mockCallRepo := new(mocks.CallRepository)
	mockChatRepo := new(mocks.ChatRepository)
	router, _ := routedUsers()
	svc := service.NewCallService(mockCallRepo, mockChatRepo, router)
	ctx := context.Background()

	stored := &domain.Call{ID: 77, ChatID: 42, CallerID: 1, Status: domain.CallStatusRinging}
	mockCallRepo.On("FindByID", ctx, uint(77)).Return(stored, nil).Once()
	mockChatRepo.On("IsParticipant", ctx, uint(42), uint(2)).Return(true, nil).Once()
	mockCallRepo.On("Save", ctx, mock.MatchedBy(func(call *domain.Call) bool {
		return call.Status == domain.CallStatusAccepted && call.StartedAt != nil
	})).Return(nil).Once()

	call, err := svc.UpdateStatus(ctx, 77, 2, domain.CallStatusAccepted)

	require.NoError(t, err)
	assert.NotNil(t, call.StartedAt)
	assert.Nil(t, call.EndedAt)
	mockCallRepo.AssertExpectations(t)
}

func TestCallService_UpdateStatus_EndedStampsEnd(t *testing.T) {
	mockCallRepo := new(mocks.CallRepository)
	mockChatRepo := new(mocks.ChatRepository)
	router, _ := routedUsers()
	svc := service.NewCallService(mockCallRepo, mockChatRepo, router)
	ctx := context.Background()

	stored := &domain.Call{ID: 77, ChatID: 42, CallerID: 1, Status: domain.CallStatusAccepted}
	mockCallRepo.On("FindByID", ctx, uint(77)).Return(stored, nil).Once()
	mockChatRepo.On("IsParticipant", ctx, uint(42), uint(1)).Return(true, nil).Once()
	mockCallRepo.On("Save", ctx, mock.AnythingOfType("*domain.Call")).Return(nil).Once()

	call, err := svc.UpdateStatus(ctx, 77, 1, domain.CallStatusEnded)

	require.NoError(t, err)
	assert.NotNil(t, call.EndedAt)
}

func TestCallService_UpdateStatus_InvalidStatus(t *testing.T) {
	mockCallRepo := new(mocks.CallRepository)
	mockChatRepo := new(mocks.ChatRepository)
	router, _ := routedUsers()
	svc := service.NewCallService(mockCallRepo, mockChatRepo, router)

	_, err := svc.UpdateStatus(context.Background(), 77, 1, domain.CallStatusRinging)

	assert.True(t, errors.Is(err, service.ErrInvalidInput),
		"a call cannot transition back to ringing")
	mockCallRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCallService_UpdateStatus_UnknownCall(t *testing.T) {
	mockCallRepo := new(mocks.CallRepository)
	mockChatRepo := new(mocks.ChatRepository)
	router, _ := routedUsers()
	svc := service.NewCallService(mockCallRepo, mockChatRepo, router)
	ctx := context.Background()

	mockCallRepo.On("FindByID", ctx, uint(404)).Return(nil, repository.ErrCallNotFound).Once()

	_, err := svc.UpdateStatus(ctx, 404, 1, domain.CallStatusEnded)

	assert.True(t, errors.Is(err, service.ErrCallNotFound))
}
