package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shubhashmahato/kurakani/internal/domain"
	"github.com/shubhashmahato/kurakani/internal/realtime"
	"github.com/shubhashmahato/kurakani/internal/repository"
)

// CallService handles call signaling. The ring reaches the callee as a
// user multicast (every one of their devices), status updates go to the chat
// room; the call row itself is just the history log.
type CallService struct {
	callRepo repository.CallRepository
	chatRepo repository.ChatRepository
	router   *realtime.Router
}

// NewCallService creates the service.
func NewCallService(callRepo repository.CallRepository, chatRepo repository.ChatRepository, router *realtime.Router) *CallService {
	if callRepo == nil || chatRepo == nil || router == nil {
		panic("CallService requires call repository, chat repository and router")
	}
	return &CallService{callRepo: callRepo, chatRepo: chatRepo, router: router}
}

type incomingCallPayload struct {
	CallID   uint   `json:"callId"`
	ChatID   uint   `json:"chatId"`
	CallerID uint   `json:"callerId"`
	Kind     string `json:"kind"`
}

type callStatusPayload struct {
	CallID uint   `json:"callId"`
	ChatID uint   `json:"chatId"`
	Status string `json:"status"`
}

// Initiate starts a call in a chat and rings every other participant's
// devices with call:incoming.
func (s *CallService) Initiate(ctx context.Context, chatID, callerID uint, kind string) (*domain.Call, error) {
	logCtx := logrus.WithFields(logrus.Fields{"chat_id": chatID, "caller_id": callerID, "kind": kind})

	if kind != domain.CallKindAudio && kind != domain.CallKindVideo {
		return nil, ErrInvalidInput
	}

	chat, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return nil, ErrChatNotFound
		}
		logCtx.WithError(err).Error("Failed to load chat for call")
		return nil, ErrInternalServer
	}

	isParticipant := false
	for _, p := range chat.Participants {
		if p.ID == callerID {
			isParticipant = true
			break
		}
	}
	if !isParticipant {
		return nil, ErrNotParticipant
	}

	call := &domain.Call{
		ChatID:   chatID,
		CallerID: callerID,
		Kind:     kind,
		Status:   domain.CallStatusRinging,
	}
	if err := s.callRepo.Save(ctx, call); err != nil {
		logCtx.WithError(err).Error("Failed to save call")
		return nil, ErrInternalServer
	}
	logCtx.WithField("call_id", call.ID).Info("Call initiated")

	ring := realtime.Event{
		Name: realtime.EventCallIncoming,
		Data: incomingCallPayload{CallID: call.ID, ChatID: chatID, CallerID: callerID, Kind: kind},
	}
	for _, p := range chat.Participants {
		if p.ID == callerID {
			continue
		}
		s.router.UserMulticast(p.PresenceKey(), ring)
	}

	s.router.RoomBroadcast(roomKey(chatID), realtime.Event{
		Name: realtime.EventCallStatus,
		Data: callStatusPayload{CallID: call.ID, ChatID: chatID, Status: call.Status},
	}, "")
	return call, nil
}

// UpdateStatus advances a call through its lifecycle and broadcasts
// call:status to the chat room.
func (s *CallService) UpdateStatus(ctx context.Context, callID, userID uint, status string) (*domain.Call, error) {
	logCtx := logrus.WithFields(logrus.Fields{"call_id": callID, "user_id": userID, "status": status})

	switch status {
	case domain.CallStatusAccepted, domain.CallStatusDeclined, domain.CallStatusEnded, domain.CallStatusMissed:
	default:
		return nil, ErrInvalidInput
	}

	call, err := s.callRepo.FindByID(ctx, callID)
	if err != nil {
		if errors.Is(err, repository.ErrCallNotFound) {
			return nil, ErrCallNotFound
		}
		logCtx.WithError(err).Error("Failed to load call")
		return nil, ErrInternalServer
	}

	ok, err := s.chatRepo.IsParticipant(ctx, call.ChatID, userID)
	if err != nil {
		logCtx.WithError(err).Error("Membership check failed")
		return nil, ErrInternalServer
	}
	if !ok {
		return nil, ErrNotParticipant
	}

	now := time.Now()
	call.Status = status
	switch status {
	case domain.CallStatusAccepted:
		call.StartedAt = &now
	case domain.CallStatusEnded, domain.CallStatusDeclined, domain.CallStatusMissed:
		call.EndedAt = &now
	}
	if err := s.callRepo.Save(ctx, call); err != nil {
		logCtx.WithError(err).Error("Failed to save call status")
		return nil, ErrInternalServer
	}
	logCtx.Info("Call status updated")

	s.router.RoomBroadcast(roomKey(call.ChatID), realtime.Event{
		Name: realtime.EventCallStatus,
		Data: callStatusPayload{CallID: call.ID, ChatID: call.ChatID, Status: call.Status},
	}, "")
	return call, nil
}
