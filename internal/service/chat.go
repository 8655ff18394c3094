package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/shubhashmahato/kurakani/internal/domain"
	"github.com/shubhashmahato/kurakani/internal/realtime"
	"github.com/shubhashmahato/kurakani/internal/repository"
)

// roomKey is the realtime room identifier of a chat.
func roomKey(chatID uint) string {
	return strconv.FormatUint(uint64(chatID), 10)
}

// userKey is the realtime identity of a user.
func userKey(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

// ChatService manages conversations and their durable participant lists.
// Membership changes are committed first and then routed: subscribed
// connections get the room broadcast, the affected user gets a multicast to
// all their devices.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	router   *realtime.Router
}

// NewChatService creates the service.
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository, router *realtime.Router) *ChatService {
	if chatRepo == nil || userRepo == nil || router == nil {
		panic("ChatService requires chat repository, user repository and router")
	}
	return &ChatService{chatRepo: chatRepo, userRepo: userRepo, router: router}
}

type memberEventPayload struct {
	ChatID uint `json:"chatId"`
	UserID uint `json:"userId"`
}

// Create opens a new conversation. The creator is always a participant.
// Every participant's devices receive a chat:member:added multicast so open
// clients can refresh their chat list.
func (s *ChatService) Create(ctx context.Context, creatorID uint, name string, isGroup bool, participantIDs []uint) (*domain.Chat, error) {
	logCtx := logrus.WithFields(logrus.Fields{"creator_id": creatorID, "is_group": isGroup})

	ids := map[uint]struct{}{creatorID: {}}
	for _, id := range participantIDs {
		ids[id] = struct{}{}
	}
	if !isGroup && len(ids) != 2 {
		return nil, ErrInvalidInput
	}

	participants := make([]domain.User, 0, len(ids))
	for id := range ids {
		user, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				logCtx.WithField("participant_id", id).Warn("Chat create rejected: unknown participant")
				return nil, ErrUserNotFound
			}
			logCtx.WithError(err).Error("Failed to load participant")
			return nil, ErrInternalServer
		}
		participants = append(participants, *user)
	}

	chat := &domain.Chat{
		Name:         name,
		IsGroup:      isGroup,
		CreatorID:    creatorID,
		Participants: participants,
	}
	if err := s.chatRepo.Save(ctx, chat); err != nil {
		logCtx.WithError(err).Error("Failed to save chat")
		return nil, ErrInternalServer
	}
	logCtx.WithField("chat_id", chat.ID).Info("Chat created")

	for _, p := range participants {
		s.router.UserMulticast(p.PresenceKey(), realtime.Event{
			Name: realtime.EventChatMemberAdded,
			Data: memberEventPayload{ChatID: chat.ID, UserID: p.ID},
		})
	}
	return chat, nil
}

// Get returns a chat; the caller must be a participant.
func (s *ChatService) Get(ctx context.Context, chatID, userID uint) (*domain.Chat, error) {
	if err := s.requireParticipant(ctx, chatID, userID); err != nil {
		return nil, err
	}
	chat, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, ErrInternalServer
	}
	return chat, nil
}

// ListForUser returns the chats the user participates in.
func (s *ChatService) ListForUser(ctx context.Context, userID uint) ([]domain.Chat, error) {
	chats, err := s.chatRepo.ListForUser(ctx, userID)
	if err != nil {
		logrus.WithField("user_id", userID).WithError(err).Error("Failed to list chats")
		return nil, ErrInternalServer
	}
	return chats, nil
}

// AddParticipant adds a user to a group chat. Only existing participants may
// add members.
func (s *ChatService) AddParticipant(ctx context.Context, chatID, actorID, userID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"chat_id": chatID, "actor_id": actorID, "user_id": userID})

	if err := s.requireParticipant(ctx, chatID, actorID); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalServer
	}
	if err := s.chatRepo.AddParticipant(ctx, chatID, userID); err != nil {
		logCtx.WithError(err).Error("Failed to add participant")
		return ErrInternalServer
	}
	logCtx.Info("Participant added")

	payload := memberEventPayload{ChatID: chatID, UserID: userID}
	s.router.RoomBroadcast(roomKey(chatID), realtime.Event{Name: realtime.EventChatMemberAdded, Data: payload}, "")
	s.router.UserMulticast(userKey(userID), realtime.Event{Name: realtime.EventChatMemberAdded, Data: payload})
	return nil
}

// RemoveParticipant removes a user from a group chat. Participants may
// remove themselves; only participants may remove anyone.
func (s *ChatService) RemoveParticipant(ctx context.Context, chatID, actorID, userID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"chat_id": chatID, "actor_id": actorID, "user_id": userID})

	if err := s.requireParticipant(ctx, chatID, actorID); err != nil {
		return err
	}
	if err := s.chatRepo.RemoveParticipant(ctx, chatID, userID); err != nil {
		logCtx.WithError(err).Error("Failed to remove participant")
		return ErrInternalServer
	}
	logCtx.Info("Participant removed")

	payload := memberEventPayload{ChatID: chatID, UserID: userID}
	s.router.RoomBroadcast(roomKey(chatID), realtime.Event{Name: realtime.EventChatMemberRemoved, Data: payload}, "")
	s.router.UserMulticast(userKey(userID), realtime.Event{Name: realtime.EventChatMemberRemoved, Data: payload})
	return nil
}

// requireParticipant maps the membership predicate to business errors.
func (s *ChatService) requireParticipant(ctx context.Context, chatID, userID uint) error {
	ok, err := s.chatRepo.IsParticipant(ctx, chatID, userID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"chat_id": chatID, "user_id": userID}).
			WithError(err).Error("Membership check failed")
		return ErrInternalServer
	}
	if !ok {
		return ErrNotParticipant
	}
	return nil
}
