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

// MessageService is the durable write path for messages. Every mutation
// follows the same collaborator contract with the realtime core: check the
// membership predicate, commit the write, then route the event to the chat's
// room. The broadcast is best-effort; clients that were not subscribed pick
// the change up when they next load the chat.
type MessageService struct {
	messageRepo repository.MessageRepository
	chatRepo    repository.ChatRepository
	router      *realtime.Router
}

// NewMessageService creates the service.
func NewMessageService(messageRepo repository.MessageRepository, chatRepo repository.ChatRepository, router *realtime.Router) *MessageService {
	if messageRepo == nil || chatRepo == nil || router == nil {
		panic("MessageService requires message repository, chat repository and router")
	}
	return &MessageService{messageRepo: messageRepo, chatRepo: chatRepo, router: router}
}

type reactionEventPayload struct {
	MessageID uint   `json:"messageId"`
	ChatID    uint   `json:"chatId"`
	UserID    uint   `json:"userId"`
	Emoji     string `json:"emoji"`
	Action    string `json:"action"`
}

type receiptEventPayload struct {
	MessageID uint      `json:"messageId"`
	ChatID    uint      `json:"chatId"`
	UserID    uint      `json:"userId"`
	At        time.Time `json:"at"`
}

type deletedEventPayload struct {
	MessageID uint `json:"messageId"`
	ChatID    uint `json:"chatId"`
}

// Send persists a message and broadcasts message:new to the chat room.
func (s *MessageService) Send(ctx context.Context, chatID, senderID uint, kind, content string) (*domain.Message, error) {
	logCtx := logrus.WithFields(logrus.Fields{"chat_id": chatID, "sender_id": senderID})

	if content == "" {
		return nil, ErrInvalidInput
	}
	if kind == "" {
		kind = domain.MessageKindText
	}
	if err := s.requireParticipant(ctx, chatID, senderID); err != nil {
		return nil, err
	}

	message := &domain.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Kind:     kind,
		Content:  content,
	}
	if err := s.messageRepo.Save(ctx, message); err != nil {
		logCtx.WithError(err).Error("Failed to save message")
		return nil, ErrInternalServer
	}
	logCtx.WithField("message_id", message.ID).Debug("Message saved")

	s.router.RoomBroadcast(roomKey(chatID), realtime.Event{Name: realtime.EventMessageNew, Data: message}, "")
	return message, nil
}

// List returns a chat's recent messages for a participant.
func (s *MessageService) List(ctx context.Context, chatID, userID uint, limit int) ([]domain.Message, error) {
	if err := s.requireParticipant(ctx, chatID, userID); err != nil {
		return nil, err
	}
	messages, err := s.messageRepo.ListByChat(ctx, chatID, limit)
	if err != nil {
		logrus.WithField("chat_id", chatID).WithError(err).Error("Failed to list messages")
		return nil, ErrInternalServer
	}
	return messages, nil
}

// Edit replaces a message's content. Only the sender may edit.
func (s *MessageService) Edit(ctx context.Context, messageID, userID uint, content string) (*domain.Message, error) {
	if content == "" {
		return nil, ErrInvalidInput
	}
	message, err := s.loadMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.SenderID != userID {
		return nil, ErrNotSender
	}

	message.Content = content
	message.Edited = true
	if err := s.messageRepo.Save(ctx, message); err != nil {
		logrus.WithField("message_id", messageID).WithError(err).Error("Failed to save edited message")
		return nil, ErrInternalServer
	}

	s.router.RoomBroadcast(roomKey(message.ChatID), realtime.Event{Name: realtime.EventMessageEdited, Data: message}, "")
	return message, nil
}

// Delete tombstones a message. Only the sender may delete.
func (s *MessageService) Delete(ctx context.Context, messageID, userID uint) error {
	message, err := s.loadMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if message.SenderID != userID {
		return ErrNotSender
	}

	message.Deleted = true
	message.Content = ""
	if err := s.messageRepo.Save(ctx, message); err != nil {
		logrus.WithField("message_id", messageID).WithError(err).Error("Failed to delete message")
		return ErrInternalServer
	}

	s.router.RoomBroadcast(roomKey(message.ChatID), realtime.Event{
		Name: realtime.EventMessageDeleted,
		Data: deletedEventPayload{MessageID: message.ID, ChatID: message.ChatID},
	}, "")
	return nil
}

// React adds or removes one user's emoji reaction and broadcasts the update.
func (s *MessageService) React(ctx context.Context, messageID, userID uint, emoji string, add bool) error {
	if emoji == "" {
		return ErrInvalidInput
	}
	message, err := s.loadMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.requireParticipant(ctx, message.ChatID, userID); err != nil {
		return err
	}

	action := "remove"
	changed := false
	if add {
		action = "add"
		exists := false
		for _, r := range message.Reactions {
			if r.UserID == userID && r.Emoji == emoji {
				exists = true
				break
			}
		}
		if !exists {
			message.Reactions = append(message.Reactions, domain.Reaction{UserID: userID, Emoji: emoji})
			changed = true
		}
	} else {
		kept := message.Reactions[:0]
		for _, r := range message.Reactions {
			if r.UserID == userID && r.Emoji == emoji {
				changed = true
				continue
			}
			kept = append(kept, r)
		}
		message.Reactions = kept
	}
	if !changed {
		// Duplicate add or removal of a missing reaction: silently absorbed.
		return nil
	}

	if err := s.messageRepo.Save(ctx, message); err != nil {
		logrus.WithField("message_id", messageID).WithError(err).Error("Failed to save reaction")
		return ErrInternalServer
	}

	s.router.RoomBroadcast(roomKey(message.ChatID), realtime.Event{
		Name: realtime.EventMessageReaction,
		Data: reactionEventPayload{
			MessageID: message.ID,
			ChatID:    message.ChatID,
			UserID:    userID,
			Emoji:     emoji,
			Action:    action,
		},
	}, "")
	return nil
}

// MarkRead records a read receipt and broadcasts message:read. Idempotent.
func (s *MessageService) MarkRead(ctx context.Context, messageID, userID uint) error {
	return s.markReceipt(ctx, messageID, userID, realtime.EventMessageRead)
}

// MarkDelivered records a delivery receipt and broadcasts message:delivered.
// Idempotent.
func (s *MessageService) MarkDelivered(ctx context.Context, messageID, userID uint) error {
	return s.markReceipt(ctx, messageID, userID, realtime.EventMessageDelivered)
}

func (s *MessageService) markReceipt(ctx context.Context, messageID, userID uint, event string) error {
	message, err := s.loadMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.requireParticipant(ctx, message.ChatID, userID); err != nil {
		return err
	}

	switch event {
	case realtime.EventMessageRead:
		if message.HasReadBy(userID) {
			return nil
		}
		message.ReadBy = append(message.ReadBy, userID)
	case realtime.EventMessageDelivered:
		if message.HasDeliveredTo(userID) {
			return nil
		}
		message.DeliveredTo = append(message.DeliveredTo, userID)
	}

	if err := s.messageRepo.Save(ctx, message); err != nil {
		logrus.WithField("message_id", messageID).WithError(err).Error("Failed to save receipt")
		return ErrInternalServer
	}

	s.router.RoomBroadcast(roomKey(message.ChatID), realtime.Event{
		Name: event,
		Data: receiptEventPayload{
			MessageID: message.ID,
			ChatID:    message.ChatID,
			UserID:    userID,
			At:        time.Now(),
		},
	}, "")
	return nil
}

func (s *MessageService) loadMessage(ctx context.Context, messageID uint) (*domain.Message, error) {
	message, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		logrus.WithField("message_id", messageID).WithError(err).Error("Failed to load message")
		return nil, ErrInternalServer
	}
	return message, nil
}

func (s *MessageService) requireParticipant(ctx context.Context, chatID, userID uint) error {
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
