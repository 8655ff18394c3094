package repository

import (
	"context"

	"github.com/shubhashmahato/kurakani/internal/domain"
)

// MessageRepository stores chat messages. This is the durable delivery path;
// the realtime broadcast is best-effort on top of it.
type MessageRepository interface {
	// FindByID returns the message or ErrMessageNotFound.
	FindByID(ctx context.Context, id uint) (*domain.Message, error)

	// Save creates the message when ID is zero, updates otherwise.
	Save(ctx context.Context, message *domain.Message) error

	// ListByChat returns the most recent messages of a chat, newest last.
	ListByChat(ctx context.Context, chatID uint, limit int) ([]domain.Message, error)
}
