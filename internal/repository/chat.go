package repository

import (
	"context"

	"github.com/shubhashmahato/kurakani/internal/domain"
)

// ChatRepository stores conversations and their durable participant lists.
type ChatRepository interface {
	// FindByID returns the chat with participants preloaded, or
	// ErrChatNotFound.
	FindByID(ctx context.Context, id uint) (*domain.Chat, error)

	// Save creates or updates the chat (participant associations included).
	Save(ctx context.Context, chat *domain.Chat) error

	// ListForUser returns every chat the user participates in.
	ListForUser(ctx context.Context, userID uint) ([]domain.Chat, error)

	// IsParticipant reports whether userID belongs to the chat. This is the
	// membership predicate the REST layer checks before any mutation.
	IsParticipant(ctx context.Context, chatID, userID uint) (bool, error)

	// AddParticipant adds userID to the chat. Idempotent.
	AddParticipant(ctx context.Context, chatID, userID uint) error

	// RemoveParticipant removes userID from the chat. No-op if absent.
	RemoveParticipant(ctx context.Context, chatID, userID uint) error
}
