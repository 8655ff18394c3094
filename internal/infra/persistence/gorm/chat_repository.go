package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shubhashmahato/kurakani/internal/domain"
	"github.com/shubhashmahato/kurakani/internal/repository"
)

// GormChatRepository is the MySQL-backed ChatRepository.
type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository creates the repository.
func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	if db == nil {
		panic("gorm.DB cannot be nil for GormChatRepository")
	}
	return &GormChatRepository{db: db}
}

var _ repository.ChatRepository = (*GormChatRepository)(nil)

func (r *GormChatRepository) FindByID(ctx context.Context, id uint) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.WithContext(ctx).Preload("Participants").First(&chat, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrChatNotFound
		}
		return nil, fmt.Errorf("gorm: find chat by id %d: %w", id, err)
	}
	return &chat, nil
}

func (r *GormChatRepository) Save(ctx context.Context, chat *domain.Chat) error {
	if err := r.db.WithContext(ctx).Save(chat).Error; err != nil {
		return fmt.Errorf("gorm: save chat: %w", err)
	}
	return nil
}

func (r *GormChatRepository) ListForUser(ctx context.Context, userID uint) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Joins("JOIN chat_participants cp ON cp.chat_id = chats.id").
		Where("cp.user_id = ?", userID).
		Preload("Participants").
		Order("chats.updated_at DESC").
		Find(&chats).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list chats for user %d: %w", userID, err)
	}
	return chats, nil
}

func (r *GormChatRepository) IsParticipant(ctx context.Context, chatID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("chat_participants").
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: membership check chat %d user %d: %w", chatID, userID, err)
	}
	return count > 0, nil
}

func (r *GormChatRepository) AddParticipant(ctx context.Context, chatID, userID uint) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Chat{ID: chatID}).
		Association("Participants").
		Append(&domain.User{ID: userID})
	if err != nil {
		return fmt.Errorf("gorm: add participant %d to chat %d: %w", userID, chatID, err)
	}
	return nil
}

func (r *GormChatRepository) RemoveParticipant(ctx context.Context, chatID, userID uint) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Chat{ID: chatID}).
		Association("Participants").
		Delete(&domain.User{ID: userID})
	if err != nil {
		return fmt.Errorf("gorm: remove participant %d from chat %d: %w", userID, chatID, err)
	}
	return nil
}
