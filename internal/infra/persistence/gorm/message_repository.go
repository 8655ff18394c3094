package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shubhashmahato/kurakani/internal/domain"
	"github.com/shubhashmahato/kurakani/internal/repository"
)

// GormMessageRepository is the MySQL-backed MessageRepository.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates the repository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	if db == nil {
		panic("gorm.DB cannot be nil for GormMessageRepository")
	}
	return &GormMessageRepository{db: db}
}

var _ repository.MessageRepository = (*GormMessageRepository)(nil)

func (r *GormMessageRepository) FindByID(ctx context.Context, id uint) (*domain.Message, error) {
	var message domain.Message
	err := r.db.WithContext(ctx).First(&message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMessageNotFound
		}
		return nil, fmt.Errorf("gorm: find message by id %d: %w", id, err)
	}
	return &message, nil
}

func (r *GormMessageRepository) Save(ctx context.Context, message *domain.Message) error {
	if err := r.db.WithContext(ctx).Save(message).Error; err != nil {
		return fmt.Errorf("gorm: save message: %w", err)
	}
	return nil
}

func (r *GormMessageRepository) ListByChat(ctx context.Context, chatID uint, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ? AND deleted = ?", chatID, false).
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list messages for chat %d: %w", chatID, err)
	}
	// Reverse so callers receive them oldest first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
