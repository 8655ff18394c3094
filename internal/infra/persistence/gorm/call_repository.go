package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shubhashmahato/kurakani/internal/domain"
	"github.com/shubhashmahato/kurakani/internal/repository"
)

// GormCallRepository is the MySQL-backed CallRepository.
type GormCallRepository struct {
	db *gorm.DB
}

// NewGormCallRepository creates the repository.
func NewGormCallRepository(db *gorm.DB) *GormCallRepository {
	if db == nil {
		panic("gorm.DB cannot be nil for GormCallRepository")
	}
	return &GormCallRepository{db: db}
}

var _ repository.CallRepository = (*GormCallRepository)(nil)

func (r *GormCallRepository) FindByID(ctx context.Context, id uint) (*domain.Call, error) {
	var call domain.Call
	err := r.db.WithContext(ctx).First(&call, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCallNotFound
		}
		return nil, fmt.Errorf("gorm: find call by id %d: %w", id, err)
	}
	return &call, nil
}

func (r *GormCallRepository) Save(ctx context.Context, call *domain.Call) error {
	if err := r.db.WithContext(ctx).Save(call).Error; err != nil {
		return fmt.Errorf("gorm: save call: %w", err)
	}
	return nil
}
