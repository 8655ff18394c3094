package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/shubhashmahato/kurakani/internal/domain"
	"github.com/shubhashmahato/kurakani/internal/repository"
)

// GormUserRepository is the MySQL-backed UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates the repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	if db == nil {
		panic("gorm.DB cannot be nil for GormUserRepository")
	}
	return &GormUserRepository{db: db}
}

var _ repository.UserRepository = (*GormUserRepository)(nil)

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by id %d: %w", id, err)
	}
	return &user, nil
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by username %q: %w", username, err)
	}
	return &user, nil
}

func (r *GormUserRepository) Save(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if err != nil {
		if isDuplicateEntry(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) SetPresence(ctx context.Context, id uint, online bool, lastSeen time.Time) error {
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_online": online,
			"last_seen": lastSeen,
		}).Error
	if err != nil {
		return fmt.Errorf("gorm: set presence for user %d: %w", id, err)
	}
	return nil
}

func (r *GormUserRepository) ResetAllPresence(ctx context.Context) error {
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("is_online = ?", true).
		Update("is_online", false).Error
	if err != nil {
		return fmt.Errorf("gorm: reset presence: %w", err)
	}
	return nil
}

// isDuplicateEntry maps the MySQL duplicate-key error (1062) to the
// repository sentinel.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
