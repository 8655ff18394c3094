package repository

import (
	"context"
	"time"

	"github.com/shubhashmahato/kurakani/internal/domain"
)

// UserRepository stores and retrieves user accounts, including the durable
// presence snapshot the background worker maintains.
type UserRepository interface {
	// FindByID returns the user or ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByUsername returns the user or ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Save creates the user when ID is zero, updates otherwise. A
	// uniqueness violation surfaces as ErrDuplicateEntry.
	Save(ctx context.Context, user *domain.User) error

	// SetPresence updates the durable online flag and last-seen timestamp.
	SetPresence(ctx context.Context, id uint, online bool, lastSeen time.Time) error

	// ResetAllPresence marks every user offline. Run at startup: a process
	// restart means nobody is connected until they reconnect.
	ResetAllPresence(ctx context.Context) error
}
