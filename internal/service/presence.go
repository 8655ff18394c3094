package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shubhashmahato/kurakani/internal/realtime"
	"github.com/shubhashmahato/kurakani/internal/repository"
)

// PresenceService answers REST presence reads ("is this user online, when
// were they last seen"). Resolution order: the in-memory registry is
// authoritative while the user is connected here; otherwise the Redis cache;
// the user row is the fallback of last resort.
type PresenceService struct {
	registry *realtime.PresenceRegistry
	cache    repository.PresenceCacheRepository
	userRepo repository.UserRepository
}

// NewPresenceService creates the service.
func NewPresenceService(registry *realtime.PresenceRegistry, cache repository.PresenceCacheRepository, userRepo repository.UserRepository) *PresenceService {
	if registry == nil || cache == nil || userRepo == nil {
		panic("PresenceService requires registry, presence cache and user repository")
	}
	return &PresenceService{registry: registry, cache: cache, userRepo: userRepo}
}

// Get returns the presence snapshot for a user.
func (s *PresenceService) Get(ctx context.Context, userID uint) (repository.PresenceSnapshot, error) {
	key := userKey(userID)

	if s.registry.IsOnline(key) {
		return repository.PresenceSnapshot{Online: true, LastSeen: time.Now()}, nil
	}

	snap, err := s.cache.Get(ctx, key)
	if err == nil {
		return *snap, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		// Cache trouble degrades to a database read, nothing more.
		logrus.WithField("user_id", userID).WithError(err).Warn("Presence cache read failed")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.PresenceSnapshot{}, ErrUserNotFound
		}
		logrus.WithField("user_id", userID).WithError(err).Error("Failed to load user for presence read")
		return repository.PresenceSnapshot{}, ErrInternalServer
	}
	return repository.PresenceSnapshot{Online: user.IsOnline, LastSeen: user.LastSeen}, nil
}
