package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shubhashmahato/kurakani/internal/domain"
	"github.com/shubhashmahato/kurakani/internal/realtime"
	"github.com/shubhashmahato/kurakani/internal/repository"
	"github.com/shubhashmahato/kurakani/internal/repository/mocks"
	"github.com/shubhashmahato/kurakani/internal/service"
)

func TestPresenceService_LiveRegistryWins(t *testing.T) {
	registry := realtime.NewPresenceRegistry()
	mockCache := new(mocks.PresenceCacheRepository)
	mockUserRepo := new(mocks.UserRepository)
	svc := service.NewPresenceService(registry, mockCache, mockUserRepo)

	registry.Register("7", "conn-a")

	snap, err := svc.Get(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, snap.Online)
	mockCache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestPresenceService_CacheHit(t *testing.T) {
	registry := realtime.NewPresenceRegistry()
	mockCache := new(mocks.PresenceCacheRepository)
	mockUserRepo := new(mocks.UserRepository)
	svc := service.NewPresenceService(registry, mockCache, mockUserRepo)
	ctx := context.Background()

	lastSeen := time.Now().Add(-time.Hour)
	cached := &repository.PresenceSnapshot{Online: false, LastSeen: lastSeen}
	mockCache.On("Get", ctx, "7").Return(cached, nil).Once()

	snap, err := svc.Get(ctx, 7)

	require.NoError(t, err)
	assert.False(t, snap.Online)
	assert.Equal(t, lastSeen, snap.LastSeen)
	mockUserRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestPresenceService_CacheMissFallsBackToDatabase(t *testing.T) {
	registry := realtime.NewPresenceRegistry()
	mockCache := new(mocks.PresenceCacheRepository)
	mockUserRepo := new(mocks.UserRepository)
	svc := service.NewPresenceService(registry, mockCache, mockUserRepo)
	ctx := context.Background()

	lastSeen := time.Now().Add(-2 * time.Hour)
	mockCache.On("Get", ctx, "7").Return(nil, repository.ErrNotFound).Once()
	mockUserRepo.On("FindByID", ctx, uint(7)).
		Return(&domain.User{ID: 7, IsOnline: false, LastSeen: lastSeen}, nil).
		Once()

	snap, err := svc.Get(ctx, 7)

	require.NoError(t, err)
	assert.False(t, snap.Online)
	assert.Equal(t, lastSeen, snap.LastSeen)
	mockCache.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestPresenceService_UnknownUser(t *testing.T) {
	registry := realtime.NewPresenceRegistry()
	mockCache := new(mocks.PresenceCacheRepository)
	mockUserRepo := new(mocks.UserRepository)
	svc := service.NewPresenceService(registry, mockCache, mockUserRepo)
	ctx := context.Background()

	mockCache.On("Get", ctx, "404").Return(nil, repository.ErrNotFound).Once()
	mockUserRepo.On("FindByID", ctx, uint(404)).Return(nil, repository.ErrUserNotFound).Once()

	_, err := svc.Get(ctx, 404)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrUserNotFound))
}
