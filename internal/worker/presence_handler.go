package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/shubhashmahato/kurakani/internal/repository"
	"github.com/shubhashmahato/kurakani/internal/tasks"
)

// Presence cache entries outlive short reconnect gaps but not stale
// processes.
const presenceCacheTTL = 24 * time.Hour

// PresencePersistHandler applies one presence transition to the user row and
// the Redis presence cache. This is the far end of the durable-state bridge:
// the realtime core already moved on, so a failure here is retried by asynq
// and never reaches back into the in-memory state.
type PresencePersistHandler struct {
	userRepo repository.UserRepository
	cache    repository.PresenceCacheRepository
}

// NewPresencePersistHandler creates the handler.
func NewPresencePersistHandler(userRepo repository.UserRepository, cache repository.PresenceCacheRepository) *PresencePersistHandler {
	if userRepo == nil || cache == nil {
		panic("PresencePersistHandler requires a user repository and a presence cache")
	}
	return &PresencePersistHandler{userRepo: userRepo, cache: cache}
}

// ProcessTask implements asynq.Handler.
func (h *PresencePersistHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithFields(logrus.Fields{
		"component": "presence_worker",
		"task_type": t.Type(),
	})

	var payload tasks.PresencePersistPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal presence persist payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	logCtx = logCtx.WithFields(logrus.Fields{
		"user_id": payload.UserID,
		"online":  payload.Online,
	})

	id, err := strconv.ParseUint(payload.UserID, 10, 32)
	if err != nil {
		logCtx.WithError(err).Error("Presence persist payload has a non-numeric user id")
		return fmt.Errorf("parse user id %q: %v: %w", payload.UserID, err, asynq.SkipRetry)
	}

	if err := h.userRepo.SetPresence(ctx, uint(id), payload.Online, payload.LastSeen); err != nil {
		logCtx.WithError(err).Error("Failed to persist presence to database")
		return err
	}

	snap := repository.PresenceSnapshot{Online: payload.Online, LastSeen: payload.LastSeen}
	if err := h.cache.Set(ctx, payload.UserID, snap, presenceCacheTTL); err != nil {
		// The row is written; a cache miss just means a slower read later.
		logCtx.WithError(err).Warn("Failed to update presence cache")
	}

	logCtx.Debug("Presence transition persisted")
	return nil
}
