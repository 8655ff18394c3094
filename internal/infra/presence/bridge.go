package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/shubhashmahato/kurakani/internal/realtime"
	"github.com/shubhashmahato/kurakani/internal/tasks"
)

// AsynqPresenceStore is the durable-state bridge implementation. It enqueues
// a background task instead of writing storage inline, so the realtime
// presence transition never waits on MySQL or retries; the worker owns the
// actual writes (and their retries).
type AsynqPresenceStore struct {
	client *asynq.Client
}

// NewAsynqPresenceStore creates the bridge over an asynq client.
func NewAsynqPresenceStore(client *asynq.Client) *AsynqPresenceStore {
	if client == nil {
		panic("asynq client cannot be nil for AsynqPresenceStore")
	}
	return &AsynqPresenceStore{client: client}
}

var _ realtime.PresenceStore = (*AsynqPresenceStore)(nil)

func (s *AsynqPresenceStore) SetOnline(ctx context.Context, userID string, online bool, at time.Time) error {
	task, err := tasks.NewPresencePersistTask(userID, online, at)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Second),
	)
	if err != nil {
		return fmt.Errorf("presence: enqueue persist task for user %s: %w", userID, err)
	}
	return nil
}
