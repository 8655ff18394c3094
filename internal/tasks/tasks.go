package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names.
const (
	// TypePresencePersist writes one presence transition (online flag,
	// last-seen timestamp) to the user row and the Redis presence cache.
	TypePresencePersist = "presence:persist"
)

// PresencePersistPayload carries one presence transition. UserID is the
// realtime identity (decimal string of the user row ID).
type PresencePersistPayload struct {
	UserID   string    `json:"userId"`
	Online   bool      `json:"online"`
	LastSeen time.Time `json:"lastSeen"`
}

// NewPresencePersistTask builds the asynq task for a presence transition.
func NewPresencePersistTask(userID string, online bool, lastSeen time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(PresencePersistPayload{
		UserID:   userID,
		Online:   online,
		LastSeen: lastSeen,
	})
	if err != nil {
		return nil, fmt.Errorf("tasks: marshal presence persist payload: %w", err)
	}
	return asynq.NewTask(TypePresencePersist, payload), nil
}
