package worker

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/shubhashmahato/kurakani/internal/repository"
	"github.com/shubhashmahato/kurakani/internal/tasks"
)

// WorkerServer wraps the asynq server that runs background writes, chiefly
// presence persistence enqueued by the durable-state bridge.
type WorkerServer struct {
	server   *asynq.Server
	log      *logrus.Entry
	userRepo repository.UserRepository
	cache    repository.PresenceCacheRepository
}

// NewWorkerServer creates the server.
func NewWorkerServer(redisOpt asynq.RedisClientOpt, userRepo repository.UserRepository, cache repository.PresenceCacheRepository, logger *logrus.Logger) *WorkerServer {
	logEntry := logger.WithField("component", "worker_server")

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retryCount, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				logEntry.WithFields(logrus.Fields{
					"task_type": task.Type(),
					"retries":   retryCount,
					"max_retry": maxRetry,
				}).Errorf("Task failed: %v", err)
			}),
		},
	)

	return &WorkerServer{
		server:   server,
		log:      logEntry,
		userRepo: userRepo,
		cache:    cache,
	}
}

// Start runs the worker server. Call from its own goroutine.
func (ws *WorkerServer) Start() {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePresencePersist, NewPresencePersistHandler(ws.userRepo, ws.cache).ProcessTask)

	ws.log.Info("Worker server starting...")
	if err := ws.server.Run(mux); err != nil {
		if !errors.Is(err, asynq.ErrServerClosed) {
			ws.log.Fatalf("Could not run worker server: %v", err)
		}
		ws.log.Info("Worker server stopped.")
	}
}

// Shutdown stops the worker server gracefully.
func (ws *WorkerServer) Shutdown() {
	ws.log.Info("Shutting down worker server...")
	ws.server.Shutdown()
	ws.log.Info("Worker server shut down complete.")
}
