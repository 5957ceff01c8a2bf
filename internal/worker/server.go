package worker

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"personal-workspace/internal/repository"
	"personal-workspace/internal/tasks"
)

// WorkerServer drains the activity queues with the handlers of this package.
type WorkerServer struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *logrus.Entry
}

// NewWorkerServer builds the asynq server and its task routing. retentionDays
// is passed to the prune handler.
func NewWorkerServer(redisOpt asynq.RedisClientOpt, activityRepo repository.ActivityRepository, retentionDays int, logger *logrus.Logger) *WorkerServer {
	if activityRepo == nil {
		panic("ActivityRepository cannot be nil for WorkerServer")
	}
	ws := &WorkerServer{
		mux: asynq.NewServeMux(),
		log: logger.WithField("component", "worker_server"),
	}
	ws.mux.Handle(tasks.TypeActivityRecord, NewActivityRecordHandler(activityRepo))
	ws.mux.Handle(tasks.TypeActivityPrune, NewActivityPruneHandler(activityRepo, retentionDays))

	// Activity tasks all go to "low"; "default" stays open for anything enqueued without a queue.
	ws.server = asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:  5,
		Queues:       map[string]int{"default": 2, "low": 1},
		ErrorHandler: asynq.ErrorHandlerFunc(ws.logFailure),
	})
	return ws
}

// ProcessTask routes t to its handler without going through Redis.
func (ws *WorkerServer) ProcessTask(ctx context.Context, t *asynq.Task) error {
	return ws.mux.ProcessTask(ctx, t)
}

func (ws *WorkerServer) logFailure(ctx context.Context, t *asynq.Task, err error) {
	entry := taskLogger(ctx, t).WithField("component", "worker_server")
	if errors.Is(err, asynq.SkipRetry) {
		entry.Warnf("Task dropped: %v", err)
		return
	}
	entry.Errorf("Task failed: %v", err)
}

// Start blocks until Shutdown; run it in its own goroutine.
func (ws *WorkerServer) Start() {
	ws.log.Info("Worker server starting...")
	if err := ws.server.Run(ws.mux); err != nil && !errors.Is(err, asynq.ErrServerClosed) {
		ws.log.Fatalf("Could not run worker server: %v", err)
	}
	ws.log.Info("Worker server stopped.")
}

func (ws *WorkerServer) Shutdown() {
	ws.log.Info("Shutting down worker server...")
	ws.server.Shutdown()
}
