package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/pkg/jobs"
	"github.com/noah-isme/it-institute-cms/pkg/storage"
)

// MediaJanitor deletes orphaned uploads in the background and retries failed
// deletes, which matters for the remote storage backend.
type MediaJanitor struct {
	queue *jobs.Queue[string]
}

// NewMediaJanitor builds a janitor over backend. Call Start before use.
func NewMediaJanitor(backend storage.Backend, logger *zap.Logger) *MediaJanitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := func(ctx context.Context, job jobs.Job[string]) error {
		deleteCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := backend.Delete(deleteCtx, job.Payload); err != nil {
			return err
		}
		logger.Info("orphaned upload removed", zap.String("name", job.Payload))
		return nil
	}
	return &MediaJanitor{
		queue: jobs.New("media-cleanup", handler, jobs.Config{
			Workers:    1,
			BufferSize: 64,
			MaxRetries: 5,
			RetryDelay: 2 * time.Second,
			Logger:     logger,
		}),
	}
}

// Start launches the worker.
func (j *MediaJanitor) Start(ctx context.Context) {
	j.queue.Start(ctx)
}

// Stop waits for the worker to exit.
func (j *MediaJanitor) Stop() {
	j.queue.Stop()
}

// Remove schedules deletion of a stored object.
func (j *MediaJanitor) Remove(name string) error {
	return j.queue.Enqueue(jobs.Job[string]{ID: uuid.NewString(), Payload: name})
}
