package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quizcomp/backend/internal/models"
	"github.com/quizcomp/backend/pkg/queue"
)

// FeedChannel is the Redis pub/sub channel carrying persisted notifications
// to the admin websocket feed.
const FeedChannel = "notifications:feed"

// store is the slice of Repository the worker needs.
type store interface {
	Create(ctx context.Context, n *models.Notification) error
}

// publisher fans a persisted notification out to live admin dashboards.
// Implemented by the Redis client; nil disables fanout.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// Worker drains the notification queue: each job becomes a notification row,
// then is published for the live admin feed. Persistence failures are retried
// by the queue; publish failures are logged only.
type Worker struct {
	repo   store
	queue  *queue.Queue
	pub    publisher
	logger *zap.Logger
}

// NewWorker creates a notification worker.
func NewWorker(repo store, q *queue.Queue, pub publisher, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{repo: repo, queue: q, pub: pub, logger: logger}
}

// Process executes one notification job.
func (w *Worker) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeNotification {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.NotificationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	n := &models.Notification{
		Type:           payload.Type,
		Message:        payload.Message,
		RegistrationID: payload.RegistrationID,
	}
	if err := w.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	if w.pub != nil {
		raw, err := json.Marshal(n)
		if err == nil {
			err = w.pub.Publish(ctx, FeedChannel, raw)
		}
		if err != nil {
			w.logger.Warn("notification feed publish failed", zap.Error(err), zap.String("notification_id", n.ID.String()))
		}
	}

	w.logger.Debug("notification persisted", zap.String("type", n.Type), zap.String("notification_id", n.ID.String()))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("notification worker stopping")
			return
		default:
		}

		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		if err := w.Process(ctx, job); err != nil {
			w.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := w.queue.Retry(ctx, job); reErr != nil {
				w.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
		}
	}
}
