package notifications

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/quizcomp/backend/internal/models"
	"github.com/quizcomp/backend/pkg/queue"
)

// Emitter dispatches admin notifications as a best-effort side channel. A
// failure to enqueue is logged and swallowed; it never fails the registration
// or submission that triggered it.
type Emitter struct {
	queue  *queue.Queue
	logger *zap.Logger
}

// NewEmitter creates a notification emitter.
func NewEmitter(q *queue.Queue, logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{queue: q, logger: logger}
}

// NewRegistration emits a new_registration notification.
func (e *Emitter) NewRegistration(ctx context.Context, fullName, registrationID string) {
	e.emit(ctx, models.NotificationNewRegistration,
		fmt.Sprintf("New student registered: %s", fullName), &registrationID)
}

// QuizSubmitted emits a quiz_submitted notification.
func (e *Emitter) QuizSubmitted(ctx context.Context, fullName, registrationID string, score, total int) {
	e.emit(ctx, models.NotificationQuizSubmitted,
		fmt.Sprintf("%s submitted quiz - Score: %d/%d", fullName, score, total), &registrationID)
}

func (e *Emitter) emit(ctx context.Context, typ, message string, registrationID *string) {
	err := e.queue.EnqueueNotification(ctx, queue.NotificationPayload{
		Type:           typ,
		Message:        message,
		RegistrationID: registrationID,
	})
	if err != nil {
		e.logger.Warn("notification dropped", zap.String("type", typ), zap.Error(err))
	}
}
