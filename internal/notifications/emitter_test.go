package notifications_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quizcomp/backend/internal/models"
	"github.com/quizcomp/backend/internal/notifications"
	"github.com/quizcomp/backend/pkg/queue"
)

func makeEmitter(t *testing.T) (*notifications.Emitter, *redis.Client) {
	t.Helper()
	rs := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: rs.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	q := queue.NewQueue(rc, zap.NewNop())
	return notifications.NewEmitter(q, zap.NewNop()), rc
}

func dequeuePayload(t *testing.T, rc *redis.Client) queue.NotificationPayload {
	t.Helper()
	raw, err := rc.LPop(context.Background(), queue.QueueNotifications).Result()
	require.NoError(t, err)

	var job queue.Job
	require.NoError(t, json.Unmarshal([]byte(raw), &job))
	require.Equal(t, queue.JobTypeNotification, job.Type)

	var payload queue.NotificationPayload
	require.NoError(t, json.Unmarshal(job.Payload, &payload))
	return payload
}

func TestEmitter_NewRegistration(t *testing.T) {
	emitter, rc := makeEmitter(t)

	emitter.NewRegistration(context.Background(), "Asha Rao", "QZ-ABC123-XYZ9")

	payload := dequeuePayload(t, rc)
	require.Equal(t, models.NotificationNewRegistration, payload.Type)
	require.Equal(t, "New student registered: Asha Rao", payload.Message)
	require.NotNil(t, payload.RegistrationID)
	require.Equal(t, "QZ-ABC123-XYZ9", *payload.RegistrationID)
}

func TestEmitter_QuizSubmitted(t *testing.T) {
	emitter, rc := makeEmitter(t)

	emitter.QuizSubmitted(context.Background(), "Asha Rao", "QZ-ABC123-XYZ9", 2, 3)

	payload := dequeuePayload(t, rc)
	require.Equal(t, models.NotificationQuizSubmitted, payload.Type)
	require.Equal(t, "Asha Rao submitted quiz - Score: 2/3", payload.Message)
}

func TestEmitter_SwallowsEnqueueFailure(t *testing.T) {
	rs := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: rs.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	emitter := notifications.NewEmitter(queue.NewQueue(rc, zap.NewNop()), zap.NewNop())

	// Redis down: the emit must not panic or surface an error to the caller.
	rs.Close()
	emitter.NewRegistration(context.Background(), "Asha Rao", "QZ-ABC123-XYZ9")
}
