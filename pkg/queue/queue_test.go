package queue_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quizcomp/backend/pkg/queue"
)

func makeQueue(t *testing.T) (*queue.Queue, *redis.Client) {
	t.Helper()
	rs := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: rs.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return queue.NewQueue(rc, zap.NewNop()), rc
}

func TestQueue_EnqueueDequeue(t *testing.T) {
	q, rc := makeQueue(t)
	ctx := context.Background()

	rid := "QZ-ABC123-XYZ9"
	err := q.EnqueueNotification(ctx, queue.NotificationPayload{
		Type:           "new_registration",
		Message:        "New student registered: Asha Rao",
		RegistrationID: &rid,
	})
	require.NoError(t, err)

	n, err := rc.LLen(ctx, queue.QueueNotifications).Result()
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	job, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, job)
	require.Equal(t, queue.JobTypeNotification, job.Type)
	require.NotEmpty(t, job.ID)
	require.Equal(t, 0, job.Attempt)

	var payload queue.NotificationPayload
	require.NoError(t, json.Unmarshal(job.Payload, &payload))
	require.Equal(t, "new_registration", payload.Type)
	require.Equal(t, "New student registered: Asha Rao", payload.Message)
	require.NotNil(t, payload.RegistrationID)
	require.Equal(t, rid, *payload.RegistrationID)
}

func TestQueue_RetryThenDLQ(t *testing.T) {
	q, rc := makeQueue(t)
	ctx := context.Background()

	err := q.EnqueueNotification(ctx, queue.NotificationPayload{
		Type:    "quiz_submitted",
		Message: "Asha Rao submitted quiz - Score: 3/3",
	})
	require.NoError(t, err)

	job, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, job)

	// Below the retry limit the job goes back on the main queue.
	for attempt := 1; attempt < queue.MaxRetries; attempt++ {
		require.NoError(t, q.Retry(ctx, job))
		require.Equal(t, attempt, job.Attempt)

		job, err = q.Dequeue(ctx)
		require.NoError(t, err)
		require.NotNil(t, job)
	}

	// The final retry lands in the dead-letter queue.
	require.NoError(t, q.Retry(ctx, job))

	n, err := rc.LLen(ctx, queue.QueueNotifications).Result()
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	n, err = rc.LLen(ctx, queue.QueueDLQ).Result()
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}
