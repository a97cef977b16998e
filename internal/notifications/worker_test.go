package notifications_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quizcomp/backend/internal/models"
	"github.com/quizcomp/backend/internal/notifications"
	"github.com/quizcomp/backend/pkg/queue"
)

type fakeStore struct {
	created []*models.Notification
	err     error
}

func (s *fakeStore) Create(_ context.Context, n *models.Notification) error {
	if s.err != nil {
		return s.err
	}
	n.ID = uuid.New()
	s.created = append(s.created, n)
	return nil
}

type fakePublisher struct {
	channels []string
	messages []interface{}
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, channel string, message interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.channels = append(p.channels, channel)
	p.messages = append(p.messages, message)
	return nil
}

func makeJob(t *testing.T, payload queue.NotificationPayload) *queue.Job {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &queue.Job{
		ID:      uuid.New().String(),
		Type:    queue.JobTypeNotification,
		Payload: raw,
	}
}

func testQueue(t *testing.T) *queue.Queue {
	t.Helper()
	rs := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: rs.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return queue.NewQueue(rc, zap.NewNop())
}

func TestWorker_Process(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	worker := notifications.NewWorker(store, testQueue(t), pub, zap.NewNop())

	rid := "QZ-ABC123-XYZ9"
	job := makeJob(t, queue.NotificationPayload{
		Type:           models.NotificationQuizSubmitted,
		Message:        "Asha Rao submitted quiz - Score: 3/3",
		RegistrationID: &rid,
	})

	require.NoError(t, worker.Process(context.Background(), job))

	require.Len(t, store.created, 1)
	n := store.created[0]
	require.Equal(t, models.NotificationQuizSubmitted, n.Type)
	require.Equal(t, "Asha Rao submitted quiz - Score: 3/3", n.Message)
	require.NotNil(t, n.RegistrationID)
	require.Equal(t, rid, *n.RegistrationID)

	// The persisted notification is fanned out to the live feed.
	require.Equal(t, []string{notifications.FeedChannel}, pub.channels)
	require.Len(t, pub.messages, 1)
}

func TestWorker_ProcessUnknownJobType(t *testing.T) {
	store := &fakeStore{}
	worker := notifications.NewWorker(store, testQueue(t), nil, zap.NewNop())

	job := &queue.Job{ID: uuid.New().String(), Type: "reindex", Payload: []byte(`{}`)}
	require.Error(t, worker.Process(context.Background(), job))
	require.Empty(t, store.created)
}

func TestWorker_ProcessStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	pub := &fakePublisher{}
	worker := notifications.NewWorker(store, testQueue(t), pub, zap.NewNop())

	job := makeJob(t, queue.NotificationPayload{
		Type:    models.NotificationNewRegistration,
		Message: "New student registered: Asha Rao",
	})

	// Persistence failure propagates so the queue retries the job, and
	// nothing reaches the feed.
	require.Error(t, worker.Process(context.Background(), job))
	require.Empty(t, pub.channels)
}

func TestWorker_ProcessPublishFailure(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{err: errors.New("broken pipe")}
	worker := notifications.NewWorker(store, testQueue(t), pub, zap.NewNop())

	job := makeJob(t, queue.NotificationPayload{
		Type:    models.NotificationNewRegistration,
		Message: "New student registered: Asha Rao",
	})

	// Fanout is best-effort: the row is persisted and the job succeeds even
	// when the feed publish fails.
	require.NoError(t, worker.Process(context.Background(), job))
	require.Len(t, store.created, 1)
}
