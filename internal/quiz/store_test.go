package quiz_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/quizcomp/backend/internal/apperr"
	"github.com/quizcomp/backend/internal/quiz"
)

func makeStore(t *testing.T, ttl time.Duration) (*quiz.Store, *miniredis.Miniredis) {
	t.Helper()
	rs := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: rs.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return quiz.NewStore(rc, ttl), rs
}

func TestStore_SaveAndGet(t *testing.T) {
	store, _ := makeStore(t, time.Hour)
	ctx := context.Background()

	s := quiz.NewSession("QZ-ABC123-XYZ9", "Asha Rao", makeQuestions(t, 2))
	require.NoError(t, s.SelectAnswer(s.Questions[0].ID, s.Questions[0].Options[0]))
	s.Advance()
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "QZ-ABC123-XYZ9")
	require.NoError(t, err)
	require.Equal(t, s.RegistrationID, got.RegistrationID)
	require.Equal(t, s.FullName, got.FullName)
	require.Equal(t, s.CurrentIndex, got.CurrentIndex)
	require.Equal(t, s.Answers, got.Answers)
	require.Len(t, got.Questions, 2)
	require.Equal(t, s.Questions[0].CorrectOption, got.Questions[0].CorrectOption)
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := makeStore(t, time.Hour)

	_, err := store.Get(context.Background(), "QZ-NOPE-00000")
	require.Error(t, err)
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestStore_Delete(t *testing.T) {
	store, _ := makeStore(t, time.Hour)
	ctx := context.Background()

	s := quiz.NewSession("QZ-ABC123-XYZ9", "Asha Rao", makeQuestions(t, 1))
	require.NoError(t, store.Save(ctx, s))
	require.NoError(t, store.Delete(ctx, s.RegistrationID))

	_, err := store.Get(ctx, s.RegistrationID)
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))

	// Deleting an absent session is not an error.
	require.NoError(t, store.Delete(ctx, s.RegistrationID))
}

func TestStore_SessionExpires(t *testing.T) {
	store, rs := makeStore(t, time.Minute)
	ctx := context.Background()

	s := quiz.NewSession("QZ-ABC123-XYZ9", "Asha Rao", makeQuestions(t, 1))
	require.NoError(t, store.Save(ctx, s))

	rs.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, s.RegistrationID)
	require.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
