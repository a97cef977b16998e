package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quizcomp/backend/internal/apperr"
)

const sessionKeyPrefix = "quiz:session:"

// Store keeps in-progress quiz sessions in Redis, one per registration id,
// expiring after the configured TTL so abandoned attempts clean themselves up.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Save persists a session and refreshes its TTL.
func (st *Store) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := st.client.Set(ctx, sessionKeyPrefix+s.RegistrationID, raw, st.ttl).Err(); err != nil {
		return apperr.Wrap(apperr.CodeUnavailable, "failed to save quiz session", err)
	}
	return nil
}

// Get loads the session for a registration id.
func (st *Store) Get(ctx context.Context, registrationID string) (*Session, error) {
	raw, err := st.client.Get(ctx, sessionKeyPrefix+registrationID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.New(apperr.CodeNotFound, "no active quiz session")
		}
		return nil, apperr.Wrap(apperr.CodeUnavailable, "failed to load quiz session", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Delete discards a session. Missing keys are not an error.
func (st *Store) Delete(ctx context.Context, registrationID string) error {
	return st.client.Del(ctx, sessionKeyPrefix+registrationID).Err()
}
