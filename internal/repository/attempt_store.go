package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/easy2drive/quiz-backend/internal/config"
	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrAttemptNotFound is returned for unknown, expired or already submitted attempts.
var ErrAttemptNotFound = errors.New("attempt not found")

// AttemptStore keeps issued quizzes in Redis until they are submitted or expire.
type AttemptStore struct {
	rdb *redis.Client
}

// NewAttemptStore creates a new AttemptStore.
func NewAttemptStore(rdb *redis.Client) *AttemptStore {
	return &AttemptStore{rdb: rdb}
}

// Save stores the attempt with the given time to live.
func (s *AttemptStore) Save(ctx context.Context, attempt *model.Attempt, ttl time.Duration) error {
	raw, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.AttemptKey(attempt.ID.String()), raw, ttl).Err(); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

// Get loads an attempt by id.
func (s *AttemptStore) Get(ctx context.Context, id uuid.UUID) (*model.Attempt, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.AttemptKey(id.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	var attempt model.Attempt
	if err := json.Unmarshal(raw, &attempt); err != nil {
		return nil, fmt.Errorf("unmarshal attempt: %w", err)
	}
	return &attempt, nil
}

// Delete removes an attempt. It reports false when the attempt was already gone,
// which lets concurrent submissions of the same attempt settle on one winner.
func (s *AttemptStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := s.rdb.Del(ctx, config.CacheKey.AttemptKey(id.String())).Result()
	if err != nil {
		return false, fmt.Errorf("delete attempt: %w", err)
	}
	return n > 0, nil
}
