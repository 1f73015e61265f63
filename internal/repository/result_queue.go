package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/easy2drive/quiz-backend/internal/config"
	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// ResultQueue hands graded results to the persistence worker through a Redis list.
type ResultQueue struct {
	rdb *redis.Client
}

// NewResultQueue creates a new ResultQueue.
func NewResultQueue(rdb *redis.Client) *ResultQueue {
	return &ResultQueue{rdb: rdb}
}

// Enqueue pushes a result for asynchronous persistence.
func (q *ResultQueue) Enqueue(ctx context.Context, record *model.ResultRecord) error {
	return q.push(ctx, config.WorkerKey.PersistResultsQueue, record)
}

// DeadLetter parks a result the worker gave up on, for manual inspection.
func (q *ResultQueue) DeadLetter(ctx context.Context, record *model.ResultRecord) error {
	return q.push(ctx, config.WorkerKey.PersistResultsDeadQueue, record)
}

func (q *ResultQueue) push(ctx context.Context, key string, record *model.ResultRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := q.rdb.RPush(ctx, key, raw).Err(); err != nil {
		return fmt.Errorf("push result to %s: %w", key, err)
	}
	return nil
}
