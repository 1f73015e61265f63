package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/easy2drive/quiz-backend/internal/config"
	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	ResultBatchSize    = 50
	ResultBatchTimeout = 2 * time.Second
	ResultPollTimeout  = 1 * time.Second

	// ResultMaxRetries is how many failed single writes a record survives
	// before it is moved to the dead queue.
	ResultMaxRetries = 5
)

// ResultSaver writes a batch of results atomically.
type ResultSaver interface {
	SaveBatch(ctx context.Context, records []*model.ResultRecord) error
}

// Requeuer puts a result back on the persistence queue, or parks it on the
// dead queue once it has exhausted its retries.
type Requeuer interface {
	Enqueue(ctx context.Context, record *model.ResultRecord) error
	DeadLetter(ctx context.Context, record *model.ResultRecord) error
}

// ResultWorker drains the result queue into Postgres in batches.
type ResultWorker struct {
	saver   ResultSaver
	requeue Requeuer
	rdb     *redis.Client
	log     zerolog.Logger
}

func NewResultWorker(saver ResultSaver, requeue Requeuer, rdb *redis.Client, log zerolog.Logger) *ResultWorker {
	return &ResultWorker{
		saver:   saver,
		requeue: requeue,
		rdb:     rdb,
		log:     log.With().Str("component", "result_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ResultWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ResultWorker started")

	batch := make([]*model.ResultRecord, 0, ResultBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= ResultBatchSize || time.Since(lastFlush) >= ResultBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Int("pending", len(batch)).Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ResultPollTimeout, config.WorkerKey.PersistResultsQueue).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var rec model.ResultRecord
			if err := json.Unmarshal([]byte(item[1]), &rec); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &rec)
		}
	}
}

// ----------------------------------------------------------------
// Batch write with per-record fallback
// ----------------------------------------------------------------

func (w *ResultWorker) flushSafe(ctx context.Context, batch []*model.ResultRecord) {
	if len(batch) == 0 {
		return
	}

	if err := w.saver.SaveBatch(ctx, batch); err != nil {
		if len(batch) == 1 {
			w.retryOrBury(ctx, batch[0], err)
			return
		}
		w.log.Warn().Err(err).Int("size", len(batch)).Msg("batch result write failed, using fallback")

		for _, rec := range batch {
			if err := w.saver.SaveBatch(ctx, []*model.ResultRecord{rec}); err != nil {
				w.retryOrBury(ctx, rec, err)
			}
		}
		return
	}

	w.log.Debug().Int("size", len(batch)).Msg("Results persisted")
}

func (w *ResultWorker) retryOrBury(ctx context.Context, rec *model.ResultRecord, cause error) {
	rec.Retries++

	if rec.Retries >= ResultMaxRetries {
		w.log.Error().Err(cause).
			Int("user_id", rec.UserID).
			Int("retries", rec.Retries).
			Msg("result write keeps failing, moving to dead queue")
		if err := w.requeue.DeadLetter(ctx, rec); err != nil {
			w.log.Error().Err(err).Int("user_id", rec.UserID).Msg("dead-letter failed, result dropped")
		}
		return
	}

	w.log.Warn().Err(cause).
		Int("user_id", rec.UserID).
		Int("retries", rec.Retries).
		Msg("single result write failed, requeueing")
	if err := w.requeue.Enqueue(ctx, rec); err != nil {
		w.log.Error().Err(err).Int("user_id", rec.UserID).Msg("requeue failed, result dropped")
	}
}
