package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResultRepository handles quiz result data access.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

const insertResultSQL = `
	INSERT INTO quiz_results
		(user_id, category_id, quiz_type, answers, score, total_questions,
		 correct_answers, percentage, time_spent, passed, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// SaveBatch stores results and bumps the users' mistake counters in one transaction.
func (r *ResultRepository) SaveBatch(ctx context.Context, records []*model.ResultRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, rec := range records {
		answers, err := json.Marshal(rec.Answers)
		if err != nil {
			return fmt.Errorf("marshal answers: %w", err)
		}
		batch.Queue(insertResultSQL,
			rec.UserID, rec.CategoryID, rec.QuizType, answers, rec.Score, rec.TotalQuestions,
			rec.CorrectAnswers, rec.Percentage, rec.TimeSpent, rec.Passed, rec.CompletedAt,
		)
		queueMistakes(batch, rec)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return tx.Commit(ctx)
}

// ListByUser returns a user's most recent results, newest first.
func (r *ResultRepository) ListByUser(ctx context.Context, userID, limit int) ([]model.ResultRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, category_id, quiz_type, answers, score, total_questions,
		        correct_answers, percentage, time_spent, passed, completed_at
		 FROM quiz_results
		 WHERE user_id = $1
		 ORDER BY completed_at DESC
		 LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.ResultRecord
	for rows.Next() {
		var rec model.ResultRecord
		var answers []byte
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.CategoryID, &rec.QuizType, &answers, &rec.Score,
			&rec.TotalQuestions, &rec.CorrectAnswers, &rec.Percentage, &rec.TimeSpent, &rec.Passed, &rec.CompletedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answers, &rec.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers of result %d: %w", rec.ID, err)
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}
