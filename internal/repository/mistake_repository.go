package repository

import (
	"context"

	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MistakeRepository handles per-user missed question counters.
type MistakeRepository struct {
	pool *pgxpool.Pool
}

// NewMistakeRepository creates a new MistakeRepository.
func NewMistakeRepository(pool *pgxpool.Pool) *MistakeRepository {
	return &MistakeRepository{pool: pool}
}

// Question ids are unique only within a category, so the counter is keyed
// by (user, category, question).
const upsertMistakeSQL = `
	INSERT INTO mistake_questions (user_id, question_id, category_id, wrong_attempts, last_attempt)
	VALUES ($1, $2, $3, 1, $4)
	ON CONFLICT (user_id, category_id, question_id) DO UPDATE
	SET wrong_attempts = mistake_questions.wrong_attempts + 1,
	    last_attempt = EXCLUDED.last_attempt`

// queueMistakes adds one counter bump per wrong answer of rec.
func queueMistakes(batch *pgx.Batch, rec *model.ResultRecord) {
	for _, a := range rec.Answers {
		if a.IsCorrect {
			continue
		}
		batch.Queue(upsertMistakeSQL, rec.UserID, a.QuestionID, a.CategoryID, rec.CompletedAt)
	}
}

// ListByUser returns a user's mistakes, most frequently missed first.
func (r *MistakeRepository) ListByUser(ctx context.Context, userID int) ([]model.MistakeQuestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, question_id, category_id, wrong_attempts, last_attempt
		 FROM mistake_questions
		 WHERE user_id = $1
		 ORDER BY wrong_attempts DESC, last_attempt DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mistakes []model.MistakeQuestion
	for rows.Next() {
		var m model.MistakeQuestion
		if err := rows.Scan(&m.UserID, &m.QuestionID, &m.CategoryID, &m.WrongAttempts, &m.LastAttempt); err != nil {
			return nil, err
		}
		mistakes = append(mistakes, m)
	}
	return mistakes, rows.Err()
}

// ListRefs returns the catalog references of a user's mistakes.
func (r *MistakeRepository) ListRefs(ctx context.Context, userID int) ([]model.QuestionRef, error) {
	mistakes, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	refs := make([]model.QuestionRef, len(mistakes))
	for i, m := range mistakes {
		refs[i] = model.QuestionRef{QuestionID: m.QuestionID, CategoryID: m.CategoryID}
	}
	return refs, nil
}
