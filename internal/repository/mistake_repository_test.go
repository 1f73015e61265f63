package repository

import (
	"testing"
	"time"

	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueMistakesKeysByCategory(t *testing.T) {
	completed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	rec := &model.ResultRecord{
		UserID:      7,
		CompletedAt: completed,
		Answers: []model.GradedAnswer{
			{QuestionID: "q_001", CategoryID: "parking", IsCorrect: false},
			{QuestionID: "q_001", CategoryID: "priority", IsCorrect: false},
			{QuestionID: "q_002", CategoryID: "parking", IsCorrect: true},
		},
	}

	batch := &pgx.Batch{}
	queueMistakes(batch, rec)

	require.Equal(t, 2, batch.Len(), "only wrong answers bump a counter")
	assert.Contains(t, batch.QueuedQueries[0].SQL, "ON CONFLICT (user_id, category_id, question_id)")
	assert.Equal(t, []any{7, "q_001", "parking", completed}, batch.QueuedQueries[0].Arguments)
	assert.Equal(t, []any{7, "q_001", "priority", completed}, batch.QueuedQueries[1].Arguments)
}
