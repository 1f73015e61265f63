package service

import (
	"fmt"
	"io"
	"testing"

	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/easy2drive/quiz-backend/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var difficulties = []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}

// buildRepo creates a catalog with perCategory questions in each category.
// Question j of a category has difficulty difficulties[j%3], correct option j%3
// and j%3+1 points.
func buildRepo(t *testing.T, perCategory []int) *repository.QuestionRepository {
	t.Helper()

	categories := make([]model.Category, len(perCategory))
	questions := make(map[string][]model.Question, len(perCategory))
	for i, n := range perCategory {
		id := fmt.Sprintf("cat-%02d", i)
		categories[i] = model.Category{ID: id, Name: id}
		for j := 0; j < n; j++ {
			questions[id] = append(questions[id], model.Question{
				ID:            fmt.Sprintf("%s_q%02d", id, j),
				QuestionText:  fmt.Sprintf("question %d of %s", j, id),
				Options:       []string{"a", "b", "c", "d"},
				CorrectOption: j % 3,
				Difficulty:    difficulties[j%3],
				Points:        j%3 + 1,
				Explanation:   "because",
			})
		}
	}

	catalog, err := repository.NewCatalog(categories, questions)
	require.NoError(t, err)
	return repository.NewQuestionRepository(catalog, zerolog.New(io.Discard))
}

func newTestEngine(t *testing.T, perCategory ...int) *QuizEngine {
	t.Helper()
	return NewQuizEngine(buildRepo(t, perCategory), zerolog.New(io.Discard))
}

// makeQuiz returns n questions worth one point each whose correct option is 0.
func makeQuiz(n int) []model.Question {
	quiz := make([]model.Question, n)
	for i := range quiz {
		quiz[i] = model.Question{
			ID:            fmt.Sprintf("q%02d", i),
			CategoryID:    "cat-00",
			QuestionText:  fmt.Sprintf("question %d", i),
			Options:       []string{"right", "wrong"},
			CorrectOption: 0,
			Difficulty:    model.DifficultyEasy,
			Points:        1,
		}
	}
	return quiz
}

// answersWithWrong answers quiz correctly except for the first `wrong` positions.
func answersWithWrong(n, wrong int) []model.Answer {
	answers := make([]model.Answer, n)
	for i := range answers {
		if i < wrong {
			answers[i].SelectedOption = 1
		}
	}
	return answers
}

func questionIDs(qs []model.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}
