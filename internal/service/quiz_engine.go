package service

import (
	"errors"
	"fmt"

	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/easy2drive/quiz-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrInvalidSpec is returned when a quiz request is missing a required parameter.
var ErrInvalidSpec = errors.New("invalid quiz spec")

const (
	// DefaultQuestionCount is used when a spec does not ask for a size.
	DefaultQuestionCount = 10
	// ExamQuestionCount is the fixed size of a timed exam.
	ExamQuestionCount = 20
)

// QuizEngine assembles quizzes from the question repository.
type QuizEngine struct {
	questions *repository.QuestionRepository
	log       zerolog.Logger
}

// NewQuizEngine creates a new QuizEngine.
func NewQuizEngine(questions *repository.QuestionRepository, log zerolog.Logger) *QuizEngine {
	return &QuizEngine{
		questions: questions,
		log:       log.With().Str("component", "quiz_engine").Logger(),
	}
}

// CreateQuiz builds the question set for spec.
//
// The difficulty filter runs after sampling, so a filtered quiz can come back
// shorter than requested.
func (e *QuizEngine) CreateQuiz(spec model.QuizSpec) ([]model.Question, error) {
	count := spec.Count
	if count <= 0 {
		count = DefaultQuestionCount
	}

	var questions []model.Question

	switch spec.Mode {
	case model.QuizModeCategory:
		if spec.CategoryID == "" {
			return nil, fmt.Errorf("%w: Category ID is required", ErrInvalidSpec)
		}
		questions = e.questions.Sample(count, spec.CategoryID)

	case model.QuizModeMixed:
		questions = e.questions.Sample(count, "")

	case model.QuizModeExam:
		questions = e.examSet()

	case model.QuizModeMistakes:
		questions = e.mistakeSet(spec.MistakeRefs, count)

	default:
		// Unknown modes sample like a category quiz with whatever was supplied,
		// including an empty category (the global pool).
		e.log.Debug().
			Str("mode", string(spec.Mode)).
			Str("category_id", spec.CategoryID).
			Msg("Unknown quiz mode, falling back to category sampling")
		questions = e.questions.Sample(count, spec.CategoryID)
	}

	if spec.Difficulty != "" {
		questions = repository.FilterDifficulty(questions, spec.Difficulty)
	}

	return questions, nil
}

// examSet draws ceil(20/categories) from every category, shuffles the
// combined pool and keeps the first 20.
func (e *QuizEngine) examSet() []model.Question {
	categories := e.questions.ListCategories()
	if len(categories) == 0 {
		return []model.Question{}
	}

	perCategory := (ExamQuestionCount + len(categories) - 1) / len(categories)

	var pool []model.Question
	for _, c := range categories {
		pool = append(pool, e.questions.Sample(perCategory, c.ID)...)
	}

	e.questions.Shuffle(pool)
	if len(pool) > ExamQuestionCount {
		pool = pool[:ExamQuestionCount]
	}
	return pool
}

// mistakeSet resolves previously missed questions and samples count of them.
func (e *QuizEngine) mistakeSet(refs []model.QuestionRef, count int) []model.Question {
	pool := make([]model.Question, 0, len(refs))
	seen := make(map[model.QuestionRef]bool, len(refs))

	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true

		q, ok := e.questions.FindQuestion(ref.QuestionID, ref.CategoryID)
		if !ok {
			continue
		}
		pool = append(pool, q)
	}

	e.questions.Shuffle(pool)
	return pool[:min(count, len(pool))]
}
