package repository

import (
	"math/rand/v2"

	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/rs/zerolog"
)

// ShuffleFunc permutes n elements through swap, like rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// QuestionRepository exposes filtered and sampled views of the catalog.
type QuestionRepository struct {
	catalog *Catalog
	shuffle ShuffleFunc
	log     zerolog.Logger
}

// NewQuestionRepository creates a new QuestionRepository over catalog.
func NewQuestionRepository(catalog *Catalog, log zerolog.Logger) *QuestionRepository {
	return &QuestionRepository{
		catalog: catalog,
		shuffle: rand.Shuffle,
		log:     log.With().Str("component", "question_repository").Logger(),
	}
}

// WithShuffle returns a copy of the repository using fn as its randomness source.
func (r *QuestionRepository) WithShuffle(fn ShuffleFunc) *QuestionRepository {
	cp := *r
	cp.shuffle = fn
	return &cp
}

// ListCategories returns all categories in catalog order.
func (r *QuestionRepository) ListCategories() []model.Category {
	return append([]model.Category(nil), r.catalog.categories...)
}

// GetCategory looks up a category by exact id.
func (r *QuestionRepository) GetCategory(id string) (model.Category, bool) {
	for _, c := range r.catalog.categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// ListQuestions returns every question of a category in catalog order.
// Unknown categories yield an empty slice.
func (r *QuestionRepository) ListQuestions(categoryID string) []model.Question {
	return cloneQuestions(r.catalog.questions[categoryID])
}

// ListAllQuestions concatenates ListQuestions over every category.
func (r *QuestionRepository) ListAllQuestions() []model.Question {
	var all []model.Question
	for _, c := range r.catalog.categories {
		all = append(all, r.catalog.questions[c.ID]...)
	}
	return cloneQuestions(all)
}

// FindQuestion looks up a question by id within its category.
func (r *QuestionRepository) FindQuestion(questionID, categoryID string) (model.Question, bool) {
	qs := r.catalog.questions[categoryID]
	for _, q := range qs {
		if q.ID == questionID {
			return cloneQuestion(q), true
		}
	}

	available := make([]string, len(qs))
	for i, q := range qs {
		available[i] = q.ID
	}
	r.log.Warn().
		Str("question_id", questionID).
		Str("category_id", categoryID).
		Strs("available", available).
		Msg("Question not found in category")
	return model.Question{}, false
}

// Sample returns min(count, available) distinct questions in random order.
// An empty categoryID samples from every category.
func (r *QuestionRepository) Sample(count int, categoryID string) []model.Question {
	var pool []model.Question
	if categoryID == "" {
		pool = r.ListAllQuestions()
	} else {
		pool = r.ListQuestions(categoryID)
	}

	r.Shuffle(pool)
	return pool[:max(0, min(count, len(pool)))]
}

// FilterByDifficulty returns the questions at the given tier in catalog order.
// An empty categoryID filters across every category.
func (r *QuestionRepository) FilterByDifficulty(difficulty model.Difficulty, categoryID string) []model.Question {
	var pool []model.Question
	if categoryID == "" {
		pool = r.ListAllQuestions()
	} else {
		pool = r.ListQuestions(categoryID)
	}
	return FilterDifficulty(pool, difficulty)
}

// Shuffle permutes questions in place using the repository's randomness source.
func (r *QuestionRepository) Shuffle(questions []model.Question) {
	r.shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}

// FilterDifficulty keeps the questions at difficulty, preserving order.
func FilterDifficulty(questions []model.Question, difficulty model.Difficulty) []model.Question {
	out := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	return out
}

func cloneQuestions(in []model.Question) []model.Question {
	out := make([]model.Question, len(in))
	for i, q := range in {
		out[i] = cloneQuestion(q)
	}
	return out
}

func cloneQuestion(q model.Question) model.Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}
