package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/easy2drive/quiz-backend/internal/model"
)

// ErrCatalogUnavailable is returned when the question catalog cannot be read.
var ErrCatalogUnavailable = errors.New("question catalog unavailable")

const (
	categoriesFile = "categories.json"
	questionsDir   = "questions"
)

// Catalog is the immutable category/question reference data.
// It is built once and only read afterwards, so it is safe for concurrent use.
type Catalog struct {
	categories []model.Category
	questions  map[string][]model.Question
}

// CategoryCount returns the number of categories.
func (c *Catalog) CategoryCount() int { return len(c.categories) }

// QuestionCount returns the number of questions across all categories.
func (c *Catalog) QuestionCount() int {
	n := 0
	for _, qs := range c.questions {
		n += len(qs)
	}
	return n
}

// LoadCatalog reads categories.json and questions/<category>.json from dir.
func LoadCatalog(dir string) (*Catalog, error) {
	return LoadCatalogFS(os.DirFS(dir))
}

// LoadCatalogFS reads the catalog from fsys.
// A category without a question file simply has no questions.
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, categoriesFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCatalogUnavailable, categoriesFile, err)
	}

	var categories []model.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCatalogUnavailable, categoriesFile, err)
	}

	questions := make(map[string][]model.Question, len(categories))
	for _, cat := range categories {
		file := path.Join(questionsDir, cat.ID+".json")
		data, err := fs.ReadFile(fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrCatalogUnavailable, file, err)
		}

		var qs []model.Question
		if err := json.Unmarshal(data, &qs); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrCatalogUnavailable, file, err)
		}
		questions[cat.ID] = qs
	}

	return NewCatalog(categories, questions)
}

// NewCatalog validates and freezes the given reference data.
// Questions with an empty CategoryID inherit the key they are listed under.
func NewCatalog(categories []model.Category, questions map[string][]model.Question) (*Catalog, error) {
	c := &Catalog{
		categories: make([]model.Category, 0, len(categories)),
		questions:  make(map[string][]model.Question, len(categories)),
	}

	seen := make(map[string]bool, len(categories))
	for _, cat := range categories {
		if cat.ID == "" {
			return nil, fmt.Errorf("%w: category without id", ErrCatalogUnavailable)
		}
		if seen[cat.ID] {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrCatalogUnavailable, cat.ID)
		}
		seen[cat.ID] = true

		qs, err := validateQuestions(cat.ID, questions[cat.ID])
		if err != nil {
			return nil, err
		}
		cat.QuestionCount = len(qs)
		c.categories = append(c.categories, cat)
		if len(qs) > 0 {
			c.questions[cat.ID] = qs
		}
	}

	for id := range questions {
		if !seen[id] {
			return nil, fmt.Errorf("%w: questions for unknown category %q", ErrCatalogUnavailable, id)
		}
	}

	return c, nil
}

func validateQuestions(categoryID string, in []model.Question) ([]model.Question, error) {
	out := make([]model.Question, 0, len(in))
	ids := make(map[string]bool, len(in))

	for _, q := range in {
		if q.CategoryID == "" {
			q.CategoryID = categoryID
		}
		switch {
		case q.ID == "":
			return nil, fmt.Errorf("%w: question without id in %q", ErrCatalogUnavailable, categoryID)
		case ids[q.ID]:
			return nil, fmt.Errorf("%w: duplicate question %q in %q", ErrCatalogUnavailable, q.ID, categoryID)
		case q.CategoryID != categoryID:
			return nil, fmt.Errorf("%w: question %q listed under %q but owned by %q", ErrCatalogUnavailable, q.ID, categoryID, q.CategoryID)
		case len(q.Options) < 2:
			return nil, fmt.Errorf("%w: question %q needs at least 2 options", ErrCatalogUnavailable, q.ID)
		case q.CorrectOption < 0 || q.CorrectOption >= len(q.Options):
			return nil, fmt.Errorf("%w: question %q correct option %d out of range", ErrCatalogUnavailable, q.ID, q.CorrectOption)
		case q.Points <= 0:
			return nil, fmt.Errorf("%w: question %q has non-positive points", ErrCatalogUnavailable, q.ID)
		case !q.Difficulty.Valid():
			return nil, fmt.Errorf("%w: question %q has unknown difficulty %q", ErrCatalogUnavailable, q.ID, q.Difficulty)
		}
		ids[q.ID] = true
		q.Options = append([]string(nil), q.Options...)
		out = append(out, q)
	}
	return out, nil
}
