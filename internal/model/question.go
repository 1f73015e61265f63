package model

// Difficulty is the tier a question or category is rated at.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Category is a group of questions in the catalog.
type Category struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Icon          string     `json:"icon"`
	Color         string     `json:"color"`
	Difficulty    Difficulty `json:"difficulty"`
	QuestionCount int        `json:"question_count"`
}

// Question is a single multiple-choice theory question.
type Question struct {
	ID            string     `json:"id"`
	CategoryID    string     `json:"category_id"`
	QuestionText  string     `json:"question"`
	Image         string     `json:"image,omitempty"`
	Options       []string   `json:"options"`
	CorrectOption int        `json:"correct_answer"`
	Difficulty    Difficulty `json:"difficulty"`
	Points        int        `json:"points"`
	Explanation   string     `json:"explanation,omitempty"`
}

// QuestionForTaker is a question without the answer key, sent to the test-taker.
type QuestionForTaker struct {
	ID           string     `json:"id"`
	CategoryID   string     `json:"category_id"`
	QuestionText string     `json:"question"`
	Image        string     `json:"image,omitempty"`
	Options      []string   `json:"options"`
	Difficulty   Difficulty `json:"difficulty"`
}

// QuestionRef points at a question by id within its owning category.
type QuestionRef struct {
	QuestionID string `json:"question_id"`
	CategoryID string `json:"category_id"`
}

// Ref returns the reference that locates q in the catalog.
func (q Question) Ref() QuestionRef {
	return QuestionRef{QuestionID: q.ID, CategoryID: q.CategoryID}
}

// ToTakerView strips the correct answer, explanation and point value.
func ToTakerView(questions []Question) []QuestionForTaker {
	out := make([]QuestionForTaker, len(questions))
	for i, q := range questions {
		out[i] = QuestionForTaker{
			ID:           q.ID,
			CategoryID:   q.CategoryID,
			QuestionText: q.QuestionText,
			Image:        q.Image,
			Options:      append([]string(nil), q.Options...),
			Difficulty:   q.Difficulty,
		}
	}
	return out
}
