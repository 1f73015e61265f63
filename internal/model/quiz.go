package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizMode selects how a quiz is assembled.
type QuizMode string

const (
	QuizModeCategory QuizMode = "category"
	QuizModeMixed    QuizMode = "mixed"
	QuizModeExam     QuizMode = "exam"
	QuizModeMistakes QuizMode = "mistakes"
)

// QuizType selects the pass/fail policy applied when grading.
type QuizType string

const (
	QuizTypeExam     QuizType = "exam"
	QuizTypeCategory QuizType = "category"
	QuizTypeMixed    QuizType = "mixed"
	QuizTypeMistakes QuizType = "mistakes"
)

// QuizTypeFor maps an assembly mode to the grading policy it is scored under.
// Unknown modes are graded like a category quiz.
func QuizTypeFor(mode QuizMode) QuizType {
	switch mode {
	case QuizModeExam:
		return QuizTypeExam
	case QuizModeMixed:
		return QuizTypeMixed
	case QuizModeMistakes:
		return QuizTypeMistakes
	default:
		return QuizTypeCategory
	}
}

// FailReason tags why a graded quiz did not pass.
type FailReason string

const (
	FailReasonExam     FailReason = "exam_failed"
	FailReasonCategory FailReason = "category_failed"
)

// QuizSpec is a request to assemble one quiz.
type QuizSpec struct {
	Mode       QuizMode
	CategoryID string
	Count      int
	Difficulty Difficulty
	// MistakeRefs is the caller-supplied pool for QuizModeMistakes.
	MistakeRefs []QuestionRef
}

// Answer is one submitted response, aligned by position with the issued quiz.
type Answer struct {
	// QuestionID is optional. Any answer that carries one must name the
	// question issued at its position; answers without one are positional.
	QuestionID     string `json:"question_id,omitempty" binding:"omitempty,max=64"`
	SelectedOption int    `json:"selected_answer"`
	TimeSpent      *int   `json:"time_spent,omitempty" binding:"omitempty,min=0"`
}

// GradedAnswer is an Answer checked against its question, kept for review.
type GradedAnswer struct {
	QuestionID     string   `json:"question_id"`
	QuestionText   string   `json:"question"`
	CategoryID     string   `json:"category_id"`
	SelectedOption int      `json:"selected_answer"`
	CorrectOption  int      `json:"correct_answer"`
	IsCorrect      bool     `json:"is_correct"`
	TimeSpent      int      `json:"time_spent"`
	Explanation    string   `json:"explanation,omitempty"`
	Options        []string `json:"options"`
}

// QuizResult is the aggregate outcome of grading one attempt.
type QuizResult struct {
	CorrectAnswers int            `json:"correct_answers"`
	WrongAnswers   int            `json:"wrong_answers"`
	TotalQuestions int            `json:"total_questions"`
	Score          int            `json:"score"`
	MaxScore       int            `json:"max_score"`
	Percentage     float64        `json:"percentage"`
	Passed         bool           `json:"passed"`
	FailReason     FailReason     `json:"fail_reason,omitempty"`
	Recommendation string         `json:"recommendation,omitempty"`
	Answers        []GradedAnswer `json:"answers"`
}

// Attempt is an issued quiz waiting for submission, kept in Redis.
type Attempt struct {
	ID               uuid.UUID     `json:"id"`
	UserID           int           `json:"user_id"`
	Mode             QuizMode      `json:"mode"`
	QuizType         QuizType      `json:"quiz_type"`
	CategoryID       string        `json:"category_id"`
	Questions        []QuestionRef `json:"questions"`
	TimeLimitSeconds int           `json:"time_limit_seconds,omitempty"`
	StartedAt        time.Time     `json:"started_at"`
}

// CreateQuizRequest is the payload for starting a quiz.
type CreateQuizRequest struct {
	Type       string `json:"type" binding:"omitempty,max=32"`
	CategoryID string `json:"category_id" binding:"omitempty,max=64"`
	Count      int    `json:"count" binding:"omitempty,min=1,max=100"`
	Difficulty string `json:"difficulty" binding:"omitempty,difficulty"`
}

// SubmitQuizRequest is the payload for submitting a finished attempt.
type SubmitQuizRequest struct {
	Answers   []Answer `json:"answers" binding:"required,dive"`
	TimeSpent int      `json:"time_spent" binding:"min=0"`
}

// IssuedQuiz is what the test-taker receives when a quiz starts.
type IssuedQuiz struct {
	AttemptID        uuid.UUID          `json:"attempt_id"`
	Mode             QuizMode           `json:"mode"`
	QuizType         QuizType           `json:"quiz_type"`
	CategoryID       string             `json:"category_id"`
	Questions        []QuestionForTaker `json:"questions"`
	Total            int                `json:"total"`
	TimeLimitSeconds int                `json:"time_limit_seconds,omitempty"`
}

// Submission is the graded outcome returned after a submit.
type Submission struct {
	AttemptID  uuid.UUID `json:"attempt_id"`
	CategoryID string    `json:"category_id"`
	QuizType   QuizType  `json:"quiz_type"`
	TimeSpent  int       `json:"time_spent"`
	*QuizResult
}
