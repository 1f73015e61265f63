package model

import "time"

// ResultRecord is a persisted quiz outcome.
type ResultRecord struct {
	ID             int64          `json:"id"`
	UserID         int            `json:"user_id"`
	CategoryID     string         `json:"category_id"`
	QuizType       QuizType       `json:"quiz_type"`
	Answers        []GradedAnswer `json:"answers"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	CorrectAnswers int            `json:"correct_answers"`
	Percentage     float64        `json:"percentage"`
	TimeSpent      int            `json:"time_spent"`
	Passed         bool           `json:"passed"`
	CompletedAt    time.Time      `json:"completed_at"`

	// Retries counts failed persistence attempts while the record is queued.
	Retries int `json:"retries,omitempty"`
}

// MistakeQuestion counts how often a user has missed a question.
type MistakeQuestion struct {
	UserID        int       `json:"user_id"`
	QuestionID    string    `json:"question_id"`
	CategoryID    string    `json:"category_id"`
	WrongAttempts int       `json:"wrong_attempts"`
	LastAttempt   time.Time `json:"last_attempt"`
}

// CategoryStats aggregates a user's results within one category.
type CategoryStats struct {
	Total        int     `json:"total"`
	Passed       int     `json:"passed"`
	AverageScore float64 `json:"average_score"`
	TotalScore   float64 `json:"total_score"`
}

// Statistics summarizes a user's result history.
type Statistics struct {
	TotalTests    int                       `json:"total_tests"`
	PassedTests   int                       `json:"passed_tests"`
	AverageScore  float64                   `json:"average_score"`
	CategoryStats map[string]*CategoryStats `json:"category_stats"`
}

// History is a user's recent results with their statistics.
type History struct {
	Results    []ResultRecord `json:"results"`
	Statistics Statistics     `json:"statistics"`
}
