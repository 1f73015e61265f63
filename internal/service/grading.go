package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/easy2drive/quiz-backend/internal/model"
)

// Grading errors.
var (
	ErrEmptyQuiz      = errors.New("cannot grade a quiz with no questions")
	ErrAnswerMismatch = errors.New("answers do not line up with the quiz")
)

// Wrong-answer budgets. A quiz passes while its wrong count stays within the
// budget, whatever its length.
const (
	ExamMaxWrong     = 3
	CategoryMaxWrong = 5
)

// Recommendations attached to failed results.
const (
	ExamRecommendation     = "Don't be discouraged! You're on the right track. We recommend reviewing topics where you had difficulties and trying again. Each attempt brings you closer to success! 💪"
	CategoryRecommendation = "We recommend reviewing this topic again. Pay attention to the questions where you made mistakes. Practice makes perfect! 📚"
)

// GradeQuiz grades answers against quiz position by position: answers[i] is
// checked against quiz[i], never matched by question id. Reordering either
// slice between issue and submission corrupts the result.
func GradeQuiz(answers []model.Answer, quiz []model.Question, quizType model.QuizType) (*model.QuizResult, error) {
	if len(quiz) == 0 {
		return nil, ErrEmptyQuiz
	}
	if len(answers) != len(quiz) {
		return nil, fmt.Errorf("%w: got %d answers for %d questions", ErrAnswerMismatch, len(answers), len(quiz))
	}

	result := &model.QuizResult{
		TotalQuestions: len(quiz),
		Answers:        make([]model.GradedAnswer, len(quiz)),
	}

	for i, answer := range answers {
		q := quiz[i]
		isCorrect := q.CorrectOption == answer.SelectedOption

		result.MaxScore += q.Points
		if isCorrect {
			result.CorrectAnswers++
			result.Score += q.Points
		} else {
			result.WrongAnswers++
		}

		timeSpent := 0
		if answer.TimeSpent != nil {
			timeSpent = *answer.TimeSpent
		}

		result.Answers[i] = model.GradedAnswer{
			QuestionID:     q.ID,
			QuestionText:   q.QuestionText,
			CategoryID:     q.CategoryID,
			SelectedOption: answer.SelectedOption,
			CorrectOption:  q.CorrectOption,
			IsCorrect:      isCorrect,
			TimeSpent:      timeSpent,
			Explanation:    q.Explanation,
			Options:        append([]string(nil), q.Options...),
		}
	}

	ratio := float64(result.CorrectAnswers) / float64(result.TotalQuestions)
	result.Percentage = math.Round(ratio*1000) / 10

	applyPassPolicy(result, quizType)
	return result, nil
}

// GradeQuizStrict is GradeQuiz with an extra check that every answer naming a
// question id names the question issued at its position.
func GradeQuizStrict(answers []model.Answer, quiz []model.Question, quizType model.QuizType) (*model.QuizResult, error) {
	if len(answers) == len(quiz) {
		for i, a := range answers {
			if a.QuestionID != "" && a.QuestionID != quiz[i].ID {
				return nil, fmt.Errorf("%w: answer %d is for %q, expected %q", ErrAnswerMismatch, i, a.QuestionID, quiz[i].ID)
			}
		}
	}
	return GradeQuiz(answers, quiz, quizType)
}

func applyPassPolicy(result *model.QuizResult, quizType model.QuizType) {
	if quizType == model.QuizTypeExam {
		result.Passed = result.WrongAnswers <= ExamMaxWrong
		if !result.Passed {
			result.FailReason = model.FailReasonExam
			result.Recommendation = ExamRecommendation
		}
		return
	}

	result.Passed = result.WrongAnswers <= CategoryMaxWrong
	if !result.Passed {
		result.FailReason = model.FailReasonCategory
		result.Recommendation = CategoryRecommendation
	}
}
