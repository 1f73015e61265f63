// Package score computes whole-number percentages, the 75% pass bar and
// grade bands from plain correct/total counts.
//
// It is independent from quiz grading in the service package, which rounds
// to one decimal and passes on a wrong-answer budget instead.
package score

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned when an input violates a precondition.
var ErrInvalidArgument = errors.New("invalid argument")

// PassPercentage is the minimum percentage that counts as passed.
const PassPercentage = 75

// Grade bands.
const (
	GradeExcellent      = "Excellent"
	GradeGood           = "Good"
	GradeSatisfactory   = "Satisfactory"
	GradeUnsatisfactory = "Unsatisfactory"
)

// Result is the full breakdown for a correct/total pair.
type Result struct {
	CorrectAnswers   int    `json:"correct_answers"`
	IncorrectAnswers int    `json:"incorrect_answers"`
	TotalQuestions   int    `json:"total_questions"`
	Percentage       int    `json:"percentage"`
	Passed           bool   `json:"passed"`
	Grade            string `json:"grade"`
}

// PercentageOf returns correct/total as a whole percentage.
func PercentageOf(correct, total int) (int, error) {
	if total == 0 {
		return 0, fmt.Errorf("%w: Total questions cannot be zero", ErrInvalidArgument)
	}
	if correct < 0 || total < 0 {
		return 0, fmt.Errorf("%w: Values cannot be negative", ErrInvalidArgument)
	}
	if correct > total {
		return 0, fmt.Errorf("%w: Correct answers cannot exceed total questions", ErrInvalidArgument)
	}
	return int(math.Round(float64(correct) / float64(total) * 100)), nil
}

// IsPassed reports whether percentage meets PassPercentage.
func IsPassed(percentage int) (bool, error) {
	if err := checkPercentage(percentage); err != nil {
		return false, err
	}
	return percentage >= PassPercentage, nil
}

// Grade maps a percentage to its band.
func Grade(percentage int) (string, error) {
	if err := checkPercentage(percentage); err != nil {
		return "", err
	}

	switch {
	case percentage >= 90:
		return GradeExcellent, nil
	case percentage >= 75:
		return GradeGood, nil
	case percentage >= 60:
		return GradeSatisfactory, nil
	default:
		return GradeUnsatisfactory, nil
	}
}

// FullResult composes PercentageOf, IsPassed and Grade.
func FullResult(correct, total int) (Result, error) {
	percentage, err := PercentageOf(correct, total)
	if err != nil {
		return Result{}, err
	}
	passed, err := IsPassed(percentage)
	if err != nil {
		return Result{}, err
	}
	grade, err := Grade(percentage)
	if err != nil {
		return Result{}, err
	}

	return Result{
		CorrectAnswers:   correct,
		IncorrectAnswers: total - correct,
		TotalQuestions:   total,
		Percentage:       percentage,
		Passed:           passed,
		Grade:            grade,
	}, nil
}

func checkPercentage(p int) error {
	if p < 0 || p > 100 {
		return fmt.Errorf("%w: Percentage must be between 0 and 100", ErrInvalidArgument)
	}
	return nil
}
