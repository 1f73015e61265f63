package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/easy2drive/quiz-backend/internal/config"
	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/easy2drive/quiz-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrAttemptForbidden is returned when a user submits someone else's attempt.
var ErrAttemptForbidden = errors.New("attempt belongs to another user")

// AttemptStore keeps issued quizzes until submission.
type AttemptStore interface {
	Save(ctx context.Context, attempt *model.Attempt, ttl time.Duration) error
	Get(ctx context.Context, id uuid.UUID) (*model.Attempt, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ResultQueue accepts graded results for asynchronous persistence.
type ResultQueue interface {
	Enqueue(ctx context.Context, record *model.ResultRecord) error
}

// MistakeSource lists the questions a user previously missed.
type MistakeSource interface {
	ListRefs(ctx context.Context, userID int) ([]model.QuestionRef, error)
}

// AttemptService issues quizzes and grades them against exactly what was issued.
type AttemptService struct {
	cfg       *config.Config
	engine    *QuizEngine
	questions *repository.QuestionRepository
	attempts  AttemptStore
	results   ResultQueue
	mistakes  MistakeSource
	log       zerolog.Logger
	now       func() time.Time
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	cfg *config.Config,
	engine *QuizEngine,
	questions *repository.QuestionRepository,
	attempts AttemptStore,
	results ResultQueue,
	mistakes MistakeSource,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		cfg:       cfg,
		engine:    engine,
		questions: questions,
		attempts:  attempts,
		results:   results,
		mistakes:  mistakes,
		log:       log.With().Str("component", "attempt_service").Logger(),
		now:       time.Now,
	}
}

// Start assembles a quiz for userID and records it as an open attempt.
func (s *AttemptService) Start(ctx context.Context, userID int, req model.CreateQuizRequest) (*model.IssuedQuiz, error) {
	mode := model.QuizMode(req.Type)
	if mode == "" {
		mode = model.QuizModeCategory
	}

	spec := model.QuizSpec{
		Mode:       mode,
		CategoryID: req.CategoryID,
		Count:      req.Count,
		Difficulty: model.Difficulty(req.Difficulty),
	}

	if mode == model.QuizModeMistakes {
		refs, err := s.mistakes.ListRefs(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load mistakes: %w", err)
		}
		spec.MistakeRefs = refs
	}

	questions, err := s.engine.CreateQuiz(spec)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrEmptyQuiz
	}

	attempt := &model.Attempt{
		ID:         uuid.New(),
		UserID:     userID,
		Mode:       mode,
		QuizType:   model.QuizTypeFor(mode),
		CategoryID: resultCategory(mode, req.CategoryID),
		Questions:  make([]model.QuestionRef, len(questions)),
		StartedAt:  s.now().UTC(),
	}
	for i, q := range questions {
		attempt.Questions[i] = q.Ref()
	}
	if mode == model.QuizModeExam {
		attempt.TimeLimitSeconds = int(s.cfg.ExamTimeLimit.Seconds())
	}

	if err := s.attempts.Save(ctx, attempt, s.cfg.AttemptTTL); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("attempt_id", attempt.ID.String()).
		Int("user_id", userID).
		Str("mode", string(mode)).
		Int("questions", len(questions)).
		Msg("Quiz issued")

	return &model.IssuedQuiz{
		AttemptID:        attempt.ID,
		Mode:             attempt.Mode,
		QuizType:         attempt.QuizType,
		CategoryID:       attempt.CategoryID,
		Questions:        model.ToTakerView(questions),
		Total:            len(questions),
		TimeLimitSeconds: attempt.TimeLimitSeconds,
	}, nil
}

// Submit grades an open attempt and hands the result to the persistence queue.
// A failed enqueue is logged; the learner still gets their result.
func (s *AttemptService) Submit(ctx context.Context, userID int, attemptID uuid.UUID, req model.SubmitQuizRequest) (*model.Submission, error) {
	attempt, err := s.attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptForbidden
	}

	quiz := make([]model.Question, len(attempt.Questions))
	for i, ref := range attempt.Questions {
		q, ok := s.questions.FindQuestion(ref.QuestionID, ref.CategoryID)
		if !ok {
			return nil, fmt.Errorf("%w: question %s is no longer in the catalog", repository.ErrCatalogUnavailable, ref.QuestionID)
		}
		quiz[i] = q
	}

	result, err := GradeQuizStrict(req.Answers, quiz, attempt.QuizType)
	if err != nil {
		return nil, err
	}

	deleted, err := s.attempts.Delete(ctx, attempt.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		// A concurrent submit of the same attempt got there first.
		return nil, repository.ErrAttemptNotFound
	}

	record := &model.ResultRecord{
		UserID:         userID,
		CategoryID:     attempt.CategoryID,
		QuizType:       attempt.QuizType,
		Answers:        result.Answers,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		Percentage:     result.Percentage,
		TimeSpent:      req.TimeSpent,
		Passed:         result.Passed,
		CompletedAt:    s.now().UTC(),
	}
	if err := s.results.Enqueue(ctx, record); err != nil {
		s.log.Error().Err(err).
			Str("attempt_id", attempt.ID.String()).
			Int("user_id", userID).
			Msg("Failed to enqueue result for persistence")
	}

	return &model.Submission{
		AttemptID:  attempt.ID,
		CategoryID: attempt.CategoryID,
		QuizType:   attempt.QuizType,
		TimeSpent:  req.TimeSpent,
		QuizResult: result,
	}, nil
}

// resultCategory is the category a result is filed under: the category itself
// for category quizzes, the mode name for everything else.
func resultCategory(mode model.QuizMode, categoryID string) string {
	if mode == model.QuizModeCategory {
		return categoryID
	}
	if mode == model.QuizModeExam || mode == model.QuizModeMixed || mode == model.QuizModeMistakes {
		return string(mode)
	}
	if categoryID != "" {
		return categoryID
	}
	return string(model.QuizModeMixed)
}
