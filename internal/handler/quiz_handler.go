package handler

import (
	"net/http"

	"github.com/easy2drive/quiz-backend/internal/middleware"
	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/easy2drive/quiz-backend/internal/response"
	"github.com/easy2drive/quiz-backend/internal/service"
	"github.com/easy2drive/quiz-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// QuizHandler handles quiz taking endpoints.
type QuizHandler struct {
	attempts *service.AttemptService
	log      zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(attempts *service.AttemptService, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		attempts: attempts,
		log:      log.With().Str("component", "quiz_handler").Logger(),
	}
}

// CreateQuiz godoc
// POST /api/v1/quiz
// Assembles a quiz and opens an attempt for the caller.
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateQuizRequest
	if errs := validator.Bind(c, &req); errs != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, errs)
		return
	}

	issued, err := h.attempts.Start(c.Request.Context(), claims.UserID, req)
	if err != nil {
		failFromError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, issued)
}

// SubmitQuiz godoc
// POST /api/v1/quiz/:attempt_id/submit
// Grades the answers against the issued attempt. Answers are matched by position.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	attemptID, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitQuizRequest
	if errs := validator.Bind(c, &req); errs != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, errs)
		return
	}

	submission, err := h.attempts.Submit(c.Request.Context(), claims.UserID, attemptID, req)
	if err != nil {
		failFromError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, submission)
}
