package handler

import (
	"net/http"

	"github.com/easy2drive/quiz-backend/internal/middleware"
	"github.com/easy2drive/quiz-backend/internal/response"
	"github.com/easy2drive/quiz-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ResultHandler serves a learner's history and mistakes.
type ResultHandler struct {
	results *service.ResultService
	log     zerolog.Logger
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(results *service.ResultService, log zerolog.Logger) *ResultHandler {
	return &ResultHandler{
		results: results,
		log:     log.With().Str("component", "result_handler").Logger(),
	}
}

// GetHistory godoc
// GET /api/v1/results
// Returns the caller's latest results and aggregate statistics.
func (h *ResultHandler) GetHistory(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	history, err := h.results.History(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, history)
}

// GetMistakes godoc
// GET /api/v1/mistakes
func (h *ResultHandler) GetMistakes(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	mistakes, err := h.results.Mistakes(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mistakes": mistakes})
}
