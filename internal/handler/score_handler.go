package handler

import (
	"net/http"

	"github.com/easy2drive/quiz-backend/internal/response"
	"github.com/easy2drive/quiz-backend/internal/score"
	"github.com/easy2drive/quiz-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ScoreHandler exposes the standalone score calculator.
type ScoreHandler struct {
	log zerolog.Logger
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(log zerolog.Logger) *ScoreHandler {
	return &ScoreHandler{log: log.With().Str("component", "score_handler").Logger()}
}

type scoreQuery struct {
	Correct *int `form:"correct" binding:"required"`
	Total   *int `form:"total" binding:"required"`
}

// GetScore godoc
// GET /api/v1/score?correct=&total=
// Returns the integer percentage, pass flag and grade for a raw score.
func (h *ScoreHandler) GetScore(c *gin.Context) {
	var q scoreQuery
	if errs := validator.BindQuery(c, &q); errs != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, errs)
		return
	}

	result, err := score.FullResult(*q.Correct, *q.Total)
	if err != nil {
		failFromError(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
