package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/easy2drive/quiz-backend/internal/repository"
	"github.com/easy2drive/quiz-backend/internal/response"
	"github.com/easy2drive/quiz-backend/internal/score"
	"github.com/easy2drive/quiz-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// failFromError maps domain errors onto the response envelope. Anything
// unrecognised is logged and reported as an internal error.
func failFromError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSpec):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidSpec, detail(err, service.ErrInvalidSpec))
	case errors.Is(err, score.ErrInvalidArgument):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidArgument, detail(err, score.ErrInvalidArgument))
	case errors.Is(err, service.ErrAnswerMismatch):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrAnswerMismatch, detail(err, service.ErrAnswerMismatch))
	case errors.Is(err, service.ErrEmptyQuiz):
		response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
	case errors.Is(err, repository.ErrAttemptNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrAttemptNotFound)
	case errors.Is(err, service.ErrAttemptForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrAttemptForbidden)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, repository.ErrCatalogUnavailable):
		log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Catalog unavailable")
		response.Fail(c, http.StatusServiceUnavailable, response.ErrCatalogUnavailable)
	default:
		log.Error().Err(err).
			Str("request_id", response.RequestID(c)).
			Str("path", c.FullPath()).
			Msg("Request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// detail returns the context wrapped around sentinel, e.g. "Category ID is required"
// for "invalid quiz spec: Category ID is required".
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" || msg == sentinel.Error() {
		return response.GetMessage(codeFor(sentinel))
	}
	return msg
}

func codeFor(sentinel error) response.ErrCode {
	switch sentinel {
	case service.ErrInvalidSpec:
		return response.ErrInvalidSpec
	case score.ErrInvalidArgument:
		return response.ErrInvalidArgument
	case service.ErrAnswerMismatch:
		return response.ErrAnswerMismatch
	default:
		return response.ErrInternal
	}
}
