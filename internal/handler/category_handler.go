package handler

import (
	"net/http"

	"github.com/easy2drive/quiz-backend/internal/model"
	"github.com/easy2drive/quiz-backend/internal/repository"
	"github.com/easy2drive/quiz-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// CategoryHandler serves the read-only question catalog.
type CategoryHandler struct {
	questions *repository.QuestionRepository
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(questions *repository.QuestionRepository) *CategoryHandler {
	return &CategoryHandler{questions: questions}
}

// ListCategories godoc
// GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"categories": h.questions.ListCategories()})
}

// ListCategoryQuestions godoc
// GET /api/v1/categories/:id/questions
// Returns a category with its questions, without answers or explanations.
func (h *CategoryHandler) ListCategoryQuestions(c *gin.Context) {
	category, ok := h.questions.GetCategory(c.Param("id"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrCategoryNotFound)
		return
	}

	questions := model.ToTakerView(h.questions.ListQuestions(category.ID))
	response.Success(c, http.StatusOK, gin.H{
		"category":  category,
		"questions": questions,
		"total":     len(questions),
	})
}
