package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepmind/neetprep-backend/internal/middleware"
	"github.com/prepmind/neetprep-backend/internal/model"
	"github.com/prepmind/neetprep-backend/internal/response"
	"github.com/prepmind/neetprep-backend/internal/service"
	"github.com/prepmind/neetprep-backend/internal/validator"
)

// QuestionHandler handles standalone question generation.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Generate godoc
// POST /api/v1/questions/generate
// Generates and stores a batch of questions without opening a session.
func (h *QuestionHandler) Generate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.GenerateQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.questionService.Generate(
		c.Request.Context(),
		model.Subject(req.Subject),
		req.Count,
		model.Difficulty(req.Difficulty),
	)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"questions": questions,
		"count":     len(questions),
	})
}
