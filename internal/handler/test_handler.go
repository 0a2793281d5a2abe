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

// TestHandler handles test session endpoints.
type TestHandler struct {
	sessionService *service.TestSessionService
	statsService   *service.StatsService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(sessionService *service.TestSessionService, statsService *service.StatsService) *TestHandler {
	return &TestHandler{
		sessionService: sessionService,
		statsService:   statsService,
	}
}

// StartTest godoc
// POST /api/v1/tests
// Starts a new test session, replacing any unfinished one.
func (h *TestHandler) StartTest(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.StartTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	progress, err := h.sessionService.StartTest(c.Request.Context(), claims.UserID, model.Subject(req.Subject), req.QuestionCount)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"session": progress})
}

// GetCurrent godoc
// GET /api/v1/tests/current
// Returns the active session's current question and progress.
func (h *TestHandler) GetCurrent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	progress, err := h.sessionService.Current(claims.UserID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": progress})
}

// SubmitAnswer godoc
// POST /api/v1/tests/answer
// Grades and persists an answer to the current question.
func (h *TestHandler) SubmitAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	outcome, err := h.sessionService.SubmitAnswer(c.Request.Context(), claims.UserID, req.SelectedAnswer)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": outcome})
}

// NextQuestion godoc
// POST /api/v1/tests/next
// Advances to the next question. No-op on the last one.
func (h *TestHandler) NextQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	progress, err := h.sessionService.NextQuestion(claims.UserID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": progress})
}

// EndTest godoc
// POST /api/v1/tests/end
// Finishes the session and returns results plus the review payload.
func (h *TestHandler) EndTest(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	review, err := h.sessionService.EndTest(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"review": review})
}

// ResetTest godoc
// DELETE /api/v1/tests
// Discards the in-memory session. Always succeeds.
func (h *TestHandler) ResetTest(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	h.sessionService.ResetTest(claims.UserID)
	response.Success(c, http.StatusOK, gin.H{"message": "test session reset"})
}

// GetTestResults godoc
// GET /api/v1/results/:test_id
// Recomputes a finished test's summary from its persisted responses.
func (h *TestHandler) GetTestResults(c *gin.Context) {
	testID := c.Param("test_id")
	if testID == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	results, err := h.statsService.ComputeTestResults(c.Request.Context(), testID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}
