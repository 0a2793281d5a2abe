package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prepmind/neetprep-backend/internal/middleware"
	"github.com/prepmind/neetprep-backend/internal/response"
	"github.com/prepmind/neetprep-backend/internal/service"
)

// PatternHandler handles mistake-pattern endpoints.
type PatternHandler struct {
	patternService *service.PatternService
}

// NewPatternHandler creates a new PatternHandler.
func NewPatternHandler(patternService *service.PatternService) *PatternHandler {
	return &PatternHandler{patternService: patternService}
}

// Analyze godoc
// POST /api/v1/patterns/analyze
// Runs the AI mistake-pattern analysis over the user's history.
func (h *PatternHandler) Analyze(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	patterns, err := h.patternService.Analyze(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"patterns": patterns,
		"count":    len(patterns),
	})
}

// ListPatterns godoc
// GET /api/v1/patterns
// Lists the user's unresolved patterns, newest first.
func (h *PatternHandler) ListPatterns(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	patterns, err := h.patternService.GetUserPatterns(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"patterns": patterns})
}

// ResolvePattern godoc
// POST /api/v1/patterns/:pattern_id/resolve
// Marks a pattern as resolved.
func (h *PatternHandler) ResolvePattern(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	patternID, err := uuid.Parse(c.Param("pattern_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.patternService.ResolvePattern(c.Request.Context(), claims.UserID, patternID); err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "pattern resolved"})
}
