package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepmind/neetprep-backend/internal/middleware"
	"github.com/prepmind/neetprep-backend/internal/response"
	"github.com/prepmind/neetprep-backend/internal/service"
)

// StatsHandler handles user statistics endpoints.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetUserStats godoc
// GET /api/v1/stats
// Returns the user's all-time totals for the home screen.
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	stats, err := h.statsService.GetUserStats(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
