package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepmind/neetprep-backend/internal/response"
	"github.com/prepmind/neetprep-backend/internal/service"
	"github.com/prepmind/neetprep-backend/internal/validator"
)

// AuthHandler handles device identity endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerDeviceRequest struct {
	// DeviceID is optional; a missing id gets a server-generated one.
	DeviceID string `json:"device_id" binding:"omitempty,max=64"`
}

// RegisterDevice godoc
// POST /api/v1/auth/device
// Exchanges a device id for a bearer token. Idempotent for a given id.
func (h *AuthHandler) RegisterDevice(c *gin.Context) {
	var req registerDeviceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, userID, err := h.authService.GenerateDeviceToken(req.DeviceID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":   token,
		"user_id": userID,
	})
}
