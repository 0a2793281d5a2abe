package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepmind/neetprep-backend/internal/repository"
	"github.com/prepmind/neetprep-backend/internal/response"
	"github.com/prepmind/neetprep-backend/internal/service"
)

// failFromErr maps domain errors onto HTTP status + typed error codes.
// Every caller-facing failure carries a human-readable message; unknown
// errors collapse to an opaque internal error.
func failFromErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidQuestionCount)
	case errors.Is(err, service.ErrNoActiveSession):
		response.Fail(c, http.StatusConflict, response.ErrNoActiveSession)
	case errors.Is(err, service.ErrInsufficientData):
		response.Fail(c, http.StatusBadRequest, response.ErrInsufficientData)
	case errors.Is(err, service.ErrAnalysisInProgress):
		response.Fail(c, http.StatusConflict, response.ErrAnalysisInProgress)
	case errors.Is(err, service.ErrParse):
		response.Fail(c, http.StatusBadGateway, response.ErrModelParse)
	case errors.Is(err, service.ErrProvider):
		response.Fail(c, http.StatusBadGateway, response.ErrProviderFailure)
	case errors.Is(err, repository.ErrPatternNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
