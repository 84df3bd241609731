package handlers

import (
	"errors"
	"net/http"

	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
	"github.com/PrashantBimalJha/studentlearning-app/internal/oracle"
	"github.com/PrashantBimalJha/studentlearning-app/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "Not found", err)
	case errors.Is(err, models.ErrValidation):
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, models.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusForbidden, "Not allowed", err)
	case errors.Is(err, models.ErrAlreadyCompleted):
		utils.ErrorResponse(c, http.StatusConflict, "Assignment already completed", err)
	case errors.Is(err, models.ErrReportResolved):
		utils.ErrorResponse(c, http.StatusConflict, "Report already resolved", err)
	case errors.Is(err, models.ErrGenerationFailed):
		utils.ErrorResponse(c, http.StatusBadGateway, "Question generation failed", err)
	case errors.Is(err, oracle.ErrTimeout), errors.Is(err, oracle.ErrUnavailable):
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Grading oracle unavailable", err)
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal error", err)
	}
}
