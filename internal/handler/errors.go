package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xperienceoutdoors/Resav2/internal/domain"
	"github.com/xperienceoutdoors/Resav2/pkg/response"
)

// handleError maps domain errors to HTTP responses. An opening period
// overlap carries the conflicting period id in the error details so the
// client can point at the offender.
func handleError(c *gin.Context, err error) {
	var overlap *domain.PeriodOverlapError
	switch {
	case errors.As(err, &overlap):
		response.Error(c, http.StatusConflict, "PERIOD_OVERLAP", err.Error(), overlap.ConflictingID)
	case domain.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case domain.IsValidationError(err):
		response.BadRequest(c, err.Error())
	case domain.IsConflictError(err):
		response.Conflict(c, err.Error(), "")
	case domain.IsAuthError(err):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
