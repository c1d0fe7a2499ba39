package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allinhq/allin-backend/internal/services"
	"github.com/allinhq/allin-backend/internal/types"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondDomainError maps the service-level error taxonomy onto HTTP statuses:
// missing user 404, missing surveys 422 (caller-fixable precondition),
// upstream completion failure 503, validation 400, everything else 500.
func RespondDomainError(c *gin.Context, err error) {
	var upstream *services.UpstreamError
	var invalidCategory *types.InvalidCategoryError
	var ratingRange *types.RatingRangeError

	switch {
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrTaskNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrIntakeProfileMissing), errors.Is(err, services.ErrDailyStateMissing):
		RespondError(c, http.StatusUnprocessableEntity, "precondition_missing", err)
	case errors.Is(err, services.ErrIntakeProfileExists):
		RespondError(c, http.StatusConflict, "already_exists", err)
	case errors.As(err, &upstream):
		RespondError(c, http.StatusServiceUnavailable, "upstream_error", err)
	case errors.As(err, &invalidCategory), errors.As(err, &ratingRange):
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
