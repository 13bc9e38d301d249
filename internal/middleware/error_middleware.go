package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirkaya/staffdesk/internal/app/models/dto"
	"github.com/emirkaya/staffdesk/internal/pkg/apperrors"
	"github.com/emirkaya/staffdesk/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses in one place.
// Store failures become an opaque 500; internal detail is logged, not
// leaked.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEmployeeNotFound):
		c.JSON(404, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Employee not found"),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(400, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeDuplicateEmail, "Email already exists").WithField("email"),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		// Same message for unknown username and wrong password.
		c.JSON(400, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid login details"),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(400, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error()),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
			Timestamp: time.Now(),
		})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(500, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
			Timestamp: time.Now(),
		})
	}
}
