package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect/internal/app/models/dto"
	"github.com/educonnect/educonnect/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses. Controllers
// call it for any error coming out of the service layer.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrSessionNotFound,
		apperrors.ErrBookingNotFound,
		apperrors.ErrUserNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)))

	case errors.Is(err, apperrors.ErrSessionFull):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeSessionFull, "Session is full")))

	case errors.Is(err, apperrors.ErrAlreadyBooked):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeAlreadyBooked, "Session already booked")))

	case apperrors.Is(err, apperrors.ErrEmailAlreadyExists,
		apperrors.ErrUsernameExists,
		apperrors.ErrConflict):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message)))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, message)))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))

	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))

	case errors.Is(err, apperrors.ErrValidationFailed):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
		var customErr *apperrors.CustomError
		if errors.As(err, &customErr) && customErr.Details != nil {
			errorDetail = errorDetail.WithDetails(customErr.Details)
		}
		c.JSON(400, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)))

	default:
		c.JSON(500, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
