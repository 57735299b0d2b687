package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/selim/alumnihub/internal/app/models/dto"
	"github.com/selim/alumnihub/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the standard error envelope.
// Unrecognized errors deliberately surface as a generic 500 so datastore
// details never leak to clients.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		message = customErr.Message
	}

	switch {
	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")))
	case errors.Is(err, apperrors.ErrTokenRevoked):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked")))
	case errors.Is(err, apperrors.ErrAccountInactive):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is inactive")))
	case errors.Is(err, apperrors.ErrCSRFMismatch):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeCSRFMismatch, "Invalid session token")))

	// Authorization
	case errors.Is(err, apperrors.ErrNotMatchParticipant):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, message)))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))

	// Not found
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrMatchNotFound),
		errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrJobNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)))

	// State conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message)))
	case errors.Is(err, apperrors.ErrRequestPending),
		errors.Is(err, apperrors.ErrAlreadyConnected),
		errors.Is(err, apperrors.ErrMatchNotPending),
		errors.Is(err, apperrors.ErrMatchNotActive),
		errors.Is(err, apperrors.ErrEventInPast),
		errors.Is(err, apperrors.ErrEventFull),
		errors.Is(err, apperrors.ErrAlreadyRegistered),
		errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeStateConflict, message)))

	// Validation
	case errors.Is(err, apperrors.ErrSelfRequest),
		errors.Is(err, apperrors.ErrInvalidEmail),
		errors.Is(err, apperrors.ErrInvalidPassword),
		errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)))

	default:
		c.JSON(500, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
