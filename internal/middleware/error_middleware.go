package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Business rule
// violations surface as 400 with a stable message, conflicts as 409,
// anything unrecognized as 500.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 400 business rules
	case errors.Is(err, apperrors.ErrRoomFull):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeBusinessRule, "Room is at full capacity")
	case errors.Is(err, apperrors.ErrRoomUnderMaintenance):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeBusinessRule, "Room is under maintenance")
	case errors.Is(err, apperrors.ErrDuplicateAllotment):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeBusinessRule, "Student already has an active room allotment")
	case errors.Is(err, apperrors.ErrAlreadyOnWaitingList):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeBusinessRule, "Student is already on the waiting list")
	case errors.Is(err, apperrors.ErrWaitingListEmpty):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeBusinessRule, "Waiting list is empty")
	case errors.Is(err, apperrors.ErrBadRequest), errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidation, messageOrDefault(err, "Invalid request"))

	// 401 authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Invalid email or password")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound),
		errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrInvalidFormat):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Invalid token")

	// 403 authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, messageOrDefault(err, "Permission denied"))

	// 404 missing resources
	case errors.Is(err, apperrors.ErrAllotmentNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Active allotment not found")
	case errors.Is(err, apperrors.ErrStudentNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrRoomNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Room not found")
	case errors.Is(err, apperrors.ErrBuildingNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Building not found")
	case errors.Is(err, apperrors.ErrProfileNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeNotFound, "User not found")
	case errors.Is(err, apperrors.ErrWaitingEntryNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Waiting list entry not found")
	case errors.Is(err, apperrors.ErrMaintenanceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeNotFound, "Maintenance request not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeNotFound, messageOrDefault(err, "Resource not found"))

	// 409 duplicates
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Email already exists")
	case errors.Is(err, apperrors.ErrRegisterNumberAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Register number already exists")
	case errors.Is(err, apperrors.ErrRoomNumberExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Room number already exists in this building")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, messageOrDefault(err, "Conflict"))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalError, "Internal server error")
	}
}

// HandleValidationError responds to request binding failures
func HandleValidationError(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, dto.ErrorCodeValidation, "Invalid request: "+err.Error())
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(code, message, nil))
}

// messageOrDefault prefers the wrapped CustomError message when present
func messageOrDefault(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
