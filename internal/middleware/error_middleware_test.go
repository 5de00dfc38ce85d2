package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Sujith8257/hostel-ms-sub000/internal/app/models/dto"
	"github.com/Sujith8257/hostel-ms-sub000/internal/pkg/apperrors"
)

func performErrorHandling(t *testing.T, err error) (int, dto.APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("POST", "/rooms/allotments", nil)

	HandleAPIError(c, err)

	var body dto.APIResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return recorder.Code, body
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    dto.ErrorCode
		wantMessage string
	}{
		{"room full", apperrors.ErrRoomFull, http.StatusBadRequest, dto.ErrorCodeBusinessRule, "Room is at full capacity"},
		{"room maintenance", apperrors.ErrRoomUnderMaintenance, http.StatusBadRequest, dto.ErrorCodeBusinessRule, "Room is under maintenance"},
		{"duplicate allotment", apperrors.ErrDuplicateAllotment, http.StatusBadRequest, dto.ErrorCodeBusinessRule, "Student already has an active room allotment"},
		{"already waiting", apperrors.ErrAlreadyOnWaitingList, http.StatusBadRequest, dto.ErrorCodeBusinessRule, "Student is already on the waiting list"},
		{"empty waiting list", apperrors.ErrWaitingListEmpty, http.StatusBadRequest, dto.ErrorCodeBusinessRule, "Waiting list is empty"},
		{"bad request with message", apperrors.NewBadRequestError("Invalid building ID"), http.StatusBadRequest, dto.ErrorCodeValidation, "Invalid building ID"},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Invalid email or password"},
		{"disabled account", apperrors.ErrAccountDisabled, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Account is disabled"},
		{"revoked token", apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Invalid token"},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
		{"allotment missing", apperrors.ErrAllotmentNotFound, http.StatusNotFound, dto.ErrorCodeNotFound, "Active allotment not found"},
		{"student missing", apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeNotFound, "Student not found"},
		{"room missing", apperrors.ErrRoomNotFound, http.StatusNotFound, dto.ErrorCodeNotFound, "Room not found"},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeConflict, "Email already exists"},
		{"duplicate register number", apperrors.ErrRegisterNumberAlreadyExists, http.StatusConflict, dto.ErrorCodeConflict, "Register number already exists"},
		{"duplicate room number", apperrors.ErrRoomNumberExists, http.StatusConflict, dto.ErrorCodeConflict, "Room number already exists in this building"},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrorCodeInternalError, "Internal server error"},
		{"occupancy counter breach", apperrors.ErrRoomNotOccupied, http.StatusInternalServerError, dto.ErrorCodeInternalError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := performErrorHandling(t, tt.err)

			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body.Success {
				t.Error("error response has success = true")
			}
			if body.Error == nil {
				t.Fatal("error response has no error detail")
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", body.Error.Code, tt.wantCode)
			}
			if body.Error.Message != tt.wantMessage {
				t.Errorf("error message = %q, want %q", body.Error.Message, tt.wantMessage)
			}
		})
	}
}

func TestHandleAPIErrorWrappedErrors(t *testing.T) {
	// Errors wrapped with context must still map to their status
	wrapped := errors.Join(errors.New("saving allotment"), apperrors.ErrRoomFull)
	status, _ := performErrorHandling(t, wrapped)
	if status != http.StatusBadRequest {
		t.Errorf("wrapped ErrRoomFull status = %d, want 400", status)
	}
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("POST", "/rooms", nil)

	HandleValidationError(c, errors.New("Key: 'CreateRoomRequest.Capacity' Error:Field validation"))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}

	var body dto.APIResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Error == nil || body.Error.Code != dto.ErrorCodeValidation {
		t.Errorf("error detail = %+v, want validation code", body.Error)
	}
}
