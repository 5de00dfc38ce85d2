package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCustomErrorUnwrap(t *testing.T) {
	err := NewBadRequestError("Capacity cannot be lower than current occupancy")

	if !errors.Is(err, ErrBadRequest) {
		t.Error("NewBadRequestError does not unwrap to ErrBadRequest")
	}
	if err.Error() != "Capacity cannot be lower than current occupancy" {
		t.Errorf("Error() = %q, want the custom message", err.Error())
	}

	var custom *CustomError
	if !errors.As(err, &custom) {
		t.Fatal("errors.As failed to extract CustomError")
	}
	if custom.Message != "Capacity cannot be lower than current occupancy" {
		t.Errorf("custom message = %q", custom.Message)
	}
}

func TestCustomErrorFallbackMessages(t *testing.T) {
	withWrapped := &CustomError{Err: ErrRoomFull}
	if withWrapped.Error() != ErrRoomFull.Error() {
		t.Errorf("Error() = %q, want wrapped error message", withWrapped.Error())
	}

	empty := &CustomError{}
	if empty.Error() != "unknown error" {
		t.Errorf("Error() = %q, want unknown error", empty.Error())
	}
}

func TestConstructorsWrapTheirSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NewResourceNotFoundError("Alert not found"), ErrResourceNotFound},
		{"conflict", NewConflictError("Duplicate name"), ErrConflict},
		{"forbidden", NewForbiddenError("No access to this building"), ErrPermissionDenied},
		{"bad request", NewBadRequestError("Invalid building ID"), ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("%v does not unwrap to %v", tt.err, tt.sentinel)
			}
		})
	}
}

func TestIsMatchesAnyListedError(t *testing.T) {
	wrapped := fmt.Errorf("saving allotment: %w", ErrDuplicateAllotment)

	if !Is(wrapped, ErrRoomFull, ErrDuplicateAllotment, ErrAllotmentNotFound) {
		t.Error("Is did not match a listed error")
	}
	if Is(wrapped, ErrRoomFull, ErrAllotmentNotFound) {
		t.Error("Is matched an error that is not in the chain")
	}
}

func TestWithCodeAndDetails(t *testing.T) {
	err := NewCustomError(ErrValidationFailed, "Invalid request").
		WithCode("VALIDATION_ERROR").
		WithDetails(map[string]interface{}{"field": "email"})

	if err.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q", err.Code)
	}
	if err.Details["field"] != "email" {
		t.Errorf("details = %v", err.Details)
	}
	if !errors.Is(err, ErrValidationFailed) {
		t.Error("chained constructors broke unwrapping")
	}
}
