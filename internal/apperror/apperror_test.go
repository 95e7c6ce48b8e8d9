package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{"NotFound wraps ErrNotFound", NotFound("user", 1), ErrNotFound, true},
		{"ValidationFailed wraps ErrValidation", ValidationFailed("name", "name is required"), ErrValidation, true},
		{"Conflict wraps ErrConflict", Conflict("duplicate email"), ErrConflict, true},
		{"Unauthorized wraps ErrUnauthorized", Unauthorized("missing api key"), ErrUnauthorized, true},
		{"AlreadyExists wraps ErrAlreadyExists", AlreadyExists("user", "email"), ErrAlreadyExists, true},
		{"Internal wraps ErrInternal", Internal("boom", errors.New("disk on fire")), ErrInternal, true},
		{"Internal without cause wraps ErrInternal", Internal("boom", nil), ErrInternal, true},
		{"NotFound does not match ErrValidation", NotFound("user", 1), ErrValidation, false},
		{"Conflict does not match ErrNotFound", Conflict("x"), ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestErrorsIsThroughWrapping(t *testing.T) {
	// errors.Is must keep matching after fmt.Errorf %w wrapping at layer
	// boundaries.
	err := fmt.Errorf("updating user: %w", NotFound("user", 42))
	if !errors.Is(err, ErrNotFound) {
		t.Error("wrapped NotFound no longer matches ErrNotFound")
	}
}

func TestInternalPreservesCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := Internal("error listing users", cause)
	if !errors.Is(err, cause) {
		t.Error("Internal() dropped the cause from the error chain")
	}
}

func TestMessage(t *testing.T) {
	err := NotFound("job", 7)
	if err.Error() != "job not found with id 7" {
		t.Errorf("Error() = %q", err.Error())
	}
}
