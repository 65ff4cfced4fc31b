package testutil

import (
	"errors"
	"testing"

	apperrors "cashflow/internal/errors"
)

func requireAppError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatal("expected an AppError, got nil")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr
}

// AssertAppError checks that err is an *AppError with the expected code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	appErr := requireAppError(t, err)
	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertSameAppError checks that two failures are reported identically to
// the caller: same code, message and HTTP status. Used to prove that rows of
// another user look exactly like missing rows.
func AssertSameAppError(t *testing.T, want, got error) {
	t.Helper()

	w, g := requireAppError(t, want), requireAppError(t, got)
	if w.Code != g.Code || w.Message != g.Message || w.StatusCode != g.StatusCode {
		t.Errorf("expected %s/%q/%d, got %s/%q/%d", w.Code, w.Message, w.StatusCode, g.Code, g.Message, g.StatusCode)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
