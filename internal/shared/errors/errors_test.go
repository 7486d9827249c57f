package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorIsSurvivesDetailsAndWrapping(t *testing.T) {
	sentinel := NewNotFoundError("Already registered")
	wrapped := fmt.Errorf("purchase: %w", sentinel.WithDetails("bob@good.domain"))

	assert.True(t, stderrors.Is(wrapped, sentinel))
	assert.False(t, stderrors.Is(wrapped, NewNotFoundError("Referral code not found")))

	appErr := GetAppError(wrapped)
	if assert.NotNil(t, appErr) {
		assert.Equal(t, http.StatusNotFound, appErr.Code)
		assert.Equal(t, "bob@good.domain", appErr.Details)
	}
	assert.Empty(t, sentinel.Details)
}

func TestConstructorsCarryStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		code int
	}{
		{NewValidationError("x"), http.StatusBadRequest},
		{NewBadRequestError("x"), http.StatusBadRequest},
		{NewUnauthorizedError("x"), http.StatusUnauthorized},
		{NewForbiddenError("x"), http.StatusForbidden},
		{NewNotFoundError("x"), http.StatusNotFound},
		{NewConflictError("x"), http.StatusConflict},
		{NewRateLimitedError("x"), http.StatusTooManyRequests},
		{NewInternalError("x"), http.StatusInternalServerError},
		{NewUpstreamError("x"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Type), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql", stderrors.New("Error 1062: Duplicate entry 'a' for key 'idx'"), true},
		{"postgres", stderrors.New(`ERROR: duplicate key value violates unique constraint "idx"`), true},
		{"sqlite", stderrors.New("UNIQUE constraint failed: accounts.domain"), true},
		{"other", stderrors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateError(tt.err))
		})
	}
}
