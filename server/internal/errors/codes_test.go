package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	err := InvalidField("age", "Age must be between 0-18")
	assert.Equal(t, "[INVALID_ARGUMENT] Age must be between 0-18", err.Error())
	assert.Equal(t, "age", err.Context["field"])
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())

	wrapped := fmt.Errorf("add child: %w", err)
	assert.True(t, IsCode(wrapped, ErrCodeInvalidArgument))
	assert.Equal(t, ErrCodeInvalidArgument, GetCodeFromError(wrapped, ErrCodeInternal))
	assert.Equal(t, ErrCodeInternal, GetCodeFromError(fmt.Errorf("plain"), ErrCodeInternal))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{NotFound("x"), http.StatusNotFound},
		{FailedPrecondition("x"), http.StatusConflict},
		{Busy("x"), http.StatusConflict},
		{RateLimitExceeded("x"), http.StatusTooManyRequests},
		{ServiceUnavailable("x", nil), http.StatusServiceUnavailable},
		{Wrap(fmt.Errorf("boom"), ErrCodeInternal, "x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
		})
	}
}
