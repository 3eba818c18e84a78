package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_UnwrapKeepsCause(t *testing.T) {
	cause := stderrors.New("no default SLA policy")
	err := NewConfigurationError("no default SLA policy configured").WithCause(cause)

	wrapped := fmt.Errorf("calculate sla: %w", err)

	assert.True(t, stderrors.Is(wrapped, cause))
	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeConfiguration, appErr.Type)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
}

func TestAppError_Retryable(t *testing.T) {
	assert.True(t, NewStaleError("report changed").Retryable())
	assert.True(t, NewTimeoutError("report store timed out").Retryable())
	assert.False(t, NewConfigurationError("no escalation target").Retryable())
	assert.False(t, NewValidationError("bad input").Retryable())
}

func TestAppError_ErrorString(t *testing.T) {
	assert.Equal(t, "not_found: report not found", NewNotFoundError("report not found").Error())
	assert.Equal(t, "validation_error: invalid (priority)", NewValidationError("invalid", "priority").Error())
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql", stderrors.New("Error 1062: Duplicate entry 'x' for key 'idx'"), true},
		{"sqlite", stderrors.New("UNIQUE constraint failed: case_escalations.dedupe_key"), true},
		{"other", stderrors.New("connection refused"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateError(tc.err))
		})
	}
}
