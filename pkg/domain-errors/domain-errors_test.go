package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGateErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    Code
		display string
	}{
		{"free plan limit", New(CodePlanLimit, "Free plan limit reached. Upgrade to Pro for unlimited notes."), CodePlanLimit,
			"Free plan limit reached. Upgrade to Pro for unlimited notes."},
		{"member upgrading", New(CodeForbidden, "Only administrators can upgrade the tenant plan."), CodeForbidden,
			"Only administrators can upgrade the tenant plan."},
		{"blank note", New(CodeValidation, "Please fill in both title and content"), CodeValidation,
			"Please fill in both title and content"},
		{"signed out without message", &Error{Code: CodeUnauthorized}, CodeUnauthorized, "unauthorized"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, HasCode(tt.err, tt.code))
			assert.Equal(t, tt.display, tt.err.Error())
			assert.ErrorIs(t, tt.err, &Error{Code: tt.code})
			assert.NotErrorIs(t, tt.err, &Error{Code: CodeInternal})
		})
	}
}

func TestWrapKeepsSessionCode(t *testing.T) {
	// A 401 classified by the HTTP layer stays unauthorized when a view
	// model wraps it with its own fallback text.
	expired := Wrap(errors.New("401 Token expired"), CodeUnauthorized, "session expired")
	shown := Wrap(expired, CodeInternal, "Failed to load notes")

	assert.True(t, HasCode(shown, CodeUnauthorized))
	assert.Equal(t, "Failed to load notes", shown.Error())

	var domainErr *Error
	require.ErrorAs(t, shown, &domainErr)
	assert.Equal(t, CodeUnauthorized, domainErr.Code)
	assert.ErrorIs(t, shown, expired)
}

func TestWrapClassifiesTransportFailures(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5000: connect: connection refused")
	err := Wrap(cause, CodeInternal, "Failed to upgrade tenant")

	assert.True(t, HasCode(err, CodeInternal))
	assert.Same(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestCodeSurvivesFmtWrapping(t *testing.T) {
	gate := New(CodePlanLimit, "Free plan limit reached. Upgrade to Pro for unlimited notes.")
	err := fmt.Errorf("notes create: %w", gate)

	assert.True(t, HasCode(err, CodePlanLimit))
	assert.ErrorIs(t, err, &Error{Code: CodePlanLimit})
	assert.False(t, HasCode(err, CodeForbidden))
}

func TestHasCodeOnPlainErrors(t *testing.T) {
	assert.False(t, HasCode(nil, CodeNotFound))
	assert.False(t, HasCode(errors.New("note not found"), CodeNotFound))
	assert.False(t, (&Error{Code: CodeNotFound}).Is(errors.New("not_found")))
}
