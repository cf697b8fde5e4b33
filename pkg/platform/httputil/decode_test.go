package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "notely/pkg/domain-errors"
)

type noteRequest struct {
	Title string `json:"title"`
}

func (r *noteRequest) Normalize() {
	r.Title = string(bytes.TrimSpace([]byte(r.Title)))
}

func (r *noteRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

type inviteRequest struct {
	Email string `json:"email"`
}

func (r *inviteRequest) Validate() error {
	if r.Email == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestDecodeJSON(t *testing.T) {
	log := slog.New(slog.DiscardHandler)

	t.Run("decodes body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"title":"a"}`))
		w := httptest.NewRecorder()

		got, ok := DecodeJSON[noteRequest](w, r, log)
		require.True(t, ok)
		assert.Equal(t, "a", got.Title)
	})

	t.Run("invalid json is a 400 with message", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{nope`))
		w := httptest.NewRecorder()

		got, ok := DecodeJSON[noteRequest](w, r, log)
		assert.False(t, ok)
		assert.Nil(t, got)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, w).Message)
	})
}

func TestDecodeAndPrepare(t *testing.T) {
	log := slog.New(slog.DiscardHandler)

	t.Run("normalizes before validating", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"title":"  a  "}`))
		w := httptest.NewRecorder()

		got, ok := DecodeAndPrepare[noteRequest](w, r, log)
		require.True(t, ok)
		assert.Equal(t, "a", got.Title)
	})

	t.Run("plain validation error becomes validation_failed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"title":"   "}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[noteRequest](w, r, log)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "validation_failed", body.Error)
		assert.Equal(t, "title is required", body.Message)
	})

	t.Run("domain error code preserved", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()

		_, ok := DecodeAndPrepare[inviteRequest](w, r, log)
		assert.False(t, ok)
		assert.Equal(t, "invalid_input", decodeBody(t, w).Error)
	})
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{dErrors.New(dErrors.CodeNotFound, "Note not found"), http.StatusNotFound},
		{dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials"), http.StatusUnauthorized},
		{dErrors.New(dErrors.CodeForbidden, "Admin access required"), http.StatusForbidden},
		{dErrors.New(dErrors.CodePlanLimit, "Note limit reached"), http.StatusForbidden},
		{dErrors.New(dErrors.CodeConflict, "User already exists"), http.StatusConflict},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.NotContains(t, w.Body.String(), "database exploded")
		})
	}
}
