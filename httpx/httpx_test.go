package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/messagely-go/apperror"
)

type sample struct {
	Username  string `json:"username" validate:"required"`
	FirstName string `json:"first_name" validate:"required,max=5"`
}

func decode(t *testing.T, body string) error {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dst sample
	return DecodeAndValidate(httptest.NewRecorder(), r, &dst)
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		check   func(error) bool
		message string
	}{
		{name: "valid", body: `{"username":"alice","first_name":"Al"}`},
		{name: "empty body", body: ``, check: apperror.IsBadRequestError, message: "request body is required"},
		{name: "malformed", body: `{"username":`, check: apperror.IsBadRequestError, message: "invalid request body"},
		{name: "missing field", body: `{"first_name":"Al"}`, check: apperror.IsValidationError, message: "username is required"},
		{name: "too long", body: `{"username":"a","first_name":"Alexander"}`, check: apperror.IsValidationError, message: "first_name must be at most 5 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decode(t, tt.body)
			if tt.check == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.check(err))
			ae, _ := apperror.FromError(err)
			assert.Equal(t, tt.message, ae.Message)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, map[string]string{"token": "abc"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"token":"abc"}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), apperror.NewUnauthorizedError("Unauthorized", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"Unauthorized","status":401}}`, rec.Body.String())
	})

	t.Run("plain error hides cause", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var resp apperror.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 500, resp.Error.Status)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}
