package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/folio/pkg/extension"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	err := WriteJSON(w, http.StatusOK, map[string]string{"message": "success"})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"success"}`, w.Body.String())
}

func TestWriteErrorMessage_IncludesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	w.Header().Set(RequestIDHeader, "abc")

	WriteNotFoundError(w, "category not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "category not found", resp.Error)
	assert.Equal(t, "abc", resp.RequestID)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{extension.NotFound("Category", "x"), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", extension.ErrUnknownField), http.StatusBadRequest},
		{extension.AlreadyExists("Category", "x"), http.StatusConflict},
		{extension.Conflict("Category", "x", 1, 2), http.StatusConflict},
		{extension.ErrReadOnly, http.StatusMethodNotAllowed},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, StatusFor(tt.err), tt.err.Error())
	}
}

func TestWriteStoreError(t *testing.T) {
	t.Run("not found keeps message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteStoreError(w, httptest.NewRequest(http.MethodGet, "/", nil), extension.NotFound("Category", "news"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `Category \"news\"`)
	})

	t.Run("internal error hides cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteStoreError(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("password=hunter2"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "hunter2")
		assert.Contains(t, w.Body.String(), "internal server error")
	})
}
