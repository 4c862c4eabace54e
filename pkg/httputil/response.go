// Package httputil provides HTTP handler utilities for consistent error handling,
// JSON encoding, and request parsing.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/platinummonkey/folio/pkg/extension"
	"github.com/platinummonkey/folio/pkg/observability"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful response (200 OK) with JSON data
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteErrorMessage writes a JSON error response with a custom message
func WriteErrorMessage(w http.ResponseWriter, status int, message string) {
	resp := ErrorResponse{Error: message}
	if id := w.Header().Get(RequestIDHeader); id != "" {
		resp.RequestID = id
	}
	_ = WriteJSON(w, status, resp)
}

// WriteError writes a JSON error response with the given status code
func WriteError(w http.ResponseWriter, status int, err error) {
	WriteErrorMessage(w, status, err.Error())
}

// WriteBadRequest writes a bad request error (400)
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusBadRequest, message)
}

// WriteNotFoundError writes a not found error response (404 Not Found)
func WriteNotFoundError(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusNotFound, message)
}

// WriteInternalError writes a generic 500. The cause is logged, not returned.
func WriteInternalError(w http.ResponseWriter, r *http.Request, err error) {
	observability.FromContext(r.Context()).WithError(err).Error("Request failed")
	WriteErrorMessage(w, http.StatusInternalServerError, "internal server error")
}

// StatusFor maps extension store errors to HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, extension.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, extension.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, extension.ErrAlreadyExists), errors.Is(err, extension.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, extension.ErrReadOnly):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// WriteStoreError writes the response matching a store error
func WriteStoreError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		WriteInternalError(w, r, err)
		return
	}
	WriteError(w, status, err)
}

// WriteJSONOrError writes JSON on success and logs encoding failures. The
// status line is already sent when encoding fails, so nothing else is written.
func WriteJSONOrError(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if err := WriteJSON(w, status, data); err != nil {
		observability.FromContext(r.Context()).WithError(err).Warn("Failed to encode response")
	}
}
