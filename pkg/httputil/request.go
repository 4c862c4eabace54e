package httputil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// ParsePathString extracts a string path parameter
func ParsePathString(r *http.Request, key string) (string, error) {
	str := mux.Vars(r)[key]
	if str == "" {
		return "", fmt.Errorf("missing path parameter: %s", key)
	}
	return str, nil
}

// ParsePathStringOrError extracts a string path parameter and writes error on failure
func ParsePathStringOrError(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	val, err := ParsePathString(r, key)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return "", false
	}
	return val, true
}

// ParseQueryString extracts a string query parameter
func ParseQueryString(r *http.Request, key string, defaultVal string) string {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// ParseQueryList splits a comma-separated query parameter, dropping blanks
func ParseQueryList(r *http.Request, key string) []string {
	var out []string
	for _, value := range r.URL.Query()[key] {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ParseQueryPositiveInt parses an optional query parameter that must be an
// integer >= 1. It returns nil when the parameter is absent.
func ParseQueryPositiveInt(r *http.Request, key string) (*int, error) {
	str := r.URL.Query().Get(key)
	if str == "" {
		return nil, nil
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return nil, fmt.Errorf("invalid integer for query param %s: %s", key, str)
	}
	if val < 1 {
		return nil, fmt.Errorf("query param %s must be at least 1", key)
	}
	return &val, nil
}

// ParseQueryPositiveIntOrError is ParseQueryPositiveInt writing 400 on failure
func ParseQueryPositiveIntOrError(w http.ResponseWriter, r *http.Request, key string) (*int, bool) {
	val, err := ParseQueryPositiveInt(r, key)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return nil, false
	}
	return val, true
}
