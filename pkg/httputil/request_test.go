package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathStringOrError(t *testing.T) {
	router := mux.NewRouter()
	var got string
	router.HandleFunc("/categories/{name}", func(w http.ResponseWriter, r *http.Request) {
		name, ok := ParsePathStringOrError(w, r, "name")
		if ok {
			got = name
		}
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/categories/news", nil))
	assert.Equal(t, "news", got)

	w := httptest.NewRecorder()
	_, ok := ParsePathStringOrError(w, httptest.NewRequest(http.MethodGet, "/", nil), "name")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseQueryPositiveInt(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		expected    *int
		expectError bool
	}{
		{name: "absent", query: "", expected: nil},
		{name: "valid", query: "page=3", expected: intPtr(3)},
		{name: "one", query: "page=1", expected: intPtr(1)},
		{name: "zero", query: "page=0", expectError: true},
		{name: "negative", query: "page=-2", expectError: true},
		{name: "not a number", query: "page=abc", expectError: true},
		{name: "float", query: "page=1.5", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			val, err := ParseQueryPositiveInt(req, "page")

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, val)
		})
	}
}

func TestParseQueryPositiveIntOrError(t *testing.T) {
	w := httptest.NewRecorder()
	_, ok := ParseQueryPositiveIntOrError(w, httptest.NewRequest(http.MethodGet, "/?size=0", nil), "size")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "size must be at least 1")
}

func TestParseQueryList(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?names=a,b,,%20c&names=d", nil)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ParseQueryList(req, "names"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ParseQueryList(req, "names"))
}

func TestParseQueryString(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?name=news", nil)
	assert.Equal(t, "news", ParseQueryString(req, "name", ""))
	assert.Equal(t, "fallback", ParseQueryString(req, "missing", "fallback"))
}

func intPtr(i int) *int { return &i }
