package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/folio/pkg/content"
	"github.com/platinummonkey/folio/pkg/extension"
	"github.com/platinummonkey/folio/pkg/extension/memory"
	"github.com/platinummonkey/folio/pkg/finder"
	"github.com/platinummonkey/folio/pkg/middleware"
	"github.com/platinummonkey/folio/pkg/observability"
	"github.com/platinummonkey/folio/pkg/plugins"
)

func intPtr(i int) *int { return &i }

func category(name string, priority, posts int, children ...string) *content.Category {
	c := content.NewCategory(name, content.CategorySpec{
		DisplayName: name,
		Slug:        name,
		Priority:    intPtr(priority),
		Children:    children,
	})
	c.Metadata.CreationTimestamp = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Status.VisiblePostCount = intPtr(posts)
	return c
}

type testServer struct {
	server   *Server
	registry *prometheus.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	categories := memory.NewStore(content.CategoryType)
	hidden := category("drafts", 99, 0)
	hidden.Spec.HideFromList = true
	require.NoError(t, categories.Replace([]*content.Category{
		category("news", 2, 1, "local", "world"),
		category("local", 1, 2),
		category("world", 0, 4),
		category("tech", 1, 8),
		hidden,
	}))

	pluginStore := memory.NewStore(plugins.PluginType)
	comments := plugins.NewPlugin("comments", *plugins.NewPluginSpec("1.4.0"))
	comments.Spec.SetEnabled(true)
	require.NoError(t, pluginStore.Replace([]*plugins.Plugin{comments}))

	return newServerWith(t, categories, pluginStore)
}

func newServerWith(t *testing.T, categories extension.Client[*content.Category], pluginStore extension.Client[*plugins.Plugin]) *testServer {
	t.Helper()
	return newServerWithLimit(t, categories, pluginStore, middleware.RateLimitConfig{})
}

func newServerWithLimit(t *testing.T, categories extension.Client[*content.Category], pluginStore extension.Client[*plugins.Plugin], limit middleware.RateLimitConfig) *testServer {
	t.Helper()
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	logger := observability.NewLogger("error", &bytes.Buffer{})

	categoryFinder := finder.NewCategoryFinder(categories, content.NewCategoryService(categories, logger),
		finder.WithTreeRecorder(metrics), finder.WithLogger(logger))

	opts := Options{
		Logger:   logger,
		Metrics:  metrics,
		Registry: registry,
		Health:   observability.NewHealthChecker(nil, nil, "test"),
	}
	if limit.Enabled() {
		opts.RateLimit = middleware.NewRateLimitMiddleware(middleware.NewRateLimiter(limit), nil, metrics)
	}

	server := NewServer(categoryFinder, finder.NewPluginFinder(pluginStore), opts)
	return &testServer{server: server, registry: registry}
}

func (ts *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type listResponse struct {
	Page    int                 `json:"page"`
	Size    int                 `json:"size"`
	Total   int64               `json:"total"`
	Items   []finder.CategoryVo `json:"items"`
	HasNext bool                `json:"hasNext"`
}

func voNames(vos []finder.CategoryVo) []string {
	out := make([]string, len(vos))
	for i, vo := range vos {
		out[i] = vo.Metadata.Name
	}
	return out
}

func TestListCategories(t *testing.T) {
	ts := newTestServer(t)

	t.Run("defaults", func(t *testing.T) {
		rec := ts.get(t, "/api/v1/categories")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[listResponse](t, rec)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 10, resp.Size)
		assert.Equal(t, int64(4), resp.Total)
		assert.Equal(t, []string{"news", "tech", "local", "world"}, voNames(resp.Items))
	})

	t.Run("paged", func(t *testing.T) {
		resp := decode[listResponse](t, ts.get(t, "/api/v1/categories?page=2&size=3"))
		assert.Equal(t, []string{"world"}, voNames(resp.Items))
		assert.False(t, resp.HasNext)
	})

	t.Run("page far past the end", func(t *testing.T) {
		rec := ts.get(t, "/api/v1/categories?page=9223372036854775807&size=2")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[listResponse](t, rec)
		assert.Empty(t, resp.Items)
		assert.Equal(t, int64(4), resp.Total)
	})

	for _, query := range []string{"page=0", "size=-1", "page=abc", "size=1.5"} {
		t.Run("invalid "+query, func(t *testing.T) {
			rec := ts.get(t, "/api/v1/categories?"+query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListAllCategories(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get(t, "/api/v1/categories/-/all")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"news", "tech", "local", "world"}, voNames(decode[[]finder.CategoryVo](t, rec)))
}

func TestCategoryTree(t *testing.T) {
	ts := newTestServer(t)

	t.Run("forest", func(t *testing.T) {
		tree := decode[[]*finder.CategoryTreeVo](t, ts.get(t, "/api/v1/categories/-/tree"))
		require.Len(t, tree, 2)
		assert.Equal(t, "news", tree[0].Metadata.Name)
		assert.Equal(t, 7, tree[0].PostCount)
		require.Len(t, tree[0].Children, 2)
		assert.Equal(t, "local", tree[0].Children[0].Metadata.Name)
		assert.Equal(t, "news", tree[0].Children[0].ParentName)
		assert.Equal(t, "tech", tree[1].Metadata.Name)
	})

	t.Run("subtree", func(t *testing.T) {
		tree := decode[[]*finder.CategoryTreeVo](t, ts.get(t, "/api/v1/categories/-/tree?name=world"))
		require.Len(t, tree, 1)
		assert.Equal(t, "world", tree[0].Metadata.Name)
	})

	t.Run("unknown root", func(t *testing.T) {
		rec := ts.get(t, "/api/v1/categories/-/tree?name=missing")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestBatchCategories(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get(t, "/api/v1/categories/-/batch?names=world,missing,news")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"world", "news"}, voNames(decode[[]finder.CategoryVo](t, rec)))

	rec = ts.get(t, "/api/v1/categories/-/batch")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetCategory(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get(t, "/api/v1/categories/tech")
	require.Equal(t, http.StatusOK, rec.Code)
	vo := decode[finder.CategoryVo](t, rec)
	assert.Equal(t, "tech", vo.Metadata.Name)
	assert.Equal(t, 8, vo.PostCount)

	rec = ts.get(t, "/api/v1/categories/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestGetParentCategory(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get(t, "/api/v1/categories/local/parent")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "news", decode[finder.CategoryVo](t, rec).Metadata.Name)

	rec = ts.get(t, "/api/v1/categories/news/parent")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListChildCategories(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get(t, "/api/v1/categories/news/children")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"news", "local", "world"}, voNames(decode[[]finder.CategoryVo](t, rec)))

	rec = ts.get(t, "/api/v1/categories/missing/children")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestPluginAvailable(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path      string
		status    int
		available bool
	}{
		{path: "/api/v1/plugins/comments/available", status: http.StatusOK, available: true},
		{path: "/api/v1/plugins/comments/available?requires=%3E%3D1.2.0", status: http.StatusOK, available: true},
		{path: "/api/v1/plugins/comments/available?requires=%3E%3D2.0.0", status: http.StatusOK, available: false},
		{path: "/api/v1/plugins/ghost/available", status: http.StatusOK, available: false},
		{path: "/api/v1/plugins/comments/available?requires=abc", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := ts.get(t, tt.path)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.available, decode[AvailabilityResponse](t, rec).Available)
			}
		})
	}
}

type failingStore struct {
	extension.Client[*content.Category]
}

func (failingStore) Fetch(context.Context, string) (*content.Category, error) {
	return nil, errors.New("db: connection reset")
}

func (failingStore) ListAll(context.Context, extension.ListOptions, extension.Sort) ([]*content.Category, error) {
	return nil, errors.New("db: connection reset")
}

func (failingStore) ListBy(context.Context, extension.ListOptions, extension.PageRequest) (*extension.ListResult[*content.Category], error) {
	return nil, errors.New("db: connection reset")
}

func TestStoreFailuresAnswer500(t *testing.T) {
	ts := newServerWith(t, failingStore{}, memory.NewStore(plugins.PluginType))

	for _, path := range []string{
		"/api/v1/categories",
		"/api/v1/categories/-/all",
		"/api/v1/categories/-/tree",
		"/api/v1/categories/-/batch?names=a",
		"/api/v1/categories/news",
		"/api/v1/categories/news/parent",
		"/api/v1/categories/news/children",
	} {
		rec := ts.get(t, path)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), "connection reset", path)
	}
}

func TestOperationalRoutes(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusOK, ts.get(t, "/healthz").Code)
	assert.Equal(t, http.StatusOK, ts.get(t, "/readyz").Code)

	ts.get(t, "/api/v1/categories/tech")
	rec := ts.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `folio_http_requests_total{method="GET",route="/api/v1/categories/{name}",status="200"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, ts.get(t, "/nonexistent").Code)
}

func TestRateLimitedRoutes(t *testing.T) {
	categories := memory.NewStore(content.CategoryType)
	require.NoError(t, categories.Replace([]*content.Category{category("tech", 1, 8)}))
	ts := newServerWithLimit(t, categories, memory.NewStore(plugins.PluginType),
		middleware.RateLimitConfig{RequestsPerWindow: 2, WindowDuration: time.Minute})

	assert.Equal(t, http.StatusOK, ts.get(t, "/api/v1/categories/tech").Code)
	assert.Equal(t, http.StatusOK, ts.get(t, "/api/v1/categories/tech").Code)

	rec := ts.get(t, "/api/v1/categories/tech")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// operational routes are not limited
	assert.Equal(t, http.StatusOK, ts.get(t, "/healthz").Code)

	rec = ts.get(t, "/metrics")
	assert.Contains(t, rec.Body.String(), `folio_rate_limited_requests_total{route="/api/v1/categories/{name}"} 1`)
}
