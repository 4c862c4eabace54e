package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/folio/pkg/config"
	"github.com/platinummonkey/folio/pkg/content"
	"github.com/platinummonkey/folio/pkg/extension"
	"github.com/platinummonkey/folio/pkg/finder"
	"github.com/platinummonkey/folio/pkg/middleware"
)

const categoriesYAML = `
apiVersion: content.folio.dev/v1alpha1
kind: Category
metadata:
  name: news
spec:
  displayName: News
  slug: news
  priority: 2
  children: [local]
status:
  visiblePostCount: 1
---
apiVersion: content.folio.dev/v1alpha1
kind: Category
metadata:
  name: local
spec:
  displayName: Local
  slug: local
status:
  visiblePostCount: 3
---
apiVersion: content.folio.dev/v1alpha1
kind: Category
metadata:
  name: tech
spec:
  displayName: Tech
  slug: tech
  priority: 1
`

const pluginYAML = `apiVersion: plugin.folio.dev/v1alpha1
kind: Plugin
metadata:
  name: comments
spec:
  version: 1.0.0
  requires: ">=2.0.0"
  enabled: true
`

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dataDir := t.TempDir()
	writeFile(t, filepath.Join(dataDir, "categories.yaml"), categoriesYAML)

	pluginDir := t.TempDir()
	writeFile(t, filepath.Join(pluginDir, "comments", "plugin.yaml"), pluginYAML)

	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0", ShutdownTimeout: time.Second},
		Store:  config.StoreConfig{Backend: config.BackendMemory, Dir: dataDir},
		Cache:  config.CacheConfig{LRUEnabled: true, LRUSize: 64, LRUTTL: time.Minute, RedisTTL: time.Minute},
		Plugins: config.PluginConfig{
			Dirs:           []string{pluginDir},
			RuntimeVersion: "2.20.0",
		},
		Observability:  config.ObservabilityConfig{LogLevel: "error", MetricsEnabled: true},
		WarmupSchedule: "@every 1h",
	}
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "categories.yaml"), categoriesYAML)

	t.Run("memory seeded from dir", func(t *testing.T) {
		b, err := OpenBackend(ctx, config.StoreConfig{Backend: config.BackendMemory, Dir: dir}, quietLogger())
		require.NoError(t, err)
		defer b.Close()

		all, err := b.Categories.ListAll(ctx, extension.ListOptions{}, nil)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		_, err = b.Writer()
		assert.NoError(t, err)
	})

	t.Run("file store is read-only", func(t *testing.T) {
		b, err := OpenBackend(ctx, config.StoreConfig{Backend: config.BackendFile, Dir: dir}, quietLogger())
		require.NoError(t, err)

		got, err := b.Categories.Fetch(ctx, "news")
		require.NoError(t, err)
		assert.Equal(t, []string{"local"}, got.Spec.Children)

		_, err = b.Writer()
		assert.ErrorIs(t, err, extension.ErrReadOnly)
	})

	t.Run("sqlite", func(t *testing.T) {
		b, err := OpenBackend(ctx, config.StoreConfig{
			Backend: config.BackendSQLite,
			DSN:     filepath.Join(t.TempDir(), "folio.db"),
		}, quietLogger())
		require.NoError(t, err)
		defer b.Close()
		require.NotNil(t, b.DB)

		w, err := b.Writer()
		require.NoError(t, err)
		require.NoError(t, w.Create(ctx, content.NewCategory("go", content.CategorySpec{DisplayName: "Go", Slug: "go"})))

		got, err := b.Categories.Fetch(ctx, "go")
		require.NoError(t, err)
		assert.Equal(t, "Go", got.Spec.DisplayName)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := OpenBackend(ctx, config.StoreConfig{Backend: "tape"}, quietLogger())
		assert.Error(t, err)
	})

	t.Run("missing seed dir", func(t *testing.T) {
		_, err := OpenBackend(ctx, config.StoreConfig{Backend: config.BackendMemory, Dir: filepath.Join(dir, "nope")}, quietLogger())
		assert.Error(t, err)
	})
}

func TestOpenRedis(t *testing.T) {
	ctx := context.Background()

	client, err := OpenRedis(ctx, config.CacheConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)

	mr := miniredis.RunT(t)
	client, err = OpenRedis(ctx, config.CacheConfig{RedisAddr: mr.Addr(), RedisPoolSize: 2})
	require.NoError(t, err)
	require.NotNil(t, client)
	client.Close()
}

func TestAppServesCategories(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t), quietLogger(), "test")
	require.NoError(t, err)
	defer a.Close(ctx)

	require.NoError(t, a.Warm(ctx))

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories/-/tree", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var tree []*finder.CategoryTreeVo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tree))
	require.Len(t, tree, 2)
	assert.Equal(t, "news", tree[0].Metadata.Name)
	assert.Equal(t, 4, tree[0].PostCount)
	assert.Equal(t, "tech", tree[1].Metadata.Name)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "folio_category_tree_nodes 3")
	assert.Contains(t, rec.Body.String(), `folio_store_operations_total{backend="memory",kind="Category",operation="list_all",status="success"}`)
}

func TestAppSharedCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.Cache.LRUEnabled = false
	cfg.Cache.RedisAddr = mr.Addr()

	a, err := New(ctx, cfg, quietLogger(), "test")
	require.NoError(t, err)
	defer a.Close(ctx)

	require.NotNil(t, a.redis)
	require.NoError(t, a.Warm(ctx))
	assert.NotEmpty(t, mr.Keys())
}

func TestAppSharedRateLimit(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.Cache.RedisAddr = mr.Addr()
	cfg.Server.RateLimit = middleware.RateLimitConfig{RequestsPerWindow: 1, WindowDuration: time.Minute}

	a, err := New(ctx, cfg, quietLogger(), "test")
	require.NoError(t, err)
	defer a.Close(ctx)

	get := func() int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/tech", nil)
		req.RemoteAddr = "10.1.1.1:4242"
		a.Handler().ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, get())
	assert.Equal(t, http.StatusTooManyRequests, get())
	assert.True(t, mr.Exists("folio:ratelimit:ip:10.1.1.1"))

	// the local limiter takes over while Redis is down and starts with a full bucket
	mr.Close()
	assert.Equal(t, http.StatusOK, get())
	assert.Equal(t, http.StatusTooManyRequests, get())
}

func TestAppRedisUnavailable(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t)
	cfg.Cache.RedisAddr = addr

	a, err := New(ctx, cfg, quietLogger(), "test")
	require.NoError(t, err)
	defer a.Close(ctx)
	assert.Nil(t, a.redis)
}

func TestAppPluginDiscovery(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t), quietLogger(), "test")
	require.NoError(t, err)
	defer a.Close(ctx)

	get := func() bool {
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/plugins/comments/available", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Available bool `json:"available"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp.Available
	}

	assert.False(t, get())
	require.NoError(t, a.DiscoverPlugins(ctx))
	assert.True(t, get())
}

func TestAppRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a, err := New(ctx, testConfig(t), quietLogger(), "test")
	require.NoError(t, err)
	assert.Equal(t, 2, a.scheduler.Jobs())

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewRejectsBadSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.WarmupSchedule = "not a schedule"

	_, err := New(context.Background(), cfg, quietLogger(), "test")
	assert.Error(t, err)
}

func TestNewReleasesResourcesOnFailure(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.Cache.RedisAddr = mr.Addr()
	cfg.WarmupSchedule = "not a schedule"

	_, err := New(context.Background(), cfg, quietLogger(), "test")
	require.Error(t, err)
	assert.Positive(t, mr.TotalConnectionCount())
	assert.Eventually(t, func() bool {
		return mr.CurrentConnectionCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
