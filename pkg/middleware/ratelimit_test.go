package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	config := RateLimitConfig{
		RequestsPerWindow: 10,
		WindowDuration:    100 * time.Millisecond,
		BurstSize:         2,
	}
	limiter := NewRateLimiter(config)
	ctx := context.Background()

	allowed := 0
	for i := 0; i < config.Capacity()+5; i++ {
		d, err := limiter.Allow(ctx, "client")
		require.NoError(t, err)
		if d.Allowed {
			allowed++
		}
	}
	assert.Equal(t, config.Capacity(), allowed)
	assert.Equal(t, 0, limiter.Remaining("client"))

	// other clients have their own bucket
	d, _ := limiter.Allow(ctx, "other")
	assert.True(t, d.Allowed)
	assert.Equal(t, config.Capacity()-1, d.Remaining)

	time.Sleep(150 * time.Millisecond)
	d, _ = limiter.Allow(ctx, "client")
	assert.True(t, d.Allowed, "tokens refill over the window")
}

func TestRateLimiter_Defaults(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{})
	assert.Equal(t, DefaultRateLimitConfig(), limiter.config)
	assert.Equal(t, 110, limiter.Remaining("unseen"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{RequestsPerWindow: 1, WindowDuration: 10 * time.Millisecond})
	_, _ = limiter.Allow(context.Background(), "idle")

	time.Sleep(30 * time.Millisecond)
	limiter.Cleanup()

	limiter.mu.RLock()
	defer limiter.mu.RUnlock()
	assert.Empty(t, limiter.buckets)
}

func TestRateLimiter_StartCleanup(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{RequestsPerWindow: 1, WindowDuration: 10 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, _ = limiter.Allow(ctx, "idle")
	limiter.StartCleanup(ctx)

	assert.Eventually(t, func() bool {
		limiter.mu.RLock()
		defer limiter.mu.RUnlock()
		return len(limiter.buckets) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestRateLimiter_Concurrency(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{RequestsPerWindow: 50, WindowDuration: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d, _ := limiter.Allow(context.Background(), "shared"); d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote address", remote: "192.168.1.1:12345", want: "192.168.1.1"},
		{name: "remote without port", remote: "192.168.1.1", want: "192.168.1.1"},
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, remote: "127.0.0.1:1", want: "10.0.0.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "10.0.0.9"}, remote: "127.0.0.1:1", want: "10.0.0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}

func newRedisLimiter(t *testing.T, config RateLimitConfig) (*DistributedRateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewDistributedRateLimiter(client, config, ""), mr
}

func TestDistributedRateLimiter_Allow(t *testing.T) {
	config := RateLimitConfig{RequestsPerWindow: 3, WindowDuration: time.Minute, BurstSize: 1}
	limiter, mr := newRedisLimiter(t, config)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		d, err := limiter.Allow(ctx, "ip:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "request %d", i+1)
		assert.Equal(t, 4, d.Limit)
		assert.Equal(t, 3-i, d.Remaining)
	}

	d, err := limiter.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	ttl, err := limiter.TTL(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)
	assert.True(t, mr.Exists("folio:ratelimit:ip:1.2.3.4"))

	mr.FastForward(time.Minute)
	d, err = limiter.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, d.Allowed, "a new window starts after expiry")
}

func TestDistributedRateLimiter_Reset(t *testing.T) {
	limiter, _ := newRedisLimiter(t, RateLimitConfig{RequestsPerWindow: 1, WindowDuration: time.Minute})
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "k")
	d, _ := limiter.Allow(ctx, "k")
	require.False(t, d.Allowed)

	require.NoError(t, limiter.Reset(ctx, "k"))
	d, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestDistributedRateLimiter_RedisDown(t *testing.T) {
	limiter, mr := newRedisLimiter(t, RateLimitConfig{RequestsPerWindow: 1, WindowDuration: time.Minute})
	mr.Close()

	d, err := limiter.Allow(context.Background(), "k")
	assert.Error(t, err)
	assert.True(t, d.Allowed)
}

type countingRecorder struct {
	count int
}

func (c *countingRecorder) RateLimited(*http.Request) { c.count++ }

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (Decision, error) {
	return Decision{Allowed: true}, errors.New("connection refused")
}

func serve(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware_Handler(t *testing.T) {
	recorder := &countingRecorder{}
	limiter := NewRateLimiter(RateLimitConfig{RequestsPerWindow: 2, WindowDuration: time.Minute, BurstSize: 1})
	handler := NewRateLimitMiddleware(limiter, nil, recorder).Handler(okHandler())

	for i := 0; i < 3; i++ {
		rec := serve(handler, "192.168.1.1:12345")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
	}

	rec := serve(handler, "192.168.1.1:12345")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")
	assert.Equal(t, 1, recorder.count)

	rec = serve(handler, "192.168.1.2:12345")
	assert.Equal(t, http.StatusOK, rec.Code, "clients are limited independently")
}

func TestRateLimitMiddleware_Fallback(t *testing.T) {
	local := NewRateLimiter(RateLimitConfig{RequestsPerWindow: 1, WindowDuration: time.Minute})
	handler := NewRateLimitMiddleware(failingLimiter{}, local, nil).Handler(okHandler())

	assert.Equal(t, http.StatusOK, serve(handler, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(handler, "10.0.0.1:1").Code)
}

func TestRateLimitMiddleware_FailOpen(t *testing.T) {
	handler := NewRateLimitMiddleware(failingLimiter{}, nil, nil).Handler(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(handler, "10.0.0.1:1").Code)
	}
}
