package middleware

import (
	"net/http"
	"strconv"

	"github.com/platinummonkey/folio/pkg/httputil"
	"github.com/platinummonkey/folio/pkg/observability"
)

// RateLimitRecorder counts rejected requests
type RateLimitRecorder interface {
	RateLimited(r *http.Request)
}

// RateLimitMiddleware provides HTTP rate limiting keyed by client IP
type RateLimitMiddleware struct {
	limiter  Limiter
	fallback Limiter
	recorder RateLimitRecorder
}

// NewRateLimitMiddleware limits with limiter. When limiter fails, fallback decides;
// with no fallback the request is let through.
func NewRateLimitMiddleware(limiter, fallback Limiter, recorder RateLimitRecorder) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter:  limiter,
		fallback: fallback,
		recorder: recorder,
	}
}

// Handler wraps an HTTP handler with rate limiting
func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := "ip:" + ClientIP(r)

		d, err := m.limiter.Allow(ctx, key)
		if err != nil {
			observability.FromContext(ctx).WithError(err).Warn("Rate limiter unavailable")
			if m.fallback == nil {
				next.ServeHTTP(w, r)
				return
			}
			// the in-process limiter does not fail
			d, _ = m.fallback.Allow(ctx, key)
		}

		setRateLimitHeaders(w, d)
		if !d.Allowed {
			if m.recorder != nil {
				m.recorder.RateLimited(r)
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(d.Reset.Seconds()+0.5)))
			httputil.WriteErrorMessage(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
