// Package middleware provides HTTP rate limiting for the query API.
//
// Two Limiter implementations are available. RateLimiter keeps a token bucket
// per client in process memory. DistributedRateLimiter keeps a fixed-window
// counter per client in Redis, shared by every instance.
//
//	local := middleware.NewRateLimiter(cfg)
//	shared := middleware.NewDistributedRateLimiter(redisClient, cfg, "")
//	router.Use(middleware.NewRateLimitMiddleware(shared, local, metrics).Handler)
//
// Clients are keyed by IP (first X-Forwarded-For hop, then X-Real-IP, then the
// remote address). Every response carries X-RateLimit-Limit,
// X-RateLimit-Remaining and X-RateLimit-Reset; rejected requests get a 429 with
// Retry-After.
//
// When Redis fails the fallback limiter decides, or the request is let through
// when there is none.
package middleware
