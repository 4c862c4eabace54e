// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Overview
//
// This package offers helper functions for JSON encoding, error responses,
// parameter parsing, and the middleware chain shared by every route.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteSuccess(w, vo)
//	httputil.WriteJSON(w, http.StatusOK, result)
//
// Error responses:
//
//	httputil.WriteBadRequest(w, "Invalid input")
//	httputil.WriteStoreError(w, r, err) // ErrNotFound -> 404, others -> 500
//
// # Request Parsing
//
//	name, ok := httputil.ParsePathStringOrError(w, r, "name")
//	page, ok := httputil.ParseQueryPositiveIntOrError(w, r, "page")
//	names := httputil.ParseQueryList(r, "names")
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RequestIDMiddleware(logger),
//		httputil.RecoveryMiddleware,
//		httputil.LoggingMiddleware,
//	)
//
// # Related Packages
//
//   - pkg/observability: Request-scoped loggers and metrics middleware
package httputil
