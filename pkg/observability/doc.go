// Package observability provides structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// # Overview
//
// This package centralizes the service's observability infrastructure: JSON
// logging with logrus, Prometheus metrics, health probes, OpenTelemetry
// providers and graceful shutdown.
//
// # Structured Logging
//
// Create logger:
//
//	logger := observability.NewLogger("info", os.Stdout)
//	logger.WithField("port", 8080).Info("Server started")
//
// Request-scoped logging:
//
//	ctx = observability.WithLogger(observability.WithRequestID(ctx, id), logger)
//	observability.FromContext(ctx).Warn("slow query")
//
// # Prometheus Metrics
//
// Metrics implements the cache and finder recorder interfaces, so one value is
// handed to every layer:
//
//	metrics := observability.NewMetrics(registry)
//	store := observability.InstrumentStore(backend, "postgres", content.KindCategory, metrics)
//	cached := cache.NewLRU(store, content.CategoryType, 1024, time.Minute, metrics)
//	finder := finder.NewCategoryFinder(cached, service, finder.WithTreeRecorder(metrics))
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(db, redisClient, version)
//	observability.RegisterHealthRoutes(router, checker)
//
// # OpenTelemetry
//
//	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
//		Enabled:     true,
//		Endpoint:    "otel-collector:4317",
//		ServiceName: "folio",
//		Insecure:    true,
//	}, logger)
//	defer providers.Shutdown(ctx)
//
// # Related Packages
//
//   - pkg/config: Observability configuration
//   - pkg/httputil: Request logging middleware
package observability
