package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Store metrics
	StoreOperationsTotal   *prometheus.CounterVec
	StoreOperationDuration *prometheus.HistogramVec
	StoreErrorsTotal       *prometheus.CounterVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Tree metrics
	TreeBuildDuration prometheus.Histogram
	TreeNodes         prometheus.Gauge

	RateLimitedTotal *prometheus.CounterVec

	otel *OTelMetrics
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "folio_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "folio_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "route"},
		),

		StoreOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_store_operations_total",
				Help: "Total number of extension store operations",
			},
			[]string{"operation", "backend", "kind", "status"},
		),
		StoreOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "folio_store_operation_duration_seconds",
				Help:    "Extension store operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "backend", "kind"},
		),
		StoreErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_store_errors_total",
				Help: "Total number of extension store errors",
			},
			[]string{"operation", "backend", "kind", "error_type"},
		),

		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"layer", "kind"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"layer", "kind"},
		),

		TreeBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "folio_category_tree_build_duration_seconds",
				Help:    "Category tree assembly duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
		),
		TreeNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "folio_category_tree_nodes",
				Help: "Number of categories in the last tree build",
			},
		),

		RateLimitedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_rate_limited_requests_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.StoreOperationsTotal,
		m.StoreOperationDuration,
		m.StoreErrorsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.TreeBuildDuration,
		m.TreeNodes,
		m.RateLimitedTotal,
	)

	return m
}

// WithOTel mirrors cache and tree measurements to OpenTelemetry instruments
func (m *Metrics) WithOTel(o *OTelMetrics) *Metrics {
	m.otel = o
	return m
}

// CacheHit records a cache hit
func (m *Metrics) CacheHit(layer, kind string) {
	m.CacheHitsTotal.WithLabelValues(layer, kind).Inc()
	if m.otel != nil {
		m.otel.RecordCacheHit(context.Background(), layer, kind)
	}
}

// CacheMiss records a cache miss
func (m *Metrics) CacheMiss(layer, kind string) {
	m.CacheMissesTotal.WithLabelValues(layer, kind).Inc()
	if m.otel != nil {
		m.otel.RecordCacheMiss(context.Background(), layer, kind)
	}
}

// ObserveTreeBuild records one category tree assembly
func (m *Metrics) ObserveTreeBuild(duration time.Duration, nodes int) {
	m.TreeBuildDuration.Observe(duration.Seconds())
	m.TreeNodes.Set(float64(nodes))
	if m.otel != nil {
		m.otel.RecordTreeBuild(context.Background(), duration, nodes)
	}
}

// ObserveStoreOperation records one extension store call
func (m *Metrics) ObserveStoreOperation(operation, backend, kind string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
		m.StoreErrorsTotal.WithLabelValues(operation, backend, kind, errorType(err)).Inc()
	}
	m.StoreOperationsTotal.WithLabelValues(operation, backend, kind, status).Inc()
	m.StoreOperationDuration.WithLabelValues(operation, backend, kind).Observe(duration.Seconds())
}

// RateLimited records a request rejected by the rate limiter
func (m *Metrics) RateLimited(r *http.Request) {
	m.RateLimitedTotal.WithLabelValues(routeTemplate(r)).Inc()
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// routeTemplate labels requests by their mux route so path parameters do not
// explode metric cardinality
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics
func HTTPMetricsMiddleware(metrics *Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			route := routeTemplate(r)
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration)
			metrics.HTTPResponseSize.WithLabelValues(r.Method, route).Observe(float64(rw.bytesWritten))
		})
	}
}

// MetricsHandler serves the registry in the Prometheus exposition format
func MetricsHandler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
