package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/platinummonkey/folio/pkg/finder"
	"github.com/platinummonkey/folio/pkg/httputil"
	"github.com/platinummonkey/folio/pkg/middleware"
	"github.com/platinummonkey/folio/pkg/observability"
)

// Options carries the optional collaborators of a Server
type Options struct {
	Logger   logrus.FieldLogger
	Metrics  *observability.Metrics
	Registry *prometheus.Registry
	Health   *observability.HealthChecker
	// RateLimit guards the /api/v1 routes when set
	RateLimit *middleware.RateLimitMiddleware
}

// Server represents our API server
type Server struct {
	categories *finder.CategoryFinder
	plugins    *finder.PluginFinder
	router     *mux.Router
	handler    http.Handler
	logger     logrus.FieldLogger
}

// NewServer creates a new API server
func NewServer(categories *finder.CategoryFinder, plugins *finder.PluginFinder, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}

	s := &Server{
		categories: categories,
		plugins:    plugins,
		router:     mux.NewRouter(),
		logger:     opts.Logger,
	}

	if opts.Metrics != nil {
		s.router.Use(observability.HTTPMetricsMiddleware(opts.Metrics))
	}
	if opts.Health != nil {
		observability.RegisterHealthRoutes(s.router, opts.Health)
	}
	if opts.Registry != nil {
		s.router.Handle("/metrics", observability.MetricsHandler(opts.Registry)).Methods(http.MethodGet)
	}
	s.setupRoutes(opts.RateLimit)

	s.handler = otelhttp.NewHandler(
		httputil.Chain(
			httputil.RequestIDMiddleware(s.logger),
			httputil.RecoveryMiddleware,
			httputil.LoggingMiddleware,
		)(s.router),
		"folio",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes(rateLimit *middleware.RateLimitMiddleware) {
	v1 := s.router.PathPrefix("/api/v1").Subrouter()
	if rateLimit != nil {
		v1.Use(rateLimit.Handler)
	}

	// Fixed category paths go first so they are not taken as names
	v1.HandleFunc("/categories", s.listCategories).Methods(http.MethodGet)
	v1.HandleFunc("/categories/-/all", s.listAllCategories).Methods(http.MethodGet)
	v1.HandleFunc("/categories/-/tree", s.categoryTree).Methods(http.MethodGet)
	v1.HandleFunc("/categories/-/batch", s.batchCategories).Methods(http.MethodGet)
	v1.HandleFunc("/categories/{name}", s.getCategory).Methods(http.MethodGet)
	v1.HandleFunc("/categories/{name}/parent", s.getParentCategory).Methods(http.MethodGet)
	v1.HandleFunc("/categories/{name}/children", s.listChildCategories).Methods(http.MethodGet)

	v1.HandleFunc("/plugins/{name}/available", s.pluginAvailable).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
