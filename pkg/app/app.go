// Package app wires configuration, stores, caches, finders and the HTTP API
// into a runnable folio server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/folio/pkg/api"
	"github.com/platinummonkey/folio/pkg/async"
	"github.com/platinummonkey/folio/pkg/config"
	"github.com/platinummonkey/folio/pkg/content"
	"github.com/platinummonkey/folio/pkg/extension/memory"
	"github.com/platinummonkey/folio/pkg/finder"
	"github.com/platinummonkey/folio/pkg/middleware"
	"github.com/platinummonkey/folio/pkg/observability"
	"github.com/platinummonkey/folio/pkg/plugins"
)

const (
	warmupTimeout    = time.Minute
	discoveryTimeout = 30 * time.Second
)

// App is a fully wired folio server
type App struct {
	cfg       *config.Config
	log       *logrus.Logger
	backend   *Backend
	redis     *redis.Client
	otel      *observability.OTelProviders
	registry  *prometheus.Registry
	metrics   *observability.Metrics
	finder    *finder.CategoryFinder
	loader    *plugins.Loader
	api       *api.Server
	limiter   *middleware.RateLimiter
	scheduler *async.Scheduler
	server    *http.Server
}

// New opens every dependency named by cfg. A Redis connection failure is
// logged and the shared cache layer is skipped. Whatever was opened is closed
// again when New fails.
func New(ctx context.Context, cfg *config.Config, log *logrus.Logger, version string) (_ *App, err error) {
	a := &App{cfg: cfg, log: log}
	defer func() {
		if err == nil {
			return
		}
		if closeErr := a.Close(context.WithoutCancel(ctx)); closeErr != nil {
			log.WithError(closeErr).Warn("Failed to release resources after startup error")
		}
	}()

	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, log)
	if err != nil {
		return nil, err
	}
	a.otel = providers

	a.registry = prometheus.NewRegistry()
	a.metrics = observability.NewMetrics(a.registry)
	if providers != nil {
		otelMetrics, err := observability.NewOTelMetrics()
		if err != nil {
			return nil, err
		}
		a.metrics.WithOTel(otelMetrics)
	}

	a.backend, err = OpenBackend(ctx, cfg.Store, log)
	if err != nil {
		return nil, err
	}

	a.redis, err = OpenRedis(ctx, cfg.Cache)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, running without the shared cache")
		a.redis = nil
	}

	categories := CategoryClient(a.backend, cfg.Cache, a.redis, a.metrics)
	a.finder = finder.NewCategoryFinder(categories, content.NewCategoryService(categories, log),
		finder.WithTreeRecorder(a.metrics), finder.WithLogger(log))

	pluginStore := memory.NewStore(plugins.PluginType)
	a.loader = plugins.NewLoader(cfg.Plugins.Dirs, pluginStore, log)
	a.loader.SetRuntimeVersion(cfg.Plugins.RuntimeVersion)

	opts := api.Options{
		Logger:  log,
		Metrics: a.metrics,
		Health:  observability.NewHealthChecker(a.backend.DB, a.redis, version),
	}
	if cfg.Observability.MetricsEnabled {
		opts.Registry = a.registry
	}
	if rl := cfg.Server.RateLimit; rl.Enabled() {
		// Redis shares one budget across instances; the local limiter covers Redis outages
		a.limiter = middleware.NewRateLimiter(rl)
		var primary, fallback middleware.Limiter = a.limiter, nil
		if a.redis != nil {
			primary = middleware.NewDistributedRateLimiter(a.redis, rl, "folio:ratelimit")
			fallback = a.limiter
		}
		opts.RateLimit = middleware.NewRateLimitMiddleware(primary, fallback, a.metrics)
	}
	a.api = api.NewServer(a.finder, finder.NewPluginFinder(pluginStore), opts)

	a.scheduler = async.NewScheduler(ctx, log)
	if cfg.WarmupSchedule != "" {
		if err := a.scheduler.AddJob(cfg.WarmupSchedule, "category warm-up", warmupTimeout, a.Warm); err != nil {
			return nil, err
		}
		if err := a.scheduler.AddJob(cfg.WarmupSchedule, "plugin discovery", discoveryTimeout, a.DiscoverPlugins); err != nil {
			return nil, err
		}
	}

	a.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      a.api,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return a, nil
}

// Handler returns the HTTP handler serving the API
func (a *App) Handler() http.Handler {
	return a.api
}

// Warm builds the category tree once, priming every cache layer
func (a *App) Warm(ctx context.Context) error {
	_, err := a.finder.ListAsTree(ctx)
	return err
}

// DiscoverPlugins rescans the plugin directories
func (a *App) DiscoverPlugins(ctx context.Context) error {
	found, err := a.loader.DiscoverPlugins(ctx)
	if err != nil {
		return err
	}
	a.log.WithField("plugins", len(found)).Debug("Plugin discovery finished")
	return nil
}

// Run serves HTTP until ctx is done, then shuts down gracefully
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduler.RunNow("plugin discovery", discoveryTimeout, a.DiscoverPlugins); err != nil {
		a.log.WithError(err).Warn("Initial plugin discovery failed")
	}
	async.SafeGo(ctx, a.log, warmupTimeout, "category warm-up", a.Warm)
	a.scheduler.Start()
	if a.limiter != nil {
		a.limiter.StartCleanup(ctx)
	}

	shutdown := observability.NewShutdownManager(a.log, a.server, a.cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(a.scheduler.Stop)
	shutdown.RegisterShutdownFunc(a.Close)

	errCh := make(chan error, 1)
	go func() {
		defer observability.RecoverPanic(a.log, "http server")
		a.log.WithField("addr", a.server.Addr).Info("Starting folio server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if shutdownErr := shutdown.Shutdown(); shutdownErr != nil {
			a.log.WithError(shutdownErr).Error("Shutdown after server failure")
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		a.log.Info("Starting graceful shutdown")
		return shutdown.Shutdown()
	}
}

// Close releases the store, Redis and telemetry exporters
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.otel.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
