package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/platinummonkey/folio/pkg/extension/s3store"
	"github.com/platinummonkey/folio/pkg/extension/sqlstore"
	"github.com/platinummonkey/folio/pkg/middleware"
	"github.com/platinummonkey/folio/pkg/plugins"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendS3       = "s3"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Store         StoreConfig
	Cache         CacheConfig
	Plugins       PluginConfig
	Observability ObservabilityConfig

	// WarmupSchedule is a cron spec for priming the category caches; empty disables it
	WarmupSchedule string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// RateLimit applies per client to the /api routes; zero requests disables it
	RateLimit middleware.RateLimitConfig
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// StoreConfig selects and configures the category store backend
type StoreConfig struct {
	Backend string

	// Dir holds YAML documents. The file backend serves it; the memory backend
	// is seeded from it when set.
	Dir   string
	Watch bool

	// DSN is the postgres connection string or sqlite file
	DSN  string
	Pool sqlstore.PoolConfig

	S3 s3store.Config
}

// CacheConfig configures the cache layers in front of the store
type CacheConfig struct {
	LRUEnabled bool
	LRUSize    int
	LRUTTL     time.Duration

	// RedisAddr enables the shared Redis layer when set
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisPoolSize   int
	RedisMaxRetries int
	RedisTTL        time.Duration
}

// PluginConfig configures plugin discovery
type PluginConfig struct {
	Dirs           []string
	RuntimeVersion string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       string
	MetricsEnabled bool

	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:         loadServerConfig(),
		Store:          loadStoreConfig(),
		Cache:          loadCacheConfig(),
		Plugins:        loadPluginConfig(),
		Observability:  loadObservabilityConfig(),
		WarmupSchedule: getEnv("FOLIO_WARMUP_SCHEDULE", "@every 5m"),
	}
	if os.Getenv("FOLIO_WARMUP_SCHEDULE") == "off" {
		cfg.WarmupSchedule = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("FOLIO_HOST", "0.0.0.0"),
		Port:            getEnv("FOLIO_PORT", "8080"),
		ReadTimeout:     getEnvDuration("FOLIO_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("FOLIO_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("FOLIO_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("FOLIO_SHUTDOWN_TIMEOUT", 30*time.Second),
		RateLimit: middleware.RateLimitConfig{
			RequestsPerWindow: getEnvInt("FOLIO_RATE_LIMIT", 0),
			WindowDuration:    getEnvDuration("FOLIO_RATE_LIMIT_WINDOW", time.Minute),
			BurstSize:         getEnvInt("FOLIO_RATE_LIMIT_BURST", 10),
		},
	}
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{
		Backend: strings.ToLower(getEnv("FOLIO_STORE", BackendMemory)),
		Dir:     getEnv("FOLIO_STORE_DIR", ""),
		Watch:   getEnvBool("FOLIO_STORE_WATCH", false),
		DSN:     getEnv("FOLIO_STORE_DSN", ""),
		Pool: sqlstore.PoolConfig{
			MaxConns:    getEnvInt("FOLIO_DB_MAX_CONNS", 20),
			MinConns:    getEnvInt("FOLIO_DB_MIN_CONNS", 5),
			Timeout:     getEnvDuration("FOLIO_DB_TIMEOUT", 10*time.Second),
			MaxLifetime: getEnvDuration("FOLIO_DB_MAX_LIFETIME", 30*time.Minute),
			MaxIdleTime: getEnvDuration("FOLIO_DB_MAX_IDLE_TIME", 5*time.Minute),
		},
		S3: s3store.Config{
			Bucket:       getEnv("FOLIO_S3_BUCKET", ""),
			Region:       getEnv("FOLIO_S3_REGION", "us-east-1"),
			Endpoint:     getEnv("FOLIO_S3_ENDPOINT", ""),
			AccessKey:    getEnv("FOLIO_S3_ACCESS_KEY", ""),
			SecretKey:    getEnv("FOLIO_S3_SECRET_KEY", ""),
			UsePathStyle: getEnvBool("FOLIO_S3_USE_PATH_STYLE", false),
			Prefix:       getEnv("FOLIO_S3_PREFIX", "extensions"),
		},
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		LRUEnabled:      getEnvBool("FOLIO_CACHE_ENABLED", true),
		LRUSize:         getEnvInt("FOLIO_CACHE_SIZE", 1024),
		LRUTTL:          getEnvDuration("FOLIO_CACHE_TTL", 30*time.Second),
		RedisAddr:       getEnv("FOLIO_REDIS_ADDR", ""),
		RedisPassword:   getEnv("FOLIO_REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("FOLIO_REDIS_DB", 0),
		RedisPoolSize:   getEnvInt("FOLIO_REDIS_POOL_SIZE", 10),
		RedisMaxRetries: getEnvInt("FOLIO_REDIS_MAX_RETRIES", 3),
		RedisTTL:        getEnvDuration("FOLIO_REDIS_TTL", 5*time.Minute),
	}
}

func loadPluginConfig() PluginConfig {
	dirs := plugins.GetDefaultPluginDirectories()
	if value := getEnv("FOLIO_PLUGIN_DIRS", ""); value != "" {
		dirs = splitList(value)
	}
	return PluginConfig{
		Dirs:           dirs,
		RuntimeVersion: getEnv("FOLIO_RUNTIME_VERSION", plugins.RuntimeVersion),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           strings.ToLower(getEnv("FOLIO_LOG_LEVEL", "info")),
		MetricsEnabled:     getEnvBool("FOLIO_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("FOLIO_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("FOLIO_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("FOLIO_OTEL_SERVICE_NAME", "folio"),
		OTelServiceVersion: getEnv("FOLIO_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("FOLIO_OTEL_INSECURE", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}

	if rl := c.Server.RateLimit; rl.RequestsPerWindow < 0 || rl.BurstSize < 0 {
		return errors.New("rate limit and burst must not be negative")
	} else if rl.Enabled() && rl.WindowDuration <= 0 {
		return errors.New("rate limit window must be positive")
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.Dir == "" {
			return errors.New("store directory is required for file store")
		}
	case BackendPostgres, BackendSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("DSN is required for %s store", c.Store.Backend)
		}
	case BackendS3:
		if c.Store.S3.Bucket == "" {
			return errors.New("S3 bucket is required for s3 store")
		}
		if (c.Store.S3.AccessKey == "") != (c.Store.S3.SecretKey == "") {
			return errors.New("S3 access key and secret key must be set together")
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be memory, file, postgres, sqlite, or s3)", c.Store.Backend)
	}

	if c.Store.Watch && c.Store.Backend != BackendFile {
		return errors.New("store watch is only supported by the file store")
	}

	if c.Cache.LRUEnabled && c.Cache.LRUSize <= 0 {
		return errors.New("cache size must be positive when the cache is enabled")
	}

	if c.WarmupSchedule != "" {
		if _, err := cron.ParseStandard(c.WarmupSchedule); err != nil {
			return fmt.Errorf("invalid warmup schedule %q: %w", c.WarmupSchedule, err)
		}
	}

	if _, err := plugins.Satisfies(c.Plugins.RuntimeVersion, "*"); err != nil {
		return fmt.Errorf("invalid runtime version: %w", err)
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return errors.New("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return errors.New("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
