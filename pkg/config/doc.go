// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Server settings:
//
//	FOLIO_HOST="0.0.0.0"
//	FOLIO_PORT="8080"
//	FOLIO_READ_TIMEOUT="15s"
//	FOLIO_WRITE_TIMEOUT="15s"
//	FOLIO_SHUTDOWN_TIMEOUT="30s"
//
// Store settings:
//
//	FOLIO_STORE="postgres"  # memory, file, postgres, sqlite, s3
//	FOLIO_STORE_DIR="/var/folio/extensions"
//	FOLIO_STORE_WATCH="true"  # file store only
//	FOLIO_STORE_DSN="postgres://localhost/folio"
//	FOLIO_DB_MAX_CONNS="20"
//	FOLIO_S3_BUCKET="folio-extensions"
//	FOLIO_S3_ENDPOINT="http://minio:9000"
//	FOLIO_S3_USE_PATH_STYLE="true"
//
// Cache settings:
//
//	FOLIO_CACHE_ENABLED="true"
//	FOLIO_CACHE_SIZE="1024"
//	FOLIO_CACHE_TTL="30s"
//	FOLIO_REDIS_ADDR="localhost:6379"
//	FOLIO_REDIS_TTL="5m"
//
// Plugin settings:
//
//	FOLIO_PLUGIN_DIRS="/etc/folio/plugins,./plugins"
//	FOLIO_RUNTIME_VERSION="2.20.0"
//
// Observability settings:
//
//	FOLIO_LOG_LEVEL="info"  # debug, info, warn, error
//	FOLIO_METRICS_ENABLED="true"
//	FOLIO_OTEL_ENABLED="true"
//	FOLIO_OTEL_ENDPOINT="otel-collector:4317"
//
// FOLIO_WARMUP_SCHEDULE takes a cron spec or descriptor ("@every 5m") and
// "off" disables the warm-up job.
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Listening on %s\n", cfg.Server.Addr())
//	fmt.Printf("Store: %s\n", cfg.Store.Backend)
//
// # Related Packages
//
//   - pkg/extension/sqlstore: Uses the pool configuration
//   - pkg/extension/s3store: Uses the S3 configuration
//   - pkg/observability: Uses observability configuration
package config
