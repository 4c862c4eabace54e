package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/folio/pkg/config"
	"github.com/platinummonkey/folio/pkg/content"
	"github.com/platinummonkey/folio/pkg/extension"
	"github.com/platinummonkey/folio/pkg/extension/cache"
	"github.com/platinummonkey/folio/pkg/extension/filestore"
	"github.com/platinummonkey/folio/pkg/extension/memory"
	"github.com/platinummonkey/folio/pkg/extension/s3store"
	"github.com/platinummonkey/folio/pkg/extension/sqlstore"
	"github.com/platinummonkey/folio/pkg/observability"
)

// Backend is an opened category store and the resources behind it
type Backend struct {
	Name       string
	Categories extension.Client[*content.Category]

	// DB is set for the SQL backends
	DB *sql.DB

	closers []func() error
}

// OpenBackend opens the store selected by cfg. The file store starts watching
// its directory when cfg.Watch is set; watching stops with ctx.
func OpenBackend(ctx context.Context, cfg config.StoreConfig, log logrus.FieldLogger) (*Backend, error) {
	b := &Backend{Name: cfg.Backend}

	switch cfg.Backend {
	case config.BackendMemory:
		store := memory.NewStore(content.CategoryType)
		if cfg.Dir != "" {
			seed, err := filestore.LoadDir(cfg.Dir, content.CategoryType)
			if err != nil {
				return nil, fmt.Errorf("failed to seed memory store: %w", err)
			}
			if err := store.Replace(seed); err != nil {
				return nil, fmt.Errorf("failed to seed memory store: %w", err)
			}
			log.WithField("categories", store.Len()).Info("Seeded memory store")
		}
		b.Categories = store

	case config.BackendFile:
		store, err := filestore.NewStore(cfg.Dir, content.CategoryType, log)
		if err != nil {
			return nil, err
		}
		if cfg.Watch {
			if err := store.Watch(ctx); err != nil {
				return nil, err
			}
		}
		b.Categories = store

	case config.BackendPostgres, config.BackendSQLite:
		dialect, err := sqlstore.DialectByName(cfg.Backend)
		if err != nil {
			return nil, err
		}
		db, err := sqlstore.Open(dialect, cfg.DSN, cfg.Pool)
		if err != nil {
			return nil, err
		}
		if err := sqlstore.Migrate(ctx, db, dialect); err != nil {
			db.Close()
			return nil, err
		}
		b.DB = db
		b.closers = append(b.closers, db.Close)
		b.Categories = sqlstore.NewStore(db, dialect, content.CategoryType)

	case config.BackendS3:
		client, err := s3store.NewClient(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		if err := s3store.EnsureBucket(ctx, client, cfg.S3.Bucket); err != nil {
			return nil, err
		}
		b.Categories = s3store.NewStore(client, cfg.S3.Bucket, cfg.S3.Prefix, content.CategoryType)

	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}

	log.WithField("backend", cfg.Backend).Info("Category store opened")
	return b, nil
}

// Writer returns the store as a writer, or ErrReadOnly for the file store
func (b *Backend) Writer() (extension.Writer[*content.Category], error) {
	w, ok := b.Categories.(extension.Writer[*content.Category])
	if !ok {
		return nil, fmt.Errorf("%s store: %w", b.Name, extension.ErrReadOnly)
	}
	return w, nil
}

// Close releases the backend's resources
func (b *Backend) Close() error {
	var errs []error
	for _, closeFn := range b.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CategoryClient layers the read path over the backend: instrumentation
// closest to the store, then the shared Redis cache when client is set, then
// the in-process LRU when enabled.
func CategoryClient(b *Backend, cfg config.CacheConfig, client *redis.Client, metrics *observability.Metrics) extension.Client[*content.Category] {
	var c extension.Client[*content.Category] = b.Categories
	if metrics != nil {
		c = observability.InstrumentStore(c, b.Name, content.KindCategory, metrics)
	}

	var recorder cache.Recorder
	if metrics != nil {
		recorder = metrics
	}
	if client != nil {
		c = cache.NewRedis(c, content.CategoryType, client, cfg.RedisTTL, recorder)
	}
	if cfg.LRUEnabled {
		c = cache.NewLRU(c, content.CategoryType, cfg.LRUSize, cfg.LRUTTL, recorder)
	}
	return c
}

// OpenRedis connects to Redis when cfg names an address. A nil client and nil
// error mean the shared cache is disabled.
func OpenRedis(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	return cache.NewRedisClient(ctx, cache.RedisOptions{
		Addr:       cfg.RedisAddr,
		Password:   cfg.RedisPassword,
		DB:         cfg.RedisDB,
		PoolSize:   cfg.RedisPoolSize,
		MaxRetries: cfg.RedisMaxRetries,
	})
}
