package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/platinummonkey/folio/pkg/extension"
)

const layerRedis = "redis"

// RedisOptions configures the shared Redis client
type RedisOptions struct {
	Addr       string
	Password   string
	DB         int
	PoolSize   int
	MaxRetries int
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       opts.Addr,
		Password:   opts.Password,
		DB:         opts.DB,
		PoolSize:   opts.PoolSize,
		MaxRetries: opts.MaxRetries,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Redis is a shared cache in front of a client. Values are stored as JSON.
// Redis failures degrade to the wrapped client; they are never returned.
type Redis[T extension.Object] struct {
	next     extension.Client[T]
	typ      *extension.Type[T]
	redis    *redis.Client
	ttl      time.Duration
	recorder Recorder
}

// NewRedis wraps next with a Redis cache whose entries live for ttl
func NewRedis[T extension.Object](next extension.Client[T], typ *extension.Type[T], client *redis.Client, ttl time.Duration, recorder Recorder) *Redis[T] {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Redis[T]{
		next:     next,
		typ:      typ,
		redis:    client,
		ttl:      ttl,
		recorder: recorder,
	}
}

func (c *Redis[T]) objectKey(name string) string {
	return fmt.Sprintf("ext:%s:obj:%s", c.typ.Kind, name)
}

func (c *Redis[T]) listKey(opts extension.ListOptions, sort extension.Sort) string {
	return fmt.Sprintf("ext:%s:list:%s", c.typ.Kind, listKey(opts, sort))
}

// listIndexKey is a set holding every list key of the kind, used for invalidation
func (c *Redis[T]) listIndexKey() string {
	return fmt.Sprintf("ext:%s:lists", c.typ.Kind)
}

// Fetch implements extension.Client
func (c *Redis[T]) Fetch(ctx context.Context, name string) (T, error) {
	key := c.objectKey(name)

	cached, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		if obj, err := c.typ.Decode(cached); err == nil {
			c.recorder.CacheHit(layerRedis, c.typ.Kind)
			return obj, nil
		}
	}
	c.recorder.CacheMiss(layerRedis, c.typ.Kind)

	obj, err := c.next.Fetch(ctx, name)
	if err != nil {
		var zero T
		return zero, err
	}

	if data, err := c.typ.Encode(obj); err == nil {
		c.redis.Set(ctx, key, data, c.ttl)
	}
	return obj, nil
}

// ListAll implements extension.Client
func (c *Redis[T]) ListAll(ctx context.Context, opts extension.ListOptions, sort extension.Sort) ([]T, error) {
	key := c.listKey(opts, sort)

	cached, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var items []T
		if err := json.Unmarshal(cached, &items); err == nil {
			c.recorder.CacheHit(layerRedis, c.typ.Kind)
			return items, nil
		}
	}
	c.recorder.CacheMiss(layerRedis, c.typ.Kind)

	items, err := c.next.ListAll(ctx, opts, sort)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		pipe := c.redis.TxPipeline()
		pipe.Set(ctx, key, data, c.ttl)
		pipe.SAdd(ctx, c.listIndexKey(), key)
		pipe.Exec(ctx)
	}
	return items, nil
}

// ListBy implements extension.Client
func (c *Redis[T]) ListBy(ctx context.Context, opts extension.ListOptions, page extension.PageRequest) (*extension.ListResult[T], error) {
	items, err := c.ListAll(ctx, opts, page.Sort)
	if err != nil {
		return nil, err
	}
	return extension.Paginate(items, page), nil
}

// Create implements extension.Writer
func (c *Redis[T]) Create(ctx context.Context, obj T) error {
	w, err := writer(c.next, c.typ.Kind)
	if err != nil {
		return err
	}
	if err := w.Create(ctx, obj); err != nil {
		return err
	}
	return c.Invalidate(ctx, obj.GetMetadata().Name)
}

// Update implements extension.Writer
func (c *Redis[T]) Update(ctx context.Context, obj T) error {
	w, err := writer(c.next, c.typ.Kind)
	if err != nil {
		return err
	}
	if err := w.Update(ctx, obj); err != nil {
		return err
	}
	return c.Invalidate(ctx, obj.GetMetadata().Name)
}

// Delete implements extension.Writer
func (c *Redis[T]) Delete(ctx context.Context, name string) error {
	w, err := writer(c.next, c.typ.Kind)
	if err != nil {
		return err
	}
	if err := w.Delete(ctx, name); err != nil {
		return err
	}
	return c.Invalidate(ctx, name)
}

// Invalidate removes the named objects and every cached list of the kind
func (c *Redis[T]) Invalidate(ctx context.Context, names ...string) error {
	keys := make([]string, 0, len(names)+1)
	for _, name := range names {
		keys = append(keys, c.objectKey(name))
	}

	lists, err := c.redis.SMembers(ctx, c.listIndexKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to read cached list index: %w", err)
	}
	keys = append(keys, lists...)
	keys = append(keys, c.listIndexKey())

	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}
