// Package cache provides read-through caching decorators for extension clients.
//
// Two layers are available and can be stacked:
//
//	store := sqlstore.NewStore(db, sqlstore.Postgres, content.CategoryType)
//	shared := cache.NewRedis(store, content.CategoryType, redisClient, 5*time.Minute, metrics)
//	local := cache.NewLRU(shared, content.CategoryType, 1024, 30*time.Second, metrics)
//
// Both layers cache Fetch by name and ListAll by (options, sort). ListBy is served
// from the cached ListAll and paginated in process. Writes go to the wrapped
// store when it implements extension.Writer and invalidate the affected entries.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/platinummonkey/folio/pkg/extension"
)

// Recorder receives cache hit/miss notifications
type Recorder interface {
	CacheHit(layer, kind string)
	CacheMiss(layer, kind string)
}

type nopRecorder struct{}

func (nopRecorder) CacheHit(string, string)  {}
func (nopRecorder) CacheMiss(string, string) {}

const layerLRU = "lru"

// LRU is an in-process, size-bounded, expiring cache in front of a client
type LRU[T extension.Object] struct {
	next     extension.Client[T]
	typ      *extension.Type[T]
	objects  *expirable.LRU[string, T]
	lists    *expirable.LRU[string, []T]
	recorder Recorder
}

// NewLRU wraps next with an LRU cache holding up to size entries per table for ttl
func NewLRU[T extension.Object](next extension.Client[T], typ *extension.Type[T], size int, ttl time.Duration, recorder Recorder) *LRU[T] {
	if size < 10 {
		size = 10
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &LRU[T]{
		next:     next,
		typ:      typ,
		objects:  expirable.NewLRU[string, T](size, nil, ttl),
		lists:    expirable.NewLRU[string, []T](size, nil, ttl),
		recorder: recorder,
	}
}

// Fetch implements extension.Client
func (c *LRU[T]) Fetch(ctx context.Context, name string) (T, error) {
	if obj, ok := c.objects.Get(name); ok {
		c.recorder.CacheHit(layerLRU, c.typ.Kind)
		return c.typ.Clone(obj)
	}
	c.recorder.CacheMiss(layerLRU, c.typ.Kind)

	obj, err := c.next.Fetch(ctx, name)
	if err != nil {
		var zero T
		return zero, err
	}

	if stored, err := c.typ.Clone(obj); err == nil {
		c.objects.Add(name, stored)
	}
	return obj, nil
}

// ListAll implements extension.Client
func (c *LRU[T]) ListAll(ctx context.Context, opts extension.ListOptions, sort extension.Sort) ([]T, error) {
	key := listKey(opts, sort)
	if items, ok := c.lists.Get(key); ok {
		c.recorder.CacheHit(layerLRU, c.typ.Kind)
		return c.cloneAll(items)
	}
	c.recorder.CacheMiss(layerLRU, c.typ.Kind)

	items, err := c.next.ListAll(ctx, opts, sort)
	if err != nil {
		return nil, err
	}

	if stored, err := c.cloneAll(items); err == nil {
		c.lists.Add(key, stored)
	}
	return items, nil
}

// ListBy implements extension.Client
func (c *LRU[T]) ListBy(ctx context.Context, opts extension.ListOptions, page extension.PageRequest) (*extension.ListResult[T], error) {
	items, err := c.ListAll(ctx, opts, page.Sort)
	if err != nil {
		return nil, err
	}
	return extension.Paginate(items, page), nil
}

// Create implements extension.Writer
func (c *LRU[T]) Create(ctx context.Context, obj T) error {
	w, err := writer(c.next, c.typ.Kind)
	if err != nil {
		return err
	}
	if err := w.Create(ctx, obj); err != nil {
		return err
	}
	c.Invalidate(obj.GetMetadata().Name)
	return nil
}

// Update implements extension.Writer
func (c *LRU[T]) Update(ctx context.Context, obj T) error {
	w, err := writer(c.next, c.typ.Kind)
	if err != nil {
		return err
	}
	if err := w.Update(ctx, obj); err != nil {
		return err
	}
	c.Invalidate(obj.GetMetadata().Name)
	return nil
}

// Delete implements extension.Writer
func (c *LRU[T]) Delete(ctx context.Context, name string) error {
	w, err := writer(c.next, c.typ.Kind)
	if err != nil {
		return err
	}
	if err := w.Delete(ctx, name); err != nil {
		return err
	}
	c.Invalidate(name)
	return nil
}

// Invalidate drops the named object and every cached list
func (c *LRU[T]) Invalidate(names ...string) {
	for _, name := range names {
		c.objects.Remove(name)
	}
	c.lists.Purge()
}

// Purge drops everything
func (c *LRU[T]) Purge() {
	c.objects.Purge()
	c.lists.Purge()
}

func (c *LRU[T]) cloneAll(items []T) ([]T, error) {
	out := make([]T, len(items))
	for i, obj := range items {
		clone, err := c.typ.Clone(obj)
		if err != nil {
			return nil, err
		}
		out[i] = clone
	}
	return out, nil
}

func listKey(opts extension.ListOptions, sort extension.Sort) string {
	return opts.Key() + "sort[" + sort.String() + "]"
}

func writer[T extension.Object](next extension.Client[T], kind string) (extension.Writer[T], error) {
	w, ok := next.(extension.Writer[T])
	if !ok {
		return nil, fmt.Errorf("%s: %w", kind, extension.ErrReadOnly)
	}
	return w, nil
}
