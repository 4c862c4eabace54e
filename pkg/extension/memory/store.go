// Package memory provides a map-backed extension store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/platinummonkey/folio/pkg/extension"
)

// Store keeps extensions of one kind in memory. It hands out deep copies, so
// callers may mutate returned objects freely.
type Store[T extension.Object] struct {
	typ   *extension.Type[T]
	mu    sync.RWMutex
	items map[string]T
	now   func() time.Time
}

// NewStore creates an empty store for typ
func NewStore[T extension.Object](typ *extension.Type[T]) *Store[T] {
	return &Store[T]{
		typ:   typ,
		items: make(map[string]T),
		now:   time.Now,
	}
}

// Fetch implements extension.Client
func (s *Store[T]) Fetch(ctx context.Context, name string) (T, error) {
	s.mu.RLock()
	obj, ok := s.items[name]
	s.mu.RUnlock()

	if !ok {
		var zero T
		return zero, extension.NotFound(s.typ.Kind, name)
	}
	return s.typ.Clone(obj)
}

// ListAll implements extension.Client
func (s *Store[T]) ListAll(ctx context.Context, opts extension.ListOptions, sort extension.Sort) ([]T, error) {
	s.mu.RLock()
	snapshot := make([]T, 0, len(s.items))
	for _, obj := range s.items {
		snapshot = append(snapshot, obj)
	}
	s.mu.RUnlock()

	// Map iteration is random; a name sort first makes ties deterministic.
	ordered, err := extension.Apply(snapshot, s.typ, opts, extension.SortBy(extension.Asc(extension.FieldName)))
	if err != nil {
		return nil, err
	}
	matched, err := extension.Apply(ordered, s.typ, extension.ListOptions{}, sort)
	if err != nil {
		return nil, err
	}

	out := make([]T, len(matched))
	for i, obj := range matched {
		if out[i], err = s.typ.Clone(obj); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ListBy implements extension.Client
func (s *Store[T]) ListBy(ctx context.Context, opts extension.ListOptions, page extension.PageRequest) (*extension.ListResult[T], error) {
	items, err := s.ListAll(ctx, opts, page.Sort)
	if err != nil {
		return nil, err
	}
	return extension.Paginate(items, page), nil
}

// Create implements extension.Writer
func (s *Store[T]) Create(ctx context.Context, obj T) error {
	stored, err := s.typ.Clone(obj)
	if err != nil {
		return err
	}
	meta := stored.GetMetadata()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[meta.Name]; exists {
		return extension.AlreadyExists(s.typ.Kind, meta.Name)
	}
	extension.PrepareCreate(meta, s.now())
	s.items[meta.Name] = stored

	extension.SyncStamp(obj.GetMetadata(), meta)
	return nil
}

// Update implements extension.Writer
func (s *Store[T]) Update(ctx context.Context, obj T) error {
	stored, err := s.typ.Clone(obj)
	if err != nil {
		return err
	}
	meta := stored.GetMetadata()

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[meta.Name]
	if !ok {
		return extension.NotFound(s.typ.Kind, meta.Name)
	}
	if err := extension.PrepareUpdate(s.typ.Kind, meta, existing.GetMetadata()); err != nil {
		return err
	}
	s.items[meta.Name] = stored

	extension.SyncStamp(obj.GetMetadata(), meta)
	return nil
}

// Delete implements extension.Writer
func (s *Store[T]) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[name]; !ok {
		return extension.NotFound(s.typ.Kind, name)
	}
	delete(s.items, name)
	return nil
}

// Replace swaps the whole content of the store, stamping creation metadata where missing
func (s *Store[T]) Replace(objs []T) error {
	items := make(map[string]T, len(objs))
	for _, obj := range objs {
		stored, err := s.typ.Clone(obj)
		if err != nil {
			return err
		}
		meta := stored.GetMetadata()
		if meta.Version == nil {
			extension.PrepareCreate(meta, s.now())
		}
		items[meta.Name] = stored
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored extensions
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
