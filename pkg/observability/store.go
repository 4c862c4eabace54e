package observability

import (
	"context"
	"errors"
	"time"

	"github.com/platinummonkey/folio/pkg/extension"
)

// StoreObserver receives one measurement per extension store call
type StoreObserver interface {
	ObserveStoreOperation(operation, backend, kind string, duration time.Duration, err error)
}

// InstrumentedStore records every call made to the wrapped store. Write
// operations fail with ErrReadOnly when the wrapped client is not a Writer.
type InstrumentedStore[T extension.Object] struct {
	next     extension.Client[T]
	backend  string
	kind     string
	observer StoreObserver
}

// InstrumentStore wraps next, labelling measurements with backend and kind
func InstrumentStore[T extension.Object](next extension.Client[T], backend, kind string, observer StoreObserver) *InstrumentedStore[T] {
	return &InstrumentedStore[T]{
		next:     next,
		backend:  backend,
		kind:     kind,
		observer: observer,
	}
}

func (s *InstrumentedStore[T]) observe(operation string, start time.Time, err error) {
	s.observer.ObserveStoreOperation(operation, s.backend, s.kind, time.Since(start), err)
}

// Fetch implements extension.Client
func (s *InstrumentedStore[T]) Fetch(ctx context.Context, name string) (obj T, err error) {
	defer func(start time.Time) { s.observe("fetch", start, err) }(time.Now())
	return s.next.Fetch(ctx, name)
}

// ListBy implements extension.Client
func (s *InstrumentedStore[T]) ListBy(ctx context.Context, opts extension.ListOptions, page extension.PageRequest) (result *extension.ListResult[T], err error) {
	defer func(start time.Time) { s.observe("list_by", start, err) }(time.Now())
	return s.next.ListBy(ctx, opts, page)
}

// ListAll implements extension.Client
func (s *InstrumentedStore[T]) ListAll(ctx context.Context, opts extension.ListOptions, sort extension.Sort) (items []T, err error) {
	defer func(start time.Time) { s.observe("list_all", start, err) }(time.Now())
	return s.next.ListAll(ctx, opts, sort)
}

func (s *InstrumentedStore[T]) writer() (extension.Writer[T], error) {
	w, ok := s.next.(extension.Writer[T])
	if !ok {
		return nil, extension.ErrReadOnly
	}
	return w, nil
}

// Create implements extension.Writer
func (s *InstrumentedStore[T]) Create(ctx context.Context, obj T) (err error) {
	defer func(start time.Time) { s.observe("create", start, err) }(time.Now())
	w, err := s.writer()
	if err != nil {
		return err
	}
	return w.Create(ctx, obj)
}

// Update implements extension.Writer
func (s *InstrumentedStore[T]) Update(ctx context.Context, obj T) (err error) {
	defer func(start time.Time) { s.observe("update", start, err) }(time.Now())
	w, err := s.writer()
	if err != nil {
		return err
	}
	return w.Update(ctx, obj)
}

// Delete implements extension.Writer
func (s *InstrumentedStore[T]) Delete(ctx context.Context, name string) (err error) {
	defer func(start time.Time) { s.observe("delete", start, err) }(time.Now())
	w, err := s.writer()
	if err != nil {
		return err
	}
	return w.Delete(ctx, name)
}

// errorType buckets an error for the error_type label
func errorType(err error) string {
	switch {
	case errors.Is(err, extension.ErrNotFound):
		return "not_found"
	case errors.Is(err, extension.ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, extension.ErrConflict):
		return "conflict"
	case errors.Is(err, extension.ErrUnknownField):
		return "unknown_field"
	case errors.Is(err, extension.ErrReadOnly):
		return "read_only"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal"
	}
}
