package extension

import (
	"context"
	"time"
)

// Client is the read side of an extension store
type Client[T Object] interface {
	// Fetch returns the named extension or an error wrapping ErrNotFound
	Fetch(ctx context.Context, name string) (T, error)
	// ListBy returns one page of extensions matching opts, ordered by page.Sort
	ListBy(ctx context.Context, opts ListOptions, page PageRequest) (*ListResult[T], error)
	// ListAll returns every extension matching opts, ordered by sort
	ListAll(ctx context.Context, opts ListOptions, sort Sort) ([]T, error)
}

// Writer is the write side of an extension store
type Writer[T Object] interface {
	Create(ctx context.Context, obj T) error
	// Update replaces an extension. A non-zero Metadata.Version must match the stored version.
	Update(ctx context.Context, obj T) error
	Delete(ctx context.Context, name string) error
}

// Store combines Client and Writer
type Store[T Object] interface {
	Client[T]
	Writer[T]
}

// PrepareCreate stamps creation metadata on a new object
func PrepareCreate(meta *Metadata, now time.Time) {
	if meta.CreationTimestamp.IsZero() {
		meta.CreationTimestamp = now.UTC()
	}
	meta.SetVersion(1)
}

// PrepareUpdate checks the optimistic-lock version of meta against the stored one
// and advances it. Creation time is carried over from the stored object.
func PrepareUpdate(kind string, meta *Metadata, stored *Metadata) error {
	if v := meta.GetVersion(); v != 0 && v != stored.GetVersion() {
		return Conflict(kind, meta.Name, stored.GetVersion(), v)
	}
	meta.CreationTimestamp = stored.CreationTimestamp
	meta.SetVersion(stored.GetVersion() + 1)
	return nil
}

// SyncStamp copies the store-assigned creation time and version from src to dst
func SyncStamp(dst, src *Metadata) {
	dst.CreationTimestamp = src.CreationTimestamp
	dst.SetVersion(src.GetVersion())
}
