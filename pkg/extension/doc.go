// Package extension provides the generic, typed store abstraction that Folio's
// content layer reads from.
//
// # Overview
//
// Every persisted entity (categories, plugins) is an extension: a value carrying
// a Metadata block plus kind-specific spec and status sections. Backends store
// extensions of one kind per Store[T] and expose a small read API to consumers:
//
//	type Client[T Object] interface {
//		Fetch(ctx context.Context, name string) (T, error)
//		ListBy(ctx context.Context, opts ListOptions, page PageRequest) (*ListResult[T], error)
//		ListAll(ctx context.Context, opts ListOptions, sort Sort) ([]T, error)
//	}
//
// Writers (Create, Update, Delete) are separate so read-only backends such as the
// YAML file store only implement Client.
//
// # Types and Fields
//
// A Type[T] names the kind and declares the fields that selectors and sorts may
// reference. metadata.name, metadata.creationTimestamp and metadata.labels.<key>
// are always available:
//
//	var CategoryType = &extension.Type[*Category]{
//		Kind: "Category",
//		New:  func() *Category { return &Category{} },
//		Fields: []extension.Field[*Category]{
//			{Name: "spec.hideFromList", Values: ...},
//		},
//	}
//
// # Selectors
//
//	opts := extension.ListOptions{
//		FieldSelector: extension.NotEqual("spec.hideFromList", "true"),
//	}
//
// Multi-valued fields match Equal when any value matches.
//
// # Paging
//
// Pages are 1-based. A PageRequest with Size <= 0 is unpaged and returns every
// matching item in a single ListResult.
//
// # Backends
//
//   - memory: map-backed store for tests and development
//   - sqlstore: database/sql store with postgres and sqlite3 dialects
//   - filestore: read-only YAML directory, reloaded with fsnotify
//   - s3store: JSON documents in an S3 bucket
//   - cache: LRU and Redis read-through decorators
//
// All backends share Apply and Paginate so filtering, ordering and paging behave
// identically regardless of where the data lives.
package extension
