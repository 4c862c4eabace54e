// Package s3store keeps extensions as JSON objects in an S3 bucket.
//
// Objects live under <prefix>/<kind>/<name>.json. Create and Update use S3
// conditional writes (If-None-Match / If-Match on the ETag), so concurrent
// writers cannot silently overwrite each other.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/folio/pkg/extension"
)

var tracer = otel.Tracer("github.com/platinummonkey/folio/pkg/extension/s3store")

const fetchConcurrency = 8

// ObjectAPI is the subset of *s3.Client the store needs
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store is an extension.Store backed by a bucket
type Store[T extension.Object] struct {
	api    ObjectAPI
	bucket string
	prefix string
	typ    *extension.Type[T]
	now    func() time.Time
}

// NewStore creates a store for typ in bucket under prefix
func NewStore[T extension.Object](api ObjectAPI, bucket, prefix string, typ *extension.Type[T]) *Store[T] {
	return &Store[T]{
		api:    api,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		typ:    typ,
		now:    time.Now,
	}
}

func (s *Store[T]) kindPrefix() string {
	return path.Join(s.prefix, s.typ.Kind) + "/"
}

func (s *Store[T]) key(name string) string {
	return s.kindPrefix() + name + ".json"
}

func (s *Store[T]) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("s3.operation", op),
		attribute.String("s3.bucket", s.bucket),
		attribute.String("extension.kind", s.typ.Kind),
	)
	return tracer.Start(ctx, "S3Store."+op, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}

// get reads an object and its ETag
func (s *Store[T]) get(ctx context.Context, name string) (T, string, error) {
	var zero T
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			return zero, "", extension.NotFound(s.typ.Kind, name)
		}
		return zero, "", fmt.Errorf("failed to get %s %q: %w", s.typ.Kind, name, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return zero, "", fmt.Errorf("failed to read %s %q: %w", s.typ.Kind, name, err)
	}
	obj, err := s.typ.Decode(data)
	if err != nil {
		return zero, "", err
	}
	return obj, aws.ToString(out.ETag), nil
}

func (s *Store[T]) put(ctx context.Context, obj T, ifMatch, ifNoneMatch *string) error {
	data, err := s.typ.Encode(obj)
	if err != nil {
		return err
	}
	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(obj.GetMetadata().Name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		IfMatch:     ifMatch,
		IfNoneMatch: ifNoneMatch,
	})
	return err
}

// Fetch implements extension.Client
func (s *Store[T]) Fetch(ctx context.Context, name string) (T, error) {
	ctx, span := s.startSpan(ctx, "Fetch", attribute.String("s3.key", s.key(name)))
	defer span.End()

	obj, _, err := s.get(ctx, name)
	if err != nil {
		fail(span, err, "fetch failed")
		return obj, err
	}
	span.SetStatus(codes.Ok, "")
	return obj, nil
}

// names lists every object name of the kind
func (s *Store[T]) names(ctx context.Context) ([]string, error) {
	prefix := s.kindPrefix()
	paginator := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s objects: %w", s.typ.Kind, err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if strings.Contains(name, "/") || !strings.HasSuffix(name, ".json") {
				continue
			}
			names = append(names, strings.TrimSuffix(name, ".json"))
		}
	}
	return names, nil
}

// ListAll implements extension.Client. Objects are fetched concurrently.
func (s *Store[T]) ListAll(ctx context.Context, opts extension.ListOptions, sort extension.Sort) ([]T, error) {
	ctx, span := s.startSpan(ctx, "ListAll")
	defer span.End()

	if err := s.typ.Validate(opts, sort); err != nil {
		fail(span, err, "invalid list options")
		return nil, err
	}

	names, err := s.names(ctx)
	if err != nil {
		fail(span, err, "list failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("s3.objects", len(names)))

	objs := make([]T, len(names))
	found := make([]bool, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, name := range names {
		g.Go(func() error {
			obj, _, err := s.get(gctx, name)
			if err != nil {
				if errors.Is(err, extension.ErrNotFound) {
					// deleted between list and get
					return nil
				}
				return err
			}
			objs[i] = obj
			found[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fail(span, err, "fetch failed")
		return nil, err
	}

	present := make([]T, 0, len(objs))
	for i, obj := range objs {
		if found[i] {
			present = append(present, obj)
		}
	}

	items, err := extension.Apply(present, s.typ, opts, sort)
	if err != nil {
		fail(span, err, "apply failed")
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return items, nil
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
	meta := obj.GetMetadata()
	ctx, span := s.startSpan(ctx, "Create", attribute.String("s3.key", s.key(meta.Name)))
	defer span.End()

	stamped, err := s.typ.Clone(obj)
	if err != nil {
		return err
	}
	extension.PrepareCreate(stamped.GetMetadata(), s.now())

	if err := s.put(ctx, stamped, nil, aws.String("*")); err != nil {
		if isPreconditionFailed(err) {
			err = extension.AlreadyExists(s.typ.Kind, meta.Name)
		} else {
			err = fmt.Errorf("failed to create %s %q: %w", s.typ.Kind, meta.Name, err)
		}
		fail(span, err, "create failed")
		return err
	}

	extension.SyncStamp(meta, stamped.GetMetadata())
	span.SetStatus(codes.Ok, "")
	return nil
}

// Update implements extension.Writer
func (s *Store[T]) Update(ctx context.Context, obj T) error {
	meta := obj.GetMetadata()
	ctx, span := s.startSpan(ctx, "Update", attribute.String("s3.key", s.key(meta.Name)))
	defer span.End()

	stored, etag, err := s.get(ctx, meta.Name)
	if err != nil {
		fail(span, err, "update failed")
		return err
	}

	updated, err := s.typ.Clone(obj)
	if err != nil {
		return err
	}
	if err := extension.PrepareUpdate(s.typ.Kind, updated.GetMetadata(), stored.GetMetadata()); err != nil {
		fail(span, err, "version conflict")
		return err
	}

	if err := s.put(ctx, updated, aws.String(etag), nil); err != nil {
		if isPreconditionFailed(err) {
			err = extension.Conflict(s.typ.Kind, meta.Name, stored.GetMetadata().GetVersion(), meta.GetVersion())
		} else {
			err = fmt.Errorf("failed to update %s %q: %w", s.typ.Kind, meta.Name, err)
		}
		fail(span, err, "update failed")
		return err
	}

	extension.SyncStamp(meta, updated.GetMetadata())
	span.SetStatus(codes.Ok, "")
	return nil
}

// Delete implements extension.Writer
func (s *Store[T]) Delete(ctx context.Context, name string) error {
	key := s.key(name)
	ctx, span := s.startSpan(ctx, "Delete", attribute.String("s3.key", key))
	defer span.End()

	if _, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		if isNotFound(err) {
			err = extension.NotFound(s.typ.Kind, name)
		} else {
			err = fmt.Errorf("failed to check %s %q: %w", s.typ.Kind, name, err)
		}
		fail(span, err, "delete failed")
		return err
	}

	if _, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		err = fmt.Errorf("failed to delete %s %q: %w", s.typ.Kind, name, err)
		fail(span, err, "delete failed")
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}
