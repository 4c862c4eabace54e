package finder

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/folio/pkg/content"
	"github.com/platinummonkey/folio/pkg/extension"
)

const (
	defaultPage = 1
	defaultSize = 10

	// maxConcurrentFetches bounds GetByNames fan-out
	maxConcurrentFetches = 16
)

var tracer = otel.Tracer("github.com/platinummonkey/folio/pkg/finder")

// TreeRecorder receives tree build measurements
type TreeRecorder interface {
	ObserveTreeBuild(duration time.Duration, nodes int)
}

type nopTreeRecorder struct{}

func (nopTreeRecorder) ObserveTreeBuild(time.Duration, int) {}

// DefaultSort orders categories by priority, creation time and name, all descending
func DefaultSort() extension.Sort {
	return content.DefaultSort()
}

// visibleOptions selects categories that are not hidden from lists
func visibleOptions() extension.ListOptions {
	return extension.ListOptions{
		FieldSelector: extension.NotEqual(content.FieldHideFromList, "true"),
	}
}

// CategoryFinder serves category views to themes and the HTTP API
type CategoryFinder struct {
	client   extension.Client[*content.Category]
	service  *content.CategoryService
	recorder TreeRecorder
	log      logrus.FieldLogger
}

// CategoryFinderOption configures a CategoryFinder
type CategoryFinderOption func(*CategoryFinder)

// WithTreeRecorder reports tree builds to r
func WithTreeRecorder(r TreeRecorder) CategoryFinderOption {
	return func(f *CategoryFinder) {
		if r != nil {
			f.recorder = r
		}
	}
}

// WithLogger sets the finder logger
func WithLogger(log logrus.FieldLogger) CategoryFinderOption {
	return func(f *CategoryFinder) {
		if log != nil {
			f.log = log
		}
	}
}

// NewCategoryFinder creates a CategoryFinder
func NewCategoryFinder(client extension.Client[*content.Category], service *content.CategoryService, opts ...CategoryFinderOption) *CategoryFinder {
	f := &CategoryFinder{
		client:   client,
		service:  service,
		recorder: nopTreeRecorder{},
		log:      logrus.New(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// GetByName returns the named category
func (f *CategoryFinder) GetByName(ctx context.Context, name string) (vo CategoryVo, err error) {
	ctx, span := tracer.Start(ctx, "CategoryFinder.GetByName",
		trace.WithAttributes(attribute.String("category.name", name)))
	defer func() { endSpan(span, err) }()

	category, err := f.client.Fetch(ctx, name)
	if err != nil {
		return CategoryVo{}, err
	}
	return CategoryVoFrom(category), nil
}

// GetByNames returns the named categories in request order. Names that do
// not exist are skipped.
func (f *CategoryFinder) GetByNames(ctx context.Context, names []string) (vos []CategoryVo, err error) {
	ctx, span := tracer.Start(ctx, "CategoryFinder.GetByNames",
		trace.WithAttributes(attribute.Int("category.count", len(names))))
	defer func() { endSpan(span, err) }()

	if len(names) == 0 {
		return []CategoryVo{}, nil
	}

	found := make([]*content.Category, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, name := range names {
		g.Go(func() error {
			category, err := f.client.Fetch(gctx, name)
			if errors.Is(err, extension.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			found[i] = category
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	vos = make([]CategoryVo, 0, len(names))
	for _, category := range found {
		if category != nil {
			vos = append(vos, CategoryVoFrom(category))
		}
	}
	return vos, nil
}

// List returns one page of visible categories. A nil page defaults to 1 and a
// nil size to 10.
func (f *CategoryFinder) List(ctx context.Context, page, size *int) (result *extension.ListResult[CategoryVo], err error) {
	p, s := defaultPage, defaultSize
	if page != nil {
		p = *page
	}
	if size != nil {
		s = *size
	}

	ctx, span := tracer.Start(ctx, "CategoryFinder.List",
		trace.WithAttributes(attribute.Int("page", p), attribute.Int("size", s)))
	defer func() { endSpan(span, err) }()

	list, err := f.client.ListBy(ctx, visibleOptions(), extension.PageRequestOf(p, s, DefaultSort()))
	if err != nil {
		return nil, err
	}
	if list == nil {
		return extension.NewListResult[CategoryVo](p, s, 0, nil), nil
	}

	vos := make([]CategoryVo, len(list.Items))
	for i, category := range list.Items {
		vos[i] = CategoryVoFrom(category)
	}
	return extension.NewListResult(list.Page, list.Size, list.Total, vos), nil
}

// ListAll returns every visible category in default order
func (f *CategoryFinder) ListAll(ctx context.Context) (vos []CategoryVo, err error) {
	ctx, span := tracer.Start(ctx, "CategoryFinder.ListAll")
	defer func() { endSpan(span, err) }()

	categories, err := f.client.ListAll(ctx, visibleOptions(), DefaultSort())
	if err != nil {
		return nil, err
	}

	vos = make([]CategoryVo, len(categories))
	for i, category := range categories {
		vos[i] = CategoryVoFrom(category)
	}
	span.SetAttributes(attribute.Int("category.count", len(vos)))
	return vos, nil
}

// ListAsTree returns the category forest
func (f *CategoryFinder) ListAsTree(ctx context.Context) ([]*CategoryTreeVo, error) {
	return f.ListAsTreeByName(ctx, "")
}

// ListAsTreeByName returns the subtree rooted at name, or the whole forest
// when name is empty. An unknown name yields an empty slice.
func (f *CategoryFinder) ListAsTreeByName(ctx context.Context, name string) (tree []*CategoryTreeVo, err error) {
	ctx, span := tracer.Start(ctx, "CategoryFinder.ListAsTree",
		trace.WithAttributes(attribute.String("category.root", name)))
	defer func() { endSpan(span, err) }()

	vos, err := f.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tree = BuildTree(vos, name)
	f.recorder.ObserveTreeBuild(time.Since(start), len(vos))

	f.log.WithFields(logrus.Fields{
		"root":  name,
		"nodes": len(vos),
		"roots": len(tree),
	}).Debug("Built category tree")
	return tree, nil
}

// GetParentByName returns the parent of the named category
func (f *CategoryFinder) GetParentByName(ctx context.Context, name string) (vo CategoryVo, err error) {
	ctx, span := tracer.Start(ctx, "CategoryFinder.GetParentByName",
		trace.WithAttributes(attribute.String("category.name", name)))
	defer func() { endSpan(span, err) }()

	parent, err := f.service.GetParentByName(ctx, name)
	if err != nil {
		return CategoryVo{}, err
	}
	return CategoryVoFrom(parent), nil
}

// ListChildren returns the named category and all of its descendants,
// breadth-first. Hidden categories are included. An unknown name yields an
// empty slice.
func (f *CategoryFinder) ListChildren(ctx context.Context, name string) (vos []CategoryVo, err error) {
	ctx, span := tracer.Start(ctx, "CategoryFinder.ListChildren",
		trace.WithAttributes(attribute.String("category.name", name)))
	defer func() { endSpan(span, err) }()

	children, err := f.service.ListChildren(ctx, name)
	if err != nil {
		return nil, err
	}
	vos = make([]CategoryVo, len(children))
	for i, c := range children {
		vos[i] = CategoryVoFrom(c)
	}
	return vos, nil
}
