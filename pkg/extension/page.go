package extension

import (
	"encoding/json"
	"slices"
	"strings"
)

// Direction is a sort direction
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Order sorts by one field
type Order struct {
	Field     string
	Direction Direction
}

// Asc orders field ascending
func Asc(field string) Order {
	return Order{Field: field, Direction: Ascending}
}

// Desc orders field descending
func Desc(field string) Order {
	return Order{Field: field, Direction: Descending}
}

// Sort is an ordered list of orders; later orders break ties of earlier ones
type Sort []Order

// SortBy builds a Sort
func SortBy(orders ...Order) Sort {
	return Sort(orders)
}

func (s Sort) String() string {
	parts := make([]string, len(s))
	for i, o := range s {
		dir := "asc"
		if o.Direction == Descending {
			dir = "desc"
		}
		parts[i] = o.Field + "," + dir
	}
	return strings.Join(parts, ";")
}

// PageRequest selects one page of a list. Page is 1-based; Size <= 0 means unpaged.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// PageRequestOf builds a PageRequest, clamping page to at least 1
func PageRequestOf(page, size int, sort Sort) PageRequest {
	if page < 1 {
		page = 1
	}
	return PageRequest{Page: page, Size: size, Sort: sort}
}

// Unpaged reports whether the request returns every item
func (p PageRequest) Unpaged() bool {
	return p.Size <= 0
}

// ListResult is one page of items plus paging information
type ListResult[T any] struct {
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}

// NewListResult builds a ListResult; a nil items slice is replaced with an empty one
func NewListResult[T any](page, size int, total int64, items []T) *ListResult[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{Page: page, Size: size, Total: total, Items: items}
}

// TotalPages returns the number of pages
func (r *ListResult[T]) TotalPages() int64 {
	if r.Size <= 0 {
		if r.Total == 0 {
			return 0
		}
		return 1
	}
	size := int64(r.Size)
	pages := r.Total / size
	if r.Total%size != 0 {
		pages++
	}
	return pages
}

// HasNext reports whether a page follows this one
func (r *ListResult[T]) HasNext() bool {
	return int64(r.Page) < r.TotalPages()
}

// HasPrevious reports whether a page precedes this one
func (r *ListResult[T]) HasPrevious() bool {
	return r.Page > 1
}

// IsFirst reports whether this is the first page
func (r *ListResult[T]) IsFirst() bool {
	return !r.HasPrevious()
}

// IsLast reports whether this is the last page
func (r *ListResult[T]) IsLast() bool {
	return !r.HasNext()
}

// MarshalJSON includes the derived paging flags
func (r ListResult[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Page        int   `json:"page"`
		Size        int   `json:"size"`
		Total       int64 `json:"total"`
		Items       []T   `json:"items"`
		First       bool  `json:"first"`
		Last        bool  `json:"last"`
		HasNext     bool  `json:"hasNext"`
		HasPrevious bool  `json:"hasPrevious"`
		TotalPages  int64 `json:"totalPages"`
	}{
		Page:        r.Page,
		Size:        r.Size,
		Total:       r.Total,
		Items:       r.Items,
		First:       r.IsFirst(),
		Last:        r.IsLast(),
		HasNext:     r.HasNext(),
		HasPrevious: r.HasPrevious(),
		TotalPages:  r.TotalPages(),
	})
}

// Apply filters items by opts and orders them by sort. Ties keep input order.
func Apply[T Object](items []T, typ *Type[T], opts ListOptions, sort Sort) ([]T, error) {
	if err := typ.Validate(opts, sort); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if typ.Matches(item, opts) {
			out = append(out, item)
		}
	}

	if len(sort) > 0 {
		cmp, err := typ.Comparator(sort)
		if err != nil {
			return nil, err
		}
		slices.SortStableFunc(out, cmp)
	}
	return out, nil
}

// Paginate cuts one page out of already filtered and ordered items
func Paginate[T any](items []T, page PageRequest) *ListResult[T] {
	total := int64(len(items))
	if page.Unpaged() {
		return NewListResult(page.Page, page.Size, total, items)
	}

	p := page.Page
	if p < 1 {
		p = 1
	}
	// Compare page indexes rather than offsets so huge pages cannot overflow.
	if len(items) == 0 || p-1 > (len(items)-1)/page.Size {
		return NewListResult(p, page.Size, total, []T{})
	}
	start := (p - 1) * page.Size
	end := start + min(page.Size, len(items)-start)
	return NewListResult(p, page.Size, total, items[start:end])
}
