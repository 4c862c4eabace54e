// Package content defines the content extensions served by folio.
package content

import (
	"cmp"
	"strconv"

	"github.com/platinummonkey/folio/pkg/extension"
)

// APIVersion is the group/version of content extensions
const APIVersion = "content.folio.dev/v1alpha1"

// KindCategory is the kind name of Category
const KindCategory = "Category"

// Indexed Category fields
const (
	FieldPriority                      = "spec.priority"
	FieldSlug                          = "spec.slug"
	FieldChildren                      = "spec.children"
	FieldHideFromList                  = "spec.hideFromList"
	FieldPreventParentPostCascadeQuery = "spec.preventParentPostCascadeQuery"
	FieldDisplayName                   = "spec.displayName"
)

// DefaultSort orders categories by priority, creation time and name, all
// descending. Trees, lists and parent lookups all follow it.
func DefaultSort() extension.Sort {
	return extension.SortBy(
		extension.Desc(FieldPriority),
		extension.Desc(extension.FieldCreationTimestamp),
		extension.Desc(extension.FieldName),
	)
}

// Category is a node of the content taxonomy
type Category struct {
	APIVersion string             `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Kind       string             `json:"kind,omitempty" yaml:"kind,omitempty"`
	Metadata   extension.Metadata `json:"metadata" yaml:"metadata"`
	Spec       CategorySpec       `json:"spec" yaml:"spec"`
	Status     CategoryStatus     `json:"status" yaml:"status"`
}

// CategorySpec is the desired state of a category
type CategorySpec struct {
	DisplayName  string `json:"displayName" yaml:"displayName"`
	Slug         string `json:"slug" yaml:"slug"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Cover        string `json:"cover,omitempty" yaml:"cover,omitempty"`
	Template     string `json:"template,omitempty" yaml:"template,omitempty"`
	PostTemplate string `json:"postTemplate,omitempty" yaml:"postTemplate,omitempty"`
	// Priority orders siblings, higher first. Nil counts as 0.
	Priority *int `json:"priority,omitempty" yaml:"priority,omitempty"`
	// Children names the direct child categories
	Children     []string `json:"children,omitempty" yaml:"children,omitempty"`
	HideFromList bool     `json:"hideFromList,omitempty" yaml:"hideFromList,omitempty"`
	// PreventParentPostCascadeQuery stops this category's descendants from
	// contributing to ancestor post counts.
	PreventParentPostCascadeQuery bool `json:"preventParentPostCascadeQuery,omitempty" yaml:"preventParentPostCascadeQuery,omitempty"`
}

// CategoryStatus is the observed state of a category
type CategoryStatus struct {
	Permalink        string `json:"permalink,omitempty" yaml:"permalink,omitempty"`
	PostCount        *int   `json:"postCount,omitempty" yaml:"postCount,omitempty"`
	VisiblePostCount *int   `json:"visiblePostCount,omitempty" yaml:"visiblePostCount,omitempty"`
}

// GetMetadata implements extension.Object
func (c *Category) GetMetadata() *extension.Metadata {
	return &c.Metadata
}

// GetPriority returns the priority, 0 when unset
func (s *CategorySpec) GetPriority() int {
	if s.Priority == nil {
		return 0
	}
	return *s.Priority
}

// GetVisiblePostCount returns the visible post count, 0 when unset
func (s *CategoryStatus) GetVisiblePostCount() int {
	if s.VisiblePostCount == nil {
		return 0
	}
	return *s.VisiblePostCount
}

// NewCategory builds a Category with its type header set
func NewCategory(name string, spec CategorySpec) *Category {
	return &Category{
		APIVersion: APIVersion,
		Kind:       KindCategory,
		Metadata:   extension.Metadata{Name: name},
		Spec:       spec,
	}
}

// CategoryType describes the Category kind and its indexed fields
var CategoryType = &extension.Type[*Category]{
	Kind: KindCategory,
	New:  func() *Category { return &Category{} },
	Fields: []extension.Field[*Category]{
		{
			Name: FieldPriority,
			Values: func(c *Category) []string {
				return []string{strconv.Itoa(c.Spec.GetPriority())}
			},
			Compare: func(a, b *Category) int {
				return cmp.Compare(a.Spec.GetPriority(), b.Spec.GetPriority())
			},
		},
		{
			Name:   FieldSlug,
			Values: func(c *Category) []string { return []string{c.Spec.Slug} },
		},
		{
			Name:   FieldChildren,
			Values: func(c *Category) []string { return c.Spec.Children },
		},
		{
			Name: FieldHideFromList,
			Values: func(c *Category) []string {
				return []string{strconv.FormatBool(c.Spec.HideFromList)}
			},
		},
		{
			Name: FieldPreventParentPostCascadeQuery,
			Values: func(c *Category) []string {
				return []string{strconv.FormatBool(c.Spec.PreventParentPostCascadeQuery)}
			},
		},
		{
			Name:   FieldDisplayName,
			Values: func(c *Category) []string { return []string{c.Spec.DisplayName} },
		},
	},
}
