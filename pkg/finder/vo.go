package finder

import (
	"github.com/platinummonkey/folio/pkg/content"
	"github.com/platinummonkey/folio/pkg/extension"
)

// CategoryVo is the view of a category handed to templates and API clients
type CategoryVo struct {
	Metadata  extension.Metadata     `json:"metadata"`
	Spec      content.CategorySpec   `json:"spec"`
	Status    content.CategoryStatus `json:"status"`
	PostCount int                    `json:"postCount"`
}

// CategoryVoFrom builds a CategoryVo. The post count is the visible post count.
func CategoryVoFrom(c *content.Category) CategoryVo {
	return CategoryVo{
		Metadata:  c.Metadata,
		Spec:      c.Spec,
		Status:    c.Status,
		PostCount: c.Status.GetVisiblePostCount(),
	}
}

// CategoryTreeVo is a category node of the category tree
type CategoryTreeVo struct {
	Metadata   extension.Metadata     `json:"metadata"`
	Spec       content.CategorySpec   `json:"spec"`
	Status     content.CategoryStatus `json:"status"`
	ParentName string                 `json:"parentName,omitempty"`
	Children   []*CategoryTreeVo      `json:"children"`
	// PostCount includes the cascaded counts of descendants
	PostCount int `json:"postCount"`
}

// CategoryTreeVoFrom builds a detached tree node from a CategoryVo
func CategoryTreeVoFrom(vo CategoryVo) *CategoryTreeVo {
	return &CategoryTreeVo{
		Metadata:  vo.Metadata,
		Spec:      vo.Spec,
		Status:    vo.Status,
		Children:  []*CategoryTreeVo{},
		PostCount: vo.PostCount,
	}
}
