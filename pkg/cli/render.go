package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/platinummonkey/folio/pkg/finder"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	countStyle  = lipgloss.NewStyle().Faint(true)
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func categoryTable(vos []finder.CategoryVo) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "DISPLAY NAME", "PRIORITY", "POSTS", "CHILDREN").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, vo := range vos {
		t.Row(
			vo.Metadata.Name,
			vo.Spec.DisplayName,
			strconv.Itoa(vo.Spec.GetPriority()),
			strconv.Itoa(vo.PostCount),
			strconv.Itoa(len(vo.Spec.Children)),
		)
	}
	return t.String()
}

func categoryTree(nodes []*finder.CategoryTreeVo) string {
	root := tree.New()
	for _, node := range nodes {
		root.Child(treeNode(node))
	}
	return root.String()
}

func treeNode(node *finder.CategoryTreeVo) *tree.Tree {
	label := fmt.Sprintf("%s %s", node.Metadata.Name, countStyle.Render(fmt.Sprintf("(%d)", node.PostCount)))
	t := tree.Root(label)
	for _, child := range node.Children {
		t.Child(treeNode(child))
	}
	return t
}
