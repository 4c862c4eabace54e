package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/folio/pkg/finder"
)

const categoriesYAML = `
apiVersion: content.folio.dev/v1alpha1
kind: Category
metadata:
  name: news
spec:
  displayName: News
  slug: news
  priority: 2
  children: [local, world]
status:
  visiblePostCount: 1
---
apiVersion: content.folio.dev/v1alpha1
kind: Category
metadata:
  name: local
spec:
  displayName: Local
  slug: local
status:
  visiblePostCount: 2
---
apiVersion: content.folio.dev/v1alpha1
kind: Category
metadata:
  name: world
spec:
  displayName: World
  slug: world
  preventParentPostCascadeQuery: true
status:
  visiblePostCount: 4
---
apiVersion: content.folio.dev/v1alpha1
kind: Category
metadata:
  name: tech
spec:
  displayName: Tech
  slug: tech
  priority: 1
`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func contentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "categories.yaml"), categoriesYAML)
	return dir
}

// useFileStore points the CLI at a read-only file store over dir
func useFileStore(t *testing.T, dir string) {
	t.Setenv("FOLIO_STORE", "file")
	t.Setenv("FOLIO_STORE_DIR", dir)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "folioctl", root.Use)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"categories", "plugins", "seed"})
}

func TestInvalidOutputFormat(t *testing.T) {
	useFileStore(t, contentDir(t))
	_, err := execute(t, "categories", "list", "-o", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("FOLIO_STORE", "file")
	_, err := execute(t, "categories", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store directory is required")
}

func TestCategoriesList(t *testing.T) {
	useFileStore(t, contentDir(t))

	out, err := execute(t, "categories", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "news")
	assert.Contains(t, out, "page 1 of 1 (4 total)")

	out, err = execute(t, "categories", "list", "--page", "2", "--size", "3", "-o", "json")
	require.NoError(t, err)
	var page struct {
		Page  int                 `json:"page"`
		Total int64               `json:"total"`
		Items []finder.CategoryVo `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, int64(4), page.Total)
	require.Len(t, page.Items, 1)

	_, err = execute(t, "categories", "list", "--size", "0")
	assert.Error(t, err)
}

func TestCategoriesGet(t *testing.T) {
	useFileStore(t, contentDir(t))

	out, err := execute(t, "categories", "get", "tech", "-o", "json")
	require.NoError(t, err)
	var vo finder.CategoryVo
	require.NoError(t, json.Unmarshal([]byte(out), &vo))
	assert.Equal(t, "Tech", vo.Spec.DisplayName)

	out, err = execute(t, "categories", "get", "world", "missing", "news", "-o", "json")
	require.NoError(t, err)
	var vos []finder.CategoryVo
	require.NoError(t, json.Unmarshal([]byte(out), &vos))
	require.Len(t, vos, 2)
	assert.Equal(t, "world", vos[0].Metadata.Name)
	assert.Equal(t, "news", vos[1].Metadata.Name)

	_, err = execute(t, "categories", "get", "missing")
	assert.Error(t, err)
}

func TestCategoriesTree(t *testing.T) {
	useFileStore(t, contentDir(t))

	out, err := execute(t, "categories", "tree", "-o", "json")
	require.NoError(t, err)
	var tree []*finder.CategoryTreeVo
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	require.Len(t, tree, 2)
	assert.Equal(t, "news", tree[0].Metadata.Name)
	assert.Equal(t, 7, tree[0].PostCount)

	out, err = execute(t, "categories", "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "news")
	assert.Contains(t, out, "local")
	assert.Contains(t, out, "(7)")

	out, err = execute(t, "categories", "tree", "missing")
	require.NoError(t, err)
	assert.Contains(t, out, "no categories")
}

func TestCategoriesParent(t *testing.T) {
	useFileStore(t, contentDir(t))

	out, err := execute(t, "categories", "parent", "local")
	require.NoError(t, err)
	assert.Equal(t, "news\n", out)

	_, err = execute(t, "categories", "parent", "news")
	assert.Error(t, err)
}

func TestCategoriesChildren(t *testing.T) {
	useFileStore(t, contentDir(t))

	out, err := execute(t, "categories", "children", "news", "-o", "json")
	require.NoError(t, err)
	var vos []finder.CategoryVo
	require.NoError(t, json.Unmarshal([]byte(out), &vos))
	require.Len(t, vos, 3)
	assert.Equal(t, "news", vos[0].Metadata.Name)
	assert.Equal(t, "local", vos[1].Metadata.Name)
	assert.Equal(t, "world", vos[2].Metadata.Name)

	out, err = execute(t, "categories", "children", "missing")
	require.NoError(t, err)
	assert.Contains(t, out, "no categories")
}

func TestCategoriesListHugePage(t *testing.T) {
	useFileStore(t, contentDir(t))

	out, err := execute(t, "categories", "list", "--page", "9223372036854775807", "--size", "2", "-o", "json")
	require.NoError(t, err)
	var page struct {
		Total int64               `json:"total"`
		Items []finder.CategoryVo `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, int64(4), page.Total)
	assert.Empty(t, page.Items)
}
