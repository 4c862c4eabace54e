package finder

import (
	"cmp"
	"slices"
)

// BuildTree links categories into a tree, sorts siblings and cascades post
// counts. With an empty name the forest of parentless nodes is returned;
// otherwise only the subtree rooted at name.
func BuildTree(categories []CategoryVo, name string) []*CategoryTreeVo {
	nodes := make([]*CategoryTreeVo, 0, len(categories))
	byName := make(map[string]*CategoryTreeVo, len(categories))
	for _, c := range categories {
		node := CategoryTreeVoFrom(c)
		if _, dup := byName[node.Metadata.Name]; dup {
			continue
		}
		nodes = append(nodes, node)
		byName[node.Metadata.Name] = node
	}

	// The first declaring parent wins; a declaration closing a cycle is ignored.
	for _, parent := range nodes {
		for _, childName := range parent.Spec.Children {
			child, ok := byName[childName]
			if !ok || child.ParentName != "" {
				continue
			}
			if createsCycle(byName, parent.Metadata.Name, childName) {
				continue
			}
			child.ParentName = parent.Metadata.Name
		}
	}

	tree := ListToTree(nodes, name)
	RecomputePostCount(tree)
	return tree
}

func createsCycle(byName map[string]*CategoryTreeVo, parent, child string) bool {
	for current := parent; current != ""; current = byName[current].ParentName {
		if current == child {
			return true
		}
	}
	return false
}

// ListToTree attaches every node to its parent's sorted Children and returns
// either the sorted roots (empty name) or the node called name.
func ListToTree(nodes []*CategoryTreeVo, name string) []*CategoryTreeVo {
	byParent := make(map[string][]*CategoryTreeVo)
	for _, node := range nodes {
		if node.ParentName != "" {
			byParent[node.ParentName] = append(byParent[node.ParentName], node)
		}
	}

	for _, node := range nodes {
		children := slices.Clone(byParent[node.Metadata.Name])
		if children == nil {
			children = []*CategoryTreeVo{}
		}
		slices.SortStableFunc(children, CompareTreeNodes)
		node.Children = children
	}

	result := make([]*CategoryTreeVo, 0)
	for _, node := range nodes {
		if (name == "" && node.ParentName == "") || (name != "" && node.Metadata.Name == name) {
			result = append(result, node)
		}
	}
	slices.SortStableFunc(result, CompareTreeNodes)
	return result
}

// CompareTreeNodes orders siblings by priority, creation time and name, all descending
func CompareTreeNodes(a, b *CategoryTreeVo) int {
	if c := cmp.Compare(b.Spec.GetPriority(), a.Spec.GetPriority()); c != 0 {
		return c
	}
	if c := b.Metadata.CreationTimestamp.Compare(a.Metadata.CreationTimestamp); c != 0 {
		return c
	}
	return cmp.Compare(b.Metadata.Name, a.Metadata.Name)
}

// RecomputePostCount cascades post counts bottom-up. A node's count becomes its
// own count plus its children's cascaded counts. A node that prevents parent
// cascade keeps its own count, and that own count is what its parent receives.
func RecomputePostCount(roots []*CategoryTreeVo) {
	virtualRoot := &CategoryTreeVo{Children: roots}
	cascade(virtualRoot)
}

func cascade(node *CategoryTreeVo) int {
	own := node.PostCount
	total := own
	for _, child := range node.Children {
		total += cascade(child)
	}

	if node.Spec.PreventParentPostCascadeQuery {
		return own
	}
	node.PostCount = total
	return total
}
