package doctree

import "strings"

// Insert places node among the children of parent, keeping named siblings
// sorted byte-wise by name. A node without a name, or with a name starting
// with an underscore, is rejected. A sibling of the same kind and name is
// replaced; its scope carries over when node has none.
func Insert(parent, node *Node) bool {
	if parent == nil || node == nil || node.container == parent {
		return false
	}
	if node.Name == "" || strings.HasPrefix(node.Name, "_") {
		return false
	}

	if old := parent.Find(node.Kind, node.Name); old != nil {
		if node.Scope == "" {
			node.Scope = old.Scope
		}
		old.Detach()
	}

	for i, child := range parent.Children {
		if child.Name == "" {
			continue
		}
		if child.Name > node.Name {
			parent.insertAt(i, node)
			return true
		}
	}
	parent.AddChild(node)
	return true
}

// Merge inserts every named child of src into dst. Children of src are
// moved, not copied.
func Merge(dst, src *Node) {
	children := append([]*Node(nil), src.Children...)
	for _, child := range children {
		if child.Name == "" {
			continue
		}
		Insert(dst, child)
	}
}

// Sorted reports whether the named children of n, and of every descendant,
// are in strictly ascending order within each kind and non-decreasing
// overall. Function arguments keep declaration order and are not checked.
func Sorted(n *Node) bool {
	ok := true
	Walk(n, func(node *Node) bool {
		if node.Kind == KindFunction {
			return ok
		}
		last := ""
		seen := make(map[Kind]map[string]bool)
		for _, child := range node.Children {
			if child.Name == "" {
				continue
			}
			if child.Name < last || seen[child.Kind][child.Name] {
				ok = false
			}
			if seen[child.Kind] == nil {
				seen[child.Kind] = make(map[string]bool)
			}
			seen[child.Kind][child.Name] = true
			last = child.Name
		}
		return ok
	})
	return ok
}
