package doctree

import "github.com/dhamidi/codedoc/comment"

// Public reports whether n is documented for format f: it has a
// Description whose text is neither marked @private@ nor excluded for f.
func Public(n *Node, f comment.Format) bool {
	d := n.Description()
	if d == nil {
		return false
	}
	return !comment.Private(d.Text) && !comment.Excluded(d.Text, f)
}

// FindPublic returns the public children of n with the given kind, in
// tree order. A non-empty name restricts the result to that name.
func FindPublic(n *Node, kind Kind, name string, f comment.Format) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind != kind || (name != "" && child.Name != name) {
			continue
		}
		if Public(child, f) {
			result = append(result, child)
		}
	}
	return result
}

// Info returns the DEPRECATED or @since annotation of n's description.
func Info(n *Node) string {
	return comment.Info(n.DescriptionText())
}
