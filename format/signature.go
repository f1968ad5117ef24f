package format

import (
	"strings"

	"github.com/dhamidi/codedoc/doctree"
)

// Signature renders a one-line C/C++ declaration for n, as shown in hover
// text and summaries.
func Signature(n *doctree.Node) string {
	switch n.Kind {
	case doctree.KindFunction:
		var sb strings.Builder
		if rv := n.FirstChildOfKind(doctree.KindReturnvalue); rv != nil {
			sb.WriteString(rv.TypeString())
		} else {
			sb.WriteString("void")
		}
		if !strings.HasSuffix(sb.String(), "*") {
			sb.WriteByte(' ')
		}
		sb.WriteString(n.Name + "(")
		if args := arguments(n); args != "" {
			sb.WriteString(args)
		} else {
			sb.WriteString("void")
		}
		sb.WriteString(")")
		return sb.String()

	case doctree.KindVariable, doctree.KindArgument:
		return Declaration(n)

	case doctree.KindTypedef:
		return "typedef " + Declaration(n)

	case doctree.KindClass, doctree.KindStruct, doctree.KindUnion:
		if n.Parent != "" {
			return n.Kind.String() + " " + n.Name + " : " + n.Parent
		}
		return n.Kind.String() + " " + n.Name

	case doctree.KindEnumeration:
		return "enum " + n.Name
	}
	return n.Name
}
