package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/codedoc/doctree"
)

// LineEncoder prints one tab-separated line per declaration, with names
// qualified by their enclosing aggregate or enumeration:
//
//	function  NAME  RETURN  ARGS  SCOPE  INFO
//	variable  NAME  TYPE  SCOPE  INFO
//	typedef   NAME  TYPE  INFO
//	constant  NAME  INFO
//	class/struct/union/enumeration  NAME  PARENT  INFO
//
// Empty columns are written as "-".
type LineEncoder struct {
	w    io.Writer
	tree *doctree.Node
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(tree *doctree.Node) error {
	e.tree = tree
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	e.writeChildren(&sb, e.tree, "")
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeChildren(sb *strings.Builder, n *doctree.Node, prefix string) {
	for _, child := range n.Children {
		if child.Name == "" {
			continue
		}
		name := prefix + child.Name
		info := doctree.Info(child)

		switch child.Kind {
		case doctree.KindFunction:
			fmt.Fprintf(sb, "function\t%s\t%s\t%s\t%s\t%s\n",
				name, dash(returnType(child)), dash(arguments(child)), dash(child.Scope), dash(info))
		case doctree.KindVariable:
			fmt.Fprintf(sb, "variable\t%s\t%s\t%s\t%s\n",
				name, dash(child.TypeString()), dash(child.Scope), dash(info))
		case doctree.KindTypedef:
			fmt.Fprintf(sb, "typedef\t%s\t%s\t%s\n", name, dash(child.TypeString()), dash(info))
		case doctree.KindConstant:
			fmt.Fprintf(sb, "constant\t%s\t%s\n", name, dash(info))
		case doctree.KindClass, doctree.KindStruct, doctree.KindUnion,
			doctree.KindEnumeration, doctree.KindNamespace:
			fmt.Fprintf(sb, "%s\t%s\t%s\t%s\n", child.Kind, name, dash(child.Parent), dash(info))
			e.writeChildren(sb, child, name+"::")
		}
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func returnType(fn *doctree.Node) string {
	if rv := fn.FirstChildOfKind(doctree.KindReturnvalue); rv != nil {
		return rv.TypeString()
	}
	return "void"
}

// arguments renders the argument list as it would appear in a prototype.
func arguments(fn *doctree.Node) string {
	var parts []string
	for _, arg := range fn.ChildrenOfKind(doctree.KindArgument) {
		parts = append(parts, Declaration(arg))
	}
	return strings.Join(parts, ", ")
}

// Declaration renders an argument or variable as "type name [= default]".
func Declaration(n *doctree.Node) string {
	var sb strings.Builder
	typ := n.TypeString()
	sb.WriteString(typ)
	if typ != "" && n.Name != "" && !strings.HasSuffix(typ, "*") && !strings.HasSuffix(typ, "&") {
		sb.WriteByte(' ')
	}
	sb.WriteString(n.Name)
	if n.Default != "" {
		sb.WriteString(" = " + n.Default)
	}
	return sb.String()
}
