package xmldoc

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/codedoc/doctree"
)

// maxIndent caps the indentation of deeply nested elements.
const maxIndent = 40

// Save writes root as an XML document. Container elements put each child
// on its own line indented by two spaces per level; description and type
// elements are written inline.
func Save(w io.Writer, root *doctree.Node) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(xml.Header)

	fmt.Fprintf(bw, `<codedoc xmlns="%s" xmlns:xsi="%s" xsi:schemaLocation="%s">`+"\n",
		Namespace, xsiNamespace, SchemaLocation)
	for _, child := range root.Children {
		if err := writeNode(bw, child, 1); err != nil {
			return err
		}
	}
	bw.WriteString("</codedoc>\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write xml: %w", err)
	}
	return nil
}

func indent(depth int) string {
	return strings.Repeat(" ", min(2*depth, maxIndent))
}

func writeNode(w *bufio.Writer, n *doctree.Node, depth int) error {
	w.WriteString(indent(depth))
	w.WriteString("<" + n.Kind.String())
	for _, attr := range []struct{ key, val string }{
		{"name", n.Name},
		{"scope", n.Scope},
		{"direction", n.Direction},
		{"default", n.Default},
		{"parent", n.Parent},
	} {
		if attr.val == "" {
			continue
		}
		w.WriteString(" " + attr.key + `="`)
		if err := xml.EscapeText(w, []byte(attr.val)); err != nil {
			return err
		}
		w.WriteByte('"')
	}
	w.WriteByte('>')

	switch n.Kind {
	case doctree.KindDescription:
		if err := xml.EscapeText(w, []byte(n.Text)); err != nil {
			return err
		}
	case doctree.KindType:
		if err := xml.EscapeText(w, []byte(n.TokenString())); err != nil {
			return err
		}
	default:
		w.WriteByte('\n')
		for _, child := range n.Children {
			if err := writeNode(w, child, depth+1); err != nil {
				return err
			}
		}
		w.WriteString(indent(depth))
	}

	w.WriteString("</" + n.Kind.String() + ">\n")
	return nil
}
