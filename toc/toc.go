// Package toc builds the table of contents shown at the top of generated
// documentation: the top-level headings of the body document followed by
// one section per kind of public symbol.
package toc

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/codedoc/comment"
	"github.com/dhamidi/codedoc/doctree"
	"github.com/dhamidi/codedoc/markdown"
)

type Entry struct {
	Level  int
	Anchor string
	Title  string
}

// section is one symbol section of the table of contents.
type section struct {
	kind   doctree.Kind
	anchor string
	title  string
}

var sections = []section{
	{doctree.KindClass, "CLASSES", "Classes"},
	{doctree.KindFunction, "FUNCTIONS", "Functions"},
	{doctree.KindTypedef, "TYPES", "Data Types"},
	{doctree.KindStruct, "STRUCTURES", "Structures"},
	{doctree.KindUnion, "UNIONS", "Unions"},
	{doctree.KindVariable, "VARIABLES", "Variables"},
	{doctree.KindEnumeration, "ENUMERATIONS", "Enumerations"},
}

// Build returns the entries for tree and an optional body document. Body
// headings of level 1 and 2 come first; each symbol section is present
// only when it has at least one public entry for format f.
func Build(tree *doctree.Node, body *markdown.Document, f comment.Format) []Entry {
	var entries []Entry
	for _, h := range body.Headings() {
		if h.Level > 2 {
			continue
		}
		entries = append(entries, Entry{Level: h.Level, Anchor: h.Anchor, Title: h.Text})
	}

	for _, s := range sections {
		nodes := doctree.FindPublic(tree, s.kind, "", f)
		if len(nodes) == 0 {
			continue
		}
		entries = append(entries, Entry{Level: 1, Anchor: s.anchor, Title: s.title})
		for _, n := range nodes {
			entries = append(entries, Entry{Level: 2, Anchor: n.Name, Title: n.Name})
		}
	}
	return entries
}

// Write prints entries as an indented list, one per line.
func Write(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		indent := strings.Repeat("  ", max(e.Level-1, 0))
		if _, err := fmt.Fprintf(w, "%s%s (#%s)\n", indent, e.Title, e.Anchor); err != nil {
			return err
		}
	}
	return nil
}
