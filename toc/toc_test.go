package toc

import (
	"bytes"
	"testing"

	"github.com/dhamidi/codedoc/comment"
	"github.com/dhamidi/codedoc/doctree"
	"github.com/dhamidi/codedoc/markdown"
)

func documented(kind doctree.Kind, name, desc string) *doctree.Node {
	n := doctree.New(kind, name)
	if desc != "" {
		n.SetDescription(desc)
	}
	return n
}

func sampleTree() *doctree.Node {
	root := doctree.NewRoot()
	for _, n := range []*doctree.Node{
		documented(doctree.KindFunction, "mxmlLoad", "Load a file."),
		documented(doctree.KindFunction, "mxmlAdd", "Add a node."),
		documented(doctree.KindFunction, "mxmlHidden", ""),
		documented(doctree.KindFunction, "mxmlManOnly", "Man only. @exclude html@"),
		documented(doctree.KindTypedef, "mxml_node_t", "A node."),
		documented(doctree.KindEnumeration, "mxml_type_e", "Node types."),
		documented(doctree.KindClass, "Widget", "A widget."),
	} {
		doctree.Insert(root, n)
	}
	return root
}

func TestBuild(t *testing.T) {
	body, err := markdown.Load([]byte("# Intro\n\n## Setup\n\n### Details\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := Build(sampleTree(), body, comment.FormatHTML)
	want := []Entry{
		{1, "intro", "Intro"},
		{2, "setup", "Setup"},
		{1, "CLASSES", "Classes"},
		{2, "Widget", "Widget"},
		{1, "FUNCTIONS", "Functions"},
		{2, "mxmlAdd", "mxmlAdd"},
		{2, "mxmlLoad", "mxmlLoad"},
		{1, "TYPES", "Data Types"},
		{2, "mxml_node_t", "mxml_node_t"},
		{1, "ENUMERATIONS", "Enumerations"},
		{2, "mxml_type_e", "mxml_type_e"},
	}

	if len(got) != len(want) {
		t.Fatalf("Build() returned %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuildPerFormat(t *testing.T) {
	got := Build(sampleTree(), nil, comment.FormatMan)

	var functions []string
	for _, e := range got {
		if e.Level == 2 && (e.Title == "mxmlAdd" || e.Title == "mxmlLoad" || e.Title == "mxmlManOnly") {
			functions = append(functions, e.Title)
		}
	}
	if len(functions) != 3 {
		t.Errorf("man functions = %v, want mxmlAdd, mxmlLoad and mxmlManOnly", functions)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Entry{{1, "FUNCTIONS", "Functions"}, {2, "mxmlAdd", "mxmlAdd"}})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := "Functions (#FUNCTIONS)\n  mxmlAdd (#mxmlAdd)\n"
	if buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}
}
