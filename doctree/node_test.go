package doctree

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"github.com/dhamidi/codedoc/comment"
)

func names(n *Node) []string {
	var out []string
	for _, child := range n.Children {
		if child.Name != "" {
			out = append(out, child.Kind.String()+":"+child.Name)
		}
	}
	return out
}

func TestInsertSorted(t *testing.T) {
	root := NewRoot()
	for _, name := range []string{"mxmlLoad", "mxmlAdd", "mxml_node_t", "Zeta", "mxmlDelete"} {
		Insert(root, New(KindFunction, name))
	}

	got := strings.Join(names(root), ",")
	want := "function:Zeta,function:mxmlAdd,function:mxmlDelete,function:mxmlLoad,function:mxml_node_t"
	if got != want {
		t.Errorf("children = %q, want %q", got, want)
	}
}

func TestInsertRejects(t *testing.T) {
	tests := []struct {
		name string
		node *Node
	}{
		{"empty name", New(KindFunction, "")},
		{"underscore", New(KindStruct, "_foo_private_s")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewRoot()
			if Insert(root, tt.node) {
				t.Errorf("Insert(%q) = true, want false", tt.node.Name)
			}
			if len(root.Children) != 0 {
				t.Errorf("root has %d children, want 0", len(root.Children))
			}
		})
	}
}

func TestInsertReplacesAndKeepsScope(t *testing.T) {
	class := New(KindClass, "data2_c")

	first := New(KindFunction, "data2_c")
	first.Scope = "public"
	Insert(class, first)

	second := New(KindFunction, "data2_c")
	second.SetDescription("Create a data2_c class.")
	Insert(class, second)

	if len(class.Children) != 1 {
		t.Fatalf("class has %d children, want 1", len(class.Children))
	}
	got := class.Children[0]
	if got != second {
		t.Errorf("kept the old node, want the new one")
	}
	if got.Scope != "public" {
		t.Errorf("Scope = %q, want %q", got.Scope, "public")
	}
	if first.Container() != nil {
		t.Errorf("replaced node still attached")
	}
}

func TestInsertSameNameDifferentKind(t *testing.T) {
	root := NewRoot()
	Insert(root, New(KindStruct, "data_s"))
	Insert(root, New(KindTypedef, "data_s"))

	if len(root.Children) != 2 {
		t.Errorf("root has %d children, want 2", len(root.Children))
	}
}

func TestInsertSkipsUnnamedSiblings(t *testing.T) {
	enum := New(KindEnumeration, "list_e")
	enum.SetDescription("List enumeration type")
	Insert(enum, New(KindConstant, "LIST_TWO"))
	Insert(enum, New(KindConstant, "LIST_BLUE"))

	if enum.Children[0].Kind != KindDescription {
		t.Errorf("first child = %v, want description", enum.Children[0].Kind)
	}
	got := strings.Join(names(enum), ",")
	if got != "constant:LIST_BLUE,constant:LIST_TWO" {
		t.Errorf("constants = %q", got)
	}
}

func TestInsertRandomOrderStaysSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	kinds := []Kind{KindFunction, KindStruct, KindTypedef, KindVariable}
	root := NewRoot()
	for i := 0; i < 500; i++ {
		name := string(rune('a'+rng.Intn(26))) + string(rune('a'+rng.Intn(26)))
		Insert(root, New(kinds[rng.Intn(len(kinds))], name))
	}
	if !Sorted(root) {
		t.Errorf("tree not sorted after random inserts:\n%s", root)
	}
}

func TestMerge(t *testing.T) {
	dst := NewRoot()
	Insert(dst, New(KindFunction, "b"))
	src := NewRoot()
	Insert(src, New(KindFunction, "a"))
	Insert(src, New(KindFunction, "b"))
	Insert(src, New(KindVariable, "c"))

	Merge(dst, src)

	got := strings.Join(names(dst), ",")
	if got != "function:a,function:b,variable:c" {
		t.Errorf("merged = %q", got)
	}
	if len(src.Children) != 0 {
		t.Errorf("src still has %d children", len(src.Children))
	}
}

func TestSortedIgnoresArgumentOrder(t *testing.T) {
	root := NewRoot()
	fn := New(KindFunction, "f")
	for _, name := range []string{"one", "two", "three"} {
		arg := New(KindArgument, name)
		arg.SetType(NewType(Token{Text: "int"}))
		fn.AddChild(arg)
	}
	Insert(root, fn)

	if !Sorted(root) {
		t.Errorf("Sorted() = false for arguments in declaration order:\n%s", root)
	}

	Insert(root, New(KindVariable, "b"))
	root.AddChild(New(KindVariable, "a"))
	if Sorted(root) {
		t.Errorf("Sorted() = true for unsorted top-level names")
	}
}

func TestClone(t *testing.T) {
	root := NewRoot()
	fn := New(KindFunction, "f")
	fn.SetDescription("Do f.")
	arg := New(KindArgument, "x")
	arg.SetType(NewType(Token{Text: "int"}))
	fn.AddChild(arg)
	Insert(root, fn)

	c := root.Clone()
	if c.String() != root.String() {
		t.Errorf("clone = %q, want %q", c.String(), root.String())
	}

	cfn := c.Find(KindFunction, "f")
	if cfn == fn || cfn.Container() != c {
		t.Fatalf("clone shares nodes with the original")
	}
	cfn.SetDescription("Changed.")
	cfn.ChildrenOfKind(KindArgument)[0].Type().Tokens[0].Text = "long"
	if fn.DescriptionText() != "Do f." {
		t.Errorf("original description = %q after editing the clone", fn.DescriptionText())
	}
	if arg.TypeString() != "int" {
		t.Errorf("original type = %q after editing the clone", arg.TypeString())
	}
}

func TestSetType(t *testing.T) {
	td := New(KindTypedef, "data_t")
	td.SetDescription("Data structure")
	td.SetType(NewType(Token{Text: "struct"}, Token{Text: "data_s", Space: true}))

	if td.Children[0].Kind != KindType {
		t.Errorf("first child = %v, want type", td.Children[0].Kind)
	}
	if got := td.TypeString(); got != "struct data_s" {
		t.Errorf("TypeString = %q, want %q", got, "struct data_s")
	}

	td.SetType(NewType(Token{Text: "int"}))
	if len(td.ChildrenOfKind(KindType)) != 1 {
		t.Errorf("SetType left %d type children", len(td.ChildrenOfKind(KindType)))
	}
}

func TestJoinTokens(t *testing.T) {
	tokens := []Token{
		{Text: "const", Space: false},
		{Text: "char", Space: true},
		{Text: "*", Space: true},
	}
	if got := JoinTokens(tokens); got != "const char *" {
		t.Errorf("JoinTokens = %q, want %q", got, "const char *")
	}
}

func TestFindPublic(t *testing.T) {
	root := NewRoot()
	add := func(kind Kind, name, desc string, documented bool) {
		n := New(kind, name)
		if documented {
			n.SetDescription(desc)
		}
		Insert(root, n)
	}
	add(KindFunction, "documented", "Does things.", true)
	add(KindFunction, "hidden", "Secret @private@", true)
	add(KindFunction, "man_only", "Not in man @exclude man@", true)
	add(KindFunction, "undocumented", "", false)
	add(KindFunction, "empty", "", true)
	add(KindStruct, "documented", "A struct", true)

	tests := []struct {
		format comment.Format
		want   string
	}{
		{comment.FormatHTML, "documented,empty,man_only"},
		{comment.FormatMan, "documented,empty"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			var got []string
			for _, n := range FindPublic(root, KindFunction, "", tt.format) {
				got = append(got, n.Name)
			}
			if strings.Join(got, ",") != tt.want {
				t.Errorf("FindPublic = %q, want %q", strings.Join(got, ","), tt.want)
			}
		})
	}

	if got := FindPublic(root, KindStruct, "documented", comment.FormatHTML); len(got) != 1 {
		t.Errorf("FindPublic by name returned %d nodes, want 1", len(got))
	}
}

func TestInfo(t *testing.T) {
	n := New(KindFunction, "f")
	n.SetDescription("Old. @deprecated@")
	if got := Info(n); got != "DEPRECATED" {
		t.Errorf("Info = %q, want DEPRECATED", got)
	}
}

func TestString(t *testing.T) {
	fn := New(KindFunction, "float_function")
	rv := New(KindReturnvalue, "")
	rv.AddChild(NewType(Token{Text: "float"}))
	rv.SetDescription("Real number")
	fn.AddChild(rv)
	arg := New(KindArgument, "one")
	arg.Direction = "I"
	arg.AddChild(NewType(Token{Text: "int"}))
	fn.AddChild(arg)
	fn.SetDescription("Do foo with bar.")

	want := `function float_function
  returnvalue
    type float
    description Real number
  argument one direction=I
    type int
  description Do foo with bar.
`
	if got := fn.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestMarshalJSON(t *testing.T) {
	v := New(KindVariable, "foo_static")
	v.AddChild(NewType(Token{Text: "void"}, Token{Text: "*", Space: true}))
	v.SetDescription("Private data")

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"kind":"variable","name":"foo_static","description":"Private data","type":"void *"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}
