// Package doctree holds the documentation tree built from scanned sources.
//
// A tree starts at a KindRoot node. Named children are kept sorted by name
// (see Insert); Description and Type nodes are unnamed leaves that carry
// comment text and declaration tokens respectively.
package doctree

import "strings"

type Kind int

const (
	KindRoot Kind = iota
	KindNamespace
	KindClass
	KindStruct
	KindUnion
	KindTypedef
	KindEnumeration
	KindConstant
	KindFunction
	KindReturnvalue
	KindArgument
	KindVariable
	KindDescription
	KindType
)

// kindElements maps each kind to its XML element name.
var kindElements = map[Kind]string{
	KindRoot:        "codedoc",
	KindNamespace:   "namespace",
	KindClass:       "class",
	KindStruct:      "struct",
	KindUnion:       "union",
	KindTypedef:     "typedef",
	KindEnumeration: "enumeration",
	KindConstant:    "constant",
	KindFunction:    "function",
	KindReturnvalue: "returnvalue",
	KindArgument:    "argument",
	KindVariable:    "variable",
	KindDescription: "description",
	KindType:        "type",
}

func (k Kind) String() string {
	if name, ok := kindElements[k]; ok {
		return name
	}
	return "Unknown"
}

// KindOf returns the kind for an element name.
func KindOf(element string) (Kind, bool) {
	for k, name := range kindElements {
		if name == element {
			return k, true
		}
	}
	return 0, false
}

// IsAggregate reports whether k is a class, struct or union.
func (k Kind) IsAggregate() bool {
	return k == KindClass || k == KindStruct || k == KindUnion
}

// Token is one element of a declaration's type, with a flag recording
// whether whitespace preceded it in the source.
type Token struct {
	Text  string
	Space bool
}

type Node struct {
	Kind      Kind
	Name      string
	Scope     string
	Direction string
	Default   string
	Parent    string

	// Text is the comment text of a KindDescription node.
	Text string
	// Tokens are the tokens of a KindType node.
	Tokens []Token

	Children  []*Node
	container *Node
}

func New(kind Kind, name string) *Node {
	return &Node{Kind: kind, Name: name}
}

func NewRoot() *Node {
	return &Node{Kind: KindRoot}
}

func NewDescription(text string) *Node {
	return &Node{Kind: KindDescription, Text: text}
}

func NewType(tokens ...Token) *Node {
	return &Node{Kind: KindType, Tokens: tokens}
}

// Container returns the node n is attached to, or nil.
func (n *Node) Container() *Node {
	return n.container
}

func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Detach()
	child.container = n
	n.Children = append(n.Children, child)
}

func (n *Node) insertAt(i int, child *Node) {
	child.Detach()
	child.container = n
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
}

// Clone returns a deep copy of n that is not attached to any container.
func (n *Node) Clone() *Node {
	c := *n
	c.container = nil
	c.Tokens = append([]Token(nil), n.Tokens...)
	c.Children = nil
	for _, child := range n.Children {
		c.AddChild(child.Clone())
	}
	return &c
}

// Detach removes n from its container.
func (n *Node) Detach() {
	c := n.container
	if c == nil {
		return
	}
	for i, child := range c.Children {
		if child == n {
			c.Children = append(c.Children[:i], c.Children[i+1:]...)
			break
		}
	}
	n.container = nil
}

func (n *Node) FirstChildOfKind(kind Kind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Find returns the direct child with the given kind and name.
func (n *Node) Find(kind Kind, name string) *Node {
	for _, child := range n.Children {
		if child.Kind == kind && child.Name == name {
			return child
		}
	}
	return nil
}

func (n *Node) Description() *Node {
	return n.FirstChildOfKind(KindDescription)
}

// DescriptionText returns the text of the first Description child.
func (n *Node) DescriptionText() string {
	if d := n.Description(); d != nil {
		return d.Text
	}
	return ""
}

// SetDescription replaces the text of the Description child, adding one
// after the existing children when there is none.
func (n *Node) SetDescription(text string) {
	if d := n.Description(); d != nil {
		d.Text = text
		return
	}
	n.AddChild(NewDescription(text))
}

func (n *Node) Type() *Node {
	return n.FirstChildOfKind(KindType)
}

// SetType installs t as the first child, replacing any existing Type.
func (n *Node) SetType(t *Node) {
	if old := n.Type(); old != nil {
		old.Detach()
	}
	if t != nil {
		n.insertAt(0, t)
	}
}

// TypeString renders the Type child as source text.
func (n *Node) TypeString() string {
	if t := n.Type(); t != nil {
		return t.TokenString()
	}
	return ""
}

// TokenString joins the tokens of a Type node, separating tokens that
// were preceded by whitespace with a single space.
func (n *Node) TokenString() string {
	return JoinTokens(n.Tokens)
}

func JoinTokens(tokens []Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if tok.Space && i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// Walk calls fn for n and its descendants in document order. Returning
// false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if n.Name != "" {
		sb.WriteString(" " + n.Name)
	}
	for _, attr := range []struct{ key, val string }{
		{"scope", n.Scope},
		{"direction", n.Direction},
		{"default", n.Default},
		{"parent", n.Parent},
	} {
		if attr.val != "" {
			sb.WriteString(" " + attr.key + "=" + attr.val)
		}
	}
	switch n.Kind {
	case KindDescription:
		if n.Text != "" {
			sb.WriteString(" " + strings.ReplaceAll(n.Text, "\n", `\n`))
		}
	case KindType:
		sb.WriteString(" " + n.TokenString())
	}
	sb.WriteByte('\n')

	for _, child := range n.Children {
		child.writeIndent(sb, indent+1)
	}
}
