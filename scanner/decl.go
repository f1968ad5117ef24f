package scanner

import (
	"strings"

	"github.com/dhamidi/codedoc/comment"
	"github.com/dhamidi/codedoc/doctree"
)

func (f *frame) atFileScope() bool {
	return f.container.Kind == doctree.KindRoot
}

// word decides what a finished identifier means.
func (f *frame) word(str string, ch rune) {
	if f.braces > 0 {
		switch {
		case f.enumeration != nil && !f.enumValue && !isDigitStart(str):
			c := doctree.New(doctree.KindConstant, str)
			doctree.Insert(f.enumeration, c)
			f.constant = c
		case f.typ != nil:
			f.typ = nil
		}
		return
	}

	if f.typ.empty() {
		if f.container.Kind == doctree.KindClass {
			switch str {
			case "public", "public:", "private", "private:", "protected", "protected:":
				f.scope = strings.TrimSuffix(str, ":")
				return
			}
		}
		if str == "namespace" {
			f.nsPending = true
			f.nsName = ""
			return
		}
		if f.nsPending && f.nsName == "" {
			f.nsName = str
			return
		}
	}

	if f.typ == nil {
		f.typ = &tokens{}
	}
	tok := doctree.Token{Text: str, Space: f.typ.spaceBeforeWord()}

	switch {
	case f.function == nil && ch == '(' && f.typ.index("=") < 0:
		f.startFunction(str)

	case f.function != nil && !f.argsDone && ((ch == ')' && f.parens == 1) || ch == ','):
		if str != "void" {
			f.typ.list = append(f.typ.list, tok)
			f.addArgument()
		}
		f.typ = nil

	case !f.typ.empty() && f.function == nil && (ch == ';' || ch == ','):
		f.declarator(tok)

	default:
		f.typ.list = append(f.typ.list, tok)
	}
}

func isDigitStart(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// startFunction begins a function declaration named str, using the
// pending type as its return type.
func (f *frame) startFunction(str string) {
	if f.typ.first() == "extern" {
		f.typ = nil
		return
	}

	fn := doctree.New(doctree.KindFunction, f.prefix+str)
	fn.Scope = f.scope
	f.fstructclass = nil
	if i := strings.LastIndex(str, "::"); i > 0 {
		if target := f.findAggregate(str[:i]); target != nil {
			f.fstructclass = target
			fn.Name = str[i+2:]
		}
	}

	f.returnvalue = nil
	if !f.typ.empty() && (f.typ.last() != "void" || f.typ.first() == "static") {
		rv := doctree.New(doctree.KindReturnvalue, "")
		rv.AddChild(doctree.NewType(f.typ.list...))
		var raw string
		if n := len(f.held); n > 0 && comment.HasDirection(f.held[n-1]) {
			raw = f.held[n-1]
			f.held = f.held[:n-1]
		}
		if raw != "" {
			rv.SetDescription(comment.Normalize(raw).Text)
		}
		fn.AddChild(rv)
		f.returnvalue = rv
	}

	f.fnDesc = comment.Normalize(f.takeComment()).Text
	f.function = fn
	f.argsDone = false
	f.typ = nil
	log.Debugf("function %s", fn.Name)
}

// findAggregate looks up a class or struct for a qualified method name,
// trying the namespace-qualified name first.
func (f *frame) findAggregate(name string) *doctree.Node {
	candidates := []string{name}
	if f.prefix != "" {
		candidates = []string{f.prefix + name, name}
	}
	for _, n := range candidates {
		for _, kind := range []doctree.Kind{doctree.KindClass, doctree.KindStruct} {
			if found := f.container.Find(kind, n); found != nil {
				return found
			}
		}
	}
	return nil
}

// finishFunction ends the pending function at '{' (a definition) or at
// ';' (a prototype).
func (f *frame) finishFunction(definition bool) {
	fn := f.function
	if f.fnDesc != "" {
		fn.SetDescription(f.fnDesc)
	}

	static := f.returnvalue != nil && f.returnvalue.Type().Tokens[0].Text == "static"

	var target *doctree.Node
	switch {
	case comment.Private(f.fnDesc):
		log.Debugf("removing private function %s", fn.Name)
	case static && f.atFileScope():
		log.Debugf("skipping static function %s", fn.Name)
	case definition && f.fstructclass != nil:
		target = f.fstructclass
	case definition, f.container.Kind.IsAggregate(), f.prefix != "", f.fnDesc != "":
		target = f.container
	}
	if target != nil {
		doctree.Insert(target, fn)
	}

	f.function = nil
	f.returnvalue = nil
	f.fstructclass = nil
	f.fnDesc = ""
	f.argsDone = false
	f.variable = nil
}

func (f *frame) addArgument() {
	if arg := addVariable(doctree.KindArgument, f.typ.list); arg != nil {
		f.function.AddChild(arg)
		f.variable = arg
	}
	f.typ = nil
}

// addVariable builds an argument or variable node from its declaration
// tokens, splitting off a "= value" default.
func addVariable(kind doctree.Kind, list []doctree.Token) *doctree.Node {
	v := doctree.New(kind, "")
	for i, tok := range list {
		if tok.Text == "=" {
			v.Default = strings.TrimSpace(doctree.JoinTokens(list[i+1:]))
			list = list[:i]
			break
		}
	}
	if len(list) == 0 {
		return nil
	}

	name, rest := splitDeclarator(list)
	v.Name = name
	if len(rest) > 0 {
		rest[0].Space = false
		v.AddChild(doctree.NewType(rest...))
	}
	return v
}

// declarator handles the last word of a declaration that ends at ';' or
// ','.
func (f *frame) declarator(tok doctree.Token) {
	switch {
	case f.typedef != nil && f.typedef.Name == "":
		f.nameTypedef(tok.Text)

	case f.typ.first() == "typedef":
		list := append(f.typ.list[1:], tok)
		name, rest := splitDeclarator(list)
		td := doctree.New(doctree.KindTypedef, f.prefix+name)
		if len(rest) > 0 {
			rest[0].Space = false
			td.AddChild(doctree.NewType(rest...))
		}
		doctree.Insert(f.container, td)
		f.typedef = td
		f.pair = nil
		f.typedefMuted = false
		log.Debugf("typedef %s", td.Name)

	case f.parens == 0:
		switch first := f.typ.first(); {
		case first == "static" && f.atFileScope(), first == "using":
		case f.typ.len() == 1 && (isAggregateKeyword(first) || first == "enum"):
		default:
			f.typ.list = append(f.typ.list, tok)
			v := addVariable(doctree.KindVariable, f.typ.list)
			if v == nil || !isWordRune(firstRune(v.Name)) {
				break
			}
			v.Name = f.prefix + v.Name
			v.Scope = f.scope
			doctree.Insert(f.container, v)
			f.variable = v
			log.Debugf("variable %s", v.Name)
		}

	default:
		return
	}
	f.typ = nil
}

// nameTypedef completes a typedef whose aggregate or enumeration body has
// been scanned, naming an anonymous body after the typedef.
func (f *frame) nameTypedef(name string) {
	td := f.typedef
	td.Name = f.prefix + name
	private := comment.Private(td.DescriptionText())

	list := append([]doctree.Token(nil), f.typ.list...)
	if p := f.pair; p != nil && p.Name == "" {
		p.Name = td.Name
		if !private {
			doctree.Insert(f.container, p)
		}
		if len(list) == 1 {
			list = append(list, doctree.Token{Text: name, Space: true})
		}
	}
	if len(list) > 0 {
		list[0].Space = false
		td.SetType(doctree.NewType(list...))
	}
	if !private {
		doctree.Insert(f.container, td)
	}
	f.typedefMuted = private
	f.typ = nil
	log.Debugf("typedef %s", td.Name)
}

// describeTypedef applies a trailing comment to the pending typedef and
// its paired aggregate or enumeration.
func (f *frame) describeTypedef(raw string) {
	if comment.Private(raw) {
		f.typedef.SetDescription(raw)
		f.typedef.Detach()
		if f.pair != nil {
			f.pair.Detach()
			f.pair = nil
		}
		return
	}
	text := comment.Normalize(raw).Text
	f.typedef.SetDescription(text)
	if f.pair != nil {
		f.pair.SetDescription(text)
	}
}

func (f *frame) openBrace() error {
	first, second := f.typ.first(), f.typ.nth(1)

	switch {
	case f.nsPending:
		prefix := f.prefix
		if f.nsName != "" {
			prefix += f.nsName + "::"
		}
		f.nsPending = false
		f.nsName = ""
		f.typ = nil
		f.held = nil
		return f.nested(f.container, prefix, "").run()

	case f.function != nil:
		f.finishFunction(true)
		f.typ = nil

	case isAggregateKeyword(first) || (first == "typedef" && isAggregateKeyword(second)):
		f.function = nil
		f.variable = nil
		return f.aggregate()

	case (first == "enum" && second != "") || (first == "typedef" && second == "enum"):
		f.enum()

	case first == "extern":
		f.typ = nil
		f.variable = nil
		return f.nested(f.container, f.prefix, f.scope).run()

	default:
		if i := f.typ.index("="); i >= 2 && f.parens == 0 {
			f.typ.list = f.typ.list[:i]
			f.declarator(f.typ.pop())
		}
		f.typ = nil
		if f.typedef != nil && f.typedef.Name != "" {
			f.typedefMuted = true
		}
	}

	f.braces++
	f.function = nil
	f.variable = nil
	return nil
}

// startTypedef splits a leading "typedef" off the pending type.
func (f *frame) startTypedef() (*doctree.Node, []doctree.Token) {
	list := f.typ.list
	if list[0].Text != "typedef" {
		return nil, list
	}
	return doctree.New(doctree.KindTypedef, ""), list[1:]
}

// aggregate creates a struct, union or class at '{' and scans its body.
func (f *frame) aggregate() error {
	td, list := f.startTypedef()

	node := doctree.New(aggregateKind(list[0].Text), "")
	if len(list) > 1 {
		node.Name = f.prefix + list[1].Text
	}
	if td == nil && len(list) > 2 {
		parent := strings.TrimPrefix(doctree.JoinTokens(list[2:]), ":")
		node.Parent = strings.TrimSpace(parent)
	}

	private := f.describeNew(node, td)
	if node.Name != "" && !private {
		doctree.Insert(f.container, node)
	}
	f.pairWith(td, node, list)
	log.Debugf("%s %s", node.Kind, node.Name)

	scope := ""
	if node.Kind == doctree.KindClass {
		scope = "private"
	}
	return f.nested(node, "", scope).run()
}

// enum creates an enumeration at '{'. The body is scanned in this frame.
func (f *frame) enum() {
	td, list := f.startTypedef()

	node := doctree.New(doctree.KindEnumeration, "")
	if len(list) > 1 {
		node.Name = f.prefix + list[1].Text
	}

	private := f.describeNew(node, td)
	if node.Name != "" && !private {
		doctree.Insert(f.container, node)
	}
	f.pairWith(td, node, list)
	f.enumeration = node
	f.enumValue = false
	f.constant = nil
	log.Debugf("enumeration %s", node.Name)
}

// describeNew gives a new aggregate or enumeration, and its typedef, the
// most recent held comment. It reports whether the comment is private.
func (f *frame) describeNew(node, td *doctree.Node) bool {
	raw := f.takeComment()
	if comment.Private(raw) {
		node.SetDescription(raw)
		if td != nil {
			td.SetDescription(raw)
		}
		return true
	}
	if raw == "" {
		return false
	}
	text := comment.Normalize(raw).Text
	if td != nil {
		td.SetDescription(text)
	}
	node.SetDescription(text)
	return false
}

func (f *frame) pairWith(td, node *doctree.Node, list []doctree.Token) {
	if td == nil {
		f.typ = nil
		return
	}
	f.typedef = td
	f.pair = node
	f.typedefMuted = false
	kept := append([]doctree.Token(nil), list[:min(len(list), 2)]...)
	kept[0].Space = false
	f.typ = &tokens{list: kept}
}

func (f *frame) closeBrace() bool {
	f.enumeration = nil
	f.constant = nil
	f.enumValue = false

	if f.braces > 0 {
		f.braces--
		if f.braces == 0 {
			f.held = nil
		}
		return false
	}
	return true
}

func (f *frame) closeParen() {
	switch {
	case f.function != nil && !f.argsDone && f.parens == 1:
		if f.typ.len() >= 2 {
			f.addArgument()
		}
		f.typ = nil
		f.argsDone = true
	case f.typ != nil && f.parens > 0:
		f.typ.add(")", false)
	}
	if f.parens > 0 {
		f.parens--
	}
}

func (f *frame) comma() {
	switch {
	case f.function != nil && !f.argsDone && f.parens == 1 && f.typ.len() >= 2:
		f.addArgument()
	case f.enumeration != nil:
		f.enumValue = false
	case f.typ != nil:
		f.typ.add(",", false)
	}
}

func (f *frame) semicolon() {
	if f.function != nil {
		f.finishFunction(false)
	}

	if f.typ.len() >= 2 && f.parens == 0 {
		last := f.typ.pop()
		f.declarator(last)
	}
	if f.typedef != nil && f.typedef.Name == "" {
		f.typedef = nil
		f.pair = nil
	}
	f.typ = nil
	f.nsPending = false
	f.nsName = ""
}
