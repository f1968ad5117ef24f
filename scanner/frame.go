package scanner

import (
	"io"

	"github.com/dhamidi/codedoc/comment"
	"github.com/dhamidi/codedoc/doctree"
	"github.com/dhamidi/codedoc/source"
)

const eof rune = -1

// maxHeldComments is how many unattached comments a frame remembers.
const maxHeldComments = 2

// frame is one invocation of the state machine over a scope: the file
// itself, or a nested aggregate, namespace or extern body.
type frame struct {
	s         *Scanner
	src       *source.Reader
	container *doctree.Node
	prefix    string
	scope     string

	state  state
	braces int
	parens int
	buf    source.Buffer
	typ    *tokens

	// held are raw comments waiting for the next declaration.
	held []string
	// blank is set while only whitespace has been seen on the current line.
	blank bool
	// joinLines is set for a // comment that started its line, so that
	// following // lines extend it.
	joinLines bool
	skipSpace bool

	function     *doctree.Node
	returnvalue  *doctree.Node
	fstructclass *doctree.Node
	fnDesc       string
	argsDone     bool

	variable    *doctree.Node
	constant    *doctree.Node
	enumeration *doctree.Node
	enumValue   bool

	typedef      *doctree.Node
	pair         *doctree.Node
	typedefMuted bool

	nsPending bool
	nsName    string
}

func newFrame(s *Scanner, src *source.Reader, container *doctree.Node, prefix, scope string) *frame {
	return &frame{
		s:         s,
		src:       src,
		container: container,
		prefix:    prefix,
		scope:     scope,
		blank:     true,
	}
}

func (f *frame) nested(container *doctree.Node, prefix, scope string) *frame {
	child := newFrame(f.s, f.src, container, prefix, scope)
	child.blank = false
	return child
}

func (f *frame) next() (rune, error) {
	ch, err := f.src.Next()
	if err == io.EOF {
		return eof, nil
	}
	return ch, err
}

func (f *frame) unread(ch rune) {
	if ch != eof {
		f.src.Unread(ch)
	}
}

// run scans until end of input or until the closing brace of the frame's
// scope.
func (f *frame) run() error {
	for {
		ch, err := f.next()
		if err != nil {
			return err
		}
		if ch == eof {
			return nil
		}

		var done bool
		switch f.state {
		case stateNone:
			done, err = f.none(ch)
		case statePreprocessor:
			err = f.preprocessor(ch)
		case stateCComment:
			err = f.cComment(ch)
		case stateCxxComment:
			err = f.cxxComment(ch)
		case stateString, stateCharacter:
			err = f.literal(ch)
		case stateIdentifier:
			f.identifier(ch)
		}
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (f *frame) none(ch rune) (bool, error) {
	if ch == '\n' {
		if f.blank {
			f.clearTrailing()
		}
		f.blank = true
		return false, nil
	}
	if isSpace(ch) {
		return false, nil
	}

	lineStart := f.blank
	f.blank = false

	switch ch {
	case '/':
		next, err := f.next()
		if err != nil {
			return false, err
		}
		f.joinLines = lineStart
		f.slash(next)

	case '#':
		f.state = statePreprocessor
		f.held = nil

	case '\'':
		f.state = stateCharacter
		f.buf.Reset()
		f.buf.WriteRune(ch)

	case '"':
		f.state = stateString
		f.buf.Reset()
		f.buf.WriteRune(ch)

	case '{':
		return false, f.openBrace()

	case '}':
		return f.closeBrace(), nil

	case '(':
		if f.typ != nil {
			f.typ.add("(", false)
		}
		f.parens++

	case ')':
		f.closeParen()

	case ';':
		f.semicolon()

	case ',':
		f.comma()

	case ':', '&':
		if f.typ != nil {
			f.typ.add(string(ch), true)
		}

	case '=':
		if f.enumeration != nil && f.braces > 0 {
			f.enumValue = true
		}
		f.operator(ch)

	case '*', '+', '-':
		f.operator(ch)

	default:
		if isIdentStart(ch) {
			f.state = stateIdentifier
			f.buf.Reset()
			f.buf.WriteRune(ch)
		}
	}
	return false, nil
}

func (f *frame) operator(ch rune) {
	if f.typ != nil {
		f.typ.add(string(ch), f.typ.wordBefore())
	}
}

// slash handles the character following a '/' outside comments and
// literals.
func (f *frame) slash(next rune) {
	f.buf.Reset()
	switch next {
	case '*':
		f.state = stateCComment
	case '/':
		f.state = stateCxxComment
		f.skipSpace = false
	default:
		f.unread(next)
		f.operator('/')
	}
}

func (f *frame) preprocessor(ch rune) error {
	switch ch {
	case '\n':
		f.state = stateNone
		f.blank = true
	case '\\':
		if _, err := f.next(); err != nil {
			return err
		}
	}
	return nil
}

func (f *frame) cComment(ch rune) error {
	switch ch {
	case '\n':
		for {
			c, err := f.next()
			if err != nil {
				return err
			}
			if c == eof {
				break
			}
			if c == '*' {
				c2, err := f.next()
				if err != nil {
					return err
				}
				if c2 == '/' {
					f.state = stateNone
					f.finishComment()
					return nil
				}
				f.unread(c2)
				continue
			}
			if c == '\n' {
				if f.buf.Len() > 0 {
					f.buf.WriteRune('\n')
				}
				continue
			}
			if !isSpace(c) {
				f.unread(c)
				break
			}
		}
		if f.buf.Len() > 0 {
			f.buf.WriteRune('\n')
		}
		return nil

	case '/':
		if f.buf.Last() == '*' {
			f.buf.TrimRight("* \t\n\r\f\v")
			f.state = stateNone
			f.finishComment()
			return nil
		}
	}

	if ch == ' ' && f.buf.Len() == 0 {
		return nil
	}
	f.buf.WriteRune(ch)
	return nil
}

func (f *frame) cxxComment(ch rune) error {
	if ch != '\n' {
		if ch == ' ' && (f.buf.Len() == 0 || f.skipSpace) {
			return nil
		}
		f.skipSpace = false
		f.buf.WriteRune(ch)
		return nil
	}

	if f.joinLines {
		c, err := f.next()
		for err == nil && (c == ' ' || c == '\t') {
			c, err = f.next()
		}
		if err != nil {
			return err
		}
		if c == '/' {
			c2, err := f.next()
			if err != nil {
				return err
			}
			if c2 == '/' {
				f.buf.WriteRune('\n')
				f.skipSpace = true
				return nil
			}
			f.state = stateNone
			f.finishComment()
			f.blank = false
			f.joinLines = false
			f.slash(c2)
			return nil
		}
		f.unread(c)
	}

	f.state = stateNone
	f.blank = true
	f.finishComment()
	return nil
}

func (f *frame) literal(ch rune) error {
	f.buf.WriteRune(ch)

	switch {
	case ch == '\\':
		c, err := f.next()
		if err != nil {
			return err
		}
		if c != eof {
			f.buf.WriteRune(c)
		}
	case ch == '"' && f.state == stateString, ch == '\'' && f.state == stateCharacter:
		if f.typ != nil {
			f.typ.add(f.buf.String(), !f.typ.empty())
		}
		f.state = stateNone
	}
	return nil
}

func (f *frame) identifier(ch rune) {
	if isIdentStart(ch) || ch == '[' || ch == ']' ||
		(ch == ',' && (f.parens > 1 || (f.typ != nil && f.enumeration == nil && f.function == nil))) {
		f.buf.WriteRune(ch)
		return
	}

	f.unread(ch)
	f.state = stateNone
	f.word(f.buf.String(), ch)
}

// finishComment routes the comment in the buffer to its target.
func (f *frame) finishComment() {
	raw := f.buf.String()
	f.buf.Reset()

	if body, ok := comment.SplitBody(raw); ok {
		f.s.writeBody(body)
		return
	}

	switch {
	case f.variable != nil:
		attach(f.variable, raw)
		f.variable = nil

	case f.constant != nil:
		attach(f.constant, raw)
		f.constant = nil

	case f.typedef != nil && !f.typedefMuted:
		f.describeTypedef(raw)
		f.typedefMuted = true

	case f.container.Kind != doctree.KindRoot && f.container.Description() == nil:
		attach(f.container, raw)

	default:
		f.held = append(f.held, raw)
		if len(f.held) > maxHeldComments {
			f.held = f.held[len(f.held)-maxHeldComments:]
		}
	}
}

// attach sets the description of n from a raw comment, or removes n when
// the comment marks it private.
func attach(n *doctree.Node, raw string) {
	if comment.Private(raw) {
		log.Debugf("removing private %s %s", n.Kind, n.Name)
		n.Detach()
		return
	}
	c := comment.Normalize(raw)
	n.SetDescription(c.Text)
	if n.Kind == doctree.KindArgument && c.Direction != "" {
		n.Direction = c.Direction
	}
}

// takeComment returns the most recent held comment and forgets the rest.
func (f *frame) takeComment() string {
	if len(f.held) == 0 {
		return ""
	}
	raw := f.held[len(f.held)-1]
	f.held = nil
	return raw
}

// clearTrailing stops a later comment from attaching to a declaration
// that ended before a blank line.
func (f *frame) clearTrailing() {
	f.variable = nil
	f.constant = nil
	if f.typedef != nil {
		f.typedefMuted = true
	}
}
