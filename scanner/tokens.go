package scanner

import (
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/codedoc/doctree"
)

type state int

const (
	stateNone state = iota
	statePreprocessor
	stateCComment
	stateCxxComment
	stateString
	stateCharacter
	stateIdentifier
)

var stateNames = map[state]string{
	stateNone:         "None",
	statePreprocessor: "Preprocessor",
	stateCComment:     "CComment",
	stateCxxComment:   "CxxComment",
	stateString:       "String",
	stateCharacter:    "Character",
	stateIdentifier:   "Identifier",
}

func (s state) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// tokens is the in-progress type of a declaration. A nil *tokens means no
// type is active; all methods accept a nil receiver.
type tokens struct {
	list []doctree.Token
}

func (t *tokens) add(text string, space bool) {
	t.list = append(t.list, doctree.Token{Text: text, Space: space})
}

func (t *tokens) len() int {
	if t == nil {
		return 0
	}
	return len(t.list)
}

func (t *tokens) empty() bool {
	return t.len() == 0
}

func (t *tokens) nth(i int) string {
	if i < 0 || i >= t.len() {
		return ""
	}
	return t.list[i].Text
}

func (t *tokens) first() string {
	return t.nth(0)
}

func (t *tokens) last() string {
	return t.nth(t.len() - 1)
}

func (t *tokens) index(text string) int {
	for i := 0; i < t.len(); i++ {
		if t.list[i].Text == text {
			return i
		}
	}
	return -1
}

// pop removes and returns the final token.
func (t *tokens) pop() doctree.Token {
	tok := t.list[len(t.list)-1]
	t.list = t.list[:len(t.list)-1]
	return tok
}

// wordBefore reports whether the last token starts with a word character, in
// which case an operator appended next is preceded by a space.
func (t *tokens) wordBefore() bool {
	last := t.last()
	return last != "" && isWordRune(firstRune(last))
}

// spaceBeforeWord reports whether a word appended next is separated from
// the previous token.
func (t *tokens) spaceBeforeWord() bool {
	last := t.last()
	return last != "" && last[0] != '(' && last[0] != '*'
}

func isWordRune(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func firstRune(s string) rune {
	ch, _ := utf8.DecodeRuneInString(s)
	return ch
}

func isIdentStart(ch rune) bool {
	return isWordRune(ch) || ch == '.' || ch == ':' || ch == '~'
}

func isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isAggregateKeyword(s string) bool {
	return s == "struct" || s == "union" || s == "class"
}

func aggregateKind(s string) doctree.Kind {
	switch s {
	case "class":
		return doctree.KindClass
	case "union":
		return doctree.KindUnion
	default:
		return doctree.KindStruct
	}
}

// splitDeclarator separates the declared name from its type tokens. For
// function pointer declarators such as "void (*cb)(int)" the name is the
// first word after the opening parenthesis.
func splitDeclarator(list []doctree.Token) (string, []doctree.Token) {
	n := len(list)
	if n == 0 {
		return "", nil
	}
	if list[n-1].Text == ")" {
		open := -1
		for i, tok := range list {
			if tok.Text == "(" {
				open = i
				break
			}
		}
		if open >= 0 {
			for j := open + 1; j < n; j++ {
				text := list[j].Text
				if text == "*" {
					continue
				}
				if isWordRune(firstRune(text)) {
					rest := append(append([]doctree.Token(nil), list[:j]...), list[j+1:]...)
					return text, rest
				}
				break
			}
			return doctree.JoinTokens(list[open:]), append([]doctree.Token(nil), list[:open]...)
		}
	}
	return list[n-1].Text, append([]doctree.Token(nil), list[:n-1]...)
}
