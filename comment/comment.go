// Package comment turns raw C/C++ comment bodies into description text and
// reads the @marker@ directives embedded in them.
package comment

import (
	"strings"
	"unicode"
)

// Comment is a normalized comment body.
type Comment struct {
	Text string
	// Direction is "I", "O" or "IO" when the comment began with an
	// argument direction prefix.
	Direction string
}

// Normalize applies the comment rewriting rules in order: un-escape "\/",
// strip leading blank lines, drop a legacy "'name()' - " prefix, split off
// an argument direction prefix and strip surrounding asterisks.
func Normalize(raw string) Comment {
	s := strings.ReplaceAll(raw, `\/`, "/")
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	var c Comment
	switch {
	case strings.HasPrefix(s, "'"):
		if end := strings.IndexByte(s[1:], '\''); end >= 0 {
			s = trimDash(s[end+2:])
		}
	case strings.HasPrefix(s, "I "), strings.HasPrefix(s, "O "), strings.HasPrefix(s, "IO "):
		sp := strings.IndexByte(s, ' ')
		c.Direction = s[:sp]
		s = trimDash(s[sp+1:])
	}

	s = strings.TrimLeft(s, "*")
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	s = strings.TrimRight(s, "*")
	s = strings.TrimRightFunc(s, unicode.IsSpace)

	c.Text = s
	return c
}

// HasDirection reports whether raw starts with an argument direction prefix
// once leading whitespace is removed.
func HasDirection(raw string) bool {
	return Normalize(raw).Direction != ""
}

func trimDash(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	s = strings.TrimPrefix(s, "-")
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}
