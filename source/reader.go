package source

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
)

// Error is a fatal decoding error at a source position.
type Error struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d(%d) %s", e.File, e.Line, e.Column, e.Message)
}

const (
	msgBadUTF8    = "Illegal UTF-8 sequence found."
	msgBadControl = "Illegal control character found."
)

// Reader decodes UTF-8 source text one code point at a time.
type Reader struct {
	r      *bufio.Reader
	file   string
	line   int
	column int
	pushed rune
	held   bool
}

func NewReader(r io.Reader, file string) *Reader {
	return &Reader{
		r:      bufio.NewReader(r),
		file:   file,
		line:   1,
		column: 1,
	}
}

func (r *Reader) File() string { return r.file }
func (r *Reader) Line() int    { return r.line }
func (r *Reader) Column() int  { return r.column }

// Unread pushes ch back so the next call to Next returns it. Only one
// character can be held; position counters are not rewound.
func (r *Reader) Unread(ch rune) {
	r.pushed = ch
	r.held = true
}

// Next returns the next code point, io.EOF at end of input, or an *Error
// for malformed UTF-8 and disallowed control characters.
func (r *Reader) Next() (rune, error) {
	if r.held {
		r.held = false
		return r.pushed, nil
	}

	b, err := r.r.ReadByte()
	if err != nil {
		return 0, err
	}

	ch := rune(b)
	if b&0x80 != 0 {
		var extra int
		switch {
		case b&0xe0 == 0xc0:
			ch, extra = rune(b&0x1f), 1
		case b&0xf0 == 0xe0:
			ch, extra = rune(b&0x0f), 2
		case b&0xf8 == 0xf0:
			ch, extra = rune(b&0x07), 3
		default:
			return 0, r.fail(msgBadUTF8)
		}
		for i := 0; i < extra; i++ {
			c, err := r.r.ReadByte()
			if err != nil || c&0xc0 != 0x80 {
				return 0, r.fail(msgBadUTF8)
			}
			ch = ch<<6 | rune(c&0x3f)
		}
		if ch > unicode.MaxRune {
			return 0, r.fail(msgBadUTF8)
		}
	}

	if ch == 0x7f || ch < 0x07 || ch == 0x08 || (ch > 0x0d && ch < ' ') {
		return 0, r.fail(msgBadControl)
	}

	r.advance(ch)
	return ch, nil
}

func (r *Reader) advance(ch rune) {
	switch ch {
	case '\t':
		r.column = ((r.column + 7) &^ 7) + 1
	case '\n', '\f':
		r.line++
		r.column = 1
	case '\v':
		r.line++
	case '\r':
		r.column = 1
	default:
		r.column++
	}
}

func (r *Reader) fail(msg string) error {
	return &Error{File: r.file, Line: r.line, Column: r.column, Message: msg}
}
