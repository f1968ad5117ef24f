package source

import (
	"strings"
	"unicode/utf8"
)

// Buffer accumulates identifiers, comments and literals.
type Buffer struct {
	b []byte
}

func (b *Buffer) WriteRune(ch rune) {
	b.b = utf8.AppendRune(b.b, ch)
}

func (b *Buffer) WriteString(s string) {
	b.b = append(b.b, s...)
}

func (b *Buffer) String() string { return string(b.b) }

// Len reports the length in bytes.
func (b *Buffer) Len() int { return len(b.b) }

func (b *Buffer) Reset() { b.b = b.b[:0] }

// Last returns the final code point, or 0 when the buffer is empty.
func (b *Buffer) Last() rune {
	if len(b.b) == 0 {
		return 0
	}
	ch, _ := utf8.DecodeLastRune(b.b)
	return ch
}

// TrimRight removes trailing code points contained in cutset.
func (b *Buffer) TrimRight(cutset string) {
	for len(b.b) > 0 {
		ch, size := utf8.DecodeLastRune(b.b)
		if !strings.ContainsRune(cutset, ch) {
			return
		}
		b.b = b.b[:len(b.b)-size]
	}
}
