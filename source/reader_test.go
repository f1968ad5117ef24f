package source

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func readAll(t *testing.T, input string) ([]rune, error) {
	t.Helper()
	r := NewReader(strings.NewReader(input), "test.c")
	var out []rune
	for {
		ch, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, ch)
	}
}

func TestReaderDecodesUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ascii", "int x;", "int x;"},
		{"two byte", "caf\xc3\xa9", "café"},
		{"three byte", "\xe2\x82\xac", "€"},
		{"four byte", "\xf0\x9f\x98\x80", "😀"},
		{"whitespace controls", "a\tb\r\n\fc\vd", "a\tb\r\n\fc\vd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readAll(t, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("decoded = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestReaderRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		line    int
		column  int
	}{
		{"bad lead byte", "ab\xff", msgBadUTF8, 1, 3},
		{"bad continuation", "x\n\xc3(", msgBadUTF8, 2, 1},
		{"truncated", "\xe2\x82", msgBadUTF8, 1, 1},
		{"above unicode range", "ok\xf4\x90\x80\x80", msgBadUTF8, 1, 3},
		{"largest four byte value", "\xf7\xbf\xbf\xbf", msgBadUTF8, 1, 1},
		{"delete", "a\x7f", msgBadControl, 1, 2},
		{"nul", "\x00", msgBadControl, 1, 1},
		{"backspace", "\x08", msgBadControl, 1, 1},
		{"escape", "\x1b", msgBadControl, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readAll(t, tt.input)
			var serr *Error
			if !errors.As(err, &serr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if serr.Message != tt.message {
				t.Errorf("Message = %q, want %q", serr.Message, tt.message)
			}
			if serr.Line != tt.line || serr.Column != tt.column {
				t.Errorf("position = %d(%d), want %d(%d)", serr.Line, serr.Column, tt.line, tt.column)
			}
		})
	}
}

func TestReaderPosition(t *testing.T) {
	tests := []struct {
		input  string
		line   int
		column int
	}{
		{"abc", 1, 4},
		{"\t", 1, 9},
		{"ab\t", 1, 9},
		{"12345678\t", 1, 17},
		{"a\nb", 2, 2},
		{"a\fb", 2, 2},
		{"abc\r", 1, 1},
		{"ab\v", 2, 3},
	}

	for _, tt := range tests {
		r := NewReader(strings.NewReader(tt.input), "pos.c")
		for {
			if _, err := r.Next(); err != nil {
				break
			}
		}
		if r.Line() != tt.line || r.Column() != tt.column {
			t.Errorf("%q: position = %d(%d), want %d(%d)", tt.input, r.Line(), r.Column(), tt.line, tt.column)
		}
	}
}

func TestReaderUnread(t *testing.T) {
	r := NewReader(strings.NewReader("ab"), "unread.c")
	ch, _ := r.Next()
	r.Unread(ch)
	again, _ := r.Next()
	if again != 'a' {
		t.Errorf("after Unread got %q, want 'a'", again)
	}
	next, _ := r.Next()
	if next != 'b' {
		t.Errorf("Next = %q, want 'b'", next)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{File: "foo.c", Line: 3, Column: 7, Message: msgBadUTF8}
	want := "foo.c:3(7) Illegal UTF-8 sequence found."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestBuffer(t *testing.T) {
	var b Buffer
	if b.Last() != 0 {
		t.Errorf("Last on empty = %q, want 0", b.Last())
	}
	b.WriteString("héllo")
	b.WriteRune('€')
	if b.Last() != '€' {
		t.Errorf("Last = %q, want '€'", b.Last())
	}
	b.WriteString(" ** ")
	b.TrimRight("* ")
	if got := b.String(); got != "héllo€" {
		t.Errorf("String = %q, want %q", got, "héllo€")
	}
	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", b.Len())
	}
}
