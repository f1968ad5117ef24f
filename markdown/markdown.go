// Package markdown loads the body, header and footer documents that
// accompany generated documentation. Markdown is parsed with goldmark; an
// optional YAML front matter block supplies document metadata such as the
// title and author.
package markdown

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

type Heading struct {
	Level  int
	Text   string
	Anchor string
}

// Document is a loaded body document. Non-markdown documents keep their
// source but have no headings or metadata.
type Document struct {
	Source   []byte
	Metadata map[string]string

	headings []Heading
}

// Load parses markdown source.
func Load(src []byte) (*Document, error) {
	meta, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}

	doc := &Document{Source: body, Metadata: meta}
	root := goldmark.New().Parser().Parse(text.NewReader(body))
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		title := inlineText(h, body)
		doc.headings = append(doc.headings, Heading{
			Level:  h.Level,
			Text:   title,
			Anchor: Anchor(title),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}
	return doc, nil
}

// LoadFile reads a document from disk. Files ending in .md are parsed as
// markdown and .html/.htm files as HTML; anything else is kept as-is.
func LoadFile(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var doc *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		doc, err = Load(src)
	case ".html", ".htm":
		doc, err = LoadHTML(src)
	default:
		return &Document{Source: src, Metadata: map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (d *Document) Headings() []Heading {
	if d == nil {
		return nil
	}
	return d.headings
}

// Meta returns the front matter value for key, or "".
func (d *Document) Meta(key string) string {
	if d == nil {
		return ""
	}
	return d.Metadata[key]
}

// splitFrontMatter separates a leading block delimited by "---" lines and
// ending with "---" or "..." from the markdown body.
func splitFrontMatter(src []byte) (map[string]string, []byte, error) {
	meta := map[string]string{}
	if !bytes.HasPrefix(src, []byte("---\n")) && !bytes.HasPrefix(src, []byte("---\r\n")) {
		return meta, src, nil
	}

	rest := src[bytes.IndexByte(src, '\n')+1:]
	offset := 0
	for offset < len(rest) {
		end := bytes.IndexByte(rest[offset:], '\n')
		line := rest[offset:]
		next := len(rest)
		if end >= 0 {
			line = rest[offset : offset+end]
			next = offset + end + 1
		}
		line = bytes.TrimRight(line, "\r")
		if string(line) == "---" || string(line) == "..." {
			var raw map[string]yaml.Node
			if err := yaml.Unmarshal(rest[:offset], &raw); err != nil {
				return nil, nil, fmt.Errorf("decode front matter: %w", err)
			}
			for k, v := range raw {
				meta[strings.ToLower(k)] = v.Value
			}
			return meta, rest[next:], nil
		}
		offset = next
	}
	// An unterminated block is ordinary markdown.
	return meta, src, nil
}

// inlineText concatenates the text segments below n.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}

// Anchor converts heading text to an anchor name: ASCII letters and digits
// are lowercased, '.' and '-' are kept, spaces become '-' and everything
// else is dropped.
func Anchor(title string) string {
	var sb strings.Builder
	for i := 0; i < len(title); i++ {
		ch := title[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			sb.WriteByte(ch + 'a' - 'A')
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9', ch == '.', ch == '-':
			sb.WriteByte(ch)
		case ch == ' ':
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
