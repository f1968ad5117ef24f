// Package xmldoc reads and writes documentation trees in the codedoc XML
// vocabulary, so that a tree can be saved after one scan and merged with
// the next.
package xmldoc

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/codedoc/doctree"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("codedoc.xml")

const (
	Namespace      = "https://www.msweet.org"
	SchemaLocation = "https://www.msweet.org/codedoc/codedoc.xsd"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
)

// ErrNoCodedoc is returned by Load when the document has no codedoc root
// element.
var ErrNoCodedoc = errors.New("no codedoc element")

// Load decodes a tree from r.
func Load(r io.Reader) (*doctree.Node, error) {
	dec := xml.NewDecoder(r)

	var (
		root  *doctree.Node
		stack []*doctree.Node
		text  strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			kind, ok := doctree.KindOf(t.Name.Local)
			if root == nil {
				if !ok || kind != doctree.KindRoot {
					return nil, ErrNoCodedoc
				}
				root = doctree.NewRoot()
				stack = append(stack, root)
				continue
			}
			if !ok || kind == doctree.KindRoot {
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("decode xml: %w", err)
				}
				log.Warningf("skipping unknown element <%s>", t.Name.Local)
				continue
			}
			n := doctree.New(kind, "")
			setAttrs(n, t.Attr)
			stack[len(stack)-1].AddChild(n)
			stack = append(stack, n)
			text.Reset()

		case xml.CharData:
			text.Write(t)

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			n := stack[len(stack)-1]
			switch n.Kind {
			case doctree.KindDescription:
				n.Text = text.String()
			case doctree.KindType:
				n.Tokens = splitTokens(text.String())
			}
			text.Reset()
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, ErrNoCodedoc
	}
	return root, nil
}

func setAttrs(n *doctree.Node, attrs []xml.Attr) {
	for _, a := range attrs {
		if a.Name.Space != "" {
			continue
		}
		switch a.Name.Local {
		case "name":
			n.Name = a.Value
		case "scope":
			n.Scope = a.Value
		case "direction":
			n.Direction = a.Value
		case "default":
			n.Default = a.Value
		case "parent":
			n.Parent = a.Value
		}
	}
}

func splitTokens(s string) []doctree.Token {
	fields := strings.Fields(s)
	tokens := make([]doctree.Token, len(fields))
	for i, f := range fields {
		tokens[i] = doctree.Token{Text: f, Space: i > 0}
	}
	return tokens
}

// LoadFile loads the tree saved at path. A missing, unreadable or
// malformed file yields a fresh root and a logged warning instead of an
// error.
func LoadFile(path string) *doctree.Node {
	fp, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warningf("unable to open %s: %s", path, err)
		}
		return doctree.NewRoot()
	}
	defer fp.Close()

	root, err := Load(bufio.NewReader(fp))
	if err != nil {
		log.Warningf("unable to load %s, starting fresh: %s", path, err)
		return doctree.NewRoot()
	}
	return root
}

// SaveFile writes root to path, replacing the file.
func SaveFile(path string, root *doctree.Node) error {
	fp, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create xml: %w", err)
	}
	if err := Save(fp, root); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
