// Package format renders documentation trees for the dump command. Every
// encoder buffers the rendering through MarshalText and writes it on
// Encode.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/codedoc/doctree"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(tree *doctree.Node) error
}

// Names lists the accepted encoder names.
var Names = []string{"line", "json", "xml", "tree"}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "xml":
		return NewXMLEncoder(w), nil
	case "tree":
		return NewTreeEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
