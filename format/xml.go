package format

import (
	"bytes"
	"io"

	"github.com/dhamidi/codedoc/doctree"
	"github.com/dhamidi/codedoc/xmldoc"
)

// XMLEncoder writes the tree in the codedoc XML vocabulary.
type XMLEncoder struct {
	w    io.Writer
	tree *doctree.Node
}

func NewXMLEncoder(w io.Writer) *XMLEncoder {
	return &XMLEncoder{w: w}
}

func (e *XMLEncoder) Encode(tree *doctree.Node) error {
	e.tree = tree
	return write(e.w, e)
}

func (e *XMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if err := xmldoc.Save(&buf, e.tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
