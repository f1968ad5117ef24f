package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/codedoc/doctree"
)

// JSONEncoder writes the tree as indented JSON with descriptions and types
// folded into their owners.
type JSONEncoder struct {
	w    io.Writer
	tree *doctree.Node
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(tree *doctree.Node) error {
	e.tree = tree
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(e.tree, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
