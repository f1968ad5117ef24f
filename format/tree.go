package format

import (
	"io"

	"github.com/dhamidi/codedoc/doctree"
)

// TreeEncoder writes the indented debugging view of the tree.
type TreeEncoder struct {
	w    io.Writer
	tree *doctree.Node
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(tree *doctree.Node) error {
	e.tree = tree
	return write(e.w, e)
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	return []byte(e.tree.String()), nil
}
