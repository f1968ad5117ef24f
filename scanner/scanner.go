package scanner

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/codedoc/doctree"
	"github.com/dhamidi/codedoc/source"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("codedoc.scanner")

type Option func(*Scanner)

// WithFile sets the file name used in error positions.
func WithFile(path string) Option {
	return func(s *Scanner) {
		s.file = path
	}
}

// WithBody sets where @body@ comment text is written. Without it such
// comments are discarded.
func WithBody(w io.Writer) Option {
	return func(s *Scanner) {
		s.body = w
	}
}

// Scanner adds the declarations of C/C++ sources to a tree.
type Scanner struct {
	tree *doctree.Node
	file string
	body io.Writer
}

func New(tree *doctree.Node, opts ...Option) *Scanner {
	s := &Scanner{
		tree: tree,
		file: "<stdin>",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scanner) Tree() *doctree.Node {
	return s.tree
}

// Scan reads r to the end and merges its declarations into the tree. A
// *source.Error is returned for malformed UTF-8 or control characters; the
// tree may then hold the declarations seen before the error.
func (s *Scanner) Scan(r io.Reader) error {
	src := source.NewReader(r, s.file)
	f := newFrame(s, src, s.tree, "", "")
	return f.run()
}

// ScanFile scans the named file.
func (s *Scanner) ScanFile(path string) error {
	fp, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer fp.Close()

	s.file = path
	log.Debugf("scanning %s", path)
	return s.Scan(fp)
}

// Scan is a convenience wrapper around New and Scanner.Scan.
func Scan(r io.Reader, tree *doctree.Node, opts ...Option) error {
	return New(tree, opts...).Scan(r)
}

func (s *Scanner) writeBody(text string) {
	if s.body == nil || text == "" {
		return
	}
	fmt.Fprintf(s.body, "%s\n\n", text)
}
