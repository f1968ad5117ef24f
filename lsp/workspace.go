package lsp

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/codedoc/doctree"
	"github.com/dhamidi/codedoc/format"
	"github.com/dhamidi/codedoc/scanner"
)

// sourceExts are the file extensions scanned by a Workspace.
var sourceExts = map[string]bool{
	".c":   true,
	".h":   true,
	".cc":  true,
	".cxx": true,
	".cpp": true,
	".hpp": true,
	".hh":  true,
}

// IsSource reports whether path names a C or C++ source or header file.
func IsSource(path string) bool {
	return sourceExts[strings.ToLower(filepath.Ext(path))]
}

func isHeader(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".h", ".hh", ".hpp":
		return true
	}
	return false
}

// Workspace holds the scanned sources under a root directory and the tree
// merged from all of them.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*File
	tree    *doctree.Node
}

type File struct {
	Path    string
	Content []byte
	Tree    *doctree.Node
	ScanErr error
}

func NewWorkspace(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*File),
		tree:    doctree.NewRoot(),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// walkSources calls fn for every source file below root, skipping dot
// directories.
func walkSources(root string, fn func(path string, info os.FileInfo)) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSource(path) {
			fn(path, info)
		}
		return nil
	})
}

// ScanAll scans every source file below the root and rebuilds the merged
// tree once.
func (w *Workspace) ScanAll() error {
	contents := make(map[string][]byte)
	var errs []error
	err := walkSources(w.rootDir, func(path string, info os.FileInfo) {
		content, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, err)
			return
		}
		contents[path] = content
	})
	if err != nil {
		return err
	}
	errs = append(errs, w.Update(contents, nil))
	return errors.Join(errs...)
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return w.UpdateFile(path, content)
}

// UpdateFile rescans path from content and rebuilds the merged tree. A
// scan error is recorded on the File and returned; the declarations seen
// before the error are kept.
func (w *Workspace) UpdateFile(path string, content []byte) error {
	return w.Update(map[string][]byte{path: content}, nil)
}

func (w *Workspace) RemoveFile(path string) {
	w.Update(nil, []string{path})
}

// Update rescans the files in contents, forgets the removed paths and
// rebuilds the merged tree once. Each file is scanned into its own tree
// before the lock is taken.
func (w *Workspace) Update(contents map[string][]byte, removed []string) error {
	var errs []error
	files := make([]*File, 0, len(contents))
	for path, content := range contents {
		f := scanContent(path, content)
		if f.ScanErr != nil {
			errs = append(errs, f.ScanErr)
		}
		files = append(files, f)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, path := range removed {
		delete(w.files, path)
	}
	for _, f := range files {
		w.files[f.Path] = f
	}
	w.rebuildTreeLocked()
	return errors.Join(errs...)
}

func scanContent(path string, content []byte) *File {
	tree := doctree.NewRoot()
	err := scanner.Scan(bytes.NewReader(content), tree, scanner.WithFile(path))
	if err != nil {
		log.Warningf("%s", err)
	}
	return &File{
		Path:    path,
		Content: content,
		Tree:    tree,
		ScanErr: err,
	}
}

// rebuildTreeLocked merges copies of the per-file trees, headers first, so
// that definitions in sources replace the prototypes in headers.
func (w *Workspace) rebuildTreeLocked() {
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Slice(paths, func(i, j int) bool {
		hi, hj := isHeader(paths[i]), isHeader(paths[j])
		if hi != hj {
			return hi
		}
		return paths[i] < paths[j]
	})

	tree := doctree.NewRoot()
	for _, path := range paths {
		doctree.Merge(tree, w.files[path].Tree.Clone())
	}
	attachMethods(tree)
	w.tree = tree
}

// attachMethods moves "Class::method" definitions whose class was declared
// in another file into that class.
func attachMethods(tree *doctree.Node) {
	for _, fn := range tree.ChildrenOfKind(doctree.KindFunction) {
		i := strings.LastIndex(fn.Name, "::")
		if i <= 0 {
			continue
		}
		if target := findAggregate(tree, fn.Name[:i]); target != nil {
			fn.Detach()
			fn.Name = fn.Name[i+2:]
			doctree.Insert(target, fn)
		}
	}
}

// findAggregate looks up a class or struct by qualified name, dropping
// leading namespace qualifiers until one matches.
func findAggregate(tree *doctree.Node, name string) *doctree.Node {
	for {
		for _, kind := range []doctree.Kind{doctree.KindClass, doctree.KindStruct} {
			if found := tree.Find(kind, name); found != nil {
				return found
			}
		}
		i := strings.Index(name, "::")
		if i < 0 {
			return nil
		}
		name = name[i+2:]
	}
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Tree returns the merged tree. It must not be modified.
func (w *Workspace) Tree() *doctree.Node {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree
}

// Lookup finds the declaration called name in the merged tree. Qualified
// names such as "Class::member" and enumeration constants are resolved.
func (w *Workspace) Lookup(name string) *doctree.Node {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return lookup(w.tree, name)
}

func lookup(n *doctree.Node, name string) *doctree.Node {
	if name == "" {
		return nil
	}
	if found := findNamed(n, name); found != nil {
		return found
	}
	if i := strings.LastIndex(name, "::"); i > 0 {
		if outer := lookup(n, name[:i]); outer != nil {
			return findNamed(outer, name[i+2:])
		}
		return nil
	}
	for _, en := range n.ChildrenOfKind(doctree.KindEnumeration) {
		if c := en.Find(doctree.KindConstant, name); c != nil {
			return c
		}
	}
	return nil
}

// findNamed returns the first child of n with the given name, of any kind.
func findNamed(n *doctree.Node, name string) *doctree.Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// HoverText returns markdown describing the symbol at the zero-based line
// and column of path, or "" when there is none.
func (w *Workspace) HoverText(path string, line, col int) string {
	f := w.GetFile(path)
	if f == nil {
		return ""
	}
	n := w.Lookup(WordAt(f.Content, line, col))
	if n == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```c\n" + format.Signature(n) + "\n```\n")
	switch info := doctree.Info(n); info {
	case "":
	case "DEPRECATED":
		sb.WriteString("\n*Deprecated*\n")
	default:
		sb.WriteString("\n*Since " + info + "*\n")
	}
	if desc := n.DescriptionText(); desc != "" {
		sb.WriteString("\n" + desc + "\n")
	}
	return sb.String()
}

func isIdentByte(ch byte) bool {
	return ch == '_' || ch == ':' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

// WordAt returns the identifier, including "::" qualifiers, that touches
// the zero-based line and column of content.
func WordAt(content []byte, line, col int) string {
	lines := strings.Split(string(content), "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	text := lines[line]
	if col > len(text) {
		col = len(text)
	}

	start, end := col, col
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	for end < len(text) && isIdentByte(text[end]) {
		end++
	}
	return strings.Trim(text[start:end], ":")
}

// Symbol is a declaration of one file with its location.
type Symbol struct {
	Name     string
	Kind     doctree.Kind
	Detail   string
	Line     int
	Column   int
	Children []Symbol
}

// Symbols lists the declarations scanned from path.
func (w *Workspace) Symbols(path string) []Symbol {
	f := w.GetFile(path)
	if f == nil {
		return nil
	}
	return symbols(f.Tree, f.Content)
}

func symbols(n *doctree.Node, content []byte) []Symbol {
	var out []Symbol
	for _, child := range n.Children {
		if child.Name == "" {
			continue
		}
		line, col := locate(content, child.Name)
		sym := Symbol{
			Name:   child.Name,
			Kind:   child.Kind,
			Detail: format.Signature(child),
			Line:   line,
			Column: col,
		}
		if child.Kind.IsAggregate() || child.Kind == doctree.KindEnumeration {
			sym.Children = symbols(child, content)
		}
		out = append(out, sym)
	}
	return out
}

// locate finds the zero-based position where name is declared, preferring
// a line that starts with it, as in "name(args)" definitions.
func locate(content []byte, name string) (int, int) {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	lines := strings.Split(string(content), "\n")

	firstLine, firstCol := -1, -1
	for i, text := range lines {
		for off := 0; ; {
			j := strings.Index(text[off:], name)
			if j < 0 {
				break
			}
			col := off + j
			end := col + len(name)
			if (col == 0 || !isIdentByte(text[col-1])) && (end == len(text) || !isIdentByte(text[end])) {
				if strings.TrimSpace(text[:col]) == "" {
					return i, col
				}
				if firstLine < 0 {
					firstLine, firstCol = i, col
				}
			}
			off = end
		}
	}
	if firstLine < 0 {
		return 0, 0
	}
	return firstLine, firstCol
}
