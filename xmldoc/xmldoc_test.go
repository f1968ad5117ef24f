package xmldoc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/codedoc/doctree"
	"github.com/dhamidi/codedoc/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `// 'greet()' - Print a greeting & return "ok".
int					// O - Status
greet(const char *name,			// I - Who <to> greet
      int times = 1)			// I - Repeat count
{
  return (0);
}

typedef struct point_s			// A point
{
  int x;				// X
} point_t;

class Widget : public Base
{
  // A widget.

  public:

  void draw(void);
};
`

func scanned(t *testing.T) *doctree.Node {
	t.Helper()
	tree := doctree.NewRoot()
	require.NoError(t, scanner.Scan(strings.NewReader(sample), tree))
	return tree
}

func TestRoundTrip(t *testing.T) {
	tree := scanned(t)

	var first bytes.Buffer
	require.NoError(t, Save(&first, tree))

	loaded, err := Load(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, tree.String(), loaded.String())

	var second bytes.Buffer
	require.NoError(t, Save(&second, loaded))
	assert.Equal(t, first.String(), second.String())
}

func TestSaveLayout(t *testing.T) {
	root := doctree.NewRoot()
	fn := doctree.New(doctree.KindFunction, "f")
	rv := doctree.New(doctree.KindReturnvalue, "")
	rv.AddChild(doctree.NewType(doctree.Token{Text: "int"}))
	fn.AddChild(rv)
	fn.SetDescription("Do f.")
	doctree.Insert(root, fn)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, root))

	want := `<?xml version="1.0" encoding="UTF-8"?>
<codedoc xmlns="https://www.msweet.org" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="https://www.msweet.org/codedoc/codedoc.xsd">
  <function name="f">
    <returnvalue>
      <type>int</type>
    </returnvalue>
    <description>Do f.</description>
  </function>
</codedoc>
`
	assert.Equal(t, want, buf.String())
}

func TestLoadAttributesAndText(t *testing.T) {
	doc := `<?xml version="1.0"?>
<codedoc xmlns="https://www.msweet.org">
  <class name="Widget" parent="public Base">
    <variable name="size" scope="public">
      <type>const  size_t</type>
      <description>Size &amp; more</description>
    </variable>
  </class>
</codedoc>`

	root, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	class := root.Find(doctree.KindClass, "Widget")
	require.NotNil(t, class)
	assert.Equal(t, "public Base", class.Parent)

	v := class.Find(doctree.KindVariable, "size")
	require.NotNil(t, v)
	assert.Equal(t, "public", v.Scope)
	assert.Equal(t, "const size_t", v.TypeString())
	assert.Equal(t, "Size & more", v.DescriptionText())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"wrong root", "<html><body/></html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrNoCodedoc)
		})
	}

	_, err := Load(strings.NewReader("<codedoc><function"))
	assert.Error(t, err)
}

func TestLoadFileFallsBackToFreshTree(t *testing.T) {
	dir := t.TempDir()

	missing := LoadFile(filepath.Join(dir, "missing.xml"))
	assert.Empty(t, missing.Children)

	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<nope/>"), 0o644))
	assert.Empty(t, LoadFile(bad).Children)

	good := filepath.Join(dir, "good.xml")
	tree := scanned(t)
	require.NoError(t, SaveFile(good, tree))
	assert.Equal(t, tree.String(), LoadFile(good).String())
}
