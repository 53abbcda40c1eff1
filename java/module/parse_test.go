package module

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/modinfo/java/parser"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	nodes  []*parser.Node
	syntax []*SyntaxError
}

func (r *recordingListener) OnNodeError(n *parser.Node) error {
	r.nodes = append(r.nodes, n)
	return nil
}

func (r *recordingListener) OnSyntaxError(e *SyntaxError) error {
	r.syntax = append(r.syntax, e)
	return nil
}

func TestParseReportsErrorNodes(t *testing.T) {
	src := "module some.stuff {\n requires foo.bar;\n }\n" + annotatedModule
	rec := &recordingListener{}

	m, err := ParseString(src, WithListener(rec))
	require.NoError(t, err)
	require.NotEmpty(t, rec.nodes)
	require.Equal(t, "some.stuff", m.Name())
	require.True(t, m.Requires("foo.bar"))
	require.False(t, m.Requires("module.annotations"))
	require.True(t, m.Imports().IsEmpty(), "imports after the module declaration are dropped")
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	src := strings.ReplaceAll(annotatedModule, "requires", "r#quires")
	rec := &recordingListener{}

	m, err := ParseString(src, WithListener(rec), WithFile("module-info.java"))
	require.NoError(t, err)
	require.NotNil(t, m)
	require.NotEmpty(t, rec.syntax)
	require.NotEmpty(t, rec.nodes)

	first := rec.syntax[0]
	require.Equal(t, "module-info.java", first.File)
	require.Equal(t, 33, first.Line)
	require.Equal(t, 6, first.Column)
	require.Equal(t, "#", first.Token)
	require.Equal(t, "build.thing", m.Name())
	require.True(t, m.Uses("AbstractWoogle"))
}

func TestParseFailingPolicy(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			"syntax error",
			"module m { requires a }",
			func(t *testing.T, err error) {
				var se *SyntaxError
				require.ErrorAs(t, err, &se)
				require.Contains(t, se.Message, "expected ';'")
			},
		},
		{
			"lexical error",
			"module m { requires a#b; }",
			func(t *testing.T, err error) {
				var se *SyntaxError
				require.ErrorAs(t, err, &se)
				require.Equal(t, 1, se.Line)
				require.Equal(t, 22, se.Column)
			},
		},
		{
			"error node",
			"module a {} module b {}",
			func(t *testing.T, err error) {
				var ne *NodeError
				require.ErrorAs(t, err, &ne)
				require.Contains(t, ne.Error(), "duplicate module declaration")
			},
		},
		{
			"number out of range",
			"@A(n = 99999999999999999999) module m {}",
			func(t *testing.T, err error) {
				var se *SyntaxError
				require.ErrorAs(t, err, &se)
				require.Equal(t, "99999999999999999999", se.Token)
				require.Error(t, se.Cause)
			},
		},
		{
			"null element value",
			"@A(n = null) module m {}",
			func(t *testing.T, err error) {
				var ne *NodeError
				require.ErrorAs(t, err, &ne)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseString(tt.input, WithListener(Failing))
			require.Nil(t, m)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			tt.check(t, err)
		})
	}
}

func TestParseTree(t *testing.T) {
	root, m, err := ParseTree(strings.NewReader("module m { requires a; }"), WithListener(Failing))
	require.NoError(t, err)
	require.Equal(t, "m", m.Name())
	decl := root.FirstChildOfKind(parser.KindModuleDecl)
	require.NotNil(t, decl)
	require.Len(t, decl.ChildrenOfKind(parser.KindRequiresDirective), 1)

	root, m, err = ParseTree(strings.NewReader("module m { requires a }"), WithListener(Failing))
	require.Error(t, err)
	require.Nil(t, m)
	require.NotNil(t, root, "tree survives an aborting listener")
}

func TestParseCollectorKeepsGoing(t *testing.T) {
	c := Collect()
	m, err := ParseString("@A(n = null, ok = 1) module m { requires a requires b; frobs c; uses d.E; }", WithListener(c))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(c.Errors), 2)
	require.Error(t, c.Err())
	require.True(t, m.Uses("d.E"))

	ok, found := mustAnnotation(t, m, "A").PropertyValue("ok")
	require.True(t, found)
	require.Equal(t, int32(1), ok)
}

func TestParseSilentReturnsPartialModel(t *testing.T) {
	m, err := ParseString("module m { requires ; exports a.b; }", WithListener(Silent))
	require.NoError(t, err)
	require.Empty(t, m.RequireList())
	require.True(t, m.Exports("a.b", "x"))
}

func TestParseEmptyInput(t *testing.T) {
	c := Collect()
	m, err := ParseString("", WithListener(c))
	require.NoError(t, err)
	require.Len(t, c.Errors, 1)
	require.Empty(t, m.Name())
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "module-info.java")
	require.NoError(t, os.WriteFile(path, []byte(enumConstantsModule), 0o644))

	m, err := ParseFile(path, WithListener(Failing))
	require.NoError(t, err)
	require.Equal(t, "poodle.farb", m.Name())

	_, err = ParseFile(filepath.Join(dir, "missing.java"))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("module m { r#quires x; }"), 0o644))
	_, err = ParseFile(path, WithListener(Failing))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, path, pe.File)
	require.Contains(t, err.Error(), path)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestParseReadError(t *testing.T) {
	_, err := Parse(failingReader{})
	require.ErrorContains(t, err, "disk on fire")
}

func TestTeeReturnsFirstAbort(t *testing.T) {
	c := Collect()
	l := Tee(c, Failing)
	_, err := ParseString("module a {} module b {}", WithListener(l))
	require.Error(t, err)
	require.Len(t, c.Errors, 1)
}

func TestListenerNamed(t *testing.T) {
	for _, name := range []string{"silent", "log", "fail", ""} {
		l, err := ListenerNamed(name, log)
		require.NoError(t, err, name)
		require.NotNil(t, l)
	}
	_, err := ListenerNamed("panic", log)
	require.ErrorContains(t, err, "unknown error policy")
}
