package parser

import (
	"errors"
	"strings"
	"testing"
)

func parse(t *testing.T, input string) (*Node, *Parser) {
	t.Helper()
	p := ParseCompilationUnit(strings.NewReader(input), WithFile("module-info.java"))
	node := p.Finish()
	if node == nil {
		t.Fatalf("Finish returned nil: %v", p.Err())
	}
	if node.Kind != KindCompilationUnit {
		t.Fatalf("got %v, want CompilationUnit", node.Kind)
	}
	return node, p
}

func moduleDecl(t *testing.T, node *Node) *Node {
	t.Helper()
	decl := node.FirstChildOfKind(KindModuleDecl)
	if decl == nil {
		t.Fatalf("no ModuleDecl in:\n%s", node)
	}
	return decl
}

func TestModularCompilationUnit(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"simple module", "module com.example {}"},
		{"open module", "open module com.example {}"},
		{"module with import", "import java.util.List;\nmodule com.example {}"},
		{"module with static import", "import static java.util.Collections.emptyList;\nmodule com.example {}"},
		{"module with wildcard import", "import java.util.*;\nmodule com.example {}"},
		{"module with annotation", "@Deprecated\nmodule com.example {}"},
		{"module with requires", "module com.example {\n  requires java.base;\n}"},
		{"module with requires transitive", "module com.example {\n  requires transitive java.logging;\n}"},
		{"module with requires static", "module com.example {\n  requires static java.compiler;\n}"},
		{"module named like a modifier", "module com.example {\n  requires transitive;\n}"},
		{"module with exports", "module com.example {\n  exports com.example.api;\n}"},
		{"module with exports to", "module com.example {\n  exports com.example.internal to com.example.test;\n}"},
		{"module with opens to", "module com.example {\n  opens com.example.internal to com.example.test, com.example.other;\n}"},
		{"module with uses", "module com.example {\n  uses com.example.spi.Service;\n}"},
		{"module with provides", "module com.example {\n  provides com.example.spi.Service with com.example.impl.Impl1, com.example.impl.Impl2;\n}"},
		{"contextual keywords in names", "module open.to.with {\n  exports module.uses;\n}"},
		{
			"complete module",
			`import com.foo.Bar;
@Bar(name = "x", values = {1, 2,}, type = String[].class)
@Deprecated(since = "9", forRemoval = true)
open module com.example.app {
  requires java.base;
  requires static transitive java.logging;
  exports com.example.api;
  opens com.example.model;
  uses com.example.spi.Service;
  provides com.example.spi.Service with com.example.impl.ServiceImpl;
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, p := parse(t, tt.input)
			if errs := node.Errors(); len(errs) > 0 {
				t.Errorf("parse error in: %s", tt.input)
				printErrors(t, node, 0)
			}
			if len(p.Diagnostics()) > 0 {
				t.Errorf("unexpected diagnostics: %+v", p.Diagnostics())
			}
			moduleDecl(t, node)
		})
	}
}

func TestRequiresModifiers(t *testing.T) {
	tests := []struct {
		input     string
		modifiers []string
		module    string
	}{
		{"requires a;", nil, "a"},
		{"requires static a;", []string{"static"}, "a"},
		{"requires transitive static a.b;", []string{"transitive", "static"}, "a.b"},
		{"requires transitive;", nil, "transitive"},
		{"requires static transitive;", []string{"static"}, "transitive"},
		{"requires transitive.x;", nil, "transitive.x"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, _ := parse(t, "module m { "+tt.input+" }")
			req := moduleDecl(t, node).FirstChildOfKind(KindRequiresDirective)
			if req == nil {
				t.Fatal("no RequiresDirective")
			}
			var mods []string
			for _, id := range req.ChildrenOfKind(KindIdentifier) {
				mods = append(mods, id.TokenLiteral())
			}
			if strings.Join(mods, ",") != strings.Join(tt.modifiers, ",") {
				t.Errorf("modifiers = %v, want %v", mods, tt.modifiers)
			}
			if got := req.FirstChildOfKind(KindQualifiedName).QualifiedName(); got != tt.module {
				t.Errorf("module = %q, want %q", got, tt.module)
			}
		})
	}
}

func TestImportDecl(t *testing.T) {
	node, _ := parse(t, "import static a.b.C.d;\nimport x.y.*;\nmodule m {}")
	imports := node.ChildrenOfKind(KindImportDecl)
	if len(imports) != 2 {
		t.Fatalf("got %d imports, want 2", len(imports))
	}

	static := imports[0].FirstChildOfKind(KindIdentifier)
	if static == nil || static.TokenLiteral() != "static" {
		t.Error("first import should be static")
	}
	if got := imports[0].FirstChildOfKind(KindQualifiedName).QualifiedName(); got != "a.b.C.d" {
		t.Errorf("name = %q, want a.b.C.d", got)
	}

	ids := imports[1].ChildrenOfKind(KindIdentifier)
	if len(ids) != 1 || ids[0].TokenLiteral() != "*" {
		t.Error("second import should be a wildcard")
	}
	if got := imports[1].FirstChildOfKind(KindQualifiedName).QualifiedName(); got != "x.y" {
		t.Errorf("name = %q, want x.y", got)
	}
}

func TestAnnotationElementValues(t *testing.T) {
	tests := []struct {
		value string
		kind  NodeKind
	}{
		{"1", KindLiteral},
		{"-1", KindUnaryExpr},
		{"+1.5f", KindUnaryExpr},
		{"'c'", KindLiteral},
		{`"s"`, KindLiteral},
		{"true", KindLiteral},
		{"FOO", KindQualifiedName},
		{"Bar.FOO", KindQualifiedName},
		{"String.class", KindClassLiteral},
		{"java.lang.String[][].class", KindClassLiteral},
		{"int.class", KindClassLiteral},
		{"void.class", KindClassLiteral},
		{"{}", KindArrayInit},
		{"{1, 2}", KindArrayInit},
		{"@Nested(x = 1)", KindAnnotation},
		{"null", KindError},
		{"-FOO", KindError},
		{"1 == 2", KindLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			node, _ := parse(t, "@A(v = "+tt.value+") module m {}")
			anno := moduleDecl(t, node).FirstChildOfKind(KindAnnotation)
			if anno == nil {
				t.Fatal("no annotation")
			}
			el := anno.FirstChildOfKind(KindAnnotationElement)
			if el == nil {
				t.Fatalf("no element in:\n%s", anno)
			}
			if len(el.Children) != 2 {
				t.Fatalf("element has %d children, want 2", len(el.Children))
			}
			if got := el.Children[1].Kind; got != tt.kind {
				t.Errorf("value kind = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestAnnotationSingleValue(t *testing.T) {
	node, _ := parse(t, "@Noog({BUG, WUG}) @Marker @Empty() module m {}")
	annos := moduleDecl(t, node).ChildrenOfKind(KindAnnotation)
	if len(annos) != 3 {
		t.Fatalf("got %d annotations, want 3", len(annos))
	}

	arr := annos[0].FirstChildOfKind(KindArrayInit)
	if arr == nil || len(arr.ChildrenOfKind(KindQualifiedName)) != 2 {
		t.Errorf("Noog should carry a two element array:\n%s", annos[0])
	}
	if len(annos[1].Children) != 1 || len(annos[2].Children) != 1 {
		t.Error("marker annotations should only carry their name")
	}
}

func TestClassLiteralArrayDims(t *testing.T) {
	node, _ := parse(t, "@A(String[][].class) module m {}")
	lit := moduleDecl(t, node).FirstChildOfKind(KindAnnotation).FirstChildOfKind(KindClassLiteral)
	if lit == nil {
		t.Fatal("no class literal")
	}
	depth := 0
	typ := lit.Children[0]
	for typ.Kind == KindArrayType {
		depth++
		typ = typ.Children[0]
	}
	if depth != 2 {
		t.Errorf("array depth = %d, want 2", depth)
	}
	if typ.QualifiedName() != "String" {
		t.Errorf("element type = %q, want String", typ.QualifiedName())
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		errorNodes  int
		diagnostics int
	}{
		{"stray character in directive", "module m { r#quires x; }", 1, 1},
		{"two module declarations", "module a {} module b {}", 1, 0},
		{"missing semicolon", "module m { requires a }", 0, 1},
		{"empty input", "", 1, 0},
		{"unknown directive", "module m { needs a; requires b; }", 1, 0},
		{"garbage before module", "class X {} module m {}", 1, 0},
		{"missing module name", "module { }", 1, 0},
		{"unterminated string", "@A(\"x) module m {}", 0, 0},
		{"reserved word as name", "module public {}", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, p := parse(t, tt.input)
			if tt.name == "unterminated string" {
				if len(p.Diagnostics()) == 0 && len(node.Errors()) == 0 {
					t.Error("expected at least one problem")
				}
				return
			}
			if got := len(node.Errors()); got != tt.errorNodes {
				t.Errorf("error nodes = %d, want %d", got, tt.errorNodes)
				printErrors(t, node, 0)
			}
			if got := len(p.Diagnostics()); got != tt.diagnostics {
				t.Errorf("diagnostics = %d, want %d: %+v", got, tt.diagnostics, p.Diagnostics())
			}
		})
	}
}

func TestDiagnosticPositions(t *testing.T) {
	_, p := parse(t, "module m {\n  r#quires x;\n}")
	diags := p.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if d.Span.Start.Line != 2 || d.Span.Start.Column != 4 {
		t.Errorf("diagnostic at %d:%d, want 2:4", d.Span.Start.Line, d.Span.Start.Column)
	}
	if d.Token.Literal != "#" {
		t.Errorf("token = %q, want #", d.Token.Literal)
	}
	if !strings.Contains(d.Message, "unexpected character") {
		t.Errorf("message = %q", d.Message)
	}
}

func TestDuplicateModuleIsWrapped(t *testing.T) {
	node, _ := parse(t, "module a {} module b {}")
	if len(node.ChildrenOfKind(KindModuleDecl)) != 1 {
		t.Error("only the first module declaration should be a ModuleDecl child")
	}
	errs := node.Errors()
	if len(errs) != 1 || errs[0].Error.Message != "duplicate module declaration" {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if errs[0].FirstChildOfKind(KindModuleDecl) == nil {
		t.Error("duplicate declaration should be kept under the error node")
	}
}

func TestComments(t *testing.T) {
	p := ParseCompilationUnit(strings.NewReader("// a\nmodule m { /* b */ }"), WithComments())
	p.Finish()
	if len(p.Comments()) != 2 {
		t.Errorf("got %d comments, want 2", len(p.Comments()))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errRead
}

var errRead = errors.New("read failed")

func TestReadFailure(t *testing.T) {
	p := ParseCompilationUnit(failingReader{})
	if node := p.Finish(); node != nil {
		t.Error("expected nil node on read failure")
	}
	if p.Err() != errRead {
		t.Errorf("Err() = %v, want %v", p.Err(), errRead)
	}
}

func printErrors(t *testing.T, node *Node, depth int) {
	if node == nil {
		return
	}
	if node.Kind == KindError && node.Error != nil {
		t.Logf("%s error: %s at line %d", strings.Repeat("  ", depth), node.Error.Message, node.Span.Start.Line)
	}
	for _, child := range node.Children {
		printErrors(t, child, depth+1)
	}
}
