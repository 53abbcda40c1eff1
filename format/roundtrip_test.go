package format

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/modinfo/java/module"
	"github.com/stretchr/testify/require"
)

var testcasesDir string
var testFilter string

func init() {
	flag.StringVar(&testcasesDir, "testcases", "", "directory containing module-info test files")
	flag.StringVar(&testFilter, "filter", "", "filter test files by substring match on filename")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

// TestRoundTrip_Testcases parses every .java file under testdata (or
// -testcases), renders it, and checks that the rendering parses back to
// an equal model, both as written and resolved.
// Run one file with: go test ./format -run TestRoundTrip_Testcases/annotated
func TestRoundTrip_Testcases(t *testing.T) {
	dir := testcasesDir
	if dir == "" {
		dir = "testdata"
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".java") {
			if testFilter != "" && !strings.Contains(path, testFilter) {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk testcases directory: %v", err)
	}
	if len(files) == 0 {
		t.Skipf("no .java files found in %s", dir)
	}

	for _, file := range files {
		relPath, err := filepath.Rel(dir, file)
		if err != nil {
			relPath = filepath.Base(file)
		}
		testName := strings.ReplaceAll(relPath, string(filepath.Separator), "_")
		testName = strings.TrimSuffix(testName, ".java")

		t.Run(testName, func(t *testing.T) {
			runRoundTripTest(t, file)
		})
	}
}

func runRoundTripTest(t *testing.T, filename string) {
	orig, err := module.ParseFile(filename, module.WithListener(module.Failing))
	if err != nil {
		t.Fatalf("failed to parse original file: %v", err)
	}

	for _, tc := range []struct {
		name  string
		model *module.Model
	}{
		{"as written", orig},
		{"resolved", orig.Resolved()},
	} {
		rendered := Java(tc.model)
		reparsed, err := module.ParseString(rendered, module.WithListener(module.Failing))
		if err != nil {
			t.Errorf("%s: rendered output does not parse: %v\n\n=== Rendered output ===\n%s", tc.name, err, rendered)
			continue
		}
		if !tc.model.Equal(reparsed) {
			t.Errorf("%s: model changed after round trip\n\n=== Rendered ===\n%s\n=== Re-rendered ===\n%s",
				tc.name, rendered, Java(reparsed))
		}
		if again := Java(reparsed); again != rendered {
			t.Errorf("%s: rendering is not stable:\n%s\n---\n%s", tc.name, rendered, again)
		}
	}
}

func parseTestdata(t *testing.T, name string) *module.Model {
	t.Helper()
	m, err := module.ParseFile(filepath.Join("testdata", name), module.WithListener(module.Failing))
	require.NoError(t, err)
	return m
}

func TestJavaResolvedEnumConstants(t *testing.T) {
	text := Java(parseTestdata(t, "enum_constants.java").Resolved())
	require.Contains(t, text, "@com.foo.SomeAnno(value = {com.foo.SomeEnum.ONE, com.foo.SomeEnum.TWO, com.foo.SomeEnum.THREE})")
	require.Contains(t, text, "@com.foo.OtherAnno(value = {com.foo.Oe.FIRST, com.foo.Oe.SECOND, com.foo.Oe.THIRD})")
	require.NotContains(t, text, "import ")
}

func TestJavaLayout(t *testing.T) {
	m, err := module.ParseString(`import b.B;
import static a.A.X;
@B(x = 1, a = "s") @C
module m { opens o; exports p to r, q; provides S with J, I; uses b.B; requires static r; }`,
		module.WithListener(module.Failing))
	require.NoError(t, err)

	want := `import static a.A.X;
import b.B;

@B(a = "s", x = 1)
@C
module m {

    requires static r;
    uses b.B;
    provides S with I, J;
    exports p to q, r;
    opens o;
}
`
	require.Equal(t, want, Java(m))
}

func TestJavaTextBlockRoundTrip(t *testing.T) {
	src := "@A(s = \"\"\"\n  hello\n  \"\"\") module m {}"
	m, err := module.ParseString(src, module.WithListener(module.Failing))
	require.NoError(t, err)

	rendered := Java(m)
	require.Contains(t, rendered, "@A(s = \"\"\"\n  hello\n  \"\"\")")
	reparsed, err := module.ParseString(rendered, module.WithListener(module.Failing))
	require.NoError(t, err)
	require.True(t, m.Equal(reparsed))
}

func TestJavaEscapedCharKeepsBackslash(t *testing.T) {
	m, err := module.ParseString(`@A(c = '\n') module m {}`, module.WithListener(module.Failing))
	require.NoError(t, err)

	rendered := Java(m)
	require.Contains(t, rendered, `@A(c = '\\')`)
	reparsed, err := module.ParseString(rendered, module.WithListener(module.Failing))
	require.NoError(t, err)
	require.True(t, m.Equal(reparsed))
	require.Equal(t, rendered, Java(reparsed))
}

func TestJavaMinimal(t *testing.T) {
	m, err := module.ParseString("open module m {}", module.WithListener(module.Failing))
	require.NoError(t, err)
	require.Equal(t, "open module m {\n\n}\n", Java(m))
}

func TestJavaValue(t *testing.T) {
	tests := []struct {
		value *module.Value
		want  string
	}{
		{module.ClassValue("String[]"), "String[].class"},
		{module.EnumValue("A.B"), "A.B"},
		{module.StringValue(`a"b`), `"a"b"`},
		{module.StringValue("\n  a\n  "), "\"\"\"\n  a\n  \"\"\""},
		{module.StringValue("a\nb"), "\"\"\"\na\nb\"\"\""},
		{module.CharValue('c'), "'c'"},
		{module.CharValue('\''), `'\''`},
		{module.CharValue('\\'), `'\\'`},
		{module.BoolValue(true), "true"},
		{module.IntValue(-3), "-3"},
		{module.LongValue(3), "3L"},
		{module.FloatValue(1.5), "1.5F"},
		{module.DoubleValue(2), "2.0D"},
		{module.DoubleValue(1e21), "1e+21D"},
		{module.ArrayValue(), "{}"},
		{module.ArrayValue(module.IntValue(1), module.ArrayValue(module.IntValue(2))), "{1, {2}}"},
		{module.NestedValue(module.NewAnnotation("A", nil)), "@A"},
		{module.NestedValue(module.NewAnnotation("A", map[string]*module.Value{
			"value": module.IntValue(1),
		})), "@A(value = 1)"},
	}
	for _, tt := range tests {
		if got := JavaValue(tt.value); got != tt.want {
			t.Errorf("JavaValue(%s) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestJavaFloat(t *testing.T) {
	tests := []struct {
		f      float64
		double bool
		want   string
	}{
		{0.1, false, "0.1F"},
		{0.1, true, "0.1D"},
		{-0.5, true, "-0.5D"},
		{1e-7, true, "1e-07D"},
		{posInf(), true, "Double.POSITIVE_INFINITY"},
		{-posInf(), false, "Float.NEGATIVE_INFINITY"},
		{posInf() - posInf(), true, "Double.NaN"},
	}
	for _, tt := range tests {
		if got := javaFloat(tt.f, tt.double); got != tt.want {
			t.Errorf("javaFloat(%v, %v) = %s, want %s", tt.f, tt.double, got, tt.want)
		}
	}
}

func posInf() float64 {
	zero := 0.0
	return 1 / zero
}
