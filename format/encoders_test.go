package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/modinfo/java/module"
	"github.com/dhamidi/modinfo/java/parser"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func mustParse(t *testing.T, src string) *module.Model {
	t.Helper()
	m, err := module.ParseString(src, module.WithListener(module.Failing))
	require.NoError(t, err)
	return m
}

func TestJSONLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(mustParse(t, "module m { requires a; }")))

	want := `{
    "name" : "m",
    "open" : false,
    "requires" : [
        {
            "module" : "a",
            "transitive" : false,
            "static" : false
        }
    ]
}
`
	require.Equal(t, want, buf.String())
}

func TestJSONIsValid(t *testing.T) {
	for _, name := range []string{"annotated.java", "enum_constants.java", "every_value.java"} {
		t.Run(name, func(t *testing.T) {
			m := parseTestdata(t, name)
			for _, model := range []*module.Model{m, m.Resolved()} {
				text, err := (&JSONEncoder{model: model}).MarshalText()
				require.NoError(t, err)
				require.True(t, json.Valid(text), string(text))
			}
		})
	}
}

func TestJSONStructure(t *testing.T) {
	text, err := (&JSONEncoder{model: parseTestdata(t, "every_value.java")}).MarshalText()
	require.NoError(t, err)

	var doc struct {
		Name     string `json:"name"`
		Open     bool   `json:"open"`
		Imports  []string
		Requires []struct {
			Module     string `json:"module"`
			Static     bool   `json:"static"`
			Transitive bool   `json:"transitive"`
		} `json:"requires"`
		Exports []struct {
			Package string   `json:"exportedPackage"`
			To      []string `json:"to"`
		} `json:"exports"`
		Opens []struct {
			Package string   `json:"package"`
			To      []string `json:"to"`
		} `json:"opens"`
		Provides []struct {
			Type string   `json:"type"`
			With []string `json:"with"`
		} `json:"provides"`
		Annotations []struct {
			Annotation string `json:"annotation"`
			Properties map[string]struct {
				Kind  string          `json:"kind"`
				Value json.RawMessage `json:"value"`
			} `json:"properties"`
		} `json:"annotations"`
	}
	require.NoError(t, json.Unmarshal(text, &doc))

	require.Equal(t, "org.example.core", doc.Name)
	require.True(t, doc.Open)
	require.Len(t, doc.Imports, 3)
	require.Len(t, doc.Requires, 4)
	require.Equal(t, "org.example.core.api", doc.Exports[0].Package)
	require.Nil(t, doc.Exports[0].To)
	require.Equal(t, []string{"org.example.plugin", "org.example.test"}, doc.Exports[1].To)
	require.Equal(t, "org.example.core.internal", doc.Opens[0].Package)
	require.Equal(t, []string{"org.example.core.DefaultPlugin", "org.example.core.FallbackPlugin"}, doc.Provides[0].With)

	config := doc.Annotations[0]
	require.Equal(t, "Config", config.Annotation)
	kinds := map[string]string{}
	for k, v := range config.Properties {
		kinds[k] = v.Kind
	}
	require.Equal(t, map[string]string{
		"name":      "STRING",
		"letter":    "CHAR",
		"backslash": "CHAR",
		"enabled":   "BOOLEAN",
		"count":     "INT",
		"big":       "INT",
		"ratio":     "FLOAT",
		"precise":   "FLOAT",
		"whole":     "FLOAT",
		"type":      "CLASS",
		"primitive": "CLASS",
		"policy":    "ENUM",
		"nested":    "ANNOTATION",
		"empty":     "ARRAY",
		"matrix":    "ARRAY",
	}, kinds)
	require.Equal(t, `"service \\\"core\\\""`, string(config.Properties["name"].Value))
	require.Equal(t, "-42", string(config.Properties["count"].Value))
	require.Equal(t, "[]", string(config.Properties["empty"].Value))
}

func TestJSONEscapesStrings(t *testing.T) {
	m := module.NewModel(module.Declaration{
		Name: "m",
		Annotations: []*module.Annotation{module.NewAnnotation("A", map[string]*module.Value{
			"s": module.StringValue("tab\there <b>\n"),
		})},
	})
	text, err := (&JSONEncoder{model: m}).MarshalText()
	require.NoError(t, err)
	require.True(t, json.Valid(text))
	require.Contains(t, string(text), `"tab\there <b>\n"`)
}

func TestYAMLStructure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLEncoder(&buf).Encode(parseTestdata(t, "annotated.java")))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, "build.thing", doc["name"])
	require.Equal(t, false, doc["open"])
	require.NotContains(t, doc, "exports")
	require.Len(t, doc["requires"], 4)
	require.Len(t, doc["annotations"], 9)
	require.True(t, strings.HasPrefix(buf.String(), "name: build.thing\nopen: false\nimports:\n"), buf.String())

	annotations := doc["annotations"].([]any)
	slarg := annotations[4].(map[string]any)
	require.Equal(t, "Slarg", slarg["annotation"])
	props := slarg["properties"].(map[string]any)
	require.Equal(t, map[string]any{"kind": "CHAR", "value": "g"}, props["mub"])
	require.Equal(t, map[string]any{"kind": "INT", "value": 524324}, props["gug"])
	require.Equal(t, map[string]any{"kind": "FLOAT", "value": 0.432}, props["wig"])
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	m := mustParse(t, `import static a.A.X;
@B(x = 1, y = {"a", "b"}) @C
open module m { requires static transitive r; uses S; provides S with I; exports p; opens o to q, r; }`)
	require.NoError(t, NewLineEncoder(&buf).Encode(m))

	want := strings.Join([]string{
		"module\tm\topen",
		"import\ta.A.X\tstatic",
		"requires\tr\tstatic,transitive",
		"uses\tS",
		"provides\tS\tI",
		"exports\tp\t-",
		"opens\to\tq,r",
		`annotation	B	x=1;y={"a", "b"}`,
		"annotation\tC\t-",
	}, "\n") + "\n"
	require.Equal(t, want, buf.String())
}

func TestNewEncoder(t *testing.T) {
	m := mustParse(t, "module m {}")
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			enc, err := NewEncoder(name, &buf)
			require.NoError(t, err)
			require.NoError(t, enc.Encode(m))
			require.Contains(t, buf.String(), "m")
		})
	}
	_, err := NewEncoder("xml", nil)
	require.ErrorContains(t, err, `unknown format "xml"`)
}

func TestASTJSONEncoder(t *testing.T) {
	p := parser.ParseCompilationUnit(strings.NewReader("module m { requires a }"))
	root := p.Finish()
	require.NotNil(t, root)

	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).Encode("module-info.java", root, p.Diagnostics()))

	var doc struct {
		File string `json:"file"`
		Tree struct {
			Kind string `json:"kind"`
		} `json:"tree"`
		Diagnostics []struct {
			Line    int    `json:"line"`
			Column  int    `json:"column"`
			Offset  int    `json:"offset"`
			Message string `json:"message"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, "module-info.java", doc.File)
	require.Equal(t, "CompilationUnit", doc.Tree.Kind)
	require.Len(t, doc.Diagnostics, 1)
	require.Equal(t, 23, doc.Diagnostics[0].Column)
	require.Equal(t, 22, doc.Diagnostics[0].Offset)
}
