package codebase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func labels(items []CompletionItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

// completeAt places the cursor at the "|" marker in src.
func completeAt(t *testing.T, c *Codebase, src string) []CompletionItem {
	t.Helper()
	before, _, ok := strings.Cut(src, "|")
	require.True(t, ok, "missing cursor marker")
	line := strings.Count(before, "\n") + 1
	column := len([]rune(before[strings.LastIndex(before, "\n")+1:]))

	path := "/work/app/module-info.java"
	c.UpdateFile(path, []byte(strings.Replace(src, "|", "", 1)))
	return c.CompletionsAtPoint(path, line, column)
}

func TestCompletionsAtPoint(t *testing.T) {
	c := New("/work", 0)
	c.UpdateFile("/work/core/module-info.java", []byte("module com.example.core { }"))
	c.UpdateFile("/work/util/module-info.java", []byte("module com.example.util { }"))
	c.UpdateFile("/work/test/module-info.java", []byte("module org.test { }"))

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"after requires", "module app {\n    requires |\n}", []string{"com.example.core", "com.example.util", "org.test"}},
		{"partial name", "module app {\n    requires com.ex|\n}", []string{"com.example.core", "com.example.util"}},
		{"after modifiers", "module app {\n    requires static transitive o|\n}", []string{"org.test"}},
		{"after to", "module app {\n    exports a.b to |\n}", []string{"com.example.core", "com.example.util", "org.test"}},
		{"after comma", "module app {\n    opens a.b to org.test, com.example.u|\n}", []string{"com.example.util"}},
		{"after comma no space", "module app { opens a.b to org.test,|", []string{"com.example.core", "com.example.util", "org.test"}},
		{"exported package", "module app {\n    exports |\n}", nil},
		{"uses type", "module app {\n    uses |\n}", nil},
		{"after complete name", "module app {\n    requires org.test |\n}", nil},
		{"keywords", "module app {\n    re|\n}", []string{"requires"}},
		{"all keywords", "module app {\n    requires a;\n    |\n}", []string{"requires", "exports", "opens", "uses", "provides"}},
		{"outside body", "|module app { }", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, labels(completeAt(t, c, tt.src)))
		})
	}
}

func TestCompletionsExcludeOwnModule(t *testing.T) {
	c := New("/work", 0)
	c.UpdateFile("/work/other/module-info.java", []byte("module other { }"))
	require.Equal(t, []string{"other"}, labels(completeAt(t, c, "module app {\n    requires |\n}")))
	c.UpdateFile("/work/dup/module-info.java", []byte("module app { }"))
	require.Equal(t, []string{"other"}, labels(completeAt(t, c, "module app {\n    requires |\n}")))
}

func TestCompletionsUnknownFile(t *testing.T) {
	c := New("/work", 0)
	require.Nil(t, c.CompletionsAtPoint("/work/none/module-info.java", 1, 0))
	c.UpdateFile("/work/module-info.java", []byte("module m { }"))
	require.Nil(t, c.CompletionsAtPoint("/work/module-info.java", 5, 0))
}

func TestStatementWords(t *testing.T) {
	require.Equal(t, []string{"exports", "p", "to", "a", ","}, statementWords("module m { requires x; exports p to a,"))
	require.Empty(t, statementWords("module m {\n    "))
	require.Equal(t, "com.ex", trailingName("requires com.ex"))
	require.Equal(t, "", trailingName("requires "))
}
