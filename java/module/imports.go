package module

import (
	"slices"
	"strings"
)

// Import is one import declaration of a module compilation unit. Name is
// fully qualified; wildcard imports end in ".*".
type Import struct {
	Name   string
	Static bool
}

// Imports is the sorted, de-duplicated import set of a compilation unit,
// used to qualify short type names. The zero value is an empty set that
// still resolves well-known java.lang names.
type Imports struct {
	entries []Import
}

// NewImports builds an import set. Leading and trailing dots are trimmed;
// a name imported both statically and non-statically is kept once, as
// static.
func NewImports(imports ...Import) Imports {
	byName := make(map[string]bool, len(imports))
	for _, imp := range imports {
		name := strings.Trim(imp.Name, ".")
		if name == "" {
			continue
		}
		byName[name] = byName[name] || imp.Static
	}
	entries := make([]Import, 0, len(byName))
	for name, static := range byName {
		entries = append(entries, Import{Name: name, Static: static})
	}
	slices.SortFunc(entries, func(a, b Import) int {
		return strings.Compare(a.Name, b.Name)
	})
	return Imports{entries: entries}
}

// ImportNames builds a non-static import set from plain names.
func ImportNames(names ...string) Imports {
	imports := make([]Import, len(names))
	for i, name := range names {
		imports[i] = Import{Name: name}
	}
	return NewImports(imports...)
}

func (im Imports) Len() int {
	return len(im.entries)
}

func (im Imports) IsEmpty() bool {
	return len(im.entries) == 0
}

// All returns the imports in sorted order.
func (im Imports) All() []Import {
	return slices.Clone(im.entries)
}

// Names returns the imported names in sorted order.
func (im Imports) Names() []string {
	names := make([]string, len(im.entries))
	for i, e := range im.entries {
		names[i] = e.Name
	}
	return names
}

func (im Imports) Equal(other Imports) bool {
	return slices.Equal(im.entries, other.entries)
}

// Resolve qualifies a simple type name. Names that already contain a dot
// are returned unchanged. Otherwise the first import, in sorted order,
// whose last segment is name wins, then the built-in java.lang names. An
// unknown name is returned unchanged.
//
// When two imports share a last segment the lexicographically first one
// is chosen; import legality is not validated.
func (im Imports) Resolve(name string) string {
	if name == "" || strings.Contains(name, ".") {
		return name
	}
	suffix := "." + name
	for _, e := range im.entries {
		if strings.HasSuffix(e.Name, suffix) {
			return e.Name
		}
	}
	for _, builtin := range javaLangTypes {
		if strings.HasSuffix(builtin, suffix) {
			return builtin
		}
	}
	return name
}

// javaLangTypes are resolvable without an import.
var javaLangTypes = []string{
	"java.lang.AssertionError",
	"java.lang.Boolean",
	"java.lang.Byte",
	"java.lang.CharSequence",
	"java.lang.Character",
	"java.lang.Class",
	"java.lang.Cloneable",
	"java.lang.Comparable",
	"java.lang.Deprecated",
	"java.lang.Double",
	"java.lang.Enum",
	"java.lang.Error",
	"java.lang.Exception",
	"java.lang.Float",
	"java.lang.FunctionalInterface",
	"java.lang.IllegalArgumentException",
	"java.lang.IllegalStateException",
	"java.lang.Integer",
	"java.lang.Long",
	"java.lang.Math",
	"java.lang.Module",
	"java.lang.ModuleLayer",
	"java.lang.NullPointerException",
	"java.lang.Number",
	"java.lang.Object",
	"java.lang.Override",
	"java.lang.Process",
	"java.lang.ProcessBuilder",
	"java.lang.Record",
	"java.lang.Runtime",
	"java.lang.RuntimeException",
	"java.lang.SafeVarargs",
	"java.lang.Short",
	"java.lang.String",
	"java.lang.StringBuffer",
	"java.lang.StringBuilder",
	"java.lang.SuppressWarnings",
	"java.lang.Thread",
	"java.lang.ThreadDeath",
	"java.lang.ThreadGroup",
	"java.lang.ThreadLocal",
	"java.lang.Throwable",
	"java.lang.UnsupportedOperationException",
	"java.lang.Void",
}
