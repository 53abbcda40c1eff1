package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/modinfo/java/module"
)

// LineEncoder writes one tab-separated record per declaration, suited to
// grep and cut:
//
//	module	name	open|-
//	import	name	static|-
//	requires	module	static,transitive|-
//	uses	type
//	provides	type	impl,impl
//	exports	package	module,module|-
//	opens	package	module,module|-
//	annotation	name	key=value;key=value|-
type LineEncoder struct {
	w     io.Writer
	model *module.Model
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(m *module.Model) error {
	e.model = m
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	m := e.model

	open := "-"
	if m.IsOpen() {
		open = "open"
	}
	fmt.Fprintf(&sb, "module\t%s\t%s\n", m.Name(), open)

	for _, imp := range m.Imports().All() {
		static := "-"
		if imp.Static {
			static = "static"
		}
		fmt.Fprintf(&sb, "import\t%s\t%s\n", imp.Name, static)
	}

	for _, r := range m.RequireList() {
		fmt.Fprintf(&sb, "requires\t%s\t%s\n", r.Module, requireModifiersStr(r))
	}

	for _, u := range m.UsedServices() {
		fmt.Fprintf(&sb, "uses\t%s\n", u)
	}

	for _, p := range m.ProvidesList() {
		fmt.Fprintf(&sb, "provides\t%s\t%s\n", p.Service, strings.Join(p.Providers, ","))
	}

	for _, x := range m.ExportList() {
		fmt.Fprintf(&sb, "exports\t%s\t%s\n", x.Package, listStr(x.Targets))
	}

	for _, o := range m.OpensList() {
		fmt.Fprintf(&sb, "opens\t%s\t%s\n", o.Package, listStr(o.Targets))
	}

	for _, a := range m.Annotations() {
		fmt.Fprintf(&sb, "annotation\t%s\t%s\n", a.Name(), propertiesStr(a))
	}

	return []byte(sb.String()), nil
}

func requireModifiersStr(r module.Require) string {
	var mods []string
	if r.Static {
		mods = append(mods, "static")
	}
	if r.Transitive {
		mods = append(mods, "transitive")
	}
	return listStr(mods)
}

func listStr(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ",")
}

func propertiesStr(a *module.Annotation) string {
	if a.Len() == 0 {
		return "-"
	}
	var parts []string
	for _, k := range a.Keys() {
		v, _ := a.Property(k)
		parts = append(parts, k+"="+JavaValue(v))
	}
	return strings.Join(parts, ";")
}
