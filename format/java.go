package format

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dhamidi/modinfo/java/module"
)

// JavaEncoder renders a model as module-info.java source. The output
// parses back to an equal model.
type JavaEncoder struct {
	w     io.Writer
	model *module.Model
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(m *module.Model) error {
	e.model = m
	return write(e.w, e)
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	return []byte(Java(e.model)), nil
}

// Java renders m as module-info.java source: imports, annotations, the
// module header, then requires, uses, provides, exports and opens
// directives, each group in sorted order.
func Java(m *module.Model) string {
	var sb strings.Builder

	for i, imp := range m.Imports().All() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("import ")
		if imp.Static {
			sb.WriteString("static ")
		}
		sb.WriteString(imp.Name)
		sb.WriteByte(';')
	}
	if !m.Imports().IsEmpty() {
		sb.WriteByte('\n')
	}

	if annotations := m.Annotations(); len(annotations) > 0 {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		for _, a := range annotations {
			writeAnnotation(&sb, a)
			sb.WriteByte('\n')
		}
	}

	if m.IsOpen() {
		sb.WriteString("open ")
	}
	sb.WriteString("module ")
	sb.WriteString(m.Name())
	sb.WriteString(" {\n")

	for _, r := range m.RequireList() {
		sb.WriteString("\n    requires ")
		if r.Static {
			sb.WriteString("static ")
		}
		if r.Transitive {
			sb.WriteString("transitive ")
		}
		sb.WriteString(r.Module)
		sb.WriteByte(';')
	}
	for _, u := range m.UsedServices() {
		sb.WriteString("\n    uses ")
		sb.WriteString(u)
		sb.WriteByte(';')
	}
	for _, p := range m.ProvidesList() {
		sb.WriteString("\n    provides ")
		sb.WriteString(p.Service)
		sb.WriteString(" with ")
		sb.WriteString(strings.Join(p.Providers, ", "))
		sb.WriteByte(';')
	}
	for _, x := range m.ExportList() {
		writeTargeted(&sb, "exports", x.Package, x.Targets)
	}
	for _, o := range m.OpensList() {
		writeTargeted(&sb, "opens", o.Package, o.Targets)
	}

	sb.WriteString("\n}\n")
	return sb.String()
}

func writeTargeted(sb *strings.Builder, keyword, pkg string, targets []string) {
	sb.WriteString("\n    ")
	sb.WriteString(keyword)
	sb.WriteByte(' ')
	sb.WriteString(pkg)
	if len(targets) > 0 {
		sb.WriteString(" to ")
		sb.WriteString(strings.Join(targets, ", "))
	}
	sb.WriteByte(';')
}

// JavaAnnotation renders a as Java source, with every element written as
// key = value.
func JavaAnnotation(a *module.Annotation) string {
	var sb strings.Builder
	writeAnnotation(&sb, a)
	return sb.String()
}

// JavaValue renders v as a Java element value.
func JavaValue(v *module.Value) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func writeAnnotation(sb *strings.Builder, a *module.Annotation) {
	sb.WriteByte('@')
	sb.WriteString(a.Name())
	if a.Len() == 0 {
		return
	}
	sb.WriteByte('(')
	for i, k := range a.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		v, _ := a.Property(k)
		sb.WriteString(k)
		sb.WriteString(" = ")
		writeValue(sb, v)
	}
	sb.WriteByte(')')
}

// writeString emits multi-line payloads as a text block. A text block
// must open with a line terminator, so one is added when the payload
// does not start with it.
func writeString(sb *strings.Builder, text string) {
	if !strings.ContainsAny(text, "\r\n") {
		sb.WriteByte('"')
		sb.WriteString(text)
		sb.WriteByte('"')
		return
	}
	sb.WriteString(`"""`)
	if text[0] != '\n' && text[0] != '\r' {
		sb.WriteByte('\n')
	}
	sb.WriteString(text)
	sb.WriteString(`"""`)
}

func writeValue(sb *strings.Builder, v *module.Value) {
	switch v.Kind() {
	case module.KindClass:
		text, _ := v.Text()
		sb.WriteString(text)
		sb.WriteString(".class")
	case module.KindEnum:
		text, _ := v.Text()
		sb.WriteString(text)
	case module.KindString:
		text, _ := v.Text()
		writeString(sb, text)
	case module.KindChar:
		c, _ := v.Char()
		sb.WriteByte('\'')
		if c == '\\' || c == '\'' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(c)
		sb.WriteByte('\'')
	case module.KindBoolean:
		b, _ := v.Bool()
		sb.WriteString(strconv.FormatBool(b))
	case module.KindInt:
		n, _ := v.Int()
		sb.WriteString(strconv.FormatInt(n, 10))
		if v.Wide() {
			sb.WriteByte('L')
		}
	case module.KindFloat:
		f, _ := v.Float()
		sb.WriteString(javaFloat(f, v.Wide()))
	case module.KindArray:
		sb.WriteByte('{')
		for i, elem := range v.Elements() {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, elem)
		}
		sb.WriteByte('}')
	case module.KindAnnotation:
		writeAnnotation(sb, v.Annotation())
	}
}

// javaFloat renders a float or double literal with its type suffix.
// Non-finite values have no literal form and are written as the
// corresponding constant.
func javaFloat(f float64, double bool) string {
	typ, suffix, bits := "Float", "F", 32
	if double {
		typ, suffix, bits = "Double", "D", 64
	}
	switch {
	case math.IsNaN(f):
		return typ + ".NaN"
	case math.IsInf(f, 1):
		return typ + ".POSITIVE_INFINITY"
	case math.IsInf(f, -1):
		return typ + ".NEGATIVE_INFINITY"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s + suffix
}
