package format

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dhamidi/modinfo/java/module"
)

// JSONEncoder renders a model as an indented JSON object. Keys appear in
// a fixed order and empty directive groups are left out.
type JSONEncoder struct {
	w     io.Writer
	model *module.Model
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(m *module.Model) error {
	e.model = m
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	p := &jsonPrinter{}
	p.model(e.model, 0)
	p.buf.WriteByte('\n')
	return p.buf.Bytes(), nil
}

// jsonPrinter writes JSON with four spaces of indent per level. Every
// method takes the depth of the value it writes.
type jsonPrinter struct {
	buf bytes.Buffer
}

func (p *jsonPrinter) indent(depth int) {
	p.buf.WriteByte('\n')
	p.buf.WriteString(strings.Repeat("    ", depth))
}

func (p *jsonPrinter) str(s string) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	p.buf.Write(bytes.TrimSuffix(b.Bytes(), []byte{'\n'}))
}

// object writes the fields produced by body between braces. body calls
// field once per key.
func (p *jsonPrinter) object(depth int, body func(field func(key string) int)) {
	p.buf.WriteByte('{')
	n := 0
	body(func(key string) int {
		if n > 0 {
			p.buf.WriteByte(',')
		}
		n++
		p.indent(depth + 1)
		p.str(key)
		p.buf.WriteString(" : ")
		return depth + 1
	})
	if n > 0 {
		p.indent(depth)
	}
	p.buf.WriteByte('}')
}

func (p *jsonPrinter) list(depth, n int, item func(i, depth int)) {
	if n == 0 {
		p.buf.WriteString("[]")
		return
	}
	p.buf.WriteByte('[')
	for i := range n {
		if i > 0 {
			p.buf.WriteByte(',')
		}
		p.indent(depth + 1)
		item(i, depth+1)
	}
	p.indent(depth)
	p.buf.WriteByte(']')
}

func (p *jsonPrinter) stringList(depth int, items []string) {
	p.list(depth, len(items), func(i, _ int) { p.str(items[i]) })
}

func (p *jsonPrinter) model(m *module.Model, depth int) {
	p.object(depth, func(field func(string) int) {
		field("name")
		p.str(m.Name())
		field("open")
		p.buf.WriteString(strconv.FormatBool(m.IsOpen()))

		if names := m.Imports().Names(); len(names) > 0 {
			p.stringList(field("imports"), names)
		}
		if uses := m.UsedServices(); len(uses) > 0 {
			p.stringList(field("uses"), uses)
		}
		if requires := m.RequireList(); len(requires) > 0 {
			d := field("requires")
			p.list(d, len(requires), func(i, d int) { p.require(requires[i], d) })
		}
		if provides := m.ProvidesList(); len(provides) > 0 {
			d := field("provides")
			p.list(d, len(provides), func(i, d int) { p.provides(provides[i], d) })
		}
		if exports := m.ExportList(); len(exports) > 0 {
			d := field("exports")
			p.list(d, len(exports), func(i, d int) {
				p.targeted(d, "exportedPackage", exports[i].Package, exports[i].Targets)
			})
		}
		if opens := m.OpensList(); len(opens) > 0 {
			d := field("opens")
			p.list(d, len(opens), func(i, d int) {
				p.targeted(d, "package", opens[i].Package, opens[i].Targets)
			})
		}
		if annotations := m.Annotations(); len(annotations) > 0 {
			d := field("annotations")
			p.list(d, len(annotations), func(i, d int) { p.annotation(annotations[i], d) })
		}
	})
}

func (p *jsonPrinter) require(r module.Require, depth int) {
	p.object(depth, func(field func(string) int) {
		field("module")
		p.str(r.Module)
		field("transitive")
		p.buf.WriteString(strconv.FormatBool(r.Transitive))
		field("static")
		p.buf.WriteString(strconv.FormatBool(r.Static))
	})
}

func (p *jsonPrinter) provides(pr module.Provides, depth int) {
	p.object(depth, func(field func(string) int) {
		field("type")
		p.str(pr.Service)
		p.stringList(field("with"), pr.Providers)
	})
}

func (p *jsonPrinter) targeted(depth int, key, pkg string, targets []string) {
	p.object(depth, func(field func(string) int) {
		field(key)
		p.str(pkg)
		if len(targets) > 0 {
			p.stringList(field("to"), targets)
		}
	})
}

func (p *jsonPrinter) annotation(a *module.Annotation, depth int) {
	p.object(depth, func(field func(string) int) {
		field("annotation")
		p.str(a.Name())
		if a.Len() == 0 {
			return
		}
		d := field("properties")
		p.object(d, func(prop func(string) int) {
			for _, k := range a.Keys() {
				v, _ := a.Property(k)
				p.value(v, prop(k))
			}
		})
	})
}

func (p *jsonPrinter) value(v *module.Value, depth int) {
	p.object(depth, func(field func(string) int) {
		field("kind")
		p.str(v.Kind().String())
		d := field("value")
		switch v.Kind() {
		case module.KindClass, module.KindEnum, module.KindString:
			text, _ := v.Text()
			p.str(text)
		case module.KindChar:
			c, _ := v.Char()
			p.str(string(c))
		case module.KindBoolean:
			b, _ := v.Bool()
			p.buf.WriteString(strconv.FormatBool(b))
		case module.KindInt:
			n, _ := v.Int()
			p.buf.WriteString(strconv.FormatInt(n, 10))
		case module.KindFloat:
			f, _ := v.Float()
			p.float(f, v.Wide())
		case module.KindArray:
			elems := v.Elements()
			p.list(d, len(elems), func(i, d int) { p.value(elems[i], d) })
		case module.KindAnnotation:
			p.annotation(v.Annotation(), d)
		}
	})
}

func (p *jsonPrinter) float(f float64, double bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		p.str(strconv.FormatFloat(f, 'g', -1, 64))
		return
	}
	bits := 32
	if double {
		bits = 64
	}
	p.buf.WriteString(strconv.FormatFloat(f, 'g', -1, bits))
}
