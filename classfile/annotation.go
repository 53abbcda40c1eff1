package classfile

import (
	"fmt"
	"strings"

	"github.com/dhamidi/modinfo/java/module"
)

func parseAnnotations(info []byte, cp ConstantPool) ([]*module.Annotation, error) {
	d := &annotationDecoder{c: &cursor{buf: info}, cp: cp}
	var out []*module.Annotation
	for range d.c.u2() {
		a := d.annotation()
		if a == nil {
			break
		}
		out = append(out, a)
	}
	if d.err == nil {
		d.err = d.c.err
	}
	return out, d.err
}

type annotationDecoder struct {
	c   *cursor
	cp  ConstantPool
	err error
}

func (d *annotationDecoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *annotationDecoder) utf8(index uint16) string {
	s, err := d.cp.Utf8(index)
	if err != nil {
		d.fail(err)
	}
	return s
}

func (d *annotationDecoder) annotation() *module.Annotation {
	name := typeName(d.utf8(d.c.u2()))
	props := map[string]*module.Value{}
	for range d.c.u2() {
		key := d.utf8(d.c.u2())
		v := d.value()
		if v == nil || d.err != nil || d.c.err != nil {
			return nil
		}
		props[key] = v
	}
	return module.NewAnnotation(name, props)
}

func (d *annotationDecoder) value() *module.Value {
	tag := d.c.u1()
	switch tag {
	case 'B', 'S', 'I':
		v, err := d.cp.Int(d.c.u2())
		d.fail(err)
		return module.IntValue(v)
	case 'C':
		v, err := d.cp.Int(d.c.u2())
		d.fail(err)
		return module.CharValue(rune(v))
	case 'Z':
		v, err := d.cp.Int(d.c.u2())
		d.fail(err)
		return module.BoolValue(v != 0)
	case 'J':
		v, err := d.cp.Long(d.c.u2())
		d.fail(err)
		return module.LongValue(v)
	case 'F':
		v, err := d.cp.Float(d.c.u2())
		d.fail(err)
		return module.FloatValue(v)
	case 'D':
		v, err := d.cp.Double(d.c.u2())
		d.fail(err)
		return module.DoubleValue(v)
	case 's':
		return module.StringValue(d.utf8(d.c.u2()))
	case 'e':
		enumType := typeName(d.utf8(d.c.u2()))
		return module.EnumValue(enumType + "." + d.utf8(d.c.u2()))
	case 'c':
		return module.ClassValue(typeName(d.utf8(d.c.u2())))
	case '@':
		a := d.annotation()
		if a == nil {
			return nil
		}
		return module.NestedValue(a)
	case '[':
		var elems []*module.Value
		for range d.c.u2() {
			v := d.value()
			if v == nil {
				return nil
			}
			elems = append(elems, v)
		}
		return module.ArrayValue(elems...)
	}
	if d.c.err == nil {
		d.fail(fmt.Errorf("unknown element value tag %q", tag))
	}
	return nil
}

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
	'V': "void",
}

// typeName turns a field descriptor such as [Ljava/lang/String; into
// java.lang.String[].
func typeName(desc string) string {
	dims := 0
	for dims < len(desc) && desc[dims] == '[' {
		dims++
	}
	desc = desc[dims:]

	var name string
	switch {
	case len(desc) == 1 && baseTypes[desc[0]] != "":
		name = baseTypes[desc[0]]
	case strings.HasPrefix(desc, "L") && strings.HasSuffix(desc, ";"):
		name = sourceName(desc[1 : len(desc)-1])
	default:
		name = sourceName(desc)
	}
	return name + strings.Repeat("[]", dims)
}
