package module

import (
	"fmt"
	"slices"
	"strings"
)

// ValueKind is the syntactic kind of an annotation element value. The kind
// reflects how the value was written, not the declared element type: foo = 5
// is always an Int.
type ValueKind int

const (
	KindClass ValueKind = iota
	KindEnum
	KindFloat
	KindInt
	KindString
	KindChar
	KindBoolean
	KindArray
	KindAnnotation
)

var valueKindNames = [...]string{
	KindClass:      "CLASS",
	KindEnum:       "ENUM",
	KindFloat:      "FLOAT",
	KindInt:        "INT",
	KindString:     "STRING",
	KindChar:       "CHAR",
	KindBoolean:    "BOOLEAN",
	KindArray:      "ARRAY",
	KindAnnotation: "ANNOTATION",
}

func (k ValueKind) String() string {
	if k >= 0 && int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// ParseValueKind is the inverse of ValueKind.String.
func ParseValueKind(s string) (ValueKind, bool) {
	for i, name := range valueKindNames {
		if name == s {
			return ValueKind(i), true
		}
	}
	return 0, false
}

// Value is an immutable annotation element value. The payload type is
// fixed by the kind (rune and int32 are the same Go type, so Char and Int
// are told apart by kind alone):
//
//	Class, Enum, String  string
//	Int                  int32 or int64
//	Float                float32 or float64
//	Char                 rune
//	Boolean              bool
//	Array                []*Value
//	Annotation           *Annotation
type Value struct {
	kind    ValueKind
	payload any
}

// NewValue validates payload against kind.
func NewValue(kind ValueKind, payload any) (*Value, error) {
	ok := false
	switch kind {
	case KindClass, KindEnum, KindString:
		_, ok = payload.(string)
	case KindInt:
		switch payload.(type) {
		case int32, int64:
			ok = true
		}
	case KindFloat:
		switch payload.(type) {
		case float32, float64:
			ok = true
		}
	case KindChar:
		_, ok = payload.(rune)
	case KindBoolean:
		_, ok = payload.(bool)
	case KindArray:
		var elems []*Value
		elems, ok = payload.([]*Value)
		if ok {
			if slices.Contains(elems, nil) {
				return nil, fmt.Errorf("%s value contains a nil element", kind)
			}
			payload = slices.Clone(elems)
		}
	case KindAnnotation:
		var a *Annotation
		a, ok = payload.(*Annotation)
		ok = ok && a != nil
	default:
		return nil, fmt.Errorf("unknown value kind %d", int(kind))
	}
	if !ok {
		return nil, fmt.Errorf("%s value cannot hold %T (%v)", kind, payload, payload)
	}
	return &Value{kind: kind, payload: payload}, nil
}

// MustValue is like NewValue but panics on a mismatched payload.
func MustValue(kind ValueKind, payload any) *Value {
	v, err := NewValue(kind, payload)
	if err != nil {
		panic(err)
	}
	return v
}

func ClassValue(name string) *Value     { return &Value{kind: KindClass, payload: name} }
func EnumValue(constant string) *Value  { return &Value{kind: KindEnum, payload: constant} }
func BoolValue(b bool) *Value           { return &Value{kind: KindBoolean, payload: b} }
func IntValue(i int32) *Value           { return &Value{kind: KindInt, payload: i} }
func LongValue(i int64) *Value          { return &Value{kind: KindInt, payload: i} }
func FloatValue(f float32) *Value       { return &Value{kind: KindFloat, payload: f} }
func DoubleValue(f float64) *Value      { return &Value{kind: KindFloat, payload: f} }
func NestedValue(a *Annotation) *Value  { return MustValue(KindAnnotation, a) }
func ArrayValue(elems ...*Value) *Value { return MustValue(KindArray, elems) }

// StringValue holds s as written between the quotes. Parsed strings keep
// escape sequences undecoded, so "a\tb" holds a backslash and a t.
func StringValue(s string) *Value {
	return &Value{kind: KindString, payload: s}
}

// CharValue holds c. Escape sequences in parsed char literals are not
// decoded: '\n' holds the backslash, and renders back as '\\'. The
// round trip is stable, but the rendered literal no longer denotes a
// newline.
func CharValue(c rune) *Value {
	return &Value{kind: KindChar, payload: c}
}

func (v *Value) Kind() ValueKind {
	return v.kind
}

// Payload returns the raw payload; see Value for its dynamic type.
func (v *Value) Payload() any {
	if v.kind == KindArray {
		return v.Elements()
	}
	return v.payload
}

// Text returns the payload of a Class, Enum or String value.
func (v *Value) Text() (string, bool) {
	s, ok := v.payload.(string)
	return s, ok
}

// Int returns an Int payload widened to 64 bits.
func (v *Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	switch n := v.payload.(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// Float returns a Float payload widened to 64 bits.
func (v *Value) Float() (float64, bool) {
	switch f := v.payload.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}

// Wide reports whether an Int or Float value was written as a long or
// double.
func (v *Value) Wide() bool {
	if v.kind != KindInt && v.kind != KindFloat {
		return false
	}
	switch v.payload.(type) {
	case int64, float64:
		return true
	}
	return false
}

func (v *Value) Char() (rune, bool) {
	if v.kind != KindChar {
		return 0, false
	}
	return v.payload.(rune), true
}

func (v *Value) Bool() (bool, bool) {
	b, ok := v.payload.(bool)
	return b, ok
}

// Elements returns a copy of the elements of an Array value.
func (v *Value) Elements() []*Value {
	elems, _ := v.payload.([]*Value)
	return slices.Clone(elems)
}

func (v *Value) Annotation() *Annotation {
	a, _ := v.payload.(*Annotation)
	return a
}

func (v *Value) Equal(other *Value) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil || v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindArray:
		return slices.EqualFunc(v.payload.([]*Value), other.payload.([]*Value), (*Value).Equal)
	case KindAnnotation:
		return v.Annotation().Equal(other.Annotation())
	}
	return v.payload == other.payload
}

// Resolve qualifies every type name inside v using imports. It returns v
// itself when nothing changed.
func (v *Value) Resolve(imports Imports) *Value {
	r, _ := v.resolve(imports)
	return r
}

func (v *Value) resolve(imports Imports) (*Value, bool) {
	switch v.kind {
	case KindClass:
		name := v.payload.(string)
		if r := resolveTypeName(imports, name); r != name {
			return ClassValue(r), true
		}
	case KindEnum:
		constant := v.payload.(string)
		if r := resolveEnumConstant(imports, constant); r != constant {
			return EnumValue(r), true
		}
	case KindArray:
		elems := v.payload.([]*Value)
		var out []*Value
		for i, elem := range elems {
			r, changed := elem.resolve(imports)
			if changed && out == nil {
				out = make([]*Value, len(elems))
				copy(out, elems[:i])
			}
			if out != nil {
				out[i] = r
			}
		}
		if out != nil {
			return &Value{kind: KindArray, payload: out}, true
		}
	case KindAnnotation:
		if r, changed := v.Annotation().resolve(imports); changed {
			return NestedValue(r), true
		}
	}
	return v, false
}

// resolveTypeName qualifies the element type of a possibly array-typed
// class literal, keeping its dimensions.
func resolveTypeName(imports Imports, name string) string {
	base := strings.TrimRight(name, "[]")
	dims := name[len(base):]
	if r := imports.Resolve(base); r != base {
		return r + dims
	}
	return name
}

// resolveEnumConstant qualifies Type.CONSTANT by its head; any other
// shape, including a bare CONSTANT brought in by a static import, is
// resolved whole.
func resolveEnumConstant(imports Imports, constant string) string {
	dot := strings.IndexByte(constant, '.')
	if dot > 0 && dot == strings.LastIndexByte(constant, '.') {
		head := constant[:dot]
		if r := imports.Resolve(head); r != head {
			return r + constant[dot:]
		}
		return constant
	}
	return imports.Resolve(constant)
}

func (v *Value) String() string {
	switch v.kind {
	case KindArray:
		parts := make([]string, 0, len(v.payload.([]*Value)))
		for _, e := range v.payload.([]*Value) {
			parts = append(parts, e.String())
		}
		return "[" + strings.Join(parts, " ") + "]"
	case KindAnnotation:
		return "@" + v.Annotation().Name()
	case KindChar:
		return fmt.Sprintf("%s(%q)", v.kind, v.payload)
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.payload)
}
