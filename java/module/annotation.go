package module

import (
	"maps"
	"slices"
	"strings"
)

// DefaultProperty is the element name used when an annotation is written
// with a single unnamed value, as in @Foo(42).
const DefaultProperty = "value"

// Annotation is an immutable annotation occurrence: a type name and its
// element values keyed by element name.
type Annotation struct {
	name  string
	keys  []string
	props map[string]*Value
}

// NewAnnotation copies props; a leading '@' on name is dropped. Nil
// values are ignored.
func NewAnnotation(name string, props map[string]*Value) *Annotation {
	a := &Annotation{
		name:  strings.TrimPrefix(name, "@"),
		props: make(map[string]*Value, len(props)),
	}
	for k, v := range props {
		if v != nil {
			a.props[k] = v
		}
	}
	a.keys = slices.Sorted(maps.Keys(a.props))
	return a
}

func (a *Annotation) Name() string {
	return a.name
}

// Keys returns the element names in lexicographic order.
func (a *Annotation) Keys() []string {
	return slices.Clone(a.keys)
}

func (a *Annotation) Len() int {
	return len(a.keys)
}

func (a *Annotation) Property(name string) (*Value, bool) {
	v, ok := a.props[name]
	return v, ok
}

// PropertyValue returns the payload of the named element.
func (a *Annotation) PropertyValue(name string) (any, bool) {
	v, ok := a.props[name]
	if !ok {
		return nil, false
	}
	return v.Payload(), true
}

func (a *Annotation) Equal(other *Annotation) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil || a.name != other.name || !slices.Equal(a.keys, other.keys) {
		return false
	}
	for _, k := range a.keys {
		if !a.props[k].Equal(other.props[k]) {
			return false
		}
	}
	return true
}

// Resolve qualifies the annotation type name and every type name in its
// values. It returns a itself when nothing changed.
func (a *Annotation) Resolve(imports Imports) *Annotation {
	r, _ := a.resolve(imports)
	return r
}

func (a *Annotation) resolve(imports Imports) (*Annotation, bool) {
	name := imports.Resolve(a.name)
	changed := name != a.name
	var props map[string]*Value
	for _, k := range a.keys {
		r, c := a.props[k].resolve(imports)
		if c && props == nil {
			props = maps.Clone(a.props)
		}
		if c {
			props[k] = r
			changed = true
		}
	}
	if !changed {
		return a, false
	}
	if props == nil {
		props = a.props
	}
	return &Annotation{name: name, keys: a.keys, props: props}, true
}

// Visit walks a and its nested annotations depth first; see Visitor.
func (a *Annotation) Visit(v Visitor) bool {
	return a.visit(v, 0)
}

func (a *Annotation) visit(v Visitor, depth int) bool {
	if !v.EnterAnnotation(a, depth) {
		return false
	}
	result := a.visitProperties(v, depth)
	return v.ExitAnnotation(a, depth) && result
}

func (a *Annotation) visitProperties(v Visitor, depth int) bool {
	for _, k := range a.keys {
		value := a.props[k]
		if value.kind == KindArray {
			for _, elem := range value.payload.([]*Value) {
				if !visitValue(v, a, depth, k, elem, true) {
					return false
				}
			}
			continue
		}
		if !visitValue(v, a, depth, k, value, false) {
			return false
		}
	}
	return true
}

func visitValue(v Visitor, owner *Annotation, depth int, key string, value *Value, inArray bool) bool {
	if !v.VisitValue(owner, depth, key, value, inArray) {
		return false
	}
	if value.kind == KindAnnotation {
		return value.Annotation().visit(v, depth+1)
	}
	return true
}
