package module

import (
	"slices"
)

// Declaration holds the parts of a module declaration before
// normalization into a Model.
type Declaration struct {
	Open        bool
	Name        string
	Imports     Imports
	Uses        []string
	Requires    []Require
	Provides    []Provides
	Exports     []Export
	Opens       []Opens
	Annotations []*Annotation
}

// Model is the immutable semantic model of a module declaration. Every
// directive set is sorted by its natural key and de-duplicated by full
// equality; annotations keep their declaration order.
//
// Two requires directives naming the same module with different modifiers
// are both kept.
type Model struct {
	open        bool
	name        string
	imports     Imports
	uses        []string
	requires    []Require
	provides    []Provides
	exports     []Export
	opens       []Opens
	annotations []*Annotation
}

func NewModel(d Declaration) *Model {
	m := &Model{
		open:        d.Open,
		name:        d.Name,
		imports:     d.Imports,
		uses:        sortedSet(d.Uses),
		requires:    normalize(d.Requires, compareRequire),
		annotations: slices.DeleteFunc(slices.Clone(d.Annotations), func(a *Annotation) bool { return a == nil }),
	}
	for _, p := range d.Provides {
		m.provides = append(m.provides, NewProvides(p.Service, p.Providers...))
	}
	m.provides = normalize(m.provides, compareProvides)
	for _, e := range d.Exports {
		m.exports = append(m.exports, NewExport(e.Package, e.Targets...))
	}
	m.exports = normalize(m.exports, compareExport)
	for _, o := range d.Opens {
		m.opens = append(m.opens, NewOpens(o.Package, o.Targets...))
	}
	m.opens = normalize(m.opens, compareOpens)
	return m
}

// Declaration returns a copy of the model's parts, suitable for building a
// modified model with NewModel.
func (m *Model) Declaration() Declaration {
	return Declaration{
		Open:        m.open,
		Name:        m.name,
		Imports:     m.imports,
		Uses:        slices.Clone(m.uses),
		Requires:    slices.Clone(m.requires),
		Provides:    slices.Clone(m.provides),
		Exports:     slices.Clone(m.exports),
		Opens:       slices.Clone(m.opens),
		Annotations: slices.Clone(m.annotations),
	}
}

func (m *Model) IsOpen() bool              { return m.open }
func (m *Model) Name() string              { return m.name }
func (m *Model) Imports() Imports          { return m.imports }
func (m *Model) UsedServices() []string    { return slices.Clone(m.uses) }
func (m *Model) RequireList() []Require    { return slices.Clone(m.requires) }
func (m *Model) ProvidesList() []Provides  { return slices.Clone(m.provides) }
func (m *Model) ExportList() []Export      { return slices.Clone(m.exports) }
func (m *Model) OpensList() []Opens        { return slices.Clone(m.opens) }
func (m *Model) Annotations() []*Annotation { return slices.Clone(m.annotations) }

// Requires reports whether the module requires the named module, with any
// modifiers. Module names are compared exactly.
func (m *Model) Requires(module string) bool {
	return m.RequiresMatching(func(r Require) bool { return r.Module == module })
}

func (m *Model) RequiresStatic(module string) bool {
	return m.RequiresMatching(func(r Require) bool { return r.Static && r.Module == module })
}

func (m *Model) RequiresTransitive(module string) bool {
	return m.RequiresMatching(func(r Require) bool { return r.Transitive && r.Module == module })
}

// RequiresMatching reports whether any requires directive satisfies pred.
func (m *Model) RequiresMatching(pred func(Require) bool) bool {
	return slices.ContainsFunc(m.requires, pred)
}

// RequiredModuleNames returns the distinct required module names, sorted.
func (m *Model) RequiredModuleNames() []string {
	names := make([]string, len(m.requires))
	for i, r := range m.requires {
		names[i] = r.Module
	}
	return slices.Compact(names)
}

// sameType compares two type names, tolerating either side being written
// as a simple name that the imports qualify.
func (m *Model) sameType(a, b string) bool {
	if a == b {
		return true
	}
	ra := m.imports.Resolve(a)
	rb := m.imports.Resolve(b)
	return ra == b || a == rb || ra == rb
}

// Uses reports whether the module uses the given service type.
func (m *Model) Uses(service string) bool {
	return slices.ContainsFunc(m.uses, func(u string) bool { return m.sameType(u, service) })
}

// UsedClasses returns the used service types qualified by the imports.
func (m *Model) UsedClasses() []string {
	out := make([]string, len(m.uses))
	for i, u := range m.uses {
		out[i] = m.imports.Resolve(u)
	}
	return sortedSet(out)
}

// Provides reports whether the module provides an implementation of
// service.
func (m *Model) Provides(service string) bool {
	return slices.ContainsFunc(m.provides, func(p Provides) bool { return m.sameType(p.Service, service) })
}

// ProvidesWith reports whether the module provides service with the given
// implementation type.
func (m *Model) ProvidesWith(service, impl string) bool {
	for _, p := range m.provides {
		if !m.sameType(p.Service, service) {
			continue
		}
		if slices.ContainsFunc(p.Providers, func(pr string) bool { return m.sameType(pr, impl) }) {
			return true
		}
	}
	return false
}

// VisitProvidedClasses calls fn for every service and provider pair, both
// qualified by the imports.
func (m *Model) VisitProvidedClasses(fn func(service, provider string)) {
	for _, p := range m.provides {
		service := m.imports.Resolve(p.Service)
		for _, provider := range p.Providers {
			fn(service, m.imports.Resolve(provider))
		}
	}
}

// Exports reports whether pkg is exported to module.
func (m *Model) Exports(pkg, module string) bool {
	return slices.ContainsFunc(m.exports, func(e Export) bool {
		return e.Package == pkg && e.IsExportedTo(module)
	})
}

// Opens reports whether pkg is open to module for deep reflection. Every
// package of an open module is open to everyone.
func (m *Model) Opens(pkg, module string) bool {
	if m.open {
		return true
	}
	return slices.ContainsFunc(m.opens, func(o Opens) bool {
		return o.Package == pkg && o.IsOpenedTo(module)
	})
}

// FindAnnotation returns the first annotation whose type is name, comparing
// simple and qualified names through the imports.
func (m *Model) FindAnnotation(name string) (*Annotation, bool) {
	for _, a := range m.annotations {
		if a.name == name || m.imports.Resolve(a.name) == m.imports.Resolve(name) {
			return a, true
		}
	}
	return nil, false
}

// VisitAnnotations walks every annotation in declaration order, stopping
// at the first one whose walk reports false.
func (m *Model) VisitAnnotations(v Visitor) bool {
	for _, a := range m.annotations {
		if !a.Visit(v) {
			return false
		}
	}
	return true
}

// Resolved qualifies the service types in uses and provides directives and
// every type name in the annotations. When nothing changes m itself is
// returned; otherwise the result carries no imports, since they have been
// applied.
func (m *Model) Resolved() *Model {
	changed := false

	uses := make([]string, len(m.uses))
	for i, u := range m.uses {
		uses[i] = m.imports.Resolve(u)
		changed = changed || uses[i] != u
	}

	provides := make([]Provides, len(m.provides))
	for i, p := range m.provides {
		r, c := p.resolve(m.imports)
		provides[i] = r
		changed = changed || c
	}

	annotations := make([]*Annotation, len(m.annotations))
	for i, a := range m.annotations {
		r, c := a.resolve(m.imports)
		annotations[i] = r
		changed = changed || c
	}

	if !changed {
		return m
	}
	return NewModel(Declaration{
		Open:        m.open,
		Name:        m.name,
		Uses:        uses,
		Requires:    m.requires,
		Provides:    provides,
		Exports:     m.exports,
		Opens:       m.opens,
		Annotations: annotations,
	})
}

func (m *Model) Equal(other *Model) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	return m.open == other.open &&
		m.name == other.name &&
		m.imports.Equal(other.imports) &&
		slices.Equal(m.uses, other.uses) &&
		slices.Equal(m.requires, other.requires) &&
		slices.EqualFunc(m.provides, other.provides, Provides.Equal) &&
		slices.EqualFunc(m.exports, other.exports, Export.Equal) &&
		slices.EqualFunc(m.opens, other.opens, Opens.Equal) &&
		slices.EqualFunc(m.annotations, other.annotations, (*Annotation).Equal)
}
