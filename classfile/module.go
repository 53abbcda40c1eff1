package classfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/modinfo/java/module"
)

// Module attribute flags.
const (
	AccOpen        = 0x0020
	AccTransitive  = 0x0020
	AccStaticPhase = 0x0040
	AccSynthetic   = 0x1000
	AccMandated    = 0x8000
)

var ErrNotModule = errors.New("class file does not declare a module")

// ModuleAttribute is the decoded Module attribute with every constant
// pool reference replaced by its name.
type ModuleAttribute struct {
	Name     string
	Flags    uint16
	Version  string
	Requires []ModuleRequires
	Exports  []ModulePackage
	Opens    []ModulePackage
	Uses     []string
	Provides []module.Provides
}

type ModuleRequires struct {
	Module  string
	Flags   uint16
	Version string
}

// ModulePackage is an exports or opens entry.
type ModulePackage struct {
	Package string
	Flags   uint16
	To      []string
}

func parseModuleAttribute(info []byte, cp ConstantPool) (*ModuleAttribute, error) {
	c := &cursor{buf: info}
	var errs []error
	check := func(s string, err error) string {
		if err != nil {
			errs = append(errs, err)
		}
		return s
	}
	optionalUtf8 := func(index uint16) string {
		if index == 0 {
			return ""
		}
		return check(cp.Utf8(index))
	}

	m := &ModuleAttribute{}
	m.Name = check(cp.ModuleName(c.u2()))
	m.Flags = c.u2()
	m.Version = optionalUtf8(c.u2())

	for range c.u2() {
		r := ModuleRequires{Module: check(cp.ModuleName(c.u2())), Flags: c.u2()}
		r.Version = optionalUtf8(c.u2())
		m.Requires = append(m.Requires, r)
	}

	readPackages := func() []ModulePackage {
		var out []ModulePackage
		for range c.u2() {
			p := ModulePackage{Package: check(cp.PackageName(c.u2())), Flags: c.u2()}
			for _, idx := range c.u2s() {
				p.To = append(p.To, check(cp.ModuleName(idx)))
			}
			out = append(out, p)
		}
		return out
	}
	m.Exports = readPackages()
	m.Opens = readPackages()

	for _, idx := range c.u2s() {
		m.Uses = append(m.Uses, check(cp.ClassName(idx)))
	}

	for range c.u2() {
		service := check(cp.ClassName(c.u2()))
		var providers []string
		for _, idx := range c.u2s() {
			providers = append(providers, check(cp.ClassName(idx)))
		}
		m.Provides = append(m.Provides, module.NewProvides(service, providers...))
	}

	if c.err != nil {
		return nil, c.err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

// Declaration converts the attribute to a module declaration. Mandated
// and synthetic requires, such as the implicit java.base, are dropped
// since they never appear in source.
func (m *ModuleAttribute) Declaration() module.Declaration {
	d := module.Declaration{
		Open:     m.Flags&AccOpen != 0,
		Name:     m.Name,
		Uses:     m.Uses,
		Provides: m.Provides,
	}
	for _, r := range m.Requires {
		if r.Flags&(AccMandated|AccSynthetic) != 0 {
			continue
		}
		d.Requires = append(d.Requires, module.Require{
			Module:     r.Module,
			Transitive: r.Flags&AccTransitive != 0,
			Static:     r.Flags&AccStaticPhase != 0,
		})
	}
	for _, e := range m.Exports {
		if e.Flags&(AccMandated|AccSynthetic) == 0 {
			d.Exports = append(d.Exports, module.NewExport(e.Package, e.To...))
		}
	}
	for _, o := range m.Opens {
		if o.Flags&(AccMandated|AccSynthetic) == 0 {
			d.Opens = append(d.Opens, module.NewOpens(o.Package, o.To...))
		}
	}
	return d
}

// Module decodes the Module attribute and the module's annotations.
// Annotation type names come out fully qualified, so the model needs no
// imports.
func (cf *ClassFile) Module() (*module.Model, error) {
	if !cf.IsModule() {
		return nil, ErrNotModule
	}
	info, ok := cf.Attribute("Module")
	if !ok {
		return nil, fmt.Errorf("%w: no Module attribute", ErrNotModule)
	}
	attr, err := parseModuleAttribute(info, cf.ConstantPool)
	if err != nil {
		return nil, fmt.Errorf("decode Module attribute: %w", err)
	}
	d := attr.Declaration()

	for _, name := range []string{"RuntimeVisibleAnnotations", "RuntimeInvisibleAnnotations"} {
		info, ok := cf.Attribute(name)
		if !ok {
			continue
		}
		anns, err := parseAnnotations(info, cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		d.Annotations = append(d.Annotations, anns...)
	}
	return module.NewModel(d), nil
}

// ReadModule parses a module-info.class stream into a model.
func ReadModule(r io.Reader) (*module.Model, error) {
	cf, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return cf.Module()
}

func ReadModuleFile(path string) (*module.Model, error) {
	cf, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	m, err := cf.Module()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
