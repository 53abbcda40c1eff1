package format

import (
	"bytes"
	"io"

	"github.com/dhamidi/modinfo/java/module"
	"gopkg.in/yaml.v3"
)

// YAMLEncoder renders a model as a YAML document with the same structure
// as JSONEncoder.
type YAMLEncoder struct {
	w     io.Writer
	model *module.Model
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) Encode(m *module.Model) error {
	e.model = m
	return write(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlModelOf(e.model)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type yamlModel struct {
	Name        string           `yaml:"name"`
	Open        bool             `yaml:"open"`
	Imports     []string         `yaml:"imports,omitempty"`
	Uses        []string         `yaml:"uses,omitempty"`
	Requires    []yamlRequire    `yaml:"requires,omitempty"`
	Provides    []yamlProvides   `yaml:"provides,omitempty"`
	Exports     []yamlExport     `yaml:"exports,omitempty"`
	Opens       []yamlOpens      `yaml:"opens,omitempty"`
	Annotations []yamlAnnotation `yaml:"annotations,omitempty"`
}

type yamlRequire struct {
	Module     string `yaml:"module"`
	Transitive bool   `yaml:"transitive"`
	Static     bool   `yaml:"static"`
}

type yamlProvides struct {
	Type string   `yaml:"type"`
	With []string `yaml:"with"`
}

type yamlExport struct {
	Package string   `yaml:"exportedPackage"`
	To      []string `yaml:"to,omitempty"`
}

type yamlOpens struct {
	Package string   `yaml:"package"`
	To      []string `yaml:"to,omitempty"`
}

type yamlAnnotation struct {
	Annotation string               `yaml:"annotation"`
	Properties map[string]yamlValue `yaml:"properties,omitempty"`
}

type yamlValue struct {
	Kind  string `yaml:"kind"`
	Value any    `yaml:"value"`
}

func yamlModelOf(m *module.Model) yamlModel {
	y := yamlModel{
		Name:    m.Name(),
		Open:    m.IsOpen(),
		Imports: m.Imports().Names(),
		Uses:    m.UsedServices(),
	}
	for _, r := range m.RequireList() {
		y.Requires = append(y.Requires, yamlRequire{Module: r.Module, Transitive: r.Transitive, Static: r.Static})
	}
	for _, p := range m.ProvidesList() {
		y.Provides = append(y.Provides, yamlProvides{Type: p.Service, With: p.Providers})
	}
	for _, x := range m.ExportList() {
		y.Exports = append(y.Exports, yamlExport{Package: x.Package, To: x.Targets})
	}
	for _, o := range m.OpensList() {
		y.Opens = append(y.Opens, yamlOpens{Package: o.Package, To: o.Targets})
	}
	for _, a := range m.Annotations() {
		y.Annotations = append(y.Annotations, yamlAnnotationOf(a))
	}
	return y
}

func yamlAnnotationOf(a *module.Annotation) yamlAnnotation {
	y := yamlAnnotation{Annotation: a.Name()}
	if a.Len() > 0 {
		y.Properties = make(map[string]yamlValue, a.Len())
		for _, k := range a.Keys() {
			v, _ := a.Property(k)
			y.Properties[k] = yamlValueOf(v)
		}
	}
	return y
}

func yamlValueOf(v *module.Value) yamlValue {
	y := yamlValue{Kind: v.Kind().String()}
	switch v.Kind() {
	case module.KindChar:
		c, _ := v.Char()
		y.Value = string(c)
	case module.KindArray:
		elems := v.Elements()
		values := make([]yamlValue, len(elems))
		for i, e := range elems {
			values[i] = yamlValueOf(e)
		}
		y.Value = values
	case module.KindAnnotation:
		y.Value = yamlAnnotationOf(v.Annotation())
	default:
		y.Value = v.Payload()
	}
	return y
}
