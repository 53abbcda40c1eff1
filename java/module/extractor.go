package module

import (
	"fmt"

	"github.com/dhamidi/modinfo/java/parser"
)

// ModuleExtractor builds a Model from a CompilationUnit syntax tree.
// Malformed regions are reported to the listener; whatever could be read
// is kept.
type ModuleExtractor struct {
	listener    ErrorListener
	annotations *AnnotationExtractor
}

func NewModuleExtractor(l ErrorListener) *ModuleExtractor {
	if l == nil {
		l = Silent
	}
	return &ModuleExtractor{listener: l, annotations: NewAnnotationExtractor(l)}
}

// Extract converts root. The error is the first non-nil result returned
// by the listener.
func (x *ModuleExtractor) Extract(root *parser.Node) (*Model, error) {
	if root == nil || root.Kind != parser.KindCompilationUnit {
		return nil, fmt.Errorf("extract module: unexpected %v node", kindOf(root))
	}

	var d Declaration
	var imports []Import
	seenModule := false
	for _, child := range root.Children {
		switch {
		case child.Kind == parser.KindImportDecl:
			if err := x.reportAll(child); err != nil {
				return nil, err
			}
			if imp, ok := importOf(child); ok {
				imports = append(imports, imp)
			}
		case child.Kind == parser.KindModuleDecl && !seenModule:
			seenModule = true
			if err := x.moduleDecl(child, &d); err != nil {
				return nil, err
			}
		case child.IsError():
			if err := x.listener.OnNodeError(child); err != nil {
				return nil, err
			}
		}
	}
	d.Imports = NewImports(imports...)
	return NewModel(d), nil
}

func (x *ModuleExtractor) reportAll(n *parser.Node) error {
	for _, e := range n.Errors() {
		if err := x.listener.OnNodeError(e); err != nil {
			return err
		}
	}
	return nil
}

func importOf(n *parser.Node) (Import, bool) {
	var imp Import
	for _, child := range n.Children {
		switch child.Kind {
		case parser.KindIdentifier:
			switch child.Token.Kind {
			case parser.TokenStatic:
				imp.Static = true
			case parser.TokenStar:
				imp.Name += ".*"
			}
		case parser.KindQualifiedName:
			imp.Name = child.QualifiedName()
		}
	}
	return imp, imp.Name != ""
}

func (x *ModuleExtractor) moduleDecl(n *parser.Node, d *Declaration) error {
	for _, child := range n.Children {
		switch child.Kind {
		case parser.KindAnnotation:
			a, err := x.annotations.Extract(child)
			if err != nil {
				return err
			}
			d.Annotations = append(d.Annotations, a)
		case parser.KindIdentifier:
			if child.Token.Kind == parser.TokenOpen {
				d.Open = true
			}
		case parser.KindQualifiedName:
			if d.Name == "" {
				d.Name = child.QualifiedName()
			}
		case parser.KindError:
			if err := x.listener.OnNodeError(child); err != nil {
				return err
			}
		default:
			if err := x.reportAll(child); err != nil {
				return err
			}
			directive(child, d)
		}
	}
	return nil
}

// names returns the qualified names among n's children, skipping any that
// failed to parse.
func names(n *parser.Node) []string {
	var out []string
	for _, child := range n.ChildrenOfKind(parser.KindQualifiedName) {
		if name := child.QualifiedName(); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func directive(n *parser.Node, d *Declaration) {
	qns := names(n)
	if len(qns) == 0 {
		return
	}
	switch n.Kind {
	case parser.KindRequiresDirective:
		r := Require{Module: qns[0]}
		for _, mod := range n.ChildrenOfKind(parser.KindIdentifier) {
			switch mod.Token.Kind {
			case parser.TokenStatic:
				r.Static = true
			case parser.TokenTransitive:
				r.Transitive = true
			}
		}
		d.Requires = append(d.Requires, r)
	case parser.KindExportsDirective:
		d.Exports = append(d.Exports, NewExport(qns[0], qns[1:]...))
	case parser.KindOpensDirective:
		d.Opens = append(d.Opens, NewOpens(qns[0], qns[1:]...))
	case parser.KindUsesDirective:
		d.Uses = append(d.Uses, qns[0])
	case parser.KindProvidesDirective:
		if len(qns) > 1 {
			d.Provides = append(d.Provides, NewProvides(qns[0], qns[1:]...))
		}
	}
}
