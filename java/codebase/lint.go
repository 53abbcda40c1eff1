package codebase

import (
	"fmt"

	"github.com/dhamidi/modinfo/java/module"
	"github.com/dhamidi/modinfo/java/parser"
)

// lint reports declarations that parse but that a Java compiler rejects
// or that are redundant.
func lint(root *parser.Node, m *module.Model) []Problem {
	decl := root.FirstChildOfKind(parser.KindModuleDecl)
	if decl == nil {
		return nil
	}

	var problems []Problem
	report := func(n *parser.Node, severity Severity, format string, args ...any) {
		problems = append(problems, problemAt(n.Span, severity, fmt.Sprintf(format, args...)))
	}

	required := map[string]bool{}
	exported := map[string]bool{}
	opened := map[string]bool{}
	used := map[string]bool{}

	for _, d := range decl.Children {
		name := d.FirstChildOfKind(parser.KindQualifiedName)
		if name == nil {
			continue
		}
		qn := name.QualifiedName()
		switch d.Kind {
		case parser.KindRequiresDirective:
			switch {
			case qn == m.Name():
				report(name, SeverityError, "module %s requires itself", qn)
			case required[qn]:
				report(name, SeverityWarning, "duplicate requires %s", qn)
			}
			required[qn] = true
		case parser.KindExportsDirective:
			if exported[qn] {
				report(name, SeverityWarning, "duplicate exports %s", qn)
			}
			exported[qn] = true
		case parser.KindOpensDirective:
			if m.IsOpen() {
				report(d, SeverityError, "opens %s is not allowed in an open module", qn)
			} else if opened[qn] {
				report(name, SeverityWarning, "duplicate opens %s", qn)
			}
			opened[qn] = true
		case parser.KindUsesDirective:
			if used[qn] {
				report(name, SeverityWarning, "duplicate uses %s", qn)
			}
			used[qn] = true
		}
	}
	return problems
}
