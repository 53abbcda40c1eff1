// Package query implements a one-line query language over module
// declarations:
//
//	requires [static] [transitive] <module>
//	uses <type>
//	provides <type> [with <type>, ...]
//	exports <package> [to <module>, ...]
//	opens <package> [to <module>, ...]
//	annotated <type>
//
// Type names may be simple or qualified; they are compared through the
// imports of the queried module. An exports or opens query without a to
// clause asks whether the package is available to every module.
package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/dhamidi/modinfo/java/module"
)

// Query is one parsed statement. Exactly one field is set.
type Query struct {
	Requires  *RequiresClause `parser:"  'requires' @@"`
	Uses      *string         `parser:"| 'uses' @Name"`
	Provides  *ProvidesClause `parser:"| 'provides' @@"`
	Exports   *TargetClause   `parser:"| 'exports' @@"`
	Opens     *TargetClause   `parser:"| 'opens' @@"`
	Annotated *string         `parser:"| 'annotated' @Name"`
}

type RequiresClause struct {
	Modifiers []string `parser:"@('static' | 'transitive')*"`
	Module    string   `parser:"@Name"`
}

func (r *RequiresClause) static() bool     { return slices.Contains(r.Modifiers, "static") }
func (r *RequiresClause) transitive() bool { return slices.Contains(r.Modifiers, "transitive") }

type ProvidesClause struct {
	Service   string   `parser:"@Name"`
	Providers []string `parser:"('with' @Name (',' @Name)*)?"`
}

// TargetClause names a package and, optionally, the modules it must be
// available to.
type TargetClause struct {
	Package string   `parser:"@Name"`
	Targets []string `parser:"('to' @Name (',' @Name)*)?"`
}

var queryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Name", Pattern: `[\p{L}_$][\p{L}\p{N}_$]*(\.[\p{L}_$][\p{L}\p{N}_$]*)*`},
	{Name: "Punct", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var queryParser = participle.MustBuild[Query](
	participle.Lexer(queryLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses a single query statement.
func Parse(text string) (*Query, error) {
	q, err := queryParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("parse query %q: %w", strings.TrimSpace(text), err)
	}
	return q, nil
}

// MustParse is like Parse but panics on error. It is meant for queries
// written as constants.
func MustParse(text string) *Query {
	q, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return q
}

// Eval reports whether m satisfies the query.
func (q *Query) Eval(m *module.Model) bool {
	switch {
	case q.Requires != nil:
		r := q.Requires
		return m.RequiresMatching(func(req module.Require) bool {
			return req.Module == r.Module &&
				(!r.static() || req.Static) &&
				(!r.transitive() || req.Transitive)
		})
	case q.Uses != nil:
		return m.Uses(*q.Uses)
	case q.Provides != nil:
		p := q.Provides
		if len(p.Providers) == 0 {
			return m.Provides(p.Service)
		}
		for _, impl := range p.Providers {
			if !m.ProvidesWith(p.Service, impl) {
				return false
			}
		}
		return true
	case q.Exports != nil:
		return q.Exports.eval(m.Exports)
	case q.Opens != nil:
		return q.Opens.eval(m.Opens)
	case q.Annotated != nil:
		_, ok := m.FindAnnotation(*q.Annotated)
		return ok
	}
	return false
}

func (t *TargetClause) eval(check func(pkg, module string) bool) bool {
	if len(t.Targets) == 0 {
		return check(t.Package, "")
	}
	for _, target := range t.Targets {
		if !check(t.Package, target) {
			return false
		}
	}
	return true
}

// String renders the query in canonical form.
func (q *Query) String() string {
	switch {
	case q.Requires != nil:
		parts := []string{"requires"}
		if q.Requires.static() {
			parts = append(parts, "static")
		}
		if q.Requires.transitive() {
			parts = append(parts, "transitive")
		}
		return strings.Join(append(parts, q.Requires.Module), " ")
	case q.Uses != nil:
		return "uses " + *q.Uses
	case q.Provides != nil:
		s := "provides " + q.Provides.Service
		if len(q.Provides.Providers) > 0 {
			s += " with " + strings.Join(q.Provides.Providers, ", ")
		}
		return s
	case q.Exports != nil:
		return "exports " + q.Exports.String()
	case q.Opens != nil:
		return "opens " + q.Opens.String()
	case q.Annotated != nil:
		return "annotated " + *q.Annotated
	}
	return ""
}

func (t *TargetClause) String() string {
	if len(t.Targets) == 0 {
		return t.Package
	}
	return t.Package + " to " + strings.Join(t.Targets, ", ")
}
