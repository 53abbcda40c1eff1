// Package parser provides an error-tolerant parser for Java module
// compilation units (module-info.java).
//
// # Overview
//
// The parser reads the whole input, tokenizes it and produces a concrete
// syntax tree of imports, module annotations, the module header and its
// directives. It is designed for tooling where malformed input is common:
// it never panics and always returns a tree.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│ (io.Reader) │     │  (tokens)   │     │   (CST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │ Diagnostics │     │  KindError  │
//	                    │             │     │    nodes    │
//	                    └─────────────┘     └─────────────┘
//
// # Usage
//
//	p := parser.ParseCompilationUnit(r, parser.WithFile("module-info.java"))
//	root := p.Finish()
//	for _, d := range p.Diagnostics() {
//	    fmt.Println(d.Span.Start, d.Message)
//	}
//
// # Tree shape
//
//	CompilationUnit
//	  ImportDecl          [Identifier static] QualifiedName [Identifier *]
//	  ModuleDecl          Annotation* [Identifier open] QualifiedName Directive*
//	    RequiresDirective Identifier(static|transitive)* QualifiedName
//	    ExportsDirective  QualifiedName QualifiedName*
//	    OpensDirective    QualifiedName QualifiedName*
//	    UsesDirective     QualifiedName
//	    ProvidesDirective QualifiedName QualifiedName+
//
// Annotations hold a QualifiedName followed by either AnnotationElement
// children (name = value) or a single element value. Element values are
// Literal, UnaryExpr (signed number), ClassLiteral, QualifiedName (enum
// constant), ArrayInit or a nested Annotation.
//
// # Error Recovery
//
// Two kinds of problems are reported:
//
//   - Structural problems become KindError nodes in the tree, carrying a
//     message, the expected token kinds and the offending token. A second
//     module declaration is wrapped in an error node.
//   - Lexical problems and missing punctuation are recorded as Diagnostic
//     values, available from Parser.Diagnostics.
//
// Recovery skips to the next directive keyword or closing brace inside a
// module body, and to the next separator inside annotations.
package parser
