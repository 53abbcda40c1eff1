package parser

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota

	KindCompilationUnit
	KindImportDecl

	// Module declaration and its directives
	KindModuleDecl
	KindRequiresDirective
	KindExportsDirective
	KindOpensDirective
	KindUsesDirective
	KindProvidesDirective

	// Annotations
	KindAnnotation
	KindAnnotationElement
	KindArrayInit

	// Element values
	KindType
	KindArrayType
	KindUnaryExpr
	KindLiteral
	KindIdentifier
	KindQualifiedName
	KindClassLiteral
)

var nodeKindNames = map[NodeKind]string{
	KindError:             "Error",
	KindCompilationUnit:   "CompilationUnit",
	KindImportDecl:        "ImportDecl",
	KindModuleDecl:        "ModuleDecl",
	KindRequiresDirective: "RequiresDirective",
	KindExportsDirective:  "ExportsDirective",
	KindOpensDirective:    "OpensDirective",
	KindUsesDirective:     "UsesDirective",
	KindProvidesDirective: "ProvidesDirective",
	KindAnnotation:        "Annotation",
	KindAnnotationElement: "AnnotationElement",
	KindArrayInit:         "ArrayInit",
	KindType:              "Type",
	KindArrayType:         "ArrayType",
	KindUnaryExpr:         "UnaryExpr",
	KindLiteral:           "Literal",
	KindIdentifier:        "Identifier",
	KindQualifiedName:     "QualifiedName",
	KindClassLiteral:      "ClassLiteral",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Error struct {
	Message  string
	Expected []TokenKind
	Got      *Token
}

type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Walk calls fn for n and its descendants in document order. Returning
// false from fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Errors returns the outermost error nodes below n.
func (n *Node) Errors() []*Node {
	var errs []*Node
	n.Walk(func(c *Node) bool {
		if c.IsError() {
			errs = append(errs, c)
			return false
		}
		return true
	})
	return errs
}

// QualifiedName joins the identifiers of a QualifiedName node with dots.
// For any other node it returns the node's own token text.
func (n *Node) QualifiedName() string {
	if n == nil {
		return ""
	}
	if n.Kind != KindQualifiedName {
		return n.TokenLiteral()
	}
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		parts = append(parts, child.TokenLiteral())
	}
	return strings.Join(parts, ".")
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, true)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if showPositions {
		sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		sb.WriteString(" " + n.Token.Literal)
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: " + n.Error.Message)
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(sb, indent+1, showPositions)
	}
}
