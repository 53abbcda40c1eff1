package module

import (
	"fmt"
	"strings"

	"github.com/dhamidi/modinfo/java/parser"
)

// frame is one level of the value stack: the element being filled and,
// inside an array initializer, the elements collected so far.
type frame struct {
	key     string
	inArray bool
	array   []*Value
}

// AnnotationExtractor builds an Annotation from an Annotation syntax node.
// Malformed values are reported to the listener and left out.
type AnnotationExtractor struct {
	listener ErrorListener

	depth  int
	name   string
	props  map[string]*Value
	frames []*frame
	err    error
}

func NewAnnotationExtractor(l ErrorListener) *AnnotationExtractor {
	if l == nil {
		l = Silent
	}
	return &AnnotationExtractor{listener: l}
}

// Extract converts n, which must be an Annotation node. The error is the
// first non-nil result returned by the listener.
func (x *AnnotationExtractor) Extract(n *parser.Node) (*Annotation, error) {
	if n == nil || n.Kind != parser.KindAnnotation {
		return nil, fmt.Errorf("extract annotation: unexpected %v node", kindOf(n))
	}
	x.depth = 0
	x.name = ""
	x.props = map[string]*Value{}
	x.frames = []*frame{{key: DefaultProperty}}
	x.err = nil

	x.visitAnnotation(n)
	if x.err != nil {
		return nil, x.err
	}
	return NewAnnotation(x.name, x.props), nil
}

func kindOf(n *parser.Node) string {
	if n == nil {
		return "nil"
	}
	return n.Kind.String()
}

func (x *AnnotationExtractor) failed() bool {
	return x.err != nil
}

func (x *AnnotationExtractor) nodeError(n *parser.Node) {
	if x.err == nil {
		x.err = x.listener.OnNodeError(n)
	}
}

func (x *AnnotationExtractor) syntaxError(e *SyntaxError) {
	if x.err == nil {
		x.err = x.listener.OnSyntaxError(e)
	}
}

func (x *AnnotationExtractor) visitAnnotation(n *parser.Node) {
	x.depth++
	defer func() { x.depth-- }()

	if x.depth > 1 {
		nested, err := NewAnnotationExtractor(x.listener).Extract(n)
		if err != nil {
			x.err = err
			return
		}
		x.emit(NestedValue(nested))
		return
	}

	for i, child := range n.Children {
		if x.failed() {
			return
		}
		switch {
		case i == 0 && child.Kind == parser.KindQualifiedName:
			x.name = child.QualifiedName()
		case child.Kind == parser.KindAnnotationElement:
			x.visitElement(child)
		case child.IsError():
			x.nodeError(child)
		default:
			x.visitValue(child)
		}
	}
}

func (x *AnnotationExtractor) visitElement(n *parser.Node) {
	var key string
	for _, child := range n.Children {
		if x.failed() {
			return
		}
		switch {
		case key == "" && child.Kind == parser.KindIdentifier:
			key = child.TokenLiteral()
			x.push(&frame{key: key})
		case child.IsError() && key == "":
			x.nodeError(child)
		default:
			x.visitValue(child)
		}
	}
	if key != "" {
		x.pop()
	}
}

func (x *AnnotationExtractor) push(f *frame) {
	x.frames = append(x.frames, f)
}

func (x *AnnotationExtractor) pop() *frame {
	f := x.frames[len(x.frames)-1]
	x.frames = x.frames[:len(x.frames)-1]
	return f
}

func (x *AnnotationExtractor) top() *frame {
	return x.frames[len(x.frames)-1]
}

// emit stores v in the innermost open array, or under the current key.
func (x *AnnotationExtractor) emit(v *Value) {
	f := x.top()
	if f.inArray {
		f.array = append(f.array, v)
		return
	}
	x.props[f.key] = v
}

func (x *AnnotationExtractor) visitValue(n *parser.Node) {
	switch n.Kind {
	case parser.KindLiteral:
		x.visitLiteral(*n.Token, "")
	case parser.KindUnaryExpr:
		lit := n.FirstChildOfKind(parser.KindLiteral)
		if lit == nil || n.Token == nil {
			x.nodeError(n)
			return
		}
		x.visitLiteral(*lit.Token, n.Token.Literal)
	case parser.KindClassLiteral:
		if len(n.Children) == 0 {
			x.nodeError(n)
			return
		}
		x.emit(ClassValue(typeText(n.Children[0])))
	case parser.KindQualifiedName:
		x.emit(EnumValue(n.QualifiedName()))
	case parser.KindArrayInit:
		x.push(&frame{key: x.top().key, inArray: true})
		for _, child := range n.Children {
			if x.failed() {
				break
			}
			x.visitValue(child)
		}
		f := x.pop()
		if !x.failed() {
			x.emit(ArrayValue(f.array...))
		}
	case parser.KindAnnotation:
		x.visitAnnotation(n)
	case parser.KindError:
		x.nodeError(n)
	default:
		x.nodeError(n)
	}
}

func (x *AnnotationExtractor) visitLiteral(tok parser.Token, sign string) {
	v, err := literalValue(tok, sign)
	if err != nil {
		x.syntaxError(syntaxErrorAt(tok, "invalid "+literalName(tok.Kind), err))
		return
	}
	x.emit(v)
}

func literalName(kind parser.TokenKind) string {
	switch kind {
	case parser.TokenIntLiteral:
		return "integer literal"
	case parser.TokenFloatLiteral:
		return "floating-point literal"
	case parser.TokenCharLiteral:
		return "character literal"
	}
	return "literal"
}

// typeText renders a Type, QualifiedName or ArrayType node as Java source.
func typeText(n *parser.Node) string {
	if n.Kind == parser.KindArrayType && len(n.Children) > 0 {
		return typeText(n.Children[0]) + "[]"
	}
	return strings.TrimSpace(n.QualifiedName())
}
