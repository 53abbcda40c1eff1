package codebase

import (
	"errors"
	"fmt"

	"github.com/dhamidi/modinfo/java/module"
	"github.com/dhamidi/modinfo/java/parser"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Problem is a diagnostic attached to a source range. Lines are 1-based,
// columns 0-based. A zero Line means the position is unknown.
type Problem struct {
	Path      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	Severity  Severity
	Message   string
}

func (p Problem) String() string {
	pos := p.Path
	if p.Line > 0 {
		pos = fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Column+1)
	}
	return fmt.Sprintf("%s: %s: %s", pos, p.Severity, p.Message)
}

// problemFromError converts an error reported while parsing into a
// Problem.
func problemFromError(err error) Problem {
	var syntaxErr *module.SyntaxError
	if errors.As(err, &syntaxErr) {
		width := max(len(syntaxErr.Token), 1)
		return Problem{
			Line:      syntaxErr.Line,
			Column:    syntaxErr.Column - 1,
			EndLine:   syntaxErr.Line,
			EndColumn: syntaxErr.Column - 1 + width,
			Message:   syntaxErr.Message,
		}
	}
	var nodeErr *module.NodeError
	if errors.As(err, &nodeErr) {
		p := problemAt(nodeErr.Node.Span, SeverityError, nodeErr.Error())
		if n := nodeErr.Node; n.Error != nil {
			p.Message = n.Error.Message
		}
		return p
	}
	return Problem{Message: err.Error()}
}

func problemAt(span parser.Span, severity Severity, msg string) Problem {
	p := Problem{
		Line:      span.Start.Line,
		Column:    span.Start.Column - 1,
		EndLine:   span.End.Line,
		EndColumn: span.End.Column - 1,
		Severity:  severity,
		Message:   msg,
	}
	if p.EndLine < p.Line || (p.EndLine == p.Line && p.EndColumn <= p.Column) {
		p.EndLine, p.EndColumn = p.Line, p.Column+1
	}
	return p
}
