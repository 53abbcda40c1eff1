package module

import (
	"errors"
	"fmt"

	"github.com/dhamidi/modinfo/java/parser"
	"github.com/tliron/commonlog"
)

// SyntaxError is a lexical or syntax problem at a source position.
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Offset  int
	Message string
	// Token is the offending source text, if any.
	Token string
	// Cause is the underlying error, such as a failed number conversion.
	Cause error
}

func (e *SyntaxError) Error() string {
	pos := fmt.Sprintf("%d:%d", e.Line, e.Column)
	if e.File != "" {
		pos = e.File + ":" + pos
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", pos, e.Message, e.Cause)
	}
	return pos + ": " + e.Message
}

func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

func syntaxErrorAt(tok parser.Token, msg string, cause error) *SyntaxError {
	return &SyntaxError{
		File:    tok.Span.Start.File,
		Line:    tok.Span.Start.Line,
		Column:  tok.Span.Start.Column,
		Offset:  tok.Span.Start.Offset,
		Message: msg,
		Token:   tok.Literal,
		Cause:   cause,
	}
}

// NodeError reports a malformed region of the syntax tree.
type NodeError struct {
	Node *parser.Node
}

func (e *NodeError) Error() string {
	msg := "malformed " + e.Node.Kind.String()
	if e.Node.Error != nil {
		msg = e.Node.Error.Message
		if got := e.Node.Error.Got; got != nil && got.Kind != parser.TokenEOF && got.Literal != "" {
			msg += fmt.Sprintf(" at %q", got.Literal)
		}
	}
	return e.Node.Span.Start.String() + ": " + msg
}

// ErrorListener receives the problems found while building a model. A
// non-nil return aborts the parse and is returned to the caller; nil
// continues with best-effort extraction.
type ErrorListener interface {
	OnNodeError(n *parser.Node) error
	OnSyntaxError(e *SyntaxError) error
}

type silentListener struct{}

func (silentListener) OnNodeError(*parser.Node) error   { return nil }
func (silentListener) OnSyntaxError(*SyntaxError) error { return nil }

// Silent discards every problem.
var Silent ErrorListener = silentListener{}

type failingListener struct{}

func (failingListener) OnNodeError(n *parser.Node) error   { return &NodeError{Node: n} }
func (failingListener) OnSyntaxError(e *SyntaxError) error { return e }

// Failing aborts on the first problem, returning it as a *NodeError or
// *SyntaxError.
var Failing ErrorListener = failingListener{}

type loggingListener struct {
	log commonlog.Logger
}

// Logging logs node errors at error level and syntax errors at warning
// level, then continues.
func Logging(log commonlog.Logger) ErrorListener {
	return loggingListener{log: log}
}

func (l loggingListener) OnNodeError(n *parser.Node) error {
	l.log.Errorf("%s", (&NodeError{Node: n}).Error())
	return nil
}

func (l loggingListener) OnSyntaxError(e *SyntaxError) error {
	l.log.Warningf("%s", e.Error())
	return nil
}

// Collector records every problem in the order reported.
type Collector struct {
	Errors []error
}

func (c *Collector) OnNodeError(n *parser.Node) error {
	c.Errors = append(c.Errors, &NodeError{Node: n})
	return nil
}

func (c *Collector) OnSyntaxError(e *SyntaxError) error {
	c.Errors = append(c.Errors, e)
	return nil
}

// Collect returns an empty Collector.
func Collect() *Collector {
	return &Collector{}
}

// Err joins the collected problems, or returns nil when there are none.
func (c *Collector) Err() error {
	return errors.Join(c.Errors...)
}

type teeListener []ErrorListener

// Tee reports every problem to each listener in turn and returns the first
// non-nil result.
func Tee(listeners ...ErrorListener) ErrorListener {
	return teeListener(listeners)
}

func (t teeListener) OnNodeError(n *parser.Node) error {
	var first error
	for _, l := range t {
		if err := l.OnNodeError(n); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t teeListener) OnSyntaxError(e *SyntaxError) error {
	var first error
	for _, l := range t {
		if err := l.OnSyntaxError(e); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ListenerNamed maps a policy name to a listener: "silent", "log" or
// "fail". Logging uses log.
func ListenerNamed(name string, log commonlog.Logger) (ErrorListener, error) {
	switch name {
	case "silent":
		return Silent, nil
	case "log", "":
		return Logging(log), nil
	case "fail":
		return Failing, nil
	}
	return nil, fmt.Errorf("unknown error policy %q (want silent, log or fail)", name)
}
