package module

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/modinfo/java/parser"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("modinfo.parse")

// ParseError is returned by Parse when the error listener aborts.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return "parse module declaration: " + e.Err.Error()
	}
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Option func(*options)

type options struct {
	file     string
	listener ErrorListener
}

// WithListener sets the error policy. The default logs problems and
// continues.
func WithListener(l ErrorListener) Option {
	return func(o *options) {
		o.listener = l
	}
}

// WithFile names the source in positions and errors.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// Parse reads a module-info compilation unit and builds its model. Lexical
// and syntax problems are reported to the listener before malformed tree
// regions. Unless the listener aborts, a best-effort model is returned even
// for malformed input.
func Parse(r io.Reader, opts ...Option) (*Model, error) {
	_, m, err := ParseTree(r, opts...)
	return m, err
}

// ParseTree is Parse that also returns the syntax tree the model was
// extracted from. The tree is returned whenever the input could be read,
// even if the listener aborted.
func ParseTree(r io.Reader, opts ...Option) (*parser.Node, *Model, error) {
	o := options{listener: Logging(log)}
	for _, opt := range opts {
		opt(&o)
	}

	p := parser.ParseCompilationUnit(r, parser.WithFile(o.file))
	root := p.Finish()
	if root == nil {
		return nil, nil, fmt.Errorf("read %s: %w", sourceName(o.file), p.Err())
	}

	for _, d := range p.Diagnostics() {
		e := syntaxErrorAt(d.Token, d.Message, nil)
		e.Line, e.Column, e.Offset = d.Span.Start.Line, d.Span.Start.Column, d.Span.Start.Offset
		if err := o.listener.OnSyntaxError(e); err != nil {
			return root, nil, &ParseError{File: o.file, Err: err}
		}
	}

	m, err := NewModuleExtractor(o.listener).Extract(root)
	if err != nil {
		return root, nil, &ParseError{File: o.file, Err: err}
	}
	return root, m, nil
}

func ParseString(src string, opts ...Option) (*Model, error) {
	return Parse(strings.NewReader(src), opts...)
}

// ParseFile parses the file at path; positions carry the path unless
// WithFile overrides it.
func ParseFile(path string, opts ...Option) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open module declaration: %w", err)
	}
	defer f.Close()
	return Parse(f, append([]Option{WithFile(path)}, opts...)...)
}

func sourceName(file string) string {
	if file == "" {
		return "module declaration"
	}
	return file
}
