package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/modinfo/java/parser"
)

// ASTJSONEncoder writes a syntax tree and the diagnostics found while
// building it as indented JSON.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(file string, node *parser.Node, diagnostics []parser.Diagnostic) error {
	text, err := e.MarshalText(file, node, diagnostics)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(file string, node *parser.Node, diagnostics []parser.Diagnostic) ([]byte, error) {
	doc := astJSONDocument{File: file, Tree: node}
	for _, d := range diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, astJSONDiagnostic{
			Line:    d.Span.Start.Line,
			Column:  d.Span.Start.Column,
			Offset:  d.Span.Start.Offset,
			Message: d.Message,
			Token:   d.Token.Literal,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

type astJSONDocument struct {
	File        string              `json:"file,omitempty"`
	Tree        *parser.Node        `json:"tree"`
	Diagnostics []astJSONDiagnostic `json:"diagnostics,omitempty"`
}

type astJSONDiagnostic struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}
