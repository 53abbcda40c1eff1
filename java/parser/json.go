package parser

import "encoding/json"

// treeJSON is the dump shape of a node. Qualified names carry their
// dotted form so consumers need not rebuild them from identifiers.
type treeJSON struct {
	Kind     string       `json:"kind"`
	Span     *spanJSON    `json:"span,omitempty"`
	Name     string       `json:"name,omitempty"`
	Token    *tokenJSON   `json:"token,omitempty"`
	Error    *problemJSON `json:"error,omitempty"`
	Children []*treeJSON  `json:"children,omitempty"`
}

type spanJSON struct {
	Start posJSON `json:"start"`
	End   posJSON `json:"end"`
}

type posJSON struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

type tokenJSON struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type problemJSON struct {
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.dump())
}

func (n *Node) dump() *treeJSON {
	out := &treeJSON{Kind: n.Kind.String()}
	if n.Span != (Span{}) {
		out.Span = &spanJSON{Start: posOf(n.Span.Start), End: posOf(n.Span.End)}
	}
	if n.Kind == KindQualifiedName {
		out.Name = n.QualifiedName()
	}
	if n.Token != nil {
		out.Token = &tokenJSON{Kind: n.Token.Kind.String(), Text: n.Token.Literal}
	}
	if e := n.Error; e != nil {
		out.Error = &problemJSON{Message: e.Message}
		for _, kind := range e.Expected {
			out.Error.Expected = append(out.Error.Expected, describeKind(kind))
		}
		if e.Got != nil {
			out.Error.Got = describeToken(*e.Got)
		}
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, child.dump())
	}
	return out
}

func posOf(p Position) posJSON {
	return posJSON{Line: p.Line, Column: p.Column, Offset: p.Offset}
}
