package parser

import (
	"fmt"
	"io"
	"strings"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

// Diagnostic is a lexical or syntax problem that did not produce an error
// node of its own, such as a stray character or a missing semicolon.
type Diagnostic struct {
	Span    Span
	Message string
	Token   Token
}

type Parser struct {
	file            string
	includeComments bool
	reader          io.Reader
	input           []byte
	err             error
	lexer           *Lexer
	tokens          []Token
	comments        []Token
	diagnostics     []Diagnostic
	pos             int
}

// ParseCompilationUnit prepares a parser for a module compilation unit:
// import declarations followed by a single, possibly annotated, module
// declaration.
func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	p := &Parser{reader: r}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Comments() []Token {
	return p.comments
}

// Diagnostics returns the lexical and syntax problems found by Finish, in
// source order of discovery.
func (p *Parser) Diagnostics() []Diagnostic {
	return p.diagnostics
}

// Err returns the error encountered while reading the input, if any.
func (p *Parser) Err() error {
	return p.err
}

func (p *Parser) readAll() error {
	if p.input != nil || p.err != nil {
		return p.err
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		p.err = err
		return err
	}
	p.input = data
	return nil
}

// Finish reads the whole input and returns the syntax tree. The tree is
// always complete: malformed regions become KindError nodes. Finish returns
// nil only when reading the input failed; see Err.
func (p *Parser) Finish() *Node {
	if err := p.readAll(); err != nil {
		return nil
	}
	p.lexer = NewLexer(p.input, p.file)
	p.tokens = nil
	p.comments = nil
	p.diagnostics = nil
	p.pos = 0
	p.tokenize()
	return p.parseCompilationUnit()
}

func (p *Parser) tokenize() {
	for {
		tok := p.lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenComment, TokenLineComment:
			if p.includeComments {
				p.comments = append(p.comments, tok)
			}
			continue
		case TokenError:
			p.diagnose(tok, lexicalMessage(tok.Literal))
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func lexicalMessage(literal string) string {
	switch {
	case strings.HasPrefix(literal, `"""`):
		return "unterminated text block"
	case strings.HasPrefix(literal, `"`):
		return "unterminated string literal"
	case strings.HasPrefix(literal, "'"):
		return "unterminated character literal"
	case strings.HasPrefix(literal, "/*"):
		return "unterminated comment"
	}
	return fmt.Sprintf("unexpected character %q", literal)
}

func (p *Parser) diagnose(tok Token, msg string) {
	p.diagnostics = append(p.diagnostics, Diagnostic{Span: tok.Span, Message: msg, Token: tok})
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) > 0 {
			return p.tokens[len(p.tokens)-1]
		}
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) && tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

// expect consumes a token of the given kind. A mismatch is recorded as a
// diagnostic and nothing is consumed.
func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	p.diagnose(tok, fmt.Sprintf("expected %s, got %s", describeKind(kind), describeToken(tok)))
	return nil
}

func describeKind(kind TokenKind) string {
	if kind == TokenIdent || kind == TokenEOF {
		return kind.String()
	}
	return "'" + kind.String() + "'"
}

func describeToken(tok Token) string {
	if tok.Kind == TokenEOF {
		return "EOF"
	}
	return "'" + tok.Literal + "'"
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end to break if no progress was made.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.check(TokenEOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

func isIdentifierLike(kind TokenKind) bool {
	return kind == TokenIdent || kind.IsContextual()
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		n.Span.End = p.tokens[p.pos-1].Span.End
	} else if len(p.tokens) > 0 {
		n.Span.End = p.tokens[len(p.tokens)-1].Span.End
	}
	if n.Span.End.Offset < n.Span.Start.Offset {
		n.Span.End = n.Span.Start
	}
	return n
}

func (p *Parser) tokenNode(kind NodeKind, tok Token) *Node {
	return &Node{Kind: kind, Token: &tok, Span: tok.Span}
}

// errorNode reports the current token, consumes it, and skips forward to
// the first token in recoverTo.
func (p *Parser) errorNode(msg string, recoverTo []TokenKind, expected ...TokenKind) *Node {
	node := p.missing(msg, expected...)
	p.recoverTo(recoverTo)
	return node
}

// missing reports the current token without consuming anything.
func (p *Parser) missing(msg string, expected ...TokenKind) *Node {
	tok := p.peek()
	return &Node{
		Kind: KindError,
		Span: Span{Start: tok.Span.Start, End: tok.Span.End},
		Error: &Error{
			Message:  msg,
			Expected: expected,
			Got:      &tok,
		},
	}
}

func (p *Parser) recoverTo(kinds []TokenKind) {
	if !p.check(TokenEOF) {
		p.advance()
	}
	if len(kinds) == 0 {
		return
	}
	for !p.check(TokenEOF) && !p.match(kinds...) {
		p.advance()
	}
}

var moduleStart = []TokenKind{TokenAt, TokenOpen, TokenModule, TokenImport}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)

	seenModule := false
	for !p.check(TokenEOF) {
		progress := p.mustProgress()
		switch {
		case p.check(TokenImport):
			imp := p.parseImportDecl()
			if seenModule {
				imp = p.wrapError(imp, "import declaration after module declaration")
			}
			node.AddChild(imp)
		case p.match(TokenAt, TokenOpen, TokenModule):
			decl := p.parseModuleDecl()
			if seenModule {
				decl = p.wrapError(decl, "duplicate module declaration")
			}
			seenModule = true
			node.AddChild(decl)
		default:
			node.AddChild(p.errorNode("expected module declaration", moduleStart, TokenModule))
		}
		if !progress() {
			break
		}
	}

	if !seenModule {
		node.AddChild(p.missing("missing module declaration", TokenModule))
	}

	return p.finishNode(node)
}

func (p *Parser) wrapError(n *Node, msg string) *Node {
	return &Node{
		Kind:     KindError,
		Span:     n.Span,
		Children: []*Node{n},
		Error:    &Error{Message: msg},
	}
}

func (p *Parser) parseImportDecl() *Node {
	node := p.startNode(KindImportDecl)
	p.expect(TokenImport)

	if p.check(TokenStatic) {
		node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
	}

	node.AddChild(p.parseQualifiedName())

	if p.check(TokenDot) && p.peekN(1).Kind == TokenStar {
		p.advance()
		node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseModuleDecl() *Node {
	node := p.startNode(KindModuleDecl)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	if p.check(TokenOpen) {
		node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
	}

	p.expect(TokenModule)
	node.AddChild(p.parseQualifiedName())

	if p.expect(TokenLBrace) == nil {
		return p.finishNode(node)
	}
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		node.AddChild(p.parseModuleDirective())
	}
	p.expect(TokenRBrace)

	return p.finishNode(node)
}

var directiveStart = []TokenKind{
	TokenRequires, TokenExports, TokenOpens, TokenUses, TokenProvides, TokenRBrace,
}

func (p *Parser) parseModuleDirective() *Node {
	switch {
	case p.check(TokenRequires):
		return p.parseRequiresDirective()
	case p.check(TokenExports):
		return p.parseTargetedDirective(KindExportsDirective, TokenExports)
	case p.check(TokenOpens):
		return p.parseTargetedDirective(KindOpensDirective, TokenOpens)
	case p.check(TokenUses):
		return p.parseUsesDirective()
	case p.check(TokenProvides):
		return p.parseProvidesDirective()
	default:
		return p.errorNode("expected module directive", directiveStart,
			TokenRequires, TokenExports, TokenOpens, TokenUses, TokenProvides)
	}
}

// parseRequiresDirective treats 'static' and 'transitive' as modifiers
// unless they are the module name itself, as in "requires transitive;".
func (p *Parser) parseRequiresDirective() *Node {
	node := p.startNode(KindRequiresDirective)
	p.expect(TokenRequires)

	for p.match(TokenTransitive, TokenStatic) {
		next := p.peekN(1).Kind
		if next == TokenSemicolon || next == TokenDot {
			break
		}
		node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
	}

	node.AddChild(p.parseQualifiedName())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

// parseTargetedDirective parses exports and opens, which share the shape
// "keyword package [to module, ...];".
func (p *Parser) parseTargetedDirective(kind NodeKind, keyword TokenKind) *Node {
	node := p.startNode(kind)
	p.expect(keyword)

	node.AddChild(p.parseQualifiedName())

	if p.check(TokenTo) {
		p.advance()
		node.AddChild(p.parseQualifiedName())
		for p.check(TokenComma) {
			p.advance()
			node.AddChild(p.parseQualifiedName())
		}
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseUsesDirective() *Node {
	node := p.startNode(KindUsesDirective)
	p.expect(TokenUses)
	node.AddChild(p.parseQualifiedName())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseProvidesDirective() *Node {
	node := p.startNode(KindProvidesDirective)
	p.expect(TokenProvides)
	node.AddChild(p.parseQualifiedName())

	p.expect(TokenWith)
	node.AddChild(p.parseQualifiedName())
	for p.check(TokenComma) {
		p.advance()
		node.AddChild(p.parseQualifiedName())
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseQualifiedName() *Node {
	node := p.startNode(KindQualifiedName)

	if !isIdentifierLike(p.peek().Kind) {
		if p.match(TokenSemicolon, TokenLBrace, TokenRBrace, TokenComma, TokenRParen, TokenEOF) {
			return p.missing("expected identifier", TokenIdent)
		}
		return p.errorNode("expected identifier", nil, TokenIdent)
	}
	node.AddChild(p.tokenNode(KindIdentifier, p.advance()))

	for p.check(TokenDot) && isIdentifierLike(p.peekN(1).Kind) {
		p.advance()
		node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
	}

	return p.finishNode(node)
}

func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	p.expect(TokenAt)
	node.AddChild(p.parseQualifiedName())

	if p.check(TokenLParen) {
		p.advance()
		if !p.check(TokenRParen) {
			if isIdentifierLike(p.peek().Kind) && p.peekN(1).Kind == TokenAssign {
				for {
					progress := p.mustProgress()
					node.AddChild(p.parseAnnotationElement())
					if !p.check(TokenComma) {
						break
					}
					p.advance()
					if !progress() {
						break
					}
				}
			} else {
				node.AddChild(p.parseElementValue())
			}
		}
		p.expect(TokenRParen)
	}

	return p.finishNode(node)
}

func (p *Parser) parseAnnotationElement() *Node {
	node := p.startNode(KindAnnotationElement)
	if isIdentifierLike(p.peek().Kind) {
		node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
	} else {
		return p.errorNode("expected element name", []TokenKind{TokenComma, TokenRParen}, TokenIdent)
	}
	p.expect(TokenAssign)
	node.AddChild(p.parseElementValue())
	return p.finishNode(node)
}

var valueRecovery = []TokenKind{TokenComma, TokenRParen, TokenRBrace}

func (p *Parser) parseElementValue() *Node {
	tok := p.peek()
	switch {
	case tok.Kind == TokenAt:
		return p.parseAnnotation()
	case tok.Kind == TokenLBrace:
		return p.parseArrayInit()
	case tok.Kind == TokenNull:
		return p.errorNode("null is not a valid element value", valueRecovery)
	case isLiteral(tok.Kind):
		return p.tokenNode(KindLiteral, p.advance())
	case tok.Kind == TokenMinus || tok.Kind == TokenPlus:
		next := p.peekN(1).Kind
		if next != TokenIntLiteral && next != TokenFloatLiteral {
			return p.errorNode("expected numeric literal after sign", valueRecovery)
		}
		node := p.startNode(KindUnaryExpr)
		op := p.advance()
		node.Token = &op
		node.AddChild(p.tokenNode(KindLiteral, p.advance()))
		return p.finishNode(node)
	case tok.Kind.IsPrimitive():
		return p.parseClassLiteral(p.tokenNode(KindType, p.advance()))
	case isIdentifierLike(tok.Kind):
		name := p.parseQualifiedName()
		if p.check(TokenLBracket) || (p.check(TokenDot) && p.peekN(1).Kind == TokenClass) {
			return p.parseClassLiteral(name)
		}
		return name
	}
	return p.errorNode("expected element value", valueRecovery)
}

func isLiteral(kind TokenKind) bool {
	switch kind {
	case TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral,
		TokenStringLiteral, TokenTextBlock, TokenTrue, TokenFalse:
		return true
	}
	return false
}

func (p *Parser) parseArrayInit() *Node {
	node := p.startNode(KindArrayInit)
	p.expect(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseElementValue())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

// parseClassLiteral parses the "[]... .class" suffix after a type name.
func (p *Parser) parseClassLiteral(typeNode *Node) *Node {
	node := &Node{Kind: KindClassLiteral, Span: Span{Start: typeNode.Span.Start}}

	for p.check(TokenLBracket) {
		p.advance()
		p.expect(TokenRBracket)
		wrapper := &Node{Kind: KindArrayType, Span: Span{Start: typeNode.Span.Start}}
		wrapper.AddChild(typeNode)
		typeNode = p.finishNode(wrapper)
	}

	node.AddChild(typeNode)
	p.expect(TokenDot)
	p.expect(TokenClass)
	return p.finishNode(node)
}
