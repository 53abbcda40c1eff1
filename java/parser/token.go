package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenTrue
	TokenFalse
	TokenNull

	// Keywords that can appear in a module compilation unit
	TokenBoolean
	TokenByte
	TokenChar
	TokenClass
	TokenDouble
	TokenFloat
	TokenImport
	TokenInt
	TokenLong
	TokenShort
	TokenStatic
	TokenVoid

	// Any other reserved word; never valid as a name
	TokenReserved

	// Contextual keywords
	TokenModule
	TokenOpen
	TokenRequires
	TokenExports
	TokenOpens
	TokenUses
	TokenProvides
	TokenTo
	TokenWith
	TokenTransitive

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenAt
	TokenAssign
	TokenPlus
	TokenMinus
	TokenStar
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTextBlock:     "TextBlock",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenNull:          "null",
	TokenBoolean:       "boolean",
	TokenByte:          "byte",
	TokenChar:          "char",
	TokenClass:         "class",
	TokenDouble:        "double",
	TokenFloat:         "float",
	TokenImport:        "import",
	TokenInt:           "int",
	TokenLong:          "long",
	TokenShort:         "short",
	TokenStatic:        "static",
	TokenVoid:          "void",
	TokenReserved:      "keyword",
	TokenModule:        "module",
	TokenOpen:          "open",
	TokenRequires:      "requires",
	TokenExports:       "exports",
	TokenOpens:         "opens",
	TokenUses:          "uses",
	TokenProvides:      "provides",
	TokenTo:            "to",
	TokenWith:          "with",
	TokenTransitive:    "transitive",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenAt:            "@",
	TokenAssign:        "=",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsPrimitive reports whether k names a primitive type or void.
func (k TokenKind) IsPrimitive() bool {
	switch k {
	case TokenBoolean, TokenByte, TokenChar, TokenDouble, TokenFloat,
		TokenInt, TokenLong, TokenShort, TokenVoid:
		return true
	}
	return false
}

// IsContextual reports whether k is a restricted keyword of module
// declarations, which remains usable as part of a name.
func (k TokenKind) IsContextual() bool {
	return k >= TokenModule && k <= TokenTransitive
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

var keywords = map[string]TokenKind{
	"boolean":    TokenBoolean,
	"byte":       TokenByte,
	"char":       TokenChar,
	"class":      TokenClass,
	"double":     TokenDouble,
	"float":      TokenFloat,
	"import":     TokenImport,
	"int":        TokenInt,
	"long":       TokenLong,
	"short":      TokenShort,
	"static":     TokenStatic,
	"void":       TokenVoid,
	"true":       TokenTrue,
	"false":      TokenFalse,
	"null":       TokenNull,
	"module":     TokenModule,
	"open":       TokenOpen,
	"requires":   TokenRequires,
	"exports":    TokenExports,
	"opens":      TokenOpens,
	"uses":       TokenUses,
	"provides":   TokenProvides,
	"to":         TokenTo,
	"with":       TokenWith,
	"transitive": TokenTransitive,
}

var reserved = map[string]bool{
	"abstract": true, "assert": true, "break": true, "case": true,
	"catch": true, "const": true, "continue": true, "default": true,
	"do": true, "else": true, "enum": true, "extends": true,
	"final": true, "finally": true, "for": true, "goto": true,
	"if": true, "implements": true, "instanceof": true, "interface": true,
	"native": true, "new": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "strictfp": true,
	"super": true, "switch": true, "synchronized": true, "this": true,
	"throw": true, "throws": true, "transient": true, "try": true,
	"volatile": true, "while": true,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	if reserved[ident] {
		return TokenReserved
	}
	return TokenIdent
}
