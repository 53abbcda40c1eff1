package parser

import (
	"testing"
)

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenError, "Error"},
		{TokenIdent, "Identifier"},
		{TokenIntLiteral, "IntLiteral"},
		{TokenStringLiteral, "StringLiteral"},
		{TokenTrue, "true"},
		{TokenNull, "null"},
		{TokenClass, "class"},
		{TokenStatic, "static"},
		{TokenModule, "module"},
		{TokenTransitive, "transitive"},
		{TokenLParen, "("},
		{TokenSemicolon, ";"},
		{TokenAt, "@"},
		{TokenAssign, "="},
		{TokenKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenKind
	}{
		{"class", TokenClass},
		{"static", TokenStatic},
		{"import", TokenImport},
		{"int", TokenInt},
		{"void", TokenVoid},
		{"true", TokenTrue},
		{"module", TokenModule},
		{"open", TokenOpen},
		{"requires", TokenRequires},
		{"with", TokenWith},
		{"public", TokenReserved},
		{"enum", TokenReserved},
		{"Foo", TokenIdent},
		{"record", TokenIdent},
		{"$x", TokenIdent},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupKeyword(tt.ident); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestTokenKindClassification(t *testing.T) {
	for _, kind := range []TokenKind{TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt, TokenLong, TokenFloat, TokenDouble, TokenVoid} {
		if !kind.IsPrimitive() {
			t.Errorf("%v.IsPrimitive() = false, want true", kind)
		}
	}
	if TokenClass.IsPrimitive() {
		t.Error("class is not a primitive type")
	}
	for _, kind := range []TokenKind{TokenModule, TokenOpen, TokenRequires, TokenExports, TokenOpens, TokenUses, TokenProvides, TokenTo, TokenWith, TokenTransitive} {
		if !kind.IsContextual() {
			t.Errorf("%v.IsContextual() = false, want true", kind)
		}
	}
	if TokenStatic.IsContextual() || TokenIdent.IsContextual() {
		t.Error("static and identifiers are not contextual keywords")
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{Line: 3, Column: 7}).String(); got != "3:7" {
		t.Errorf("got %q, want %q", got, "3:7")
	}
	if got := (Position{File: "module-info.java", Line: 1, Column: 2}).String(); got != "module-info.java:1:2" {
		t.Errorf("got %q, want %q", got, "module-info.java:1:2")
	}
}
