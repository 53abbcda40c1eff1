package module

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/modinfo/java/parser"
)

var errEmptyChar = errors.New("empty character literal")

// literalValue converts a literal token. sign is "-" or "+" for a signed
// number and empty otherwise.
func literalValue(tok parser.Token, sign string) (*Value, error) {
	text := tok.Literal
	switch tok.Kind {
	case parser.TokenTrue, parser.TokenFalse:
		return BoolValue(text == "true"), nil
	case parser.TokenIntLiteral:
		return parseIntLiteral(sign, text)
	case parser.TokenFloatLiteral:
		return parseFloatLiteral(sign, text)
	case parser.TokenCharLiteral:
		r, size := utf8.DecodeRuneInString(text[1:])
		if size == 0 || r == '\'' {
			return nil, errEmptyChar
		}
		return CharValue(r), nil
	case parser.TokenStringLiteral:
		return StringValue(text[1 : len(text)-1]), nil
	case parser.TokenTextBlock:
		return StringValue(text[3 : len(text)-3]), nil
	}
	return nil, fmt.Errorf("unsupported literal %s", tok.Kind)
}

// parseIntLiteral follows the Java rules: an L suffix makes a long,
// otherwise the value is an int, widened to a long if it does not fit.
// Hex, octal and binary literals may use the full unsigned range of their
// type.
func parseIntLiteral(sign, text string) (*Value, error) {
	digits := strings.ReplaceAll(text, "_", "")
	long := strings.HasSuffix(digits, "L") || strings.HasSuffix(digits, "l")
	if long {
		digits = digits[:len(digits)-1]
	}

	base := 10
	switch {
	case len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X"):
		base, digits = 16, digits[2:]
	case len(digits) > 2 && (digits[:2] == "0b" || digits[:2] == "0B"):
		base, digits = 2, digits[2:]
	case len(digits) > 1 && digits[0] == '0':
		base, digits = 8, digits[1:]
	}

	var n int64
	if base == 10 {
		var err error
		n, err = strconv.ParseInt(strings.TrimPrefix(sign, "+")+digits, 10, 64)
		if err != nil {
			return nil, err
		}
	} else {
		u, err := strconv.ParseUint(digits, base, 64)
		if err != nil {
			return nil, err
		}
		if !long && u <= math.MaxUint32 {
			i := int32(uint32(u))
			if sign == "-" {
				i = -i
			}
			n = int64(i)
		} else {
			n = int64(u)
			if sign == "-" {
				n = -n
			}
		}
	}

	if !long && n >= math.MinInt32 && n <= math.MaxInt32 {
		return IntValue(int32(n)), nil
	}
	return LongValue(n), nil
}

// parseFloatLiteral makes a float for an f or F suffix and a double
// otherwise.
func parseFloatLiteral(sign, text string) (*Value, error) {
	digits := strings.ReplaceAll(text, "_", "")
	bits := 64
	switch digits[len(digits)-1] {
	case 'f', 'F':
		bits = 32
		digits = digits[:len(digits)-1]
	case 'd', 'D':
		digits = digits[:len(digits)-1]
	}
	f, err := strconv.ParseFloat(strings.TrimPrefix(sign, "+")+digits, bits)
	if err != nil {
		return nil, err
	}
	if bits == 32 {
		return FloatValue(float32(f)), nil
	}
	return DoubleValue(f), nil
}
