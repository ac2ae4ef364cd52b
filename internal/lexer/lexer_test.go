package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zombocoder/o2l/internal/lexer"
	"github.com/zombocoder/o2l/internal/token"
)

func kinds(src string) []token.Kind {
	l := lexer.New(src)
	var out []token.Kind
	for {
		tok := l.Next()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestKeywordsResolveToDedicatedKinds(t *testing.T) {
	assert.Equal(t, []token.Kind{token.OBJECT, token.METHOD, token.EXTERNAL, token.EOF},
		kinds("object method external"))
}

func TestIdentifierNotKeywordStaysIdent(t *testing.T) {
	assert.Equal(t, []token.Kind{token.IDENT, token.EOF}, kinds("objectish"))
}

func TestIntegerLongAndFloatSuffixes(t *testing.T) {
	l := lexer.New("42 42L 3.5 3.5f")
	tok := l.Next()
	assert.Equal(t, token.INT, tok.Kind)
	assert.Equal(t, "42", tok.Lit)

	tok = l.Next()
	assert.Equal(t, token.LONG, tok.Kind)
	assert.Equal(t, "42", tok.Lit)

	tok = l.Next()
	assert.Equal(t, token.DOUBLE, tok.Kind)
	assert.Equal(t, "3.5", tok.Lit)

	tok = l.Next()
	assert.Equal(t, token.FLOAT, tok.Kind)
	assert.Equal(t, "3.5", tok.Lit)
}

func TestDotNotFollowedByDigitIsNotPartOfNumber(t *testing.T) {
	// "5.method()" should lex as INT(5) DOT IDENT(method) LPAREN RPAREN, not a malformed float.
	assert.Equal(t, []token.Kind{token.INT, token.DOT, token.IDENT, token.LPAREN, token.RPAREN, token.EOF},
		kinds("5.method()"))
}

func TestTextLiteralUnescapesCommonSequences(t *testing.T) {
	l := lexer.New(`"line1\nline2\tend\"quoted\""`)
	tok := l.Next()
	assert.Equal(t, token.TEXT, tok.Kind)
	assert.Equal(t, "line1\nline2\tend\"quoted\"", tok.Lit)
}

func TestCharLiteralWithEscape(t *testing.T) {
	l := lexer.New(`'\n' 'x'`)
	tok := l.Next()
	assert.Equal(t, token.CHAR, tok.Kind)
	assert.Equal(t, "\n", tok.Lit)

	tok = l.Next()
	assert.Equal(t, token.CHAR, tok.Kind)
	assert.Equal(t, "x", tok.Lit)
}

func TestLineAndBlockCommentsAreSkipped(t *testing.T) {
	src := "1 // trailing comment\n/* block\ncomment */ 2"
	assert.Equal(t, []token.Kind{token.INT, token.INT, token.EOF}, kinds(src))
}

func TestArrowAndComparisonOperators(t *testing.T) {
	assert.Equal(t, []token.Kind{token.ARROW, token.MINUS, token.EQ, token.ASSIGN, token.NEQ, token.NOT, token.LTE, token.LT, token.GTE, token.GT, token.EOF},
		kinds("-> - == = != ! <= < >= >"))
}

func TestLogicalOperatorsAcceptBothSingleAndDoubleForm(t *testing.T) {
	assert.Equal(t, []token.Kind{token.AND, token.AND, token.OR, token.OR, token.EOF},
		kinds("& && | ||"))
}

func TestIllegalCharacterIsReportedAsIllegalKind(t *testing.T) {
	l := lexer.New("@")
	tok := l.Next()
	assert.Equal(t, token.ILLEGAL, tok.Kind)
	assert.Equal(t, "@", tok.Lit)
}

func TestPositionsAdvanceAcrossLines(t *testing.T) {
	l := lexer.New("a\nb")
	first := l.Next()
	assert.Equal(t, 1, first.Line)
	second := l.Next()
	assert.Equal(t, 2, second.Line)
}

func TestEmptySourceYieldsImmediateEOF(t *testing.T) {
	assert.Equal(t, []token.Kind{token.EOF}, kinds(""))
}
