package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeFactorialSignature(t *testing.T) {
	toks, err := Tokenize([]byte("int fact(int x) { return 1; }"), "test.c")
	require.NoError(t, err)
	require.Equal(t, []Kind{
		KwInt, Ident, LParen, KwInt, Ident, RParen,
		LBrace, KwReturn, IntLit, Semicolon, RBrace, EOF,
	}, kinds(toks))
}

func TestTokenizeMultiCharOperators(t *testing.T) {
	toks, err := Tokenize([]byte("a == b != c <= d += 1 e++ f && g"), "test.c")
	require.NoError(t, err)
	require.Equal(t, []Kind{
		Ident, Eq, Ident, NotEq, Ident, LtEq, Ident, PlusEq, IntLit,
		Ident, PlusPlus, Ident, AmpAmp, Ident, EOF,
	}, kinds(toks))
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, err := Tokenize([]byte(`"a\nb"`), "test.c")
	require.NoError(t, err)
	require.Equal(t, StringLit, toks[0].Kind)
	require.Equal(t, []byte("a\nb"), toks[0].StrVal)
}

func TestTokenizeCharLiteral(t *testing.T) {
	toks, err := Tokenize([]byte(`'x'`), "test.c")
	require.NoError(t, err)
	require.Equal(t, CharLit, toks[0].Kind)
	require.Equal(t, byte('x'), toks[0].CharVal)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize([]byte(`"abc`), "test.c")
	require.Error(t, err)
}

func TestTokenizeUnknownEscape(t *testing.T) {
	_, err := Tokenize([]byte(`"a\qb"`), "test.c")
	require.Error(t, err)
}

func TestTokenizeUnrecognizedByte(t *testing.T) {
	_, err := Tokenize([]byte("int x = @;"), "test.c")
	require.Error(t, err)
}

func TestTokenizeLocationsMonotonic(t *testing.T) {
	toks, err := Tokenize([]byte("int x;\nint y;"), "test.c")
	require.NoError(t, err)
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1].Loc, toks[i].Loc
		require.True(t, cur.Line > prev.Line || (cur.Line == prev.Line && cur.Column >= prev.Column))
	}
}

func TestTokenizeEllipsisBeforeDot(t *testing.T) {
	toks, err := Tokenize([]byte("f(int x, ...);"), "test.c")
	require.NoError(t, err)
	require.Contains(t, kinds(toks), Ellipsis)
}
