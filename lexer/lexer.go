package lexer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/minicc-lang/minicc/errs"
	"github.com/minicc-lang/minicc/sv"
)

// Debug, when true, makes Tokenize write one line per emitted token to
// TraceOutput. It is off by default and mirrors the original lexer's
// compile-time DEBUG trace macro.
var Debug bool

// TraceOutput receives trace lines when Debug is true. Defaults to nil,
// meaning tracing is silently skipped until a caller sets it.
var TraceOutput io.Writer

func trace(format string, args ...any) {
	if Debug && TraceOutput != nil {
		fmt.Fprintf(TraceOutput, format+"\n", args...)
	}
}

// lexer holds the mutable scan state for one Tokenize call. It is never
// shared across calls, so Tokenize is safe to call concurrently from
// independent goroutines as long as each call owns its own source buffer.
type lexer struct {
	file string
	src  []byte
	pos  int
	line int
	col  int
}

// Tokenize scans src (the full preprocessed translation unit) into a flat
// token sequence terminated by an EOF token. file names the original source
// file for diagnostics only; it is never opened.
func Tokenize(src []byte, file string) ([]Token, error) {
	l := &lexer{file: file, src: src, pos: 0, line: 1, col: 1}
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		trace("lex: %s at %s", tok, tok.Loc)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// loc returns the current scan position as a SourceLoc.
func (l *lexer) loc() SourceLoc {
	return SourceLoc{File: l.file, Line: l.line, Column: l.col}
}

// advance consumes n bytes, updating line/column bookkeeping; line feeds
// reset the column the way the original's ctx_get_source_loc rescan did,
// kept incremental here instead of re-scanning from the start each time.
func (l *lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *lexer) remaining() sv.View {
	return sv.FromBytes(l.src[l.pos:])
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.advance(1)
	}
}

// next scans and returns the single next token, or an *errs.Error located at
// the byte that defeated every rule.
func (l *lexer) next() (Token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return NewToken(EOF, "", l.loc()), nil
	}

	loc := l.loc()
	b := l.src[l.pos]

	switch {
	case isDigit(b):
		return l.consumeIntLit(loc)
	case b == '"':
		return l.consumeStringLit(loc)
	case b == '\'':
		return l.consumeCharLit(loc)
	case isAlpha(b):
		return l.consumeIdent(loc)
	default:
		return l.consumeSymbol(loc)
	}
}

func (l *lexer) consumeIntLit(loc SourceLoc) (Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.advance(1)
	}
	literal := string(l.src[start:l.pos])
	if len(literal) > MaxNameLength {
		return Token{}, errs.New(toErrLoc(loc), errs.Lex, "integer literal %q exceeds %d bytes", literal, MaxNameLength)
	}
	val, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return Token{}, errs.New(toErrLoc(loc), errs.Lex, "invalid integer literal %q", literal)
	}
	tok := NewToken(IntLit, literal, loc)
	tok.IntVal = val
	return tok, nil
}

func (l *lexer) consumeIdent(loc SourceLoc) (Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isAlnum(l.src[l.pos]) {
		l.advance(1)
	}
	literal := string(l.src[start:l.pos])
	if len(literal) > MaxNameLength {
		return Token{}, errs.New(toErrLoc(loc), errs.Lex, "identifier %q exceeds %d bytes", literal, MaxNameLength)
	}
	return NewToken(lookupIdent(literal), literal, loc), nil
}

// unescape turns a single escape sequence starting at l.src[l.pos] (which
// must be the byte after the backslash) into its decoded byte, advancing the
// scanner past the escape.
func (l *lexer) unescape(loc SourceLoc) (byte, error) {
	if l.pos >= len(l.src) {
		return 0, errs.New(toErrLoc(loc), errs.Lex, "unterminated escape sequence")
	}
	c := l.src[l.pos]
	l.advance(1)
	switch c {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '\'':
		return '\'', nil
	case '0':
		return 0, nil
	default:
		return 0, errs.New(toErrLoc(loc), errs.Lex, "unknown escape sequence \\%c", c)
	}
}

func (l *lexer) consumeStringLit(loc SourceLoc) (Token, error) {
	l.advance(1) // opening quote
	var out []byte
	for {
		if l.pos >= len(l.src) {
			return Token{}, errs.New(toErrLoc(loc), errs.Lex, "unterminated string literal")
		}
		c := l.src[l.pos]
		if c == '"' {
			l.advance(1)
			break
		}
		if c == '\\' {
			l.advance(1)
			decoded, err := l.unescape(loc)
			if err != nil {
				return Token{}, err
			}
			out = append(out, decoded)
			continue
		}
		out = append(out, c)
		l.advance(1)
	}
	tok := NewToken(StringLit, string(out), loc)
	tok.StrVal = out
	return tok, nil
}

func (l *lexer) consumeCharLit(loc SourceLoc) (Token, error) {
	l.advance(1) // opening quote
	if l.pos >= len(l.src) {
		return Token{}, errs.New(toErrLoc(loc), errs.Lex, "unterminated character literal")
	}
	var value byte
	if l.src[l.pos] == '\\' {
		l.advance(1)
		decoded, err := l.unescape(loc)
		if err != nil {
			return Token{}, err
		}
		value = decoded
	} else {
		value = l.src[l.pos]
		l.advance(1)
	}
	if l.pos >= len(l.src) || l.src[l.pos] != '\'' {
		return Token{}, errs.New(toErrLoc(loc), errs.Lex, "character literal must contain exactly one byte")
	}
	l.advance(1)
	tok := NewToken(CharLit, string(value), loc)
	tok.CharVal = value
	return tok, nil
}

// symbols lists multi-character punctuation before any single-character
// prefix of itself, so the longest match always wins.
var symbols = []struct {
	text string
	kind Kind
}{
	{"...", Ellipsis},
	{"==", Eq},
	{"!=", NotEq},
	{"<=", LtEq},
	{"+=", PlusEq},
	{"++", PlusPlus},
	{"&&", AmpAmp},
	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"=", Assign},
	{"<", Lt},
	{">", Gt},
	{"&", Amp},
	{"!", Bang},
	{";", Semicolon},
	{",", Comma},
	{"(", LParen},
	{")", RParen},
	{"{", LBrace},
	{"}", RBrace},
	{"[", LBracket},
	{"]", RBracket},
}

func (l *lexer) consumeSymbol(loc SourceLoc) (Token, error) {
	view := l.remaining()
	for _, sym := range symbols {
		if view.HasPrefix(sym.text) {
			l.advance(len(sym.text))
			return NewToken(sym.kind, sym.text, loc), nil
		}
	}
	r, width := view.DecodeRune()
	if width == 0 {
		width = 1
	}
	return Token{}, errs.New(toErrLoc(loc), errs.Lex, "unrecognized byte %q", r)
}

func toErrLoc(l SourceLoc) errs.Loc {
	return errs.Loc{File: l.File, Line: l.Line, Column: l.Column}
}
