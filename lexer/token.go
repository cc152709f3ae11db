// Package lexer turns a preprocessed C-subset source buffer into a flat,
// finite token sequence with source locations. Tokenization is one pass,
// non-speculative: it never backtracks, and it never consults the parser.
package lexer

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	// Literals
	IntLit Kind = iota
	CharLit
	StringLit

	// Identifiers
	Ident

	// Type keywords
	KwInt
	KwChar
	KwLong
	KwVoid
	KwFloat
	KwUnsigned

	// Storage / flow keywords
	KwReturn
	KwIf
	KwElse
	KwWhile
	KwFor
	KwBreak
	KwContinue

	// Punctuation
	Plus
	Minus
	Star
	Slash
	Assign
	Eq
	NotEq
	Lt
	Gt
	LtEq
	PlusEq
	PlusPlus
	Amp
	AmpAmp
	Bang
	Semicolon
	Comma
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Ellipsis

	// EOF marks the end of the token sequence.
	EOF
)

var kindNames = map[Kind]string{
	IntLit: "int-literal", CharLit: "char-literal", StringLit: "string-literal",
	Ident: "identifier",
	KwInt: "int", KwChar: "char", KwLong: "long", KwVoid: "void", KwFloat: "float", KwUnsigned: "unsigned",
	KwReturn: "return", KwIf: "if", KwElse: "else", KwWhile: "while", KwFor: "for", KwBreak: "break", KwContinue: "continue",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Assign: "=", Eq: "==", NotEq: "!=",
	Lt: "<", Gt: ">", LtEq: "<=", PlusEq: "+=", PlusPlus: "++", Amp: "&", AmpAmp: "&&", Bang: "!",
	Semicolon: ";", Comma: ",", LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Ellipsis: "...", EOF: "EOF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// keywords maps a keyword's spelling to its Kind, used to distinguish
// keywords from identifiers once an identifier-shaped run has been scanned.
var keywords = map[string]Kind{
	"int": KwInt, "char": KwChar, "long": KwLong, "void": KwVoid, "float": KwFloat, "unsigned": KwUnsigned,
	"return": KwReturn, "if": KwIf, "else": KwElse, "while": KwWhile, "for": KwFor,
	"break": KwBreak, "continue": KwContinue,
}

func lookupIdent(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}

// SourceLoc is the (file, line, column) triple every Token carries, recorded
// at the token's first byte.
type SourceLoc struct {
	File   string
	Line   int
	Column int
}

func (l SourceLoc) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// MaxNameLength bounds identifier and integer-literal length, matching the
// original lexer's fixed-size scan buffer.
const MaxNameLength = 31

// Token is a tagged variant: a Kind, the literal text it was scanned from,
// and its source location. IntVal and CharVal are populated only for their
// respective Kind; StrVal holds the already-unescaped bytes of a string
// literal.
type Token struct {
	Kind    Kind
	Literal string
	Loc     SourceLoc

	IntVal  int64
	CharVal byte
	StrVal  []byte
}

// NewToken builds a Token of the given kind, literal text, and location.
func NewToken(kind Kind, literal string, loc SourceLoc) Token {
	return Token{Kind: kind, Literal: literal, Loc: loc}
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Literal)
}
