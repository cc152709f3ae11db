// Package parser implements predictive recursive descent with bounded
// backtracking over a token sequence, building a typed AST in a shared
// arena. Every grammar rule is a "try" method: it takes a cursor by value,
// attempts to match, and returns either a new cursor past what it consumed
// (success) or the untouched input cursor (failure) — cloning is implicit
// in Go's pass-by-value semantics, so no cursor is ever mutated in place.
package parser

import (
	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/errs"
	"github.com/minicc-lang/minicc/lexer"
)

// cursor is a position in the shared token slice. It is always copied, never
// shared by reference, matching the "clone cursor, try, commit" discipline.
type cursor struct {
	pos int
}

// Parser holds the token sequence and the arena being built. It carries no
// mutable parse position itself — every rule threads its own cursor — so a
// Parser value can be reused to attempt the grammar from arbitrary starting
// cursors without extra bookkeeping.
type Parser struct {
	tokens []lexer.Token
	arena  *ast.Arena
}

// New constructs a Parser over tokens, which must end with an EOF token (as
// produced by lexer.Tokenize).
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens, arena: ast.NewArena(len(tokens) * 2)}
}

func (p *Parser) at(c cursor) lexer.Token {
	if c.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[c.pos]
}

func (p *Parser) kindAt(c cursor) lexer.Kind {
	return p.at(c).Kind
}

func (p *Parser) loc(c cursor) errs.Loc {
	sl := p.at(c).Loc
	return errs.Loc{File: sl.File, Line: sl.Line, Column: sl.Column}
}

// next returns the cursor advanced past the current token.
func (p *Parser) next(c cursor) cursor {
	return cursor{pos: c.pos + 1}
}

// consume succeeds iff the token at c has kind, returning the consumed
// token and a cursor past it.
func (p *Parser) consume(c cursor, kind lexer.Kind) (lexer.Token, cursor, bool) {
	tok := p.at(c)
	if tok.Kind != kind {
		return lexer.Token{}, c, false
	}
	return tok, p.next(c), true
}

// expect is consume's non-speculative counterpart: it reports a *errs.Error
// naming what was expected when the match fails, for use at points in the
// grammar where failure is no longer ambiguous (e.g. after already
// committing to a rule via a keyword).
func (p *Parser) expect(c cursor, kind lexer.Kind, what string) (lexer.Token, cursor, error) {
	tok, next, ok := p.consume(c, kind)
	if !ok {
		return lexer.Token{}, c, errs.New(p.loc(c), errs.Parse, "expected %s, found %s", what, p.at(c).Kind)
	}
	return tok, next, nil
}

// Parse consumes the entire token sequence as a File node; a trailing token
// other than EOF is a parse error, matching the "consumes the entire token
// sequence" success criterion.
func Parse(tokens []lexer.Token) (*ast.Arena, ast.Ref, error) {
	p := New(tokens)
	root, next, err := p.tryFile(cursor{pos: 0})
	if err != nil {
		return nil, ast.NilRef, err
	}
	if p.kindAt(next) != lexer.EOF {
		return nil, ast.NilRef, errs.New(p.loc(next), errs.Parse, "unexpected token %s after last top-level declaration", p.at(next).Kind)
	}
	return p.arena, root, nil
}

func (p *Parser) tryFile(c cursor) (ast.Ref, cursor, error) {
	loc := p.at(c).Loc
	var children []ast.Ref
	cur := c
	for p.kindAt(cur) != lexer.EOF {
		decl, next, err := p.tryTopLevel(cur)
		if err != nil {
			return ast.NilRef, c, err
		}
		children = append(children, decl)
		cur = next
	}
	ref := p.arena.Push(ast.Node{Kind: ast.FileNode, Loc: loc, Children: children})
	return ref, cur, nil
}

func (p *Parser) tryTopLevel(c cursor) (ast.Ref, cursor, error) {
	return p.tryFunction(c)
}
