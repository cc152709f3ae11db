package parser

import (
	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/lexer"
)

var baseTypeKinds = map[lexer.Kind]ast.Kind{
	lexer.KwInt:   ast.TypeIntNode,
	lexer.KwLong:  ast.TypeLongNode,
	lexer.KwChar:  ast.TypeCharNode,
	lexer.KwVoid:  ast.TypeVoidNode,
	lexer.KwFloat: ast.TypeFloatNode,
}

// tryType parses `unsigned? (int|long|char|void|float) '*'*`, returning the
// innermost base-type node wrapped in zero or more PointerTypeNode layers.
func (p *Parser) tryType(c cursor) (ast.Ref, cursor, bool) {
	loc := p.at(c).Loc
	signed := true
	cur := c
	if p.kindAt(cur) == lexer.KwUnsigned {
		signed = false
		cur = p.next(cur)
	}
	astKind, ok := baseTypeKinds[p.kindAt(cur)]
	if !ok {
		return ast.NilRef, c, false
	}
	base := p.arena.Push(ast.Node{Kind: astKind, Loc: loc, IsSigned: signed})
	cur = p.next(cur)

	result := base
	for p.kindAt(cur) == lexer.Star {
		cur = p.next(cur)
		result = p.arena.Push(ast.Node{Kind: ast.PointerTypeNode, Loc: loc, PointerBase: result})
	}
	return result, cur, true
}
