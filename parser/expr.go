package parser

import (
	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/errs"
	"github.com/minicc-lang/minicc/lexer"
)

// tryExpr parses the lowest-precedence expression rung: relational and
// equality operators, along with everything they dominate.
func (p *Parser) tryExpr(c cursor) (ast.Ref, cursor, error) {
	return p.tryRelational(c)
}

var relationalOps = map[lexer.Kind]ast.Kind{
	lexer.Lt:    ast.LtNode,
	lexer.Gt:    ast.GtNode,
	lexer.LtEq:  ast.LtEqNode,
	lexer.Eq:    ast.EqNode,
	lexer.NotEq: ast.NotEqNode,
}

// tryRelational parses `<`, `>`, `<=`, `==`, `!=` as one left-associative
// rung over additive expressions, matching the spec's choice to treat them
// as a single precedence level rather than splitting equality from
// relational comparisons.
func (p *Parser) tryRelational(c cursor) (ast.Ref, cursor, error) {
	left, cur, err := p.tryAdditive(c)
	if err != nil {
		return ast.NilRef, c, err
	}
	for {
		kind, ok := relationalOps[p.kindAt(cur)]
		if !ok {
			break
		}
		loc := p.at(cur).Loc
		next := p.next(cur)
		right, after, err := p.tryAdditive(next)
		if err != nil {
			return ast.NilRef, c, err
		}
		left = p.arena.Push(ast.Node{Kind: kind, Loc: loc, Left: left, Right: right})
		cur = after
	}
	return left, cur, nil
}

func (p *Parser) tryAdditive(c cursor) (ast.Ref, cursor, error) {
	left, cur, err := p.tryMultiplicative(c)
	if err != nil {
		return ast.NilRef, c, err
	}
	for {
		var kind ast.Kind
		switch p.kindAt(cur) {
		case lexer.Plus:
			kind = ast.AddNode
		case lexer.Minus:
			kind = ast.SubNode
		default:
			return left, cur, nil
		}
		loc := p.at(cur).Loc
		next := p.next(cur)
		right, after, err := p.tryMultiplicative(next)
		if err != nil {
			return ast.NilRef, c, err
		}
		left = p.arena.Push(ast.Node{Kind: kind, Loc: loc, Left: left, Right: right})
		cur = after
	}
}

func (p *Parser) tryMultiplicative(c cursor) (ast.Ref, cursor, error) {
	left, cur, err := p.tryPostfix(c)
	if err != nil {
		return ast.NilRef, c, err
	}
	for {
		var kind ast.Kind
		switch p.kindAt(cur) {
		case lexer.Star:
			kind = ast.MulNode
		case lexer.Slash:
			kind = ast.DivNode
		default:
			return left, cur, nil
		}
		loc := p.at(cur).Loc
		next := p.next(cur)
		right, after, err := p.tryPostfix(next)
		if err != nil {
			return ast.NilRef, c, err
		}
		left = p.arena.Push(ast.Node{Kind: kind, Loc: loc, Left: left, Right: right})
		cur = after
	}
}

// tryPostfix parses a primary expression followed by any mix of call and
// index postfixes, optionally trailed by a single `++`.
func (p *Parser) tryPostfix(c cursor) (ast.Ref, cursor, error) {
	expr, cur, err := p.tryPrimary(c)
	if err != nil {
		return ast.NilRef, c, err
	}
	for {
		switch p.kindAt(cur) {
		case lexer.LParen:
			loc := p.at(cur).Loc
			args, next, err := p.tryArgList(p.next(cur))
			if err != nil {
				return ast.NilRef, c, err
			}
			expr = p.arena.Push(ast.Node{Kind: ast.CallNode, Loc: loc, Callee: expr, Args: args})
			cur = next
		case lexer.LBracket:
			loc := p.at(cur).Loc
			idx, afterExpr, err := p.tryExpr(p.next(cur))
			if err != nil {
				return ast.NilRef, c, err
			}
			_, next, ok := p.consume(afterExpr, lexer.RBracket)
			if !ok {
				return ast.NilRef, c, errs.New(p.loc(afterExpr), errs.Parse, "expected ']'")
			}
			expr = p.arena.Push(ast.Node{Kind: ast.IndexNode, Loc: loc, Left: expr, Index: idx})
			cur = next
		case lexer.PlusPlus:
			loc := p.at(cur).Loc
			expr = p.arena.Push(ast.Node{Kind: ast.PostIncNode, Loc: loc, Left: expr})
			cur = p.next(cur)
			return expr, cur, nil
		default:
			return expr, cur, nil
		}
	}
}

func (p *Parser) tryArgList(c cursor) ([]ast.Ref, cursor, error) {
	if _, next, ok := p.consume(c, lexer.RParen); ok {
		return nil, next, nil
	}
	var args []ast.Ref
	cur := c
	for {
		arg, next, err := p.tryExpr(cur)
		if err != nil {
			return nil, c, err
		}
		args = append(args, arg)
		cur = next
		if _, next, ok := p.consume(cur, lexer.Comma); ok {
			cur = next
			continue
		}
		break
	}
	_, next, ok := p.consume(cur, lexer.RParen)
	if !ok {
		return nil, c, errs.New(p.loc(cur), errs.Parse, "expected ')' or ',' in argument list")
	}
	return args, next, nil
}

// tryPrimary parses a literal, identifier, parenthesized expression, cast,
// or one of the unary prefix operators `*`, `-`, `&`.
func (p *Parser) tryPrimary(c cursor) (ast.Ref, cursor, error) {
	tok := p.at(c)
	switch tok.Kind {
	case lexer.IntLit:
		return p.arena.Push(ast.Node{Kind: ast.IntLitNode, Loc: tok.Loc, IntVal: tok.IntVal}), p.next(c), nil
	case lexer.CharLit:
		return p.arena.Push(ast.Node{Kind: ast.CharLitNode, Loc: tok.Loc, CharVal: tok.CharVal}), p.next(c), nil
	case lexer.StringLit:
		return p.arena.Push(ast.Node{Kind: ast.StringLitNode, Loc: tok.Loc, StrVal: tok.StrVal}), p.next(c), nil
	case lexer.Ident:
		return p.arena.Push(ast.Node{Kind: ast.IdentNode, Loc: tok.Loc, Name: tok.Literal}), p.next(c), nil
	case lexer.Star:
		operand, next, err := p.tryPrimary(p.next(c))
		if err != nil {
			return ast.NilRef, c, err
		}
		return p.arena.Push(ast.Node{Kind: ast.DerefNode, Loc: tok.Loc, Left: operand}), next, nil
	case lexer.Minus:
		operand, next, err := p.tryPrimary(p.next(c))
		if err != nil {
			return ast.NilRef, c, err
		}
		return p.arena.Push(ast.Node{Kind: ast.NegateNode, Loc: tok.Loc, Left: operand}), next, nil
	case lexer.Amp:
		operand, next, err := p.tryPrimary(p.next(c))
		if err != nil {
			return ast.NilRef, c, err
		}
		return p.arena.Push(ast.Node{Kind: ast.AddrOfNode, Loc: tok.Loc, Left: operand}), next, nil
	case lexer.LParen:
		// Speculatively try a cast `(type) expr` before falling back to a
		// parenthesized expression; a successful type parse followed by a
		// matching ')' commits to the cast reading.
		if typeRef, afterType, ok := p.tryType(p.next(c)); ok {
			if _, afterParen, ok := p.consume(afterType, lexer.RParen); ok {
				operand, afterExpr, err := p.tryPrimary(afterParen)
				if err == nil {
					return p.arena.Push(ast.Node{Kind: ast.CastNode, Loc: tok.Loc, Left: operand, TypeRef: typeRef}), afterExpr, nil
				}
			}
		}
		inner, afterExpr, err := p.tryExpr(p.next(c))
		if err != nil {
			return ast.NilRef, c, err
		}
		_, next, ok := p.consume(afterExpr, lexer.RParen)
		if !ok {
			return ast.NilRef, c, errs.New(p.loc(afterExpr), errs.Parse, "expected ')'")
		}
		return inner, next, nil
	default:
		return ast.NilRef, c, errs.New(p.loc(c), errs.Parse, "expected expression, found %s", tok.Kind)
	}
}
