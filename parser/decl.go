package parser

import (
	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/errs"
	"github.com/minicc-lang/minicc/lexer"
)

// tryParam parses one parameter: either a type with an optional name (as in
// a forward declaration's `int f(int);`) or a trailing `...` marking the
// signature variadic.
func (p *Parser) tryParam(c cursor) (ast.Ref, cursor, bool, error) {
	if tok, next, ok := p.consume(c, lexer.Ellipsis); ok {
		return p.arena.Push(ast.Node{Kind: ast.ParamNode, Loc: tok.Loc, IsVarargs: true}), next, true, nil
	}
	typeRef, cur, ok := p.tryType(c)
	if !ok {
		return ast.NilRef, c, false, nil
	}
	nameTok, next, ok := p.consume(cur, lexer.Ident)
	if !ok {
		return p.arena.Push(ast.Node{Kind: ast.ParamNode, Loc: p.at(c).Loc, TypeRef: typeRef}), cur, true, nil
	}
	return p.arena.Push(ast.Node{Kind: ast.ParamNode, Loc: nameTok.Loc, Name: nameTok.Literal, TypeRef: typeRef}), next, true, nil
}

// tryFunctionSignature parses `type ident ( params )`. A lone `void`
// between the parens means "no parameters"; a trailing comma with no
// following parameter is a parse error; a `...` parameter must be last.
func (p *Parser) tryFunctionSignature(c cursor) (ast.Ref, cursor, bool, error) {
	returnType, cur, ok := p.tryType(c)
	if !ok {
		return ast.NilRef, c, false, nil
	}
	nameTok, cur, ok := p.consume(cur, lexer.Ident)
	if !ok {
		return ast.NilRef, c, false, nil
	}
	_, cur, ok = p.consume(cur, lexer.LParen)
	if !ok {
		return ast.NilRef, c, false, nil
	}

	// `(void)` with nothing else means an empty parameter list.
	if p.kindAt(cur) == lexer.KwVoid {
		lookahead := p.next(cur)
		if p.kindAt(lookahead) == lexer.RParen {
			sig := p.arena.Push(ast.Node{Kind: ast.FunctionSignatureNode, Loc: nameTok.Loc, Name: nameTok.Literal, ReturnType: returnType})
			return sig, p.next(lookahead), true, nil
		}
	}

	var params []ast.Ref
	if p.kindAt(cur) != lexer.RParen {
		for {
			param, next, ok, err := p.tryParam(cur)
			if err != nil {
				return ast.NilRef, c, true, err
			}
			if !ok {
				return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "expected parameter")
			}
			params = append(params, param)
			cur = next
			if p.arena.At(param).IsVarargs && p.kindAt(cur) != lexer.RParen {
				return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "'...' must be the last parameter")
			}
			if _, next, ok := p.consume(cur, lexer.Comma); ok {
				cur = next
				continue
			}
			break
		}
	}
	_, next, ok := p.consume(cur, lexer.RParen)
	if !ok {
		return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "expected ')' or ',' in parameter list")
	}
	sig := p.arena.Push(ast.Node{Kind: ast.FunctionSignatureNode, Loc: nameTok.Loc, Name: nameTok.Literal, ReturnType: returnType, Params: params})
	return sig, next, true, nil
}

// tryFunction parses a top-level function: a signature followed by either a
// block (definition) or `;` (forward declaration).
func (p *Parser) tryFunction(c cursor) (ast.Ref, cursor, error) {
	sig, cur, ok, err := p.tryFunctionSignature(c)
	if err != nil {
		return ast.NilRef, c, err
	}
	if !ok {
		return ast.NilRef, c, errs.New(p.loc(c), errs.Parse, "expected function declaration")
	}
	if _, next, ok := p.consume(cur, lexer.Semicolon); ok {
		fn := p.arena.Push(ast.Node{Kind: ast.FunctionNode, Loc: p.arena.At(sig).Loc, TypeRef: sig, Body: ast.NilRef})
		return fn, next, nil
	}
	body, next, ok, err := p.tryBlock(cur)
	if err != nil {
		return ast.NilRef, c, err
	}
	if !ok {
		return ast.NilRef, c, errs.New(p.loc(cur), errs.Parse, "expected function body or ';'")
	}
	fn := p.arena.Push(ast.Node{Kind: ast.FunctionNode, Loc: p.arena.At(sig).Loc, TypeRef: sig, Body: body})
	return fn, next, nil
}
