package parser

import (
	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/errs"
	"github.com/minicc-lang/minicc/lexer"
)

// tryStmt dispatches to the first statement form that matches at c. Order
// matters only where two forms share a prefix (var-decl vs. expression
// statement, `+=` vs. plain assignment); each is tried far enough to
// disambiguate before committing.
func (p *Parser) tryStmt(c cursor) (ast.Ref, cursor, error) {
	if ref, next, ok, err := p.tryBlock(c); ok || err != nil {
		return ref, next, err
	}
	if ref, next, ok := p.tryEmptyStmt(c); ok {
		return ref, next, nil
	}
	if ref, next, ok, err := p.tryVarDecl(c); ok || err != nil {
		return ref, next, err
	}
	if ref, next, ok, err := p.tryReturn(c); ok || err != nil {
		return ref, next, err
	}
	if ref, next, ok, err := p.tryWhile(c); ok || err != nil {
		return ref, next, err
	}
	if ref, next, ok, err := p.tryIf(c); ok || err != nil {
		return ref, next, err
	}
	if ref, next, ok := p.tryBreak(c); ok {
		return ref, next, nil
	}
	if ref, next, ok := p.tryContinue(c); ok {
		return ref, next, nil
	}
	if ref, next, ok, err := p.tryPlusEqStmt(c); ok || err != nil {
		return ref, next, err
	}
	if ref, next, ok, err := p.tryAssignStmt(c); ok || err != nil {
		return ref, next, err
	}
	return p.tryDiscardStmt(c)
}

func (p *Parser) tryEmptyStmt(c cursor) (ast.Ref, cursor, bool) {
	tok := p.at(c)
	if tok.Kind != lexer.Semicolon {
		return ast.NilRef, c, false
	}
	return p.arena.Push(ast.Node{Kind: ast.EmptyStmtNode, Loc: tok.Loc}), p.next(c), true
}

func (p *Parser) tryBreak(c cursor) (ast.Ref, cursor, bool) {
	tok, next, ok := p.consume(c, lexer.KwBreak)
	if !ok {
		return ast.NilRef, c, false
	}
	_, next, ok = p.consume(next, lexer.Semicolon)
	if !ok {
		return ast.NilRef, c, false
	}
	return p.arena.Push(ast.Node{Kind: ast.BreakNode, Loc: tok.Loc}), next, true
}

func (p *Parser) tryContinue(c cursor) (ast.Ref, cursor, bool) {
	tok, next, ok := p.consume(c, lexer.KwContinue)
	if !ok {
		return ast.NilRef, c, false
	}
	_, next, ok = p.consume(next, lexer.Semicolon)
	if !ok {
		return ast.NilRef, c, false
	}
	return p.arena.Push(ast.Node{Kind: ast.ContinueNode, Loc: tok.Loc}), next, true
}

func (p *Parser) tryBlock(c cursor) (ast.Ref, cursor, bool, error) {
	tok, cur, ok := p.consume(c, lexer.LBrace)
	if !ok {
		return ast.NilRef, c, false, nil
	}
	var children []ast.Ref
	for p.kindAt(cur) != lexer.RBrace {
		if p.kindAt(cur) == lexer.EOF {
			return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "unterminated block")
		}
		stmt, next, err := p.tryStmt(cur)
		if err != nil {
			return ast.NilRef, c, true, err
		}
		children = append(children, stmt)
		cur = next
	}
	_, next, _ := p.consume(cur, lexer.RBrace)
	return p.arena.Push(ast.Node{Kind: ast.BlockNode, Loc: tok.Loc, Children: children}), next, true, nil
}

func (p *Parser) tryReturn(c cursor) (ast.Ref, cursor, bool, error) {
	tok, cur, ok := p.consume(c, lexer.KwReturn)
	if !ok {
		return ast.NilRef, c, false, nil
	}
	if _, next, ok := p.consume(cur, lexer.Semicolon); ok {
		return p.arena.Push(ast.Node{Kind: ast.ReturnNode, Loc: tok.Loc, Left: ast.NilRef}), next, true, nil
	}
	expr, cur, err := p.tryExpr(cur)
	if err != nil {
		return ast.NilRef, c, true, err
	}
	_, next, ok := p.consume(cur, lexer.Semicolon)
	if !ok {
		return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "expected ';' after return expression")
	}
	return p.arena.Push(ast.Node{Kind: ast.ReturnNode, Loc: tok.Loc, Left: expr}), next, true, nil
}

func (p *Parser) tryWhile(c cursor) (ast.Ref, cursor, bool, error) {
	tok, cur, ok := p.consume(c, lexer.KwWhile)
	if !ok {
		return ast.NilRef, c, false, nil
	}
	_, cur, ok = p.consume(cur, lexer.LParen)
	if !ok {
		return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "expected '(' after while")
	}
	cond, cur, err := p.tryExpr(cur)
	if err != nil {
		return ast.NilRef, c, true, err
	}
	_, cur, ok = p.consume(cur, lexer.RParen)
	if !ok {
		return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "expected ')' after while condition")
	}
	body, next, err := p.tryStmt(cur)
	if err != nil {
		return ast.NilRef, c, true, err
	}
	return p.arena.Push(ast.Node{Kind: ast.WhileNode, Loc: tok.Loc, Cond: cond, Body: body}), next, true, nil
}

func (p *Parser) tryIf(c cursor) (ast.Ref, cursor, bool, error) {
	tok, cur, ok := p.consume(c, lexer.KwIf)
	if !ok {
		return ast.NilRef, c, false, nil
	}
	_, cur, ok = p.consume(cur, lexer.LParen)
	if !ok {
		return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "expected '(' after if")
	}
	cond, cur, err := p.tryExpr(cur)
	if err != nil {
		return ast.NilRef, c, true, err
	}
	_, cur, ok = p.consume(cur, lexer.RParen)
	if !ok {
		return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "expected ')' after if condition")
	}
	then, cur, err := p.tryStmt(cur)
	if err != nil {
		return ast.NilRef, c, true, err
	}
	elseRef := ast.NilRef
	if _, next, ok := p.consume(cur, lexer.KwElse); ok {
		var err error
		elseRef, cur, err = p.tryStmt(next)
		if err != nil {
			return ast.NilRef, c, true, err
		}
	}
	return p.arena.Push(ast.Node{Kind: ast.IfNode, Loc: tok.Loc, Cond: cond, Then: then, Else: elseRef}), cur, true, nil
}

// tryPlusEqStmt parses `lvalue += expr ;` as a statement, not an expression.
func (p *Parser) tryPlusEqStmt(c cursor) (ast.Ref, cursor, bool, error) {
	left, cur, err := p.tryExpr(c)
	if err != nil {
		return ast.NilRef, c, false, nil
	}
	tok, cur, ok := p.consume(cur, lexer.PlusEq)
	if !ok {
		return ast.NilRef, c, false, nil
	}
	right, cur, err := p.tryExpr(cur)
	if err != nil {
		return ast.NilRef, c, true, err
	}
	_, next, ok := p.consume(cur, lexer.Semicolon)
	if !ok {
		return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "expected ';' after += statement")
	}
	return p.arena.Push(ast.Node{Kind: ast.PlusEqNode, Loc: tok.Loc, Left: left, Right: right}), next, true, nil
}

// tryAssignStmt parses `lvalue = expr ;` as a statement, not an expression —
// `a = b = c` and `if ((x = f()))` are deliberately not expressible.
func (p *Parser) tryAssignStmt(c cursor) (ast.Ref, cursor, bool, error) {
	left, cur, err := p.tryExpr(c)
	if err != nil {
		return ast.NilRef, c, false, nil
	}
	tok, cur, ok := p.consume(cur, lexer.Assign)
	if !ok {
		return ast.NilRef, c, false, nil
	}
	right, cur, err := p.tryExpr(cur)
	if err != nil {
		return ast.NilRef, c, true, err
	}
	_, next, ok := p.consume(cur, lexer.Semicolon)
	if !ok {
		return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "expected ';' after assignment")
	}
	return p.arena.Push(ast.Node{Kind: ast.AssignNode, Loc: tok.Loc, Left: left, Right: right}), next, true, nil
}

func (p *Parser) tryDiscardStmt(c cursor) (ast.Ref, cursor, error) {
	loc := p.at(c).Loc
	expr, cur, err := p.tryExpr(c)
	if err != nil {
		return ast.NilRef, c, err
	}
	_, next, ok := p.consume(cur, lexer.Semicolon)
	if !ok {
		return ast.NilRef, c, errs.New(p.loc(cur), errs.Parse, "expected ';' after expression statement")
	}
	return p.arena.Push(ast.Node{Kind: ast.DiscardNode, Loc: loc, Left: expr}), next, nil
}

// tryVarDecl parses `type ident ('[' expr? ']')? ('=' expr)? ';'`.
func (p *Parser) tryVarDecl(c cursor) (ast.Ref, cursor, bool, error) {
	typeRef, cur, ok := p.tryType(c)
	if !ok {
		return ast.NilRef, c, false, nil
	}
	nameTok, cur, ok := p.consume(cur, lexer.Ident)
	if !ok {
		return ast.NilRef, c, false, nil
	}

	isArray := false
	arraySize := ast.NilRef
	if _, next, ok := p.consume(cur, lexer.LBracket); ok {
		isArray = true
		cur = next
		if p.kindAt(cur) != lexer.RBracket {
			var err error
			arraySize, cur, err = p.tryExpr(cur)
			if err != nil {
				return ast.NilRef, c, true, err
			}
		}
		_, next, ok := p.consume(cur, lexer.RBracket)
		if !ok {
			return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "expected ']' in array declarator")
		}
		cur = next
	}

	initExpr := ast.NilRef
	if _, next, ok := p.consume(cur, lexer.Assign); ok {
		var err error
		initExpr, cur, err = p.tryExpr(next)
		if err != nil {
			return ast.NilRef, c, true, err
		}
	}

	_, next, ok := p.consume(cur, lexer.Semicolon)
	if !ok {
		return ast.NilRef, c, true, errs.New(p.loc(cur), errs.Parse, "expected ';' after variable declaration")
	}
	decl := p.arena.Push(ast.Node{
		Kind: ast.VarDeclNode, Loc: nameTok.Loc, Name: nameTok.Literal,
		TypeRef: typeRef, InitExpr: initExpr, IsArray: isArray, ArraySizeExp: arraySize,
	})
	return decl, next, true, nil
}
