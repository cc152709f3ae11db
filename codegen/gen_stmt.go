package codegen

import (
	"fmt"

	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/errs"
	"github.com/minicc-lang/minicc/lexer"
	"github.com/minicc-lang/minicc/types"
)

// genStmt walks one statement node, emitting QBE instructions with side
// effects on the current scope and storage map. It never returns a value;
// statements are void in this grammar.
func (g *Generator) genStmt(r ast.Ref) error {
	n := g.node(r)
	switch n.Kind {
	case ast.BlockNode:
		return g.genBlock(n)
	case ast.EmptyStmtNode:
		return nil
	case ast.VarDeclNode:
		return g.genVarDecl(r, n)
	case ast.ReturnNode:
		return g.genReturn(r, n)
	case ast.IfNode:
		return g.genIf(n)
	case ast.WhileNode:
		return g.genWhile(n)
	case ast.BreakNode:
		return g.genBreak(r)
	case ast.ContinueNode:
		return g.genContinue(r)
	case ast.PlusEqNode:
		return g.genPlusEq(r, n)
	case ast.AssignNode:
		return g.genAssign(r, n)
	case ast.DiscardNode:
		_, err := g.genExpr(n.Left, false)
		return err
	default:
		return g.errAt(r, errs.Unsupported, "unsupported statement node")
	}
}

func (g *Generator) genBlock(n *ast.Node) error {
	g.scopes.Push()
	defer g.scopes.Pop()
	for _, stmt := range n.Children {
		if err := g.genStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// declareLocal registers a new variable in the current scope and allocates
// its stack slot, recording the slot address in g.storage.
func (g *Generator) declareLocal(r ast.Ref, name string, typ *types.Type, loc lexer.SourceLoc) (*types.Symbol, error) {
	sym := &types.Symbol{
		Name:       name,
		Loc:        loc,
		Type:       typ,
		ScopeDepth: g.scopes.Depth(),
		IsGlobal:   g.scopes.Depth() == 0,
	}
	switch g.scopes.Insert(sym) {
	case types.Conflict:
		return nil, g.errAt(r, errs.Symbol, "redeclaration of %q in the same scope", name)
	}
	addr := fmt.Sprintf("%%ident_%d_%s", sym.ScopeDepth, name)
	size := typ.Size()
	if size < 4 {
		size = 4
	}
	g.emit("%s =l alloc4 %d", addr, size)
	g.storage[sym] = addr
	return sym, nil
}

func (g *Generator) genVarDecl(r ast.Ref, n *ast.Node) error {
	declared := g.typeFromNode(n.TypeRef)
	if n.IsArray {
		declared = declared.WithPointerDepth(1)
	}
	sym, err := g.declareLocal(r, n.Name, declared, g.node(r).Loc)
	if err != nil {
		return err
	}
	if !n.InitExpr.Valid() {
		return nil
	}
	init, err := g.genExpr(n.InitExpr, false)
	if err != nil {
		return err
	}
	if !types.Eq(init.typ, declared) {
		return g.errAt(r, errs.Type, "cannot initialize %q of type %s with value of type %s", n.Name, declared, init.typ)
	}
	g.emit("store%s %s, %s", storeSuffix(declared), init.text, g.storage[sym])
	return nil
}

func (g *Generator) genReturn(r ast.Ref, n *ast.Node) error {
	if !n.Left.Valid() {
		if g.funcReturnType.Kind != types.Void || g.funcReturnType.IsPointer() {
			return g.errAt(r, errs.Type, "missing return value in function returning %s", g.funcReturnType)
		}
		g.emit("jmp %s", g.endLabel)
		return nil
	}
	v, err := g.genExpr(n.Left, false)
	if err != nil {
		return err
	}
	if !types.Eq(v.typ, g.funcReturnType) {
		return g.errAt(r, errs.Type, "return value of type %s does not match function return type %s", v.typ, g.funcReturnType)
	}
	g.emit("store%s %s, %s", storeSuffix(g.funcReturnType), v.text, g.resultVar)
	g.emit("jmp %s", g.endLabel)
	return nil
}

func (g *Generator) genIf(n *ast.Node) error {
	cond, err := g.genExpr(n.Cond, false)
	if err != nil {
		return err
	}
	thenLabel := g.newLabel("if_then")
	if n.Else.Valid() {
		elseLabel := g.newLabel("if_else")
		endLabel := g.newLabel("if_end")
		g.emit("jnz %s, %s, %s", cond.text, thenLabel, elseLabel)
		g.emit("%s", thenLabel)
		if err := g.genStmt(n.Then); err != nil {
			return err
		}
		g.closeFallthrough(endLabel)
		g.emit("%s", elseLabel)
		if err := g.genStmt(n.Else); err != nil {
			return err
		}
		g.closeFallthrough(endLabel)
		g.emit("%s", endLabel)
		return nil
	}
	endLabel := g.newLabel("if_end")
	g.emit("jnz %s, %s, %s", cond.text, thenLabel, endLabel)
	g.emit("%s", thenLabel)
	if err := g.genStmt(n.Then); err != nil {
		return err
	}
	g.closeFallthrough(endLabel)
	g.emit("%s", endLabel)
	return nil
}

// closeFallthrough terminates the current block with a jump to target. A
// statement body (an if-branch, a loop body) may already have ended its own
// last block in a terminator (a nested return, break, or continue); emitting
// this jmp right after one, with no label between them, would put two
// terminators in one block. In that case a guard label is emitted first so
// the jmp becomes the sole terminator of its own (unreachable) block. When
// the body fell through normally (no terminator yet), the jmp alone closes
// that still-open block.
func (g *Generator) closeFallthrough(target string) {
	if g.lastWasTerminator {
		g.emit("%s", g.newLabel("unreachable"))
	}
	g.emit("jmp %s", target)
}

func (g *Generator) genWhile(n *ast.Node) error {
	condLabel := g.newLabel("while_cond")
	bodyLabel := g.newLabel("while_body")
	endLabel := g.newLabel("while_end")
	g.loops = append(g.loops, loopLabels{continueLabel: condLabel, breakLabel: endLabel})
	defer func() { g.loops = g.loops[:len(g.loops)-1] }()

	g.emit("jmp %s", condLabel)
	g.emit("%s", condLabel)
	cond, err := g.genExpr(n.Cond, false)
	if err != nil {
		return err
	}
	g.emit("jnz %s, %s, %s", cond.text, bodyLabel, endLabel)
	g.emit("%s", bodyLabel)
	if err := g.genStmt(n.Body); err != nil {
		return err
	}
	g.closeFallthrough(condLabel)
	g.emit("%s", endLabel)
	return nil
}

func (g *Generator) genBreak(r ast.Ref) error {
	if len(g.loops) == 0 {
		return g.errAt(r, errs.Unsupported, "break outside of a loop")
	}
	g.emit("jmp %s", g.loops[len(g.loops)-1].breakLabel)
	return nil
}

func (g *Generator) genContinue(r ast.Ref) error {
	if len(g.loops) == 0 {
		return g.errAt(r, errs.Unsupported, "continue outside of a loop")
	}
	g.emit("jmp %s", g.loops[len(g.loops)-1].continueLabel)
	return nil
}

func (g *Generator) genPlusEq(r ast.Ref, n *ast.Node) error {
	addr, err := g.genExpr(n.Left, true)
	if err != nil {
		return err
	}
	rhs, err := g.genExpr(n.Right, false)
	if err != nil {
		return err
	}
	old := g.newTemp()
	g.emit("%s =%s load%s %s", old, regType(addr.typ), loadSuffix(addr.typ), addr.text)
	oldVal := value{text: old, typ: addr.typ}
	left, right, resultType, err := g.promoteOperands(r, oldVal, rhs)
	if err != nil {
		return err
	}
	updated := g.newTemp()
	g.emit("%s =%s add %s, %s", updated, regType(resultType), left.text, right.text)
	g.emit("store%s %s, %s", storeSuffix(addr.typ), updated, addr.text)
	return nil
}

func (g *Generator) genAssign(r ast.Ref, n *ast.Node) error {
	addr, err := g.genExpr(n.Left, true)
	if err != nil {
		return err
	}
	rhs, err := g.genExpr(n.Right, false)
	if err != nil {
		return err
	}
	if !types.Eq(addr.typ, rhs.typ) {
		return g.errAt(r, errs.Type, "cannot assign value of type %s to %s", rhs.typ, addr.typ)
	}
	g.emit("store%s %s, %s", storeSuffix(addr.typ), rhs.text, addr.text)
	return nil
}
