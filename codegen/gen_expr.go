package codegen

import (
	"fmt"

	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/errs"
	"github.com/minicc-lang/minicc/types"
)

// genExpr walks one expression node under the lvalue/rvalue contract:
// emitLvalue = true requests an address (a stack slot or a computed
// pointer); false requests a value (the result of a load). Literals, casts,
// arithmetic, and comparisons never accept emitLvalue = true; callers must
// not ask for it there.
func (g *Generator) genExpr(r ast.Ref, emitLvalue bool) (value, error) {
	n := g.node(r)
	switch n.Kind {
	case ast.IntLitNode:
		t := g.newTemp()
		g.emit("%s =w copy %d", t, n.IntVal)
		return value{text: t, typ: types.NewPrimitive(types.Int)}, nil
	case ast.CharLitNode:
		t := g.newTemp()
		g.emit("%s =w copy %d", t, int8(n.CharVal))
		return value{text: t, typ: types.NewPrimitive(types.Char)}, nil
	case ast.StringLitNode:
		return g.genStringLit(n), nil
	case ast.IdentNode:
		return g.genIdent(r, n, emitLvalue)
	case ast.AddNode, ast.SubNode, ast.MulNode, ast.DivNode:
		return g.genArith(r, n)
	case ast.EqNode, ast.NotEqNode, ast.LtNode, ast.GtNode, ast.LtEqNode:
		return g.genCompare(r, n)
	case ast.AddrOfNode:
		return g.genAddrOf(r, n)
	case ast.DerefNode:
		return g.genDeref(r, n, emitLvalue)
	case ast.NegateNode:
		return g.genNegate(r, n)
	case ast.PostIncNode:
		return g.genPostInc(r, n)
	case ast.CastNode:
		return g.genCast(r, n)
	case ast.CallNode:
		return g.genCall(r, n)
	case ast.IndexNode:
		return g.genIndex(r, n, emitLvalue)
	default:
		return value{}, g.errAt(r, errs.Unsupported, "unsupported expression node")
	}
}

func (g *Generator) genStringLit(n *ast.Node) value {
	name := fmt.Sprintf("$_data_%d", len(g.blobs))
	g.blobs = append(g.blobs, dataBlob{name: name, bytes: n.StrVal})
	t := g.newTemp()
	g.emit("%s =l copy %s", t, name)
	return value{text: t, typ: types.NewPrimitive(types.Char).WithPointerDepth(1)}
}

func (g *Generator) genIdent(r ast.Ref, n *ast.Node, emitLvalue bool) (value, error) {
	sym, ok := g.scopes.Lookup(n.Name)
	if !ok {
		return value{}, g.errAt(r, errs.Symbol, "undeclared identifier %q", n.Name)
	}
	if sym.Type.IsFunc() {
		return value{text: "$" + sym.Name, typ: sym.Type}, nil
	}
	addr := g.storage[sym]
	if emitLvalue {
		return value{text: addr, typ: sym.Type}, nil
	}
	t := g.newTemp()
	g.emit("%s =%s load%s %s", t, regType(sym.Type), loadSuffix(sym.Type), addr)
	return value{text: t, typ: sym.Type}, nil
}

func (g *Generator) genArith(r ast.Ref, n *ast.Node) (value, error) {
	left, err := g.genExpr(n.Left, false)
	if err != nil {
		return value{}, err
	}
	right, err := g.genExpr(n.Right, false)
	if err != nil {
		return value{}, err
	}
	left, right, resultType, err := g.promoteOperands(r, left, right)
	if err != nil {
		return value{}, err
	}
	op := map[ast.Kind]string{ast.AddNode: "add", ast.SubNode: "sub", ast.MulNode: "mul", ast.DivNode: "div"}[n.Kind]
	t := g.newTemp()
	g.emit("%s =%s %s %s, %s", t, regType(resultType), op, left.text, right.text)
	return value{text: t, typ: resultType}, nil
}

func (g *Generator) genCompare(r ast.Ref, n *ast.Node) (value, error) {
	left, err := g.genExpr(n.Left, false)
	if err != nil {
		return value{}, err
	}
	right, err := g.genExpr(n.Right, false)
	if err != nil {
		return value{}, err
	}
	left, right, operandType, err := g.promoteOperands(r, left, right)
	if err != nil {
		return value{}, err
	}
	op := comparisonOp(n.Kind, operandType.Signed)
	t := g.newTemp()
	g.emit("%s =w %s%s %s, %s", t, op, regType(operandType), left.text, right.text)
	return value{text: t, typ: types.NewPrimitive(types.Int)}, nil
}

func (g *Generator) genAddrOf(r ast.Ref, n *ast.Node) (value, error) {
	operand, err := g.genExpr(n.Left, true)
	if err != nil {
		return value{}, err
	}
	return value{text: operand.text, typ: operand.typ.WithPointerDepth(1)}, nil
}

func (g *Generator) genDeref(r ast.Ref, n *ast.Node, emitLvalue bool) (value, error) {
	ptr, err := g.genExpr(n.Left, false)
	if err != nil {
		return value{}, err
	}
	if !ptr.typ.IsPointer() {
		return value{}, g.errAt(r, errs.Type, "cannot dereference non-pointer type %s", ptr.typ)
	}
	pointee := ptr.typ.WithPointerDepth(-1)
	if emitLvalue {
		return value{text: ptr.text, typ: pointee}, nil
	}
	t := g.newTemp()
	g.emit("%s =%s load%s %s", t, regType(pointee), loadSuffix(pointee), ptr.text)
	return value{text: t, typ: pointee}, nil
}

func (g *Generator) genNegate(r ast.Ref, n *ast.Node) (value, error) {
	operand, err := g.genExpr(n.Left, false)
	if err != nil {
		return value{}, err
	}
	operand = g.promoteToInt(operand)
	t := g.newTemp()
	g.emit("%s =%s neg %s", t, regType(operand.typ), operand.text)
	return value{text: t, typ: operand.typ}, nil
}

// genPostInc lowers `lvalue++` to a load, an add-1, and a store back to the
// same address, returning the pre-increment value as the expression result.
func (g *Generator) genPostInc(r ast.Ref, n *ast.Node) (value, error) {
	addr, err := g.genExpr(n.Left, true)
	if err != nil {
		return value{}, err
	}
	old := g.newTemp()
	g.emit("%s =%s load%s %s", old, regType(addr.typ), loadSuffix(addr.typ), addr.text)
	oldVal := value{text: old, typ: addr.typ}
	base, step, resultType, err := g.promoteOperands(r, oldVal, value{text: "1", typ: types.NewPrimitive(types.Int)})
	if err != nil {
		return value{}, err
	}
	updated := g.newTemp()
	g.emit("%s =%s add %s, %s", updated, regType(resultType), base.text, step.text)
	g.emit("store%s %s, %s", storeSuffix(addr.typ), updated, addr.text)
	return oldVal, nil
}

func (g *Generator) genCast(r ast.Ref, n *ast.Node) (value, error) {
	operand, err := g.genExpr(n.Left, false)
	if err != nil {
		return value{}, err
	}
	target := g.typeFromNode(n.TypeRef)
	if regType(target) == operand.qtype() {
		t := g.newTemp()
		g.emit("%s =%s copy %s", t, regType(target), operand.text)
		return value{text: t, typ: target}, nil
	}
	t := g.newTemp()
	g.emit("%s =%s cast %s", t, regType(target), operand.text)
	return value{text: t, typ: target}, nil
}

func (g *Generator) genIndex(r ast.Ref, n *ast.Node, emitLvalue bool) (value, error) {
	base, err := g.genExpr(n.Left, false)
	if err != nil {
		return value{}, err
	}
	idx, err := g.genExpr(n.Index, false)
	if err != nil {
		return value{}, err
	}
	if !base.typ.IsPointer() {
		return value{}, g.errAt(r, errs.Type, "cannot index non-pointer type %s", base.typ)
	}
	base, idx, _, err = g.promoteOperands(r, base, idx)
	if err != nil {
		return value{}, err
	}
	addr := g.newTemp()
	g.emit("%s =l add %s, %s", addr, base.text, idx.text)
	pointee := base.typ.WithPointerDepth(-1)
	if emitLvalue {
		return value{text: addr, typ: pointee}, nil
	}
	t := g.newTemp()
	g.emit("%s =%s load%s %s", t, regType(pointee), loadSuffix(pointee), addr)
	return value{text: t, typ: pointee}, nil
}

func (g *Generator) genCall(r ast.Ref, n *ast.Node) (value, error) {
	callee, err := g.genExpr(n.Callee, true)
	if err != nil {
		return value{}, err
	}
	if !callee.typ.IsFunc() {
		return value{}, g.errAt(r, errs.Type, "cannot call non-function type %s", callee.typ)
	}
	sig := callee.typ.Func
	calleeName := g.node(n.Callee).Name
	if len(n.Args) < len(sig.Params) || (!sig.IsVarargs && len(n.Args) != len(sig.Params)) {
		return value{}, g.errAt(r, errs.Type, "call to %q expects %d argument(s), got %d", calleeName, len(sig.Params), len(n.Args))
	}
	argVals := make([]value, len(n.Args))
	for i, a := range n.Args {
		av, err := g.genExpr(a, false)
		if err != nil {
			return value{}, err
		}
		if i < len(sig.Params) && !types.Eq(av.typ, sig.Params[i]) {
			return value{}, g.errAt(a, errs.Type, "argument %d: expected %s, got %s", i+1, sig.Params[i], av.typ)
		}
		argVals[i] = av
	}
	argText := ""
	for i, av := range argVals {
		if i > 0 {
			argText += ", "
		}
		argText += fmt.Sprintf("%s %s", regType(av.typ), av.text)
	}
	if sig.Return.Kind == types.Void && sig.Return.PointerDepth == 0 {
		g.emit("call %s(%s)", callee.text, argText)
		return value{typ: sig.Return}, nil
	}
	t := g.newTemp()
	g.emit("%s =%s call %s(%s)", t, regType(sig.Return), callee.text, argText)
	return value{text: t, typ: sig.Return}, nil
}
