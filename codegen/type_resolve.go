package codegen

import (
	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/types"
)

// typeFromNode converts a parsed type node (a base-type node possibly
// wrapped in one or more PointerTypeNode layers) into a canonical Type.
func (g *Generator) typeFromNode(r ast.Ref) *types.Type {
	n := g.node(r)
	if n.Kind == ast.PointerTypeNode {
		base := g.typeFromNode(n.PointerBase)
		return base.WithPointerDepth(1)
	}
	var kind types.Kind
	switch n.Kind {
	case ast.TypeIntNode:
		kind = types.Int
	case ast.TypeLongNode:
		kind = types.Long
	case ast.TypeCharNode:
		kind = types.Char
	case ast.TypeVoidNode:
		kind = types.Void
	case ast.TypeFloatNode:
		kind = types.Float
	}
	t := types.NewPrimitive(kind)
	if !n.IsSigned {
		t = t.WithUnsigned()
	}
	return t
}

// funcTypeFromSignature builds the canonical function Type of a
// FunctionSignatureNode. Each parameter keeps its declared type; a `...`
// parameter sets IsVarargs instead of adding a parameter type.
func (g *Generator) funcTypeFromSignature(sig ast.Ref) *types.Type {
	sigNode := g.node(sig)
	ret := g.typeFromNode(sigNode.ReturnType)
	var params []*types.Type
	varargs := false
	for _, p := range sigNode.Params {
		pn := g.node(p)
		if pn.IsVarargs {
			varargs = true
			continue
		}
		params = append(params, g.typeFromNode(pn.TypeRef))
	}
	return &types.Type{Func: &types.Func{Return: ret, Params: params, IsVarargs: varargs}}
}
