package codegen

import (
	"fmt"
	"strings"

	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/errs"
	"github.com/minicc-lang/minicc/types"
)

// genFunction resolves and, for a definition, emits one top-level function.
// A forward declaration only registers its signature in the global scope;
// a definition additionally registers the prior forward declaration's
// promotion (via ScopeStack.Insert) and emits a full QBE function body.
func (g *Generator) genFunction(ref ast.Ref) error {
	fn := g.node(ref)
	sig := g.node(fn.TypeRef)
	funcType := g.funcTypeFromSignature(fn.TypeRef)

	sym := &types.Symbol{
		Name:          sig.Name,
		Loc:           sig.Loc,
		Type:          funcType,
		ScopeDepth:    0,
		IsGlobal:      true,
		IsForwardDecl: !fn.Body.Valid(),
	}
	if g.scopes.Insert(sym) == types.Conflict {
		return g.errAt(ref, errs.Symbol, "conflicting declaration of function %q", sig.Name)
	}
	if !fn.Body.Valid() {
		return nil
	}

	g.funcReturnType = funcType.Func.Return
	isVoid := g.funcReturnType.Kind == types.Void && !g.funcReturnType.IsPointer()
	g.endLabel = g.newLabel("end")
	g.resultVar = ""
	if !isVoid {
		g.resultVar = fmt.Sprintf("%%result_%s", sig.Name)
	}

	g.emit("export function %s {", g.functionHeader(sig, funcType))
	g.emit("@start")

	g.scopes.Push()
	defer g.scopes.Pop()

	if !isVoid {
		size := g.funcReturnType.Size()
		if size < 4 {
			size = 4
		}
		g.emit("%s =l alloc4 %d", g.resultVar, size)
	}

	paramIndex := 0
	for _, p := range sig.Params {
		pn := g.node(p)
		if pn.IsVarargs {
			continue
		}
		ptype := g.typeFromNode(pn.TypeRef)
		paramSym, err := g.declareLocal(p, pn.Name, ptype, pn.Loc)
		if err != nil {
			return err
		}
		g.emit("store%s %%param_%d, %s", storeSuffix(ptype), paramIndex, g.storage[paramSym])
		paramIndex++
	}

	if err := g.genStmt(fn.Body); err != nil {
		return err
	}
	g.closeFallthrough(g.endLabel)

	g.emit("%s", g.endLabel)
	if isVoid {
		g.emit("ret")
	} else {
		t := g.newTemp()
		g.emit("%s =%s load%s %s", t, regType(g.funcReturnType), loadSuffix(g.funcReturnType), g.resultVar)
		g.emit("ret %s", t)
	}
	g.emit("}")
	return nil
}

// functionHeader renders a QBE function prototype line, e.g.
// "w $fact(w %param_0)" or "$printf(l %param_0, ...)" for a void-returning
// variadic signature.
func (g *Generator) functionHeader(sig *ast.Node, funcType *types.Type) string {
	var parts []string
	paramIndex := 0
	for _, p := range sig.Params {
		pn := g.node(p)
		if pn.IsVarargs {
			parts = append(parts, "...")
			continue
		}
		ptype := g.typeFromNode(pn.TypeRef)
		parts = append(parts, fmt.Sprintf("%s %%param_%d", regType(ptype), paramIndex))
		paramIndex++
	}
	ret := regType(funcType.Func.Return).String()
	name := "$" + sig.Name
	if ret == "" {
		return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s %s(%s)", ret, name, strings.Join(parts, ", "))
}
