package parser

import (
	"testing"

	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/lexer"
	"github.com/stretchr/testify/require"
)

func mustTokenize(t *testing.T, src string) []lexer.Token {
	toks, err := lexer.Tokenize([]byte(src), "test.c")
	require.NoError(t, err)
	return toks
}

func TestParseFactorial(t *testing.T) {
	toks := mustTokenize(t, `int fact(int x) { if (x == 0) return 1; else return x * fact(x - 1); } int main(void) { return fact(5); }`)
	arena, root, err := Parse(toks)
	require.NoError(t, err)
	file := arena.At(root)
	require.Equal(t, ast.FileNode, file.Kind)
	require.Len(t, file.Children, 2)
}

func TestParseForwardDeclThenDefinition(t *testing.T) {
	toks := mustTokenize(t, `int f(int); int g(void) { return f(3); } int f(int x) { return x + 1; }`)
	_, root, err := Parse(toks)
	require.NoError(t, err)
	require.True(t, root.Valid())
}

func TestParseVoidParamList(t *testing.T) {
	toks := mustTokenize(t, `int main(void) { return 0; }`)
	arena, root, err := Parse(toks)
	require.NoError(t, err)
	fn := arena.At(arena.At(root).Children[0])
	sig := arena.At(fn.TypeRef)
	require.Empty(t, sig.Params)
}

func TestParseTrailingCommaRejected(t *testing.T) {
	toks := mustTokenize(t, `int f(int a, ) { return 0; }`)
	_, _, err := Parse(toks)
	require.Error(t, err)
}

func TestParseVarargsMustBeLast(t *testing.T) {
	toks := mustTokenize(t, `int f(...,int a) { return 0; }`)
	_, _, err := Parse(toks)
	require.Error(t, err)
}

func TestParsePointerArithmeticAndLoad(t *testing.T) {
	toks := mustTokenize(t, `int main(void) { char *p; char c; p = &c; return *(p + 0); }`)
	_, _, err := Parse(toks)
	require.NoError(t, err)
}

func TestParseWhileWithPostIncrement(t *testing.T) {
	toks := mustTokenize(t, `int main(void) { int i; i = 0; while (i < 3) { i++; } return i; }`)
	_, _, err := Parse(toks)
	require.NoError(t, err)
}

func TestParseCastExpression(t *testing.T) {
	toks := mustTokenize(t, `int main(void) { long x; x = (long) 5; return 0; }`)
	_, _, err := Parse(toks)
	require.NoError(t, err)
}

func TestParseArrayDeclarator(t *testing.T) {
	toks := mustTokenize(t, `int main(void) { int a[10]; return 0; }`)
	arena, root, err := Parse(toks)
	require.NoError(t, err)
	fn := arena.At(arena.At(root).Children[0])
	body := arena.At(fn.Body)
	decl := arena.At(body.Children[0])
	require.True(t, decl.IsArray)
}

func TestParseUnexpectedTrailingToken(t *testing.T) {
	toks := mustTokenize(t, `int main(void) { return 0; } }`)
	_, _, err := Parse(toks)
	require.Error(t, err)
}

// childRefs lists the child references n's Kind uses. Ref fields a Kind does
// not use keep their zero value and are not references.
func childRefs(n *ast.Node) []ast.Ref {
	switch n.Kind {
	case ast.PointerTypeNode:
		return []ast.Ref{n.PointerBase}
	case ast.VarDeclNode:
		return []ast.Ref{n.TypeRef, n.ArraySizeExp, n.InitExpr}
	case ast.ParamNode:
		if n.IsVarargs {
			return nil
		}
		return []ast.Ref{n.TypeRef}
	case ast.FunctionSignatureNode:
		return append([]ast.Ref{n.ReturnType}, n.Params...)
	case ast.FunctionNode:
		return []ast.Ref{n.TypeRef, n.Body}
	case ast.BlockNode, ast.FileNode:
		return n.Children
	case ast.ReturnNode, ast.AddrOfNode, ast.DerefNode, ast.NegateNode, ast.PostIncNode, ast.DiscardNode:
		return []ast.Ref{n.Left}
	case ast.CastNode:
		return []ast.Ref{n.TypeRef, n.Left}
	case ast.IfNode:
		return []ast.Ref{n.Cond, n.Then, n.Else}
	case ast.WhileNode:
		return []ast.Ref{n.Cond, n.Body}
	case ast.CallNode:
		return append([]ast.Ref{n.Callee}, n.Args...)
	case ast.IndexNode:
		return []ast.Ref{n.Left, n.Index}
	case ast.AddNode, ast.SubNode, ast.MulNode, ast.DivNode, ast.EqNode, ast.NotEqNode,
		ast.LtNode, ast.GtNode, ast.LtEqNode, ast.AssignNode, ast.PlusEqNode:
		return []ast.Ref{n.Left, n.Right}
	default:
		return nil
	}
}

func TestArenaChildIndicesPrecedeParent(t *testing.T) {
	toks := mustTokenize(t, `int main(void) { return 1 + 2 * 3; }`)
	arena, root, err := Parse(toks)
	require.NoError(t, err)
	for i := 0; i < arena.Len(); i++ {
		n := arena.At(ast.Ref(i))
		for _, child := range childRefs(n) {
			if child.Valid() {
				require.Less(t, int(child), i)
			}
		}
	}
	require.True(t, root.Valid())
}
