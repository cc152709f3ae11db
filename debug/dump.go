// Package debug provides interactive token and AST inspection for a single
// translation unit, without ever invoking codegen. It is reachable from the
// CLI as `minicc repl` and via the `--dump-tokens`/`--dump-ast` flags.
package debug

import (
	"fmt"
	"io"

	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/lexer"
)

// DumpTokens writes one line per token in tokens to w.
func DumpTokens(w io.Writer, tokens []lexer.Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%-20s %-12s %q\n", tok.Loc, tok.Kind, tok.Literal)
	}
}

// DumpAST writes a parenthesized S-expression rendering of the tree rooted
// at root to w, as a single line.
func DumpAST(w io.Writer, arena *ast.Arena, root ast.Ref) {
	fmt.Fprintln(w, dumpNode(arena, root))
}

func dumpNode(arena *ast.Arena, r ast.Ref) string {
	if !r.Valid() {
		return "nil"
	}
	n := arena.At(r)
	switch n.Kind {
	case ast.IntLitNode:
		return fmt.Sprintf("%d", n.IntVal)
	case ast.CharLitNode:
		return fmt.Sprintf("'%c'", n.CharVal)
	case ast.StringLitNode:
		return fmt.Sprintf("%q", n.StrVal)
	case ast.IdentNode:
		return n.Name
	case ast.FileNode:
		return dumpChildren("file", arena, n.Children)
	case ast.FunctionNode:
		sig := arena.At(n.TypeRef)
		if !n.Body.Valid() {
			return fmt.Sprintf("(decl %s)", sig.Name)
		}
		return fmt.Sprintf("(func %s %s)", sig.Name, dumpNode(arena, n.Body))
	case ast.BlockNode:
		return dumpChildren("block", arena, n.Children)
	case ast.VarDeclNode:
		if n.InitExpr.Valid() {
			return fmt.Sprintf("(var %s %s)", n.Name, dumpNode(arena, n.InitExpr))
		}
		return fmt.Sprintf("(var %s)", n.Name)
	case ast.ReturnNode:
		if n.Left.Valid() {
			return fmt.Sprintf("(return %s)", dumpNode(arena, n.Left))
		}
		return "(return)"
	case ast.IfNode:
		if n.Else.Valid() {
			return fmt.Sprintf("(if %s %s %s)", dumpNode(arena, n.Cond), dumpNode(arena, n.Then), dumpNode(arena, n.Else))
		}
		return fmt.Sprintf("(if %s %s)", dumpNode(arena, n.Cond), dumpNode(arena, n.Then))
	case ast.WhileNode:
		return fmt.Sprintf("(while %s %s)", dumpNode(arena, n.Cond), dumpNode(arena, n.Body))
	case ast.BreakNode:
		return "(break)"
	case ast.ContinueNode:
		return "(continue)"
	case ast.CallNode:
		return fmt.Sprintf("(call %s %s)", dumpNode(arena, n.Callee), dumpChildrenInline(arena, n.Args))
	case ast.IndexNode:
		return fmt.Sprintf("(index %s %s)", dumpNode(arena, n.Left), dumpNode(arena, n.Index))
	case ast.AddrOfNode:
		return fmt.Sprintf("(addr %s)", dumpNode(arena, n.Left))
	case ast.DerefNode:
		return fmt.Sprintf("(deref %s)", dumpNode(arena, n.Left))
	case ast.NegateNode:
		return fmt.Sprintf("(neg %s)", dumpNode(arena, n.Left))
	case ast.PostIncNode:
		return fmt.Sprintf("(postinc %s)", dumpNode(arena, n.Left))
	case ast.CastNode:
		return fmt.Sprintf("(cast %s)", dumpNode(arena, n.Left))
	case ast.DiscardNode:
		return fmt.Sprintf("(discard %s)", dumpNode(arena, n.Left))
	case ast.AssignNode:
		return fmt.Sprintf("(= %s %s)", dumpNode(arena, n.Left), dumpNode(arena, n.Right))
	case ast.PlusEqNode:
		return fmt.Sprintf("(+= %s %s)", dumpNode(arena, n.Left), dumpNode(arena, n.Right))
	case ast.AddNode, ast.SubNode, ast.MulNode, ast.DivNode, ast.EqNode, ast.NotEqNode, ast.LtNode, ast.GtNode, ast.LtEqNode:
		return fmt.Sprintf("(%s %s %s)", binOpSymbol(n.Kind), dumpNode(arena, n.Left), dumpNode(arena, n.Right))
	default:
		return fmt.Sprintf("(%d)", n.Kind)
	}
}

func binOpSymbol(k ast.Kind) string {
	switch k {
	case ast.AddNode:
		return "+"
	case ast.SubNode:
		return "-"
	case ast.MulNode:
		return "*"
	case ast.DivNode:
		return "/"
	case ast.EqNode:
		return "=="
	case ast.NotEqNode:
		return "!="
	case ast.LtNode:
		return "<"
	case ast.GtNode:
		return ">"
	case ast.LtEqNode:
		return "<="
	default:
		return "?"
	}
}

func dumpChildren(label string, arena *ast.Arena, refs []ast.Ref) string {
	return fmt.Sprintf("(%s %s)", label, dumpChildrenInline(arena, refs))
}

func dumpChildrenInline(arena *ast.Arena, refs []ast.Ref) string {
	out := ""
	for i, r := range refs {
		if i > 0 {
			out += " "
		}
		out += dumpNode(arena, r)
	}
	return out
}
