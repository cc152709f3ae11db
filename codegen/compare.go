package codegen

import "github.com/minicc-lang/minicc/ast"

// comparisonOp picks the QBE comparison opcode for a relational/equality
// AST node kind, branching on operand signedness for `<`, `>`, `<=` — the
// redesign this front end applies over the source it was distilled from,
// which used signed comparisons unconditionally.
func comparisonOp(kind ast.Kind, signed bool) string {
	switch kind {
	case ast.EqNode:
		return "ceq"
	case ast.NotEqNode:
		return "cne"
	case ast.LtNode:
		if signed {
			return "cslt"
		}
		return "cult"
	case ast.GtNode:
		if signed {
			return "csgt"
		}
		return "cugt"
	case ast.LtEqNode:
		if signed {
			return "csle"
		}
		return "cule"
	default:
		return ""
	}
}
