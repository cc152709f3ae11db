// Package ast defines the AST node model and the append-only arena that
// backs it. Every node lives in exactly one Arena; cross-references between
// nodes are arena indices (Ref), never pointers, so the whole tree can be
// copied, indexed, or inspected without chasing pointers.
package ast

import "github.com/minicc-lang/minicc/lexer"

// Ref is an index into an Arena. NilRef is the reserved sentinel meaning
// "absent" — the null child of an optional slot.
type Ref int

// NilRef encodes the absence of a node reference.
const NilRef Ref = -1

// Valid reports whether r refers to a real node.
func (r Ref) Valid() bool {
	return r != NilRef
}

// Kind tags the variant a Node holds.
type Kind int

const (
	IntLitNode Kind = iota
	CharLitNode
	StringLitNode
	IdentNode

	AddNode
	SubNode
	MulNode
	DivNode
	EqNode
	NotEqNode
	LtNode
	GtNode
	LtEqNode
	AssignNode
	PlusEqNode

	AddrOfNode
	DerefNode
	NegateNode
	PostIncNode
	CastNode
	DiscardNode

	VarDeclNode
	ParamNode
	FunctionSignatureNode
	FunctionNode

	BlockNode
	ReturnNode
	IfNode
	WhileNode
	BreakNode
	ContinueNode
	EmptyStmtNode

	CallNode
	IndexNode

	TypeIntNode
	TypeLongNode
	TypeCharNode
	TypeVoidNode
	TypeFloatNode
	PointerTypeNode

	FileNode
)

// Node is a tagged variant stored by value in an Arena. Only the fields
// relevant to Kind are meaningful; this mirrors the original parser's
// node_t tagged union, flattened into one Go struct instead of a C union
// since Go has no anonymous-union equivalent worth fighting for here.
type Node struct {
	Kind Kind
	Loc  lexer.SourceLoc

	// Generic single-child/binary-op slots.
	Left  Ref
	Right Ref

	// Name carries identifier text or a var-decl/param/function-signature
	// name. A call stores its callee as the Callee node, not in Name.
	Name string

	// Literal payloads.
	IntVal  int64
	CharVal byte
	StrVal  []byte

	// Type-node payload: base type keyword kind lives in Kind itself;
	// PointerBase is the pointee type node for PointerTypeNode.
	PointerBase Ref
	IsSigned    bool

	// Declaration payload.
	TypeRef      Ref // declared type node
	InitExpr     Ref // var-decl initializer, or NilRef
	IsArray      bool
	ArraySizeExp Ref // optional array-size expression, or NilRef

	// Function / signature payload.
	ReturnType Ref
	Params     []Ref // ParamNode children, in declaration order
	IsVarargs  bool
	Body       Ref // NilRef for a forward declaration

	// Statement payload.
	Cond     Ref // if/while condition
	Then     Ref
	Else     Ref // NilRef if no else clause

	// Call / index payload.
	Callee Ref
	Args   []Ref
	Index  Ref

	// Block / file payload: an ordered list of child statements or
	// top-level declarations.
	Children []Ref
}

// Arena is the append-only, indexed store backing one translation unit's
// AST. Its zero value is ready to use.
type Arena struct {
	nodes []Node
}

// NewArena returns an empty Arena with room for n nodes preallocated.
func NewArena(n int) *Arena {
	return &Arena{nodes: make([]Node, 0, n)}
}

// Push appends n and returns its Ref. Because children are always pushed
// before the parent that references them, a node's Ref is always greater
// than every child Ref it stores — the arena's core invariant.
func (a *Arena) Push(n Node) Ref {
	a.nodes = append(a.nodes, n)
	return Ref(len(a.nodes) - 1)
}

// At returns the node stored at r.
func (a *Arena) At(r Ref) *Node {
	return &a.nodes[r]
}

// Len reports how many nodes have been pushed.
func (a *Arena) Len() int {
	return len(a.nodes)
}
