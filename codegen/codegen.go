// Package codegen implements the fused analyzer and QBE code generator: one
// recursive walk over the AST that simultaneously resolves symbols, checks
// and promotes types, and emits QBE intermediate representation text. There
// is no separate IR stage — every node either type-checks and emits in the
// same visit, or the walk aborts with a located *errs.Error.
package codegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/errs"
	"github.com/minicc-lang/minicc/types"
)

// QType is a QBE register base type — the type tag a temporary or a
// `copy`/arithmetic result carries. Sub-word values (chars) live in `w`
// registers; only loads and stores see the narrower sb/ub/b width (their
// stack slots are allocated at least 4 bytes).
type QType int

const (
	QVoid QType = iota
	QWord       // w — 32-bit, also holds promoted char values
	QLong       // l — 64-bit, also used for all pointers and functions
	QSingle     // s — float
)

func (q QType) String() string {
	switch q {
	case QWord:
		return "w"
	case QLong:
		return "l"
	case QSingle:
		return "s"
	default:
		return ""
	}
}

// regType maps a canonical Type to the QBE register type values of that
// type are carried in. Pointers and functions are always l; int is w; long
// is l; char is w (chars never live in a sub-word register; only their
// loads and stores are byte-wide); void has none.
func regType(t *types.Type) QType {
	if t.IsPointer() || t.IsFunc() {
		return QLong
	}
	switch t.Kind {
	case types.Long:
		return QLong
	case types.Void:
		return QVoid
	case types.Float:
		return QSingle
	default: // Int, Char
		return QWord
	}
}

// loadSuffix maps a canonical Type to the suffix `load<ty>` uses: char loads
// are sign/zero-aware (sb/ub) since the load itself extends to a full
// register; everything else matches its register type.
func loadSuffix(t *types.Type) string {
	if !t.IsPointer() && !t.IsFunc() && t.Kind == types.Char {
		if t.Signed {
			return "sb"
		}
		return "ub"
	}
	return regType(t).String()
}

// storeSuffix maps a canonical Type to the suffix `store<ty>` uses: QBE's
// store instructions have no signed/unsigned distinction, only width, so a
// char always stores as plain `b`.
func storeSuffix(t *types.Type) string {
	if !t.IsPointer() && !t.IsFunc() && t.Kind == types.Char {
		return "b"
	}
	return regType(t).String()
}

// value is a fully-resolved QBE operand paired with the canonical Type the
// analyzer computed for it.
type value struct {
	text string
	typ  *types.Type
}

func (v value) qtype() QType {
	return regType(v.typ)
}

// dataBlob is one pending read-only byte blob (a string literal) to be
// emitted at the end of the compile.
type dataBlob struct {
	name  string
	bytes []byte
}

// loopLabels holds the continue/break target labels of one enclosing while
// loop, pushed on loop entry and popped on exit so nested loops resolve
// break/continue to the correct innermost loop.
type loopLabels struct {
	continueLabel string
	breakLabel    string
}

// Generator is the per-compile mutable context: fresh temp/label counters,
// the symbol table, the pending string-literal table, and the output sink.
// Nothing here is a package global, so a caller can run many independent
// compiles in one process by constructing a fresh Generator per call.
type Generator struct {
	arena  *ast.Arena
	file   string
	out    io.Writer
	scopes *types.ScopeStack

	// storage maps a variable Symbol to the QBE address operand (a stack
	// slot, e.g. "%ident_1_x") that holds its value.
	storage map[*types.Symbol]string

	nextTemp  int
	nextLabel int
	blobs     []dataBlob
	loops     []loopLabels

	funcReturnType *types.Type
	resultVar      string // "" for void functions
	endLabel       string

	// lastWasTerminator is true when the most recently emitted line was a
	// block terminator (jmp/jnz/ret). closeFallthrough consults this to
	// decide whether it needs a guard label before its own jmp.
	lastWasTerminator bool
}

// New returns a Generator that writes QBE text for arena's tree to out.
func New(arena *ast.Arena, file string, out io.Writer) *Generator {
	return &Generator{
		arena:   arena,
		file:    file,
		out:     out,
		scopes:  types.NewScopeStack(),
		storage: make(map[*types.Symbol]string),
	}
}

func (g *Generator) emit(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	fmt.Fprintln(g.out, line)
	g.lastWasTerminator = strings.HasPrefix(line, "jmp ") || strings.HasPrefix(line, "jnz ") || line == "ret" || strings.HasPrefix(line, "ret ")
}

func (g *Generator) newTemp() string {
	g.nextTemp++
	return fmt.Sprintf("%%temp_%d", g.nextTemp-1)
}

func (g *Generator) newLabel(prefix string) string {
	g.nextLabel++
	return fmt.Sprintf("@%s_%d", prefix, g.nextLabel-1)
}

func (g *Generator) node(r ast.Ref) *ast.Node {
	return g.arena.At(r)
}

func (g *Generator) errAt(r ast.Ref, kind errs.Kind, format string, args ...any) error {
	loc := g.node(r).Loc
	return errs.New(errs.Loc{File: loc.File, Line: loc.Line, Column: loc.Column}, kind, format, args...)
}

// Generate type-checks and emits QBE text for the whole file node root.
func Generate(arena *ast.Arena, file string, root ast.Ref, out io.Writer) error {
	g := New(arena, file, out)
	return g.genFile(root)
}

func (g *Generator) genFile(root ast.Ref) error {
	file := g.node(root)
	for _, decl := range file.Children {
		if err := g.genFunction(decl); err != nil {
			return err
		}
	}
	g.flushDataBlobs()
	return nil
}

func (g *Generator) flushDataBlobs() {
	for _, b := range g.blobs {
		g.emit("data %s = { %s, b 0 }", b.name, byteList(b.bytes))
	}
}

// byteList renders bs as a QBE byte-initializer list, e.g. "b 104, b 105".
func byteList(bs []byte) string {
	out := ""
	for i, b := range bs {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("b %d", b)
	}
	return out
}
