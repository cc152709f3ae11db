// Package types implements the canonical type model and the lexically
// scoped symbol table the analyzer resolves identifiers against.
package types

import "fmt"

// Kind is the base kind a Type carries before any pointer wrapping.
type Kind int

const (
	Int Kind = iota
	Long
	Char
	Void
	Float
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Long:
		return "long"
	case Char:
		return "char"
	case Void:
		return "void"
	case Float:
		return "float"
	default:
		return "?"
	}
}

// Func is the payload of a function type: its return type and the types of
// its fixed parameters, in declaration order.
type Func struct {
	Return    *Type
	Params    []*Type
	IsVarargs bool
}

// Type is the canonical representation every declared or computed value's
// type collapses to. PointerDepth > 0 overrides Kind for sizing purposes:
// every pointer, regardless of pointee, is 8 bytes. A Func payload is
// present only for function-typed symbols; Kind is meaningless when Func is
// non-nil.
type Type struct {
	Kind         Kind
	Signed       bool
	PointerDepth int
	Func         *Func
}

// NewPrimitive builds a non-pointer primitive type of kind k. Char defaults
// to signed; int and long default to signed unless unsigned is requested by
// the caller via WithUnsigned.
func NewPrimitive(k Kind) *Type {
	return &Type{Kind: k, Signed: true}
}

// WithUnsigned returns a copy of t marked unsigned, whatever its kind or
// pointer depth; on a pointer type the flag describes the pointee's base.
func (t *Type) WithUnsigned() *Type {
	cp := *t
	cp.Signed = false
	return &cp
}

// WithPointerDepth returns a copy of t with its pointer depth increased by
// delta (delta may be negative, used by Deref).
func (t *Type) WithPointerDepth(delta int) *Type {
	cp := *t
	cp.PointerDepth += delta
	return &cp
}

// IsPointer reports whether t denotes a pointer.
func (t *Type) IsPointer() bool {
	return t.PointerDepth > 0
}

// IsFunc reports whether t denotes a function (never a pointer to one in
// this design — functions are always referenced by name, never held in
// pointer-typed variables).
func (t *Type) IsFunc() bool {
	return t.Func != nil
}

// Size reports the type's size in bytes: pointers are always 8; otherwise
// int/float are 4, long is 8, char is 1, void is 0.
func (t *Type) Size() int {
	if t.IsPointer() {
		return 8
	}
	switch t.Kind {
	case Long:
		return 8
	case Char:
		return 1
	case Void:
		return 0
	default:
		return 4
	}
}

// Eq reports structural type equality: same kind, same pointer depth, and
// for function types the same parameter count with pairwise-equal
// parameter and return types. Signedness is part of the type but is not
// consulted here — sign promotion happens silently during arithmetic, per
// the analyzer's assignability rules.
func Eq(a, b *Type) bool {
	if a.PointerDepth != b.PointerDepth {
		return false
	}
	if a.IsFunc() != b.IsFunc() {
		return false
	}
	if a.IsFunc() {
		if len(a.Func.Params) != len(b.Func.Params) || a.Func.IsVarargs != b.Func.IsVarargs {
			return false
		}
		if !Eq(a.Func.Return, b.Func.Return) {
			return false
		}
		for i := range a.Func.Params {
			if !Eq(a.Func.Params[i], b.Func.Params[i]) {
				return false
			}
		}
		return true
	}
	return a.Kind == b.Kind
}

func (t *Type) String() string {
	suffix := ""
	for i := 0; i < t.PointerDepth; i++ {
		suffix += "*"
	}
	if t.IsFunc() {
		return fmt.Sprintf("func(...) %s%s", t.Func.Return, suffix)
	}
	sign := ""
	if !t.Signed && (t.Kind == Int || t.Kind == Long || t.Kind == Char) {
		sign = "unsigned "
	}
	return fmt.Sprintf("%s%s%s", sign, t.Kind, suffix)
}
