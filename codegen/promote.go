package codegen

import (
	"github.com/minicc-lang/minicc/ast"
	"github.com/minicc-lang/minicc/errs"
	"github.com/minicc-lang/minicc/types"
)

// extendToWord sign- or zero-extends v (known narrower than int, i.e. a
// char) up to a QWord-typed temp, using extsb/extub per its signedness.
func (g *Generator) extendToWord(v value) value {
	op := "extsb"
	if !v.typ.Signed {
		op = "extub"
	}
	t := g.newTemp()
	g.emit("%s =w %s %s", t, op, v.text)
	resultType := types.NewPrimitive(types.Int)
	if !v.typ.Signed {
		resultType = resultType.WithUnsigned()
	}
	return value{text: t, typ: resultType}
}

// extendToLong sign- or zero-extends a QWord-typed v up to QLong, using
// extsw/extuw per its signedness.
func (g *Generator) extendToLong(v value) value {
	op := "extsw"
	if !v.typ.Signed {
		op = "extuw"
	}
	t := g.newTemp()
	g.emit("%s =l %s %s", t, op, v.text)
	resultType := types.NewPrimitive(types.Long)
	if !v.typ.Signed {
		resultType = resultType.WithUnsigned()
	}
	return value{text: t, typ: resultType}
}

// promoteToInt widens v to at least `int` width: a char operand is
// extended to int via extsb/extub (matching its declared signedness even
// though QBE's own loadsb/loadub already sign- or zero-extend on load —
// this keeps the promotion step explicit and independently correct of how
// the value reached its current register). Word, long, and pointer values
// pass through untouched.
func (g *Generator) promoteToInt(v value) value {
	if !v.typ.IsPointer() && !v.typ.IsFunc() && v.typ.Kind == types.Char {
		return g.extendToWord(v)
	}
	return v
}

// promoteOperands applies the full arithmetic promotion ladder to a and b:
// pointer arithmetic when exactly one side is a pointer, otherwise integral
// promotion to a common width. It returns the (possibly re-emitted)
// operands and the result type of the arithmetic operation they feed.
func (g *Generator) promoteOperands(opRef ast.Ref, a, b value) (value, value, *types.Type, error) {
	aPtr, bPtr := a.typ.IsPointer(), b.typ.IsPointer()
	if aPtr && bPtr {
		return value{}, value{}, nil, g.errAt(opRef, errs.Type, "pointer arithmetic between two pointers is not permitted")
	}
	if aPtr || bPtr {
		ptr, idx := a, b
		if bPtr {
			ptr, idx = b, a
		}
		idx = g.promoteToInt(idx)
		if idx.qtype() == QWord {
			idx = g.extendToLong(idx)
		}
		size := ptr.typ.WithPointerDepth(-1).Size()
		scaled := g.newTemp()
		g.emit("%s =l mul %s, %d", scaled, idx.text, size)
		scaledVal := value{text: scaled, typ: types.NewPrimitive(types.Long)}
		if bPtr {
			return scaledVal, ptr, ptr.typ, nil
		}
		return ptr, scaledVal, ptr.typ, nil
	}

	a = g.promoteToInt(a)
	b = g.promoteToInt(b)
	if a.qtype() == b.qtype() {
		return a, b, commonSignedness(a.typ, b.typ), nil
	}
	if a.qtype() == QWord && b.qtype() == QLong {
		a = g.extendToLong(a)
	} else if b.qtype() == QWord && a.qtype() == QLong {
		b = g.extendToLong(b)
	}
	return a, b, commonSignedness(a.typ, b.typ), nil
}

// commonSignedness returns a's type with signedness reconciled: the result
// is unsigned if either operand is unsigned, matching usual arithmetic
// conversion.
func commonSignedness(a, b *types.Type) *types.Type {
	if !a.Signed || !b.Signed {
		return a.WithUnsigned()
	}
	return a
}

