package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeEqPointerDepth(t *testing.T) {
	a := NewPrimitive(Int).WithPointerDepth(1)
	b := NewPrimitive(Int).WithPointerDepth(1)
	c := NewPrimitive(Int)
	require.True(t, Eq(a, b))
	require.False(t, Eq(a, c))
}

func TestTypeSize(t *testing.T) {
	require.Equal(t, 4, NewPrimitive(Int).Size())
	require.Equal(t, 8, NewPrimitive(Long).Size())
	require.Equal(t, 1, NewPrimitive(Char).Size())
	require.Equal(t, 8, NewPrimitive(Char).WithPointerDepth(1).Size())
}

func TestFuncTypeEq(t *testing.T) {
	f1 := &Type{Func: &Func{Return: NewPrimitive(Int), Params: []*Type{NewPrimitive(Int)}}}
	f2 := &Type{Func: &Func{Return: NewPrimitive(Int), Params: []*Type{NewPrimitive(Int)}}}
	f3 := &Type{Func: &Func{Return: NewPrimitive(Int), Params: []*Type{NewPrimitive(Long)}}}
	require.True(t, Eq(f1, f2))
	require.False(t, Eq(f1, f3))
}

func TestScopeStackLookupShadowing(t *testing.T) {
	s := NewScopeStack()
	s.Insert(&Symbol{Name: "x", Type: NewPrimitive(Int), IsGlobal: true})
	s.Push()
	defer s.Pop()
	s.Insert(&Symbol{Name: "x", Type: NewPrimitive(Char)})
	sym, ok := s.Lookup("x")
	require.True(t, ok)
	require.Equal(t, Char, sym.Type.Kind)
}

func TestScopeStackRedeclarationConflict(t *testing.T) {
	s := NewScopeStack()
	s.Insert(&Symbol{Name: "x", Type: NewPrimitive(Int)})
	result := s.Insert(&Symbol{Name: "x", Type: NewPrimitive(Int)})
	require.Equal(t, Conflict, result)
}

func TestScopeStackForwardDeclPromotion(t *testing.T) {
	s := NewScopeStack()
	sig := &Type{Func: &Func{Return: NewPrimitive(Int), Params: []*Type{NewPrimitive(Int)}}}
	s.Insert(&Symbol{Name: "f", Type: sig, IsForwardDecl: true})
	result := s.Insert(&Symbol{Name: "f", Type: sig})
	require.Equal(t, Promoted, result)
	sym, _ := s.Lookup("f")
	require.False(t, sym.IsForwardDecl)
}
