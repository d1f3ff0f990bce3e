package cir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueString(t *testing.T) {
	for _, tc := range []struct {
		v Value
		s string
	}{
		{IntLit{Bits: 32, X: -7}, "-7"},
		{FloatLit{Bits: 32, X: 1.5}, "1.5"},
		{DoubleLit{X: 0.25}, "0.25"},
		{CharLit{X: '\n'}, `'\n'`},
		{CharLit{X: '\''}, `'\''`},
		{CharLit{X: 0x80}, `'\x80'`},
		{ArrayLit{Elems: []Value{IntLit{Bits: 8, X: 1}, IntLit{Bits: 8, X: 2}}}, "[1, 2]"},
		{ArrayLit{}, "[]"},
		{StructLit{Name: "point", Fields: []Value{IntLit{Bits: 32, X: 1}, IntLit{Bits: 32, X: 2}}}, "point { 1, 2 }"},
		{UnionLit{Name: "num", Fields: []Value{DoubleLit{X: 2}}}, "num { 2 }"},
		{FuncLit{Params: []Value{IntLit{Bits: 32, X: 1}}, Ret: BoolLit(true)}, "(1) -> true"},
		{AddrOf(IntLit{Bits: 32, X: 1}), "*1"},
		{StringLit(`Hello, Sailor!\n`), `"Hello, Sailor!\n"`},
		{VarRef{Name: "n", Type: I32}, "n"},
	} {
		assert.Equal(t, tc.s, tc.v.String())
	}
}

func TestValueCSyntax(t *testing.T) {
	for _, tc := range []struct {
		v Value
		s string
	}{
		{IntLit{Bits: 32, X: 3}, "3"},
		{FloatLit{Bits: 32, X: 2}, "2.0f"},
		{FloatLit{Bits: 32, X: 2.5}, "2.5f"},
		{DoubleLit{X: 1e300}, "1e+300"},
		{DoubleLit{X: 4}, "4.0"},
		{VoidLit{}, "(void)0"},
		{ArrayLit{Elems: []Value{IntLit{Bits: 32, X: 5}, IntLit{Bits: 32, X: 5}}}, "{5, 5}"},
		{StructLit{Name: "point"}, "(struct point){0}"},
		{UnionLit{Name: "num", Fields: []Value{IntLit{Bits: 32, X: 1}}}, "(union num){1}"},
		{AddrOf(VarRef{Name: "x", Type: I32}), "&x"},
	} {
		assert.Equal(t, tc.s, string(AppendValue(nil, tc.v, CSyntax)))
	}
}

func TestConforms(t *testing.T) {
	charp := PtrTo(Char{})

	assert.True(t, Conforms(StringLit("abc"), charp))
	assert.True(t, Conforms(StringLit("abc"), PtrTo(I8)))
	assert.True(t, Conforms(StringLit("abc"), Array{Elem: Char{}, Len: 4}))
	assert.False(t, Conforms(StringLit("abc"), Array{Elem: Char{}, Len: 3}))
	assert.False(t, Conforms(StringLit("abc"), I32))

	assert.True(t, Conforms(IntLit{Bits: 32, X: 1}, I32))
	assert.False(t, Conforms(IntLit{Bits: 32, X: 1}, I64))
	assert.False(t, Conforms(IntLit{Bits: 32, X: 1}, Enum{Name: "e"}))

	assert.False(t, Conforms(ArrayLit{Elems: []Value{IntLit{Bits: 32}}}, Array{Elem: I32, Len: 2}))
	assert.False(t, Conforms(StructLit{Name: "a"}, Struct{Name: "b"}))
	assert.True(t, Conforms(FuncLit{Params: []Value{CharLit{}}, Ret: VoidLit{}}, FuncType{Params: []Type{Char{}}, Ret: Void{}}))

	assert.True(t, Conforms(VarRef{Name: "x", Type: charp}, PtrTo(Char{})))
	assert.False(t, Conforms(VarRef{Name: "x", Type: I32}, charp))
	assert.False(t, Conforms(nil, I32))
}
