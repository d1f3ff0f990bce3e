package cir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	for _, tc := range []struct {
		t Type
		s string
	}{
		{I8, "i8"},
		{I16, "i16"},
		{I32, "int"},
		{I64, "i64"},
		{Int{Bits: 128}, "i128"},
		{F32, "float"},
		{Float{Bits: 64}, "double"},
		{Float{Bits: 16}, "half"},
		{Float{Bits: 80}, "f80"},
		{Double{}, "double"},
		{Void{}, "void"},
		{Char{}, "char"},
		{Bool{}, "bool"},
		{Array{Elem: I32, Len: 3}, "[3 x int]"},
		{Array{Elem: Array{Elem: Char{}, Len: 2}, Len: 4}, "[4 x [2 x char]]"},
		{Struct{Name: "point"}, "%point"},
		{Union{Name: "num"}, "%num"},
		{Enum{Name: "color"}, "%color"},
		{FuncType{Params: []Type{I32, PtrTo(Char{})}, Ret: Void{}}, "(int, *char) -> void"},
		{FuncType{Ret: I32}, "() -> int"},
		{PtrTo(I32), "*int"},
		{PtrTo(PtrTo(I32)), "**int"},
	} {
		assert.Equal(t, tc.s, tc.t.String())
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(PtrTo(Array{Elem: I8, Len: 2}), PtrTo(Array{Elem: I8, Len: 2})))
	assert.True(t, Equal(FuncType{Params: []Type{I32}, Ret: Void{}}, FuncType{Params: []Type{I32}, Ret: Void{}}))

	assert.False(t, Equal(I32, I64))
	assert.False(t, Equal(Struct{Name: "a"}, Union{Name: "a"}))
	assert.False(t, Equal(Array{Elem: I8, Len: 2}, Array{Elem: I8, Len: 3}))
	assert.False(t, Equal(FuncType{Params: []Type{I32}, Ret: Void{}}, FuncType{Ret: Void{}}))
	assert.False(t, Equal(I32, FuncType{Ret: I32}))
}

func TestDeriveScalars(t *testing.T) {
	for _, tc := range []struct {
		t Type
		x int64
		v Value
		s string
	}{
		{I8, 300, IntLit{Bits: 8, X: 44}, "44"},
		{I8, -1, IntLit{Bits: 8, X: -1}, "-1"},
		{I16, 70000, IntLit{Bits: 16, X: 4464}, "4464"},
		{I32, 1 << 32, IntLit{Bits: 32, X: 0}, "0"},
		{I64, 1 << 40, IntLit{Bits: 64, X: 1 << 40}, "1099511627776"},
		{Int{Bits: 4}, 15, IntLit{Bits: 4, X: -1}, "-1"},
		{F32, 7, FloatLit{Bits: 32, X: 7}, "7"},
		{Double{}, -2, DoubleLit{X: -2}, "-2"},
		{Void{}, 5, VoidLit{}, "void"},
		{Char{}, 'A', CharLit{X: 'A'}, "'A'"},
		{Char{}, 0x141, CharLit{X: 'A'}, "'A'"},
		{Bool{}, 2, BoolLit(true), "true"},
		{Bool{}, 0, BoolLit(false), "false"},
		{Enum{Name: "color"}, 3, EnumLit{Name: "color", X: 3}, "3"},
		{Struct{Name: "point"}, 3, StructLit{Name: "point"}, "point {  }"},
		{Union{Name: "num"}, 3, UnionLit{Name: "num"}, "num {  }"},
	} {
		v, err := Derive(tc.t, tc.x)
		require.NoError(t, err, "%v", tc.t)

		assert.Equal(t, tc.v, v, "%v", tc.t)
		assert.Equal(t, tc.s, v.String(), "%v", tc.t)
		assert.True(t, Conforms(v, tc.t), "%v", tc.t)
	}
}

func TestDeriveArray(t *testing.T) {
	tp := Array{Elem: I32, Len: 3}

	v, err := Derive(tp, 5)
	require.NoError(t, err)

	arr, ok := v.(ArrayLit)
	require.True(t, ok, "%T", v)
	require.Len(t, arr.Elems, 3)

	for _, el := range arr.Elems {
		assert.Equal(t, "5", el.String())
	}

	assert.Equal(t, "[5, 5, 5]", v.String())
	assert.True(t, Conforms(v, tp))

	_, err = Derive(Array{Elem: I32, Len: -1}, 5)
	assert.Error(t, err)
}

func TestDerivePointer(t *testing.T) {
	v, err := Derive(PtrTo(PtrTo(I32)), 9)
	require.NoError(t, err)

	assert.Equal(t, PtrLit{Elem: PtrLit{Elem: IntLit{Bits: 32, X: 9}}}, v)
	assert.Equal(t, "**9", v.String())
}

func TestDeriveFunc(t *testing.T) {
	_, err := Derive(FuncType{Ret: I32}, 1)
	assert.Error(t, err)

	_, err = Derive(PtrTo(FuncType{Ret: I32}), 1)
	assert.Error(t, err)

	_, err = Derive(Array{Elem: FuncType{Ret: I32}, Len: 2}, 1)
	assert.Error(t, err)

	_, err = Derive(nil, 1)
	assert.Error(t, err)
}
