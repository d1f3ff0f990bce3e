package cir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tlog.app/go/tlog/tlwire"
)

type tlogAppender interface {
	TlogAppend(b []byte) []byte
}

func TestTlogAppendAllVariants(t *testing.T) {
	var e tlwire.Encoder

	types := []Type{
		I32, F32, Double{}, Void{}, Char{}, Bool{},
		Array{Elem: I8, Len: 2}, Struct{Name: "s"}, Union{Name: "u"}, Enum{Name: "e"},
		FuncType{Params: []Type{I32}, Ret: Void{}}, PtrTo(Char{}),
	}

	for _, tp := range types {
		a, ok := tp.(tlogAppender)
		if !assert.True(t, ok, "%T", tp) {
			continue
		}

		assert.Equal(t, e.AppendString(nil, tp.String()), a.TlogAppend(nil), "%T", tp)
	}

	values := []Value{
		IntLit{Bits: 32, X: 1}, FloatLit{Bits: 32, X: 1.5}, DoubleLit{X: 2}, VoidLit{},
		CharLit{X: 'a'}, BoolLit(true), ArrayLit{Elems: []Value{IntLit{Bits: 8, X: 1}}},
		StructLit{Name: "s"}, UnionLit{Name: "u"}, EnumLit{Name: "e", X: 3},
		FuncLit{Ret: VoidLit{}}, AddrOf(CharLit{X: 'b'}), StringLit("text"),
		VarRef{Name: "x", Type: I32},
	}

	for _, v := range values {
		a, ok := v.(tlogAppender)
		if !assert.True(t, ok, "%T", v) {
			continue
		}

		assert.Equal(t, e.AppendString(nil, v.String()), a.TlogAppend(nil), "%T", v)
	}
}
