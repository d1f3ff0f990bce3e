package cir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(ds []Diagnostic) (k []DiagKind) {
	for _, d := range ds {
		k = append(k, d.Kind)
	}

	return k
}

func TestVerifyClean(t *testing.T) {
	assert.Empty(t, Verify(helloUnit()))
}

func TestVerifyCalls(t *testing.T) {
	u := NewUnit("m")
	f := u.AddFunction("f", I32, nil, false, false)

	add := NewFunction("add", I32, []Type{I32, I32}, false, false)
	printf := NewFunction("printf", I32, []Type{PtrTo(Char{})}, true, false)
	free := NewFunction("free", Void{}, []Type{PtrTo(Void{})}, false, false)
	unspec := NewFunction("unspec", I32, nil, false, false)

	one := IntLit{Bits: 32, X: 1}

	b := NewBuilder()
	b.PositionAtEnd(f.AddBlock())

	b.Call(add, []Value{one}, "")
	b.Call(printf, nil, "")
	b.Call(add, []Value{one, StringLit("x")}, "")
	b.Call(free, []Value{AddrOf(VoidLit{})}, "r")
	s := b.Call(add, []Value{one, one}, "s")
	b.Call(add, []Value{one, one}, "s")
	b.Call(printf, []Value{StringLit("%d"), s.Ref(), one}, "")
	b.Call(unspec, []Value{one, VarRef{Name: "nope", Type: I32}}, "")
	b.Call(add, []Value{one, CallResult{Type: I32}.Ref()}, "")
	b.Return(s.Ref())

	ds := Verify(u)

	assert.Equal(t, []DiagKind{DiagArity, DiagArity, DiagArgType, DiagResult, DiagResult, DiagResult, DiagResult}, kinds(ds))

	stmts := []int{0, 1, 2, 3, 5, 7, 8}
	for i, d := range ds {
		assert.Equal(t, "f", d.Func)
		assert.Equal(t, stmts[i], d.Stmt, "%v", d)
		assert.NotZero(t, d.From)
	}

	assert.Contains(t, ds[0].String(), "f:0: call add: want 2 args, got 1")
	assert.Contains(t, ds[0].String(), "verify_test.go:")
}

func TestVerifyReturns(t *testing.T) {
	u := NewUnit("m")

	v := u.AddFunction("v", Void{}, nil, false, false)
	i := u.AddFunction("i", I32, nil, false, false)
	w := u.AddFunction("w", I64, nil, false, false)
	n := u.AddFunction("n", I32, nil, false, false)
	u.AddFunction("decl", I32, nil, false, false)
	m := u.AddFunction("main", I32, nil, false, false)

	b := NewBuilder()

	b.PositionAtEnd(v.AddBlock())
	b.Return(IntLit{Bits: 32})

	b.PositionAtEnd(i.AddBlock())
	b.ReturnVoid()

	b.PositionAtEnd(w.AddBlock())
	b.Return(IntLit{Bits: 32})

	n.AddBlock()
	m.AddBlock()

	ds := Verify(u)

	require.Len(t, ds, 4)

	assert.Equal(t, []DiagKind{DiagReturn, DiagReturn, DiagReturnType, DiagMissingReturn}, kinds(ds))
	assert.Equal(t, []string{"v", "i", "w", "n"}, []string{ds[0].Func, ds[1].Func, ds[2].Func, ds[3].Func})
	assert.Equal(t, -1, ds[3].Stmt)
}

func TestVerifyFunctions(t *testing.T) {
	u := NewUnit("m")

	f := u.AddFunction("f", Void{}, nil, false, false)
	u.AddFunction("f", Void{}, nil, false, false)
	u.AddFunction("", Void{}, nil, false, false)

	f.AddBlock()
	f.AddBlock()

	ds := Verify(u)

	assert.Equal(t, []DiagKind{DiagReattach, DiagName, DiagName}, kinds(ds))

	for _, d := range ds {
		assert.False(t, strings.Contains(d.String(), "("), "no call site for function level diagnostics: %v", d)
	}
}
