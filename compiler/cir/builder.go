package cir

import (
	"tlog.app/go/loc"
	"tlog.app/go/tlog"
)

type (
	// Builder appends rendered statements to the one block it targets.
	//
	// A block is targeted by at most one builder at a time.
	// Appending without a target, or to a block replaced by
	// Function.AddBlock, panics.
	Builder struct {
		blk    *Block
		origin string
	}

	// CallResult is the typed result of a call statement.
	CallResult struct {
		Type Type
		Name string
	}
)

func NewBuilder() *Builder {
	return &Builder{}
}

// PositionAtEnd makes blk the target of subsequent appends.
func (b *Builder) PositionAtEnd(blk *Block) {
	if blk.cursor != nil && blk.cursor != b {
		panic("cir: block is targeted by another builder")
	}

	b.Release()

	blk.cursor = b
	b.blk = blk
}

// Release drops the current target.
func (b *Builder) Release() {
	if b.blk != nil && b.blk.cursor == b {
		b.blk.cursor = nil
	}

	b.blk = nil
}

func (b *Builder) Block() *Block { return b.blk }

// SetOrigin labels subsequent statements with where they were described,
// for generators driven by input files rather than Go code.
// Empty origin falls back to the Go call site.
func (b *Builder) SetOrigin(origin string) { b.origin = origin }

// Call appends a call of fn. Empty name discards the result.
// Argument count and types are not checked, see Verify.
func (b *Builder) Call(fn *Function, args []Value, name string) CallResult {
	blk := b.target()
	n := blk.notation()

	var l []byte

	if name != "" {
		l = AppendDecl(l, fn.Ret, name, n)
		l = append(l, " = "...)
	}

	l = append(l, fn.Name...)
	l = append(l, '(')
	l = appendValueList(l, args, n)
	l = append(l, ");"...)

	blk.add(Stmt{
		Text:   string(l),
		Kind:   StmtCall,
		Callee: fn,
		Args:   append([]Value{}, args...),
		Result: name,
		From:   loc.Caller(1),
		Origin: b.origin,
	})

	tlog.V("builder").Printw("call", "callee", fn.Name, "line", l, "from", loc.Caller(1))

	return CallResult{Type: fn.Ret, Name: name}
}

// Return appends "return v;" whatever the function return type is.
func (b *Builder) Return(v Value) {
	blk := b.target()

	l := []byte("return ")
	l = AppendValue(l, v, blk.notation())
	l = append(l, ';')

	blk.add(Stmt{
		Text:  string(l),
		Kind:   StmtReturn,
		Value:  v,
		From:   loc.Caller(1),
		Origin: b.origin,
	})

	tlog.V("builder").Printw("return", "line", l, "from", loc.Caller(1))
}

// ReturnVoid appends a bare "return;".
func (b *Builder) ReturnVoid() {
	blk := b.target()

	blk.add(Stmt{
		Text:   "return;",
		Kind:   StmtReturn,
		From:   loc.Caller(1),
		Origin: b.origin,
	})
}

func (b *Builder) target() *Block {
	switch {
	case b.blk == nil:
		panic("cir: builder is not positioned")
	case b.blk.detached:
		panic("cir: block was replaced by a new function body")
	}

	return b.blk
}

// Ref returns an operand referring to the named result.
func (r CallResult) Ref() VarRef {
	return VarRef{Name: r.Name, Type: r.Type}
}
