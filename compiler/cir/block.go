package cir

import (
	"tlog.app/go/loc"
	"tlog.app/go/tlog/tlwire"
)

type (
	// Block is a straight-line function body: an append-only list of
	// rendered statements.
	Block struct {
		fn    *Function
		stmts []Stmt

		cursor   *Builder
		detached bool
	}

	Stmt struct {
		Text string
		Kind StmtKind

		Callee *Function
		Args   []Value
		Result string

		Value Value // returned, nil for bare return

		From   loc.PC
		Origin string
	}

	StmtKind int
)

const (
	StmtCall StmtKind = iota
	StmtReturn
)

func (b *Block) Func() *Function { return b.fn }

func (b *Block) Len() int { return len(b.stmts) }

func (b *Block) Lines() []string {
	l := make([]string, len(b.stmts))

	for i, s := range b.stmts {
		l[i] = s.Text
	}

	return l
}

func (b *Block) Stmts() []Stmt {
	return append([]Stmt{}, b.stmts...)
}

// Detached reports whether the block was replaced by another AddBlock call.
func (b *Block) Detached() bool { return b.detached }

func (b *Block) notation() Notation {
	if b.fn == nil || b.fn.unit == nil {
		return Canonical
	}

	return b.fn.unit.Notation
}

func (b *Block) add(s Stmt) {
	b.stmts = append(b.stmts, s)
}

func (b *Block) appendTo(buf []byte) []byte {
	buf = append(buf, "{\n"...)

	for _, s := range b.stmts {
		buf = append(buf, '\t')
		buf = append(buf, s.Text...)
		buf = append(buf, '\n')
	}

	return append(buf, "}\n"...)
}

func (k StmtKind) String() string {
	switch k {
	case StmtCall:
		return "call"
	case StmtReturn:
		return "return"
	default:
		return "stmt"
	}
}

func (s Stmt) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	n := 3
	if s.Origin != "" {
		n++
	}

	b = e.AppendMap(b, n)

	b = e.AppendKeyString(b, "kind", s.Kind.String())
	b = e.AppendKeyString(b, "text", s.Text)
	b = e.AppendKeyString(b, "from", s.From.String())

	if s.Origin != "" {
		b = e.AppendKeyString(b, "origin", s.Origin)
	}

	return b
}
