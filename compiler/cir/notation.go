package cir

import (
	"strconv"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
)

// Notation selects how types and values are spelled in emitted text.
type Notation int

const (
	// Canonical is the compact LLVM-like notation: *int, [3 x int], %name.
	Canonical Notation = iota

	// CSyntax follows the C declarator grammar: int *, int a[3], struct name.
	CSyntax
)

func ParseNotation(s string) (Notation, error) {
	switch s {
	case "", "canonical":
		return Canonical, nil
	case "c":
		return CSyntax, nil
	default:
		return 0, errors.New("unknown notation: %q", s)
	}
}

func (n Notation) String() string {
	switch n {
	case Canonical:
		return "canonical"
	case CSyntax:
		return "c"
	default:
		return "notation(" + strconv.Itoa(int(n)) + ")"
	}
}

// AppendDecl appends a declaration of name with type t.
// An empty name makes an abstract declarator, as used in parameter lists.
func AppendDecl(b []byte, t Type, name string, n Notation) []byte {
	if n != CSyntax {
		b = AppendType(b, t)
		if name == "" {
			return b
		}

		b = append(b, ' ')
		return append(b, name...)
	}

	return append(b, declarator(t, name)...)
}

func declarator(t Type, inner string) string {
	switch t := t.(type) {
	case Ptr:
		inner = "*" + inner

		switch t.Elem.(type) {
		case Array, FuncType:
			inner = "(" + inner + ")"
		}

		return declarator(t.Elem, inner)
	case Array:
		return declarator(t.Elem, inner+"["+strconv.Itoa(t.Len)+"]")
	case FuncType:
		var ps []byte

		if len(t.Params) == 0 {
			ps = append(ps, "void"...)
		}

		for i, p := range t.Params {
			if i != 0 {
				ps = append(ps, ", "...)
			}

			ps = append(ps, declarator(p, "")...)
		}

		return declarator(t.Ret, inner+"("+string(ps)+")")
	}

	base := cBase(t)
	if inner == "" {
		return base
	}

	return base + " " + inner
}

func cBase(t Type) string {
	switch t := t.(type) {
	case Int:
		switch t.Bits {
		case 32:
			return "int"
		case 8, 16, 64:
			return string(hfmt.Appendf(nil, "int%d_t", t.Bits))
		default:
			return string(hfmt.Appendf(nil, "_BitInt(%d)", t.Bits))
		}
	case Float:
		switch t.Bits {
		case 32:
			return "float"
		case 64:
			return "double"
		default:
			return string(hfmt.Appendf(nil, "_Float%d", t.Bits))
		}
	case Double:
		return "double"
	case Void:
		return "void"
	case Char:
		return "char"
	case Bool:
		return "bool"
	case Struct:
		return "struct " + t.Name
	case Union:
		return "union " + t.Name
	case Enum:
		return "enum " + t.Name
	case nil:
		return "<nil>"
	default:
		panic(t)
	}
}
