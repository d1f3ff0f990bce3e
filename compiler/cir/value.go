package cir

import (
	"strconv"

	"tlog.app/go/tlog/tlwire"
)

type (
	// Value is a literal structurally conforming to a Type.
	// StringLit and VarRef have no Type counterpart of their own.
	Value interface {
		String() string

		isValue()
	}

	IntLit struct {
		Bits int
		X    int64
	}

	FloatLit struct {
		Bits int
		X    float64
	}

	DoubleLit struct {
		X float64
	}

	VoidLit struct{}

	CharLit struct {
		X byte
	}

	BoolLit bool

	ArrayLit struct {
		Elems []Value
	}

	StructLit struct {
		Name   string
		Fields []Value
	}

	UnionLit struct {
		Name   string
		Fields []Value
	}

	EnumLit struct {
		Name string
		X    int64
	}

	FuncLit struct {
		Params []Value
		Ret    Value
	}

	PtrLit struct {
		Elem Value
	}

	// StringLit is rendered between double quotes verbatim.
	// Escape sequences are the caller's business.
	StringLit string

	// VarRef names a previously defined local, such as a named call result.
	VarRef struct {
		Name string
		Type Type
	}
)

func AddrOf(v Value) PtrLit { return PtrLit{Elem: v} }

func (IntLit) isValue()    {}
func (FloatLit) isValue()  {}
func (DoubleLit) isValue() {}
func (VoidLit) isValue()   {}
func (CharLit) isValue()   {}
func (BoolLit) isValue()   {}
func (ArrayLit) isValue()  {}
func (StructLit) isValue() {}
func (UnionLit) isValue()  {}
func (EnumLit) isValue()   {}
func (FuncLit) isValue()   {}
func (PtrLit) isValue()    {}
func (StringLit) isValue() {}
func (VarRef) isValue()    {}

func (v IntLit) String() string    { return string(AppendValue(nil, v, Canonical)) }
func (v FloatLit) String() string  { return string(AppendValue(nil, v, Canonical)) }
func (v DoubleLit) String() string { return string(AppendValue(nil, v, Canonical)) }
func (v VoidLit) String() string   { return string(AppendValue(nil, v, Canonical)) }
func (v CharLit) String() string   { return string(AppendValue(nil, v, Canonical)) }
func (v BoolLit) String() string   { return string(AppendValue(nil, v, Canonical)) }
func (v ArrayLit) String() string  { return string(AppendValue(nil, v, Canonical)) }
func (v StructLit) String() string { return string(AppendValue(nil, v, Canonical)) }
func (v UnionLit) String() string  { return string(AppendValue(nil, v, Canonical)) }
func (v EnumLit) String() string   { return string(AppendValue(nil, v, Canonical)) }
func (v FuncLit) String() string   { return string(AppendValue(nil, v, Canonical)) }
func (v PtrLit) String() string    { return string(AppendValue(nil, v, Canonical)) }
func (v StringLit) String() string { return string(AppendValue(nil, v, Canonical)) }
func (v VarRef) String() string    { return v.Name }

// AppendValue appends literal syntax of v in notation n.
func AppendValue(b []byte, v Value, n Notation) []byte {
	switch v := v.(type) {
	case IntLit:
		return strconv.AppendInt(b, v.X, 10)
	case FloatLit:
		b = appendFloat(b, v.X, n)
		if n == CSyntax && v.Bits == 32 {
			b = append(b, 'f')
		}

		return b
	case DoubleLit:
		return appendFloat(b, v.X, n)
	case VoidLit:
		if n == CSyntax {
			return append(b, "(void)0"...)
		}

		return append(b, "void"...)
	case CharLit:
		return appendChar(b, v.X)
	case BoolLit:
		return strconv.AppendBool(b, bool(v))
	case ArrayLit:
		open, cl := byte('['), byte(']')
		if n == CSyntax {
			open, cl = '{', '}'
		}

		b = append(b, open)
		b = appendValueList(b, v.Elems, n)
		return append(b, cl)
	case StructLit:
		return appendAggregate(b, "struct", v.Name, v.Fields, n)
	case UnionLit:
		return appendAggregate(b, "union", v.Name, v.Fields, n)
	case EnumLit:
		return strconv.AppendInt(b, v.X, 10)
	case FuncLit:
		b = append(b, '(')
		b = appendValueList(b, v.Params, n)
		b = append(b, ") -> "...)
		return AppendValue(b, v.Ret, n)
	case PtrLit:
		if n == CSyntax {
			return AppendValue(append(b, '&'), v.Elem, n)
		}

		return AppendValue(append(b, '*'), v.Elem, n)
	case StringLit:
		b = append(b, '"')
		b = append(b, v...)
		return append(b, '"')
	case VarRef:
		return append(b, v.Name...)
	case nil:
		return append(b, "<nil>"...)
	default:
		panic(v)
	}
}

func appendValueList(b []byte, vs []Value, n Notation) []byte {
	for i, v := range vs {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = AppendValue(b, v, n)
	}

	return b
}

func appendAggregate(b []byte, kw, name string, fields []Value, n Notation) []byte {
	if n == CSyntax {
		b = append(b, '(')
		b = append(b, kw...)
		b = append(b, ' ')
		b = append(b, name...)
		b = append(b, "){"...)

		if len(fields) == 0 {
			return append(b, "0}"...)
		}

		b = appendValueList(b, fields, n)
		return append(b, '}')
	}

	b = append(b, name...)
	b = append(b, " { "...)
	b = appendValueList(b, fields, n)
	return append(b, " }"...)
}

func appendFloat(b []byte, x float64, n Notation) []byte {
	st := len(b)
	b = strconv.AppendFloat(b, x, 'g', -1, 64)

	if n != CSyntax {
		return b
	}

	for _, c := range b[st:] {
		switch c {
		case '.', 'e', 'N', 'I': // fraction, exponent, NaN, Inf
			return b
		}
	}

	return append(b, ".0"...)
}

func appendChar(b []byte, c byte) []byte {
	b = append(b, '\'')

	switch c {
	case '\'', '\\':
		b = append(b, '\\', c)
	case '\n':
		b = append(b, `\n`...)
	case '\t':
		b = append(b, `\t`...)
	case '\r':
		b = append(b, `\r`...)
	case 0:
		b = append(b, `\0`...)
	default:
		if c < 0x20 || c >= 0x7f {
			const hex = "0123456789abcdef"
			b = append(b, '\\', 'x', hex[c>>4], hex[c&0xf])
		} else {
			b = append(b, c)
		}
	}

	return append(b, '\'')
}

// Conforms reports whether v structurally corresponds to t.
func Conforms(v Value, t Type) bool {
	switch v := v.(type) {
	case IntLit:
		t, ok := t.(Int)
		return ok && t.Bits == v.Bits
	case FloatLit:
		t, ok := t.(Float)
		return ok && t.Bits == v.Bits
	case DoubleLit:
		_, ok := t.(Double)
		return ok
	case VoidLit:
		_, ok := t.(Void)
		return ok
	case CharLit:
		_, ok := t.(Char)
		return ok
	case BoolLit:
		_, ok := t.(Bool)
		return ok
	case ArrayLit:
		t, ok := t.(Array)
		if !ok || t.Len != len(v.Elems) {
			return false
		}

		for _, el := range v.Elems {
			if !Conforms(el, t.Elem) {
				return false
			}
		}

		return true
	case StructLit:
		t, ok := t.(Struct)
		return ok && t.Name == v.Name
	case UnionLit:
		t, ok := t.(Union)
		return ok && t.Name == v.Name
	case EnumLit:
		t, ok := t.(Enum)
		return ok && t.Name == v.Name
	case FuncLit:
		t, ok := t.(FuncType)
		if !ok || len(t.Params) != len(v.Params) || !Conforms(v.Ret, t.Ret) {
			return false
		}

		for i, p := range v.Params {
			if !Conforms(p, t.Params[i]) {
				return false
			}
		}

		return true
	case PtrLit:
		t, ok := t.(Ptr)
		return ok && Conforms(v.Elem, t.Elem)
	case StringLit:
		switch t := t.(type) {
		case Ptr:
			return isCharLike(t.Elem)
		case Array:
			return isCharLike(t.Elem) && t.Len > len(v)
		}

		return false
	case VarRef:
		return Equal(v.Type, t)
	default:
		return false
	}
}

func isCharLike(t Type) bool {
	switch t := t.(type) {
	case Char:
		return true
	case Int:
		return t.Bits == 8
	}

	return false
}

func (v IntLit) TlogAppend(b []byte) []byte    { return appendValueWire(b, v) }
func (v FloatLit) TlogAppend(b []byte) []byte  { return appendValueWire(b, v) }
func (v DoubleLit) TlogAppend(b []byte) []byte { return appendValueWire(b, v) }
func (v VoidLit) TlogAppend(b []byte) []byte   { return appendValueWire(b, v) }
func (v CharLit) TlogAppend(b []byte) []byte   { return appendValueWire(b, v) }
func (v BoolLit) TlogAppend(b []byte) []byte   { return appendValueWire(b, v) }
func (v ArrayLit) TlogAppend(b []byte) []byte  { return appendValueWire(b, v) }
func (v StructLit) TlogAppend(b []byte) []byte { return appendValueWire(b, v) }
func (v UnionLit) TlogAppend(b []byte) []byte  { return appendValueWire(b, v) }
func (v EnumLit) TlogAppend(b []byte) []byte   { return appendValueWire(b, v) }
func (v FuncLit) TlogAppend(b []byte) []byte   { return appendValueWire(b, v) }
func (v PtrLit) TlogAppend(b []byte) []byte    { return appendValueWire(b, v) }
func (v StringLit) TlogAppend(b []byte) []byte { return appendValueWire(b, v) }
func (v VarRef) TlogAppend(b []byte) []byte    { return appendValueWire(b, v) }

func appendValueWire(b []byte, v Value) []byte {
	var e tlwire.Encoder

	return e.AppendString(b, v.String())
}
