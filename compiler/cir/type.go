package cir

import (
	"strconv"

	"tlog.app/go/errors"
	"tlog.app/go/tlog/tlwire"
)

type (
	// Type is a structural description of a C-level type.
	// The set of implementations is closed.
	Type interface {
		String() string

		isType()
	}

	Int struct {
		Bits int
	}

	Float struct {
		Bits int
	}

	Double struct{}
	Void   struct{}
	Char   struct{}
	Bool   struct{}

	Array struct {
		Elem Type
		Len  int
	}

	Struct struct {
		Name string
	}

	Union struct {
		Name string
	}

	Enum struct {
		Name string
	}

	FuncType struct {
		Params []Type
		Ret    Type
	}

	Ptr struct {
		Elem Type
	}
)

var (
	I8  = Int{Bits: 8}
	I16 = Int{Bits: 16}
	I32 = Int{Bits: 32}
	I64 = Int{Bits: 64}
	F32 = Float{Bits: 32}
)

func PtrTo(t Type) Ptr { return Ptr{Elem: t} }

func (Int) isType()      {}
func (Float) isType()    {}
func (Double) isType()   {}
func (Void) isType()     {}
func (Char) isType()     {}
func (Bool) isType()     {}
func (Array) isType()    {}
func (Struct) isType()   {}
func (Union) isType()    {}
func (Enum) isType()     {}
func (FuncType) isType() {}
func (Ptr) isType()      {}

func (t Int) String() string      { return string(AppendType(nil, t)) }
func (t Float) String() string    { return string(AppendType(nil, t)) }
func (t Double) String() string   { return string(AppendType(nil, t)) }
func (t Void) String() string     { return string(AppendType(nil, t)) }
func (t Char) String() string     { return string(AppendType(nil, t)) }
func (t Bool) String() string     { return string(AppendType(nil, t)) }
func (t Array) String() string    { return string(AppendType(nil, t)) }
func (t Struct) String() string   { return string(AppendType(nil, t)) }
func (t Union) String() string    { return string(AppendType(nil, t)) }
func (t Enum) String() string     { return string(AppendType(nil, t)) }
func (t FuncType) String() string { return string(AppendType(nil, t)) }
func (t Ptr) String() string      { return string(AppendType(nil, t)) }

// AppendType appends canonical type syntax.
func AppendType(b []byte, t Type) []byte {
	switch t := t.(type) {
	case Int:
		switch t.Bits {
		case 32:
			return append(b, "int"...)
		default:
			b = append(b, 'i')
			return strconv.AppendInt(b, int64(t.Bits), 10)
		}
	case Float:
		switch t.Bits {
		case 16:
			return append(b, "half"...)
		case 32:
			return append(b, "float"...)
		case 64:
			return append(b, "double"...)
		default:
			b = append(b, 'f')
			return strconv.AppendInt(b, int64(t.Bits), 10)
		}
	case Double:
		return append(b, "double"...)
	case Void:
		return append(b, "void"...)
	case Char:
		return append(b, "char"...)
	case Bool:
		return append(b, "bool"...)
	case Array:
		b = append(b, '[')
		b = strconv.AppendInt(b, int64(t.Len), 10)
		b = append(b, " x "...)
		b = AppendType(b, t.Elem)
		return append(b, ']')
	case Struct:
		return append(append(b, '%'), t.Name...)
	case Union:
		return append(append(b, '%'), t.Name...)
	case Enum:
		return append(append(b, '%'), t.Name...)
	case FuncType:
		b = append(b, '(')
		b = appendTypeList(b, t.Params)
		b = append(b, ") -> "...)
		return AppendType(b, t.Ret)
	case Ptr:
		return AppendType(append(b, '*'), t.Elem)
	case nil:
		return append(b, "<nil>"...)
	default:
		panic(t)
	}
}

func appendTypeList(b []byte, ts []Type) []byte {
	for i, t := range ts {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = AppendType(b, t)
	}

	return b
}

// Equal reports whether a and b describe the same type.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case Array:
		b, ok := b.(Array)
		return ok && a.Len == b.Len && Equal(a.Elem, b.Elem)
	case Ptr:
		b, ok := b.(Ptr)
		return ok && Equal(a.Elem, b.Elem)
	case FuncType:
		b, ok := b.(FuncType)
		if !ok || len(a.Params) != len(b.Params) || !Equal(a.Ret, b.Ret) {
			return false
		}

		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}

		return true
	default:
		return a == b
	}
}

// Derive converts raw integer x into a value shaped like t.
func Derive(t Type, x int64) (_ Value, err error) {
	switch t := t.(type) {
	case Int:
		return IntLit{Bits: t.Bits, X: narrow(x, t.Bits)}, nil
	case Float:
		f := float64(x)
		if t.Bits == 32 {
			f = float64(float32(x))
		}

		return FloatLit{Bits: t.Bits, X: f}, nil
	case Double:
		return DoubleLit{X: float64(x)}, nil
	case Void:
		return VoidLit{}, nil
	case Char:
		return CharLit{X: byte(x)}, nil
	case Bool:
		return BoolLit(x != 0), nil
	case Array:
		if t.Len < 0 {
			return nil, errors.New("negative array length %d", t.Len)
		}

		el, err := Derive(t.Elem, x)
		if err != nil {
			return nil, errors.Wrap(err, "array element")
		}

		elems := make([]Value, t.Len)
		for i := range elems {
			elems[i] = el
		}

		return ArrayLit{Elems: elems}, nil
	case Struct:
		return StructLit{Name: t.Name}, nil
	case Union:
		return UnionLit{Name: t.Name}, nil
	case Enum:
		return EnumLit{Name: t.Name, X: x}, nil
	case FuncType:
		return nil, errors.New("derive value of function type %v", t)
	case Ptr:
		el, err := Derive(t.Elem, x)
		if err != nil {
			return nil, errors.Wrap(err, "pointer element")
		}

		return PtrLit{Elem: el}, nil
	case nil:
		return nil, errors.New("derive value of nil type")
	default:
		panic(t)
	}
}

func narrow(x int64, bits int) int64 {
	switch bits {
	case 8:
		return int64(int8(x))
	case 16:
		return int64(int16(x))
	case 32:
		return int64(int32(x))
	}

	if bits <= 0 || bits >= 64 {
		return x
	}

	sh := 64 - uint(bits)

	return x << sh >> sh
}

func (t Int) TlogAppend(b []byte) []byte      { return appendTypeWire(b, t) }
func (t Float) TlogAppend(b []byte) []byte    { return appendTypeWire(b, t) }
func (t Double) TlogAppend(b []byte) []byte   { return appendTypeWire(b, t) }
func (t Void) TlogAppend(b []byte) []byte     { return appendTypeWire(b, t) }
func (t Char) TlogAppend(b []byte) []byte     { return appendTypeWire(b, t) }
func (t Bool) TlogAppend(b []byte) []byte     { return appendTypeWire(b, t) }
func (t Array) TlogAppend(b []byte) []byte    { return appendTypeWire(b, t) }
func (t Struct) TlogAppend(b []byte) []byte   { return appendTypeWire(b, t) }
func (t Union) TlogAppend(b []byte) []byte    { return appendTypeWire(b, t) }
func (t Enum) TlogAppend(b []byte) []byte     { return appendTypeWire(b, t) }
func (t FuncType) TlogAppend(b []byte) []byte { return appendTypeWire(b, t) }
func (t Ptr) TlogAppend(b []byte) []byte      { return appendTypeWire(b, t) }

func appendTypeWire(b []byte, t Type) []byte {
	var e tlwire.Encoder

	return e.AppendString(b, t.String())
}
