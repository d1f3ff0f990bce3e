// Package llvm lowers the declarations of a unit into an LLVM IR module.
//
// Function bodies hold rendered C statements and are not lowered:
// every function becomes an LLVM declaration. Static functions are skipped
// since a declaration can't have internal linkage. Named structs and unions
// become opaque type definitions, enums become i32.
package llvm

import (
	"context"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/cgen/compiler/cir"
)

type (
	lowering struct {
		m     *ir.Module
		named map[string]types.Type
	}
)

func Lower(ctx context.Context, u *cir.Unit) (m *ir.Module, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "llvm: lower unit", "unit", u.Name)
	defer tr.Finish("err", &err)

	l := &lowering{
		m:     ir.NewModule(),
		named: map[string]types.Type{},
	}

	l.m.SourceFilename = u.Name + ".c"

	for _, f := range u.Functions() {
		if f.Static {
			continue
		}

		err = l.function(f)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", f.Name)
		}
	}

	tr.Printw("lowered", "funcs", len(l.m.Funcs), "types", len(l.m.TypeDefs))

	return l.m, nil
}

func (l *lowering) function(f *cir.Function) error {
	ret, err := l.typ(f.Ret)
	if err != nil {
		return errors.Wrap(err, "return type")
	}

	params := make([]*ir.Param, len(f.Params))

	for i, p := range f.Params {
		t, err := l.typ(p)
		if err != nil {
			return errors.Wrap(err, "param %d", i)
		}

		if _, ok := t.(*types.FuncType); ok {
			t = types.NewPointer(t)
		}

		params[i] = ir.NewParam("", t)
	}

	fn := l.m.NewFunc(f.Name, ret, params...)
	fn.Sig.Variadic = f.Variadic

	return nil
}

func (l *lowering) typ(t cir.Type) (types.Type, error) {
	switch t := t.(type) {
	case cir.Int:
		if t.Bits <= 0 {
			return nil, errors.New("bad int width: %d", t.Bits)
		}

		return types.NewInt(uint64(t.Bits)), nil
	case cir.Float:
		switch t.Bits {
		case 16:
			return types.Half, nil
		case 32:
			return types.Float, nil
		case 64:
			return types.Double, nil
		case 80:
			return types.X86_FP80, nil
		case 128:
			return types.FP128, nil
		default:
			return nil, errors.New("unsupported float width: %d", t.Bits)
		}
	case cir.Double:
		return types.Double, nil
	case cir.Void:
		return types.Void, nil
	case cir.Char:
		return types.I8, nil
	case cir.Bool:
		return types.I1, nil
	case cir.Enum:
		return types.I32, nil
	case cir.Struct:
		return l.opaque("struct." + t.Name), nil
	case cir.Union:
		return l.opaque("union." + t.Name), nil
	case cir.Array:
		if t.Len < 0 {
			return nil, errors.New("negative array length %d", t.Len)
		}

		el, err := l.typ(t.Elem)
		if err != nil {
			return nil, errors.Wrap(err, "array element")
		}

		return types.NewArray(uint64(t.Len), el), nil
	case cir.Ptr:
		el, err := l.typ(t.Elem)
		if err != nil {
			return nil, errors.Wrap(err, "pointer element")
		}

		if types.Equal(el, types.Void) {
			el = types.I8
		}

		return types.NewPointer(el), nil
	case cir.FuncType:
		ret, err := l.typ(t.Ret)
		if err != nil {
			return nil, errors.Wrap(err, "return type")
		}

		ps := make([]types.Type, len(t.Params))

		for i, p := range t.Params {
			ps[i], err = l.typ(p)
			if err != nil {
				return nil, errors.Wrap(err, "param %d", i)
			}
		}

		return types.NewFunc(ret, ps...), nil
	default:
		return nil, errors.New("unsupported type: %v", t)
	}
}

func (l *lowering) opaque(name string) types.Type {
	if t, ok := l.named[name]; ok {
		return t
	}

	t := l.m.NewTypeDef(name, &types.StructType{Opaque: true})
	l.named[name] = t

	return t
}
