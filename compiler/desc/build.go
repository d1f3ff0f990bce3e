package desc

import (
	"context"
	"path/filepath"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/cgen/compiler/cir"
)

type (
	builder struct {
		u       *cir.Unit
		externs map[string]*cir.Function

		path string
	}
)

// Build constructs the unit described by f.
// All functions are registered before any body is built,
// so bodies may call functions defined later in the file.
func Build(ctx context.Context, f *File) (u *cir.Unit, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "desc: build unit", "name", f.Name)
	defer tr.Finish("err", &err)

	n, err := cir.ParseNotation(f.Notation)
	if err != nil {
		return nil, errors.Wrap(err, "notation")
	}

	b := &builder{
		u:       cir.NewUnit(f.Name),
		externs: map[string]*cir.Function{},
		path:    f.Path,
	}

	b.u.Notation = n

	for _, p := range f.Includes {
		b.u.Include(p, false)
	}

	for _, p := range f.LocalIncludes {
		b.u.Include(p, true)
	}

	for _, d := range f.Externs {
		fn, err := signature(d)
		if err != nil {
			return nil, errors.Wrap(err, "extern %v", d.Name)
		}

		b.externs[d.Name] = fn
	}

	funcs := make([]*cir.Function, len(f.Funcs))

	for i, d := range f.Funcs {
		fn, err := signature(d)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", d.Name)
		}

		funcs[i] = b.u.AddFunction(fn.Name, fn.Ret, fn.Params, fn.Variadic, fn.Static)
	}

	for i, d := range f.Funcs {
		if d.Body == nil {
			continue
		}

		err = b.body(ctx, funcs[i], d.Body)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", d.Name)
		}
	}

	tr.Printw("unit built", "funcs", len(funcs), "externs", len(b.externs))

	return b.u, nil
}

func signature(d *Func) (f *cir.Function, err error) {
	if d.Name == "" {
		return nil, errors.New("missing name")
	}

	ret, err := cir.ParseType(d.Ret)
	if err != nil {
		return nil, errors.Wrap(err, "return type")
	}

	var params []cir.Type

	for i, p := range d.Params {
		t, err := cir.ParseType(p)
		if err != nil {
			return nil, errors.Wrap(err, "param %d", i)
		}

		params = append(params, t)
	}

	return cir.NewFunction(d.Name, ret, params, d.Variadic, d.Static), nil
}

func (b *builder) body(ctx context.Context, fn *cir.Function, body []*Stmt) (err error) {
	bl := cir.NewBuilder()
	defer bl.Release()

	bl.PositionAtEnd(fn.AddBlock())

	results := map[string]cir.CallResult{}

	for i, s := range body {
		bl.SetOrigin(b.origin(fn.Name, i))

		switch {
		case s.Call != "":
			callee := b.callee(s.Call)
			if callee == nil {
				return errors.New("stmt %d: undefined function %q", i, s.Call)
			}

			args := make([]cir.Value, len(s.Args))

			for j := range s.Args {
				args[j], err = value(&s.Args[j], results)
				if err != nil {
					return errors.Wrap(err, "stmt %d: arg %d", i, j)
				}
			}

			r := bl.Call(callee, args, s.Result)

			if s.Result != "" {
				results[s.Result] = r
			}
		case s.Return != nil:
			v, err := value(s.Return, results)
			if err != nil {
				return errors.Wrap(err, "stmt %d: return", i)
			}

			bl.Return(v)
		case s.ReturnVoid:
			bl.ReturnVoid()
		default:
			return errors.New("stmt %d: neither call nor return", i)
		}
	}

	if tr := tlog.SpanFromContext(ctx); tr.If("dump_body") {
		tr.Printw("body built", "func", fn.Name, "lines", fn.Body().Lines())
	}

	return nil
}

// origin names a body statement in the description file.
func (b *builder) origin(fn string, i int) string {
	o := hfmt.Appendf(nil, "func %s body %d", fn, i)

	if b.path != "" {
		o = hfmt.Appendf(nil, "%s: %s", filepath.Base(b.path), o)
	}

	return string(o)
}

// callee resolves unit functions first, then externs.
func (b *builder) callee(name string) *cir.Function {
	if f := b.u.Lookup(name); f != nil {
		return f
	}

	return b.externs[name]
}

func value(d *Value, results map[string]cir.CallResult) (v cir.Value, err error) {
	switch {
	case d.String != nil:
		v = cir.StringLit(*d.String)
	case d.Ref != "":
		r, ok := results[d.Ref]
		if !ok {
			return nil, errors.New("undefined result %q", d.Ref)
		}

		v = r.Ref()
	case d.Type != "":
		t, err := cir.ParseType(d.Type)
		if err != nil {
			return nil, errors.Wrap(err, "type")
		}

		v, err = cir.Derive(t, d.Int)
		if err != nil {
			return nil, errors.Wrap(err, "derive")
		}
	default:
		return nil, errors.New("empty value")
	}

	if d.Addr {
		v = cir.AddrOf(v)
	}

	return v, nil
}
