package cir

import (
	"context"
	"io"
	"strings"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

type (
	// Unit is a compilation unit: includes and functions rendered
	// into a header and a source file.
	Unit struct {
		Name string

		// Notation is used for signatures and for statements built
		// after it is set. Set it before building bodies.
		Notation Notation

		funcs []*Function

		sysIncludes []string
		locIncludes []string
	}
)

func NewUnit(name string) *Unit {
	return &Unit{Name: name}
}

// Include adds #include <path>, or #include "path" if local.
func (u *Unit) Include(path string, local bool) {
	if local {
		u.locIncludes = append(u.locIncludes, path)
		return
	}

	u.sysIncludes = append(u.sysIncludes, path)
}

func (u *Unit) Includes() (system, local []string) {
	return append([]string{}, u.sysIncludes...), append([]string{}, u.locIncludes...)
}

// AddFunction registers a new function and returns it for further mutation.
// Functions are emitted in the order they were added.
func (u *Unit) AddFunction(name string, ret Type, params []Type, variadic, static bool) *Function {
	f := NewFunction(name, ret, params, variadic, static)
	f.unit = u

	u.funcs = append(u.funcs, f)

	return f
}

func (u *Unit) Functions() []*Function {
	return append([]*Function{}, u.funcs...)
}

// Lookup returns the first function named name.
func (u *Unit) Lookup(name string) *Function {
	for _, f := range u.funcs {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// Public reports whether f is declared in the header.
// Static functions and main are not.
func Public(f *Function) bool {
	return !f.Static && f.Name != "main"
}

// Guard returns the include guard macro name.
func (u *Unit) Guard() string {
	g := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, u.Name)

	return g + "_H"
}

func (u *Unit) AppendHeader(b []byte) []byte {
	g := u.Guard()

	b = hfmt.Appendf(b, "#ifndef %s\n#define %s\n\n", g, g)

	b = u.appendIncludes(b)

	for _, f := range u.funcs {
		if !Public(f) {
			continue
		}

		b = f.AppendDecl(b)
	}

	return append(b, "\n#endif\n"...)
}

func (u *Unit) AppendSource(b []byte) []byte {
	b = u.appendIncludes(b)

	for i, f := range u.funcs {
		if i != 0 {
			b = append(b, '\n')
		}

		b = f.AppendDef(b)
	}

	return b
}

func (u *Unit) appendIncludes(b []byte) []byte {
	for _, p := range u.sysIncludes {
		b = hfmt.Appendf(b, "#include <%s>\n", p)
	}

	for _, p := range u.locIncludes {
		b = hfmt.Appendf(b, "#include \"%s\"\n", p)
	}

	if len(u.sysIncludes)+len(u.locIncludes) != 0 {
		b = append(b, '\n')
	}

	return b
}

// EmitHeader writes the header to w.
func (u *Unit) EmitHeader(ctx context.Context, w io.Writer) (err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "cir: emit header", "unit", u.Name)
	defer tr.Finish("err", &err)

	b := u.AppendHeader(nil)

	_, err = w.Write(b)
	if err != nil {
		return errors.Wrap(err, "write header")
	}

	tr.Printw("header written", "size", len(b), "decls", u.publicCount())

	return nil
}

// EmitSource writes the source to w.
func (u *Unit) EmitSource(ctx context.Context, w io.Writer) (err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "cir: emit source", "unit", u.Name)
	defer tr.Finish("err", &err)

	if tr.If("dump_unit") {
		for _, f := range u.funcs {
			tr.Printw("func", "name", f.Name, "sig", f.String(), "static", f.Static, "body", f.body != nil)
		}
	}

	b := u.AppendSource(nil)

	_, err = w.Write(b)
	if err != nil {
		return errors.Wrap(err, "write source")
	}

	tr.Printw("source written", "size", len(b), "funcs", len(u.funcs))

	return nil
}

func (u *Unit) publicCount() (n int) {
	for _, f := range u.funcs {
		if Public(f) {
			n++
		}
	}

	return n
}
