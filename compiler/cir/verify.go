package cir

import (
	"path"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/loc"
	"tlog.app/go/tlog/tlwire"
)

type (
	// Diagnostic describes a structural problem found by Verify.
	Diagnostic struct {
		Func string
		Stmt int // -1 if not about a statement
		Kind DiagKind
		Msg  string

		From   loc.PC
		Origin string // statement origin set by Builder.SetOrigin
	}

	DiagKind int
)

const (
	DiagName DiagKind = iota
	DiagReattach
	DiagArity
	DiagArgType
	DiagResult
	DiagReturn
	DiagReturnType
	DiagMissingReturn
)

// Verify inspects a finished unit and reports everything the renderer
// accepted silently. The unit is not modified.
func Verify(u *Unit) (ds []Diagnostic) {
	seen := map[string]struct{}{}

	for _, f := range u.funcs {
		if f.Name == "" {
			ds = append(ds, fdiag(f, DiagName, "function has no name"))
		} else if _, ok := seen[f.Name]; ok {
			ds = append(ds, fdiag(f, DiagName, "function %s is defined more than once", f.Name))
		}

		seen[f.Name] = struct{}{}

		ds = verifyFunc(ds, f)
	}

	return ds
}

func verifyFunc(ds []Diagnostic, f *Function) []Diagnostic {
	if f.attached > 1 {
		ds = append(ds, fdiag(f, DiagReattach, "body attached %d times, previous bodies were discarded", f.attached))
	}

	if f.body == nil {
		return ds
	}

	_, void := f.Ret.(Void)

	locals := map[string]Type{}

	for i, s := range f.body.stmts {
		switch s.Kind {
		case StmtCall:
			ds = verifyCall(ds, f, i, s, locals)

			if s.Result == "" {
				break
			}

			if _, ok := locals[s.Result]; ok {
				ds = append(ds, sdiag(f, i, s, DiagResult, "result %s is already defined", s.Result))
			}

			locals[s.Result] = s.Callee.Ret
		case StmtReturn:
			switch {
			case s.Value == nil && !void:
				ds = append(ds, sdiag(f, i, s, DiagReturn, "bare return in function returning %v", f.Ret))
			case s.Value != nil && void:
				ds = append(ds, sdiag(f, i, s, DiagReturn, "return with a value in void function"))
			case s.Value != nil:
				ds = verifyOperand(ds, f, i, s, s.Value, f.Ret, locals, DiagReturnType, "return value")
			}
		}
	}

	if !void && f.Name != "main" {
		st := f.body.stmts
		if len(st) == 0 || st[len(st)-1].Kind != StmtReturn {
			ds = append(ds, fdiag(f, DiagMissingReturn, "body of function returning %v does not end with return", f.Ret))
		}
	}

	return ds
}

func verifyCall(ds []Diagnostic, f *Function, i int, s Stmt, locals map[string]Type) []Diagnostic {
	c := s.Callee

	if _, ok := c.Ret.(Void); ok && s.Result != "" {
		ds = append(ds, sdiag(f, i, s, DiagResult, "result %s of void function %s", s.Result, c.Name))
	}

	if c.Params == nil {
		for _, a := range s.Args {
			ds = verifyRef(ds, f, i, s, a, locals)
		}

		return ds
	}

	switch {
	case !c.Variadic && len(s.Args) != len(c.Params):
		ds = append(ds, sdiag(f, i, s, DiagArity, "call %s: want %d args, got %d", c.Name, len(c.Params), len(s.Args)))
	case c.Variadic && len(s.Args) < len(c.Params):
		ds = append(ds, sdiag(f, i, s, DiagArity, "call %s: want at least %d args, got %d", c.Name, len(c.Params), len(s.Args)))
	}

	for j, a := range s.Args {
		if j >= len(c.Params) {
			ds = verifyRef(ds, f, i, s, a, locals)
			continue
		}

		what := string(hfmt.Appendf(nil, "call %s: arg %d", c.Name, j))

		ds = verifyOperand(ds, f, i, s, a, c.Params[j], locals, DiagArgType, what)
	}

	return ds
}

func verifyOperand(ds []Diagnostic, f *Function, i int, s Stmt, v Value, t Type, locals map[string]Type, kind DiagKind, what string) []Diagnostic {
	if r, ok := v.(VarRef); ok {
		n := len(ds)

		ds = verifyRef(ds, f, i, s, r, locals)
		if len(ds) != n {
			return ds
		}
	}

	if !Conforms(v, t) {
		ds = append(ds, sdiag(f, i, s, kind, "%s: %v does not conform to %v", what, v, t))
	}

	return ds
}

func verifyRef(ds []Diagnostic, f *Function, i int, s Stmt, v Value, locals map[string]Type) []Diagnostic {
	r, ok := v.(VarRef)
	if !ok {
		return ds
	}

	if r.Name == "" {
		return append(ds, sdiag(f, i, s, DiagResult, "reference to a discarded call result"))
	}

	if _, ok := locals[r.Name]; !ok {
		return append(ds, sdiag(f, i, s, DiagResult, "reference to undefined result %s", r.Name))
	}

	return ds
}

func fdiag(f *Function, k DiagKind, format string, args ...any) Diagnostic {
	return Diagnostic{
		Func: f.Name,
		Stmt: -1,
		Kind: k,
		Msg:  string(hfmt.Appendf(nil, format, args...)),
	}
}

func sdiag(f *Function, i int, s Stmt, k DiagKind, format string, args ...any) Diagnostic {
	return Diagnostic{
		Func: f.Name,
		Stmt: i,
		Kind: k,
		Msg:  string(hfmt.Appendf(nil, format, args...)),
		From: s.From,

		Origin: s.Origin,
	}
}

func (d Diagnostic) String() string {
	b := append([]byte{}, d.Func...)

	if d.Stmt >= 0 {
		b = hfmt.Appendf(b, ":%d", d.Stmt)
	}

	b = hfmt.Appendf(b, ": %s", d.Msg)

	if d.Origin != "" {
		return string(hfmt.Appendf(b, " (%s)", d.Origin))
	}

	if d.From != 0 {
		_, file, line := d.From.NameFileLine()
		b = hfmt.Appendf(b, " (%s:%d)", path.Base(file), line)
	}

	return string(b)
}

func (k DiagKind) String() string {
	switch k {
	case DiagName:
		return "name"
	case DiagReattach:
		return "reattach"
	case DiagArity:
		return "arity"
	case DiagArgType:
		return "arg_type"
	case DiagResult:
		return "result"
	case DiagReturn:
		return "return"
	case DiagReturnType:
		return "return_type"
	case DiagMissingReturn:
		return "missing_return"
	default:
		return "diag"
	}
}

func (d Diagnostic) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 4)

	b = e.AppendKeyString(b, "func", d.Func)
	b = e.AppendKeyInt(b, "stmt", d.Stmt)
	b = e.AppendKeyString(b, "kind", d.Kind.String())
	b = e.AppendKeyString(b, "msg", d.Msg)

	return b
}
