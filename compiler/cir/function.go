package cir

type (
	// Function is a named signature optionally paired with one body.
	//
	// Params == nil means the parameter list is absent and is
	// rendered as (void) whatever Variadic is. A non-nil empty list
	// renders as (), or (...) if Variadic.
	Function struct {
		Name     string
		Ret      Type
		Params   []Type
		Variadic bool
		Static   bool

		unit     *Unit
		body     *Block
		attached int
	}
)

// NewFunction makes a signature not owned by any unit,
// such as an external function to be called.
func NewFunction(name string, ret Type, params []Type, variadic, static bool) *Function {
	return &Function{
		Name:     name,
		Ret:      ret,
		Params:   params,
		Variadic: variadic,
		Static:   static,
	}
}

// AddBlock attaches a new empty body, replacing the previous one.
// The replaced block is detached and can't be appended to anymore.
func (f *Function) AddBlock() *Block {
	if f.body != nil {
		f.body.detached = true
		f.body.cursor = nil
	}

	f.body = &Block{fn: f}
	f.attached++

	return f.body
}

func (f *Function) Body() *Block { return f.body }

// Type returns the function type of f.
func (f *Function) Type() FuncType {
	return FuncType{Params: f.Params, Ret: f.Ret}
}

func (f *Function) notation() Notation {
	if f.unit == nil {
		return Canonical
	}

	return f.unit.Notation
}

// AppendSignature appends "ret name(params)".
func (f *Function) AppendSignature(b []byte, n Notation) []byte {
	var ps []byte

	switch {
	case f.Params == nil:
		ps = append(ps, "void"...)
	default:
		for i, p := range f.Params {
			if i != 0 {
				ps = append(ps, ", "...)
			}

			ps = AppendDecl(ps, p, "", n)
		}

		if f.Variadic {
			if len(f.Params) != 0 {
				ps = append(ps, ", "...)
			}

			ps = append(ps, "..."...)
		}
	}

	if n == CSyntax {
		return append(b, declarator(f.Ret, f.Name+"("+string(ps)+")")...)
	}

	b = AppendType(b, f.Ret)
	b = append(b, ' ')
	b = append(b, f.Name...)
	b = append(b, '(')
	b = append(b, ps...)
	return append(b, ')')
}

// AppendDecl appends the header-visible declaration.
func (f *Function) AppendDecl(b []byte) []byte {
	b = f.AppendSignature(b, f.notation())
	return append(b, ";\n"...)
}

// AppendDef appends the source definition: the body if attached,
// a forward declaration otherwise.
func (f *Function) AppendDef(b []byte) []byte {
	if f.Static {
		b = append(b, "static "...)
	}

	b = f.AppendSignature(b, f.notation())

	if f.body == nil {
		return append(b, ";\n"...)
	}

	b = append(b, ' ')

	return f.body.appendTo(b)
}

func (f *Function) String() string {
	return string(f.AppendSignature(nil, f.notation()))
}
