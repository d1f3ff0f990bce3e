package desc

import (
	"context"
	"os"

	"github.com/pelletier/go-toml"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

type (
	// File describes a compilation unit as it is encoded in TOML.
	File struct {
		Name          string   `toml:"name"`
		Notation      string   `toml:"notation,omitempty"`
		Includes      []string `toml:"includes,omitempty"`
		LocalIncludes []string `toml:"local-includes,omitempty"`

		Externs []*Func `toml:"extern,omitempty"`
		Funcs   []*Func `toml:"func,omitempty"`

		// Path is the file f was loaded from, used to label statements.
		Path string `toml:"-"`
	}

	Func struct {
		Name     string   `toml:"name"`
		Ret      string   `toml:"ret"`
		Params   []string `toml:"params,omitempty"`
		Variadic bool     `toml:"variadic,omitempty"`
		Static   bool     `toml:"static,omitempty"`

		Body []*Stmt `toml:"body,omitempty"`
	}

	// Stmt is either a call or a return.
	Stmt struct {
		Call   string  `toml:"call,omitempty"`
		Args   []Value `toml:"args,omitempty"`
		Result string  `toml:"result,omitempty"`

		Return     *Value `toml:"return,omitempty"`
		ReturnVoid bool   `toml:"return-void,omitempty"`
	}

	// Value is a string literal, a reference to a call result
	// or an integer derived to a type.
	Value struct {
		String *string `toml:"string,omitempty"`
		Ref    string  `toml:"ref,omitempty"`

		Type string `toml:"type,omitempty"`
		Int  int64  `toml:"int,omitempty"`
		Addr bool   `toml:"addr,omitempty"`
	}
)

func LoadFile(ctx context.Context, name string) (*File, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	f, err := Parse(text)
	if err != nil {
		return nil, err
	}

	f.Path = name

	return f, nil
}

func Parse(text []byte) (*File, error) {
	var f File

	err := toml.Unmarshal(text, &f)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal")
	}

	if f.Name == "" {
		return nil, errors.New("missing unit name")
	}

	return &f, nil
}

// Encode returns the TOML representation of f.
func (f *File) Encode() ([]byte, error) {
	b, err := toml.Marshal(f)
	if err != nil {
		return nil, errors.Wrap(err, "marshal")
	}

	return b, nil
}
