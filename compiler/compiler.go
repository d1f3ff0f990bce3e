package compiler

import (
	"context"
	"os"
	"path/filepath"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/cgen/compiler/cir"
	"github.com/slowlang/cgen/compiler/desc"
)

// CompileFile builds the unit described by the named file.
// Non-empty notation overrides the one set in the file.
func CompileFile(ctx context.Context, name, notation string) (u *cir.Unit, err error) {
	f, err := desc.LoadFile(ctx, name)
	if err != nil {
		return nil, errors.Wrap(err, "load %v", name)
	}

	return build(ctx, f, notation)
}

func Compile(ctx context.Context, name string, text []byte, notation string) (u *cir.Unit, err error) {
	f, err := desc.Parse(text)
	if err != nil {
		return nil, errors.Wrap(err, "parse %v", name)
	}

	f.Path = name

	return build(ctx, f, notation)
}

func build(ctx context.Context, f *desc.File, notation string) (u *cir.Unit, err error) {
	if notation != "" {
		f.Notation = notation
	}

	u, err = desc.Build(ctx, f)
	if err != nil {
		return nil, errors.Wrap(err, "build")
	}

	return u, nil
}

// WriteFiles writes <dir>/<unit>.h and <dir>/<unit>.c.
func WriteFiles(ctx context.Context, u *cir.Unit, dir string) (hdr, src string, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compiler: write files", "unit", u.Name, "dir", dir)
	defer tr.Finish("err", &err)

	hdr = filepath.Join(dir, u.Name+".h")
	src = filepath.Join(dir, u.Name+".c")

	err = writeFile(hdr, func(f *os.File) error { return u.EmitHeader(ctx, f) })
	if err != nil {
		return "", "", errors.Wrap(err, "header")
	}

	err = writeFile(src, func(f *os.File) error { return u.EmitSource(ctx, f) })
	if err != nil {
		return "", "", errors.Wrap(err, "source")
	}

	return hdr, src, nil
}

func writeFile(name string, emit func(f *os.File) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "create")
	}

	defer func() {
		e := f.Close()
		if err == nil && e != nil {
			err = errors.Wrap(e, "close")
		}
	}()

	return emit(f)
}
