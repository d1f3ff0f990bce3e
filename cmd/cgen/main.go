package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
	"tlog.app/go/tlog/ext/tlflag"

	"github.com/slowlang/cgen/compiler"
	"github.com/slowlang/cgen/compiler/cir"
	"github.com/slowlang/cgen/compiler/desc"
	"github.com/slowlang/cgen/compiler/llvm"
)

var (
	errStyle  = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errColor  = pterm.FgRed
	okStyle   = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	okColor   = pterm.FgLightGreen
	warnColor = pterm.FgYellow
)

func main() {
	buildCmd := &cli.Command{
		Name:        "build",
		Description: "write <name>.h and <name>.c for each unit description",
		Action:      buildAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("out,o", ".", "output directory"),
			cli.NewFlag("strict", false, "refuse to write units with diagnostics"),
		},
	}

	headerCmd := &cli.Command{
		Name:        "header",
		Description: "print the header of a unit",
		Action:      headerAct,
		Args:        cli.Args{},
	}

	sourceCmd := &cli.Command{
		Name:        "source",
		Description: "print the source file of a unit",
		Action:      sourceAct,
		Args:        cli.Args{},
	}

	verifyCmd := &cli.Command{
		Name:        "verify",
		Description: "check units for inconsistencies",
		Action:      verifyAct,
		Args:        cli.Args{},
	}

	llvmCmd := &cli.Command{
		Name:        "llvm",
		Description: "print unit declarations as LLVM IR",
		Action:      llvmAct,
		Args:        cli.Args{},
	}

	initCmd := &cli.Command{
		Name:        "init",
		Description: "print a starter unit description",
		Action:      initAct,
		Args:        cli.Args{},
	}

	app := &cli.Command{
		Name:        "cgen",
		Description: "cgen renders C headers and sources from unit descriptions",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("notation", "", "override notation: canonical or c"),
			cli.NewFlag("log", "stderr", "log output file (or stderr)"),
			cli.NewFlag("verbosity,v", "", "logger verbosity topics"),
			cli.FlagfileFlag,
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			buildCmd,
			headerCmd,
			sourceCmd,
			verifyCmd,
			llvmCmd,
			initCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	w, err := tlflag.OpenWriter(c.String("log"))
	if err != nil {
		return errors.Wrap(err, "open log file")
	}

	tlog.DefaultLogger = tlog.New(w)

	tlog.SetVerbosity(c.String("verbosity"))

	return nil
}

func units(c *cli.Command, f func(ctx context.Context, name string, u *cir.Unit) error) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	if len(c.Args) == 0 {
		return errors.New("no unit descriptions given")
	}

	for _, a := range c.Args {
		u, err := compiler.CompileFile(ctx, a, c.String("notation"))
		if err != nil {
			return errors.Wrap(err, "compile %v", a)
		}

		err = f(ctx, a, u)
		if err != nil {
			return errors.Wrap(err, "%v", a)
		}
	}

	return nil
}

func buildAct(c *cli.Command) (err error) {
	dir := c.String("out")

	return units(c, func(ctx context.Context, name string, u *cir.Unit) error {
		ds := cir.Verify(u)

		if c.Bool("strict") && len(ds) != 0 {
			printDiagnostics(name, ds)

			return errors.New("%d problems found", len(ds))
		}

		for _, d := range ds {
			warnColor.Println(d.String())
		}

		err := os.MkdirAll(dir, 0o755)
		if err != nil {
			return errors.Wrap(err, "mkdir")
		}

		hdr, src, err := compiler.WriteFiles(ctx, u, dir)
		if err != nil {
			return err
		}

		okStyle.Print("written")
		okColor.Println(" " + hdr + " " + src)

		return nil
	})
}

func headerAct(c *cli.Command) (err error) {
	return units(c, func(ctx context.Context, name string, u *cir.Unit) error {
		return u.EmitHeader(ctx, os.Stdout)
	})
}

func sourceAct(c *cli.Command) (err error) {
	return units(c, func(ctx context.Context, name string, u *cir.Unit) error {
		return u.EmitSource(ctx, os.Stdout)
	})
}

func verifyAct(c *cli.Command) (err error) {
	var total int

	err = units(c, func(ctx context.Context, name string, u *cir.Unit) error {
		ds := cir.Verify(u)
		total += len(ds)

		tlog.SpanFromContext(ctx).Printw("verified", "unit", u.Name, "diagnostics", ds)

		if len(ds) == 0 {
			okStyle.Print("ok")
			okColor.Println(" " + filepath.Base(name))

			return nil
		}

		printDiagnostics(name, ds)

		return nil
	})
	if err != nil {
		return err
	}

	if total != 0 {
		return errors.New("%d problems found", total)
	}

	return nil
}

func llvmAct(c *cli.Command) (err error) {
	return units(c, func(ctx context.Context, name string, u *cir.Unit) error {
		m, err := llvm.Lower(ctx, u)
		if err != nil {
			return errors.Wrap(err, "lower")
		}

		_, err = fmt.Fprint(os.Stdout, m.String())

		return err
	})
}

func initAct(c *cli.Command) (err error) {
	name := "hello"
	if len(c.Args) != 0 {
		name = c.Args[0]
	}

	msg := "Hello, Sailor!\\n"

	f := &desc.File{
		Name:     name,
		Includes: []string{"stdio.h"},
		Externs: []*desc.Func{{
			Name:     "printf",
			Ret:      "int",
			Params:   []string{"*char"},
			Variadic: true,
		}},
		Funcs: []*desc.Func{{
			Name: "main",
			Ret:  "int",
			Body: []*desc.Stmt{{
				Call: "printf",
				Args: []desc.Value{{String: &msg}},
			}, {
				Return: &desc.Value{Type: "int"},
			}},
		}},
	}

	text, err := f.Encode()
	if err != nil {
		return errors.Wrap(err, "encode")
	}

	_, err = os.Stdout.Write(text)

	return err
}

func printDiagnostics(name string, ds []cir.Diagnostic) {
	errStyle.Print(strconv.Itoa(len(ds)) + " problems")
	errColor.Println(" " + filepath.Base(name))

	data := pterm.TableData{{"func", "stmt", "kind", "message", "from"}}

	for _, d := range ds {
		stmt := "-"
		if d.Stmt >= 0 {
			stmt = strconv.Itoa(d.Stmt)
		}

		from := d.Origin
		if from == "" && d.From != 0 {
			_, file, line := d.From.NameFileLine()
			from = filepath.Base(file) + ":" + strconv.Itoa(line)
		}

		data = append(data, []string{d.Func, stmt, d.Kind.String(), d.Msg, from})
	}

	err := pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if err != nil {
		tlog.Printw("render diagnostics", "err", err)
	}
}
