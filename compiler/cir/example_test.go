package cir_test

import (
	"context"
	"os"

	"github.com/slowlang/cgen/compiler/cir"
)

func Example() {
	ctx := context.Background()
	charp := cir.PtrTo(cir.Char{})

	u := cir.NewUnit("hello")
	u.Include("stdio.h", false)

	greet := u.AddFunction("greet", cir.I32, []cir.Type{charp}, false, false)
	main := u.AddFunction("main", cir.I32, nil, false, false)

	printf := cir.NewFunction("printf", cir.I32, []cir.Type{charp}, true, false)

	b := cir.NewBuilder()

	b.PositionAtEnd(greet.AddBlock())
	n := b.Call(printf, []cir.Value{cir.StringLit(`Hello, Sailor!\n`)}, "n")
	b.Return(n.Ref())

	b.PositionAtEnd(main.AddBlock())
	b.Call(greet, []cir.Value{cir.StringLit("ignored")}, "")

	zero, _ := cir.Derive(cir.I32, 0)
	b.Return(zero)

	_ = u.EmitHeader(ctx, os.Stdout)
	_ = u.EmitSource(ctx, os.Stdout)

	// Output:
	// #ifndef HELLO_H
	// #define HELLO_H
	//
	// #include <stdio.h>
	//
	// int greet(*char);
	//
	// #endif
	// #include <stdio.h>
	//
	// int greet(*char) {
	// 	int n = printf("Hello, Sailor!\n");
	// 	return n;
	// }
	//
	// int main(void) {
	// 	greet("ignored");
	// 	return 0;
	// }
}
