// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"symmetrica/grammar"
	"symmetrica/internal/calculus"
	"symmetrica/internal/encoding"
	"symmetrica/internal/expr"
	"symmetrica/internal/simplify"
	"symmetrica/internal/solver"
)

func usage() {
	fmt.Println("Usage: symmetrica-cli [-v] <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  simplify <expr>          print the canonical simplified form")
	fmt.Println("  diff <var> <expr>        differentiate with respect to var")
	fmt.Println("  integrate <var> <expr>   integrate with respect to var")
	fmt.Println("  solve <var> <expr>       solve expr = 0 for var")
	fmt.Println("  sexpr <expr>             print the S-expression form")
	fmt.Println("  json <expr>              print the JSON form")
	os.Exit(1)
}

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "-v" {
		// 1 = debug level, nil = default logger
		commonlog.Configure(1, nil)
		args = args[1:]
	}
	if len(args) < 2 {
		usage()
	}
	command := args[0]
	rest := args[1:]

	st := expr.NewStore()
	parse := func(src string) expr.ID {
		id, err := grammar.ParseToStore(st, "<arg>", src)
		if err != nil {
			grammar.ReportParseError(src, err)
			os.Exit(1)
		}
		return id
	}

	switch command {
	case "simplify":
		id := parse(strings.Join(rest, " "))
		fmt.Println(st.String(simplify.Simplify(st, id)))
	case "diff":
		if len(rest) < 2 {
			usage()
		}
		id := parse(strings.Join(rest[1:], " "))
		d := simplify.Simplify(st, calculus.Diff(st, id, rest[0]))
		fmt.Println(st.String(d))
	case "integrate":
		if len(rest) < 2 {
			usage()
		}
		id := parse(strings.Join(rest[1:], " "))
		anti, ok := calculus.Integrate(st, id, rest[0])
		if !ok {
			color.Red("no integration rule applies")
			os.Exit(1)
		}
		fmt.Println(st.String(simplify.Simplify(st, anti)))
	case "solve":
		if len(rest) < 2 {
			usage()
		}
		id := parse(strings.Join(rest[1:], " "))
		roots, ok := solver.SolveUnivariate(st, id, rest[0])
		if !ok {
			color.Red("cannot solve for %s", rest[0])
			os.Exit(1)
		}
		if len(roots) == 0 {
			fmt.Println("no roots")
			return
		}
		for _, r := range roots {
			fmt.Println(st.String(r))
		}
	case "sexpr":
		id := parse(strings.Join(rest, " "))
		fmt.Println(encoding.ToSexpr(st, id))
	case "json":
		id := parse(strings.Join(rest, " "))
		data, err := encoding.ToJSON(st, id)
		if err != nil {
			color.Red("serialization failed: %s", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	default:
		usage()
	}
}
