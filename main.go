// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"symmetrica/grammar"
	"symmetrica/internal/expr"
	"symmetrica/internal/simplify"
	"symmetrica/repl"
)

func main() {
	if len(os.Args) < 2 {
		// No argument: drop into the interactive loop.
		repl.Start(os.Stdin, os.Stdout)
		return
	}

	source := os.Args[1]
	st := expr.NewStore()
	id, err := grammar.ParseToStore(st, "<arg>", source)
	if err != nil {
		grammar.ReportParseError(source, err)
		os.Exit(1)
	}

	fmt.Println(st.String(simplify.Simplify(st, id)))
	color.Green("ok")
}
