// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"symmetrica/grammar"
	"symmetrica/internal/calculus"
	"symmetrica/internal/expr"
	"symmetrica/internal/simplify"
	"symmetrica/internal/solver"
)

const prompt = ">> "

// Start reads expressions line by line, simplifies them, and prints the
// canonical text form. Commands:
//
//	:diff <var> <expr>    differentiate and simplify
//	:int <var> <expr>     integrate (reports failure when no rule applies)
//	:solve <var> <expr>   solve expr = 0 for var
//	:quit                 leave the loop
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	st := expr.NewStore()

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			return
		}
		if strings.HasPrefix(line, ":") {
			runCommand(st, out, line)
			continue
		}

		id, err := grammar.ParseToStore(st, "repl", line)
		if err != nil {
			grammar.ReportParseError(line, err)
			continue
		}
		fmt.Fprintln(out, st.String(simplify.Simplify(st, id)))
	}
}

func runCommand(st *expr.Store, out io.Writer, line string) {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) < 3 {
		color.Red("usage: %s <var> <expr>", fields[0])
		return
	}
	cmd, variable, src := fields[0], fields[1], fields[2]

	id, err := grammar.ParseToStore(st, "repl", src)
	if err != nil {
		grammar.ReportParseError(src, err)
		return
	}

	switch cmd {
	case ":diff":
		d := simplify.Simplify(st, calculus.Diff(st, id, variable))
		fmt.Fprintln(out, st.String(d))
	case ":int":
		anti, ok := calculus.Integrate(st, id, variable)
		if !ok {
			color.Red("no integration rule applies")
			return
		}
		fmt.Fprintln(out, st.String(simplify.Simplify(st, anti)))
	case ":solve":
		roots, ok := solver.SolveUnivariate(st, id, variable)
		if !ok {
			color.Red("cannot solve for %s", variable)
			return
		}
		if len(roots) == 0 {
			fmt.Fprintln(out, "no roots")
			return
		}
		parts := make([]string, len(roots))
		for i, r := range roots {
			parts[i] = st.String(r)
		}
		fmt.Fprintln(out, strings.Join(parts, ", "))
	default:
		color.Red("unknown command %s", cmd)
	}
}
