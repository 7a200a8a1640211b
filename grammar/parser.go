package grammar

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"symmetrica/internal/expr"
)

var parser = participle.MustBuild[Expression](
	participle.Lexer(mathLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseString parses infix source into the grammar's parse tree. The name is
// used in error positions.
func ParseString(name, source string) (*Expression, error) {
	tree, err := parser.ParseString(name, source)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// ParseToStore parses infix source and lowers it directly into the store.
func ParseToStore(st *expr.Store, name, source string) (expr.ID, error) {
	tree, err := ParseString(name, source)
	if err != nil {
		return 0, err
	}
	return tree.Build(st)
}

// ReportParseError prints a friendly caret-style parse error message.
func ReportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("→ %s\n", pe.Message())
}
