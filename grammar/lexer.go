package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var mathLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Identifiers (function and symbol names)
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Integer literals; rationals are written with the division
		// operator and folded during simplification
		{"Number", `[0-9]+`, nil},

		// Operators
		{"Operator", `(\^|[-+*/])`, nil},

		// Punctuation
		{"Punct", `[(),]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
