package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var BreadLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},

		// Keywords and Identifiers (order matters)
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Integer literals
		{"Integer", `[0-9]+`, nil},

		// Operators
		{"Operator", `(==|[-+*/<>=])`, nil},

		// Punctuation (must come after operators)
		{"Punctuation", `[{}(),;]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})

// Keywords cannot be used as variable or function names
var Keywords = map[string]bool{
	"let":    true,
	"return": true,
	"if":     true,
}
