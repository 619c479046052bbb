package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type Program struct {
	Pos       lexer.Position
	Functions []*Function `@@*`
}

type Ident struct {
	Pos   lexer.Position
	Value string `@Ident`
}

type Function struct {
	Pos    lexer.Position
	Name   *Ident       `@@ "("`
	Params []*Ident     `[ @@ { "," @@ } ] ")"`
	Body   []*Statement `"{" @@* "}"`
}

type Statement struct {
	Pos    lexer.Position
	Let    *LetStmt    `  @@`
	Return *ReturnStmt `| @@`
	If     *IfStmt     `| @@`
	Assign *AssignStmt `| @@`
	Expr   *ExprStmt   `| @@`
}

type LetStmt struct {
	Pos  lexer.Position
	Name *Ident `"let" @@ ";"`
}

type ReturnStmt struct {
	Pos  lexer.Position
	Expr *Expr `"return" @@ ";"`
}

type IfStmt struct {
	Pos  lexer.Position
	Cond *Expr       `"if" "(" @@ ")"`
	Body []*Statement `"{" @@* "}"`
}

type AssignStmt struct {
	Pos    lexer.Position
	Target *Ident `@@ "="`
	Value  *Expr  `@@ ";"`
}

type ExprStmt struct {
	Pos  lexer.Position
	Expr *Expr `@@ ";"`
}

// Expressions are layered by precedence: comparisons bind loosest, then
// additive, then multiplicative operators. Each layer is left-associative.

type Expr struct {
	Pos  lexer.Position
	Left *Additive   `@@`
	Ops  []*CmpOp    `{ @@ }`
}

type CmpOp struct {
	Pos      lexer.Position
	Operator string    `@("<" | "==" | ">")`
	Right    *Additive `@@`
}

type Additive struct {
	Pos  lexer.Position
	Left *Term    `@@`
	Ops  []*AddOp `{ @@ }`
}

type AddOp struct {
	Pos      lexer.Position
	Operator string `@("+" | "-")`
	Right    *Term  `@@`
}

type Term struct {
	Pos  lexer.Position
	Left *Operand `@@`
	Ops  []*MulOp `{ @@ }`
}

type MulOp struct {
	Pos      lexer.Position
	Operator string   `@("*" | "/")`
	Right    *Operand `@@`
}

type Operand struct {
	Pos    lexer.Position
	Number *string `  @Integer`
	Call   *Call   `| @@`
	Ident  *Ident  `| @@`
	Parens *Expr   `| "(" @@ ")"`
}

type Call struct {
	Pos    lexer.Position
	Callee *Ident  `@@ "("`
	Args   []*Expr `[ @@ { "," @@ } ] ")"`
}
