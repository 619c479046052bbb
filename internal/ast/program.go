package ast

// Program represents a Bread source file: an ordered list of functions
// Example: "add(a, b) { return a + b; } main() { return add(2, 3); }"
type Program struct {
	Pos       Position
	Functions []*Function
}

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Ident represents any identifier like variable names and function names
// Example: "main", "x", "fib"
type Ident struct {
	Pos   Position
	Value string
}

// Function represents a function definition
// Example: "f(x) { return x + 1; }"
type Function struct {
	Pos    Position
	Name   Ident
	Params []Ident
	Body   []Stmt
}

// DeclareStmt represents a variable declaration without an initializer
// Example: "let v;"
type DeclareStmt struct {
	Pos  Position
	Name Ident
}

// AssignStmt represents an assignment to a declared variable
// Example: "v = v + 1;"
type AssignStmt struct {
	Pos   Position
	Name  Ident
	Value Expr
}

// ReturnStmt represents a return statement
// Example: "return x * 2;"
type ReturnStmt struct {
	Pos   Position
	Value Expr
}

// ExprStmt represents an expression evaluated for its side effects
// Example: "log(x);"
type ExprStmt struct {
	Pos  Position
	Expr Expr
}

// IfStmt represents a single-branch conditional
// Example: "if (v < 2) { v = 5; }"
type IfStmt struct {
	Pos  Position
	Cond Expr
	Body []Stmt
}

// LiteralExpr represents a 32-bit signed integer literal
// Example: "42"
type LiteralExpr struct {
	Pos   Position
	Value int32
}

// IdentExpr represents a variable reference
// Example: "x"
type IdentExpr struct {
	Pos  Position
	Name string
}

// BinaryExpr represents a binary operation
// Example: "a + b", "v < 2"
type BinaryExpr struct {
	Pos   Position
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// CallExpr represents a function call
// Example: "add(1, x)"
type CallExpr struct {
	Pos    Position
	Callee Ident
	Args   []Expr
}

// ParenExpr represents a parenthesized expression
// Example: "(a + b)"
type ParenExpr struct {
	Pos  Position
	Expr Expr
}
