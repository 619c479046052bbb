package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ident(name string) Ident { return Ident{Value: name} }

func TestFunctionString(t *testing.T) {
	fn := &Function{
		Name:   ident("add"),
		Params: []Ident{ident("a"), ident("b")},
		Body: []Stmt{
			&ReturnStmt{Value: &BinaryExpr{Op: ADD, Left: &IdentExpr{Name: "a"}, Right: &IdentExpr{Name: "b"}}},
		},
	}

	assert.Equal(t, "add(a, b) {\n  return (a + b);\n}", fn.String())
}

func TestIfStmtStringIndentsNestedBody(t *testing.T) {
	fn := &Function{
		Name: ident("main"),
		Body: []Stmt{
			&DeclareStmt{Name: ident("v")},
			&IfStmt{
				Cond: &BinaryExpr{Op: LT, Left: &IdentExpr{Name: "v"}, Right: &LiteralExpr{Value: 2}},
				Body: []Stmt{&AssignStmt{Name: ident("v"), Value: &LiteralExpr{Value: 5}}},
			},
			&ReturnStmt{Value: &IdentExpr{Name: "v"}},
		},
	}

	expected := "main() {\n  let v;\n  if ((v < 2)) {\n    v = 5;\n  }\n  return v;\n}"
	assert.Equal(t, expected, fn.String())
}

func TestCallAndParenString(t *testing.T) {
	call := &CallExpr{
		Callee: ident("f"),
		Args: []Expr{
			&LiteralExpr{Value: -3},
			&ParenExpr{Expr: &IdentExpr{Name: "x"}},
		},
	}
	assert.Equal(t, "f(-3, (x))", call.String())
	assert.Equal(t, "f(-3, (x));", (&ExprStmt{Expr: call}).String())
}

func TestProgramStringSeparatesFunctions(t *testing.T) {
	prog := &Program{Functions: []*Function{
		{Name: ident("a"), Body: []Stmt{&ReturnStmt{Value: &LiteralExpr{Value: 1}}}},
		{Name: ident("b"), Body: []Stmt{&ReturnStmt{Value: &LiteralExpr{Value: 2}}}},
	}}
	assert.Equal(t, "a() {\n  return 1;\n}\n\nb() {\n  return 2;\n}", prog.String())
}

func TestNodeTypeStrings(t *testing.T) {
	assert.Equal(t, "IF_STMT", (&IfStmt{}).NodeType().String())
	assert.Equal(t, "CALL_EXPR", (&CallExpr{}).NodeType().String())
	assert.Equal(t, "ILLEGAL", NodeType(999).String())
}

func TestBinaryOpHelpers(t *testing.T) {
	op, ok := ParseBinaryOp("==")
	assert.True(t, ok)
	assert.Equal(t, EQ, op)
	assert.True(t, op.IsComparison())
	assert.False(t, MUL.IsComparison())
	assert.Greater(t, MUL.Precedence(), ADD.Precedence())
	assert.Greater(t, SUB.Precedence(), GT.Precedence())

	_, ok = ParseBinaryOp("%")
	assert.False(t, ok)
}

func TestInspectVisitsAllIdentifiers(t *testing.T) {
	fn := &Function{
		Name:   ident("f"),
		Params: []Ident{ident("x")},
		Body: []Stmt{
			&IfStmt{
				Cond: &IdentExpr{Name: "x"},
				Body: []Stmt{&ExprStmt{Expr: &CallExpr{Callee: ident("g"), Args: []Expr{&IdentExpr{Name: "x"}}}}},
			},
			&ReturnStmt{Value: &ParenExpr{Expr: &LiteralExpr{Value: 0}}},
		},
	}

	var names []string
	Inspect(fn, func(n Node) bool {
		switch n := n.(type) {
		case *Ident:
			names = append(names, n.Value)
		case *IdentExpr:
			names = append(names, n.Name)
		}
		return true
	})
	assert.Equal(t, []string{"f", "x", "x", "g", "x"}, names)
}

func TestInspectSkipsChildren(t *testing.T) {
	fn := &Function{
		Name: ident("f"),
		Body: []Stmt{&IfStmt{Cond: &LiteralExpr{Value: 1}, Body: []Stmt{&DeclareStmt{Name: ident("hidden")}}}},
	}

	count := 0
	Inspect(fn, func(n Node) bool {
		count++
		_, isIf := n.(*IfStmt)
		return !isIf
	})
	// Function, its name Ident, and the IfStmt itself.
	assert.Equal(t, 3, count)
}

func TestUnparen(t *testing.T) {
	inner := &LiteralExpr{Value: 7}
	assert.Same(t, inner, Unparen(&ParenExpr{Expr: &ParenExpr{Expr: inner}}))
	assert.Same(t, inner, Unparen(inner))
}
