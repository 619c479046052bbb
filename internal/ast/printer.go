package ast

import (
	"fmt"
	"strings"
)

func (p *Program) String() string {
	var b strings.Builder
	for i, fn := range p.Functions {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(fn.String())
	}
	return b.String()
}

func (f *Function) String() string {
	var b strings.Builder

	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Value
	}

	b.WriteString(fmt.Sprintf("%s(%s) {\n", f.Name.Value, strings.Join(params, ", ")))
	b.WriteString(blockString(f.Body, "  "))
	b.WriteString("}")

	return b.String()
}

func blockString(body []Stmt, indent string) string {
	var out strings.Builder
	for _, stmt := range body {
		out.WriteString(indent)
		out.WriteString(strings.ReplaceAll(stmt.String(), "\n", "\n"+indent))
		out.WriteByte('\n')
	}
	return out.String()
}

func (i *Ident) String() string {
	return i.Value
}

func (d *DeclareStmt) String() string {
	return fmt.Sprintf("let %s;", d.Name.Value)
}

func (a *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s;", a.Name.Value, a.Value.String())
}

func (r *ReturnStmt) String() string {
	return fmt.Sprintf("return %s;", r.Value.String())
}

func (e *ExprStmt) String() string {
	return e.Expr.String() + ";"
}

func (i *IfStmt) String() string {
	var result strings.Builder

	// Format: if (condition) {\n  statements\n}
	result.WriteString(fmt.Sprintf("if (%s) {\n", i.Cond.String()))
	result.WriteString(blockString(i.Body, "  "))
	result.WriteString("}")

	return result.String()
}

func (l *LiteralExpr) String() string {
	return fmt.Sprintf("%d", l.Value)
}

func (i *IdentExpr) String() string {
	return i.Name
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee.Value, strings.Join(args, ", "))
}

func (p *ParenExpr) String() string {
	return fmt.Sprintf("(%s)", p.Expr.String())
}
