package grammar

import (
	"fmt"
	"strconv"

	"bread/internal/ast"
	"bread/internal/errors"
)

// convertProgram turns the participle parse tree into the AST consumed by
// lowering. It also rejects the few things the grammar itself cannot: keywords
// used as names and integer literals outside the i32 range.
func convertProgram(p *Program) (*ast.Program, error) {
	program := &ast.Program{Pos: toPosition(p.Pos)}
	for _, fn := range p.Functions {
		converted, err := convertFunction(fn)
		if err != nil {
			return nil, err
		}
		program.Functions = append(program.Functions, converted)
	}
	return program, nil
}

func convertIdent(id *Ident) (ast.Ident, error) {
	pos := toPosition(id.Pos)
	if Keywords[id.Value] {
		return ast.Ident{}, errors.NewCompilerError(errors.ErrorParse,
			fmt.Sprintf("'%s' is a keyword and cannot be used as a name", id.Value), pos).
			WithLength(len(id.Value)).
			Build()
	}
	return ast.Ident{Pos: pos, Value: id.Value}, nil
}

func convertFunction(fn *Function) (*ast.Function, error) {
	name, err := convertIdent(fn.Name)
	if err != nil {
		return nil, err
	}

	result := &ast.Function{Pos: toPosition(fn.Pos), Name: name}
	for _, param := range fn.Params {
		p, err := convertIdent(param)
		if err != nil {
			return nil, err
		}
		result.Params = append(result.Params, p)
	}

	result.Body, err = convertStatements(fn.Body)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func convertStatements(stmts []*Statement) ([]ast.Stmt, error) {
	var out []ast.Stmt
	for _, stmt := range stmts {
		s, err := convertStatement(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func convertStatement(stmt *Statement) (ast.Stmt, error) {
	pos := toPosition(stmt.Pos)

	switch {
	case stmt.Let != nil:
		name, err := convertIdent(stmt.Let.Name)
		if err != nil {
			return nil, err
		}
		return &ast.DeclareStmt{Pos: pos, Name: name}, nil

	case stmt.Return != nil:
		value, err := convertExpr(stmt.Return.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Pos: pos, Value: value}, nil

	case stmt.If != nil:
		cond, err := convertExpr(stmt.If.Cond)
		if err != nil {
			return nil, err
		}
		body, err := convertStatements(stmt.If.Body)
		if err != nil {
			return nil, err
		}
		return &ast.IfStmt{Pos: pos, Cond: cond, Body: body}, nil

	case stmt.Assign != nil:
		name, err := convertIdent(stmt.Assign.Target)
		if err != nil {
			return nil, err
		}
		value, err := convertExpr(stmt.Assign.Value)
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Pos: pos, Name: name, Value: value}, nil

	case stmt.Expr != nil:
		expr, err := convertExpr(stmt.Expr.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Pos: pos, Expr: expr}, nil
	}

	return nil, errors.ParseError("empty statement", pos)
}

func convertExpr(e *Expr) (ast.Expr, error) {
	left, err := convertAdditive(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := convertAdditive(op.Right)
		if err != nil {
			return nil, err
		}
		if left, err = binary(op.Operator, left, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func convertAdditive(a *Additive) (ast.Expr, error) {
	left, err := convertTerm(a.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range a.Ops {
		right, err := convertTerm(op.Right)
		if err != nil {
			return nil, err
		}
		if left, err = binary(op.Operator, left, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func convertTerm(t *Term) (ast.Expr, error) {
	left, err := convertOperand(t.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range t.Ops {
		right, err := convertOperand(op.Right)
		if err != nil {
			return nil, err
		}
		if left, err = binary(op.Operator, left, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

// binary folds one more operand onto the left-associative chain
func binary(operator string, left, right ast.Expr) (ast.Expr, error) {
	op, ok := ast.ParseBinaryOp(operator)
	if !ok {
		return nil, errors.ParseError(fmt.Sprintf("unknown operator %q", operator), left.NodePos())
	}
	return &ast.BinaryExpr{Pos: left.NodePos(), Op: op, Left: left, Right: right}, nil
}

func convertOperand(o *Operand) (ast.Expr, error) {
	pos := toPosition(o.Pos)

	switch {
	case o.Number != nil:
		n, err := strconv.ParseInt(*o.Number, 10, 32)
		if err != nil {
			return nil, errors.NewCompilerError(errors.ErrorParse,
				fmt.Sprintf("integer literal %s does not fit in i32", *o.Number), pos).
				WithLength(len(*o.Number)).
				Build()
		}
		return &ast.LiteralExpr{Pos: pos, Value: int32(n)}, nil

	case o.Call != nil:
		callee, err := convertIdent(o.Call.Callee)
		if err != nil {
			return nil, err
		}
		call := &ast.CallExpr{Pos: pos, Callee: callee}
		for _, arg := range o.Call.Args {
			a, err := convertExpr(arg)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, a)
		}
		return call, nil

	case o.Ident != nil:
		name, err := convertIdent(o.Ident)
		if err != nil {
			return nil, err
		}
		return &ast.IdentExpr{Pos: name.Pos, Name: name.Value}, nil

	case o.Parens != nil:
		inner, err := convertExpr(o.Parens)
		if err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Pos: pos, Expr: inner}, nil
	}

	return nil, errors.ParseError("empty operand", pos)
}
