package ir

import (
	"fmt"

	"bread/internal/ast"
	"bread/internal/errors"
)

var binaryOpcodes = map[ast.BinaryOp]Opcode{
	ast.ADD: OpAdd,
	ast.SUB: OpSub,
	ast.MUL: OpMul,
	ast.DIV: OpSDiv,
	ast.LT:  OpICmpLT,
	ast.EQ:  OpICmpEQ,
	ast.GT:  OpICmpGT,
}

// buildExpression lowers an expression into the current block
func (b *Builder) buildExpression(expr ast.Expr) (ValueID, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return b.module.newConst(e.Value), nil
	case *ast.IdentExpr:
		v, err := b.scope.Read(e.Name)
		if err != nil {
			return NoValue, located(err, e.Pos)
		}
		return v, nil
	case *ast.BinaryExpr:
		return b.buildBinaryOp(e)
	case *ast.CallExpr:
		return b.buildCall(e)
	case *ast.ParenExpr:
		return b.buildExpression(e.Expr)
	default:
		return NoValue, fmt.Errorf("unsupported expression %T", expr)
	}
}

// buildInt lowers an expression that must produce an i32
func (b *Builder) buildInt(expr ast.Expr) (ValueID, error) {
	v, err := b.buildExpression(expr)
	if err != nil {
		return NoValue, err
	}
	if typ := b.module.TypeOf(v); typ != I32 {
		return NoValue, errors.TypeMismatch(I32.String(), typ.String(), expr.NodePos())
	}
	return v, nil
}

func (b *Builder) buildBinaryOp(binaryExpr *ast.BinaryExpr) (ValueID, error) {
	op, ok := binaryOpcodes[binaryExpr.Op]
	if !ok {
		return NoValue, fmt.Errorf("unsupported binary operator %q", binaryExpr.Op)
	}

	// Left to right defines evaluation order
	left, err := b.buildInt(binaryExpr.Left)
	if err != nil {
		return NoValue, err
	}
	right, err := b.buildInt(binaryExpr.Right)
	if err != nil {
		return NoValue, err
	}

	typ := I32
	if op.IsComparison() {
		typ = I1
	}

	result := b.createValue(ValueInst, typ, "")
	return b.addInstruction(result, &BinaryInstruction{
		Result: result.ID,
		Block:  b.currentBlock,
		Op:     op,
		Left:   left,
		Right:  right,
	})
}

func (b *Builder) buildCall(callExpr *ast.CallExpr) (ValueID, error) {
	name := callExpr.Callee.Value

	// Resolve the callee before any argument is lowered
	fn, err := b.table.Lookup(name, callExpr.Callee.Pos)
	if err != nil {
		return NoValue, err
	}
	if count, _ := b.table.ParamCount(name); count != len(callExpr.Args) {
		return NoValue, errors.ArgumentCountMismatch(name, count, len(callExpr.Args), callExpr.Callee.Pos)
	}

	args := make([]ValueID, 0, len(callExpr.Args))
	for _, arg := range callExpr.Args {
		v, err := b.buildInt(arg)
		if err != nil {
			return NoValue, err
		}
		args = append(args, v)
	}

	result := b.createValue(ValueInst, fn.ReturnType, "")
	return b.addInstruction(result, &CallInstruction{
		Result: result.ID,
		Block:  b.currentBlock,
		Callee: fn.Name,
		Args:   args,
	})
}
