package ir

import (
	"fmt"

	"bread/internal/ast"
	"bread/internal/errors"
)

func (b *Builder) buildStatement(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.DeclareStmt:
		if err := b.scope.Declare(s.Name.Value); err != nil {
			return located(err, s.Name.Pos)
		}
		return nil
	case *ast.AssignStmt:
		_, err := b.buildAssignStatement(s)
		return err
	case *ast.ReturnStmt:
		return b.buildReturnStatement(s)
	case *ast.ExprStmt:
		_, err := b.buildExpression(s.Expr)
		return err
	case *ast.IfStmt:
		return b.buildIfStatement(s)
	default:
		return fmt.Errorf("unsupported statement %T", stmt)
	}
}

// buildAssignStatement lowers "name = expr;" and returns the assigned value
func (b *Builder) buildAssignStatement(assignStmt *ast.AssignStmt) (ValueID, error) {
	name := assignStmt.Name.Value

	// The target must resolve before any IR is emitted for the value
	if !b.scope.IsDeclared(name) {
		return NoValue, errors.UndeclaredVariable(name, assignStmt.Name.Pos, b.scope.Visible())
	}

	v, err := b.buildInt(assignStmt.Value)
	if err != nil {
		return NoValue, err
	}
	if err := b.scope.Write(name, v); err != nil {
		return NoValue, located(err, assignStmt.Name.Pos)
	}
	return v, nil
}

func (b *Builder) buildReturnStatement(returnStmt *ast.ReturnStmt) error {
	v, err := b.buildInt(returnStmt.Value)
	if err != nil {
		return err
	}
	return b.module.setTerminator(b.currentBlock, &ReturnTerminator{
		Block: b.currentBlock,
		Value: v,
	})
}

// buildIfStatement lowers a single-branch conditional:
//
//	cond:       ... cond_br c, then, merge
//	then:       body ... br merge
//	merge:      one phi per variable the body rebound
func (b *Builder) buildIfStatement(ifStmt *ast.IfStmt) error {
	fn := b.currentFunc

	cond, err := b.buildExpression(ifStmt.Cond)
	if err != nil {
		return err
	}

	// An i32 condition is true when non-zero; test it for zero and swap targets
	swap := false
	if typ := b.module.TypeOf(cond); typ == I32 {
		zero := b.module.newConst(0)
		isZero := b.createValue(ValueInst, I1, "")
		if cond, err = b.addInstruction(isZero, &BinaryInstruction{
			Result: isZero.ID,
			Block:  b.currentBlock,
			Op:     OpICmpEQ,
			Left:   cond,
			Right:  zero,
		}); err != nil {
			return err
		}
		swap = true
	}
	condBlock := b.currentBlock

	// Lower the body into the consequent block
	consequent := b.module.newBlock(fn, "then")
	b.currentBlock = consequent
	snapshot := b.scope.EnterBranch()

	returned, err := b.buildBody(ifStmt.Body)
	if err != nil {
		return err
	}
	bodyExit := b.currentBlock

	merge := b.module.newBlock(fn, "merge")
	if !returned {
		if err := b.module.setTerminator(bodyExit, &JumpTerminator{Block: bodyExit, Target: merge}); err != nil {
			return err
		}
	}

	divergent, err := b.scope.LeaveBranch(snapshot)
	if err != nil {
		return err
	}

	// A body that returned never reaches merge, so the pre-branch bindings stand
	if !returned {
		b.currentBlock = merge
		for _, d := range divergent {
			if err := b.buildPhi(d, bodyExit, condBlock); err != nil {
				return err
			}
		}
	}

	trueBlock, falseBlock := consequent, merge
	if swap {
		trueBlock, falseBlock = merge, consequent
	}
	if err := b.module.setTerminator(condBlock, &BranchTerminator{
		Block:      condBlock,
		Condition:  cond,
		TrueBlock:  trueBlock,
		FalseBlock: falseBlock,
	}); err != nil {
		return err
	}

	b.currentBlock = merge
	return nil
}

// buildPhi reconciles one divergent variable at the current (merge) block
func (b *Builder) buildPhi(d Divergence, consequent, condBlock BlockID) error {
	phi := b.createValue(ValuePhi, b.module.TypeOf(d.Post), d.Name)
	if _, err := b.addInstruction(phi, &PhiInstruction{
		Result: phi.ID,
		Block:  b.currentBlock,
		Incoming: []Incoming{
			{Block: consequent, Value: d.Post},
			{Block: condBlock, Value: d.Pre},
		},
	}); err != nil {
		return err
	}
	return b.scope.Write(d.Name, phi.ID)
}
