package ir

import (
	"fmt"
	"slices"

	"bread/internal/errors"
)

// Verify checks the structural invariants of every function in the module:
// each block ends in exactly one terminator with nothing after it, phis come
// first and have one incoming value per predecessor (exactly two), and every
// operand refers to an existing value of the right type.
func Verify(m *Module) error {
	for _, fn := range m.Functions {
		if err := verifyFunction(m, fn); err != nil {
			return err
		}
	}
	return nil
}

func verifyFunction(m *Module, fn *Function) error {
	owned := make(map[BlockID]bool, len(fn.Blocks))
	for _, id := range fn.Blocks {
		owned[id] = true
	}
	if !owned[fn.Entry] {
		return errors.MalformedBlock(fn.Name, "entry", "entry block does not belong to the function")
	}

	for _, id := range fn.Blocks {
		block := m.Block(id)
		fail := func(format string, args ...any) error {
			return errors.MalformedBlock(fn.Name, block.Label, fmt.Sprintf(format, args...))
		}

		if block.Terminator == nil {
			return fail("block has no terminator")
		}
		if len(block.Predecessors) == 0 && id != fn.Entry {
			return fail("block is unreachable")
		}

		seenNonPhi := false
		for _, inst := range block.Instructions {
			if inst.IsTerminator() {
				return fail("terminator %s in the middle of the block", inst.Opcode())
			}
			if inst.GetBlock() != id {
				return fail("%s instruction records the wrong block", inst.Opcode())
			}

			if phi, ok := inst.(*PhiInstruction); ok {
				if seenNonPhi {
					return fail("phi after a non-phi instruction")
				}
				if err := verifyPhi(m, block, phi); err != nil {
					return fail("%v", err)
				}
				continue
			}
			seenNonPhi = true

			if err := verifyOperands(m, inst); err != nil {
				return fail("%v", err)
			}
			if call, ok := inst.(*CallInstruction); ok {
				callee := m.Function(call.Callee)
				if callee == nil {
					return fail("call to unknown function %s", call.Callee)
				}
				if len(callee.Params) != len(call.Args) {
					return fail("call to %s passes %d arguments, want %d", call.Callee, len(call.Args), len(callee.Params))
				}
			}
		}

		if err := verifyOperands(m, block.Terminator); err != nil {
			return fail("%v", err)
		}
		for _, succ := range block.Terminator.GetSuccessors() {
			if !owned[succ] {
				return fail("branch target %d belongs to another function", succ)
			}
		}
		if br, ok := block.Terminator.(*BranchTerminator); ok && m.TypeOf(br.Condition) != I1 {
			return fail("cond_br condition is not i1")
		}
	}
	return nil
}

func verifyPhi(m *Module, block *BasicBlock, phi *PhiInstruction) error {
	if len(phi.Incoming) != 2 {
		return fmt.Errorf("phi %%%d has %d incoming values, want 2", phi.Result, len(phi.Incoming))
	}
	if len(block.Predecessors) != 2 {
		return fmt.Errorf("phi %%%d in a block with %d predecessors", phi.Result, len(block.Predecessors))
	}
	if phi.Incoming[0].Block == phi.Incoming[1].Block {
		return fmt.Errorf("phi %%%d names predecessor %d twice", phi.Result, phi.Incoming[0].Block)
	}
	for _, in := range phi.Incoming {
		if !slices.Contains(block.Predecessors, in.Block) {
			return fmt.Errorf("phi %%%d incoming block %d is not a predecessor", phi.Result, in.Block)
		}
		if m.Value(in.Value) == nil {
			return fmt.Errorf("phi %%%d incoming value %d does not exist", phi.Result, in.Value)
		}
	}
	return nil
}

func verifyOperands(m *Module, inst Instruction) error {
	for _, op := range inst.GetOperands() {
		v := m.Value(op)
		if v == nil {
			return fmt.Errorf("%s uses undefined value %d", inst.Opcode(), op)
		}
		if inst.Opcode() != OpCondBr && v.Type != I32 {
			return fmt.Errorf("%s operand %%%d has type %s, want i32", inst.Opcode(), op, v.Type)
		}
	}
	return nil
}
