// Package exec interprets lowered Bread modules.
//
// Integers wrap on overflow like two's complement i32, comparisons yield 0 or
// 1, and a phi takes the incoming value of the block control arrived from.
// Division by zero, MIN / -1 and runaway recursion are reported as runtime
// faults.
package exec

import (
	"fmt"
	"math"

	"github.com/tliron/commonlog"

	"bread/internal/ast"
	"bread/internal/errors"
	"bread/internal/ir"
)

var log = commonlog.GetLogger("bread.exec")

// DefaultMaxCallDepth bounds recursion when no limit is configured
const DefaultMaxCallDepth = 10000

// Options configures a Machine
type Options struct {
	MaxCallDepth int
}

// DefaultOptions returns the interpreter defaults
func DefaultOptions() Options {
	return Options{MaxCallDepth: DefaultMaxCallDepth}
}

// Machine runs functions of one module
type Machine struct {
	module *ir.Module
	opts   Options
	depth  int

	// Steps counts executed instructions and terminators
	Steps int
}

// New creates a machine for m
func New(m *ir.Module, opts Options) *Machine {
	if opts.MaxCallDepth <= 0 {
		opts.MaxCallDepth = DefaultMaxCallDepth
	}
	return &Machine{module: m, opts: opts}
}

// Run executes the parameterless entry function and returns its result
func (vm *Machine) Run(entry string) (int32, error) {
	fn := vm.module.Function(entry)
	if fn == nil {
		return 0, errors.MissingEntry(entry, "is not defined")
	}
	if len(fn.Params) != 0 {
		return 0, errors.MissingEntry(entry, fmt.Sprintf("takes %d parameters, expected none", len(fn.Params)))
	}
	log.Debugf("running %s", entry)
	return vm.call(fn, nil)
}

// Call executes the named function with the given arguments
func (vm *Machine) Call(name string, args ...int32) (int32, error) {
	fn := vm.module.Function(name)
	if fn == nil {
		return 0, errors.UnknownFunction(name, ast.Position{}, functionNames(vm.module))
	}
	if len(args) != len(fn.Params) {
		return 0, errors.ArgumentCountMismatch(name, len(fn.Params), len(args), ast.Position{})
	}
	return vm.call(fn, args)
}

type frame struct {
	fn     *ir.Function
	values map[ir.ValueID]int32
}

func (vm *Machine) call(fn *ir.Function, args []int32) (int32, error) {
	if vm.depth >= vm.opts.MaxCallDepth {
		return 0, inFunction(errors.CallDepthExceeded(vm.opts.MaxCallDepth, ast.Position{}), fn.Name)
	}
	vm.depth++
	defer func() { vm.depth-- }()

	f := &frame{fn: fn, values: make(map[ir.ValueID]int32, len(args))}
	for i, id := range fn.Params {
		f.values[id] = args[i]
	}

	prev := ir.NoBlock
	cur := fn.Entry
	for {
		b := vm.module.Block(cur)
		if b == nil {
			return 0, errors.MalformedBlock(fn.Name, fmt.Sprint(cur), "jump to unknown block")
		}
		if err := vm.enter(f, b, prev); err != nil {
			return 0, err
		}
		if err := vm.execBlock(f, b); err != nil {
			return 0, err
		}

		vm.Steps++
		switch term := b.Terminator.(type) {
		case *ir.ReturnTerminator:
			return vm.read(f, b, term.Value)
		case *ir.JumpTerminator:
			prev, cur = cur, term.Target
		case *ir.BranchTerminator:
			cond, err := vm.read(f, b, term.Condition)
			if err != nil {
				return 0, err
			}
			prev = cur
			if cond != 0 {
				cur = term.TrueBlock
			} else {
				cur = term.FalseBlock
			}
		default:
			return 0, errors.MalformedBlock(fn.Name, b.Label, "block has no terminator")
		}
	}
}

// enter resolves the phis of b against the edge taken from prev. All phis
// read before any is written.
func (vm *Machine) enter(f *frame, b *ir.BasicBlock, prev ir.BlockID) error {
	type assignment struct {
		id  ir.ValueID
		val int32
	}
	var pending []assignment

	for _, inst := range b.Instructions {
		phi, ok := inst.(*ir.PhiInstruction)
		if !ok {
			break
		}
		in, ok := phi.IncomingFrom(prev)
		if !ok {
			return errors.MalformedBlock(f.fn.Name, b.Label, fmt.Sprintf("phi has no incoming value for predecessor %d", prev))
		}
		val, err := vm.read(f, b, in)
		if err != nil {
			return err
		}
		pending = append(pending, assignment{phi.Result, val})
	}

	for _, a := range pending {
		f.values[a.id] = a.val
	}
	vm.Steps += len(pending)
	return nil
}

func (vm *Machine) execBlock(f *frame, b *ir.BasicBlock) error {
	for _, inst := range b.Instructions {
		switch inst := inst.(type) {
		case *ir.PhiInstruction:
			continue

		case *ir.BinaryInstruction:
			left, err := vm.read(f, b, inst.Left)
			if err != nil {
				return err
			}
			right, err := vm.read(f, b, inst.Right)
			if err != nil {
				return err
			}
			result, err := binary(inst.Op, left, right)
			if err != nil {
				return inFunction(err, f.fn.Name)
			}
			f.values[inst.Result] = result

		case *ir.CallInstruction:
			callee := vm.module.Function(inst.Callee)
			if callee == nil {
				return errors.MalformedBlock(f.fn.Name, b.Label, fmt.Sprintf("call to undefined function %q", inst.Callee))
			}
			if len(callee.Params) != len(inst.Args) {
				return errors.MalformedBlock(f.fn.Name, b.Label, fmt.Sprintf("call to %s passes %d arguments", inst.Callee, len(inst.Args)))
			}
			args := make([]int32, len(inst.Args))
			for i, arg := range inst.Args {
				v, err := vm.read(f, b, arg)
				if err != nil {
					return err
				}
				args[i] = v
			}
			result, err := vm.call(callee, args)
			if err != nil {
				return err
			}
			f.values[inst.Result] = result

		default:
			return errors.MalformedBlock(f.fn.Name, b.Label, fmt.Sprintf("unsupported instruction %s", inst.Opcode()))
		}
		vm.Steps++
	}
	return nil
}

func (vm *Machine) read(f *frame, b *ir.BasicBlock, id ir.ValueID) (int32, error) {
	v := vm.module.Value(id)
	if v == nil {
		return 0, errors.MalformedBlock(f.fn.Name, b.Label, fmt.Sprintf("reference to unknown value %d", id))
	}
	if v.Kind == ir.ValueConst {
		return v.Const, nil
	}
	val, ok := f.values[id]
	if !ok {
		return 0, errors.MalformedBlock(f.fn.Name, b.Label, fmt.Sprintf("value %d read before it was defined", id))
	}
	return val, nil
}

func binary(op ir.Opcode, left, right int32) (int32, error) {
	switch op {
	case ir.OpAdd:
		return left + right, nil
	case ir.OpSub:
		return left - right, nil
	case ir.OpMul:
		return left * right, nil
	case ir.OpSDiv:
		if right == 0 {
			return 0, errors.DivisionByZero(ast.Position{})
		}
		if left == math.MinInt32 && right == -1 {
			return 0, errors.IntegerOverflow(ast.Position{})
		}
		return left / right, nil
	case ir.OpICmpLT:
		return boolean(left < right), nil
	case ir.OpICmpEQ:
		return boolean(left == right), nil
	case ir.OpICmpGT:
		return boolean(left > right), nil
	}
	return 0, fmt.Errorf("unsupported opcode %s", op)
}

func boolean(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// inFunction notes where a runtime fault happened
func inFunction(err error, name string) error {
	if ce, ok := err.(errors.CompilerError); ok {
		ce.Notes = append(ce.Notes, fmt.Sprintf("raised in function '%s'", name))
		return ce
	}
	return err
}

func functionNames(m *ir.Module) []string {
	names := make([]string, len(m.Functions))
	for i, fn := range m.Functions {
		names[i] = fn.Name
	}
	return names
}
