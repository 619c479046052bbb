// Package llvmgen renders a lowered Bread module as LLVM IR.
package llvmgen

import (
	"fmt"

	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"bread/internal/errors"
	"bread/internal/ir"
)

var predicates = map[ir.Opcode]enum.IPred{
	ir.OpICmpLT: enum.IPredSLT,
	ir.OpICmpEQ: enum.IPredEQ,
	ir.OpICmpGT: enum.IPredSGT,
}

// Generator holds the state of one conversion
type Generator struct {
	src *ir.Module
	mod *llir.Module

	funcs  map[string]*llir.Func
	blocks map[ir.BlockID]*llir.Block
	values map[ir.ValueID]value.Value

	// phi incomings are filled once every block has been emitted
	phis []pendingPhi
}

type pendingPhi struct {
	inst *llir.InstPhi
	phi  *ir.PhiInstruction
}

// Generate converts every function of m into an LLVM module
func Generate(m *ir.Module) (*llir.Module, error) {
	g := &Generator{
		src:    m,
		mod:    llir.NewModule(),
		funcs:  make(map[string]*llir.Func),
		blocks: make(map[ir.BlockID]*llir.Block),
		values: make(map[ir.ValueID]value.Value),
	}

	// Declare all functions first so calls can refer forward.
	for _, fn := range m.Functions {
		params := make([]*llir.Param, len(fn.Params))
		for i, name := range fn.ParamNames {
			params[i] = llir.NewParam(name, types.I32)
		}
		f := g.mod.NewFunc(fn.Name, types.I32, params...)
		g.funcs[fn.Name] = f
		for i, id := range fn.Params {
			g.values[id] = f.Params[i]
		}
	}

	for _, fn := range m.Functions {
		if err := g.genFunction(fn); err != nil {
			return nil, err
		}
	}

	if err := g.resolvePhis(); err != nil {
		return nil, err
	}
	return g.mod, nil
}

// Emit returns the textual LLVM IR of m
func Emit(m *ir.Module) (string, error) {
	mod, err := Generate(m)
	if err != nil {
		return "", err
	}
	return mod.String(), nil
}

func (g *Generator) genFunction(fn *ir.Function) error {
	f := g.funcs[fn.Name]

	// The entry block must come first in the LLVM function.
	order := make([]ir.BlockID, 0, len(fn.Blocks))
	order = append(order, fn.Entry)
	for _, id := range fn.Blocks {
		if id != fn.Entry {
			order = append(order, id)
		}
	}

	for _, id := range order {
		g.blocks[id] = f.NewBlock(blockName(g.src.Block(id).Label))
	}

	for _, id := range order {
		if err := g.genBlock(fn, g.src.Block(id)); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genBlock(fn *ir.Function, b *ir.BasicBlock) error {
	bb := g.blocks[b.ID]

	for _, inst := range b.Instructions {
		switch inst := inst.(type) {
		case *ir.PhiInstruction:
			// Seeded with a placeholder so the phi type is fixed as i32.
			phi := bb.NewPhi(llir.NewIncoming(constant.NewInt(types.I32, 0), bb))
			g.name(phi, inst.Result)
			g.values[inst.Result] = phi
			g.phis = append(g.phis, pendingPhi{inst: phi, phi: inst})

		case *ir.BinaryInstruction:
			left, err := g.operand(b, inst.Left)
			if err != nil {
				return err
			}
			right, err := g.operand(b, inst.Right)
			if err != nil {
				return err
			}
			result, err := g.genBinary(bb, inst.Op, left, right)
			if err != nil {
				return errors.MalformedBlock(fn.Name, b.Label, err.Error())
			}
			g.values[inst.Result] = result

		case *ir.CallInstruction:
			callee, ok := g.funcs[inst.Callee]
			if !ok {
				return errors.MalformedBlock(fn.Name, b.Label, fmt.Sprintf("call to undefined function %q", inst.Callee))
			}
			args := make([]value.Value, len(inst.Args))
			for i, arg := range inst.Args {
				v, err := g.operand(b, arg)
				if err != nil {
					return err
				}
				args[i] = v
			}
			call := bb.NewCall(callee, args...)
			g.name(call, inst.Result)
			g.values[inst.Result] = call

		default:
			return errors.MalformedBlock(fn.Name, b.Label, fmt.Sprintf("unsupported instruction %s", inst.Opcode()))
		}
	}

	switch term := b.Terminator.(type) {
	case *ir.ReturnTerminator:
		v, err := g.operand(b, term.Value)
		if err != nil {
			return err
		}
		bb.NewRet(v)
	case *ir.JumpTerminator:
		bb.NewBr(g.blocks[term.Target])
	case *ir.BranchTerminator:
		cond, err := g.operand(b, term.Condition)
		if err != nil {
			return err
		}
		bb.NewCondBr(cond, g.blocks[term.TrueBlock], g.blocks[term.FalseBlock])
	case nil:
		return errors.MalformedBlock(fn.Name, b.Label, "block has no terminator")
	default:
		return errors.MalformedBlock(fn.Name, b.Label, fmt.Sprintf("unsupported terminator %s", term.Opcode()))
	}
	return nil
}

func (g *Generator) genBinary(bb *llir.Block, op ir.Opcode, left, right value.Value) (value.Value, error) {
	switch op {
	case ir.OpAdd:
		return bb.NewAdd(left, right), nil
	case ir.OpSub:
		return bb.NewSub(left, right), nil
	case ir.OpMul:
		return bb.NewMul(left, right), nil
	case ir.OpSDiv:
		return bb.NewSDiv(left, right), nil
	}
	if pred, ok := predicates[op]; ok {
		return bb.NewICmp(pred, left, right), nil
	}
	return nil, fmt.Errorf("unsupported binary opcode %s", op)
}

// operand maps an IR value to its LLVM counterpart
func (g *Generator) operand(b *ir.BasicBlock, id ir.ValueID) (value.Value, error) {
	v := g.src.Value(id)
	if v == nil {
		return nil, errors.MalformedBlock(b.Function, b.Label, fmt.Sprintf("reference to unknown value %d", id))
	}
	if v.Kind == ir.ValueConst {
		return constant.NewInt(types.I32, int64(v.Const)), nil
	}
	lv, ok := g.values[id]
	if !ok {
		return nil, errors.MalformedBlock(b.Function, b.Label, fmt.Sprintf("value %d used before its definition", id))
	}
	return lv, nil
}

func (g *Generator) resolvePhis() error {
	for _, p := range g.phis {
		p.inst.Incs = p.inst.Incs[:0]
		b := g.src.Block(p.phi.Block)
		for _, in := range p.phi.Incoming {
			v, err := g.operand(b, in.Value)
			if err != nil {
				return err
			}
			pred, ok := g.blocks[in.Block]
			if !ok {
				return errors.MalformedBlock(b.Function, b.Label, fmt.Sprintf("phi incoming from unknown block %d", in.Block))
			}
			p.inst.Incs = append(p.inst.Incs, llir.NewIncoming(v, pred))
		}
	}
	return nil
}

// blockName keeps labels out of the namespace of parameters and named values.
// Bread identifiers never contain a dot and value names end in a number.
func blockName(label string) string {
	return "bb." + label
}

type namer interface {
	SetName(name string)
}

// name carries the variable hint over so the LLVM text stays readable
func (g *Generator) name(inst namer, id ir.ValueID) {
	if v := g.src.Value(id); v != nil && v.Name != "" {
		inst.SetName(fmt.Sprintf("%s.%d", v.Name, v.ID))
	}
}
