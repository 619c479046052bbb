package ir

import (
	"fmt"
	"strings"
)

// Printer provides pretty-printing for IR
type Printer struct {
	module *Module
	indent int
	output strings.Builder
}

// NewPrinter creates a new IR printer
func NewPrinter(m *Module) *Printer {
	return &Printer{module: m}
}

// Print returns the string representation of an IR module
func Print(m *Module) string {
	p := NewPrinter(m)
	for i, fn := range m.Functions {
		if i > 0 {
			p.writeLine("")
		}
		p.printFunction(fn)
	}
	return p.output.String()
}

// Helper methods

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

// ValueString renders a value reference: constants print as their literal,
// everything else as %id or %name.id
func (p *Printer) ValueString(id ValueID) string {
	v := p.module.Value(id)
	if v == nil {
		return fmt.Sprintf("%%<invalid %d>", id)
	}
	if v.Kind == ValueConst {
		return fmt.Sprintf("%d", v.Const)
	}
	if v.Name != "" {
		return fmt.Sprintf("%%%s.%d", v.Name, v.ID)
	}
	return fmt.Sprintf("%%%d", v.ID)
}

func (p *Printer) label(id BlockID) string {
	if b := p.module.Block(id); b != nil {
		return b.Label
	}
	return fmt.Sprintf("<invalid block %d>", id)
}

// printFunction prints one function with its blocks in creation order
func (p *Printer) printFunction(fn *Function) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", p.ValueString(param), p.module.TypeOf(param))
	}

	p.writeLine("FUNCTION %s(%s) -> %s", fn.Name, strings.Join(params, ", "), fn.ReturnType)
	p.writeLine("{")
	for _, id := range fn.Blocks {
		p.printBasicBlock(p.module.Block(id))
	}
	p.writeLine("}")
}

// printBasicBlock prints a basic block in IR form
func (p *Printer) printBasicBlock(block *BasicBlock) {
	p.writeLine("%s:", block.Label)

	p.indent++
	for _, inst := range block.Instructions {
		p.printInstruction(inst)
	}
	if block.Terminator != nil {
		p.printInstruction(block.Terminator)
	} else {
		p.writeLine("; missing terminator")
	}
	p.indent--
}

func (p *Printer) printInstruction(inst Instruction) {
	switch i := inst.(type) {
	case *PhiInstruction:
		inputs := make([]string, len(i.Incoming))
		for j, in := range i.Incoming {
			inputs[j] = fmt.Sprintf("[%s: %s]", p.label(in.Block), p.ValueString(in.Value))
		}
		p.writeLine("%s = phi %s", p.ValueString(i.Result), strings.Join(inputs, ", "))
	case *BinaryInstruction:
		p.writeLine("%s = %s %s, %s",
			p.ValueString(i.Result), i.Op, p.ValueString(i.Left), p.ValueString(i.Right))
	case *CallInstruction:
		args := make([]string, len(i.Args))
		for j, arg := range i.Args {
			args[j] = p.ValueString(arg)
		}
		p.writeLine("%s = call %s(%s)", p.ValueString(i.Result), i.Callee, strings.Join(args, ", "))
	case *BranchTerminator:
		p.writeLine("cond_br %s, %s, %s",
			p.ValueString(i.Condition), p.label(i.TrueBlock), p.label(i.FalseBlock))
	case *JumpTerminator:
		p.writeLine("br %s", p.label(i.Target))
	case *ReturnTerminator:
		p.writeLine("ret %s", p.ValueString(i.Value))
	default:
		p.writeLine("; unknown instruction %T", inst)
	}
}
