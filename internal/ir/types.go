package ir

import (
	"fmt"
)

// IR types and structures for lowered Bread programs
// This IR uses Static Single Assignment (SSA) form with basic blocks and control flow graphs.
// Values and blocks live in the owning Module and are referenced by index.

// ValueID indexes Module.Values
type ValueID int

// BlockID indexes Module.Blocks
type BlockID int

const (
	NoValue ValueID = -1
	NoBlock BlockID = -1
)

// ValueKind says how a value was defined
type ValueKind int

const (
	ValueConst ValueKind = iota
	ValueParam
	ValueInst
	ValuePhi
)

func (k ValueKind) String() string {
	switch k {
	case ValueConst:
		return "const"
	case ValueParam:
		return "param"
	case ValueInst:
		return "inst"
	case ValuePhi:
		return "phi"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value represents a value in SSA form - each value has exactly one definition
type Value struct {
	ID       ValueID
	Kind     ValueKind
	Name     string // optional hint, used by the printer
	Type     Type
	DefBlock BlockID // NoBlock for constants
	Const    int32   // ValueConst only
	Param    int     // ValueParam only: position in the parameter list
	DefInst  Instruction
}

// BasicBlock represents a sequence of instructions ending in exactly one terminator
type BasicBlock struct {
	ID           BlockID
	Label        string
	Function     string
	Instructions []Instruction // phis first
	Terminator   Terminator
	Predecessors []BlockID
	Successors   []BlockID
}

// Closed reports whether the block already has its terminator
func (b *BasicBlock) Closed() bool { return b.Terminator != nil }

// Function represents a function in IR form
type Function struct {
	Name       string
	Params     []ValueID
	ParamNames []string
	ReturnType Type
	Entry      BlockID
	Blocks     []BlockID
}

// Opcode names an operation of the IR op set
type Opcode string

const (
	OpAdd    Opcode = "add"
	OpSub    Opcode = "sub"
	OpMul    Opcode = "mul"
	OpSDiv   Opcode = "sdiv"
	OpICmpLT Opcode = "icmp_lt"
	OpICmpEQ Opcode = "icmp_eq"
	OpICmpGT Opcode = "icmp_gt"
	OpCall   Opcode = "call"
	OpPhi    Opcode = "phi"
	OpBr     Opcode = "br"
	OpCondBr Opcode = "cond_br"
	OpRet    Opcode = "ret"
)

// IsComparison reports whether the opcode yields an i1
func (op Opcode) IsComparison() bool {
	return op == OpICmpLT || op == OpICmpEQ || op == OpICmpGT
}

// Instructions in SSA form

type Instruction interface {
	Opcode() Opcode
	GetResult() ValueID
	GetOperands() []ValueID
	GetBlock() BlockID
	IsTerminator() bool
}

// Terminators end basic blocks
type Terminator interface {
	Instruction
	GetSuccessors() []BlockID
}

// Incoming is one (predecessor, value) pair of a phi
type Incoming struct {
	Block BlockID
	Value ValueID
}

type PhiInstruction struct {
	Result   ValueID
	Block    BlockID
	Incoming []Incoming
}

type BinaryInstruction struct {
	Result ValueID
	Block  BlockID
	Op     Opcode
	Left   ValueID
	Right  ValueID
}

type CallInstruction struct {
	Result ValueID
	Block  BlockID
	Callee string
	Args   []ValueID
}

// Terminators

type ReturnTerminator struct {
	Block BlockID
	Value ValueID
}

type BranchTerminator struct {
	Block      BlockID
	Condition  ValueID
	TrueBlock  BlockID
	FalseBlock BlockID
}

type JumpTerminator struct {
	Block  BlockID
	Target BlockID
}

// Implementation of interfaces

func (p *PhiInstruction) Opcode() Opcode     { return OpPhi }
func (p *PhiInstruction) GetResult() ValueID { return p.Result }
func (p *PhiInstruction) GetOperands() []ValueID {
	ops := make([]ValueID, len(p.Incoming))
	for i, in := range p.Incoming {
		ops[i] = in.Value
	}
	return ops
}
func (p *PhiInstruction) GetBlock() BlockID  { return p.Block }
func (p *PhiInstruction) IsTerminator() bool { return false }

// IncomingFrom returns the value flowing in from pred
func (p *PhiInstruction) IncomingFrom(pred BlockID) (ValueID, bool) {
	for _, in := range p.Incoming {
		if in.Block == pred {
			return in.Value, true
		}
	}
	return NoValue, false
}

func (b *BinaryInstruction) Opcode() Opcode         { return b.Op }
func (b *BinaryInstruction) GetResult() ValueID     { return b.Result }
func (b *BinaryInstruction) GetOperands() []ValueID { return []ValueID{b.Left, b.Right} }
func (b *BinaryInstruction) GetBlock() BlockID      { return b.Block }
func (b *BinaryInstruction) IsTerminator() bool     { return false }

func (c *CallInstruction) Opcode() Opcode         { return OpCall }
func (c *CallInstruction) GetResult() ValueID     { return c.Result }
func (c *CallInstruction) GetOperands() []ValueID { return c.Args }
func (c *CallInstruction) GetBlock() BlockID      { return c.Block }
func (c *CallInstruction) IsTerminator() bool     { return false }

func (r *ReturnTerminator) Opcode() Opcode            { return OpRet }
func (r *ReturnTerminator) GetResult() ValueID        { return NoValue }
func (r *ReturnTerminator) GetOperands() []ValueID    { return []ValueID{r.Value} }
func (r *ReturnTerminator) GetBlock() BlockID         { return r.Block }
func (r *ReturnTerminator) IsTerminator() bool        { return true }
func (r *ReturnTerminator) GetSuccessors() []BlockID { return nil }

func (b *BranchTerminator) Opcode() Opcode         { return OpCondBr }
func (b *BranchTerminator) GetResult() ValueID     { return NoValue }
func (b *BranchTerminator) GetOperands() []ValueID { return []ValueID{b.Condition} }
func (b *BranchTerminator) GetBlock() BlockID      { return b.Block }
func (b *BranchTerminator) IsTerminator() bool     { return true }
func (b *BranchTerminator) GetSuccessors() []BlockID {
	return []BlockID{b.TrueBlock, b.FalseBlock}
}

func (j *JumpTerminator) Opcode() Opcode            { return OpBr }
func (j *JumpTerminator) GetResult() ValueID        { return NoValue }
func (j *JumpTerminator) GetOperands() []ValueID    { return nil }
func (j *JumpTerminator) GetBlock() BlockID         { return j.Block }
func (j *JumpTerminator) IsTerminator() bool        { return true }
func (j *JumpTerminator) GetSuccessors() []BlockID { return []BlockID{j.Target} }

// Types

type Type interface {
	String() string
}

type IntType struct {
	Bits int
}

type BoolType struct{}

func (i IntType) String() string  { return fmt.Sprintf("i%d", i.Bits) }
func (b BoolType) String() string { return "i1" }

var (
	I32 Type = IntType{Bits: 32}
	I1  Type = BoolType{}
)
