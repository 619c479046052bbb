package ir

import (
	"fmt"

	"bread/internal/errors"
)

// Module owns every value, block and function produced by one lowering run.
// Values and blocks are append-only; IDs stay valid for the life of the module.
type Module struct {
	Values    []*Value
	Blocks    []*BasicBlock
	Functions []*Function
}

// NewModule creates an empty module
func NewModule() *Module {
	return &Module{}
}

// Value returns the value with the given ID
func (m *Module) Value(id ValueID) *Value {
	if id < 0 || int(id) >= len(m.Values) {
		return nil
	}
	return m.Values[id]
}

// Block returns the block with the given ID
func (m *Module) Block(id BlockID) *BasicBlock {
	if id < 0 || int(id) >= len(m.Blocks) {
		return nil
	}
	return m.Blocks[id]
}

// Function returns the function registered under name
func (m *Module) Function(name string) *Function {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// Entry returns the program entry point: main with no parameters
func (m *Module) Entry() (*Function, bool) {
	return m.EntryNamed("main")
}

// EntryNamed returns the function called name when it takes no parameters
func (m *Module) EntryNamed(name string) (*Function, bool) {
	fn := m.Function(name)
	if fn == nil || len(fn.Params) != 0 {
		return nil, false
	}
	return fn, true
}

// TypeOf returns the type of a value
func (m *Module) TypeOf(id ValueID) Type {
	if v := m.Value(id); v != nil {
		return v.Type
	}
	return nil
}

func (m *Module) addFunction(fn *Function) {
	for i, existing := range m.Functions {
		if existing.Name == fn.Name {
			m.Functions[i] = fn
			return
		}
	}
	m.Functions = append(m.Functions, fn)
}

func (m *Module) newValue(kind ValueKind, typ Type, name string, block BlockID) *Value {
	v := &Value{
		ID:       ValueID(len(m.Values)),
		Kind:     kind,
		Name:     name,
		Type:     typ,
		DefBlock: block,
	}
	m.Values = append(m.Values, v)
	return v
}

func (m *Module) newConst(n int32) ValueID {
	v := m.newValue(ValueConst, I32, "", NoBlock)
	v.Const = n
	return v.ID
}

func (m *Module) newParam(fn *Function, name string, index int) ValueID {
	v := m.newValue(ValueParam, I32, name, fn.Entry)
	v.Param = index
	return v.ID
}

func (m *Module) newBlock(fn *Function, label string) BlockID {
	id := BlockID(len(m.Blocks))
	if len(fn.Blocks) > 0 {
		label = fmt.Sprintf("%s%d", label, len(fn.Blocks))
	}
	m.Blocks = append(m.Blocks, &BasicBlock{
		ID:       id,
		Label:    label,
		Function: fn.Name,
	})
	fn.Blocks = append(fn.Blocks, id)
	return id
}

// appendInst adds a non-terminator to an open block
func (m *Module) appendInst(block BlockID, inst Instruction) error {
	b := m.Blocks[block]
	if b.Closed() {
		return errors.MalformedBlock(b.Function, b.Label, "instruction appended after terminator")
	}
	b.Instructions = append(b.Instructions, inst)
	return nil
}

// setTerminator closes a block and records the CFG edges it creates
func (m *Module) setTerminator(block BlockID, term Terminator) error {
	b := m.Blocks[block]
	if b.Closed() {
		return errors.MalformedBlock(b.Function, b.Label, "terminator set twice")
	}
	b.Terminator = term
	for _, succ := range term.GetSuccessors() {
		b.Successors = append(b.Successors, succ)
		s := m.Blocks[succ]
		s.Predecessors = append(s.Predecessors, block)
	}
	return nil
}
