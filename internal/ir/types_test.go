package ir

import (
	"testing"
)

// ============================================================================
// Type Tests
// ============================================================================

func TestTypeStrings(t *testing.T) {
	tests := []struct {
		typ      Type
		expected string
	}{
		{I32, "i32"},
		{I1, "i1"},
		{IntType{Bits: 64}, "i64"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.expected {
			t.Errorf("Type.String() = %q, want %q", got, tt.expected)
		}
	}

	if I32 != (IntType{Bits: 32}) {
		t.Error("I32 should compare equal to IntType{Bits: 32}")
	}
	if I1 == I32 {
		t.Error("I1 and I32 must differ")
	}
}

func TestValueKindString(t *testing.T) {
	kinds := map[ValueKind]string{
		ValueConst:    "const",
		ValueParam:    "param",
		ValueInst:     "inst",
		ValuePhi:      "phi",
		ValueKind(99): "ValueKind(99)",
	}
	for kind, expected := range kinds {
		if got := kind.String(); got != expected {
			t.Errorf("ValueKind(%d).String() = %q, want %q", int(kind), got, expected)
		}
	}
}

// ============================================================================
// Instruction Interface Tests
// ============================================================================

func TestInstructionInterfaces(t *testing.T) {
	phi := &PhiInstruction{Result: 5, Block: 2, Incoming: []Incoming{{Block: 1, Value: 3}, {Block: 0, Value: 4}}}
	if phi.Opcode() != OpPhi || phi.IsTerminator() {
		t.Error("phi should be a non-terminating phi op")
	}
	if ops := phi.GetOperands(); len(ops) != 2 || ops[0] != 3 || ops[1] != 4 {
		t.Errorf("phi operands = %v", ops)
	}
	if v, ok := phi.IncomingFrom(0); !ok || v != 4 {
		t.Errorf("IncomingFrom(0) = %v, %v", v, ok)
	}
	if _, ok := phi.IncomingFrom(7); ok {
		t.Error("IncomingFrom should fail for a block that is not an incoming edge")
	}

	bin := &BinaryInstruction{Result: 2, Block: 0, Op: OpICmpGT, Left: 0, Right: 1}
	if !bin.Opcode().IsComparison() || OpAdd.IsComparison() {
		t.Error("icmp_gt is a comparison, add is not")
	}

	var terms = []Terminator{
		&ReturnTerminator{Block: 0, Value: 1},
		&BranchTerminator{Block: 0, Condition: 1, TrueBlock: 1, FalseBlock: 2},
		&JumpTerminator{Block: 1, Target: 2},
	}
	expectedSuccs := []int{0, 2, 1}
	for i, term := range terms {
		if !term.IsTerminator() {
			t.Errorf("%s should be a terminator", term.Opcode())
		}
		if term.GetResult() != NoValue {
			t.Errorf("%s should not define a value", term.Opcode())
		}
		if got := len(term.GetSuccessors()); got != expectedSuccs[i] {
			t.Errorf("%s has %d successors, want %d", term.Opcode(), got, expectedSuccs[i])
		}
	}
}

func TestModuleAccessorsOutOfRange(t *testing.T) {
	m := NewModule()
	if m.Value(0) != nil || m.Value(NoValue) != nil {
		t.Error("Value should return nil for unknown IDs")
	}
	if m.Block(0) != nil || m.Block(NoBlock) != nil {
		t.Error("Block should return nil for unknown IDs")
	}
	if m.TypeOf(3) != nil {
		t.Error("TypeOf should return nil for unknown IDs")
	}
	if _, ok := m.Entry(); ok {
		t.Error("empty module has no entry")
	}
}
