package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bread/internal/errors"
)

func TestVerifyAcceptsLoweredPrograms(t *testing.T) {
	m := lower(t, `
add(a, b) { return a + b; }
main() {
    let v; v = add(1, 2);
    if (v > 2) {
        v = v * 2;
        if (v == 6) { v = 0; }
    }
    return v;
}`)
	assert.NoError(t, Verify(m))
}

func TestVerifyMissingTerminator(t *testing.T) {
	m := lower(t, `main() { return 1; }`)
	m.Block(m.Function("main").Entry).Terminator = nil

	err := Verify(m)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorMalformedBlock, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "no terminator")
}

func TestVerifyPhiArity(t *testing.T) {
	m := lower(t, `main() { let v; v = 1; if (v < 2) { v = 5; } return v; }`)
	merge := blockNamed(t, m, m.Function("main"), "merge2")
	phi := phisOf(merge)[0]
	phi.Incoming = phi.Incoming[:1]

	err := Verify(m)
	assert.Equal(t, errors.ErrorMalformedBlock, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "1 incoming values")
}

func TestVerifyPhiIncomingMustBePredecessor(t *testing.T) {
	m := lower(t, `main() { let v; v = 1; if (v < 2) { v = 5; } return v; }`)
	merge := blockNamed(t, m, m.Function("main"), "merge2")
	phisOf(merge)[0].Incoming[0].Block = merge.ID

	err := Verify(m)
	assert.Equal(t, errors.ErrorMalformedBlock, errors.CodeOf(err))
}

func TestVerifyCallArity(t *testing.T) {
	m := lower(t, `f(a) { return a; } main() { return f(1); }`)
	entry := m.Block(m.Function("main").Entry)
	call := entry.Instructions[0].(*CallInstruction)
	call.Args = append(call.Args, call.Args[0])

	err := Verify(m)
	assert.Equal(t, errors.ErrorMalformedBlock, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "passes 2 arguments")
}

func TestVerifyBranchConditionType(t *testing.T) {
	m := lower(t, `main() { if (1 < 2) { } return 0; }`)
	entry := m.Block(m.Function("main").Entry)
	entry.Terminator.(*BranchTerminator).Condition = m.newConst(1)

	err := Verify(m)
	assert.Equal(t, errors.ErrorMalformedBlock, errors.CodeOf(err))
}

func TestModuleRejectsSecondTerminator(t *testing.T) {
	m := lower(t, `main() { return 1; }`)
	entry := m.Function("main").Entry

	err := m.setTerminator(entry, &ReturnTerminator{Block: entry, Value: m.newConst(2)})
	assert.Equal(t, errors.ErrorMalformedBlock, errors.CodeOf(err))

	err = m.appendInst(entry, &BinaryInstruction{Block: entry, Op: OpAdd})
	assert.Equal(t, errors.ErrorMalformedBlock, errors.CodeOf(err))
}
