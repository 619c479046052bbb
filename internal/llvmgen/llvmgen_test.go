package llvmgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bread/grammar"
	"bread/internal/errors"
	"bread/internal/ir"
)

func lower(t *testing.T, src string) *ir.Module {
	t.Helper()
	program, err := grammar.ParseSource("test.bread", src)
	require.NoError(t, err)
	m, err := ir.BuildProgram(program, ir.DefaultOptions())
	require.NoError(t, err)
	return m
}

func TestEmitFunctionSignatures(t *testing.T) {
	text, err := Emit(lower(t, `
add(a, b) { return a + b; }
main() { return add(2, 3); }
`))
	require.NoError(t, err)

	assert.Contains(t, text, "define i32 @add(i32 %a, i32 %b)")
	assert.Contains(t, text, "define i32 @main()")
	assert.Contains(t, text, "add i32 %a, %b")
	assert.Contains(t, text, "call i32 @add(i32 2, i32 3)")
}

func TestEmitKeepsFunctionOrder(t *testing.T) {
	mod, err := Generate(lower(t, `
twice(x) { return x * 2; }
main() { return twice(1); }
`))
	require.NoError(t, err)
	require.Len(t, mod.Funcs, 2)
	assert.Equal(t, "twice", mod.Funcs[0].Name())
	assert.Equal(t, "main", mod.Funcs[1].Name())
}

func TestEmitConditionalWithPhi(t *testing.T) {
	mod, err := Generate(lower(t, `main() { let v; v = 1; if (v < 2) { v = 5; } return v; }`))
	require.NoError(t, err)

	main := mod.Funcs[0]
	require.Len(t, main.Blocks, 3)
	assert.Equal(t, "bb.entry", main.Blocks[0].Name())
	assert.Equal(t, "bb.then1", main.Blocks[1].Name())
	assert.Equal(t, "bb.merge2", main.Blocks[2].Name())

	merge := main.Blocks[2]
	require.Len(t, merge.Insts, 1)

	text := mod.String()
	assert.Contains(t, text, "icmp slt i32 1, 2")
	assert.Contains(t, text, "br i1")
	assert.Contains(t, text, "phi i32")
	assert.Contains(t, text, "%bb.then1")
	assert.Contains(t, text, "ret i32 %v.4")
}

func TestEmitIntegerCondition(t *testing.T) {
	text, err := Emit(lower(t, `f(x) { if (x) { return 1; } return 0; }`))
	require.NoError(t, err)
	assert.Contains(t, text, "icmp eq i32 %x, 0")
}

func TestEmitLabelsDoNotCollideWithParameters(t *testing.T) {
	mod, err := Generate(lower(t, `
f(entry, then1, merge2) {
    let r;
    r = entry;
    if (then1 < merge2) { r = then1; }
    return r;
}`))
	require.NoError(t, err)

	f := mod.Funcs[0]
	locals := make(map[string]bool)
	for _, p := range f.Params {
		locals[p.Name()] = true
	}
	for _, b := range f.Blocks {
		assert.False(t, locals[b.Name()], "block %s reuses a parameter name", b.Name())
		locals[b.Name()] = true
	}

	text := mod.String()
	assert.Contains(t, text, "define i32 @f(i32 %entry, i32 %then1, i32 %merge2)")
	assert.Contains(t, text, "label %bb.then1")
	assert.Contains(t, text, "[ %entry, %bb.entry ]")
}

func TestEmitAllOpcodes(t *testing.T) {
	text, err := Emit(lower(t, `
f(a, b) {
    let r;
    r = (a - b) * (a / b);
    if (a > b) { r = r + 1; }
    if (a == b) { r = 0; }
    return r;
}`))
	require.NoError(t, err)
	for _, want := range []string{"sub i32", "mul i32", "sdiv i32", "icmp sgt i32", "icmp eq i32"} {
		assert.Contains(t, text, want)
	}
}

func TestGenerateRejectsMalformedModule(t *testing.T) {
	m := lower(t, `main() { return 1; }`)
	m.Block(m.Function("main").Entry).Terminator = nil

	_, err := Generate(m)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorMalformedBlock, errors.CodeOf(err))
}
