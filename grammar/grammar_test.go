package grammar_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bread/grammar"
	"bread/internal/ast"
	"bread/internal/errors"
)

func TestParseFunctions(t *testing.T) {
	src := `// adds one
f(x) {
    return x + 1;
}

main() {
    return f(4);
}`

	program, err := grammar.ParseSource("test.bread", src)
	require.NoError(t, err)
	require.Len(t, program.Functions, 2)

	f := program.Functions[0]
	assert.Equal(t, "f", f.Name.Value)
	require.Len(t, f.Params, 1)
	assert.Equal(t, "x", f.Params[0].Value)
	assert.Equal(t, 2, f.Name.Pos.Line)
	assert.Equal(t, 1, f.Name.Pos.Column)
	assert.Equal(t, "test.bread", f.Name.Pos.Filename)

	require.Len(t, f.Body, 1)
	ret, ok := f.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.Equal(t, "(x + 1)", ret.Value.String())
	assert.Equal(t, 3, ret.Pos.Line)

	main := program.Functions[1]
	assert.Empty(t, main.Params)
	call := main.Body[0].(*ast.ReturnStmt).Value.(*ast.CallExpr)
	assert.Equal(t, "f", call.Callee.Value)
	assert.Len(t, call.Args, 1)
}

func TestParseStatements(t *testing.T) {
	src := `main() {
    let v;
    v = 1;
    if (v < 2) {
        v = 5;
        log(v);
    }
    return v;
}`

	program, err := grammar.ParseSource("s.bread", src)
	require.NoError(t, err)

	body := program.Functions[0].Body
	require.Len(t, body, 4)

	decl, ok := body[0].(*ast.DeclareStmt)
	require.True(t, ok)
	assert.Equal(t, "v", decl.Name.Value)

	assign, ok := body[1].(*ast.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "v", assign.Name.Value)
	assert.Equal(t, int32(1), assign.Value.(*ast.LiteralExpr).Value)

	ifStmt, ok := body[2].(*ast.IfStmt)
	require.True(t, ok)
	cond := ifStmt.Cond.(*ast.BinaryExpr)
	assert.Equal(t, ast.LT, cond.Op)
	require.Len(t, ifStmt.Body, 2)
	_, ok = ifStmt.Body[1].(*ast.ExprStmt)
	assert.True(t, ok)

	_, ok = body[3].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		expr     string
		expected string
	}{
		{"2 * 3 + 4", "((2 * 3) + 4)"},
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"10 - 4 - 3", "((10 - 4) - 3)"},
		{"8 / 2 / 2", "((8 / 2) / 2)"},
		{"a + 1 < b * 2", "((a + 1) < (b * 2))"},
		{"(a + b) * c", "((a + b) * c)"},
		{"a == b", "(a == b)"},
		{"f(1, g(2) + 3) > 0", "(f(1, (g(2) + 3)) > 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			program, err := grammar.ParseSource("p.bread", "main() { return "+tt.expr+"; }")
			require.NoError(t, err)
			ret := program.Functions[0].Body[0].(*ast.ReturnStmt)
			assert.Equal(t, tt.expected, ret.Value.String())
		})
	}
}

func TestParseParenKeepsNode(t *testing.T) {
	program, err := grammar.ParseSource("p.bread", "main() { return (7); }")
	require.NoError(t, err)
	_, ok := program.Functions[0].Body[0].(*ast.ReturnStmt).Value.(*ast.ParenExpr)
	assert.True(t, ok)
}

func TestParseEmptyProgram(t *testing.T) {
	program, err := grammar.ParseSource("e.bread", "// nothing here\n")
	require.NoError(t, err)
	assert.Empty(t, program.Functions)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		line   int
		column int
	}{
		{"missing semicolon", "main() {\n  return 1\n}", 0, 0},
		{"missing brace", "main() {\n  return 1;\n", 0, 0},
		{"keyword as name", "main() {\n  let if;\n  return 0;\n}", 2, 7},
		{"literal overflow", "main() {\n  return 2147483648;\n}", 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := grammar.ParseSource("bad.bread", tt.src)
			require.Error(t, err)
			assert.Equal(t, errors.ErrorParse, errors.CodeOf(err))

			var ce errors.CompilerError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "bad.bread", ce.Position.Filename)
			if tt.line == 0 {
				// participle decides which token it reports
				assert.Greater(t, ce.Position.Line, 0)
				return
			}
			assert.Equal(t, tt.line, ce.Position.Line)
			assert.Equal(t, tt.column, ce.Position.Column)
		})
	}
}

func TestParseMaxLiteral(t *testing.T) {
	program, err := grammar.ParseSource("m.bread", "main() { return 2147483647; }")
	require.NoError(t, err)
	lit := program.Functions[0].Body[0].(*ast.ReturnStmt).Value.(*ast.LiteralExpr)
	assert.Equal(t, int32(2147483647), lit.Value)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.bread")
	require.NoError(t, os.WriteFile(path, []byte("main() { return 2 * 3 + 4; }"), 0o644))

	program, err := grammar.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, program.Functions[0].Name.Pos.Filename)

	_, err = grammar.ParseFile(filepath.Join(t.TempDir(), "missing.bread"))
	assert.Error(t, err)
}
