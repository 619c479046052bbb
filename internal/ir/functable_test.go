package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bread/internal/ast"
	"bread/internal/errors"
)

func TestFunctionTableRegisterLookup(t *testing.T) {
	table := NewFunctionTable(DuplicateError)

	fn, err := table.Register("add", 2, ast.Position{})
	require.NoError(t, err)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, I32, fn.ReturnType)

	got, err := table.Lookup("add", ast.Position{})
	require.NoError(t, err)
	assert.Same(t, fn, got)

	count, ok := table.ParamCount("add")
	assert.True(t, ok)
	assert.Equal(t, 2, count)

	_, ok = table.ParamCount("nope")
	assert.False(t, ok)
}

func TestFunctionTableUnknown(t *testing.T) {
	table := NewFunctionTable(DuplicateError)
	_, err := table.Register("fib", 1, ast.Position{})
	require.NoError(t, err)

	_, err = table.Lookup("fibb", ast.Position{Line: 3, Column: 9})
	require.Error(t, err)

	var ce errors.CompilerError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, errors.ErrorUnknownFunction, ce.Code)
	assert.Equal(t, 3, ce.Position.Line)
	assert.Contains(t, ce.Suggestions[0].Message, "'fib'")
}

func TestFunctionTableDuplicatePolicies(t *testing.T) {
	strict := NewFunctionTable(DuplicateError)
	_, err := strict.Register("f", 0, ast.Position{})
	require.NoError(t, err)
	_, err = strict.Register("f", 1, ast.Position{Line: 5, Column: 1})
	assert.Equal(t, errors.ErrorDuplicateFunction, errors.CodeOf(err))

	count, _ := strict.ParamCount("f")
	assert.Equal(t, 0, count)

	lenient := NewFunctionTable(DuplicateReplace)
	first, err := lenient.Register("f", 1, ast.Position{})
	require.NoError(t, err)
	second, err := lenient.Register("f", 1, ast.Position{})
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	got, err := lenient.Lookup("f", ast.Position{})
	require.NoError(t, err)
	assert.Same(t, second, got)
	count, _ = lenient.ParamCount("f")
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, lenient.Len())
}

func TestFunctionTableReplaceKeepsArity(t *testing.T) {
	table := NewFunctionTable(DuplicateReplace)
	first, err := table.Register("f", 1, ast.Position{Line: 1, Column: 1})
	require.NoError(t, err)

	_, err = table.Register("f", 0, ast.Position{Line: 4, Column: 1})
	var ce errors.CompilerError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, errors.ErrorDuplicateFunction, ce.Code)
	assert.Equal(t, 4, ce.Position.Line)
	assert.Contains(t, ce.Message, "earlier definition takes 1")

	got, err := table.Lookup("f", ast.Position{})
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestParseDuplicatePolicy(t *testing.T) {
	p, ok := ParseDuplicatePolicy("replace")
	assert.True(t, ok)
	assert.Equal(t, DuplicateReplace, p)
	assert.Equal(t, "replace", p.String())

	p, ok = ParseDuplicatePolicy("")
	assert.True(t, ok)
	assert.Equal(t, DuplicateError, p)

	_, ok = ParseDuplicatePolicy("ignore")
	assert.False(t, ok)
}

func TestFunctionTableNamesSorted(t *testing.T) {
	table := NewFunctionTable(DuplicateError)
	for _, name := range []string{"main", "add", "fib"} {
		_, err := table.Register(name, 0, ast.Position{})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"add", "fib", "main"}, table.Names())
}
