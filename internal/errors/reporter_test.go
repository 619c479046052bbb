package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"bread/internal/ast"
)

func TestErrorReporter(t *testing.T) {
	source := `main() {
    let count;
    return cuont;
}`

	reporter := NewErrorReporter("test.bread", source)

	err := UndeclaredVariable("cuont", ast.Position{Line: 3, Column: 12}, []string{"count"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUndeclaredVariable+"]")
	assert.Contains(t, formatted, "undeclared variable")
	assert.Contains(t, formatted, "test.bread:3:12")
	assert.Contains(t, formatted, "did you mean 'count'?")
	// previous, current and next source lines are shown
	assert.Contains(t, formatted, "let count;")
	assert.Contains(t, formatted, "return cuont;")
}

func TestFormatErrorPlainMarker(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	reporter := NewErrorReporter("m.bread", "main() { return x; }")
	err := NewCompilerError(ErrorUndeclaredVariable, "undeclared variable 'x'", ast.Position{Line: 1, Column: 17}).
		WithLength(1).
		Build()

	formatted := reporter.FormatError(err)
	lines := strings.Split(formatted, "\n")

	assert.Equal(t, "error[E0001]: undeclared variable 'x'", lines[0])
	assert.Contains(t, formatted, "    │ "+strings.Repeat(" ", 16)+"^\n")
}

func TestFormatErrorWithoutPosition(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	reporter := NewErrorReporter("m.bread", "main() {\n  return 1 / 0;\n}")
	err := NewCompilerError(ErrorDivisionByZero, "division by zero", ast.Position{}).
		WithNote("raised in function 'main'").
		Build()

	formatted := reporter.FormatError(err)
	assert.Equal(t, "error[E0700]: division by zero\n"+
		"    --> m.bread\n"+
		"    │ note: raised in function 'main'\n\n", formatted)
	assert.NotContains(t, formatted, ":0:0")
	assert.NotContains(t, formatted, "main() {")
}

func TestFormatErrorPastEndOfSource(t *testing.T) {
	reporter := NewErrorReporter("m.bread", "main() { return 1; }")
	err := MissingReturn("main", ast.Position{Line: 9, Column: 1})

	formatted := reporter.FormatError(err)
	assert.Contains(t, formatted, "m.bread:9:1")
	assert.NotContains(t, formatted, "return 1;")
}

func TestFormatAll(t *testing.T) {
	reporter := NewErrorReporter("m.bread", "main() {\n  return 1;\n  return 2;\n}")
	out := reporter.FormatAll([]CompilerError{
		UnreachableCode(ast.Position{Line: 3, Column: 3}),
		MissingReturn("main", ast.Position{Line: 1, Column: 1}),
	})

	assert.Contains(t, out, "warning[W0002]")
	assert.Contains(t, out, "error[E0600]")
	assert.Less(t, strings.Index(out, "W0002"), strings.Index(out, "E0600"))
}

func TestCompilerErrorImplementsError(t *testing.T) {
	var err error = UseBeforeInit("v", ast.Position{Line: 2, Column: 9})

	assert.Equal(t, "2:9: error[E0017]: variable 'v' is used before being assigned", err.Error())
	assert.Equal(t, ErrorUseBeforeInit, CodeOf(err))

	wrapped := fmt.Errorf("lowering main: %w", err)
	assert.Equal(t, ErrorUseBeforeInit, CodeOf(wrapped))

	ptr := Redeclaration("v", ast.Position{})
	assert.Equal(t, ErrorRedeclaration, CodeOf(&ptr))
	assert.Equal(t, "error[E0009]: "+ptr.Message, ptr.Error(), "no position prefix without a position")

	assert.Equal(t, "", CodeOf(fmt.Errorf("plain")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestUndeclaredVariableSuggestions(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UndeclaredVariable("valeu", pos, []string{"value", "zzz"})
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'value'")

	err = UndeclaredVariable("xyz", pos, nil)
	assert.Contains(t, err.Suggestions[0].Message, "let xyz;")
	assert.NotEmpty(t, err.Notes)
}

func TestUnknownFunctionSuggestions(t *testing.T) {
	err := UnknownFunction("fibb", ast.Position{Line: 4, Column: 10}, []string{"fib", "main"})
	assert.Equal(t, ErrorUnknownFunction, err.Code)
	assert.Equal(t, 4, err.Length)
	assert.Contains(t, err.Suggestions[0].Message, "'fib'")
	assert.NotEmpty(t, err.HelpText)
}

func TestArgumentCountMismatch(t *testing.T) {
	err := ArgumentCountMismatch("add", 2, 3, ast.Position{Line: 1, Column: 1})
	assert.Equal(t, ErrorArgumentCountMismatch, err.Code)
	assert.Contains(t, err.Message, "expects 2 arguments, got 3")
}

func TestTypeMismatchNotesBooleans(t *testing.T) {
	err := TypeMismatch("i32", "i1", ast.Position{})
	assert.Equal(t, "type mismatch: expected i32, found i1", err.Message)
	assert.Len(t, err.Notes, 1)
}

func TestWarningLevel(t *testing.T) {
	w := UnreachableCode(ast.Position{})
	assert.True(t, w.IsWarning())
	assert.False(t, MissingReturn("f", ast.Position{}).IsWarning())
}

func TestFindSimilarNames(t *testing.T) {
	similar := FindSimilarNames("total", []string{"totl", "totals", "other", "total", "to"})
	assert.Equal(t, []string{"totl", "totals"}, similar)
}

func TestFindSimilarShortNames(t *testing.T) {
	tests := []struct {
		target     string
		candidates []string
		expected   []string
	}{
		{"ab", []string{"abc", "b", "xy"}, []string{"abc", "b"}},
		{"vv", []string{"v", "w"}, []string{"v"}},
		{"x", []string{"xs", "y"}, []string{"xs"}},
		{"sum", []string{"sums", "s", "mus"}, []string{"sums"}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindSimilarNames(tt.target, tt.candidates))
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("abc", "abc"))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, 1, levenshteinDistance("abc", "abd"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestErrorCodeHelpers(t *testing.T) {
	assert.True(t, IsWarning(WarningUnreachableCode))
	assert.False(t, IsWarning(ErrorMalformedBlock))
	assert.False(t, IsWarning(""))

	assert.Equal(t, "Lowering", GetErrorCategory(ErrorRedeclaration))
	assert.Equal(t, "Parser", GetErrorCategory(ErrorParse))
	assert.Equal(t, "Flow Control", GetErrorCategory(ErrorMissingReturn))
	assert.Equal(t, "Runtime", GetErrorCategory(ErrorDivisionByZero))
	assert.Equal(t, "Verification", GetErrorCategory(ErrorMalformedBlock))
	assert.Equal(t, "Warning", GetErrorCategory(WarningUnreachableCode))

	for _, code := range []string{
		ErrorUndeclaredVariable, ErrorUnknownFunction, ErrorTypeMismatch, ErrorRedeclaration,
		ErrorArgumentCountMismatch, ErrorUseBeforeInit, ErrorDuplicateFunction, ErrorParse,
		ErrorMissingReturn, ErrorDivisionByZero, ErrorIntegerOverflow, ErrorCallDepthExceeded,
		ErrorMissingEntry, ErrorMalformedBlock, WarningUnreachableCode,
	} {
		assert.NotEqual(t, "Unknown error code", GetErrorDescription(code), code)
	}
}
