package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"bread/internal/ast"
)

// CompilerErrorBuilder provides a fluent interface for creating compiler errors with suggestions
type CompilerErrorBuilder struct {
	err CompilerError
}

// NewCompilerError creates a new error builder
func NewCompilerError(code, message string, pos ast.Position) *CompilerErrorBuilder {
	return &CompilerErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewCompilerWarning creates a new warning builder
func NewCompilerWarning(code, message string, pos ast.Position) *CompilerErrorBuilder {
	return &CompilerErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *CompilerErrorBuilder) WithLength(length int) *CompilerErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *CompilerErrorBuilder) WithSuggestion(message string) *CompilerErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *CompilerErrorBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *CompilerErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *CompilerErrorBuilder) WithNote(note string) *CompilerErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *CompilerErrorBuilder) WithHelp(help string) *CompilerErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *CompilerErrorBuilder) Build() CompilerError {
	return b.err
}

// CodeOf returns the diagnostic code carried by err, or "" when err is not a CompilerError
func CodeOf(err error) string {
	var ce CompilerError
	if stderrors.As(err, &ce) {
		return ce.Code
	}
	var cep *CompilerError
	if stderrors.As(err, &cep) && cep != nil {
		return cep.Code
	}
	return ""
}

// Lowering errors

// UndeclaredVariable creates an error for names with no visible binding
func UndeclaredVariable(name string, pos ast.Position, visible []string) CompilerError {
	builder := NewCompilerError(ErrorUndeclaredVariable, fmt.Sprintf("undeclared variable '%s'", name), pos).
		WithLength(len(name))

	if similar := FindSimilarNames(name, visible); len(similar) > 0 {
		builder = builder.WithSuggestion(didYouMean(similar))
	} else {
		builder = builder.WithSuggestion(fmt.Sprintf("declare it first with 'let %s;'", name)).
			WithNote("variables must be declared before they are read or assigned")
	}

	return builder.Build()
}

// UnknownFunction creates an error for calls to functions not yet defined
func UnknownFunction(name string, pos ast.Position, defined []string) CompilerError {
	builder := NewCompilerError(ErrorUnknownFunction, fmt.Sprintf("unknown function '%s'", name), pos).
		WithLength(len(name))

	if similar := FindSimilarNames(name, defined); len(similar) > 0 {
		builder = builder.WithSuggestion(didYouMean(similar))
	}

	return builder.WithHelp("functions must be defined before the function that calls them").Build()
}

// TypeMismatch creates an error for values used at the wrong type
func TypeMismatch(expected, actual string, pos ast.Position) CompilerError {
	builder := NewCompilerError(ErrorTypeMismatch, fmt.Sprintf("type mismatch: expected %s, found %s", expected, actual), pos)

	if actual == "i1" {
		builder = builder.WithNote("comparison results can only be used as an 'if' condition")
	}

	return builder.Build()
}

// Redeclaration creates an error for a second 'let' of the same name in one scope
func Redeclaration(name string, pos ast.Position) CompilerError {
	return NewCompilerError(ErrorRedeclaration, fmt.Sprintf("variable '%s' is already declared in this scope", name), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("assign to the existing variable with '%s = ...;'", name)).
		WithSuggestion("or choose a different name").
		Build()
}

// ArgumentCountMismatch creates an error for calls with the wrong number of arguments
func ArgumentCountMismatch(functionName string, expected, actual int, pos ast.Position) CompilerError {
	return NewCompilerError(ErrorArgumentCountMismatch,
		fmt.Sprintf("function '%s' expects %d arguments, got %d", functionName, expected, actual), pos).
		WithLength(len(functionName)).
		WithSuggestion(fmt.Sprintf("provide exactly %d argument(s)", expected)).
		Build()
}

// UseBeforeInit creates an error for reads of a declared but unassigned variable
func UseBeforeInit(name string, pos ast.Position) CompilerError {
	return NewCompilerError(ErrorUseBeforeInit, fmt.Sprintf("variable '%s' is used before being assigned", name), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("assign a value with '%s = ...;' before reading it", name)).
		Build()
}

// DuplicateFunction creates an error for a function defined twice
func DuplicateFunction(name string, pos ast.Position) CompilerError {
	return NewCompilerError(ErrorDuplicateFunction, fmt.Sprintf("function '%s' is already defined", name), pos).
		WithLength(len(name)).
		WithHelp("set duplicate-functions = \"replace\" under [lowering] in bread.toml to let later definitions win").
		Build()
}

// ReplacementArityChanged creates an error for a replacing definition whose
// parameter count differs from the definition it replaces
func ReplacementArityChanged(name string, previous, count int, pos ast.Position) CompilerError {
	return NewCompilerError(ErrorDuplicateFunction,
		fmt.Sprintf("function '%s' is redefined with %d parameters, earlier definition takes %d", name, count, previous), pos).
		WithLength(len(name)).
		WithNote("calls lowered before this definition were checked against the earlier parameter count").
		WithHelp(fmt.Sprintf("keep %d parameter(s) or rename the function", previous)).
		Build()
}

// ParseError creates an error for source text that does not match the grammar
func ParseError(message string, pos ast.Position) CompilerError {
	return NewCompilerError(ErrorParse, message, pos).Build()
}

// MissingReturn creates an error for a function whose body can fall off its end
func MissingReturn(functionName string, pos ast.Position) CompilerError {
	return NewCompilerError(ErrorMissingReturn, fmt.Sprintf("function '%s' can reach its end without returning", functionName), pos).
		WithLength(len(functionName)).
		WithSuggestion("add 'return <value>;' as the last statement").
		WithNote("every path through a function must return an i32").
		Build()
}

// UnreachableCode creates a warning for statements after a return
func UnreachableCode(pos ast.Position) CompilerError {
	return NewCompilerWarning(WarningUnreachableCode, "unreachable code", pos).
		WithSuggestion("remove this code").
		WithNote("code after a return statement will never be executed").
		Build()
}

// Runtime errors

// DivisionByZero creates an error for a division whose divisor evaluated to zero
func DivisionByZero(pos ast.Position) CompilerError {
	return NewCompilerError(ErrorDivisionByZero, "integer division by zero", pos).Build()
}

// IntegerOverflow creates an error for the one overflowing signed division
func IntegerOverflow(pos ast.Position) CompilerError {
	return NewCompilerError(ErrorIntegerOverflow, "integer overflow in signed division", pos).
		WithNote("-2147483648 / -1 does not fit in i32").
		Build()
}

// CallDepthExceeded creates an error for runaway recursion
func CallDepthExceeded(limit int, pos ast.Position) CompilerError {
	return NewCompilerError(ErrorCallDepthExceeded, fmt.Sprintf("call depth exceeded limit of %d", limit), pos).
		WithHelp("raise max-call-depth under [exec] in bread.toml").
		Build()
}

// MissingEntry creates an error when the entry function cannot be run
func MissingEntry(name string, reason string) CompilerError {
	return NewCompilerError(ErrorMissingEntry, fmt.Sprintf("entry function '%s' %s", name, reason), ast.Position{}).Build()
}

// Verification errors

// MalformedBlock creates an error for a basic block that breaks an IR structural rule
func MalformedBlock(functionName, block, reason string) CompilerError {
	return NewCompilerError(ErrorMalformedBlock,
		fmt.Sprintf("malformed block %s in function '%s': %s", block, functionName, reason), ast.Position{}).
		Build()
}

// Helper functions

func didYouMean(similar []string) string {
	if len(similar) == 1 {
		return fmt.Sprintf("did you mean '%s'?", similar[0])
	}
	return fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '"))
}

// FindSimilarNames returns the candidates close enough to target to be a
// likely typo. Names of up to three characters allow one edit, longer names
// two. A candidate that differs in every character is never similar.
func FindSimilarNames(target string, candidates []string) []string {
	limit := 2
	if len(target) <= 3 {
		limit = 1
	}

	var similar []string
	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		d := levenshteinDistance(target, candidate)
		if d <= limit && d < max(len(target), len(candidate)) {
			similar = append(similar, candidate)
		}
	}
	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
