package grammar

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"bread/internal/ast"
	"bread/internal/errors"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(BreadLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// ParseFile reads and parses a Bread source file
func ParseFile(path string) (*ast.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

// ParseSource parses Bread source text into the AST. Syntax errors are
// returned as errors.CompilerError with code E0100.
func ParseSource(filename, source string) (*ast.Program, error) {
	program, err := parser.ParseString(filename, source)
	if err != nil {
		return nil, toParseError(filename, err)
	}
	return convertProgram(program)
}

// toParseError converts a participle error into a positioned compiler error
func toParseError(filename string, err error) error {
	var pe participle.Error
	if !stderrors.As(err, &pe) {
		return errors.ParseError(err.Error(), ast.Position{Filename: filename, Line: 1, Column: 1})
	}
	return errors.ParseError(pe.Message(), toPosition(pe.Position()))
}

func toPosition(pos lexer.Position) ast.Position {
	return ast.Position{
		Filename: pos.Filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}
