package ir

// This file provides the main entry point for the IR system
// The IR is implemented using Static Single Assignment (SSA) form over an
// arena-owned module of values and basic blocks

import (
	"bread/internal/ast"
)

// BuildProgram is the main entry point for converting AST to IR
func BuildProgram(program *ast.Program, opts Options) (*Module, error) {
	return NewBuilder(opts).Build(program)
}

// PrintModule returns a pretty-printed representation of the IR
func PrintModule(m *Module) string {
	return Print(m)
}
