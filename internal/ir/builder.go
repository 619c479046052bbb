package ir

import (
	stderrors "errors"

	"bread/internal/ast"
	"bread/internal/errors"
)

// Options configures a lowering run
type Options struct {
	Duplicates DuplicatePolicy
	Verify     bool
}

// DefaultOptions rejects duplicate functions and verifies the result
func DefaultOptions() Options {
	return Options{Duplicates: DuplicateError, Verify: true}
}

// Builder converts an AST program to IR. It is the lowering context: the
// function table, scope stack and module all belong to one Builder, and a
// Builder must not be shared between goroutines.
type Builder struct {
	opts   Options
	module *Module
	table  *FunctionTable
	scope  *Scope

	currentFunc  *Function
	currentBlock BlockID

	warnings []errors.CompilerError
}

// NewBuilder creates a new IR builder
func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts:         opts,
		module:       NewModule(),
		table:        NewFunctionTable(opts.Duplicates),
		scope:        NewScope(),
		currentBlock: NoBlock,
	}
}

// Build lowers every function of the program in order. The first error
// aborts the run and no module is returned.
func (b *Builder) Build(program *ast.Program) (*Module, error) {
	for _, fn := range program.Functions {
		if err := b.buildFunction(fn); err != nil {
			return nil, err
		}
	}

	if b.opts.Verify {
		if err := Verify(b.module); err != nil {
			return nil, err
		}
	}

	return b.module, nil
}

// Warnings returns the non-fatal diagnostics collected so far
func (b *Builder) Warnings() []errors.CompilerError {
	return b.warnings
}

// Table exposes the function table of this run
func (b *Builder) Table() *FunctionTable {
	return b.table
}

func (b *Builder) buildFunction(astFunc *ast.Function) error {
	name := astFunc.Name.Value

	b.scope.Reset()

	// Register the prototype first so the body may call itself
	fn, err := b.table.Register(name, len(astFunc.Params), astFunc.Name.Pos)
	if err != nil {
		return err
	}
	b.currentFunc = fn
	b.module.addFunction(fn)

	// Create entry block
	fn.Entry = b.module.newBlock(fn, "entry")
	b.currentBlock = fn.Entry

	// Process parameters
	for i, param := range astFunc.Params {
		v := b.module.newParam(fn, param.Value, i)
		fn.Params = append(fn.Params, v)
		fn.ParamNames = append(fn.ParamNames, param.Value)
		if err := b.scope.Bind(param.Value, v); err != nil {
			return located(err, param.Pos)
		}
	}

	// Process function body
	terminated, err := b.buildBody(astFunc.Body)
	if err != nil {
		return err
	}
	if !terminated {
		return errors.MissingReturn(name, astFunc.Name.Pos)
	}

	return nil
}

// buildBody lowers a statement list into the current block and reports
// whether the list ended by closing its block with a return
func (b *Builder) buildBody(stmts []ast.Stmt) (bool, error) {
	for i, stmt := range stmts {
		if err := b.buildStatement(stmt); err != nil {
			return false, err
		}

		if b.block().Closed() {
			if i+1 < len(stmts) {
				b.warnings = append(b.warnings, errors.UnreachableCode(stmts[i+1].NodePos()))
			}
			return true, nil
		}
	}
	return false, nil
}

func (b *Builder) block() *BasicBlock {
	return b.module.Block(b.currentBlock)
}

func (b *Builder) createValue(kind ValueKind, typ Type, name string) *Value {
	return b.module.newValue(kind, typ, name, b.currentBlock)
}

func (b *Builder) addInstruction(v *Value, inst Instruction) (ValueID, error) {
	v.DefInst = inst
	if err := b.module.appendInst(b.currentBlock, inst); err != nil {
		return NoValue, err
	}
	return v.ID, nil
}

// located fills in the source position of a CompilerError that was raised
// without one
func located(err error, pos ast.Position) error {
	var ce errors.CompilerError
	if stderrors.As(err, &ce) && ce.Position == (ast.Position{}) {
		ce.Position = pos
		return ce
	}
	return err
}
