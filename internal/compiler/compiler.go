// Package compiler drives a Bread source file through parsing, lowering,
// verification and either emission or execution.
package compiler

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/tliron/commonlog"

	"bread/grammar"
	"bread/internal/ast"
	"bread/internal/config"
	"bread/internal/errors"
	"bread/internal/exec"
	"bread/internal/ir"
	"bread/internal/llvmgen"
)

var log = commonlog.GetLogger("bread.compiler")

// Result carries everything one compilation produced
type Result struct {
	Filename string
	Source   string
	Program  *ast.Program
	Module   *ir.Module
	Warnings []errors.CompilerError
	Elapsed  time.Duration
}

// Compiler runs the pipeline with one set of settings
type Compiler struct {
	cfg *config.Config
}

// New creates a compiler; a nil config means the defaults
func New(cfg *config.Config) *Compiler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Compiler{cfg: cfg}
}

// Config returns the settings in use
func (c *Compiler) Config() *config.Config {
	return c.cfg
}

// CompileFile reads and compiles the file at path
func (c *Compiler) CompileFile(path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return c.Compile(path, string(source))
}

// Compile parses and lowers source. On a compile error the returned result
// still holds whatever the earlier phases produced.
func (c *Compiler) Compile(filename, source string) (*Result, error) {
	start := time.Now()
	result := &Result{Filename: filename, Source: source}
	defer func() { result.Elapsed = time.Since(start) }()

	log.Debugf("parsing %s", filename)
	program, err := grammar.ParseSource(filename, source)
	if err != nil {
		return result, err
	}
	result.Program = program

	log.Debugf("lowering %d functions", len(program.Functions))
	builder := ir.NewBuilder(c.cfg.LoweringOptions())
	module, err := builder.Build(program)
	result.Warnings = builder.Warnings()
	if err != nil {
		return result, err
	}
	result.Module = module

	log.Infof("compiled %s in %s", filename, time.Since(start))
	return result, nil
}

// Emit renders the module in the configured output format
func (c *Compiler) Emit(result *Result) (string, error) {
	if result.Module == nil {
		return "", fmt.Errorf("%s: nothing to emit", result.Filename)
	}
	switch c.cfg.Output.Format {
	case config.FormatLLVM:
		log.Debug("emitting LLVM IR")
		return llvmgen.Emit(result.Module)
	default:
		return ir.Print(result.Module), nil
	}
}

// Run interprets the configured entry function
func (c *Compiler) Run(result *Result) (int32, error) {
	if result.Module == nil {
		return 0, fmt.Errorf("%s: nothing to run", result.Filename)
	}
	vm := exec.New(result.Module, c.cfg.ExecOptions())
	value, err := vm.Run(c.cfg.Exec.Entry)
	log.Debugf("executed %d steps", vm.Steps)
	return value, err
}

// Diagnostics lists the compiler errors and warnings of a run. Errors that
// are not compiler errors are returned as is.
func Diagnostics(result *Result, err error) ([]errors.CompilerError, error) {
	var diags []errors.CompilerError
	if err != nil {
		var ce errors.CompilerError
		if !stderrors.As(err, &ce) {
			return nil, err
		}
		diags = append(diags, ce)
	}
	if result != nil {
		diags = append(diags, result.Warnings...)
	}
	return diags, nil
}
