// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"bread/grammar"
	"bread/internal/compiler"
	"bread/internal/config"
	"bread/internal/errors"
	"bread/internal/exec"
	"bread/internal/ir"
	"bread/internal/llvmgen"
)

const PROMPT = ">> "

// entryName is the function each evaluated expression is wrapped in
const entryName = "replmain"

const source = "<repl>"

// Session keeps the functions defined so far and the last lowered module
type Session struct {
	cfg      *config.Config
	compiler *compiler.Compiler
	defs     []string
	last     *ir.Module
}

// NewSession creates an empty session; a nil config means the defaults
func NewSession(cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Session{cfg: cfg, compiler: compiler.New(cfg)}
}

// Eval handles one line of input: a command, function definitions or an
// expression to evaluate. The returned text is ready to print.
func (s *Session) Eval(line string) (string, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return "", nil
	case strings.HasPrefix(line, ":"):
		return s.command(line)
	}

	if program, err := grammar.ParseSource(source, line); err == nil && len(program.Functions) > 0 {
		return s.define(line, len(program.Functions))
	}
	return s.evaluate(line)
}

func (s *Session) define(text string, count int) (string, error) {
	if _, err := s.compile(append(s.defs[:len(s.defs):len(s.defs)], text)); err != nil {
		return "", err
	}
	s.defs = append(s.defs, text)
	return fmt.Sprintf("defined %d function(s)", count), nil
}

func (s *Session) evaluate(expr string) (string, error) {
	expr = strings.TrimSuffix(expr, ";")
	wrapped := fmt.Sprintf("%s() { return %s; }", entryName, expr)

	m, err := s.compile(append(s.defs[:len(s.defs):len(s.defs)], wrapped))
	if err != nil {
		return "", err
	}
	value, err := exec.New(m, s.cfg.ExecOptions()).Run(entryName)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(value), nil
}

func (s *Session) compile(parts []string) (*ir.Module, error) {
	result, err := s.compiler.Compile(source, strings.Join(parts, "\n"))
	if err != nil {
		return nil, err
	}
	s.last = result.Module
	return result.Module, nil
}

func (s *Session) command(line string) (string, error) {
	switch line {
	case ":help":
		return strings.Join([]string{
			":ir     print the IR of the last compiled input",
			":llvm   print the LLVM IR of the last compiled input",
			":defs   list the definitions entered so far",
			":reset  forget all definitions",
			":quit   leave the REPL",
		}, "\n"), nil
	case ":ir":
		if s.last == nil {
			return "", fmt.Errorf("nothing compiled yet")
		}
		return strings.TrimRight(ir.Print(s.last), "\n"), nil
	case ":llvm":
		if s.last == nil {
			return "", fmt.Errorf("nothing compiled yet")
		}
		text, err := llvmgen.Emit(s.last)
		return strings.TrimRight(text, "\n"), err
	case ":defs":
		return strings.Join(s.defs, "\n"), nil
	case ":reset":
		s.defs = nil
		s.last = nil
		return "definitions cleared", nil
	}
	return "", fmt.Errorf("unknown command %s (try :help)", line)
}

// Start reads lines from in until EOF or :quit
func Start(in io.Reader, out io.Writer, cfg *config.Config) {
	scanner := bufio.NewScanner(in)
	session := NewSession(cfg)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == ":quit" {
			return
		}

		text, err := session.Eval(line)
		if err != nil {
			fmt.Fprintln(out, color.RedString("%s", describe(err)))
			continue
		}
		if text != "" {
			fmt.Fprintln(out, text)
		}
	}
}

// describe drops the line and column, which point into the wrapped input
func describe(err error) string {
	var ce errors.CompilerError
	if stderrors.As(err, &ce) {
		return fmt.Sprintf("%s[%s]: %s", ce.Level, ce.Code, ce.Message)
	}
	return err.Error()
}
