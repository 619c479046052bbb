package ir

import (
	"sort"

	"bread/internal/ast"
	"bread/internal/errors"
)

// DuplicatePolicy decides what Register does with a name that is already taken
type DuplicatePolicy int

const (
	// DuplicateError rejects the second definition with DuplicateFunction
	DuplicateError DuplicatePolicy = iota
	// DuplicateReplace lets the later definition win
	DuplicateReplace
)

// ParseDuplicatePolicy maps the config spelling onto a policy
func ParseDuplicatePolicy(s string) (DuplicatePolicy, bool) {
	switch s {
	case "error", "":
		return DuplicateError, true
	case "replace":
		return DuplicateReplace, true
	}
	return DuplicateError, false
}

func (p DuplicatePolicy) String() string {
	if p == DuplicateReplace {
		return "replace"
	}
	return "error"
}

type funcEntry struct {
	fn         *Function
	paramCount int
	pos        ast.Position
}

// FunctionTable maps function names to their IR handles for one lowering run
type FunctionTable struct {
	policy  DuplicatePolicy
	entries map[string]*funcEntry
}

// NewFunctionTable creates an empty table with the given duplicate policy
func NewFunctionTable(policy DuplicatePolicy) *FunctionTable {
	return &FunctionTable{
		policy:  policy,
		entries: make(map[string]*funcEntry),
	}
}

// Register creates a prototype for name taking paramCount parameters. Under
// DuplicateReplace a redefinition must keep the parameter count.
func (t *FunctionTable) Register(name string, paramCount int, pos ast.Position) (*Function, error) {
	if existing, exists := t.entries[name]; exists {
		if t.policy == DuplicateError {
			return nil, errors.DuplicateFunction(name, pos)
		}
		if existing.paramCount != paramCount {
			return nil, errors.ReplacementArityChanged(name, existing.paramCount, paramCount, pos)
		}
	}

	fn := &Function{
		Name:       name,
		ReturnType: I32,
		Entry:      NoBlock,
	}
	t.entries[name] = &funcEntry{fn: fn, paramCount: paramCount, pos: pos}
	return fn, nil
}

// Lookup resolves a callee by name
func (t *FunctionTable) Lookup(name string, pos ast.Position) (*Function, error) {
	entry, ok := t.entries[name]
	if !ok {
		return nil, errors.UnknownFunction(name, pos, t.Names())
	}
	return entry.fn, nil
}

// ParamCount returns the registered parameter count of name
func (t *FunctionTable) ParamCount(name string) (int, bool) {
	entry, ok := t.entries[name]
	if !ok {
		return 0, false
	}
	return entry.paramCount, true
}

// Names returns the registered names in sorted order
func (t *FunctionTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered functions
func (t *FunctionTable) Len() int {
	return len(t.entries)
}
