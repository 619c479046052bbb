package ir

import (
	"fmt"

	"github.com/rickypai/natsort"

	"bread/internal/ast"
	"bread/internal/errors"
)

// binding is one name's state in a frame; a declared but unassigned name has
// init == false.
type binding struct {
	value ValueID
	init  bool
}

var uninitialized = binding{value: NoValue}

type frame struct {
	bindings map[string]binding
	// declared holds the names this frame introduced itself, as opposed to
	// those copied in from the enclosing frame when a branch was entered.
	declared map[string]bool
	// shadowed keeps the inherited binding a declaration hid, including any
	// write the branch made to it before the declaration.
	shadowed map[string]binding
}

func newFrame() *frame {
	return &frame{
		bindings: make(map[string]binding),
		declared: make(map[string]bool),
		shadowed: make(map[string]binding),
	}
}

// Snapshot is the effective set of bindings at the moment a branch was entered
type Snapshot struct {
	depth    int
	bindings map[string]binding
}

// Divergence records a name whose value changed inside a branch
type Divergence struct {
	Name string
	Pre  ValueID
	Post ValueID
}

// Scope is the per-function stack of variable frames
type Scope struct {
	frames []*frame
}

// NewScope creates a scope with a single empty frame
func NewScope() *Scope {
	s := &Scope{}
	s.Reset()
	return s
}

// Reset discards every frame and starts over with one empty frame
func (s *Scope) Reset() {
	s.frames = []*frame{newFrame()}
}

// Depth returns the number of active frames
func (s *Scope) Depth() int {
	return len(s.frames)
}

func (s *Scope) innermost() *frame {
	return s.frames[len(s.frames)-1]
}

func (s *Scope) lookup(name string) (*frame, binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i].bindings[name]; ok {
			return s.frames[i], b, true
		}
	}
	return nil, binding{}, false
}

// Declare introduces name as uninitialized in the innermost frame
func (s *Scope) Declare(name string) error {
	f := s.innermost()
	if f.declared[name] {
		return errors.Redeclaration(name, ast.Position{})
	}
	if inherited, ok := f.bindings[name]; ok {
		f.shadowed[name] = inherited
	}
	f.bindings[name] = uninitialized
	f.declared[name] = true
	return nil
}

// Bind declares name and assigns it in one step, used for parameters
func (s *Scope) Bind(name string, value ValueID) error {
	if err := s.Declare(name); err != nil {
		return err
	}
	s.innermost().bindings[name] = binding{value: value, init: true}
	return nil
}

// Read returns the current value of name
func (s *Scope) Read(name string) (ValueID, error) {
	_, b, ok := s.lookup(name)
	if !ok {
		return NoValue, errors.UndeclaredVariable(name, ast.Position{}, s.Visible())
	}
	if !b.init {
		return NoValue, errors.UseBeforeInit(name, ast.Position{})
	}
	return b.value, nil
}

// Write rebinds name in the frame where it was found
func (s *Scope) Write(name string, value ValueID) error {
	f, _, ok := s.lookup(name)
	if !ok {
		return errors.UndeclaredVariable(name, ast.Position{}, s.Visible())
	}
	f.bindings[name] = binding{value: value, init: true}
	return nil
}

// IsDeclared reports whether name is visible from the innermost frame
func (s *Scope) IsDeclared(name string) bool {
	_, _, ok := s.lookup(name)
	return ok
}

// Visible returns every visible name in natural order
func (s *Scope) Visible() []string {
	seen := make(map[string]bool)
	var names []string
	for i := len(s.frames) - 1; i >= 0; i-- {
		for name := range s.frames[i].bindings {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	natsort.Strings(names)
	return names
}

// EnterBranch pushes a frame holding a copy of the current effective bindings
func (s *Scope) EnterBranch() Snapshot {
	effective := make(map[string]binding)
	for _, f := range s.frames {
		for name, b := range f.bindings {
			effective[name] = b
		}
	}

	branch := newFrame()
	snapshot := make(map[string]binding, len(effective))
	for name, b := range effective {
		branch.bindings[name] = b
		snapshot[name] = b
	}

	s.frames = append(s.frames, branch)
	return Snapshot{depth: len(s.frames), bindings: snapshot}
}

// LeaveBranch pops the branch frame and reports every inherited name whose
// value differs from the snapshot. Names uninitialized on either side are not
// reported. For a name the branch shadowed, the binding it held when the
// shadowing declaration ran is compared.
func (s *Scope) LeaveBranch(snap Snapshot) ([]Divergence, error) {
	if snap.depth != len(s.frames) || len(s.frames) < 2 {
		return nil, fmt.Errorf("scope: leaving branch at depth %d, snapshot taken at depth %d", len(s.frames), snap.depth)
	}

	branch := s.innermost()
	s.frames = s.frames[:len(s.frames)-1]

	outgoing := make(map[string]binding)
	var names []string
	for name, pre := range snap.bindings {
		post, ok := branch.bindings[name]
		if branch.declared[name] {
			post, ok = branch.shadowed[name]
		}
		if !ok || !pre.init || !post.init || pre.value == post.value {
			continue
		}
		outgoing[name] = post
		names = append(names, name)
	}
	natsort.Strings(names)

	divergent := make([]Divergence, len(names))
	for i, name := range names {
		divergent[i] = Divergence{
			Name: name,
			Pre:  snap.bindings[name].value,
			Post: outgoing[name].value,
		}
	}
	return divergent, nil
}
