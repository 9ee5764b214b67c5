// Package stack implements the Instance Stack of spec §4.2: three
// parallel, fixed-capacity stacks an instance advances together — a
// value stack, an activation (program-counter) stack, and a per-frame
// local scope stack. Slots are pre-allocated and reused; popping a value
// slot nulls it so a held ObjectRef can be released (spec §4.2's final
// bullet).
package stack

import (
	"github.com/blackrooksoftware/rookscript/internal/errs"
	"github.com/blackrooksoftware/rookscript/internal/value"
	"github.com/blackrooksoftware/rookscript/pkg/ident"
)

// Stack is the bounded, three-stack execution state of one ScriptInstance.
type Stack struct {
	values    []value.Value
	valueTop  int
	valueCap  int

	activations []int
	actTop      int
	actCap      int

	scopes []*ident.Map[value.Value]
}

// New allocates a Stack with the given value-stack and
// activation/scope-stack capacities (spec §4.2's V and A).
func New(valueCap, activationCap int) *Stack {
	return &Stack{
		values:      make([]value.Value, valueCap),
		valueCap:    valueCap,
		activations: make([]int, activationCap),
		actCap:      activationCap,
		scopes:      make([]*ident.Map[value.Value], activationCap),
	}
}

// Reset clears both stacks to empty, as initialize() does before pushing
// the starting frame (spec §3's ScriptInstance lifecycle).
func (s *Stack) Reset() {
	for i := 0; i < s.valueTop; i++ {
		s.values[i] = value.Value{}
	}
	s.valueTop = 0
	for i := 0; i < s.actTop; i++ {
		s.scopes[i] = nil
	}
	s.actTop = 0
}

// PushValue copies v into the next value slot.
func (s *Stack) PushValue(v value.Value) error {
	if s.valueTop >= s.valueCap {
		return errs.NewValueStackOverflow(s.valueCap)
	}
	s.values[s.valueTop] = v
	s.valueTop++
	return nil
}

// PopValue removes and returns the top value, nulling its slot.
func (s *Stack) PopValue() (value.Value, error) {
	if s.valueTop == 0 {
		return value.Value{}, errs.NewValueStackUnderflow()
	}
	s.valueTop--
	v := s.values[s.valueTop]
	s.values[s.valueTop] = value.Value{}
	return v, nil
}

// PeekValue returns the top value without removing it.
func (s *Stack) PeekValue() (value.Value, error) {
	if s.valueTop == 0 {
		return value.Value{}, errs.NewValueStackUnderflow()
	}
	return s.values[s.valueTop-1], nil
}

// ValueDepth reports how many values are currently on the value stack.
func (s *Stack) ValueDepth() int { return s.valueTop }

// PushFrame increments the activation and scope stacks together: a new
// current PC and a new, empty local scope.
func (s *Stack) PushFrame(pc int) error {
	if s.actTop >= s.actCap {
		return errs.NewActivationStackOverflow(s.actCap)
	}
	s.activations[s.actTop] = pc
	s.scopes[s.actTop] = ident.NewMap[value.Value]()
	s.actTop++
	return nil
}

// PopFrame decrements both the activation and scope stacks.
func (s *Stack) PopFrame() error {
	if s.actTop == 0 {
		return errs.NewActivationStackUnderflow()
	}
	s.actTop--
	s.scopes[s.actTop] = nil
	return nil
}

// FrameDepth reports how many activation frames are currently pushed.
func (s *Stack) FrameDepth() int { return s.actTop }

// PC returns the current frame's program counter.
func (s *Stack) PC() (int, error) {
	if s.actTop == 0 {
		return 0, errs.NewActivationStackUnderflow()
	}
	return s.activations[s.actTop-1], nil
}

// SetPC updates the current frame's program counter.
func (s *Stack) SetPC(pc int) error {
	if s.actTop == 0 {
		return errs.NewActivationStackUnderflow()
	}
	s.activations[s.actTop-1] = pc
	return nil
}

// GetValue consults the topmost scope only (spec §4.2).
func (s *Stack) GetValue(name string) (value.Value, bool) {
	if s.actTop == 0 {
		return value.Value{}, false
	}
	return s.scopes[s.actTop-1].Get(name)
}

// SetValue updates name in place if the top scope already has it, else
// inserts it there (spec §4.2).
func (s *Stack) SetValue(name string, v value.Value) {
	if s.actTop == 0 {
		return
	}
	s.scopes[s.actTop-1].Set(name, v)
}

// ContainsLocal reports whether name is bound in the top scope.
func (s *Stack) ContainsLocal(name string) bool {
	if s.actTop == 0 {
		return false
	}
	return s.scopes[s.actTop-1].Has(name)
}
