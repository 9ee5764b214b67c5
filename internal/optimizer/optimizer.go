// Package optimizer implements the peephole pass of spec §4.5: a single
// forward pass over a freshly compiled Script that folds literal-operand
// chains, collapses a push/pop pair on a variable into a direct SET, and
// drops unreachable code and no-op jumps. Because jump and call operands
// are symbolic label names (bytecode.Command.Label), folding a run of
// commands down to fewer commands never requires rewriting an operand —
// only the label tables need to be remapped onto the shorter command
// list.
package optimizer

import (
	"github.com/blackrooksoftware/rookscript/internal/bytecode"
	"github.com/blackrooksoftware/rookscript/internal/value"
	"github.com/blackrooksoftware/rookscript/pkg/ident"
)

// state names the peephole state machine's five states (spec §4.5).
type state int

const (
	stInit state = iota
	stPushLit1
	stPushLit2
	stPushVar1
	stDeadCode
)

type pendingLit struct {
	val value.Value
	idx int
}

type pendingVar struct {
	name string
	idx  int
	set  bool
}

// run carries the state machine's mutable working set across one forward
// pass. origOfNew[i] is the original command index that produced the i'th
// emitted command, used afterward to remap labels.
type run struct {
	script *bytecode.Script

	st      state
	literal []pendingLit
	variable pendingVar

	out       []bytecode.Command
	origOfNew []int
}

// Optimize runs the peephole pass over script in place and returns it.
// script.Commands is replaced with the folded/pruned command list and
// script.Labels/LabelsByIndex are remapped to match.
func Optimize(script *bytecode.Script) *bytecode.Script {
	r := &run{script: script, st: stInit}

	for i, cmd := range script.Commands {
		if labels, ok := script.LabelsByIndex[i]; ok && len(labels) > 0 {
			r.flushAll()
			r.st = stInit
		}

		if r.st == stDeadCode {
			continue
		}

		r.step(i, cmd)
	}
	r.flushAll()

	r.remapLabels()
	script.Commands = r.out
	return script
}

// step dispatches cmd according to the current state, possibly emitting,
// buffering, or folding it.
func (r *run) step(i int, cmd bytecode.Command) {
	switch r.st {
	case stPushLit1:
		r.stepPushLit1(i, cmd)
	case stPushLit2:
		r.stepPushLitN(i, cmd)
	case stPushVar1:
		r.stepPushVar1(i, cmd)
	default:
		r.stepInit(i, cmd)
	}
}

func (r *run) stepInit(i int, cmd bytecode.Command) {
	switch {
	case cmd.Op == bytecode.PUSH:
		r.literal = []pendingLit{{val: cmd.Literal(), idx: i}}
		r.st = stPushLit1
	case cmd.Op == bytecode.PUSH_VARIABLE:
		r.variable = pendingVar{name: cmd.Name(), idx: i, set: true}
		r.st = stPushVar1
	case cmd.Op == bytecode.RETURN:
		r.emit(cmd, i)
		r.st = stDeadCode
	case cmd.Op == bytecode.JUMP && r.isRedundantJump(cmd, i):
		// dropped: falling through already reaches the target
	default:
		r.emit(cmd, i)
	}
}

func (r *run) stepPushLit1(i int, cmd bytecode.Command) {
	top := r.literal[0]
	switch {
	case cmd.Op.IsUnary():
		r.literal[0] = pendingLit{val: applyUnary(cmd.Op, top.val), idx: i}
	case cmd.Op == bytecode.PUSH:
		r.literal = append(r.literal, pendingLit{val: cmd.Literal(), idx: i})
		r.st = stPushLit2
	case cmd.Op == bytecode.PUSH_VARIABLE:
		r.flushLiterals()
		r.variable = pendingVar{name: cmd.Name(), idx: i, set: true}
		r.st = stPushVar1
	case cmd.Op == bytecode.POP_VARIABLE:
		r.emit(bytecode.New2(bytecode.SET, cmd.Name(), top.val), i)
		r.literal = nil
		r.st = stInit
	default:
		r.flushLiterals()
		r.reprocessAsInit(i, cmd)
	}
}

func (r *run) stepPushLitN(i int, cmd bytecode.Command) {
	n := len(r.literal)
	switch {
	case cmd.Op.IsUnary():
		top := r.literal[n-1]
		r.literal[n-1] = pendingLit{val: applyUnary(cmd.Op, top.val), idx: i}
	case cmd.Op.IsBinary():
		a, b := r.literal[n-2], r.literal[n-1]
		folded := applyBinary(cmd.Op, a.val, b.val)
		r.literal = append(r.literal[:n-2], pendingLit{val: folded, idx: i})
		if len(r.literal) == 1 {
			r.st = stPushLit1
		}
	case cmd.Op == bytecode.PUSH:
		r.literal = append(r.literal, pendingLit{val: cmd.Literal(), idx: i})
	default:
		r.flushLiterals()
		r.reprocessAsInit(i, cmd)
	}
}

func (r *run) stepPushVar1(i int, cmd bytecode.Command) {
	switch {
	case cmd.Op == bytecode.POP_VARIABLE:
		r.emit(bytecode.New2(bytecode.SET_VARIABLE, cmd.Name(), r.variable.name), i)
		r.variable = pendingVar{}
		r.st = stInit
	default:
		r.flushVar()
		r.reprocessAsInit(i, cmd)
	}
}

// reprocessAsInit handles a command that caused a flush: it is processed
// exactly as if encountered fresh in the Init state, so e.g. a PUSH
// literal right after a flushed PUSH_VARIABLE still starts a new literal
// fold chain instead of being emitted verbatim.
func (r *run) reprocessAsInit(i int, cmd bytecode.Command) {
	r.st = stInit
	r.stepInit(i, cmd)
}

// isRedundantJump reports whether cmd is a JUMP whose target is exactly
// the next original command index, i.e. a no-op.
func (r *run) isRedundantJump(cmd bytecode.Command, i int) bool {
	target, ok := r.script.ResolveLabel(cmd.Label())
	if !ok {
		return false
	}
	return target == i+1
}

func (r *run) emit(cmd bytecode.Command, origIdx int) {
	r.out = append(r.out, cmd)
	r.origOfNew = append(r.origOfNew, origIdx)
}

func (r *run) flushLiterals() {
	for _, p := range r.literal {
		r.emit(bytecode.New1(bytecode.PUSH, p.val), p.idx)
	}
	r.literal = nil
}

func (r *run) flushVar() {
	if r.variable.set {
		r.emit(bytecode.New1(bytecode.PUSH_VARIABLE, r.variable.name), r.variable.idx)
		r.variable = pendingVar{}
	}
}

func (r *run) flushAll() {
	r.flushLiterals()
	r.flushVar()
}

// remapLabels rebuilds Labels/LabelsByIndex against the new, shorter
// command list. Any label that pointed into an index that got folded away
// now resolves to the nearest surviving command at or after it (the
// redundant-jump and dead-code cases always retarget this way, same as
// falling through to the next live instruction would).
func (r *run) remapLabels() {
	n := len(r.script.Commands)
	oldToNew := make([]int, n+1)
	newIdx := 0
	for old := 0; old <= n; old++ {
		for newIdx < len(r.origOfNew) && r.origOfNew[newIdx] < old {
			newIdx++
		}
		if newIdx < len(r.origOfNew) {
			oldToNew[old] = newIdx
		} else {
			oldToNew[old] = len(r.out)
		}
	}

	newLabels := ident.NewMap[int]()
	r.script.Labels.Range(func(name string, idx int) bool {
		newLabels.Set(name, oldToNew[idx])
		return true
	})

	newByIndex := make(map[int][]string, newLabels.Len())
	for _, name := range newLabels.Keys() {
		idx, _ := newLabels.Get(name)
		newByIndex[idx] = append(newByIndex[idx], name)
	}

	r.script.Labels = newLabels
	r.script.LabelsByIndex = newByIndex
}

// applyUnary folds a unary opcode over a literal Value using the exact
// runtime semantics of spec §4.1, so a folded constant always matches
// whatever the VM would have computed at the same point.
func applyUnary(op bytecode.Opcode, v value.Value) value.Value {
	switch op {
	case bytecode.ABSOLUTE:
		return value.Absolute(v)
	case bytecode.NEGATE:
		return value.Negate(v)
	case bytecode.NOT:
		return value.Not(v)
	case bytecode.LOGICAL_NOT:
		return value.LogicalNot(v)
	default:
		return v
	}
}

// applyBinary folds a binary opcode over two literal Values, again
// reusing the runtime's own value package so folding and execution agree
// bit-for-bit.
func applyBinary(op bytecode.Opcode, a, b value.Value) value.Value {
	switch op {
	case bytecode.ADD:
		return value.Add(a, b)
	case bytecode.SUBTRACT:
		return value.Subtract(a, b)
	case bytecode.MULTIPLY:
		return value.Multiply(a, b)
	case bytecode.DIVIDE:
		return value.Divide(a, b)
	case bytecode.MODULO:
		return value.Modulo(a, b)
	case bytecode.AND:
		return value.BitAnd(a, b)
	case bytecode.OR:
		return value.BitOr(a, b)
	case bytecode.XOR:
		return value.BitXor(a, b)
	case bytecode.LOGICAL_AND:
		return value.LogicalAnd(a, b)
	case bytecode.LOGICAL_OR:
		return value.LogicalOr(a, b)
	case bytecode.LEFT_SHIFT:
		return value.ShiftLeft(a, b)
	case bytecode.RIGHT_SHIFT:
		return value.ShiftRight(a, b)
	case bytecode.RIGHT_SHIFT_PADDED:
		return value.ShiftRightUnsigned(a, b)
	case bytecode.LESS:
		return value.NewBoolean(value.Less(a, b))
	case bytecode.LESS_OR_EQUAL:
		return value.NewBoolean(value.LessOrEqual(a, b))
	case bytecode.GREATER:
		return value.NewBoolean(value.Greater(a, b))
	case bytecode.GREATER_OR_EQUAL:
		return value.NewBoolean(value.GreaterOrEqual(a, b))
	case bytecode.EQUAL:
		return value.NewBoolean(value.Equal(a, b))
	case bytecode.NOT_EQUAL:
		return value.NewBoolean(value.NotEqual(a, b))
	case bytecode.STRICT_EQUAL:
		return value.NewBoolean(value.StrictEqual(a, b))
	case bytecode.STRICT_NOT_EQUAL:
		return value.NewBoolean(value.StrictNotEqual(a, b))
	default:
		return a
	}
}
