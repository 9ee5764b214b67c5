package vm

import (
	"github.com/blackrooksoftware/rookscript/internal/bytecode"
	"github.com/blackrooksoftware/rookscript/internal/errs"
	"github.com/blackrooksoftware/rookscript/internal/resolver"
	"github.com/blackrooksoftware/rookscript/internal/value"
)

// Update advances execution to the next suspension point (spec §4.6): it
// runs the step loop while Running, stopping on wait/suspend/terminate or
// on the runaway guard firing. Called while Waiting, it first consults the
// wait handler's CanContinue gate before doing anything else.
func (si *ScriptInstance) Update() error {
	if si.state == Waiting {
		if si.waitHandler == nil {
			return nil
		}
		if !si.waitHandler.CanContinue(si, si.waitType, si.waitParam) {
			si.waitHandler.Update(si, si.waitType, si.waitParam)
			return nil
		}
		si.state = Running
	}

	if si.state == Init {
		si.state = Running
	}
	if si.state != Running {
		return nil
	}

	var steps int
	for si.state == Running {
		if si.runawayLimit > 0 && steps >= si.runawayLimit {
			err := errs.NewScriptExecutionError("runaway: execution exceeded %d commands without suspending", si.runawayLimit)
			err.Trace = si.captureTrace()
			si.Terminate()
			return err
		}
		if err := si.step(); err != nil {
			si.Terminate()
			return si.attachTrace(err)
		}
		steps++
		si.commandsExecuted++
	}
	return nil
}

// attachTrace records the call stack at the moment a fatal error occurred
// (spec §7.2), so an embedder logging ScriptExecutionError/ScriptStackError
// can report which entry/function chain was active.
func (si *ScriptInstance) attachTrace(err error) error {
	switch e := err.(type) {
	case *errs.ScriptExecutionError:
		e.Trace = si.captureTrace()
	case *errs.ScriptStackError:
		e.Trace = si.captureTrace()
	}
	return err
}

// step fetches and dispatches the command at the current frame's PC,
// advancing PC before dispatch so a taken jump or pushed frame overwrites
// the default fall-through target (spec §4.6's "fetch, advance, dispatch").
func (si *ScriptInstance) step() error {
	pc, err := si.stack.PC()
	if err != nil {
		return err
	}
	if pc < 0 || pc >= len(si.script.Commands) {
		return errs.NewScriptExecutionError("program counter %d out of range", pc)
	}
	cmd := si.script.Commands[pc]
	if err := si.stack.SetPC(pc + 1); err != nil {
		return err
	}
	return si.dispatch(cmd)
}

func (si *ScriptInstance) dispatch(cmd bytecode.Command) error {
	switch cmd.Op {
	case bytecode.NOOP:
		return nil

	case bytecode.PUSH:
		return si.stack.PushValue(cmd.Literal())
	case bytecode.POP:
		_, err := si.stack.PopValue()
		return err

	case bytecode.PUSH_VARIABLE:
		return si.stack.PushValue(si.readVariable(cmd.Name()))
	case bytecode.POP_VARIABLE:
		v, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		return si.writeVariable(cmd.Name(), v)
	case bytecode.SET:
		return si.writeVariable(cmd.Name(), cmd.SetValue())
	case bytecode.SET_VARIABLE:
		src, _ := cmd.Operand2.(string)
		return si.writeVariable(cmd.Name(), si.readVariable(src))

	case bytecode.JUMP:
		return si.jumpTo(cmd.Label())
	case bytecode.JUMP_TRUE:
		cond, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		if cond.IsTruthy() {
			return si.jumpTo(cmd.Label())
		}
		return nil
	case bytecode.JUMP_FALSE:
		cond, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		if !cond.IsTruthy() {
			return si.jumpTo(cmd.Label())
		}
		return nil
	case bytecode.JUMP_BRANCH:
		cond, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		if cond.IsTruthy() {
			return si.jumpTo(cmd.Label())
		}
		return si.jumpTo(cmd.FalseLabel())

	case bytecode.CALL:
		target, ok := si.script.ResolveLabel(cmd.Label())
		if !ok {
			return errs.NewScriptExecutionError("call to undefined label %q", cmd.Label())
		}
		if err := si.stack.PushFrame(target); err != nil {
			return err
		}
		si.frameNames = append(si.frameNames, cmd.Label())
		return nil
	case bytecode.CALL_HOST:
		return si.callHost(cmd)
	case bytecode.RETURN:
		return si.doReturn()

	case bytecode.PUSH_LIST_NEW:
		return si.stack.PushValue(value.NewList(value.NewListValue()))
	case bytecode.PUSH_LIST_INIT:
		return si.pushListInit(cmd.Count())
	case bytecode.PUSH_LIST_INDEX:
		idx, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		container, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		return si.stack.PushValue(indexGet(container, idx))
	case bytecode.PUSH_LIST_INDEX_CONTENTS:
		idx, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		container, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		cur := indexGet(container, idx)
		if err := si.stack.PushValue(container); err != nil {
			return err
		}
		if err := si.stack.PushValue(idx); err != nil {
			return err
		}
		return si.stack.PushValue(cur)
	case bytecode.POP_LIST:
		v, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		idx, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		container, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		indexSet(container, idx, v)
		return nil

	case bytecode.ABSOLUTE, bytecode.NEGATE, bytecode.NOT, bytecode.LOGICAL_NOT:
		v, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		return si.stack.PushValue(applyUnary(cmd.Op, v))

	default:
		if cmd.Op.IsBinary() {
			b, err := si.stack.PopValue()
			if err != nil {
				return err
			}
			a, err := si.stack.PopValue()
			if err != nil {
				return err
			}
			return si.stack.PushValue(applyBinary(cmd.Op, a, b))
		}
		return errs.NewScriptExecutionError("unimplemented opcode %s", cmd.Op)
	}
}

func (si *ScriptInstance) jumpTo(label string) error {
	target, ok := si.script.ResolveLabel(label)
	if !ok {
		return errs.NewScriptExecutionError("jump to undefined label %q", label)
	}
	return si.stack.SetPC(target)
}

// doReturn implements spec §4.6's RETURN: pop the return value, pop the
// activation frame, and either conclude the instance (the popped frame was
// the last one) or push the value back for the caller.
func (si *ScriptInstance) doReturn() error {
	v, err := si.stack.PopValue()
	if err != nil {
		return err
	}
	if err := si.stack.PopFrame(); err != nil {
		return err
	}
	if n := len(si.frameNames); n > 0 {
		si.frameNames = si.frameNames[:n-1]
	}
	if si.stack.FrameDepth() == 0 {
		si.result = v
		si.Terminate()
		return nil
	}
	return si.stack.PushValue(v)
}

func (si *ScriptInstance) pushListInit(n int) error {
	elems := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := si.stack.PopValue()
		if err != nil {
			return err
		}
		elems[i] = v
	}
	return si.stack.PushValue(value.NewList(value.NewListFrom(elems)))
}

func (si *ScriptInstance) callHost(cmd bytecode.Command) error {
	name := cmd.Name()
	namespace := cmd.Namespace()
	if si.script.HostFunctionResolver == nil {
		return errs.NewScriptExecutionError("no host function resolver installed for %q", name)
	}
	hf, ok := si.script.HostFunctionResolver.Resolve(namespace, name)
	if !ok {
		return errs.NewScriptExecutionError("unknown host function %q", name)
	}

	var ret value.Value
	cont, err := hf.Execute(si, &ret)
	if err != nil {
		if eh, ok := hf.(resolver.ErrorHandlingFunction); ok && eh.HandlesErrors() {
			return si.stack.PushValue(value.NewError("HostError", err.Error(), err.Error()))
		}
		return errs.WrapScriptExecutionError(err, "host function %q failed", name)
	}
	if !hf.IsVoid() {
		if err := si.stack.PushValue(ret); err != nil {
			return err
		}
	}
	if !cont {
		si.state = Ended
	}
	return nil
}

// readVariable resolves name in the current local scope, then the
// registered scope resolvers in order, per spec §9. An unresolved name
// reads as Null rather than failing: variables spring into existence on
// first assignment, so reading one that was never set is not an error.
func (si *ScriptInstance) readVariable(name string) value.Value {
	if v, ok := si.stack.GetValue(name); ok {
		return v
	}
	for _, sc := range si.scopes {
		if v, ok := sc.resolver.GetValue(name); ok {
			return v
		}
	}
	return value.NewNull()
}

// writeVariable resolves name the same way as readVariable, but a name
// found in a scope resolver that is read-only is a fatal error (spec §9).
// A name found nowhere becomes a new local.
func (si *ScriptInstance) writeVariable(name string, v value.Value) error {
	if si.stack.ContainsLocal(name) {
		si.stack.SetValue(name, v)
		return nil
	}
	for _, sc := range si.scopes {
		if sc.resolver.ContainsValue(name) {
			if sc.resolver.IsReadOnly(name) {
				return errs.NewScriptExecutionError("cannot assign to read-only variable %q in scope %q", name, sc.name)
			}
			sc.resolver.SetValue(name, v)
			return nil
		}
	}
	si.stack.SetValue(name, v)
	return nil
}
