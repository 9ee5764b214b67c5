package vm

import (
	"fmt"

	"github.com/blackrooksoftware/rookscript/internal/bytecode"
	"github.com/blackrooksoftware/rookscript/internal/env"
	"github.com/blackrooksoftware/rookscript/internal/errs"
	"github.com/blackrooksoftware/rookscript/internal/resolver"
	"github.com/blackrooksoftware/rookscript/internal/stack"
	"github.com/blackrooksoftware/rookscript/internal/value"
)

// WaitHandler decides when a Waiting instance may resume (spec §4.6, §9
// "Coroutines / wait"). CanContinue is polled on every Update() call while
// the instance is Waiting; once it reports true the instance returns to
// Running and the step loop resumes in the same Update() call. Otherwise
// Update is a callback hook the handler can use to drive its own external
// polling (e.g. checking whether an I/O operation has completed).
type WaitHandler interface {
	CanContinue(inst *ScriptInstance, waitType string, param value.Value) bool
	Update(inst *ScriptInstance, waitType string, param value.Value)
}

type closeableEntry struct {
	handle int
	h      resolver.Closeable
}

// ScriptInstance is one running execution of a compiled Script (spec §3).
// It is not safe for concurrent use by multiple goroutines; spec §5 permits
// multiple instances to run on separate threads provided they share no
// mutable scope, host object, or resolver state.
type ScriptInstance struct {
	script *bytecode.Script
	stack  *stack.Stack

	waitHandler WaitHandler
	environment *env.Environment
	scopes      []namedScope

	state        State
	waitType     string
	waitParam    value.Value
	result       value.Value

	closeables   []closeableEntry
	nextHandle   int

	commandsExecuted int64
	runawayLimit     int

	// frameNames mirrors the activation stack one entry per pushed frame,
	// holding the label the frame was entered through, so a fatal error
	// can report a call stack (spec §7.2) without Command itself needing
	// to carry source positions.
	frameNames []string
}

type namedScope struct {
	name     string
	resolver resolver.ScopeResolver
}

// New returns a ScriptInstance ready to run script, with the given value-
// and activation-stack capacities. It starts in the Created state.
func New(script *bytecode.Script, valueCap, activationCap int) *ScriptInstance {
	return &ScriptInstance{
		script:       script,
		stack:        stack.New(valueCap, activationCap),
		state:        Created,
		runawayLimit: script.CommandRunawayLimit,
	}
}

// SetWaitHandler installs the embedder's wait handler (spec §6.1 Builder).
func (si *ScriptInstance) SetWaitHandler(h WaitHandler) { si.waitHandler = h }

// SetEnvironment installs the embedder's I/O handles (spec §6.3).
func (si *ScriptInstance) SetEnvironment(e *env.Environment) { si.environment = e }

// AddScope registers a named scope resolver, consulted in registration
// order when a variable is not found in the current local scope (spec §9).
func (si *ScriptInstance) AddScope(name string, r resolver.ScopeResolver) {
	si.scopes = append(si.scopes, namedScope{name: name, resolver: r})
}

// State reports the instance's current lifecycle state.
func (si *ScriptInstance) State() State { return si.state }

// CommandsExecuted reports the cumulative number of commands dispatched
// across this instance's lifetime.
func (si *ScriptInstance) CommandsExecuted() int64 { return si.commandsExecuted }

// Environment implements resolver.Instance.
func (si *ScriptInstance) Environment() *env.Environment { return si.environment }

// PushStackValue implements resolver.Instance.
func (si *ScriptInstance) PushStackValue(v value.Value) error { return si.stack.PushValue(v) }

// PopStackValue implements resolver.Instance.
func (si *ScriptInstance) PopStackValue() (value.Value, error) { return si.stack.PopValue() }

// RegisterCloseable implements resolver.Instance: it records h and returns
// a handle a host function can use later to unregister or look it up
// again, in registration order (spec §4.7).
func (si *ScriptInstance) RegisterCloseable(h resolver.Closeable) int {
	si.nextHandle++
	handle := si.nextHandle
	si.closeables = append(si.closeables, closeableEntry{handle: handle, h: h})
	return handle
}

// UnregisterCloseable implements resolver.Instance: it removes and returns
// the closeable registered under handle without closing it, backing the
// DONOTCLOSE intrinsic (spec §4.7).
func (si *ScriptInstance) UnregisterCloseable(handle int) (resolver.Closeable, bool) {
	for i, e := range si.closeables {
		if e.handle == handle {
			si.closeables = append(si.closeables[:i], si.closeables[i+1:]...)
			return e.h, true
		}
	}
	return nil, false
}

// LookupCloseable implements resolver.Instance: it returns the closeable
// registered under handle without removing it.
func (si *ScriptInstance) LookupCloseable(handle int) (resolver.Closeable, bool) {
	for _, e := range si.closeables {
		if e.handle == handle {
			return e.h, true
		}
	}
	return nil, false
}

// Wait implements resolver.Instance: a host function calls this to place
// the instance into the Waiting state (spec §4.6, §5). Control returns to
// the embedder after the current step completes.
func (si *ScriptInstance) Wait(waitType string, param value.Value) {
	si.state = Waiting
	si.waitType = waitType
	si.waitParam = param
}

// Suspend moves the instance to Suspended from any state (spec §4.6).
func (si *ScriptInstance) Suspend() { si.state = Suspended }

// Resume moves a Suspended instance back to Running.
func (si *ScriptInstance) Resume() {
	if si.state == Suspended {
		si.state = Running
	}
}

// Terminate moves the instance to Ended and drains its closeables in
// reverse-registration order (spec §4.7). Close errors are converted to
// Error values and published to the environment's stderr handle rather
// than propagated, so one failing close never blocks draining the rest.
func (si *ScriptInstance) Terminate() {
	si.state = Ended
	for i := len(si.closeables) - 1; i >= 0; i-- {
		e := si.closeables[i]
		if err := e.h.Close(); err != nil {
			ev := value.NewError("BadClose", err.Error(), err.Error())
			si.publishError(ev)
		}
	}
	si.closeables = nil
}

func (si *ScriptInstance) publishError(e value.Value) {
	if si.environment == nil || si.environment.Stderr == nil {
		return
	}
	fmt.Fprintf(si.environment.Stderr, "%s: %s\n", e.AsError().Type, e.AsError().Message)
}

// Initialize resets the instance's stacks and pushes the starting frame
// for entry, binding args as its parameters (spec §3's ScriptInstance
// lifecycle). entry is matched case-insensitively against the script's
// Entries table (spec §3), since only entries — not script-local functions
// — are callable by the host (GLOSSARY "Function").
func (si *ScriptInstance) Initialize(entry string, args ...value.Value) error {
	info, ok := si.script.Entries.Get(entry)
	if !ok {
		return errs.NewScriptExecutionError("no such entry %q", entry)
	}
	if len(args) != info.ParamCount {
		return errs.NewScriptExecutionError("entry %q expects %d argument(s), got %d", entry, info.ParamCount, len(args))
	}

	si.stack.Reset()
	si.result = value.NewNull()
	si.commandsExecuted = 0
	si.frameNames = si.frameNames[:0]

	for _, a := range args {
		if err := si.stack.PushValue(a); err != nil {
			return err
		}
	}
	if err := si.stack.PushFrame(info.Index); err != nil {
		return err
	}
	si.frameNames = append(si.frameNames, entry)

	si.state = Init
	return nil
}

// captureTrace snapshots the current call stack as an errs.StackTrace,
// oldest frame first, for attaching to a fatal error (spec §7.2).
func (si *ScriptInstance) captureTrace() errs.StackTrace {
	trace := make(errs.StackTrace, len(si.frameNames))
	for i, name := range si.frameNames {
		trace[i] = errs.NewStackFrame(name, "", nil)
	}
	return trace
}

// Result returns the value the most recently completed entry call
// returned.
func (si *ScriptInstance) Result() value.Value { return si.result }

// Call runs Initialize followed by Update() to completion in one call, for
// embedders that don't need cooperative suspension (spec §6.1's
// call(entry, args…)). It returns once the instance reaches Ended, or an
// error if Update reports a fatal failure.
func (si *ScriptInstance) Call(entry string, args ...value.Value) (value.Value, error) {
	if err := si.Initialize(entry, args...); err != nil {
		return value.NewNull(), err
	}
	for si.state != Ended {
		if err := si.Update(); err != nil {
			return value.NewNull(), err
		}
	}
	return si.result, nil
}
