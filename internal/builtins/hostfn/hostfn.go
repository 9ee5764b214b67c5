// Package hostfn adapts plain Go closures to the resolver.HostFunction
// interface, so each builtin bundle (corelib, jsonlib, iolib) only needs
// to supply a name, arity, and evaluation logic rather than hand-writing
// the self-popping parameter convention of spec §6.1 for every function.
package hostfn

import (
	"github.com/blackrooksoftware/rookscript/internal/resolver"
	"github.com/blackrooksoftware/rookscript/internal/value"
)

// Func adapts a closure that returns a Value to resolver.HostFunction.
type Func struct {
	FnName       string
	FnNamespace  string
	FnParamCount int
	FnVoid       bool
	FnUsage      string
	Exec         func(inst resolver.Instance, args []value.Value) (value.Value, error)

	// ErrorHandling, when true, makes this function satisfy
	// resolver.ErrorHandlingFunction: an error returned from Exec is
	// converted to a pushed Error value instead of aborting the instance
	// (spec §7).
	ErrorHandling bool
}

func (f *Func) Name() string        { return f.FnName }
func (f *Func) Namespace() string   { return f.FnNamespace }
func (f *Func) ParameterCount() int { return f.FnParamCount }
func (f *Func) IsVoid() bool        { return f.FnVoid }
func (f *Func) Usage() string       { return f.FnUsage }

func (f *Func) HandlesErrors() bool { return f.ErrorHandling }

// Execute pops ParameterCount() arguments off the instance's value stack
// in the reverse order they were pushed (the last-pushed argument is
// popped first, per spec §6.1), then runs Exec.
func (f *Func) Execute(inst resolver.Instance, returnValue *value.Value) (bool, error) {
	args := make([]value.Value, f.FnParamCount)
	for i := f.FnParamCount - 1; i >= 0; i-- {
		v, err := inst.PopStackValue()
		if err != nil {
			return false, err
		}
		args[i] = v
	}
	out, err := f.Exec(inst, args)
	if err != nil {
		return false, err
	}
	if !f.FnVoid {
		*returnValue = out
	}
	return true, nil
}

// New returns a non-void HostFunction.
func New(name string, paramCount int, usage string, exec func(resolver.Instance, []value.Value) (value.Value, error)) resolver.HostFunction {
	return &Func{FnName: name, FnParamCount: paramCount, FnUsage: usage, Exec: exec}
}

// NewVoid returns a void HostFunction (spec §6.1: "if void, nothing is
// pushed").
func NewVoid(name string, paramCount int, usage string, exec func(resolver.Instance, []value.Value) error) resolver.HostFunction {
	return &Func{
		FnName: name, FnParamCount: paramCount, FnVoid: true, FnUsage: usage,
		Exec: func(inst resolver.Instance, args []value.Value) (value.Value, error) {
			return value.NewNull(), exec(inst, args)
		},
	}
}

// NewNamespaced returns a non-void HostFunction registered under ns.
func NewNamespaced(ns, name string, paramCount int, usage string, exec func(resolver.Instance, []value.Value) (value.Value, error)) resolver.HostFunction {
	return &Func{FnName: name, FnNamespace: ns, FnParamCount: paramCount, FnUsage: usage, Exec: exec}
}

// NewErrorHandling returns a non-void HostFunction that opts into spec
// §7's recoverable-error conversion: an error from exec becomes a pushed
// Error value instead of a fatal ScriptExecutionException.
func NewErrorHandling(name string, paramCount int, usage string, exec func(resolver.Instance, []value.Value) (value.Value, error)) resolver.HostFunction {
	return &Func{FnName: name, FnParamCount: paramCount, FnUsage: usage, Exec: exec, ErrorHandling: true}
}
