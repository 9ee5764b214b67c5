// Package resolver declares the host-function and scope resolver
// contracts of spec §6.1 and §9 ("Scope lookup"), plus the minimal view of
// a running ScriptInstance (package vm) that a host function needs. These
// are interfaces, not implementations, so that internal/bytecode can carry
// a HostFunctionResolver field on Script without importing internal/vm,
// and internal/vm can implement Instance without internal/resolver
// importing it back.
package resolver

import (
	"github.com/blackrooksoftware/rookscript/internal/env"
	"github.com/blackrooksoftware/rookscript/internal/value"
)

// Closeable is a host-opened resource registered on an instance so it can
// be drained on terminate (spec §4.7).
type Closeable interface {
	Close() error
}

// Instance is the subset of vm.ScriptInstance a HostFunction's Execute
// method may use.
type Instance interface {
	PushStackValue(v value.Value) error
	PopStackValue() (value.Value, error)
	Environment() *env.Environment
	RegisterCloseable(h Closeable) int
	UnregisterCloseable(handle int) (Closeable, bool)
	LookupCloseable(handle int) (Closeable, bool)
	Wait(waitType string, param value.Value)
}

// HostFunction implements spec §6.1's host function contract: a name, a
// fixed parameter count, an execute hook, and a usage string for
// diagnostics. Execute pops its own parameters from the instance's value
// stack (in reverse order: the last pushed parameter is popped first),
// writes the return value into returnValue if the function is not void,
// and returns false to halt the VM's step loop (used by e.g. an explicit
// script-level "exit").
type HostFunction interface {
	Name() string
	Namespace() string
	ParameterCount() int
	IsVoid() bool
	Usage() string
	Execute(instance Instance, returnValue *value.Value) (bool, error)
}

// HostFunctionResolver looks up a HostFunction by optional namespace and
// name, both matched case-insensitively (spec §3).
type HostFunctionResolver interface {
	Resolve(namespace, name string) (HostFunction, bool)
}

// ErrorHandlingFunction is an optional capability a HostFunction implements
// to opt into spec §7's recoverable-error path: if HandlesErrors returns
// true, an error returned from Execute is converted into a pushed Error
// Value instead of aborting the instance with a fatal exception.
type ErrorHandlingFunction interface {
	HandlesErrors() bool
}

// ScopeResolver is a named, reader/writer-addressable bag of Values
// surfacing embedder state to the script (spec §9 "Scope"), consulted
// when a variable is not present in the current local scope.
type ScopeResolver interface {
	GetValue(name string) (value.Value, bool)
	SetValue(name string, v value.Value)
	ContainsValue(name string) bool
	IsReadOnly(name string) bool
}
