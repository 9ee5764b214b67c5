package hostfn_test

import (
	"errors"
	"testing"

	"github.com/blackrooksoftware/rookscript/internal/builtins/hostfn"
	"github.com/blackrooksoftware/rookscript/internal/env"
	"github.com/blackrooksoftware/rookscript/internal/resolver"
	"github.com/blackrooksoftware/rookscript/internal/value"
)

// fakeInstance is a minimal resolver.Instance double backed by a plain
// slice, enough to exercise Func.Execute's pop/push convention without a
// real VM.
type fakeInstance struct {
	stack      []value.Value
	closeables map[int]resolver.Closeable
	nextHandle int
	waitType   string
	waitParam  value.Value
}

func newFakeInstance(args ...value.Value) *fakeInstance {
	return &fakeInstance{stack: append([]value.Value{}, args...), closeables: map[int]resolver.Closeable{}}
}

func (f *fakeInstance) PushStackValue(v value.Value) error {
	f.stack = append(f.stack, v)
	return nil
}

func (f *fakeInstance) PopStackValue() (value.Value, error) {
	if len(f.stack) == 0 {
		return value.Value{}, errors.New("fakeInstance: stack underflow")
	}
	v := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return v, nil
}

func (f *fakeInstance) Environment() *env.Environment { return nil }

func (f *fakeInstance) RegisterCloseable(h resolver.Closeable) int {
	f.nextHandle++
	f.closeables[f.nextHandle] = h
	return f.nextHandle
}

func (f *fakeInstance) UnregisterCloseable(handle int) (resolver.Closeable, bool) {
	c, ok := f.closeables[handle]
	delete(f.closeables, handle)
	return c, ok
}

func (f *fakeInstance) LookupCloseable(handle int) (resolver.Closeable, bool) {
	c, ok := f.closeables[handle]
	return c, ok
}

func (f *fakeInstance) Wait(waitType string, param value.Value) {
	f.waitType, f.waitParam = waitType, param
}

func TestFuncPopsArgsInDeclarationOrder(t *testing.T) {
	// args were pushed left-to-right, so the stack holds them with the
	// last parameter on top; Execute must hand Exec back [a, b] in order.
	inst := newFakeInstance(value.NewInteger(1), value.NewInteger(2))
	var seen []value.Value
	fn := hostfn.New("PAIR", 2, "PAIR(a, b)", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		seen = args
		return value.NewInteger(args[0].AsLong() + args[1].AsLong()), nil
	})

	var ret value.Value
	cont, err := fn.Execute(inst, &ret)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !cont {
		t.Fatal("Execute() returned cont=false, want true")
	}
	if len(seen) != 2 || seen[0].AsLong() != 1 || seen[1].AsLong() != 2 {
		t.Fatalf("args = %v, want [1, 2]", seen)
	}
	if ret.AsLong() != 3 {
		t.Errorf("ret = %v, want 3", ret.AsString())
	}
	if len(inst.stack) != 0 {
		t.Errorf("stack after Execute = %v, want empty", inst.stack)
	}
}

func TestNewVoidPushesNothing(t *testing.T) {
	inst := newFakeInstance(value.NewString("x"))
	var called bool
	fn := hostfn.NewVoid("NOTE", 1, "NOTE(x)", func(_ resolver.Instance, args []value.Value) error {
		called = true
		if args[0].AsString() != "x" {
			t.Errorf("args[0] = %q, want %q", args[0].AsString(), "x")
		}
		return nil
	})

	ret := value.NewInteger(99)
	if _, err := fn.Execute(inst, &ret); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !called {
		t.Fatal("exec closure was not called")
	}
	if ret.AsLong() != 99 {
		t.Errorf("ret was overwritten to %v, want unchanged 99 (void function)", ret.AsString())
	}
	if !fn.(*hostfn.Func).IsVoid() {
		t.Error("IsVoid() = false, want true")
	}
}

func TestNewErrorHandlingOptsIn(t *testing.T) {
	fn := hostfn.NewErrorHandling("RISKY", 0, "RISKY()", func(_ resolver.Instance, _ []value.Value) (value.Value, error) {
		return value.NewNull(), errors.New("boom")
	})
	ehf, ok := fn.(resolver.ErrorHandlingFunction)
	if !ok {
		t.Fatal("NewErrorHandling result does not implement resolver.ErrorHandlingFunction")
	}
	if !ehf.HandlesErrors() {
		t.Error("HandlesErrors() = false, want true")
	}

	inst := newFakeInstance()
	var ret value.Value
	_, err := fn.Execute(inst, &ret)
	if err == nil || err.Error() != "boom" {
		t.Errorf("Execute() error = %v, want boom", err)
	}
}

func TestNewNamespaced(t *testing.T) {
	fn := hostfn.NewNamespaced("math", "ABS", 1, "math.ABS(x)", func(_ resolver.Instance, args []value.Value) (value.Value, error) {
		return args[0], nil
	})
	if fn.Namespace() != "math" {
		t.Errorf("Namespace() = %q, want %q", fn.Namespace(), "math")
	}
	if fn.Name() != "ABS" {
		t.Errorf("Name() = %q, want %q", fn.Name(), "ABS")
	}
}
