package corelib_test

import (
	"testing"

	"github.com/blackrooksoftware/rookscript/internal/builder"
	"github.com/blackrooksoftware/rookscript/internal/builtins/corelib"
	"github.com/blackrooksoftware/rookscript/internal/value"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	inst, err := builder.New().WithSource(src).WithHostResolver(corelib.New()).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	result, err := inst.Call("main")
	if err != nil {
		t.Fatalf("Call(main) error: %v", err)
	}
	return result
}

func TestLength(t *testing.T) {
	if got := run(t, `main(){ return LENGTH([1,2,3]); }`); got.AsLong() != 3 {
		t.Errorf("LENGTH = %v, want 3", got.AsString())
	}
}

func TestTypeOf(t *testing.T) {
	if got := run(t, `main(){ return TYPEOF("x"); }`); got.AsString() != "string" {
		t.Errorf("TYPEOF = %q, want %q", got.AsString(), "string")
	}
}

func TestToIntAndToFloat(t *testing.T) {
	if got := run(t, `main(){ return TOINT("42"); }`); got.AsLong() != 42 {
		t.Errorf("TOINT = %v, want 42", got.AsString())
	}
	if got := run(t, `main(){ return TOFLOAT(3); }`); got.AsDouble() != 3.0 {
		t.Errorf("TOFLOAT = %v, want 3.0", got.AsString())
	}
}

func TestIsErrorAndErrorType(t *testing.T) {
	if got := run(t, `main(){ return ISERROR(NEWERROR("BadParameter", "nope")); }`); !got.AsBoolean() {
		t.Errorf("ISERROR(NEWERROR(...)) = %v, want true", got.AsString())
	}
	if got := run(t, `main(){ return ERRORTYPE(NEWERROR("BadParameter", "nope")); }`); got.AsString() != "BadParameter" {
		t.Errorf("ERRORTYPE = %q, want %q", got.AsString(), "BadParameter")
	}
	if got := run(t, `main(){ return ERRORTYPE(1); }`); got.AsString() != "" {
		t.Errorf("ERRORTYPE(non-error) = %q, want empty", got.AsString())
	}
}

func TestListAddAndSort(t *testing.T) {
	got := run(t, `main(){ a = []; LISTADD(a, 3); LISTADD(a, 1); LISTADD(a, 2); LISTSORT(a); return a[0]; }`)
	if got.AsLong() != 1 {
		t.Errorf("a[0] after sort = %v, want 1", got.AsString())
	}
}

func TestSetOperations(t *testing.T) {
	got := run(t, `main(){ a = []; SETADD(a, 5); SETADD(a, 1); SETADD(a, 3); return SETCONTAINS(a, 3); }`)
	if !got.AsBoolean() {
		t.Errorf("SETCONTAINS(a, 3) = %v, want true", got.AsString())
	}
}

func TestNewMap(t *testing.T) {
	if got := run(t, `main(){ m = NEWMAP(); return LENGTH(m); }`); got.AsLong() != 0 {
		t.Errorf("LENGTH(NEWMAP()) = %v, want 0", got.AsString())
	}
}

func TestMapKeysAndRemove(t *testing.T) {
	got := run(t, `main(){ m = NEWMAP(); m["a"] = 1; m["b"] = 2; return LENGTH(MAPKEYS(m)); }`)
	if got.AsLong() != 2 {
		t.Errorf("LENGTH(MAPKEYS(m)) = %v, want 2", got.AsString())
	}
	got = run(t, `main(){ m = NEWMAP(); m["a"] = 1; MAPREMOVE(m, "a"); return LENGTH(MAPKEYS(m)); }`)
	if got.AsLong() != 0 {
		t.Errorf("after MAPREMOVE, LENGTH(MAPKEYS(m)) = %v, want 0", got.AsString())
	}
}
