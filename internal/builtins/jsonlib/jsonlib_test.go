package jsonlib_test

import (
	"testing"

	"github.com/blackrooksoftware/rookscript/internal/builder"
	"github.com/blackrooksoftware/rookscript/internal/builtins/corelib"
	"github.com/blackrooksoftware/rookscript/internal/builtins/jsonlib"
	"github.com/blackrooksoftware/rookscript/internal/value"
)

func run(t *testing.T, src string) value.Value {
	t.Helper()
	inst, err := builder.New().
		WithSource(src).
		WithHostResolver(jsonlib.New()).
		WithHostResolver(corelib.New()).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	result, err := inst.Call("main")
	if err != nil {
		t.Fatalf("Call(main) error: %v", err)
	}
	return result
}

func TestJSONParsePrimitives(t *testing.T) {
	if got := run(t, `main(){ return JSON_PARSE("42"); }`); got.AsLong() != 42 {
		t.Errorf("JSON_PARSE(42) = %v, want integer 42", got.AsString())
	}
	if got := run(t, `main(){ return JSON_PARSE("3.5"); }`); got.AsDouble() != 3.5 {
		t.Errorf("JSON_PARSE(3.5) = %v, want float 3.5", got.AsString())
	}
	if got := run(t, `main(){ return JSON_PARSE("\"hi\""); }`); got.AsString() != "hi" {
		t.Errorf("JSON_PARSE(\"hi\") = %q, want %q", got.AsString(), "hi")
	}
	if got := run(t, `main(){ return JSON_PARSE("null"); }`); !got.IsNull() {
		t.Errorf("JSON_PARSE(null) = %v, want null", got.AsString())
	}
}

func TestJSONParseObjectAndGet(t *testing.T) {
	got := run(t, `main(){ return JSON_GET("{\"a\":{\"b\":7}}", "a.b"); }`)
	if got.AsLong() != 7 {
		t.Errorf("JSON_GET(a.b) = %v, want 7", got.AsString())
	}
	got = run(t, `main(){ return JSON_GET("{\"a\":1}", "missing"); }`)
	if !got.IsNull() {
		t.Errorf("JSON_GET(missing) = %v, want null", got.AsString())
	}
}

func TestJSONParseArray(t *testing.T) {
	got := run(t, `main(){ a = JSON_PARSE("[1,2,3]"); return a[1]; }`)
	if got.AsLong() != 2 {
		t.Errorf("JSON_PARSE array element = %v, want 2", got.AsString())
	}
}

func TestJSONSetRoundTrips(t *testing.T) {
	got := run(t, `main(){ s = JSON_SET("{\"a\":1}", "a", 2); return JSON_GET(s, "a"); }`)
	if got.AsLong() != 2 {
		t.Errorf("round-tripped a = %v, want 2", got.AsString())
	}
}

func TestJSONSetInvalidPathReturnsError(t *testing.T) {
	got := run(t, `main(){ return ISERROR(JSON_SET("{\"a\":1}", "", 2)); }`)
	if !got.AsBoolean() {
		t.Errorf("ISERROR(JSON_SET with empty path) = %v, want true", got.AsString())
	}
}

func TestJSONStringify(t *testing.T) {
	got := run(t, `main(){ m = NEWMAP(); m["x"] = 1; m["y"] = "z"; return JSON_STRINGIFY(m); }`)
	s := got.AsString()
	if len(s) == 0 || s[0] != '{' || s[len(s)-1] != '}' {
		t.Errorf("JSON_STRINGIFY(map) = %q, want an object literal", s)
	}
	got = run(t, `main(){ return JSON_STRINGIFY([1, "two", true, null]); }`)
	if got.AsString() != `[1,"two",true,null]` {
		t.Errorf("JSON_STRINGIFY(list) = %q", got.AsString())
	}
}
