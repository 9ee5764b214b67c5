package compiler

import (
	"strings"
	"testing"

	"github.com/blackrooksoftware/rookscript/internal/bytecode"
)

func mustCompile(t *testing.T, src string, opts ...Option) *bytecode.Script {
	t.Helper()
	script, err := Compile(src, opts...)
	if err != nil {
		t.Fatalf("Compile(%q) returned error: %v", src, err)
	}
	return script
}

func opSequence(script *bytecode.Script) []bytecode.Opcode {
	ops := make([]bytecode.Opcode, len(script.Commands))
	for i, c := range script.Commands {
		ops[i] = c.Op
	}
	return ops
}

func TestCompileSimpleArithmetic(t *testing.T) {
	script := mustCompile(t, `main() { return 1 + 2 * 3; }`)

	want := []bytecode.Opcode{
		bytecode.PUSH, bytecode.PUSH, bytecode.PUSH, bytecode.MULTIPLY,
		bytecode.ADD, bytecode.RETURN,
	}
	got := opSequence(script)
	if len(got) != len(want) {
		t.Fatalf("opcode count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCompileImplicitReturnFalse(t *testing.T) {
	script := mustCompile(t, `main() { }`)
	n := len(script.Commands)
	if n != 2 || script.Commands[0].Op != bytecode.PUSH || script.Commands[1].Op != bytecode.RETURN {
		t.Fatalf("expected implicit PUSH false; RETURN, got %v", opSequence(script))
	}
	if script.Commands[0].Literal().AsBoolean() != false {
		t.Errorf("implicit return value should be false")
	}
}

func TestCompileIfElse(t *testing.T) {
	script := mustCompile(t, `main() {
		if (1 < 2) {
			return true;
		} else {
			return false;
		}
	}`)

	ops := opSequence(script)
	var jf, j int
	for _, op := range ops {
		if op == bytecode.JUMP_FALSE {
			jf++
		}
		if op == bytecode.JUMP {
			j++
		}
	}
	if jf != 1 {
		t.Errorf("expected exactly one JUMP_FALSE, got %d in %v", jf, ops)
	}
	if j != 1 {
		t.Errorf("expected exactly one JUMP (skip-else), got %d in %v", j, ops)
	}
	// One RETURN per branch, plus the implicit return the compiler appends
	// because the if/else's end label marks the end of the body.
	returns := 0
	for _, op := range ops {
		if op == bytecode.RETURN {
			returns++
		}
	}
	if returns < 2 {
		t.Errorf("expected at least 2 RETURN ops, got %d", returns)
	}
}

func TestCompileWhileLoop(t *testing.T) {
	script := mustCompile(t, `main() {
		i = 0;
		while (i < 10) {
			i += 1;
		}
		return i;
	}`)
	ops := opSequence(script)
	hasOp := func(op bytecode.Opcode) bool {
		for _, o := range ops {
			if o == op {
				return true
			}
		}
		return false
	}
	for _, op := range []bytecode.Opcode{bytecode.JUMP_FALSE, bytecode.JUMP, bytecode.ADD, bytecode.POP_VARIABLE, bytecode.PUSH_VARIABLE} {
		if !hasOp(op) {
			t.Errorf("expected opcode %s in compiled while loop, got %v", op, ops)
		}
	}
}

func TestCompileForLoopBreakContinue(t *testing.T) {
	script := mustCompile(t, `main() {
		total = 0;
		for (i = 0; i < 10; i += 1) {
			if (i == 5) {
				continue;
			}
			if (i == 8) {
				break;
			}
			total += i;
		}
		return total;
	}`)
	if script == nil {
		t.Fatal("expected non-nil script")
	}
}

func TestCompileBreakOutsideLoopIsError(t *testing.T) {
	_, err := Compile(`main() { break; }`)
	if err == nil {
		t.Fatal("expected compile error for break outside loop")
	}
}

func TestCompileForwardFunctionReferenceUsesCall(t *testing.T) {
	script := mustCompile(t, `
		main() {
			return double(21);
		}
		function double(n) {
			return n * 2;
		}
	`)
	var sawCall bool
	for _, c := range script.Commands {
		if c.Op == bytecode.CALL && c.Label() == bytecode.FunctionPrefix+"double" {
			sawCall = true
		}
	}
	if !sawCall {
		t.Errorf("expected CALL function_double for forward-referenced function, got:\n%s", bytecode.Disassemble(script))
	}
}

func TestCompileUnknownCallUsesHostCall(t *testing.T) {
	script := mustCompile(t, `main() { println("hi"); }`)
	var sawHostCall bool
	for _, c := range script.Commands {
		if c.Op == bytecode.CALL_HOST && strings.EqualFold(c.Name(), "println") {
			sawHostCall = true
		}
	}
	if !sawHostCall {
		t.Errorf("expected CALL_HOST println, got:\n%s", bytecode.Disassemble(script))
	}
}

func TestCompileListLiteralAndIndexedAssignment(t *testing.T) {
	script := mustCompile(t, `main() {
		xs = [1, 2, 3];
		xs[0] = 9;
		xs[1] += 1;
		return xs;
	}`)
	ops := opSequence(script)
	var sawInit, sawPopList, sawIndexContents bool
	for _, op := range ops {
		switch op {
		case bytecode.PUSH_LIST_INIT:
			sawInit = true
		case bytecode.POP_LIST:
			sawPopList = true
		case bytecode.PUSH_LIST_INDEX_CONTENTS:
			sawIndexContents = true
		}
	}
	if !sawInit {
		t.Error("expected PUSH_LIST_INIT for list literal")
	}
	if !sawPopList {
		t.Error("expected POP_LIST for indexed assignment")
	}
	if !sawIndexContents {
		t.Error("expected PUSH_LIST_INDEX_CONTENTS for compound indexed assignment")
	}
}

// TestCompileChainedIndexedAssignment checks that "a[i][j] = x" descends
// through the outer index with a plain read before handing the final
// container/index pair to the indexed-assignment path, mirroring the
// chained reads the expression-position reader already supports.
func TestCompileChainedIndexedAssignment(t *testing.T) {
	script := mustCompile(t, `main() {
		a = [[1, 2], [3, 4]];
		a[0][1] = 9;
		return a[0][1];
	}`)
	ops := opSequence(script)
	var descends, popLists int
	for _, op := range ops {
		switch op {
		case bytecode.PUSH_LIST_INDEX:
			descends++
		case bytecode.POP_LIST:
			popLists++
		}
	}
	if descends == 0 {
		t.Error("expected at least one PUSH_LIST_INDEX descending through the outer index")
	}
	if popLists != 1 {
		t.Errorf("expected exactly one POP_LIST for the final assignment, got %d", popLists)
	}
}

func TestCompileTernaryAndShortCircuit(t *testing.T) {
	script := mustCompile(t, `main() {
		a = true;
		b = false;
		return (a && b) ? 1 : (a || b) ? 2 : 3;
	}`)
	if script == nil {
		t.Fatal("expected non-nil script")
	}
	// Sanity check the disassembler runs cleanly over nested synthetic
	// labels without panicking on duplicate or unresolved names.
	out := bytecode.Disassemble(script)
	if !strings.Contains(out, "main:") {
		t.Errorf("disassembly missing main label:\n%s", out)
	}
}

func TestCompileEntryParameterBinding(t *testing.T) {
	script := mustCompile(t, `
		entry add(a, b) {
			return a + b;
		}
		main() { return 0; }
	`)
	info, ok := script.Entries.Get("add")
	if !ok {
		t.Fatal("expected entry 'add' to be registered")
	}
	if info.ParamCount != 2 {
		t.Errorf("ParamCount = %d, want 2", info.ParamCount)
	}
}

func TestCompileShortCircuitSkipsRHSSideEffect(t *testing.T) {
	// "false && (x = 1)" must never execute the right-hand side, so the
	// emitted code must be able to skip straight past whatever it
	// compiles to.
	script := mustCompile(t, `main() { x = 0; (false) && (x = 1); return x; }`)
	var jumpFalseCount int
	for _, c := range script.Commands {
		if c.Op == bytecode.JUMP_FALSE {
			jumpFalseCount++
		}
	}
	if jumpFalseCount == 0 {
		t.Errorf("expected a JUMP_FALSE guarding the short-circuited RHS, got:\n%s", bytecode.Disassemble(script))
	}
}

func TestCompilePragmaIsParsedAndDiscarded(t *testing.T) {
	script := mustCompile(t, `
		pragma strict(true);
		main() { return 1; }
	`)
	for _, c := range script.Commands {
		if c.Op == bytecode.NOOP {
			t.Errorf("pragma should not lower to a NOOP placeholder, got %v", opSequence(script))
		}
	}
}
