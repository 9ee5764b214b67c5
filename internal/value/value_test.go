package value

import (
	"math"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{Null, "null"},
		{Boolean, "boolean"},
		{Integer, "integer"},
		{Float, "float"},
		{String, "string"},
		{List, "list"},
		{Map, "map"},
		{Error, "error"},
		{ObjectRef, "object"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", NewNull(), false},
		{"false", NewBoolean(false), false},
		{"true", NewBoolean(true), true},
		{"zero int", NewInteger(0), false},
		{"nonzero int", NewInteger(1), true},
		{"zero float", NewFloat(0), false},
		{"nan float", NewFloat(math.NaN()), false},
		{"nonzero float", NewFloat(1.5), true},
		{"empty string", NewString(""), false},
		{"nonempty string", NewString("x"), true},
		{"empty list", NewList(NewListValue()), false},
		{"empty map", NewMap(NewMapValue()), false},
		{"error", NewError("BadParameter", "bad", "bad"), true},
		{"nil object", NewObjectRef(nil), false},
		{"object", NewObjectRef(42), true},
	}
	for _, tt := range tests {
		if got := tt.v.IsTruthy(); got != tt.want {
			t.Errorf("%s: IsTruthy() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestArithmeticPromotion(t *testing.T) {
	if got := Add(NewInteger(1), NewFloat(2.5)); got.Kind() != Float || got.AsDouble() != 3.5 {
		t.Errorf("1 + 2.5 = %v, want Float 3.5", got.AsString())
	}
	if got := Add(NewString("a"), NewString("b")); got.Kind() != String || got.AsString() != "ab" {
		t.Errorf(`"a" + "b" = %v, want "ab"`, got.AsString())
	}
	if got := Add(NewString("a"), NewInteger(1)); got.Kind() != Float || !math.IsNaN(got.AsDouble()) {
		t.Errorf(`"a" + 1 = %v, want NaN`, got.AsString())
	}
	if got := Multiply(NewInteger(3), NewInteger(4)); got.Kind() != Integer || got.AsLong() != 12 {
		t.Errorf("3 * 4 = %v, want Integer 12", got.AsString())
	}
}

func TestDivisionAndModuloByZero(t *testing.T) {
	if got := Divide(NewInteger(1), NewInteger(0)); got.Kind() != Float || !math.IsNaN(got.AsDouble()) {
		t.Errorf("1 / 0 = %v, want NaN", got.AsString())
	}
	if got := Modulo(NewInteger(1), NewInteger(0)); got.Kind() != Float || !math.IsNaN(got.AsDouble()) {
		t.Errorf("1 %% 0 = %v, want NaN", got.AsString())
	}
}

func TestBitwiseOnFloatUsesRawBits(t *testing.T) {
	a := NewFloat(1.0)
	bits := int64(math.Float64bits(1.0))
	// Both operands are promoted to Float, so the Integer operand
	// contributes the bit pattern of float64(bits), not bits itself.
	want := bits & int64(math.Float64bits(float64(bits)))
	got := BitAnd(a, NewInteger(bits))
	if got.Kind() != Integer || got.AsLong() != want {
		t.Errorf("BitAnd(1.0, bits(1.0)) = %v, want %d", got.AsString(), want)
	}
}

func TestLooseVsStrictEquality(t *testing.T) {
	nan1 := NewFloat(math.NaN())
	nan2 := NewFloat(math.NaN())
	if Equal(nan1, nan2) {
		t.Error("NaN == NaN should be false under loose equality")
	}
	if !StrictEqual(nan1, nan2) {
		t.Error("NaN === NaN should be true (same Float bit pattern)")
	}
	if !Equal(NewInteger(1), NewFloat(1.0)) {
		t.Error("1 == 1.0 should be true under loose equality")
	}
	if StrictEqual(NewInteger(1), NewFloat(1.0)) {
		t.Error("1 === 1.0 should be false (different kinds)")
	}
}

func TestCompareAntisymmetry(t *testing.T) {
	values := []Value{
		NewNull(), NewBoolean(true), NewBoolean(false),
		NewInteger(0), NewInteger(1), NewInteger(-1),
		NewFloat(1.5), NewString(""), NewString("x"),
	}
	for _, a := range values {
		for _, b := range values {
			c1, c2 := Compare(a, b), Compare(b, a)
			if c1 == cmpUnordered || c2 == cmpUnordered {
				continue
			}
			if c1 != -c2 {
				t.Errorf("Compare(%v,%v)=%d, Compare(%v,%v)=%d, want antisymmetric",
					a.AsString(), b.AsString(), c1, b.AsString(), a.AsString(), c2)
			}
			if (Equal(a, b)) != (c1 == cmpEqual) {
				t.Errorf("Equal(%v,%v)=%v inconsistent with Compare=%d", a.AsString(), b.AsString(), Equal(a, b), c1)
			}
		}
	}
}

func TestListAndMapReferenceOnlyOrdering(t *testing.T) {
	l1 := NewList(NewListValue())
	l2 := NewList(NewListValue())
	if Compare(l1, l2) != cmpLess {
		t.Errorf("distinct lists should compare cmpLess (reference-only rule), got %d", Compare(l1, l2))
	}
	if Compare(l1, l1) != cmpEqual {
		t.Errorf("identical list reference should compare cmpEqual")
	}
}

func TestListGrowAndSetView(t *testing.T) {
	l := NewListValue()
	l.Add(NewInteger(30))
	l.Add(NewInteger(10))
	l.Add(NewInteger(20))
	l.Sort()
	if l.GetByIndex(0).AsLong() != 10 || l.GetByIndex(2).AsLong() != 30 {
		t.Fatalf("sort failed: %v", l.Elements())
	}
	if !l.SetAdd(NewInteger(15)) {
		t.Fatal("SetAdd should have inserted 15")
	}
	if !l.SetContains(NewInteger(15)) {
		t.Fatal("SetContains(15) should be true after SetAdd")
	}
	if l.SetAdd(NewInteger(15)) {
		t.Fatal("SetAdd should reject duplicate")
	}
	if !l.SetRemove(NewInteger(15)) {
		t.Fatal("SetRemove(15) should succeed")
	}
	if l.SetContains(NewInteger(15)) {
		t.Fatal("SetContains(15) should be false after SetRemove")
	}
}

func TestMapCaseInsensitiveKeys(t *testing.T) {
	m := NewMapValue()
	m.Set("MyKey", NewInteger(1))
	if v, ok := m.Get("mykey"); !ok || v.AsLong() != 1 {
		t.Fatalf("case-insensitive Get failed: %v %v", v.AsString(), ok)
	}
	if keys := m.Keys(); len(keys) != 1 || keys[0] != "MyKey" {
		t.Fatalf("Keys() = %v, want original casing preserved", keys)
	}
}

func TestCopyIsDeepForListAndMap(t *testing.T) {
	l := NewListValue()
	l.Add(NewInteger(1))
	orig := NewList(l)
	dup := orig.Copy()
	dup.AsList().Add(NewInteger(2))
	if orig.AsList().Size() != 1 {
		t.Fatalf("Copy should not alias the original list; original size = %d", orig.AsList().Size())
	}
}

func TestLength(t *testing.T) {
	if NewString("héllo").Length() != 5 {
		t.Errorf("rune-counted length wrong: %d", NewString("héllo").Length())
	}
	l := NewListValue()
	l.Add(NewNull())
	l.Add(NewNull())
	if NewList(l).Length() != 2 {
		t.Errorf("list length wrong")
	}
	if NewInteger(7).Length() != 1 {
		t.Errorf("scalar length should be 1")
	}
}
