package value

import "math"

// Ordering sentinels returned by Compare. cmpUnordered arises only from a
// NaN operand and signals that no relational operator holds.
const (
	cmpLess      = -1
	cmpEqual     = 0
	cmpGreater   = 1
	cmpUnordered = 2
)

func isComposite(k Kind) bool {
	return k == List || k == Map || k == ObjectRef
}

func sameReference(a, b Value) bool {
	switch {
	case a.kind == List && b.kind == List:
		return a.list == b.list
	case a.kind == Map && b.kind == Map:
		return a.m == b.m
	case a.kind == ObjectRef && b.kind == ObjectRef:
		return a.obj == b.obj
	default:
		return false
	}
}

// Compare implements the ordering predicate of spec §4.1: Null sorts below
// everything but itself; List/Map/ObjectRef compare only by reference
// (cmpEqual when identical, cmpLess otherwise, per the normative reading of
// the source's open question in spec §9(a)); String operands compare
// lexicographically; everything else compares as doubles. A NaN operand in
// the numeric branch yields cmpUnordered, not cmpEqual.
func Compare(a, b Value) int {
	if a.kind == Null && b.kind == Null {
		return cmpEqual
	}
	if a.kind == Null {
		return cmpLess
	}
	if b.kind == Null {
		return cmpGreater
	}

	if isComposite(a.kind) || isComposite(b.kind) {
		if sameReference(a, b) {
			return cmpEqual
		}
		return cmpLess
	}

	if a.kind == String || b.kind == String {
		as, bs := a.AsString(), b.AsString()
		switch {
		case as < bs:
			return cmpLess
		case as > bs:
			return cmpGreater
		default:
			return cmpEqual
		}
	}

	af, bf := a.AsDouble(), b.AsDouble()
	switch {
	case math.IsNaN(af) || math.IsNaN(bf):
		return cmpUnordered
	case af < bf:
		return cmpLess
	case af > bf:
		return cmpGreater
	default:
		return cmpEqual
	}
}

// Equal implements loose "==": NaN compares unequal to everything,
// including another NaN; otherwise delegates to Compare.
func Equal(a, b Value) bool {
	if a.kind == Float && math.IsNaN(a.f) {
		return false
	}
	if b.kind == Float && math.IsNaN(b.f) {
		return false
	}
	return Compare(a, b) == cmpEqual
}

func NotEqual(a, b Value) bool { return !Equal(a, b) }

func Less(a, b Value) bool {
	return Compare(a, b) == cmpLess
}

func LessOrEqual(a, b Value) bool {
	c := Compare(a, b)
	return c == cmpLess || c == cmpEqual
}

func Greater(a, b Value) bool {
	return Compare(a, b) == cmpGreater
}

func GreaterOrEqual(a, b Value) bool {
	c := Compare(a, b)
	return c == cmpGreater || c == cmpEqual
}

// StrictEqual implements "===": same kind and same raw bits (scalars) or
// same reference (composite/object kinds). Two NaN Float values compare
// strictly equal because they share the same bit pattern.
func StrictEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Boolean:
		return a.boolean == b.boolean
	case Integer:
		return a.i == b.i
	case Float:
		return math.Float64bits(a.f) == math.Float64bits(b.f)
	case String:
		return a.s == b.s
	case List:
		return a.list == b.list
	case Map:
		return a.m == b.m
	case Error:
		return a.err == b.err
	case ObjectRef:
		return a.obj == b.obj
	default:
		return false
	}
}

func StrictNotEqual(a, b Value) bool { return !StrictEqual(a, b) }
