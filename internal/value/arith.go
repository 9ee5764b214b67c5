package value

import "math"

// promote returns the higher of two scalar kinds under the ordering
// Null < Boolean < Integer < Float < String (spec §4.1). Composite kinds
// (List, Map, Error, ObjectRef) have no promotion rank; arithmetic
// involving one always yields NaN, per §4.1's treatment of any
// non-numeric, non-concatenation operand.
func promote(a, b Value) (Kind, bool) {
	ra, aok := rank[a.kind]
	rb, bok := rank[b.kind]
	if !aok || !bok {
		return 0, false
	}
	if ra >= rb {
		return a.kind, true
	}
	return b.kind, true
}

// nanValue is the canonical failure result for arithmetic that §4.1
// defines as producing NaN (string arithmetic other than concatenation,
// division or modulo by zero).
func nanValue() Value { return NewFloat(math.NaN()) }

func Add(a, b Value) Value {
	if a.kind == String && b.kind == String {
		return NewString(a.s + b.s)
	}
	target, ok := promote(a, b)
	if !ok || target == String {
		return nanValue()
	}
	if target == Integer || target == Boolean || target == Null {
		return NewInteger(a.AsLong() + b.AsLong())
	}
	return NewFloat(a.AsDouble() + b.AsDouble())
}

func Subtract(a, b Value) Value {
	return arithOp(a, b, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y })
}

func Multiply(a, b Value) Value {
	return arithOp(a, b, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y })
}

func Divide(a, b Value) Value {
	target, ok := promote(a, b)
	if !ok || target == String {
		return nanValue()
	}
	if target == Integer || target == Boolean || target == Null {
		y := b.AsLong()
		if y == 0 {
			return nanValue()
		}
		x := a.AsLong()
		if x%y == 0 {
			return NewInteger(x / y)
		}
		return NewFloat(float64(x) / float64(y))
	}
	y := b.AsDouble()
	if y == 0 {
		return nanValue()
	}
	return NewFloat(a.AsDouble() / y)
}

func Modulo(a, b Value) Value {
	target, ok := promote(a, b)
	if !ok || target == String {
		return nanValue()
	}
	if target == Integer || target == Boolean || target == Null {
		y := b.AsLong()
		if y == 0 {
			return nanValue()
		}
		return NewInteger(a.AsLong() % y)
	}
	y := b.AsDouble()
	if y == 0 {
		return nanValue()
	}
	return NewFloat(math.Mod(a.AsDouble(), y))
}

func arithOp(a, b Value, intOp func(int64, int64) int64, floatOp func(float64, float64) float64) Value {
	target, ok := promote(a, b)
	if !ok || target == String {
		return nanValue()
	}
	if target == Integer || target == Boolean || target == Null {
		return NewInteger(intOp(a.AsLong(), b.AsLong()))
	}
	return NewFloat(floatOp(a.AsDouble(), b.AsDouble()))
}

// bitsOf returns the raw IEEE-754 bit pattern of v's value as an int64 if v
// promotes to Float, or its plain integer value otherwise, per spec
// §4.1's "Bitwise operators on Float operate on the raw IEEE bit pattern".
func bitsOf(v Value, floatInvolved bool) int64 {
	if floatInvolved {
		return int64(math.Float64bits(v.AsDouble()))
	}
	return v.AsLong()
}

func bitwiseOp(a, b Value, op func(int64, int64) int64) Value {
	target, ok := promote(a, b)
	if !ok || target == String {
		return nanValue()
	}
	floatInvolved := target == Float
	return NewInteger(op(bitsOf(a, floatInvolved), bitsOf(b, floatInvolved)))
}

func BitAnd(a, b Value) Value { return bitwiseOp(a, b, func(x, y int64) int64 { return x & y }) }
func BitOr(a, b Value) Value  { return bitwiseOp(a, b, func(x, y int64) int64 { return x | y }) }
func BitXor(a, b Value) Value { return bitwiseOp(a, b, func(x, y int64) int64 { return x ^ y }) }

func ShiftLeft(a, b Value) Value {
	return bitwiseOp(a, b, func(x, y int64) int64 { return x << uint64(y&63) })
}

func ShiftRight(a, b Value) Value {
	return bitwiseOp(a, b, func(x, y int64) int64 { return x >> uint64(y&63) })
}

// ShiftRightUnsigned implements RIGHT_SHIFT_PADDED: an unsigned (logical)
// right shift.
func ShiftRightUnsigned(a, b Value) Value {
	return bitwiseOp(a, b, func(x, y int64) int64 { return int64(uint64(x) >> uint64(y&63)) })
}

func LogicalAnd(a, b Value) Value { return NewBoolean(a.IsTruthy() && b.IsTruthy()) }
func LogicalOr(a, b Value) Value  { return NewBoolean(a.IsTruthy() || b.IsTruthy()) }

// Negate implements unary "-".
func Negate(v Value) Value {
	switch v.kind {
	case Integer:
		return NewInteger(-v.i)
	case Float:
		return NewFloat(-v.f)
	case String:
		return nanValue()
	default:
		return NewInteger(-v.AsLong())
	}
}

// Absolute implements unary "+" (numeric absolute value per spec §4.4's
// operator precedence table entry "+ (abs)").
func Absolute(v Value) Value {
	switch v.kind {
	case Integer:
		if v.i < 0 {
			return NewInteger(-v.i)
		}
		return NewInteger(v.i)
	case Float:
		return NewFloat(math.Abs(v.f))
	case String:
		return nanValue()
	default:
		return NewInteger(absInt64(v.AsLong()))
	}
}

func absInt64(i int64) int64 {
	if i < 0 {
		return -i
	}
	return i
}

// Not implements bitwise "~" (complement), via the same raw-bits rule as
// the binary bitwise operators.
func Not(v Value) Value {
	if v.kind == String {
		return nanValue()
	}
	if v.kind == Float {
		return NewInteger(^int64(math.Float64bits(v.f)))
	}
	return NewInteger(^v.AsLong())
}

// LogicalNot implements "!".
func LogicalNot(v Value) Value { return NewBoolean(!v.IsTruthy()) }
