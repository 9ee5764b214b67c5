package vm

import (
	"github.com/blackrooksoftware/rookscript/internal/bytecode"
	"github.com/blackrooksoftware/rookscript/internal/value"
)

// indexGet implements the read half of PUSH_LIST_INDEX /
// PUSH_LIST_INDEX_CONTENTS: a List is indexed numerically, a Map by string
// key; anything else yields Null, matching List.GetByIndex's and
// Map.Get's own out-of-range/missing-key behavior.
func indexGet(container, key value.Value) value.Value {
	switch container.Kind() {
	case value.List:
		return container.AsList().GetByIndex(int(key.AsLong()))
	case value.Map:
		v, _ := container.AsMap().Get(key.AsString())
		return v
	default:
		return value.NewNull()
	}
}

// indexSet implements the write half, backing POP_LIST.
func indexSet(container, key, v value.Value) {
	switch container.Kind() {
	case value.List:
		container.AsList().SetByIndex(int(key.AsLong()), v)
	case value.Map:
		container.AsMap().Set(key.AsString(), v)
	}
}

// applyUnary evaluates a unary opcode over v using the exact runtime
// value semantics of spec §4.1, shared with the optimizer's literal
// folding so compile-time folds and runtime evaluation always agree.
func applyUnary(op bytecode.Opcode, v value.Value) value.Value {
	switch op {
	case bytecode.ABSOLUTE:
		return value.Absolute(v)
	case bytecode.NEGATE:
		return value.Negate(v)
	case bytecode.NOT:
		return value.Not(v)
	case bytecode.LOGICAL_NOT:
		return value.LogicalNot(v)
	default:
		return v
	}
}

// applyBinary evaluates a binary opcode over a, b, again using the exact
// value-package functions the optimizer folds with.
func applyBinary(op bytecode.Opcode, a, b value.Value) value.Value {
	switch op {
	case bytecode.ADD:
		return value.Add(a, b)
	case bytecode.SUBTRACT:
		return value.Subtract(a, b)
	case bytecode.MULTIPLY:
		return value.Multiply(a, b)
	case bytecode.DIVIDE:
		return value.Divide(a, b)
	case bytecode.MODULO:
		return value.Modulo(a, b)
	case bytecode.AND:
		return value.BitAnd(a, b)
	case bytecode.OR:
		return value.BitOr(a, b)
	case bytecode.XOR:
		return value.BitXor(a, b)
	case bytecode.LOGICAL_AND:
		return value.LogicalAnd(a, b)
	case bytecode.LOGICAL_OR:
		return value.LogicalOr(a, b)
	case bytecode.LEFT_SHIFT:
		return value.ShiftLeft(a, b)
	case bytecode.RIGHT_SHIFT:
		return value.ShiftRight(a, b)
	case bytecode.RIGHT_SHIFT_PADDED:
		return value.ShiftRightUnsigned(a, b)
	case bytecode.LESS:
		return value.NewBoolean(value.Less(a, b))
	case bytecode.LESS_OR_EQUAL:
		return value.NewBoolean(value.LessOrEqual(a, b))
	case bytecode.GREATER:
		return value.NewBoolean(value.Greater(a, b))
	case bytecode.GREATER_OR_EQUAL:
		return value.NewBoolean(value.GreaterOrEqual(a, b))
	case bytecode.EQUAL:
		return value.NewBoolean(value.Equal(a, b))
	case bytecode.NOT_EQUAL:
		return value.NewBoolean(value.NotEqual(a, b))
	case bytecode.STRICT_EQUAL:
		return value.NewBoolean(value.StrictEqual(a, b))
	case bytecode.STRICT_NOT_EQUAL:
		return value.NewBoolean(value.StrictNotEqual(a, b))
	default:
		return a
	}
}
