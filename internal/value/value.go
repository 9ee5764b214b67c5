package value

// ErrorInfo is the payload of an Error value: a symbolic type, a message,
// and a localized variant of that message (spec data model, "Error").
type ErrorInfo struct {
	Type             string
	Message          string
	LocalizedMessage string
}

// objRefHandle gives every ObjectRef value a unique identity distinct from
// the identity of whatever Go value it wraps, so that "same reference"
// comparisons work even when Data is not itself comparable.
type objRefHandle struct {
	Data any
}

// Value is RookScript's tagged dynamic value (spec §3). Exactly one payload
// field is meaningful at a time, selected by kind. Value is a plain struct,
// not a pointer, so assigning one Value to another copies bits the way
// pushing onto the Instance Stack does (spec §4.2): composite kinds share
// their underlying List/Map/ErrorInfo/objRefHandle pointer until Copy is
// called explicitly.
type Value struct {
	kind Kind

	i int64
	f float64
	s string

	boolean bool

	list *List
	m    *Map
	err  *ErrorInfo
	obj  *objRefHandle
}

// NewNull returns the Null value. The zero Value is already Null, but the
// constructor documents intent at call sites.
func NewNull() Value { return Value{kind: Null} }

func NewBoolean(b bool) Value { return Value{kind: Boolean, boolean: b} }

func NewInteger(i int64) Value { return Value{kind: Integer, i: i} }

func NewFloat(f float64) Value { return Value{kind: Float, f: f} }

func NewString(s string) Value { return Value{kind: String, s: s} }

func NewList(l *List) Value { return Value{kind: List, list: l} }

func NewMap(m *Map) Value { return Value{kind: Map, m: m} }

func NewError(typ, message, localized string) Value {
	return Value{kind: Error, err: &ErrorInfo{Type: typ, Message: message, LocalizedMessage: localized}}
}

// NewObjectRef wraps an arbitrary host-owned object in an opaque handle.
// Passing nil produces the null object reference (falsy, per truthiness
// rules).
func NewObjectRef(data any) Value {
	if data == nil {
		return Value{kind: ObjectRef, obj: nil}
	}
	return Value{kind: ObjectRef, obj: &objRefHandle{Data: data}}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool    { return v.kind == Null }
func (v Value) IsNumeric() bool { return v.kind == Integer || v.kind == Float }
func (v Value) IsString() bool  { return v.kind == String }
func (v Value) IsList() bool    { return v.kind == List }
func (v Value) IsMap() bool     { return v.kind == Map }
func (v Value) IsError() bool   { return v.kind == Error }

func (v Value) IsObjectRef() bool { return v.kind == ObjectRef }

// AsBoolean returns the value's truthiness interpretation as a boolean,
// matching the per-kind rules in spec §4.1 (same as IsTruthy but named for
// the embedding API's asBoolean accessor).
func (v Value) AsBoolean() bool { return v.IsTruthy() }

// AsLong returns the value coerced to an integer: exact for Integer, a
// truncating conversion for Float, 0/1 for Boolean, a best-effort parse for
// String, and 0 otherwise.
func (v Value) AsLong() int64 {
	switch v.kind {
	case Integer:
		return v.i
	case Float:
		return int64(v.f)
	case Boolean:
		if v.boolean {
			return 1
		}
		return 0
	case String:
		return parseIntPrefix(v.s)
	default:
		return 0
	}
}

// AsDouble returns the value coerced to a float, analogous to AsLong.
func (v Value) AsDouble() float64 {
	switch v.kind {
	case Integer:
		return float64(v.i)
	case Float:
		return v.f
	case Boolean:
		if v.boolean {
			return 1
		}
		return 0
	case String:
		return parseFloatPrefix(v.s)
	default:
		return 0
	}
}

// AsString renders the value as a script-visible string. Lists and maps
// render as their disassembly-neutral literal form; errors render their
// message.
func (v Value) AsString() string {
	switch v.kind {
	case Null:
		return "null"
	case Boolean:
		if v.boolean {
			return "true"
		}
		return "false"
	case Integer:
		return formatInt(v.i)
	case Float:
		return formatFloat(v.f)
	case String:
		return v.s
	case List:
		return v.list.asString()
	case Map:
		return v.m.asString()
	case Error:
		return v.err.Message
	case ObjectRef:
		if v.obj == nil {
			return "null"
		}
		return "object"
	default:
		return ""
	}
}

// AsObject returns the wrapped host object, or nil if this is not a
// non-null ObjectRef.
func (v Value) AsObject() any {
	if v.kind != ObjectRef || v.obj == nil {
		return nil
	}
	return v.obj.Data
}

// AsList returns the underlying *List, or nil if this is not a List value.
func (v Value) AsList() *List {
	if v.kind != List {
		return nil
	}
	return v.list
}

// AsMap returns the underlying *Map, or nil if this is not a Map value.
func (v Value) AsMap() *Map {
	if v.kind != Map {
		return nil
	}
	return v.m
}

// AsError returns the underlying *ErrorInfo, or nil if this is not an Error
// value.
func (v Value) AsError() *ErrorInfo {
	if v.kind != Error {
		return nil
	}
	return v.err
}

// IsTruthy implements the per-kind truthiness rules of spec §4.1.
func (v Value) IsTruthy() bool {
	switch v.kind {
	case Null:
		return false
	case Boolean:
		return v.boolean
	case Integer:
		return v.i != 0
	case Float:
		return v.f != 0 && !isNaN(v.f)
	case String:
		return len(v.s) != 0
	case List:
		return v.list.Size() != 0
	case Map:
		return v.m.Len() != 0
	case ObjectRef:
		return v.obj != nil
	case Error:
		return true
	default:
		return false
	}
}

// Length implements spec §4.1's "Length": code-unit count for String,
// element count for List, entry count for Map, 1 for everything else.
func (v Value) Length() int {
	switch v.kind {
	case String:
		return len([]rune(v.s))
	case List:
		return v.list.Size()
	case Map:
		return v.m.Len()
	default:
		return 1
	}
}

// Empty reports whether the value is "empty" under its kind's own notion:
// Null is always empty; numeric NaN is empty; zero-length strings, lists,
// and maps are empty.
func (v Value) Empty() bool {
	switch v.kind {
	case Null:
		return true
	case Float:
		return isNaN(v.f)
	case String:
		return len(v.s) == 0
	case List:
		return v.list.Size() == 0
	case Map:
		return v.m.Len() == 0
	default:
		return false
	}
}

// Copy performs spec §4.1's copy semantics: a deep copy for List and Map
// (new owning containers with copied elements/entries), a shallow
// duplicate for ObjectRef (same underlying handle, new Value), and a plain
// bit copy otherwise.
func (v Value) Copy() Value {
	switch v.kind {
	case List:
		return NewList(v.list.deepCopy())
	case Map:
		return NewMap(v.m.deepCopy())
	default:
		return v
	}
}
