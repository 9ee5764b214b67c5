package value

import "github.com/blackrooksoftware/rookscript/pkg/ident"

// Map is RookScript's insertion-ordered, case-insensitive string-keyed
// container (spec §3), backed directly by pkg/ident.Map so that map key
// lookups share the same case-folding rule as variable and scope names.
type Map struct {
	entries *ident.Map[Value]
}

// NewMapValue returns an empty Map.
func NewMapValue() *Map {
	return &Map{entries: ident.NewMap[Value]()}
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return m.entries.Len()
}

// Get implements spec §4.1's "get(key, out) returns success and writes to
// out": it returns the value and whether key was present.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return NewNull(), false
	}
	return m.entries.Get(key)
}

// Set inserts or overwrites key's value.
func (m *Map) Set(key string, v Value) {
	m.entries.Set(key, v)
}

// Remove deletes key, returning true if it was present.
func (m *Map) Remove(key string) bool {
	if m == nil {
		return false
	}
	return m.entries.Delete(key)
}

// Contains reports whether key is present.
func (m *Map) Contains(key string) bool {
	if m == nil {
		return false
	}
	return m.entries.Has(key)
}

// Keys returns the keys in insertion order, in their originally inserted
// casing.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.entries.Keys()
}

// Range iterates entries in insertion order.
func (m *Map) Range(f func(key string, v Value) bool) {
	if m == nil {
		return
	}
	m.entries.Range(f)
}

func (m *Map) deepCopy() *Map {
	out := NewMapValue()
	if m == nil {
		return out
	}
	m.entries.Range(func(key string, v Value) bool {
		out.entries.Set(key, v.Copy())
		return true
	})
	return out
}

func (m *Map) asString() string {
	if m == nil || m.entries.Len() == 0 {
		return "{}"
	}
	s := "{"
	first := true
	m.entries.Range(func(key string, v Value) bool {
		if !first {
			s += ", "
		}
		first = false
		s += key + ": "
		if v.kind == String {
			s += "\"" + v.s + "\""
		} else {
			s += v.AsString()
		}
		return true
	})
	return s + "}"
}
