package ident

// Map is a generic, insertion-ordered map keyed by case-insensitive strings.
// The original casing of the key as first inserted is retained for display
// and iteration purposes, but lookups accept any casing. Map is the backing
// store used by RookScript's script-level Map value, scope bags, and symbol
// tables (functions, entries, labels).
//
// A nil *Map behaves like an empty, read-only map for Get/Has/Len/Keys/Range.
type Map[V any] struct {
	entries map[string]entry[V]
	order   []string // normalized keys, in insertion order
}

type entry[V any] struct {
	original string
	value    V
}

// NewMap returns an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{entries: make(map[string]entry[V])}
}

// NewMapWithCapacity returns an empty Map pre-sized for the given number of entries.
func NewMapWithCapacity[V any](capacity int) *Map[V] {
	return &Map[V]{entries: make(map[string]entry[V], capacity), order: make([]string, 0, capacity)}
}

// Set inserts or overwrites the value for key. If an entry already exists
// under a different casing, its stored casing is kept and only the value
// is replaced.
func (m *Map[V]) Set(key string, value V) {
	norm := Normalize(key)
	if e, ok := m.entries[norm]; ok {
		m.entries[norm] = entry[V]{original: e.original, value: value}
		return
	}
	m.order = append(m.order, norm)
	m.entries[norm] = entry[V]{original: key, value: value}
}

// SetIfAbsent sets key to value only if key is not already present. It
// returns true if the value was set.
func (m *Map[V]) SetIfAbsent(key string, value V) bool {
	norm := Normalize(key)
	if _, ok := m.entries[norm]; ok {
		return false
	}
	m.order = append(m.order, norm)
	m.entries[norm] = entry[V]{original: key, value: value}
	return true
}

// Get returns the value stored for key and whether it was found.
func (m *Map[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	e, ok := m.entries[Normalize(key)]
	return e.value, ok
}

// GetOriginalKey returns the casing under which key was first inserted, or
// "" if key is not present.
func (m *Map[V]) GetOriginalKey(key string) string {
	if m == nil {
		return ""
	}
	e, ok := m.entries[Normalize(key)]
	if !ok {
		return ""
	}
	return e.original
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.entries[Normalize(key)]
	return ok
}

// Delete removes key, returning true if it was present.
func (m *Map[V]) Delete(key string) bool {
	norm := Normalize(key)
	if _, ok := m.entries[norm]; !ok {
		return false
	}
	delete(m.entries, norm)
	for i, k := range m.order {
		if k == norm {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Keys returns the original-cased keys in insertion order. The caller must
// not modify the returned slice.
func (m *Map[V]) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.order))
	for i, norm := range m.order {
		keys[i] = m.entries[norm].original
	}
	return keys
}

// Range calls f for each entry in insertion order, stopping early if f
// returns false.
func (m *Map[V]) Range(f func(key string, value V) bool) {
	if m == nil {
		return
	}
	for _, norm := range m.order {
		e := m.entries[norm]
		if !f(e.original, e.value) {
			return
		}
	}
}

// Clear removes all entries.
func (m *Map[V]) Clear() {
	m.entries = make(map[string]entry[V])
	m.order = m.order[:0]
}

// Clone returns a shallow copy of m: a new Map with the same keys and values.
func (m *Map[V]) Clone() *Map[V] {
	clone := NewMapWithCapacity[V](m.Len())
	m.Range(func(key string, value V) bool {
		clone.Set(key, value)
		return true
	})
	return clone
}
