package value

import "sort"

// List is RookScript's ordered, mutable, zero-indexed container (spec §3),
// a "grow-doubling array of Value slots with a logical size". A List also
// doubles as the sorted "set view" described in §4.1 when the caller only
// ever uses the SetAdd/SetRemove/SetContains/SetSearch family on it.
type List struct {
	elems []Value
}

// NewListValue returns an empty List.
func NewListValue() *List {
	return &List{elems: make([]Value, 0, 8)}
}

// NewListFrom returns a List initialized with the given elements, owning a
// copy of the slice.
func NewListFrom(values []Value) *List {
	elems := make([]Value, len(values))
	copy(elems, values)
	return &List{elems: elems}
}

func (l *List) Size() int {
	if l == nil {
		return 0
	}
	return len(l.elems)
}

// SetSize implements spec §4.1's setSize: shrinks by truncating the list
// to the new size, grows by appending Null.
func (l *List) SetSize(n int) {
	if n < 0 {
		n = 0
	}
	switch {
	case n < len(l.elems):
		l.elems = l.elems[:n]
	case n > len(l.elems):
		for len(l.elems) < n {
			l.elems = append(l.elems, NewNull())
		}
	}
}

// GetByIndex returns the element at i, or Null if i is out of range.
func (l *List) GetByIndex(i int) Value {
	if l == nil || i < 0 || i >= len(l.elems) {
		return NewNull()
	}
	return l.elems[i]
}

// SetByIndex implements spec §4.1's setByIndex: fails silently (no-op) if i
// is out of range.
func (l *List) SetByIndex(i int, v Value) {
	if l == nil || i < 0 || i >= len(l.elems) {
		return
	}
	l.elems[i] = v
}

// Add appends v to the end of the list.
func (l *List) Add(v Value) {
	l.elems = append(l.elems, v)
}

// AddAt inserts v at index i, clamping i to [0, size] as spec §4.1
// requires.
func (l *List) AddAt(i int, v Value) {
	if i < 0 {
		i = 0
	}
	if i > len(l.elems) {
		i = len(l.elems)
	}
	l.elems = append(l.elems, NewNull())
	copy(l.elems[i+1:], l.elems[i:])
	l.elems[i] = v
}

// RemoveAt removes and returns the element at i, shifting later elements
// down. It is a no-op returning Null if i is out of range.
func (l *List) RemoveAt(i int) Value {
	if l == nil || i < 0 || i >= len(l.elems) {
		return NewNull()
	}
	removed := l.elems[i]
	copy(l.elems[i:], l.elems[i+1:])
	l.elems = l.elems[:len(l.elems)-1]
	return removed
}

// IndexOf performs a linear scan for the first element strictly equal to
// v, per spec §4.1's "indexOf linear scan by strict equality".
func (l *List) IndexOf(v Value) int {
	for i, e := range l.elems {
		if StrictEqual(e, v) {
			return i
		}
	}
	return -1
}

// Sort orders the list's elements using the loose ordering predicate of
// spec §4.1's Compare.
func (l *List) Sort() {
	sort.SliceStable(l.elems, func(i, j int) bool {
		return Compare(l.elems[i], l.elems[j]) == cmpLess
	})
}

// Elements returns a shallow copy of the underlying element slice.
func (l *List) Elements() []Value {
	if l == nil {
		return nil
	}
	out := make([]Value, len(l.elems))
	copy(out, l.elems)
	return out
}

// --- Sorted "set view" (spec §4.1) ---
// These operate on a list that the caller is responsible for keeping
// sorted via Sort; they perform binary search and maintain sort order on
// insertion.

// SetSearch returns the index at which v is found, or the bitwise
// complement (^index) of where it would be inserted to keep the list
// sorted, mirroring the common binary-search "insertion point" contract.
func (l *List) SetSearch(v Value) int {
	lo, hi := 0, len(l.elems)
	for lo < hi {
		mid := (lo + hi) / 2
		if Compare(l.elems[mid], v) == cmpLess {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(l.elems) && Equal(l.elems[lo], v) {
		return lo
	}
	return ^lo
}

// SetContains reports whether v is present, assuming the list is sorted.
func (l *List) SetContains(v Value) bool {
	return l.SetSearch(v) >= 0
}

// SetAdd inserts v at its sorted position if not already present. It
// returns true if an insertion happened.
func (l *List) SetAdd(v Value) bool {
	idx := l.SetSearch(v)
	if idx >= 0 {
		return false
	}
	l.AddAt(^idx, v)
	return true
}

// SetRemove removes v if present, returning true if it was removed.
func (l *List) SetRemove(v Value) bool {
	idx := l.SetSearch(v)
	if idx < 0 {
		return false
	}
	l.RemoveAt(idx)
	return true
}

func (l *List) deepCopy() *List {
	if l == nil {
		return NewListValue()
	}
	out := &List{elems: make([]Value, len(l.elems))}
	for i, e := range l.elems {
		out.elems[i] = e.Copy()
	}
	return out
}

func (l *List) asString() string {
	if l == nil {
		return "[]"
	}
	s := "["
	for i, e := range l.elems {
		if i > 0 {
			s += ", "
		}
		if e.kind == String {
			s += "\"" + e.s + "\""
		} else {
			s += e.AsString()
		}
	}
	return s + "]"
}
