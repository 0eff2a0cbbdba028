package vector

import (
	"math"
	"time"

	"github.com/vk/vecmap/internal/ptype"
)

// Value is an immutable, ordered, homogeneously typed sequence.
//
// Atomic kinds keep one Go value per element (bool, int64, float64, string,
// time.Time, or the level label for factors) with nil marking a missing
// element. Lists (type Any) keep one nested Value per element. Records keep
// ordered columns of equal length.
//
// The zero Value has no type and is not valid input anywhere.
type Value struct {
	typ  ptype.Type
	n    int
	data []any
	cols []Column
}

// Column is one named column of a record Value.
type Column struct {
	Name  string
	Value Value
}

// Type returns the descriptor of v.
func (v Value) Type() ptype.Type { return v.typ }

// Len returns the number of elements (rows for a record).
func (v Value) Len() int { return v.n }

// IsValid reports whether v was built by a constructor.
func (v Value) IsValid() bool { return v.typ != nil }

// Elem returns the raw element at i: a Go scalar or nil for atomic kinds,
// a Value for lists. It panics for records; use At instead.
func (v Value) Elem(i int) any {
	if _, ok := v.typ.(ptype.Record); ok {
		panic("vector: Elem called on record value")
	}
	return v.data[i]
}

// IsMissing reports whether element i of an atomic vector is missing.
func (v Value) IsMissing(i int) bool {
	return ptype.IsAtomic(v.typ) && v.data[i] == nil
}

// Elems returns a copy of the raw elements of an atomic or list vector.
func (v Value) Elems() []any {
	return append([]any(nil), v.data...)
}

// Columns returns a copy of the columns of a record vector.
func (v Value) Columns() []Column {
	return append([]Column(nil), v.cols...)
}

// Column returns the record column called name.
func (v Value) Column(name string) (Value, bool) {
	for _, c := range v.cols {
		if c.Name == name {
			return c.Value, true
		}
	}
	return Value{}, false
}

// At returns element i as a Value of length 1 and the same type.
func (v Value) At(i int) Value {
	return v.Slice(i, i+1)
}

// Slice returns the elements in [start, end) as a new Value.
func (v Value) Slice(start, end int) Value {
	if start < 0 || end > v.n || start > end {
		panic("vector: slice bounds out of range")
	}
	out := Value{typ: v.typ, n: end - start}
	if v.cols != nil {
		out.cols = make([]Column, len(v.cols))
		for i, c := range v.cols {
			out.cols[i] = Column{Name: c.Name, Value: c.Value.Slice(start, end)}
		}
		return out
	}
	out.data = append([]any(nil), v.data[start:end]...)
	return out
}

// Equal reports whether v and o have the same type and elements.
// Missing elements are equal to each other, as are NaN doubles.
func (v Value) Equal(o Value) bool {
	if !ptype.Equal(v.typ, o.typ) || v.n != o.n {
		return false
	}
	if len(v.cols) != len(o.cols) {
		return false
	}
	for i := range v.cols {
		if v.cols[i].Name != o.cols[i].Name || !v.cols[i].Value.Equal(o.cols[i].Value) {
			return false
		}
	}
	for i := range v.data {
		if !elemEqual(v.data[i], o.data[i]) {
			return false
		}
	}
	return true
}

func elemEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return ok && (x == y || (math.IsNaN(x) && math.IsNaN(y)))
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case Value:
		y, ok := b.(Value)
		return ok && x.Equal(y)
	}
	return a == b
}
