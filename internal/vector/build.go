package vector

import (
	"errors"
	"fmt"
	"time"

	"github.com/vk/vecmap/internal/ptype"
)

// ErrInvalidElement is returned by Of when an element does not match the
// requested kind.
var ErrInvalidElement = errors.New("vector: element does not match type")

// Logicals builds a logical vector.
func Logicals(xs ...bool) Value { return atomic(ptype.Logical{}, xs) }

// Integers builds an integer vector.
func Integers(xs ...int64) Value { return atomic(ptype.Integer{}, xs) }

// Doubles builds a double vector.
func Doubles(xs ...float64) Value { return atomic(ptype.Double{}, xs) }

// Characters builds a character vector.
func Characters(xs ...string) Value { return atomic(ptype.Character{}, xs) }

// Dates builds a date vector. Times are truncated to their UTC calendar day.
func Dates(xs ...time.Time) Value {
	days := make([]time.Time, len(xs))
	for i, t := range xs {
		days[i] = Day(t)
	}
	return atomic(ptype.Date{}, days)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func atomic[T any](t ptype.Type, xs []T) Value {
	data := make([]any, len(xs))
	for i, x := range xs {
		data[i] = x
	}
	return Value{typ: t, n: len(xs), data: data}
}

// Factors builds a factor vector with the given levels. Every label must be
// one of the levels.
func Factors(levels []string, labels ...string) (Value, error) {
	elems := make([]any, len(labels))
	for i, l := range labels {
		elems[i] = l
	}
	return Of(ptype.Factor{Levels: append([]string(nil), levels...)}, elems...)
}

// List builds a dynamic (Any) vector whose elements are the given values.
func List(values ...Value) Value {
	data := make([]any, len(values))
	for i, v := range values {
		data[i] = v
	}
	return Value{typ: ptype.Any{}, n: len(values), data: data}
}

// Of builds an atomic or list vector of type t from raw elements. A nil
// element is missing; lists do not allow missing elements.
func Of(t ptype.Type, elems ...any) (Value, error) {
	if t == nil {
		return Value{}, fmt.Errorf("%w: nil type", ErrInvalidElement)
	}
	if _, ok := t.(ptype.Record); ok {
		return Value{}, fmt.Errorf("%w: use RecordOf for record values", ErrInvalidElement)
	}
	data := make([]any, len(elems))
	for i, e := range elems {
		if e == nil && ptype.IsAtomic(t) {
			continue
		}
		if !elemMatches(t, e) {
			return Value{}, fmt.Errorf("%w: element %d (%T) is not %s", ErrInvalidElement, i, e, t)
		}
		if d, ok := e.(time.Time); ok {
			e = Day(d)
		}
		data[i] = e
	}
	return Value{typ: t, n: len(elems), data: data}, nil
}

func elemMatches(t ptype.Type, e any) bool {
	switch tt := t.(type) {
	case ptype.Logical:
		_, ok := e.(bool)
		return ok
	case ptype.Integer:
		_, ok := e.(int64)
		return ok
	case ptype.Double:
		_, ok := e.(float64)
		return ok
	case ptype.Character:
		_, ok := e.(string)
		return ok
	case ptype.Date:
		_, ok := e.(time.Time)
		return ok
	case ptype.Factor:
		s, ok := e.(string)
		return ok && tt.LevelIndex(s) >= 0
	case ptype.Any:
		v, ok := e.(Value)
		return ok && v.IsValid()
	}
	return false
}

// Missing returns a vector of n missing elements of type t. For records
// every column is missing; for lists every element is an empty list. A
// partial record, at any depth, yields the concrete record of its named
// fields.
func Missing(t ptype.Type, n int) Value {
	switch tt := t.(type) {
	case ptype.Record:
		fields := make([]ptype.Field, len(tt.Fields))
		cols := make([]Column, len(tt.Fields))
		for i, f := range tt.Fields {
			col := Missing(f.Type, n)
			fields[i] = ptype.Field{Name: f.Name, Type: col.Type(), Optional: f.Optional}
			cols[i] = Column{Name: f.Name, Value: col}
		}
		return Value{typ: ptype.Record{Fields: fields}, n: n, cols: cols}
	case ptype.Any:
		data := make([]any, n)
		for i := range data {
			data[i] = List()
		}
		return Value{typ: tt, n: n, data: data}
	}
	return Value{typ: t, n: n, data: make([]any, n)}
}

// Empty returns a zero-length vector of type t.
func Empty(t ptype.Type) Value { return Missing(t, 0) }

// RecordOf builds a record vector from named columns. Columns are recycled
// to a common size first; names must be unique.
func RecordOf(cols ...Column) (Value, error) {
	values := make([]Value, len(cols))
	seen := make(map[string]struct{}, len(cols))
	for i, c := range cols {
		if !c.Value.IsValid() {
			return Value{}, fmt.Errorf("%w: column %q has no type", ErrInvalidElement, c.Name)
		}
		if _, dup := seen[c.Name]; dup {
			return Value{}, fmt.Errorf("%w: duplicate column %q", ErrInvalidElement, c.Name)
		}
		seen[c.Name] = struct{}{}
		values[i] = c.Value
	}
	n, err := CommonSize(values...)
	if err != nil {
		return Value{}, err
	}
	fields := make([]ptype.Field, len(cols))
	out := make([]Column, len(cols))
	for i, c := range cols {
		rv, err := Recycle(c.Value, n)
		if err != nil {
			return Value{}, fmt.Errorf("column %q: %w", c.Name, err)
		}
		fields[i] = ptype.Req(c.Name, rv.Type())
		out[i] = Column{Name: c.Name, Value: rv}
	}
	return Value{typ: ptype.RecordOf(fields...), n: n, cols: out}, nil
}

// WithType returns a record vector of type t holding cols. The caller
// guarantees every column already has the matching field type and length n.
func WithType(t ptype.Record, n int, cols []Column) Value {
	return Value{typ: t, n: n, cols: append([]Column(nil), cols...)}
}

// withData wraps pre-built atomic or list elements.
func withData(t ptype.Type, data []any) Value {
	return Value{typ: t, n: len(data), data: data}
}

// FromElems is like Of but skips per-element validation. The caller
// guarantees elems already match t.
func FromElems(t ptype.Type, elems []any) Value {
	return withData(t, append([]any(nil), elems...))
}
