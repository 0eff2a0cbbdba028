package vector

import (
	"errors"
	"fmt"
)

// ErrIncompatibleSize is returned when values cannot be recycled to a
// common size.
var ErrIncompatibleSize = errors.New("vector: incompatible sizes")

// CommonSize returns the size a group of values recycles to: the largest
// length in the group. Every value must have length 1 or that maximum.
// An empty group has size 0.
func CommonSize(values ...Value) (int, error) {
	size := 0
	for _, v := range values {
		if v.Len() > size {
			size = v.Len()
		}
	}
	for i, v := range values {
		if v.Len() != 1 && v.Len() != size {
			return 0, fmt.Errorf("%w: value %d has length %d, want 1 or %d", ErrIncompatibleSize, i, v.Len(), size)
		}
	}
	return size, nil
}

// Recycle returns v extended to length n. Only length-1 values can be
// extended; a value already of length n is returned unchanged.
func Recycle(v Value, n int) (Value, error) {
	if v.Len() == n {
		return v, nil
	}
	if v.Len() != 1 {
		return Value{}, fmt.Errorf("%w: cannot recycle length %d to %d", ErrIncompatibleSize, v.Len(), n)
	}
	out := Value{typ: v.typ, n: n}
	if v.cols != nil {
		out.cols = make([]Column, len(v.cols))
		for i, c := range v.cols {
			rc, err := Recycle(c.Value, n)
			if err != nil {
				return Value{}, err
			}
			out.cols[i] = Column{Name: c.Name, Value: rc}
		}
		return out, nil
	}
	out.data = make([]any, n)
	for i := range out.data {
		out.data[i] = v.data[0]
	}
	return out, nil
}
