package vector

import (
	"fmt"

	"github.com/vk/vecmap/internal/ptype"
)

// Concat joins values end to end into one vector of type t. Every value
// must already have type t; the result length is the sum of their lengths.
func Concat(t ptype.Type, values ...Value) (Value, error) {
	total := 0
	for i, v := range values {
		if !ptype.Equal(v.Type(), t) {
			return Value{}, fmt.Errorf("vector: cannot concatenate value %d of type %s into %s", i, ptype.Name(v.Type()), ptype.Name(t))
		}
		total += v.Len()
	}

	rt, isRecord := t.(ptype.Record)
	if !isRecord {
		data := make([]any, 0, total)
		for _, v := range values {
			data = append(data, v.data...)
		}
		return withData(t, data), nil
	}

	cols := make([]Column, len(rt.Fields))
	for i, f := range rt.Fields {
		parts := make([]Value, len(values))
		for j, v := range values {
			parts[j] = v.cols[i].Value
		}
		col, err := Concat(f.Type, parts...)
		if err != nil {
			return Value{}, fmt.Errorf("column %q: %w", f.Name, err)
		}
		cols[i] = Column{Name: f.Name, Value: col}
	}
	return Value{typ: rt, n: total, cols: cols}, nil
}
