package cast

import (
	"errors"
	"fmt"

	"github.com/vk/vecmap/internal/ptype"
	"github.com/vk/vecmap/internal/vector"
)

// Cast converts v into type to. On success the result has the same length
// as v and type to, except that a partial record target yields the concrete
// record it resolves to (unconstrained fields keep their source types).
//
// Casting into Any splits v into a list of length-1 values; a list is
// already of type Any and is returned unchanged.
func Cast(v vector.Value, to ptype.Type) (vector.Value, error) {
	if !v.IsValid() || to == nil {
		return vector.Value{}, &Error{From: v.Type(), To: to, Index: -1, Detail: "missing type"}
	}
	from := v.Type()
	if !ptype.Castable(from, to) {
		return vector.Value{}, &Error{From: from, To: to, Index: -1}
	}
	if from.Equal(to) {
		return v, nil
	}

	switch tt := to.(type) {
	case ptype.Any:
		items := make([]vector.Value, v.Len())
		for i := range items {
			items[i] = v.At(i)
		}
		return vector.List(items...), nil
	case ptype.Record:
		return castRecord(v, tt)
	}

	out := make([]any, v.Len())
	for i := range out {
		e, err := convertElem(from, to, v.Elem(i))
		if err != nil {
			return vector.Value{}, &Error{From: from, To: to, Index: i, Detail: err.Error()}
		}
		out[i] = e
	}
	return vector.FromElems(to, out), nil
}

func castRecord(v vector.Value, to ptype.Record) (vector.Value, error) {
	from := v.Type().(ptype.Record)
	n := v.Len()

	fields := make([]ptype.Field, 0, len(to.Fields)+len(from.Fields))
	cols := make([]vector.Column, 0, len(to.Fields)+len(from.Fields))
	for _, g := range to.Fields {
		src, ok := v.Column(g.Name)
		if !ok {
			col := vector.Missing(g.Type, n)
			fields = append(fields, ptype.Field{Name: g.Name, Type: col.Type(), Optional: g.Optional})
			cols = append(cols, vector.Column{Name: g.Name, Value: col})
			continue
		}
		col, err := Cast(src, g.Type)
		if err != nil {
			detail := err.Error()
			idx := -1
			var ce *Error
			if errors.As(err, &ce) {
				idx = ce.Index
			}
			return vector.Value{}, &Error{From: from, To: to, Index: idx, Detail: fmt.Sprintf("field %q: %s", g.Name, detail)}
		}
		fields = append(fields, ptype.Field{Name: g.Name, Type: col.Type(), Optional: g.Optional})
		cols = append(cols, vector.Column{Name: g.Name, Value: col})
	}

	if to.Partial {
		for _, f := range from.Fields {
			if _, named := to.Field(f.Name); named {
				continue
			}
			col, _ := v.Column(f.Name)
			fields = append(fields, f)
			cols = append(cols, vector.Column{Name: f.Name, Value: col})
		}
	}
	return vector.WithType(ptype.Record{Fields: fields}, n, cols), nil
}
