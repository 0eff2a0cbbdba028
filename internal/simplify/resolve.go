package simplify

import (
	"fmt"

	"github.com/vk/vecmap/internal/cast"
	"github.com/vk/vecmap/internal/ptype"
	"github.com/vk/vecmap/internal/vector"
)

// Resolve computes the type every value can be cast into.
//
// With requested == nil the types are folded left to right with ptype.LUB;
// when two kinds share no ancestor the result is ptype.Any and no error is
// returned. With an explicit request every value must be castable into it,
// otherwise a *NoCommonTypeError names the first offending value. Partial
// records in the request, including nested ones, resolve to concrete
// records: the requested fields first, then the remaining fields unified
// across all values.
func Resolve(values []vector.Value, requested ptype.Type) (ptype.Type, error) {
	t, _, err := resolve(values, requested)
	return t, err
}

// resolve is Resolve that also reports whether inference fell back to Any
// because of unrelated kinds.
func resolve(values []vector.Value, requested ptype.Type) (ptype.Type, bool, error) {
	if err := validate(values); err != nil {
		return nil, false, err
	}
	if requested != nil {
		t, err := resolveRequested(values, requested)
		return t, false, err
	}

	var acc ptype.Type = ptype.Any{}
	for i, v := range values {
		if i == 0 {
			acc = v.Type()
			continue
		}
		next, ok := ptype.LUB(acc, v.Type())
		if !ok {
			return ptype.Any{}, true, nil
		}
		acc = next
	}
	return acc, false, nil
}

func validate(values []vector.Value) error {
	if values == nil {
		return fmt.Errorf("%w: no collection", ErrInvalidInput)
	}
	for i, v := range values {
		if !v.IsValid() {
			return fmt.Errorf("%w: element %d has no type", ErrInvalidInput, i)
		}
	}
	return nil
}

func resolveRequested(values []vector.Value, requested ptype.Type) (ptype.Type, error) {
	types := make([]ptype.Type, len(values))
	for i, v := range values {
		types[i] = v.Type()
	}
	for i, t := range types {
		if ptype.Castable(t, requested) {
			continue
		}
		return nil, &NoCommonTypeError{
			Types:     types,
			Requested: requested,
			Index:     i,
			Err:       &cast.Error{From: t, To: requested, Index: -1},
		}
	}
	return concrete(requested, types), nil
}

// concrete replaces every partial record in requested, at any depth, with
// the record the given value types resolve to: the requested fields first,
// then the fields the partial leaves unconstrained, unified across types.
func concrete(requested ptype.Type, types []ptype.Type) ptype.Type {
	rec, ok := requested.(ptype.Record)
	if !ok {
		return requested
	}

	fields := make([]ptype.Field, 0, len(rec.Fields))
	for _, f := range rec.Fields {
		var sub []ptype.Type
		for _, t := range types {
			if r, ok := t.(ptype.Record); ok {
				if g, ok := r.Field(f.Name); ok {
					sub = append(sub, g.Type)
				}
			}
		}
		f.Type = concrete(f.Type, sub)
		fields = append(fields, f)
	}
	if !rec.Partial {
		return ptype.Record{Fields: fields}
	}

	var extra ptype.Type
	for _, t := range types {
		if r, ok := t.(ptype.Record); ok {
			extra, _ = ptype.LUB(extra, unconstrained(r, rec))
		}
	}
	if extra != nil {
		fields = append(fields, extra.(ptype.Record).Fields...)
	}
	return ptype.Record{Fields: fields}
}

// unconstrained returns the fields of r that the partial record p does not
// name.
func unconstrained(r, p ptype.Record) ptype.Record {
	out := ptype.Record{}
	for _, f := range r.Fields {
		if _, named := p.Field(f.Name); !named {
			out.Fields = append(out.Fields, f)
		}
	}
	return out
}
