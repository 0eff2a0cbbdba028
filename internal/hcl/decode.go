package hcl

import (
	"context"
	"fmt"

	"github.com/vk/vecmap/internal/ctxlog"
	"github.com/vk/vecmap/internal/ptype"
	"github.com/vk/vecmap/internal/vector"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// DecodeValue converts one HCL result literal into a vector:
//
//   - null becomes a missing logical of length 1;
//   - bool, number and string scalars become length-1 vectors (whole
//     numbers that fit in 64 bits are integers, others doubles);
//   - tuples and lists of scalars become one atomic vector, after unifying
//     their element types;
//   - objects become a record whose columns are the decoded attributes,
//     recycled to a common size;
//   - any other tuple becomes a list of its decoded elements.
func DecodeValue(ctx context.Context, val cty.Value) (vector.Value, error) {
	logger := ctxlog.FromContext(ctx)

	if !val.IsKnown() {
		return vector.Value{}, fmt.Errorf("value is not known")
	}
	if val.IsNull() {
		return vector.Missing(nullType(val.Type()), 1), nil
	}

	ty := val.Type()
	switch {
	case ty.IsPrimitiveType():
		return decodeScalars([]cty.Value{val}, ty)

	case ty.IsObjectType() || ty.IsMapType():
		cols := make([]vector.Column, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			col, err := DecodeValue(ctx, v)
			if err != nil {
				return vector.Value{}, fmt.Errorf("field %q: %w", k.AsString(), err)
			}
			cols = append(cols, vector.Column{Name: k.AsString(), Value: col})
		}
		logger.Debug("Decoded object literal as record.", "fields", len(cols))
		return vector.RecordOf(cols...)

	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		return decodeSequence(ctx, val)
	}
	return vector.Value{}, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
}

// DecodeValueAs is DecodeValue guided by the type the result will be cast
// to. Strings under a factor become labels of that factor when every label
// is one of its levels, and a bare null takes the hinted atomic kind. Record
// hints apply field by field. A nil hint decodes as DecodeValue does.
func DecodeValueAs(ctx context.Context, val cty.Value, hint ptype.Type) (vector.Value, error) {
	v, err := DecodeValue(ctx, val)
	if err != nil || hint == nil {
		return v, err
	}
	return applyHint(v, hint)
}

func applyHint(v vector.Value, hint ptype.Type) (vector.Value, error) {
	if h, ok := hint.(ptype.Record); ok {
		if _, isRecord := v.Type().(ptype.Record); !isRecord {
			return v, nil
		}
		cols := v.Columns()
		out := make([]vector.Column, len(cols))
		for i, c := range cols {
			out[i] = c
			f, named := h.Field(c.Name)
			if !named {
				continue
			}
			hinted, err := applyHint(c.Value, f.Type)
			if err != nil {
				return vector.Value{}, fmt.Errorf("field %q: %w", c.Name, err)
			}
			out[i].Value = hinted
		}
		return vector.RecordOf(out...)
	}
	if !ptype.IsAtomic(hint) {
		return v, nil
	}

	if ptype.Equal(v.Type(), ptype.Logical{}) && allMissing(v) {
		return vector.Missing(hint, v.Len()), nil
	}
	if f, ok := hint.(ptype.Factor); ok && ptype.Equal(v.Type(), ptype.Character{}) {
		if labels, err := vector.Of(f, v.Elems()...); err == nil {
			return labels, nil
		}
	}
	return v, nil
}

func allMissing(v vector.Value) bool {
	for i := 0; i < v.Len(); i++ {
		if !v.IsMissing(i) {
			return false
		}
	}
	return true
}

func decodeSequence(ctx context.Context, val cty.Value) (vector.Value, error) {
	elems := val.AsValueSlice()
	if len(elems) == 0 {
		return vector.List(), nil
	}

	var types []cty.Type
	for _, e := range elems {
		if !e.IsNull() {
			types = append(types, e.Type())
		}
	}
	if len(types) == 0 {
		return vector.Missing(ptype.Logical{}, len(elems)), nil
	}

	unified, _ := convert.Unify(types)
	if unified != cty.NilType && unified.IsPrimitiveType() {
		converted := make([]cty.Value, len(elems))
		for i, e := range elems {
			if e.IsNull() {
				converted[i] = cty.NullVal(unified)
				continue
			}
			cv, err := convert.Convert(e, unified)
			if err != nil {
				return vector.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			converted[i] = cv
		}
		return decodeScalars(converted, unified)
	}

	ctxlog.FromContext(ctx).Debug("Sequence is not homogeneous, decoding as list.", "length", len(elems))
	items := make([]vector.Value, len(elems))
	for i, e := range elems {
		item, err := DecodeValue(ctx, e)
		if err != nil {
			return vector.Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		items[i] = item
	}
	return vector.List(items...), nil
}

// decodeScalars builds one atomic vector from values that all have the
// primitive type ty (or are null).
func decodeScalars(vals []cty.Value, ty cty.Type) (vector.Value, error) {
	switch {
	case ty.Equals(cty.Bool):
		return scalars[bool](vals, ptype.Logical{})
	case ty.Equals(cty.String):
		return scalars[string](vals, ptype.Character{})
	case ty.Equals(cty.Number):
		if v, err := scalars[int64](vals, ptype.Integer{}); err == nil {
			return v, nil
		}
		return scalars[float64](vals, ptype.Double{})
	}
	return vector.Value{}, fmt.Errorf("unsupported primitive type %s", ty.FriendlyName())
}

func scalars[T any](vals []cty.Value, t ptype.Type) (vector.Value, error) {
	elems := make([]any, len(vals))
	for i, v := range vals {
		if v.IsNull() {
			continue
		}
		var x T
		if err := gocty.FromCtyValue(v, &x); err != nil {
			return vector.Value{}, err
		}
		elems[i] = x
	}
	return vector.Of(t, elems...)
}

func nullType(ty cty.Type) ptype.Type {
	switch {
	case ty.Equals(cty.String):
		return ptype.Character{}
	case ty.Equals(cty.Number):
		return ptype.Double{}
	}
	return ptype.Logical{}
}
