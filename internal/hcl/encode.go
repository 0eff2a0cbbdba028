package hcl

import (
	"math"
	"time"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/vecmap/internal/ptype"
	"github.com/vk/vecmap/internal/vector"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// EncodeValue converts a vector to a cty tuple, one element per vector
// element. Records encode as a tuple of row objects; dates and factor
// labels encode as strings; missing elements encode as null.
func EncodeValue(v vector.Value) cty.Value {
	out := make([]cty.Value, v.Len())
	for i := range out {
		out[i] = encodeElem(v, i)
	}
	if len(out) == 0 {
		return cty.EmptyTupleVal
	}
	return cty.TupleVal(out)
}

func encodeElem(v vector.Value, i int) cty.Value {
	if rec, ok := v.Type().(ptype.Record); ok {
		attrs := make(map[string]cty.Value, len(rec.Fields))
		for _, c := range v.Columns() {
			attrs[c.Name] = encodeElem(c.Value, i)
		}
		if len(attrs) == 0 {
			return cty.EmptyObjectVal
		}
		return cty.ObjectVal(attrs)
	}

	switch x := v.Elem(i).(type) {
	case nil:
		return cty.NullVal(ctyPrimitive(v.Type()))
	case bool:
		return cty.BoolVal(x)
	case int64:
		return cty.NumberIntVal(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return cty.StringVal(vector.FormatElem(x))
		}
		return cty.NumberFloatVal(x)
	case string:
		return cty.StringVal(x)
	case time.Time:
		return cty.StringVal(x.Format(vector.DateLayout))
	case vector.Value:
		return EncodeValue(x)
	}
	return cty.DynamicVal
}

func ctyPrimitive(t ptype.Type) cty.Type {
	switch t.(type) {
	case ptype.Logical:
		return cty.Bool
	case ptype.Integer, ptype.Double:
		return cty.Number
	}
	return cty.String
}

// MarshalHCL renders a simplified container as a results file: one result
// per element plus the container's type expression, so the output can be
// loaded again. Factor labels are written as strings.
func MarshalHCL(v vector.Value) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("results", EncodeValue(v))
	body.SetAttributeRaw("type", hclwrite.TokensForIdentifier(ptype.Name(v.Type())))
	return f.Bytes()
}

// MarshalJSON renders a simplified container as a JSON document holding
// its type, length and values.
func MarshalJSON(v vector.Value) ([]byte, error) {
	doc := cty.ObjectVal(map[string]cty.Value{
		"type":   cty.StringVal(ptype.Name(v.Type())),
		"length": cty.NumberIntVal(int64(v.Len())),
		"values": EncodeValue(v),
	})
	return ctyjson.Marshal(doc, doc.Type())
}
