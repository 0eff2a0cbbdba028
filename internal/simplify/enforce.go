package simplify

import (
	"github.com/vk/vecmap/internal/ptype"
	"github.com/vk/vecmap/internal/vector"
)

// Enforce applies the size rule for target type t. For ptype.Any it is a
// no-op. For every other type each value is recycled to length 1; values of
// length 0 or greater than 1 fail with a *SizeError naming the first
// offending index.
func Enforce(values []vector.Value, t ptype.Type) ([]vector.Value, error) {
	if ptype.IsAny(t) {
		return values, nil
	}
	out := make([]vector.Value, len(values))
	for i, v := range values {
		rv, err := vector.Recycle(v, 1)
		if err != nil {
			return nil, &SizeError{Expected: 1, Got: v.Len(), Index: i}
		}
		out[i] = rv
	}
	return out, nil
}
