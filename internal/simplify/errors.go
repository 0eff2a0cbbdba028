package simplify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/vecmap/internal/ptype"
)

// ErrInvalidInput is returned when the input collection is absent, one of
// its elements carries no type, or strict mode is used without a type.
var ErrInvalidInput = errors.New("simplify: invalid input")

// NoCommonTypeError reports that an explicitly requested type cannot hold
// every value. Err is the underlying *cast.Error for the offending value.
type NoCommonTypeError struct {
	Types     []ptype.Type
	Requested ptype.Type
	Index     int
	Err       error
}

// Error implements the error interface.
func (e *NoCommonTypeError) Error() string {
	names := make([]string, len(e.Types))
	for i, t := range e.Types {
		names[i] = ptype.Name(t)
	}
	return fmt.Sprintf("simplify: element %d: no common type with requested %s (value types: %s): %v",
		e.Index, ptype.Name(e.Requested), strings.Join(names, ", "), e.Err)
}

// Unwrap returns the underlying cast error.
func (e *NoCommonTypeError) Unwrap() error { return e.Err }

// SizeError reports a value whose length breaks the one-element-per-input
// rule of a non-dynamic target type.
type SizeError struct {
	Expected int
	Got      int
	Index    int
}

// Error implements the error interface.
func (e *SizeError) Error() string {
	return fmt.Sprintf("simplify: element %d must have length %d, not %d", e.Index, e.Expected, e.Got)
}
