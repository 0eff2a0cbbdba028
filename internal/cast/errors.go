package cast

import (
	"fmt"

	"github.com/vk/vecmap/internal/ptype"
)

// Error reports that a value of type From could not be converted to To.
//
// Index is -1 when the cast relation itself forbids the conversion, and the
// position of the first failing element otherwise.
type Error struct {
	From   ptype.Type
	To     ptype.Type
	Index  int
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("cast: can't convert %s to %s", ptype.Name(e.From), ptype.Name(e.To))
	if e.Index >= 0 {
		msg = fmt.Sprintf("cast: can't convert element %d of %s to %s", e.Index, ptype.Name(e.From), ptype.Name(e.To))
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}
