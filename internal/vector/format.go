package vector

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vk/vecmap/internal/ptype"
)

// DateLayout is the textual form of a date element.
const DateLayout = "2006-01-02"

// String renders v as `type[len]{e1, e2, ...}`. Missing elements print as NA.
func (v Value) String() string {
	if !v.IsValid() {
		return "<invalid>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{", kindName(v.typ), v.n)
	if v.cols != nil {
		for i, c := range v.cols {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.Name + ": " + c.Value.String())
		}
	} else {
		for i, e := range v.data {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatElem(e))
		}
	}
	b.WriteString("}")
	return b.String()
}

func kindName(t ptype.Type) string {
	switch t.(type) {
	case ptype.Record:
		return "record"
	case ptype.Factor:
		return "factor"
	}
	return t.String()
}

// FormatElem renders a single raw element.
func FormatElem(e any) string {
	switch x := e.(type) {
	case nil:
		return "NA"
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return strconv.Quote(x)
	case time.Time:
		return x.Format(DateLayout)
	case Value:
		return x.String()
	}
	return fmt.Sprint(e)
}
