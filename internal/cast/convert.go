package cast

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vk/vecmap/internal/ptype"
	"github.com/vk/vecmap/internal/vector"
)

var errLossy = errors.New("value would lose precision")

// convertElem converts one raw atomic element. Missing stays missing.
func convertElem(from, to ptype.Type, e any) (any, error) {
	if e == nil {
		return nil, nil
	}
	switch x := e.(type) {
	case bool:
		return fromLogical(x, to)
	case int64:
		return fromInteger(x, to)
	case float64:
		return fromDouble(x, to)
	case time.Time:
		if _, ok := to.(ptype.Character); ok {
			return x.Format(vector.DateLayout), nil
		}
	case string:
		if _, ok := from.(ptype.Factor); ok {
			return x, nil
		}
		return fromCharacter(x, to)
	}
	return nil, fmt.Errorf("unsupported element %T", e)
}

func fromLogical(b bool, to ptype.Type) (any, error) {
	switch to.(type) {
	case ptype.Integer:
		if b {
			return int64(1), nil
		}
		return int64(0), nil
	case ptype.Double:
		if b {
			return 1.0, nil
		}
		return 0.0, nil
	case ptype.Character:
		return vector.FormatElem(b), nil
	}
	return nil, fmt.Errorf("unsupported target %s", to)
}

func fromInteger(i int64, to ptype.Type) (any, error) {
	switch to.(type) {
	case ptype.Logical:
		switch i {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return nil, fmt.Errorf("%w: %d is not 0 or 1", errLossy, i)
	case ptype.Double:
		return float64(i), nil
	case ptype.Character:
		return strconv.FormatInt(i, 10), nil
	}
	return nil, fmt.Errorf("unsupported target %s", to)
}

func fromDouble(f float64, to ptype.Type) (any, error) {
	switch to.(type) {
	case ptype.Logical:
		switch f {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return nil, fmt.Errorf("%w: %g is not 0 or 1", errLossy, f)
	case ptype.Integer:
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fmt.Errorf("%w: %g is not a whole number in range", errLossy, f)
		}
		return int64(f), nil
	case ptype.Character:
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	}
	return nil, fmt.Errorf("unsupported target %s", to)
}

func fromCharacter(s string, to ptype.Type) (any, error) {
	switch to.(type) {
	case ptype.Logical:
		switch strings.TrimSpace(s) {
		case "TRUE", "True", "true", "T":
			return true, nil
		case "FALSE", "False", "false", "F":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a logical", s)
	case ptype.Integer:
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", s)
		}
		return i, nil
	case ptype.Double:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", s)
		}
		return f, nil
	case ptype.Date:
		t, err := time.Parse(vector.DateLayout, strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%q is not a date", s)
		}
		return t, nil
	}
	return nil, fmt.Errorf("unsupported target %s", to)
}
