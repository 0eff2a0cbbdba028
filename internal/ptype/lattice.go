// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ptype

// Castable reports whether every value of type from can be converted to
// type to. The relation is reflexive and asymmetric. A true result means a
// conversion exists; individual elements may still fail to convert (for
// example a character element that does not parse as a number).
func Castable(from, to Type) bool {
	if from == nil || to == nil {
		return false
	}
	if from.Equal(to) {
		return true
	}
	if IsAny(to) {
		return true
	}

	switch f := from.(type) {
	case Logical:
		switch to.(type) {
		case Integer, Double, Character:
			return true
		}
	case Integer:
		switch to.(type) {
		case Logical, Double, Character:
			return true
		}
	case Double:
		switch to.(type) {
		case Logical, Integer, Character:
			return true
		}
	case Character:
		switch to.(type) {
		case Logical, Integer, Double, Date:
			return true
		}
	case Date:
		_, ok := to.(Character)
		return ok
	case Factor:
		switch t := to.(type) {
		case Character:
			return true
		case Factor:
			return coversLevels(t.Levels, f.Levels)
		}
	case Record:
		if t, ok := to.(Record); ok {
			return recordCastable(f, t)
		}
	}
	return false
}

func recordCastable(from, to Record) bool {
	for _, g := range to.Fields {
		f, ok := from.Field(g.Name)
		if !ok {
			if g.Optional {
				continue
			}
			return false
		}
		if !Castable(f.Type, g.Type) {
			return false
		}
	}
	if to.Partial {
		return true
	}
	for _, f := range from.Fields {
		if _, ok := to.Field(f.Name); !ok {
			return false
		}
	}
	return true
}

func coversLevels(super, sub []string) bool {
	for _, l := range sub {
		found := false
		for _, s := range super {
			if s == l {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// numericRank orders the implicit promotion chain logical < integer < double.
func numericRank(t Type) int {
	switch t.(type) {
	case Logical:
		return 0
	case Integer:
		return 1
	case Double:
		return 2
	}
	return -1
}

// LUB returns the least upper bound of a and b: the most specific type both
// can be cast into under implicit promotion. When the kinds share no
// ancestor the result is Any and ok is false. A nil operand yields the
// other operand.
func LUB(a, b Type) (Type, bool) {
	switch {
	case a == nil && b == nil:
		return Any{}, true
	case a == nil:
		return b, true
	case b == nil:
		return a, true
	}
	if a.Equal(b) {
		return a, true
	}
	if IsAny(a) || IsAny(b) {
		return Any{}, true
	}

	if ra, rb := numericRank(a), numericRank(b); ra >= 0 && rb >= 0 {
		if ra >= rb {
			return a, true
		}
		return b, true
	}

	switch at := a.(type) {
	case Factor:
		switch bt := b.(type) {
		case Factor:
			return Factor{Levels: unionLevels(at.Levels, bt.Levels)}, true
		case Character:
			return Character{}, true
		}
	case Character:
		if _, ok := b.(Factor); ok {
			return Character{}, true
		}
	case Record:
		if bt, ok := b.(Record); ok {
			return recordLUB(at, bt), true
		}
	}
	return Any{}, false
}

// recordLUB unifies two records field by field. Fields keep first-seen
// order; a field present on only one side becomes optional. Fields whose
// kinds are unrelated become Any.
func recordLUB(a, b Record) Record {
	out := Record{Fields: make([]Field, 0, len(a.Fields)+len(b.Fields))}
	for _, f := range a.Fields {
		g, ok := b.Field(f.Name)
		if !ok {
			out.Fields = append(out.Fields, Field{Name: f.Name, Type: f.Type, Optional: true})
			continue
		}
		t, _ := LUB(f.Type, g.Type)
		out.Fields = append(out.Fields, Field{Name: f.Name, Type: t, Optional: f.Optional || g.Optional})
	}
	for _, g := range b.Fields {
		if _, ok := a.Field(g.Name); !ok {
			out.Fields = append(out.Fields, Field{Name: g.Name, Type: g.Type, Optional: true})
		}
	}
	return out
}

func unionLevels(a, b []string) []string {
	out := append([]string(nil), a...)
	for _, l := range b {
		if !coversLevels(out, []string{l}) {
			out = append(out, l)
		}
	}
	return out
}
