// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ptype

import (
	"fmt"
	"strconv"
	"strings"
)

// Type describes the shape of a vector: its element kind and, for factors
// and records, the extra structure that belongs to the type itself. Values
// of Type are immutable. A nil Type means "no type requested".
type Type interface {
	fmt.Stringer

	// Equal reports structural equality with other.
	Equal(other Type) bool

	isType()
}

// Logical is the boolean kind.
type Logical struct{}

// Integer is the 64-bit integer kind.
type Integer struct{}

// Double is the 64-bit floating point kind.
type Double struct{}

// Character is the string kind.
type Character struct{}

// Date is a calendar day without a time of day.
type Date struct{}

// Any is the dynamic sentinel: values are kept as an untyped list and no
// coercion is applied.
type Any struct{}

// Factor is a categorical kind whose elements are drawn from Levels.
type Factor struct {
	Levels []string
}

func (Logical) isType()   {}
func (Integer) isType()   {}
func (Double) isType()    {}
func (Character) isType() {}
func (Date) isType()      {}
func (Any) isType()       {}
func (Factor) isType()    {}

func (Logical) String() string   { return "logical" }
func (Integer) String() string   { return "integer" }
func (Double) String() string    { return "double" }
func (Character) String() string { return "character" }
func (Date) String() string      { return "date" }
func (Any) String() string       { return "any" }

func (f Factor) String() string {
	if len(f.Levels) == 0 {
		return "factor"
	}
	quoted := make([]string, len(f.Levels))
	for i, l := range f.Levels {
		quoted[i] = strconv.Quote(l)
	}
	return "factor([" + strings.Join(quoted, ", ") + "])"
}

func (Logical) Equal(o Type) bool   { _, ok := o.(Logical); return ok }
func (Integer) Equal(o Type) bool   { _, ok := o.(Integer); return ok }
func (Double) Equal(o Type) bool    { _, ok := o.(Double); return ok }
func (Character) Equal(o Type) bool { _, ok := o.(Character); return ok }
func (Date) Equal(o Type) bool      { _, ok := o.(Date); return ok }
func (Any) Equal(o Type) bool       { _, ok := o.(Any); return ok }

func (f Factor) Equal(o Type) bool {
	of, ok := o.(Factor)
	if !ok || len(of.Levels) != len(f.Levels) {
		return false
	}
	for i := range f.Levels {
		if f.Levels[i] != of.Levels[i] {
			return false
		}
	}
	return true
}

// LevelIndex returns the position of level in f, or -1.
func (f Factor) LevelIndex(level string) int {
	for i, l := range f.Levels {
		if l == level {
			return i
		}
	}
	return -1
}

// Equal reports whether a and b describe the same type. Two nil types are
// equal.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// IsAny reports whether t is the dynamic sentinel.
func IsAny(t Type) bool {
	_, ok := t.(Any)
	return ok
}

// IsAtomic reports whether t stores scalar elements (every kind except Any
// and Record).
func IsAtomic(t Type) bool {
	switch t.(type) {
	case Logical, Integer, Double, Character, Date, Factor:
		return true
	}
	return false
}

// Name returns a stable, human-readable name for t, including "none" for
// a nil type.
func Name(t Type) string {
	if t == nil {
		return "none"
	}
	return t.String()
}
