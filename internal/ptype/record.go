// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ptype

import "strings"

// Field is one named, typed column of a Record.
type Field struct {
	Name string
	Type Type
	// Optional fields may be absent from a source record; a cast fills them
	// with missing values.
	Optional bool
}

// Record is a row shape: an ordered mapping from field name to type.
//
// A Partial record constrains only the fields it names. Casting into a
// partial record leaves every other source field untouched.
type Record struct {
	Fields  []Field
	Partial bool
}

func (Record) isType() {}

func (r Record) String() string {
	var b strings.Builder
	if r.Partial {
		b.WriteString("partial({")
	} else {
		b.WriteString("record({")
	}
	for i, f := range r.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(" = ")
		if f.Optional {
			b.WriteString("optional(" + Name(f.Type) + ")")
		} else {
			b.WriteString(Name(f.Type))
		}
	}
	b.WriteString("})")
	return b.String()
}

func (r Record) Equal(o Type) bool {
	or, ok := o.(Record)
	if !ok || or.Partial != r.Partial || len(or.Fields) != len(r.Fields) {
		return false
	}
	for i, f := range r.Fields {
		g := or.Fields[i]
		if f.Name != g.Name || f.Optional != g.Optional || !Equal(f.Type, g.Type) {
			return false
		}
	}
	return true
}

// Field returns the field called name.
func (r Record) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the field names in order.
func (r Record) Names() []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = f.Name
	}
	return out
}

// RecordOf builds a complete (non-partial) record from fields.
func RecordOf(fields ...Field) Record {
	return Record{Fields: append([]Field(nil), fields...)}
}

// PartialOf builds a partial record that constrains only fields.
func PartialOf(fields ...Field) Record {
	return Record{Fields: append([]Field(nil), fields...), Partial: true}
}

// Req is shorthand for a required field.
func Req(name string, t Type) Field { return Field{Name: name, Type: t} }

// Opt is shorthand for an optional field.
func Opt(name string, t Type) Field { return Field{Name: name, Type: t, Optional: true} }
