// Package cast converts vectors between types along the relation defined by
// ptype.Castable. Casts are pure: the input is never modified and a failed
// cast returns no partial result.
package cast
