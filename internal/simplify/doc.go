// Package simplify turns the ordered per-element results of a mapping step
// into a single vector.
//
// # Pipeline
//
// Each stage gates the next:
//
//	Resolve  - find the common type, or accept the requested one
//	Enforce  - every value must have length 1 unless the type is Any
//	cast     - convert each value to the common type
//	Concat   - join the cast values in input order
//
// For a non-Any result, the output length equals the number of input
// values. When no type is requested and two results share no common type,
// the result is a list of the original values; this is the only failure
// the pipeline absorbs. Strict mode removes it by requiring a type.
package simplify
