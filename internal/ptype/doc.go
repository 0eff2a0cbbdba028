// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package ptype defines the closed set of type descriptors a vector can
// have, together with the two relations the simplification engine is built
// on: Castable, the explicit conversion relation, and LUB, the implicit
// promotion used to find a common type.
//
// Descriptors are plain comparable-by-structure values. Records are ordered
// field lists; a partial record pins down only the fields it names.
package ptype
