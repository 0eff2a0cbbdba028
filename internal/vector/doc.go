// Package vector holds the Value type passed between every stage of the
// simplification pipeline, plus the size rules (recycling) and the
// concatenation primitive the engine finishes with.
package vector
