// Package queryir provides the filter intermediate representation used by
// the matex query engine and its SQL push-down backend.
//
// ARCHITECTURE:
//
// A FilterSpec is the declarative value a caller builds from user input.
// FilterSpec.Predicate lowers it to a predicate tree, which backends
// evaluate:
//
//	[FilterSpec] → [Predicate IR] → [in-memory engine]
//	                              → [SQLite backend]
//
// PREDICATES:
//
//   - Range: inclusive numeric bounds on one material.Field
//   - Contains: case-insensitive substring of the formula
//   - HasElements: every listed element symbol is present in the formula
//   - And: all predicates must hold (empty And is always true)
//
// SEALED INTERFACES:
//
// Predicate is a sealed interface using the marker method pattern. Only
// types in this package implement it, so backends can switch exhaustively:
//
//	switch p := pred.(type) {
//	case Range:
//	case Contains:
//	case HasElements:
//	case And:
//	}
//
// VALUE SEMANTICS:
//
// FilterSpec is passed by value. Its With* methods return modified copies
// and never share slices with the receiver, so a spec handed to the engine
// cannot be changed behind its back.
package queryir
