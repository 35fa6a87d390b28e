// Package material defines the record and table model shared by every
// matex component.
//
// A Table is an ordered, immutable sequence of Records. Tables are produced
// once by a dataset provider and then only read: filtering derives new
// tables holding a subset of the parent's rows, it never mutates the parent.
//
// INDEXING:
//
// Each table carries a lazily built index (id → row position, element
// symbol → roaring bitmap of row positions). The index is built at most once
// per table, on first use, and is shared by every copy of the table value.
// Building is guarded by sync.Once, so concurrent readers are safe.
//
// ELEMENTS:
//
// A formula is tokenised into element symbols: an upper-case letter
// followed by lower-case letters. Counts, parentheses and charges are
// ignored, so "Fe2O3" has elements Fe and O, and "Os" never matches "O".
package material
