// Package engine implements the matex query engine.
//
// The engine turns a queryir.FilterSpec into a filtered material.Table and
// answers point lookups by record id. It is purely functional over its
// inputs: it never mutates a table, never reads ambient state, and never
// blocks.
//
// EVALUATION:
//
//  1. Validate the spec; malformed specs fail with INVALID_SPEC before any
//     row is read.
//  2. An empty spec returns the input table unchanged.
//  3. Element predicates are answered from the table's roaring bitmap index
//     (element symbol → row positions), intersected into a candidate set.
//  4. Candidates are scanned in ascending row order against the range and
//     substring predicates.
//  5. Surviving positions form a derived table, so output order is always a
//     subsequence of input order.
//
// The per-table index is built once, on first use, and reused by every
// later query against the same table.
package engine
