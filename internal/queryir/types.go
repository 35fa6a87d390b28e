package queryir

import "github.com/roach88/matex/internal/material"

// Predicate represents a filter condition over material records.
//
// This is a sealed interface - only types in this package implement it.
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// Range is an inclusive numeric bound on a field.
//
// Semantics:
//
//	Min <= record.Field <= Max
//
// A nil bound leaves that side open. A Range with both bounds nil is
// inactive and matches every record.
type Range struct {
	Field material.Field
	Min   *float64
	Max   *float64
}

func (Range) predicateNode() {}

// Active reports whether the range constrains anything.
func (r Range) Active() bool {
	return r.Min != nil || r.Max != nil
}

// Contains is a case-insensitive substring match on the formula.
//
// An empty pattern matches every record.
type Contains struct {
	Pattern string
}

func (Contains) predicateNode() {}

// HasElements requires every symbol to be an element token of the formula.
//
// An empty symbol list matches every record.
type HasElements struct {
	Symbols []string
}

func (HasElements) predicateNode() {}

// And is a conjunction of predicates.
//
// Returns true if Predicates is empty (vacuous truth).
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Bound returns a pointer to v, for building Range literals.
func Bound(v float64) *float64 {
	return &v
}

// Between returns a range with both bounds set.
func Between(field material.Field, lo, hi float64) Range {
	return Range{Field: field, Min: Bound(lo), Max: Bound(hi)}
}

// AtLeast returns a range with only a lower bound.
func AtLeast(field material.Field, lo float64) Range {
	return Range{Field: field, Min: Bound(lo)}
}

// AtMost returns a range with only an upper bound.
func AtMost(field material.Field, hi float64) Range {
	return Range{Field: field, Max: Bound(hi)}
}
