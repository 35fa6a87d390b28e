package queryir

import (
	"fmt"
	"math"

	"github.com/roach88/matex/internal/material"
)

// ValidationResult lists every problem found in a spec or predicate.
type ValidationResult struct {
	// Valid is true when Problems is empty.
	Valid bool

	// Problems are human-readable descriptions, in traversal order.
	Problems []string
}

// Validate checks a FilterSpec against its invariants:
//  1. every range names a known field
//  2. bounds are finite
//  3. min <= max when both are given
//  4. element symbols are well formed
//
// An empty spec is valid. Validate is a pure function.
func Validate(s FilterSpec) ValidationResult {
	v := &validator{problems: []string{}}
	for _, r := range s.Ranges {
		v.validateRange(r)
	}
	v.validateSymbols(s.Elements)
	return v.result()
}

// ValidatePredicate checks a predicate tree with the same rules as Validate.
func ValidatePredicate(p Predicate) ValidationResult {
	v := &validator{problems: []string{}}
	v.validatePredicate(p)
	return v.result()
}

// validator accumulates problems during traversal.
type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) result() ValidationResult {
	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case nil:
		// nil predicates are valid (no filter)
	case Range:
		v.validateRange(pred)
	case *Range:
		v.validateRange(*pred)
	case Contains, *Contains:
		// any pattern is valid; empty means unconstrained
	case HasElements:
		v.validateSymbols(pred.Symbols)
	case *HasElements:
		v.validateSymbols(pred.Symbols)
	case And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	case *And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	default:
		v.addProblem("unknown predicate type %T", p)
	}
}

func (v *validator) validateRange(r Range) {
	if !r.Field.Valid() {
		v.addProblem("range on unknown field %q: must be one of %v", fieldOf(r), material.Fields)
		return
	}
	if r.Min != nil && !finite(*r.Min) {
		v.addProblem("%s: min bound %v is not finite", r.Field, *r.Min)
		return
	}
	if r.Max != nil && !finite(*r.Max) {
		v.addProblem("%s: max bound %v is not finite", r.Field, *r.Max)
		return
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		v.addProblem("%s: min %s is greater than max %s", r.Field, formatBound(*r.Min), formatBound(*r.Max))
	}
}

func (v *validator) validateSymbols(symbols []string) {
	for _, sym := range symbols {
		if !material.ValidSymbol(sym) {
			v.addProblem("malformed element symbol %q", sym)
		}
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
