package engine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/queryir"
)

// matcher is a flattened, pre-processed predicate tree.
//
// The IR has no disjunction, so any tree of And nodes flattens to one
// conjunction of leaves.
type matcher struct {
	ranges   []queryir.Range
	patterns []string // case-folded, NFC
	elements []string
}

func newMatcher(p queryir.Predicate) *matcher {
	m := &matcher{}
	m.add(p)
	return m
}

func (m *matcher) add(p queryir.Predicate) {
	switch pred := p.(type) {
	case nil:
	case queryir.Range:
		if pred.Active() {
			m.ranges = append(m.ranges, pred)
		}
	case *queryir.Range:
		m.add(*pred)
	case queryir.Contains:
		if pred.Pattern != "" {
			m.patterns = append(m.patterns, fold(pred.Pattern))
		}
	case *queryir.Contains:
		m.add(*pred)
	case queryir.HasElements:
		m.elements = append(m.elements, pred.Symbols...)
	case *queryir.HasElements:
		m.add(*pred)
	case queryir.And:
		for _, sub := range pred.Predicates {
			m.add(sub)
		}
	case *queryir.And:
		m.add(*pred)
	}
}

// matchScalar checks the range and substring predicates.
// Element predicates are answered by the table index.
func (m *matcher) matchScalar(r material.Record) bool {
	for _, rg := range m.ranges {
		if !rg.Matches(rg.Field.Value(r)) {
			return false
		}
	}
	if len(m.patterns) > 0 {
		formula := fold(r.Formula)
		for _, p := range m.patterns {
			if !strings.Contains(formula, p) {
				return false
			}
		}
	}
	return true
}

// matchElements checks element predicates directly against the formula.
func (m *matcher) matchElements(r material.Record) bool {
	if len(m.elements) == 0 {
		return true
	}
	present := make(map[string]bool)
	for _, sym := range r.Elements() {
		present[sym] = true
	}
	for _, sym := range m.elements {
		if !present[sym] {
			return false
		}
	}
	return true
}

// fold returns the NFC, Unicode case-folded form of s.
// A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
