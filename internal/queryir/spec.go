package queryir

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// FilterSpec declares which records to keep.
//
// All active predicates are AND-combined. The zero FilterSpec matches
// every record.
type FilterSpec struct {
	// Ranges are inclusive numeric bounds; several ranges on the same
	// field all apply.
	Ranges []Range

	// Formula is a case-insensitive substring pattern ("" = unconstrained).
	Formula string

	// Elements are element symbols that must all appear in the formula.
	Elements []string
}

// IsEmpty reports whether the spec has no active predicate.
func (s FilterSpec) IsEmpty() bool {
	for _, r := range s.Ranges {
		if r.Active() {
			return false
		}
	}
	return s.Formula == "" && len(s.Elements) == 0
}

// Clone returns a deep copy of the spec.
func (s FilterSpec) Clone() FilterSpec {
	out := FilterSpec{
		Formula:  s.Formula,
		Elements: slices.Clone(s.Elements),
	}
	if s.Ranges != nil {
		out.Ranges = make([]Range, len(s.Ranges))
		for i, r := range s.Ranges {
			out.Ranges[i] = Range{Field: r.Field, Min: copyBound(r.Min), Max: copyBound(r.Max)}
		}
	}
	return out
}

// WithRange returns a copy of the spec with r appended.
func (s FilterSpec) WithRange(r Range) FilterSpec {
	out := s.Clone()
	out.Ranges = append(out.Ranges, Range{Field: r.Field, Min: copyBound(r.Min), Max: copyBound(r.Max)})
	return out
}

// WithFormula returns a copy of the spec with the formula pattern replaced.
func (s FilterSpec) WithFormula(pattern string) FilterSpec {
	out := s.Clone()
	out.Formula = pattern
	return out
}

// WithElements returns a copy of the spec with the element list replaced.
func (s FilterSpec) WithElements(symbols ...string) FilterSpec {
	out := s.Clone()
	out.Elements = slices.Clone(symbols)
	return out
}

// Predicate lowers the spec to a predicate tree.
//
// The result is always an And holding the active predicates in the order
// ranges, formula, elements. Inactive ranges are dropped.
func (s FilterSpec) Predicate() And {
	preds := []Predicate{}
	for _, r := range s.Ranges {
		if r.Active() {
			preds = append(preds, Range{Field: r.Field, Min: copyBound(r.Min), Max: copyBound(r.Max)})
		}
	}
	if s.Formula != "" {
		preds = append(preds, Contains{Pattern: s.Formula})
	}
	if len(s.Elements) > 0 {
		preds = append(preds, HasElements{Symbols: slices.Clone(s.Elements)})
	}
	return And{Predicates: preds}
}

// String renders the spec for logs and CLI summaries.
func (s FilterSpec) String() string {
	if s.IsEmpty() {
		return "all records"
	}
	var parts []string
	for _, r := range s.Ranges {
		if r.Active() {
			parts = append(parts, r.String())
		}
	}
	if s.Formula != "" {
		parts = append(parts, fmt.Sprintf("formula contains %q", s.Formula))
	}
	if len(s.Elements) > 0 {
		parts = append(parts, "elements "+strings.Join(s.Elements, ","))
	}
	return strings.Join(parts, " and ")
}

// String renders the range as "lo <= field <= hi", omitting open sides.
func (r Range) String() string {
	switch {
	case r.Min != nil && r.Max != nil:
		return fmt.Sprintf("%s <= %s <= %s", formatBound(*r.Min), r.Field, formatBound(*r.Max))
	case r.Min != nil:
		return fmt.Sprintf("%s >= %s", r.Field, formatBound(*r.Min))
	case r.Max != nil:
		return fmt.Sprintf("%s <= %s", r.Field, formatBound(*r.Max))
	}
	return fmt.Sprintf("%s unconstrained", r.Field)
}

// Matches reports whether v lies within the range.
func (r Range) Matches(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func copyBound(b *float64) *float64 {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// fieldOf is used by validation messages for ranges built from raw input.
func fieldOf(r Range) string {
	if r.Field == "" {
		return "<empty>"
	}
	return string(r.Field)
}
