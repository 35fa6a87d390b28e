package queryir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/matex/internal/material"
)

// ParseRange parses a range expression of the form "field=min:max".
//
// Either bound may be omitted to leave that side open, and a single value
// pins both bounds:
//
//	band_gap=0:3      0 <= band_gap <= 3
//	density=5:        density >= 5
//	formation_energy=:-1
//	band_gap=2        band_gap == 2
//
// The returned range is not validated; pass the resulting spec to Validate.
func ParseRange(expr string) (Range, error) {
	name, bounds, ok := strings.Cut(expr, "=")
	if !ok {
		return Range{}, fmt.Errorf("invalid range %q: expected field=min:max", expr)
	}

	field, err := material.ParseField(name)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range %q: %w", expr, err)
	}

	bounds = strings.TrimSpace(bounds)
	if bounds == "" {
		return Range{}, fmt.Errorf("invalid range %q: missing bounds", expr)
	}

	lo, hi, isInterval := strings.Cut(bounds, ":")
	if !isInterval {
		v, err := parseBound(lo)
		if err != nil || v == nil {
			return Range{}, fmt.Errorf("invalid range %q: bad value %q", expr, lo)
		}
		return Range{Field: field, Min: v, Max: copyBound(v)}, nil
	}

	r := Range{Field: field}
	if r.Min, err = parseBound(lo); err != nil {
		return Range{}, fmt.Errorf("invalid range %q: bad min: %w", expr, err)
	}
	if r.Max, err = parseBound(hi); err != nil {
		return Range{}, fmt.Errorf("invalid range %q: bad max: %w", expr, err)
	}
	if !r.Active() {
		return Range{}, fmt.Errorf("invalid range %q: at least one bound is required", expr)
	}
	return r, nil
}

// ParseElements splits a comma or space separated list of element symbols.
// Empty entries are dropped; symbols are not validated.
func ParseElements(list string) []string {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseBound(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
