// Package chart shapes query results for display: scatter series, the
// details panel and the preview table.
//
// It produces plain data; rendering belongs to the caller.
package chart

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/matex/internal/material"
)

// DefaultPreviewRows is the number of rows Preview shows by default.
const DefaultPreviewRows = 10

// Default axes of a scatter plot.
const (
	DefaultX = material.FieldBandGap
	DefaultY = material.FieldDensity
)

// Axis choices offered to users, in display order.
var (
	XAxisOptions = []material.Field{material.FieldBandGap, material.FieldDensity, material.FieldFormationEnergy}
	YAxisOptions = []material.Field{material.FieldDensity, material.FieldBandGap, material.FieldFormationEnergy}
)

// Point is one record plotted at (X, Y). ID is shown on hover.
type Point struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Series groups the points of one formula; each series gets its own colour.
type Series struct {
	Formula string  `json:"formula"`
	Points  []Point `json:"points"`
}

// Scatter is a scatter plot of one field against another.
type Scatter struct {
	Title  string         `json:"title"`
	X      material.Field `json:"x"`
	Y      material.Field `json:"y"`
	XLabel string         `json:"x_label"`
	YLabel string         `json:"y_label"`
	Series []Series       `json:"series"`
}

// Points returns the total number of points across all series.
func (s Scatter) Points() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Points)
	}
	return n
}

// NewScatter builds a scatter of y against x over t.
//
// Series are sorted by formula; points within a series keep table order.
// A table with no rows yields a scatter with no series.
func NewScatter(t material.Table, x, y material.Field) (Scatter, error) {
	if !x.Valid() {
		return Scatter{}, fmt.Errorf("x axis: unknown field %q", string(x))
	}
	if !y.Valid() {
		return Scatter{}, fmt.Errorf("y axis: unknown field %q", string(y))
	}

	byFormula := make(map[string][]Point)
	for i := range t.Len() {
		r := t.At(i)
		byFormula[r.Formula] = append(byFormula[r.Formula], Point{ID: r.ID, X: x.Value(r), Y: y.Value(r)})
	}

	formulas := make([]string, 0, len(byFormula))
	for f := range byFormula {
		formulas = append(formulas, f)
	}
	slices.Sort(formulas)

	series := make([]Series, 0, len(formulas))
	for _, f := range formulas {
		series = append(series, Series{Formula: f, Points: byFormula[f]})
	}

	xl, yl := Label(x), Label(y)
	return Scatter{
		Title:  yl + " vs " + xl,
		X:      x,
		Y:      y,
		XLabel: xl,
		YLabel: yl,
		Series: series,
	}, nil
}

// Label renders a field name for display: "band_gap" → "Band Gap".
func Label(name material.Field) string {
	return titleCase(strings.ReplaceAll(string(name), "_", " "))
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// Property is one labelled line of the details panel.
type Property struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// String renders the value with its unit, if any.
func (p Property) String() string {
	if p.Unit == "" {
		return p.Value
	}
	return p.Value + " " + p.Unit
}

// Details lists the formula, band gap, density and formation energy of r.
func Details(r material.Record) []Property {
	props := []Property{{Name: "formula", Label: titleCase("formula"), Value: r.Formula}}
	for _, f := range []material.Field{material.FieldBandGap, material.FieldDensity, material.FieldFormationEnergy} {
		props = append(props, Property{
			Name:  string(f),
			Label: Label(f),
			Value: FormatValue(f.Value(r)),
			Unit:  f.Unit(),
		})
	}
	return props
}

// FormatValue renders a property value with the fewest digits that
// round-trip, never in exponent form.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Preview returns the first n rows of t (DefaultPreviewRows when n <= 0).
func Preview(t material.Table, n int) material.Table {
	if n <= 0 {
		n = DefaultPreviewRows
	}
	return t.Head(n)
}

// SearchSummary describes the outcome of a formula search.
func SearchSummary(pattern string, found int) string {
	if found == 0 {
		return fmt.Sprintf("No materials found containing '%s'", pattern)
	}
	return fmt.Sprintf("Found %d materials containing '%s'", found, pattern)
}
