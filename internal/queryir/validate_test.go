package queryir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/matex/internal/material"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		spec      FilterSpec
		valid     bool
		errSubstr string
	}{
		{
			name:  "empty spec",
			spec:  FilterSpec{},
			valid: true,
		},
		{
			name:  "equal bounds",
			spec:  FilterSpec{Ranges: []Range{Between(material.FieldBandGap, 2, 2)}},
			valid: true,
		},
		{
			name:      "min greater than max",
			spec:      FilterSpec{Ranges: []Range{Between(material.FieldBandGap, 5, 1)}},
			errSubstr: "band_gap: min 5 is greater than max 1",
		},
		{
			name:      "unknown field",
			spec:      FilterSpec{Ranges: []Range{AtLeast("volume", 1)}},
			errSubstr: `unknown field "volume"`,
		},
		{
			name:      "empty field",
			spec:      FilterSpec{Ranges: []Range{{}}},
			errSubstr: `unknown field "<empty>"`,
		},
		{
			name:      "NaN min",
			spec:      FilterSpec{Ranges: []Range{AtLeast(material.FieldDensity, math.NaN())}},
			errSubstr: "min bound NaN is not finite",
		},
		{
			name:      "infinite max",
			spec:      FilterSpec{Ranges: []Range{AtMost(material.FieldDensity, math.Inf(1))}},
			errSubstr: "max bound +Inf is not finite",
		},
		{
			name:      "malformed symbol",
			spec:      FilterSpec{Elements: []string{"Fe", "oxygen"}},
			errSubstr: `malformed element symbol "oxygen"`,
		},
		{
			name:  "formula never invalid",
			spec:  FilterSpec{Formula: "%_(["},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.spec)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.valid {
				assert.Empty(t, result.Problems)
				return
			}
			if assert.NotEmpty(t, result.Problems) {
				assert.Contains(t, result.Problems[0], tt.errSubstr)
			}
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	spec := FilterSpec{
		Ranges: []Range{
			Between(material.FieldBandGap, 5, 1),
			Between(material.FieldDensity, 9, 2),
		},
		Elements: []string{"xx"},
	}

	result := Validate(spec)
	assert.False(t, result.Valid)
	assert.Len(t, result.Problems, 3)
}

func TestValidatePredicate(t *testing.T) {
	valid := And{Predicates: []Predicate{
		Between(material.FieldBandGap, 0, 3),
		&Contains{Pattern: "ti"},
		&HasElements{Symbols: []string{"Ti"}},
		&And{},
	}}
	assert.True(t, ValidatePredicate(valid).Valid)
	assert.True(t, ValidatePredicate(nil).Valid)

	invalid := And{Predicates: []Predicate{
		&And{Predicates: []Predicate{&Range{Field: material.FieldBandGap, Min: Bound(3), Max: Bound(1)}}},
	}}
	result := ValidatePredicate(invalid)
	assert.False(t, result.Valid)
	assert.Len(t, result.Problems, 1)
}
