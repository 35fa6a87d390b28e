package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matex/internal/material"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		field   material.Field
		min     *float64
		max     *float64
		wantErr string
	}{
		{name: "closed", expr: "band_gap=0:3", field: material.FieldBandGap, min: Bound(0), max: Bound(3)},
		{name: "open max", expr: "density=5:", field: material.FieldDensity, min: Bound(5)},
		{name: "open min negative", expr: "formation_energy=:-1", field: material.FieldFormationEnergy, max: Bound(-1)},
		{name: "single value", expr: "band_gap=2", field: material.FieldBandGap, min: Bound(2), max: Bound(2)},
		{name: "spaces", expr: " Band_Gap = 0.5 : 1.5 ", field: material.FieldBandGap, min: Bound(0.5), max: Bound(1.5)},
		{name: "missing equals", expr: "band_gap", wantErr: "expected field=min:max"},
		{name: "unknown field", expr: "volume=1:2", wantErr: "unknown field"},
		{name: "missing bounds", expr: "band_gap=", wantErr: "missing bounds"},
		{name: "both open", expr: "band_gap=:", wantErr: "at least one bound"},
		{name: "bad min", expr: "band_gap=x:1", wantErr: "bad min"},
		{name: "bad max", expr: "band_gap=1:y", wantErr: "bad max"},
		{name: "bad single", expr: "band_gap=abc", wantErr: "bad value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.expr)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.field, r.Field)
			assert.Equal(t, tt.min, r.Min)
			assert.Equal(t, tt.max, r.Max)
		})
	}
}

func TestParseRange_MinGreaterThanMaxLeftToValidate(t *testing.T) {
	r, err := ParseRange("band_gap=5:1")
	require.NoError(t, err)

	result := Validate(FilterSpec{Ranges: []Range{r}})
	assert.False(t, result.Valid)
}

func TestParseElements(t *testing.T) {
	assert.Equal(t, []string{"Fe", "O"}, ParseElements("Fe,O"))
	assert.Equal(t, []string{"Fe", "Ti", "O"}, ParseElements(" Fe, Ti  O ,"))
	assert.Empty(t, ParseElements(""))
}
