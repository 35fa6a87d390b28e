package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElements(t *testing.T) {
	tests := []struct {
		formula  string
		expected []string
	}{
		{"Fe2O3", []string{"Fe", "O"}},
		{"TiO2", []string{"Ti", "O"}},
		{"SiO2", []string{"Si", "O"}},
		{"Al2O3", []string{"Al", "O"}},
		{"ZnO", []string{"Zn", "O"}},
		{"Ca(OH)2", []string{"Ca", "O", "H"}},
		{"OsO4", []string{"Os", "O"}},
		{"H2O2", []string{"H", "O"}},
		{"", []string{}},
		{"123", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			assert.Equal(t, tt.expected, Elements(tt.formula))
		})
	}
}

func TestValidSymbol(t *testing.T) {
	valid := []string{"O", "Fe", "Uue"}
	invalid := []string{"", "fe", "FE", "Feee", "F1", " O"}

	for _, s := range valid {
		assert.True(t, ValidSymbol(s), "expected %q to be valid", s)
	}
	for _, s := range invalid {
		assert.False(t, ValidSymbol(s), "expected %q to be invalid", s)
	}
}

func TestRecordElements(t *testing.T) {
	r := Record{ID: "mp-1", Formula: "Fe2O3"}
	assert.Equal(t, []string{"Fe", "O"}, r.Elements())
}
