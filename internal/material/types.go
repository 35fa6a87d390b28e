package material

import (
	"fmt"
	"strings"
)

// Record is one material's property tuple.
type Record struct {
	ID              string  `json:"id" yaml:"id"`
	Formula         string  `json:"formula" yaml:"formula"`
	BandGap         float64 `json:"band_gap" yaml:"band_gap"`                   // eV
	Density         float64 `json:"density" yaml:"density"`                     // g/cm³
	EnergyAboveHull float64 `json:"energy_above_hull" yaml:"energy_above_hull"` // eV/atom
	FormationEnergy float64 `json:"formation_energy" yaml:"formation_energy"`   // eV/atom
}

// Elements returns the element symbols of the record's formula.
func (r Record) Elements() []string {
	return Elements(r.Formula)
}

// Field names a numeric property of a Record.
type Field string

const (
	FieldBandGap         Field = "band_gap"
	FieldDensity         Field = "density"
	FieldEnergyAboveHull Field = "energy_above_hull"
	FieldFormationEnergy Field = "formation_energy"
)

// Fields lists every numeric field in column order.
var Fields = []Field{
	FieldBandGap,
	FieldDensity,
	FieldEnergyAboveHull,
	FieldFormationEnergy,
}

// ParseField converts a field name to a Field.
// Matching ignores surrounding whitespace and case.
func ParseField(name string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown field %q: must be one of %v", name, Fields)
	}
	return f, nil
}

// Valid reports whether f is one of the known numeric fields.
func (f Field) Valid() bool {
	switch f {
	case FieldBandGap, FieldDensity, FieldEnergyAboveHull, FieldFormationEnergy:
		return true
	}
	return false
}

// Value returns the value of field f in r.
// Panics on an unknown field; callers validate fields up front.
func (f Field) Value(r Record) float64 {
	switch f {
	case FieldBandGap:
		return r.BandGap
	case FieldDensity:
		return r.Density
	case FieldEnergyAboveHull:
		return r.EnergyAboveHull
	case FieldFormationEnergy:
		return r.FormationEnergy
	}
	panic(fmt.Sprintf("material: unknown field %q", string(f)))
}

// Unit returns the display unit of the field.
func (f Field) Unit() string {
	switch f {
	case FieldBandGap:
		return "eV"
	case FieldDensity:
		return "g/cm³"
	case FieldEnergyAboveHull, FieldFormationEnergy:
		return "eV/atom"
	}
	return ""
}
