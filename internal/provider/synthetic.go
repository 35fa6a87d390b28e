package provider

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/roach88/matex/internal/material"
)

// DefaultRows is the number of records Synthetic produces when Rows is 0.
const DefaultRows = 100

// DefaultFormulas are the formulas Synthetic draws from.
var DefaultFormulas = []string{"Fe2O3", "TiO2", "SiO2", "Al2O3", "ZnO"}

// Sampling intervals, half-open [lo, hi).
var (
	bandGapRange         = [2]float64{0, 5}
	densityRange         = [2]float64{2, 10}
	energyAboveHullRange = [2]float64{0, 1}
	formationEnergyRange = [2]float64{-5, 0}
)

// Synthetic generates a random materials table.
//
// Record i (1-based) has id "mp-i"; its formula is drawn uniformly from
// Formulas and each numeric field uniformly from its sampling interval.
// With a non-zero Seed the table is reproducible; Seed 0 draws a fresh
// seed on every Load.
type Synthetic struct {
	// Rows is the number of records (DefaultRows when 0).
	Rows int

	// Seed seeds the PCG generator (0 = random).
	Seed uint64

	// Formulas overrides DefaultFormulas when non-empty.
	Formulas []string
}

// NewSynthetic creates a synthetic source.
func NewSynthetic(rows int, seed uint64) *Synthetic {
	return &Synthetic{Rows: rows, Seed: seed}
}

// Load generates a table. It never blocks beyond checking ctx.
func (s *Synthetic) Load(ctx context.Context) (material.Table, error) {
	if err := ctx.Err(); err != nil {
		return material.Table{}, err
	}
	return material.NewTable(s.Generate())
}

// Generate returns the records Load would wrap in a table.
func (s *Synthetic) Generate() []material.Record {
	n := s.Rows
	if n <= 0 {
		n = DefaultRows
	}
	formulas := s.Formulas
	if len(formulas) == 0 {
		formulas = DefaultFormulas
	}
	seed := s.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	records := make([]material.Record, n)
	for i := range records {
		records[i] = material.Record{
			ID:              fmt.Sprintf("mp-%d", i+1),
			Formula:         formulas[rng.IntN(len(formulas))],
			BandGap:         uniform(rng, bandGapRange),
			Density:         uniform(rng, densityRange),
			EnergyAboveHull: uniform(rng, energyAboveHullRange),
			FormationEnergy: uniform(rng, formationEnergyRange),
		}
	}
	return records
}

func uniform(rng *rand.Rand, r [2]float64) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}
