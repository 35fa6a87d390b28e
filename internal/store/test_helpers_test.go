package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/matex/internal/material"
)

// createTestStore creates a new store in a per-test temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// sampleTable returns a small table with known values.
func sampleTable(t *testing.T) material.Table {
	t.Helper()
	tbl, err := material.NewTable([]material.Record{
		{ID: "mp-1", Formula: "Fe2O3", BandGap: 2.0, Density: 5.2, EnergyAboveHull: 0.01, FormationEnergy: -1.8},
		{ID: "mp-2", Formula: "TiO2", BandGap: 3.5, Density: 4.2, EnergyAboveHull: 0.0, FormationEnergy: -3.3},
		{ID: "mp-3", Formula: "OsO4", BandGap: 1.1, Density: 4.9, EnergyAboveHull: 0.3, FormationEnergy: -0.9},
		{ID: "mp-4", Formula: "ZnO", BandGap: 3.3, Density: 5.6, EnergyAboveHull: 0.05, FormationEnergy: -1.8},
	})
	if err != nil {
		t.Fatalf("NewTable() failed: %v", err)
	}
	return tbl
}
